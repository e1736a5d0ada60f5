// Package account models a balance that can be withdrawn from, and the
// structured error reported when a withdrawal exceeds it.
package account

import (
	"errors"
	"fmt"
)

// ErrInvalidAmount is returned for a withdrawal of zero or less.
var ErrInvalidAmount = errors.New("amount must be positive")

// InsufficientFundsError reports a withdrawal larger than the balance.
// Amounts are in minor units (cents).
type InsufficientFundsError struct {
	Balance int64
	Amount  int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: balance %d, requested %d", e.Balance, e.Amount)
}

// Shortfall is how much more the balance would need to cover Amount.
func (e *InsufficientFundsError) Shortfall() int64 {
	return e.Amount - e.Balance
}

// Account holds a balance in minor units. The zero value is an empty
// account.
type Account struct {
	balance int64
}

func New(balance int64) *Account {
	return &Account{balance: balance}
}

func (a *Account) Balance() int64 {
	return a.balance
}

// Withdraw takes amount from the balance. On error the balance is left
// unchanged.
func (a *Account) Withdraw(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("withdraw %d: %w", amount, ErrInvalidAmount)
	}
	if amount > a.balance {
		return &InsufficientFundsError{Balance: a.balance, Amount: amount}
	}
	a.balance -= amount
	return nil
}
