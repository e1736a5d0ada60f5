package storage

import (
	"errors"
	"sync"

	"github.com/aanand-mishra/record-store/internal/types"
)

// Locked serializes access to a Storage so it can be shared between
// goroutines, e.g. concurrent HTTP requests. Only callers going through
// the same Locked are serialized; other processes writing the same path
// are not.
type Locked struct {
	mu    sync.Mutex
	store Storage
}

var _ Storage = (*Locked)(nil)

func NewLocked(s Storage) *Locked {
	return &Locked{store: s}
}

func (l *Locked) Save(records []types.Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.Save(records)
}

func (l *Locked) Load() ([]types.Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.Load()
}

func (l *Locked) Path() string {
	return l.store.Path()
}

// LoadOrEmpty is Load, except that a store that was never saved yields
// an empty list instead of a PathNotFound error.
func (l *Locked) LoadOrEmpty() ([]types.Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadOrEmpty()
}

// Update runs a load-modify-save cycle while holding the lock. fn gets
// the current records (empty if nothing was saved yet) and returns the
// records to save. If fn returns an error nothing is written.
func (l *Locked) Update(fn func([]types.Record) ([]types.Record, error)) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.loadOrEmpty()
	if err != nil {
		return err
	}
	updated, err := fn(records)
	if err != nil {
		return err
	}
	return l.store.Save(updated)
}

func (l *Locked) loadOrEmpty() ([]types.Record, error) {
	records, err := l.store.Load()
	if errors.Is(err, ErrPathNotFound) {
		return []types.Record{}, nil
	}
	return records, err
}
