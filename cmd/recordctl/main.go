// recordctl is a command-line front end for the record store and the
// small file, input and account routines that come with it.
//
// USAGE:
//
//	recordctl demo     -path people.json
//	recordctl save     -path people.json Alice:30 Bob:25
//	recordctl load     -path people.json [-color]
//	recordctl append   -path notes.txt "a line" ["another line" ...]
//	recordctl lines    -path notes.txt
//	recordctl copy     [-overwrite] source/logo.png destination
//	recordctl withdraw -balance 100 200
//	recordctl number   12
//	recordctl birthday 1990-05-17
//	recordctl divide   10 2
//
// Store commands also accept -driver (json|sqlite) and -config (a YAML
// file as used by records-api, supplying path and driver).
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// errUsage marks errors caused by bad command-line arguments.
var errUsage = errors.New("usage")

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}
	log.Error("recordctl failed", slog.String("error", err.Error()))
	if errors.Is(err, errUsage) {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	os.Exit(1)
}

const usage = `usage: recordctl <command> [flags] [args]

commands:
  demo      save Alice, Bob and Charles, then load and print them
  save      save NAME:AGE records, replacing the store contents
  load      print the stored records as JSON
  append    append lines to a text file
  lines     print the lines of a text file
  copy      copy a file into a directory
  withdraw  withdraw an amount from a balance
  number    parse a positive number
  birthday  print the next birthday for a YYYY-MM-DD birth date
  divide    integer division
`

func run(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", errUsage)
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "demo":
		return runDemo(rest, stdout)
	case "save":
		return runSave(rest, stdout)
	case "load":
		return runLoad(rest, stdout)
	case "append":
		return runAppend(rest, stdout)
	case "lines":
		return runLines(rest, stdout)
	case "copy":
		return runCopy(rest, stdout)
	case "withdraw":
		return runWithdraw(rest, stdout)
	case "number":
		return runNumber(rest, stdout)
	case "birthday":
		return runBirthday(rest, stdout)
	case "divide":
		return runDivide(rest, stdout)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
}
