package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tidwall/pretty"

	"github.com/aanand-mishra/record-store/internal/account"
	"github.com/aanand-mishra/record-store/internal/codec"
	"github.com/aanand-mishra/record-store/internal/config"
	"github.com/aanand-mishra/record-store/internal/fileops"
	"github.com/aanand-mishra/record-store/internal/input"
	"github.com/aanand-mishra/record-store/internal/storage"
	"github.com/aanand-mishra/record-store/internal/storage/backend"
	"github.com/aanand-mishra/record-store/internal/types"
)

var demoPeople = []types.Record{
	{Name: "Alice", Age: 30},
	{Name: "Bob", Age: 25},
	{Name: "Charles", Age: 35},
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %s: %v", errUsage, fs.Name(), err)
	}
	return nil
}

// storeFlags registers -path, -driver and -config and returns a func
// that opens the selected store once flags are parsed.
func storeFlags(fs *flag.FlagSet) func() (storage.Storage, error) {
	path := fs.String("path", "", "store file")
	driver := fs.String("driver", "", "storage driver: json or sqlite")
	configPath := fs.String("config", "", "YAML config providing storage_path and storage_driver")

	return func() (storage.Storage, error) {
		if *configPath != "" {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return nil, err
			}
			if *path == "" {
				*path = cfg.StoragePath
			}
			if *driver == "" {
				*driver = cfg.StorageDriver
			}
		}
		if *path == "" {
			return nil, fmt.Errorf("%w: %s: -path or -config is required", errUsage, fs.Name())
		}
		return backend.Open(*driver, *path)
	}
}

func runDemo(args []string, stdout io.Writer) error {
	fs := newFlagSet("demo")
	open := storeFlags(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	store, err := open()
	if err != nil {
		return err
	}

	if err := store.Save(demoPeople); err != nil {
		return fmt.Errorf("save %s: %w", store.Path(), err)
	}
	fmt.Fprintf(stdout, "People data saved to %s.\n", store.Path())

	people, err := store.Load()
	if err != nil {
		return fmt.Errorf("load %s: %w", store.Path(), err)
	}
	fmt.Fprintf(stdout, "People data read from %s.\n", store.Path())
	for _, p := range people {
		fmt.Fprintln(stdout, p)
	}
	return nil
}

func runSave(args []string, stdout io.Writer) error {
	fs := newFlagSet("save")
	open := storeFlags(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	records := make([]types.Record, 0, fs.NArg())
	for _, arg := range fs.Args() {
		rec, err := parseRecordArg(arg)
		if err != nil {
			return err
		}
		records = append(records, rec)
	}

	store, err := open()
	if err != nil {
		return err
	}
	if err := store.Save(records); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "saved %d records to %s\n", len(records), store.Path())
	return nil
}

// parseRecordArg parses "NAME:AGE". The name may itself contain colons.
func parseRecordArg(arg string) (types.Record, error) {
	i := strings.LastIndex(arg, ":")
	if i < 0 {
		return types.Record{}, fmt.Errorf("%w: record %q: want NAME:AGE", errUsage, arg)
	}
	age, err := strconv.Atoi(arg[i+1:])
	if err != nil {
		return types.Record{}, fmt.Errorf("%w: record %q: age is not a number", errUsage, arg)
	}
	return types.Record{Name: arg[:i], Age: age}, nil
}

func runLoad(args []string, stdout io.Writer) error {
	fs := newFlagSet("load")
	open := storeFlags(fs)
	color := fs.Bool("color", false, "colorize JSON output for a terminal")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	store, err := open()
	if err != nil {
		return err
	}

	records, err := store.Load()
	if err != nil {
		return err
	}
	out, err := codec.Encode(records)
	if err != nil {
		return err
	}
	if *color {
		out = pretty.Color(out, nil)
	}
	_, err = stdout.Write(out)
	return err
}

func runAppend(args []string, stdout io.Writer) error {
	fs := newFlagSet("append")
	path := fs.String("path", "", "text file to append to")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *path == "" || fs.NArg() == 0 {
		return fmt.Errorf("%w: append: -path and at least one line are required", errUsage)
	}
	for _, line := range fs.Args() {
		if err := fileops.AppendLine(*path, line); err != nil {
			return err
		}
	}
	fmt.Fprintf(stdout, "appended %d lines to %s\n", fs.NArg(), *path)
	return nil
}

func runLines(args []string, stdout io.Writer) error {
	fs := newFlagSet("lines")
	path := fs.String("path", "", "text file to read")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("%w: lines: -path is required", errUsage)
	}
	lines, err := fileops.ReadLines(*path)
	if err != nil {
		return err
	}
	for _, line := range lines {
		fmt.Fprintln(stdout, line)
	}
	return nil
}

func runCopy(args []string, stdout io.Writer) error {
	fs := newFlagSet("copy")
	overwrite := fs.Bool("overwrite", false, "replace an existing destination file")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("%w: copy: want SOURCE DESTINATION_DIR", errUsage)
	}
	dst, err := fileops.CopyFile(fs.Arg(0), fs.Arg(1), *overwrite)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "copied %s to %s\n", fs.Arg(0), dst)
	return nil
}

func runWithdraw(args []string, stdout io.Writer) error {
	fs := newFlagSet("withdraw")
	balance := fs.Int64("balance", 0, "starting balance in minor units")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: withdraw: want AMOUNT", errUsage)
	}
	amount, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: withdraw: amount %q is not a number", errUsage, fs.Arg(0))
	}

	acct := account.New(*balance)
	if err := acct.Withdraw(amount); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "withdrew %d, balance is now %d\n", amount, acct.Balance())
	return nil
}

func runNumber(args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: number: want NUMBER", errUsage)
	}
	n, err := input.ParsePositive(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Entered number is: %d\n", n)
	return nil
}

func runBirthday(args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: birthday: want YYYY-MM-DD", errUsage)
	}
	next, err := input.NextBirthday(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Your next birthday is: %s\n", next.Format(input.DateLayout))
	return nil
}

func runDivide(args []string, stdout io.Writer) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: divide: want A B", errUsage)
	}
	a, errA := strconv.Atoi(args[0])
	b, errB := strconv.Atoi(args[1])
	if errA != nil || errB != nil {
		return fmt.Errorf("%w: divide: operands must be integers", errUsage)
	}
	q, err := input.Divide(a, b)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Result: %d\n", q)
	return nil
}
