package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/andreyvit/primconv"
	"github.com/andreyvit/primconv/valuestore"
)

func runStore(args []string, stdout, stderr io.Writer, logger *slog.Logger) error {
	fs := flag.NewFlagSet("store", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dbPath := fs.String("db", "values.db", "Bolt database file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	args = fs.Args()
	if len(args) == 0 {
		return fmt.Errorf("%w: store needs a subcommand", errUsage)
	}

	s, err := valuestore.Open(*dbPath, valuestore.Options{Logger: logger})
	if err != nil {
		return err
	}
	defer s.Close()
	return storeCommand(s, args[0], args[1:], stdout)
}

func storeCommand(s *valuestore.Store, cmd string, args []string, stdout io.Writer) error {
	need := func(n int, what string) error {
		if len(args) != n {
			return fmt.Errorf("%w: store %s needs %s", errUsage, cmd, what)
		}
		return nil
	}

	switch cmd {
	case "put":
		if err := need(3, "NAME KIND TEXT"); err != nil {
			return err
		}
		kind, err := primconv.ParseKind(args[1])
		if err != nil {
			return err
		}
		v, err := s.PutText(args[0], args[2], kind, nil)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s = %s\n", args[0], v)
	case "get":
		if err := need(1, "NAME"); err != nil {
			return err
		}
		v, found, err := s.Get(args[0])
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%s: not found", args[0])
		}
		b, err := v.MarshalText()
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, string(b))
	case "del":
		if err := need(1, "NAME"); err != nil {
			return err
		}
		found, err := s.Delete(args[0])
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%s: not found", args[0])
		}
	case "list":
		if err := need(0, "no arguments"); err != nil {
			return err
		}
		all, err := s.All()
		if err != nil {
			return err
		}
		names, err := s.Names()
		if err != nil {
			return err
		}
		for _, name := range names {
			v := all[name]
			fmt.Fprintf(stdout, "%s\t%s\t%s\n", name, v.Kind(), v)
		}
	case "export":
		if err := need(1, "FILE"); err != nil {
			return err
		}
		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		if err := s.Export(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	case "import":
		if err := need(1, "FILE"); err != nil {
			return err
		}
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		n, err := s.Import(f)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "imported %d values\n", n)
	default:
		return fmt.Errorf("%w: unknown store command %q", errUsage, cmd)
	}
	return nil
}
