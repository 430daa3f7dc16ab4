package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/andreyvit/primconv"
)

const usage = `usage: primconv [-v] <command> [arguments]

commands:
  parse [-wrap] [-prefixes] KIND TEXT
  format [-prec N] [-max N] KIND VALUE
  kinds
  batch FILE.yaml
  store -db PATH put NAME KIND TEXT | get NAME | del NAME | list | export FILE | import FILE
`

var errUsage = errors.New("invalid usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("primconv", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	args = fs.Args()
	if len(args) == 0 {
		fs.Usage()
		return 2
	}

	var err error
	switch cmd, rest := args[0], args[1:]; cmd {
	case "parse":
		err = runParse(rest, stdout, stderr)
	case "format":
		err = runFormat(rest, stdout, stderr)
	case "kinds":
		err = runKinds(stdout)
	case "batch":
		err = runBatch(rest, stdout, logger)
	case "store":
		err = runStore(rest, stdout, stderr, logger)
	default:
		err = fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
	if err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(stderr, "primconv: %v\n", err)
			fmt.Fprint(stderr, usage)
			return 2
		}
		logger.Error("primconv: failed", "err", err)
		return 1
	}
	return 0
}

func runParse(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.SetOutput(stderr)
	wrap := fs.Bool("wrap", false, "keep low-order bits instead of rejecting out-of-range values")
	prefixes := fs.Bool("prefixes", false, "accept 0x, 0o, 0b prefixes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("%w: parse needs KIND and TEXT", errUsage)
	}
	kind, err := primconv.ParseKind(fs.Arg(0))
	if err != nil {
		return err
	}
	opt := primconv.Options{Precision: -1, BasePrefixes: *prefixes}
	if *wrap {
		opt.Narrowing = primconv.NarrowWrap
	}
	v, err := primconv.New(opt).ParseText(fs.Arg(1), kind)
	if err != nil {
		return err
	}
	b, err := v.MarshalText()
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, string(b))
	return nil
}

func runFormat(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("format", flag.ContinueOnError)
	fs.SetOutput(stderr)
	prec := fs.Int("prec", 0, "fractional digits for float kinds (0 = default, negative = shortest)")
	maxLen := fs.Int("max", 64, "buffer capacity including the terminator")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("%w: format needs KIND and VALUE", errUsage)
	}
	kind, err := primconv.ParseKind(fs.Arg(0))
	if err != nil {
		return err
	}
	src, err := parseSource(fs.Arg(1))
	if err != nil {
		return err
	}
	s, n, err := primconv.New(primconv.Options{Precision: *prec}).FormatValue(src, kind, *maxLen)
	if err != nil {
		return err
	}
	if primconv.Truncated(n, *maxLen) {
		fmt.Fprintf(stdout, "%s (truncated, %d needed)\n", s, n)
	} else {
		fmt.Fprintln(stdout, s)
	}
	return nil
}

var sourceConverter = primconv.New(primconv.Options{Narrowing: primconv.NarrowWrap, BasePrefixes: true})

// parseSource reads a free-form number, trying int64, then uint64, then
// float64.
func parseSource(text string) (primconv.Value, error) {
	if v, err := primconv.ParseText(text, primconv.Int64); err == nil {
		return v, nil
	}
	if v, err := primconv.ParseText(text, primconv.Uint64); err == nil {
		return v, nil
	}
	if v, err := sourceConverter.ParseText(text, primconv.Float64); err == nil {
		return v, nil
	}
	return sourceConverter.ParseText(text, primconv.Int64)
}

func runKinds(stdout io.Writer) error {
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tC TYPE\tSIZE\tBITS\tCLASS")
	for _, k := range primconv.Kinds() {
		class := "float"
		if k.IsSigned() {
			class = "signed"
		} else if k.IsUnsigned() {
			class = "unsigned"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", k, k.CName(), k.Size(), k.BitSize(), class)
	}
	return tw.Flush()
}
