package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/henrytill/vlnum-go/internal"
	"github.com/henrytill/vlnum-go/internal/bitvec"
	"github.com/henrytill/vlnum-go/internal/expr"
	"github.com/henrytill/vlnum-go/internal/vectors"
)

var (
	Version    = "0.1.0-dev"
	Commit     = "unknown"
	CommitDate = "unknown"
	TreeState  = "unknown"
)

func showVersion(w io.Writer) {
	fmt.Fprintf(w, "vlnum %s\n", Version)
	fmt.Fprintf(w, "commit: %s\n", Commit)
	fmt.Fprintf(w, "commit date: %s\n", CommitDate)
	fmt.Fprintf(w, "tree state: %s\n", TreeState)
}

// exprList collects repeated -e flags.
type exprList []string

func (l *exprList) String() string { return strings.Join(*l, "; ") }

func (l *exprList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

type options struct {
	inputFormat  internal.Format
	outputFormat internal.Format
	outputFile   string
	configFile   string
	base         int
	exprs        exprList
	check        bool
	verbose      bool
	version      bool
	inputFile    string
}

// errUsage reports a usage problem; the flag set has already been described.
var errUsage = errors.New("usage")

func newFlagSet(name string, stderr io.Writer, opts *options) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts.inputFormat = internal.Format{Capability: internal.CapInput}
	opts.outputFormat = internal.Format{Capability: internal.CapOutput}

	fs.Var(&opts.inputFormat, "f", "Input format (markdown, html); detected from FILE by default")
	fs.Var(&opts.outputFormat, "t", "Output format (text, yaml, html); text by default")
	fs.StringVar(&opts.outputFile, "o", "", "Output file (defaults to stdout)")
	fs.StringVar(&opts.configFile, "c", "", "Read config from FILE")
	fs.IntVar(&opts.base, "base", -1, "Display radix: 2, 8, 10 or 16 (0 keeps each value's own)")
	fs.Var(&opts.exprs, "e", "Evaluate EXPR (repeatable)")
	fs.BoolVar(&opts.check, "check", false, "Exit with status 1 when a case fails")
	fs.BoolVar(&opts.verbose, "v", false, "Log diagnostics to stderr")
	fs.BoolVar(&opts.version, "version", false, "Show version")
	fs.BoolVar(&opts.version, "V", false, "Show version")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [OPTIONS] [FILE]\n\n", name)
		fmt.Fprintln(stderr, "Evaluate Verilog constant expressions and test-vector documents")
		fmt.Fprintln(stderr, "\nOptions:")
		fs.PrintDefaults()
	}
	return fs
}

func parseArgs(name string, args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := newFlagSet(name, stderr, opts)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.version {
		return opts, nil
	}

	rest := fs.Args()
	switch {
	case len(rest) > 1:
		fmt.Fprintf(stderr, "Error: at most one input file allowed, got %d\n\n", len(rest))
		fs.Usage()
		return nil, errUsage
	case len(rest) == 1:
		opts.inputFile = rest[0]
	case len(opts.exprs) == 0:
		fmt.Fprintf(stderr, "Error: input file or -e required\n\n")
		fs.Usage()
		return nil, errUsage
	}

	if opts.inputFile != "" && opts.inputFormat.Name == "" {
		format, ok := internal.DetectInputFormat(opts.inputFile)
		if !ok {
			return nil, fmt.Errorf("no parser for file: %s", opts.inputFile)
		}
		opts.inputFormat = format
	}

	if opts.outputFormat.Name == "" {
		opts.outputFormat = internal.Text
		if opts.outputFile != "" {
			if format, ok := internal.DetectOutputFormat(opts.outputFile); ok {
				opts.outputFormat = format
			}
		}
	}
	return opts, nil
}

func loadSuite(opts *options) (*vectors.Suite, error) {
	suite := vectors.NewSuite("")
	if opts.inputFile != "" {
		f, err := os.Open(opts.inputFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open input file: %w", err)
		}
		defer f.Close()

		suite, err = internal.Parse(opts.inputFormat, f)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", opts.inputFile, err)
		}
	}
	for _, e := range opts.exprs {
		suite.Add(e, "", 0)
	}
	return suite, nil
}

func evaluate(opts *options, stdout io.Writer) (*vectors.Report, error) {
	config := internal.DefaultConfig()
	if opts.configFile != "" {
		var err error
		if config, err = internal.LoadConfigFromFile(opts.configFile); err != nil {
			return nil, err
		}
	}
	if opts.base >= 0 {
		config.Base = opts.base
		if err := config.Validate(); err != nil {
			return nil, err
		}
	}

	env, err := config.Env()
	if err != nil {
		return nil, err
	}

	suite, err := loadSuite(opts)
	if err != nil {
		return nil, err
	}
	report := vectors.Run(suite, env, &vectors.RunOptions{Base: config.Base})

	output := stdout
	if opts.outputFile != "" {
		f, err := os.Create(opts.outputFile)
		if err != nil {
			return nil, fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	if err := internal.Unparse(opts.outputFormat, output, report); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}
	return report, nil
}

func run(name string, args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(name, args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if errors.Is(err, errUsage) {
		return 1
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if opts.version {
		showVersion(stdout)
		return 0
	}

	if opts.verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		defer logger.Sync()
		bitvec.SetLogger(logger)
		expr.SetLogger(logger)
	}

	report, err := evaluate(opts, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if opts.check && report.Failed() > 0 {
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[0], os.Args[1:], os.Stdout, os.Stderr))
}
