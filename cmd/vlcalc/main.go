package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/henrytill/vlnum-go/internal"
	"github.com/henrytill/vlnum-go/internal/expr"
)

var Version = "0.1.0-dev"

// calculator evaluates one line at a time against a fixed environment.
type calculator struct {
	env  *expr.Env
	base int
}

func newCalculator(configFile string, base int) (*calculator, error) {
	config := internal.DefaultConfig()
	if configFile != "" {
		var err error
		if config, err = internal.LoadConfigFromFile(configFile); err != nil {
			return nil, err
		}
	}
	if base >= 0 {
		config.Base = base
		if err := config.Validate(); err != nil {
			return nil, err
		}
	}
	env, err := config.Env()
	if err != nil {
		return nil, err
	}
	return &calculator{env: env, base: config.Base}, nil
}

// skip reports whether a line holds nothing to evaluate.
func skip(line string) bool {
	return line == "" || strings.HasPrefix(line, "//")
}

func (c *calculator) eval(line string) (string, error) {
	v, err := expr.EvalString(line, c.env)
	if err != nil {
		return "", err
	}
	return v.Format(c.base), nil
}

// runLines is the non-interactive mode: one result or error per input line.
func (c *calculator) runLines(r io.Reader, stdout, stderr io.Writer) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if skip(line) {
			continue
		}
		out, err := c.eval(line)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			continue
		}
		fmt.Fprintln(stdout, out)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

func main() {
	var (
		configFile  = flag.String("c", "", "Read config from FILE")
		base        = flag.Int("base", -1, "Display radix: 2, 8, 10 or 16 (0 keeps each value's own)")
		showVersion = flag.Bool("V", false, "Show version")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "Interactive Verilog constant-expression calculator")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("vlcalc %s\n", Version)
		return
	}

	calc, err := newCalculator(*configFile, *base)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		if err := calc.runLines(os.Stdin, os.Stdout, os.Stderr); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runInteractive(calc); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
