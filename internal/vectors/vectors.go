// Package vectors reads test-vector documents and evaluates their cases.
//
// A document is a list of constant expressions, each optionally paired with
// the Verilog text it is expected to produce. Markdown and HTML documents
// are supported; both yield a Suite that Run turns into a Report.
package vectors

import (
	"io"

	"github.com/henrytill/vlnum-go/internal/expr"
)

// Parser reads a Suite from a document.
type Parser interface {
	Parse(r io.Reader) (*Suite, error)
}

// Formatter writes a Report.
type Formatter interface {
	Format(w io.Writer, report *Report) error
}

type Suite struct {
	Name  string
	Cases []Case
}

// Case is a single expression. Want is empty when the document gives no
// expectation. Line is 1-based, or 0 when the format carries no positions.
type Case struct {
	Expr string
	Want string
	Line int
}

func NewSuite(name string) *Suite {
	return &Suite{Name: name, Cases: []Case{}}
}

func (s *Suite) Add(exprText, want string, line int) {
	s.Cases = append(s.Cases, Case{Expr: exprText, Want: want, Line: line})
}

// Result is the outcome of one Case. Err is set when the expression could
// not be parsed or evaluated; Kind, Type and Got are empty in that case.
type Result struct {
	Expr string
	Want string
	Got  string
	Kind string
	Type string
	Line int
	Pass bool
	Err  error
}

type Report struct {
	Suite   string
	Results []Result
}

// Failed counts the results that did not pass.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.Pass {
			n++
		}
	}
	return n
}

type RunOptions struct {
	// Base is the display radix for Got: 2, 8, 10 or 16. Zero keeps each
	// value's own radix.
	Base int
}

// Run evaluates every case of suite against env.
func Run(suite *Suite, env *expr.Env, opts *RunOptions) *Report {
	base := 0
	if opts != nil {
		base = opts.Base
	}
	report := &Report{Suite: suite.Name, Results: make([]Result, 0, len(suite.Cases))}
	for _, c := range suite.Cases {
		res := Result{Expr: c.Expr, Want: c.Want, Line: c.Line}
		v, err := expr.EvalString(c.Expr, env)
		if err != nil {
			res.Err = err
		} else {
			res.Got = v.Format(base)
			res.Kind = v.Kind().String()
			res.Type = v.ValueType().String()
			res.Pass = c.Want == "" || c.Want == res.Got
		}
		report.Results = append(report.Results, res)
	}
	return report
}
