package formatter

import (
	"bufio"
	"fmt"
	"io"

	"github.com/henrytill/vlnum-go/internal/vectors"
)

// TextFormatter writes one "expr = value" line per result. Failing cases
// are followed by the expected text.
type TextFormatter struct{}

func (f *TextFormatter) Format(w io.Writer, report *vectors.Report) error {
	bw := bufio.NewWriter(w)
	if report.Suite != "" {
		fmt.Fprintf(bw, "# %s\n", report.Suite)
	}
	for _, res := range report.Results {
		switch {
		case res.Err != nil:
			fmt.Fprintf(bw, "%s = Error: %v\n", res.Expr, res.Err)
		case res.Pass:
			fmt.Fprintf(bw, "%s = %s\n", res.Expr, res.Got)
		default:
			fmt.Fprintf(bw, "%s = %s  (want %s)\n", res.Expr, res.Got, res.Want)
		}
	}
	if failed := report.Failed(); failed > 0 {
		fmt.Fprintf(bw, "%d of %d failed\n", failed, len(report.Results))
	}
	return bw.Flush()
}
