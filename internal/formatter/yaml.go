package formatter

import (
	"io"

	"github.com/goccy/go-yaml"

	"github.com/henrytill/vlnum-go/internal/vectors"
)

type YAMLFormatter struct{}

type serializedResult struct {
	Expr  string `yaml:"expr"`
	Line  int    `yaml:"line,omitempty"`
	Kind  string `yaml:"kind,omitempty"`
	Type  string `yaml:"type,omitempty"`
	Value string `yaml:"value,omitempty"`
	Want  string `yaml:"want,omitempty"`
	Error string `yaml:"error,omitempty"`
	Pass  bool   `yaml:"pass"`
}

type serializedReport struct {
	Suite   string             `yaml:"suite,omitempty"`
	Total   int                `yaml:"total"`
	Failed  int                `yaml:"failed"`
	Results []serializedResult `yaml:"results"`
}

func toSerialized(report *vectors.Report) serializedReport {
	results := make([]serializedResult, len(report.Results))
	for i, res := range report.Results {
		results[i] = serializedResult{
			Expr:  res.Expr,
			Line:  res.Line,
			Kind:  res.Kind,
			Type:  res.Type,
			Value: res.Got,
			Want:  res.Want,
			Pass:  res.Pass,
		}
		if res.Err != nil {
			results[i].Error = res.Err.Error()
		}
	}
	return serializedReport{
		Suite:   report.Suite,
		Total:   len(report.Results),
		Failed:  report.Failed(),
		Results: results,
	}
}

func (f *YAMLFormatter) Format(w io.Writer, report *vectors.Report) error {
	encoder := yaml.NewEncoder(w,
		yaml.UseSingleQuote(true),
		yaml.Indent(2),
	)
	defer encoder.Close()

	return encoder.Encode(toSerialized(report))
}
