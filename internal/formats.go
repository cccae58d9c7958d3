package internal

import (
	"fmt"
	"io"
	"path/filepath"

	"golang.org/x/text/cases"

	"github.com/henrytill/vlnum-go/internal/formatter"
	"github.com/henrytill/vlnum-go/internal/vectors"
)

type FormatCapability uint8

const (
	CapInput FormatCapability = 1 << iota
	CapOutput
	CapBoth = CapInput | CapOutput
)

type Format struct {
	Name       string
	Capability FormatCapability
}

func (f Format) CanInput() bool  { return f.Capability&CapInput != 0 }
func (f Format) CanOutput() bool { return f.Capability&CapOutput != 0 }
func (f Format) String() string  { return f.Name }

var (
	Markdown = Format{"markdown", CapInput}
	HTML     = Format{"html", CapBoth}
	YAML     = Format{"yaml", CapOutput}
	Text     = Format{"text", CapOutput}
)

var parsers = map[Format]vectors.Parser{
	Markdown: &vectors.MarkdownParser{},
	HTML:     &vectors.HTMLParser{},
}

var formatters = map[Format]vectors.Formatter{
	YAML: &formatter.YAMLFormatter{},
	HTML: formatter.NewHTMLFormatter(),
	Text: &formatter.TextFormatter{},
}

var allFormats = []Format{Markdown, HTML, YAML, Text}

func AllInputFormats() []Format {
	var result []Format
	for _, format := range allFormats {
		if format.CanInput() {
			result = append(result, format)
		}
	}
	return result
}

func AllOutputFormats() []Format {
	var result []Format
	for _, format := range allFormats {
		if format.CanOutput() {
			result = append(result, format)
		}
	}
	return result
}

// ParseFormat looks a format up by name, ignoring case.
func ParseFormat(name string) (Format, bool) {
	normalized := cases.Fold().String(name)
	for _, format := range allFormats {
		if format.Name == normalized {
			return format, true
		}
	}
	return Format{}, false
}

// Set implements flag.Value. The receiver's capability restricts which
// formats are accepted, so an input flag rejects output-only formats.
func (f *Format) Set(value string) error {
	parsed, ok := ParseFormat(value)
	if !ok {
		return fmt.Errorf("invalid format: %s", value)
	}

	if f.CanInput() && !parsed.CanInput() {
		return fmt.Errorf("format %s cannot be used for input", value)
	}
	if f.CanOutput() && !parsed.CanOutput() {
		return fmt.Errorf("format %s cannot be used for output", value)
	}

	*f = parsed
	return nil
}

func DetectInputFormat(filename string) (Format, bool) {
	switch cases.Fold().String(filepath.Ext(filename)) {
	case ".html", ".htm":
		return HTML, true
	case ".md", ".markdown":
		return Markdown, true
	default:
		return Format{}, false
	}
}

func DetectOutputFormat(filename string) (Format, bool) {
	switch cases.Fold().String(filepath.Ext(filename)) {
	case ".html", ".htm":
		return HTML, true
	case ".yaml", ".yml":
		return YAML, true
	case ".txt":
		return Text, true
	default:
		return Format{}, false
	}
}

func Parse(format Format, r io.Reader) (*vectors.Suite, error) {
	if !format.CanInput() {
		return nil, fmt.Errorf("format %s cannot be used for input", format.Name)
	}

	parser, ok := parsers[format]
	if !ok {
		return nil, fmt.Errorf("no parser available for format: %s", format.Name)
	}

	return parser.Parse(r)
}

func Unparse(format Format, w io.Writer, report *vectors.Report) error {
	if !format.CanOutput() {
		return fmt.Errorf("format %s cannot be used for output", format.Name)
	}

	formatter, ok := formatters[format]
	if !ok {
		return fmt.Errorf("no formatter available for format: %s", format.Name)
	}

	return formatter.Format(w, report)
}
