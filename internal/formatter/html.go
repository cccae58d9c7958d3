package formatter

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/henrytill/vlnum-go/internal/vectors"
)

// HTMLFormatter renders the report as a table. Expression and value cells
// hold code elements, so the output reads back as an HTML test-vector
// document whose expectations are the computed values.
type HTMLFormatter struct{}

func NewHTMLFormatter() *HTMLFormatter {
	return &HTMLFormatter{}
}

func element(tag atom.Atom, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: tag, Data: tag.String()}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func withClass(n *html.Node, class string) *html.Node {
	n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
	return n
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func code(s string) *html.Node {
	return element(atom.Code, textNode(s))
}

func cell(children ...*html.Node) *html.Node {
	return element(atom.Td, children...)
}

func headerRow(names ...string) *html.Node {
	row := element(atom.Tr)
	for _, name := range names {
		row.AppendChild(element(atom.Th, textNode(name)))
	}
	return element(atom.Thead, row)
}

func resultRow(res vectors.Result) *html.Node {
	row := element(atom.Tr, cell(code(res.Expr)))
	if res.Err != nil {
		row.AppendChild(cell(withClass(element(atom.Span, textNode(res.Err.Error())), "error")))
	} else {
		row.AppendChild(cell(code(res.Got)))
	}
	want := cell()
	if res.Want != "" {
		want.AppendChild(code(res.Want))
	}
	row.AppendChild(want)
	row.AppendChild(cell(textNode(res.Kind)))
	row.AppendChild(cell(textNode(res.Type)))

	status := "pass"
	if !res.Pass {
		status = "fail"
	}
	row.AppendChild(cell(textNode(status)))
	return withClass(row, status)
}

func (f *HTMLFormatter) document(report *vectors.Report) *html.Node {
	title := report.Suite
	if title == "" {
		title = "vlnum"
	}

	meta := element(atom.Meta)
	meta.Attr = []html.Attribute{{Key: "charset", Val: "utf-8"}}

	body := make([]*html.Node, 0, len(report.Results))
	for _, res := range report.Results {
		body = append(body, resultRow(res))
	}

	summary := fmt.Sprintf("%d cases, %d failed", len(report.Results), report.Failed())

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(element(atom.Html,
		element(atom.Head, meta, element(atom.Title, textNode(title))),
		element(atom.Body,
			element(atom.H1, textNode(title)),
			element(atom.P, textNode(summary)),
			element(atom.Table,
				headerRow("Expression", "Value", "Want", "Kind", "Type", "Status"),
				element(atom.Tbody, body...),
			),
		),
	))
	return doc
}

func (f *HTMLFormatter) Format(w io.Writer, report *vectors.Report) error {
	if err := html.Render(w, f.document(report)); err != nil {
		return fmt.Errorf("failed to render HTML: %w", err)
	}
	return nil
}
