package vectors

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/cases"
)

// fenceInfo is the info string of fenced blocks that hold cases.
const fenceInfo = "vlnum"

// wantSep separates the expression from the expected text inside a fence.
const wantSep = "=>"

type MarkdownParser struct{}

// lineIndex maps byte offsets to 1-based line numbers.
type lineIndex []int

func newLineIndex(content []byte) lineIndex {
	starts := lineIndex{0}
	for i, b := range content {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func (li lineIndex) line(offset int) int {
	lo, hi := 0, len(li)
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if li[mid] <= offset {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo + 1
}

func extractText(node ast.Node, content []byte) string {
	var buf bytes.Buffer

	var stack []ast.Node
	stack = append(stack, node)

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch current := n.(type) {
		case *ast.Text:
			buf.Write(current.Segment.Value(content))
			if current.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(current.Value)
		default:
			for child := n.LastChild(); child != nil; child = child.PreviousSibling() {
				stack = append(stack, child)
			}
		}
	}

	return strings.TrimSpace(buf.String())
}

// codeSpans returns the code spans directly inside the first block of a
// list item, so nested lists do not leak into their parent's case.
func codeSpans(item *ast.ListItem) []*ast.CodeSpan {
	block := item.FirstChild()
	if block == nil {
		return nil
	}
	var spans []*ast.CodeSpan
	for child := block.FirstChild(); child != nil; child = child.NextSibling() {
		if span, ok := child.(*ast.CodeSpan); ok {
			spans = append(spans, span)
		}
	}
	return spans
}

func spanOffset(span *ast.CodeSpan) int {
	if t, ok := span.FirstChild().(*ast.Text); ok {
		return t.Segment.Start
	}
	return -1
}

// splitCase splits "expr => want" into its parts. A line without the
// separator has no expectation.
func splitCase(line string) (string, string) {
	exprText, want, found := strings.Cut(line, wantSep)
	if !found {
		return strings.TrimSpace(line), ""
	}
	return strings.TrimSpace(exprText), strings.TrimSpace(want)
}

func (p *MarkdownParser) Parse(r io.Reader) (*Suite, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read markdown: %w", err)
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(content))

	lines := newLineIndex(content)
	fold := cases.Fold()
	suite := NewSuite("")

	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			if suite.Name == "" {
				suite.Name = extractText(node, content)
			}
			return ast.WalkSkipChildren, nil
		case *ast.ListItem:
			spans := codeSpans(node)
			if len(spans) == 0 {
				return ast.WalkContinue, nil
			}
			line := 0
			if off := spanOffset(spans[0]); off >= 0 {
				line = lines.line(off)
			}
			want := ""
			if len(spans) > 1 {
				want = extractText(spans[1], content)
			}
			suite.Add(extractText(spans[0], content), want, line)
		case *ast.FencedCodeBlock:
			if fold.String(string(node.Language(content))) != fenceInfo {
				return ast.WalkSkipChildren, nil
			}
			segs := node.Lines()
			for i := 0; i < segs.Len(); i++ {
				seg := segs.At(i)
				raw := strings.TrimSpace(string(seg.Value(content)))
				if raw == "" || strings.HasPrefix(raw, "//") {
					continue
				}
				exprText, want := splitCase(raw)
				suite.Add(exprText, want, lines.line(seg.Start))
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	return suite, nil
}
