package vectors

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type HTMLParser struct{}

func getTextContent(n *html.Node) string {
	var result strings.Builder
	var worklist []*html.Node

	worklist = append(worklist, n)

	for len(worklist) > 0 {
		current := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		if current.Type == html.TextNode {
			result.WriteString(current.Data)
			continue
		}

		for c := current.LastChild; c != nil; c = c.PrevSibling {
			worklist = append(worklist, c)
		}
	}

	return strings.TrimSpace(result.String())
}

// findFirst returns the first element below n, in document order, that
// has the given tag.
func findFirst(n *html.Node, tag atom.Atom) *html.Node {
	worklist := []*html.Node{n}
	for len(worklist) > 0 {
		current := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		if current != n && current.Type == html.ElementNode && current.DataAtom == tag {
			return current
		}
		for c := current.LastChild; c != nil; c = c.PrevSibling {
			worklist = append(worklist, c)
		}
	}
	return nil
}

// cells returns the td and th children of a table row.
func cells(row *html.Node) []*html.Node {
	var ret []*html.Node
	for c := row.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.DataAtom == atom.Td || c.DataAtom == atom.Th) {
			ret = append(ret, c)
		}
	}
	return ret
}

// handleRow reads a case from a row whose first cell holds a code element.
func handleRow(row *html.Node) (Case, bool) {
	cs := cells(row)
	if len(cs) == 0 {
		return Case{}, false
	}
	code := findFirst(cs[0], atom.Code)
	if code == nil {
		return Case{}, false
	}
	ret := Case{Expr: getTextContent(code)}
	if len(cs) > 1 {
		if want := findFirst(cs[1], atom.Code); want != nil {
			ret.Want = getTextContent(want)
		}
	}
	return ret, ret.Expr != ""
}

func (p *HTMLParser) Parse(r io.Reader) (*Suite, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	suite := NewSuite("")
	var title, heading string

	worklist := []*html.Node{doc}
	for len(worklist) > 0 {
		current := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		if current.Type == html.ElementNode {
			switch current.DataAtom {
			case atom.Title:
				if title == "" {
					title = getTextContent(current)
				}
				continue
			case atom.H1:
				if heading == "" {
					heading = getTextContent(current)
				}
				continue
			case atom.Tr:
				if c, ok := handleRow(current); ok {
					suite.Cases = append(suite.Cases, c)
				}
				continue
			}
		}

		for c := current.LastChild; c != nil; c = c.PrevSibling {
			worklist = append(worklist, c)
		}
	}

	suite.Name = title
	if suite.Name == "" {
		suite.Name = heading
	}
	return suite, nil
}
