package expr

import (
	"strings"

	"github.com/henrytill/vlnum-go/internal/value"
)

// Node is an expression tree node. Pos is the byte offset of the token that
// introduced the node; String renders it fully parenthesized.
type Node interface {
	Pos() int
	String() string
}

type Literal struct {
	Text  string
	Value value.Value
	At    int
}

type Ident struct {
	Name string
	At   int
}

type Unary struct {
	Op string
	X  Node
	At int
}

type Binary struct {
	Op   string
	X, Y Node
	At   int
}

type Cond struct {
	Cond, Then, Else Node
	At               int
}

type Concat struct {
	Parts []Node
	At    int
}

type Repeat struct {
	Count Node
	Parts []Node
	At    int
}

// Select is a bit select when Lsb is nil and a part select otherwise.
type Select struct {
	X        Node
	Msb, Lsb Node
	At       int
}

type Call struct {
	Name string
	Args []Node
	At   int
}

// Cast converts X to a named type or, when Target is all digits, to that
// many bits.
type Cast struct {
	Target string
	X      Node
	At     int
}

func (n *Literal) Pos() int { return n.At }
func (n *Ident) Pos() int   { return n.At }
func (n *Unary) Pos() int   { return n.At }
func (n *Binary) Pos() int  { return n.At }
func (n *Cond) Pos() int    { return n.At }
func (n *Concat) Pos() int  { return n.At }
func (n *Repeat) Pos() int  { return n.At }
func (n *Select) Pos() int  { return n.At }
func (n *Call) Pos() int    { return n.At }
func (n *Cast) Pos() int    { return n.At }

func (n *Literal) String() string { return n.Text }
func (n *Ident) String() string   { return n.Name }

func (n *Unary) String() string {
	return "(" + n.Op + n.X.String() + ")"
}

func (n *Binary) String() string {
	return "(" + n.X.String() + " " + n.Op + " " + n.Y.String() + ")"
}

func (n *Cond) String() string {
	return "(" + n.Cond.String() + " ? " + n.Then.String() + " : " + n.Else.String() + ")"
}

func join(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, ", ")
}

func (n *Concat) String() string {
	return "{" + join(n.Parts) + "}"
}

func (n *Repeat) String() string {
	return "{" + n.Count.String() + "{" + join(n.Parts) + "}}"
}

func (n *Select) String() string {
	if n.Lsb == nil {
		return n.X.String() + "[" + n.Msb.String() + "]"
	}
	return n.X.String() + "[" + n.Msb.String() + ":" + n.Lsb.String() + "]"
}

func (n *Call) String() string {
	return n.Name + "(" + join(n.Args) + ")"
}

func (n *Cast) String() string {
	return n.Target + "'(" + n.X.String() + ")"
}
