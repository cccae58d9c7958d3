package expr

import (
	stderrors "errors"
	"math/big"
	"strconv"
	"strings"

	"github.com/henrytill/vlnum-go/internal/bitvec"
	"github.com/henrytill/vlnum-go/internal/errors"
	"github.com/henrytill/vlnum-go/internal/value"
)

// precedence returns the binding strength of a binary operator, or 0 for
// anything else. The conditional operator sits below all of them.
func precedence(op string) int {
	switch op {
	case "||":
		return 1
	case "&&":
		return 2
	case "|":
		return 3
	case "^", "~^", "^~":
		return 4
	case "&":
		return 5
	case "==", "!=", "===", "!==":
		return 6
	case "<", "<=", ">", ">=":
		return 7
	case "<<", ">>", "<<<", ">>>":
		return 8
	case "+", "-":
		return 9
	case "*", "/", "%":
		return 10
	case "**":
		return 11
	}
	return 0
}

func isUnaryOp(op string) bool {
	switch op {
	case "+", "-", "!", "~", "&", "~&", "|", "~|", "^", "~^", "^~":
		return true
	}
	return false
}

type parser struct {
	src  string
	toks []Token
	i    int
}

// Parse reads a single constant expression.
func Parse(src string) (Node, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks}
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur().Type != TokenEOF {
		return nil, p.unexpected("end of input")
	}
	return n, nil
}

func (p *parser) cur() Token { return p.toks[p.i] }

func (p *parser) next() Token {
	tok := p.toks[p.i]
	if tok.Type != TokenEOF {
		p.i++
	}
	return tok
}

func (p *parser) isOp(op string) bool {
	tok := p.cur()
	return tok.Type == TokenOperator && tok.Text == op
}

func (p *parser) expect(op string) error {
	if !p.isOp(op) {
		return p.unexpected("'" + op + "'")
	}
	p.next()
	return nil
}

func (p *parser) unexpected(want string) error {
	tok := p.cur()
	text := tok.Text
	if tok.Type == TokenEOF {
		text = tok.Type.String()
	}
	e := errors.UnexpectedToken(text, tok.Pos, want)
	e.Input = p.src
	return e
}

func (p *parser) parseExpr() (Node, error) {
	c, err := p.parseBinary(1)
	if err != nil {
		return nil, err
	}
	if !p.isOp("?") {
		return c, nil
	}
	at := p.next().Pos
	then, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(":"); err != nil {
		return nil, err
	}
	els, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &Cond{Cond: c, Then: then, Else: els, At: at}, nil
}

// parseBinary climbs precedence levels from minPrec upward. All binary
// operators are left associative.
func (p *parser) parseBinary(minPrec int) (Node, error) {
	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.cur()
		prec := precedence(tok.Text)
		if tok.Type != TokenOperator || prec == 0 || prec < minPrec {
			return x, nil
		}
		p.next()
		y, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		x = &Binary{Op: tok.Text, X: x, Y: y, At: tok.Pos}
	}
}

func (p *parser) parseUnary() (Node, error) {
	tok := p.cur()
	if tok.Type == TokenOperator && isUnaryOp(tok.Text) {
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: tok.Text, X: x, At: tok.Pos}, nil
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (Node, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.isOp("[") {
		at := p.next().Pos
		msb, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		sel := &Select{X: x, Msb: msb, At: at}
		if p.isOp(":") {
			p.next()
			if sel.Lsb, err = p.parseExpr(); err != nil {
				return nil, err
			}
		}
		if err := p.expect("]"); err != nil {
			return nil, err
		}
		x = sel
	}
	return x, nil
}

func (p *parser) parsePrimary() (Node, error) {
	tok := p.cur()
	switch tok.Type {
	case TokenNumber:
		p.next()
		v, err := p.integer(tok)
		if err != nil {
			return nil, err
		}
		return &Literal{Text: tok.Text, Value: v, At: tok.Pos}, nil
	case TokenReal:
		p.next()
		f, err := strconv.ParseFloat(strings.ReplaceAll(tok.Text, "_", ""), 64)
		if err != nil {
			return nil, errors.New(errors.PhaseParse, errors.KindInvalidInput).
				Pos(tok.Pos).
				Input(p.src).
				Value(tok.Text).
				Detail("bad real literal").
				Cause(err).
				Build()
		}
		return &Literal{Text: tok.Text, Value: value.NewReal(f), At: tok.Pos}, nil
	case TokenString:
		p.next()
		v := value.NewBitVector(bitvec.FromString(tok.Text))
		return &Literal{Text: strconv.Quote(tok.Text), Value: v, At: tok.Pos}, nil
	case TokenIdent:
		p.next()
		return &Ident{Name: tok.Text, At: tok.Pos}, nil
	case TokenSysIdent:
		p.next()
		call := &Call{Name: tok.Text, At: tok.Pos}
		if p.isOp("(") {
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			call.Args = args
		}
		return call, nil
	case TokenCast:
		p.next()
		if err := p.expect("("); err != nil {
			return nil, err
		}
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return &Cast{Target: tok.Text, X: x, At: tok.Pos}, nil
	case TokenOperator:
		switch tok.Text {
		case "(":
			p.next()
			x, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expect(")"); err != nil {
				return nil, err
			}
			return x, nil
		case "{":
			return p.parseBraces()
		}
	}
	return nil, p.unexpected("an operand")
}

func (p *parser) parseArgs() ([]Node, error) {
	p.next()
	if p.isOp(")") {
		p.next()
		return nil, nil
	}
	return p.parseList(")")
}

// parseBraces reads {a, b, ...} or the replication {n{a, b, ...}}.
func (p *parser) parseBraces() (Node, error) {
	at := p.next().Pos
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.isOp("{") {
		p.next()
		parts, err := p.parseList("}")
		if err != nil {
			return nil, err
		}
		if err := p.expect("}"); err != nil {
			return nil, err
		}
		return &Repeat{Count: first, Parts: parts, At: at}, nil
	}
	parts := []Node{first}
	if p.isOp(",") {
		p.next()
		rest, err := p.parseList("}")
		if err != nil {
			return nil, err
		}
		parts = append(parts, rest...)
	} else if err := p.expect("}"); err != nil {
		return nil, err
	}
	return &Concat{Parts: parts, At: at}, nil
}

// parseList reads comma separated expressions up to and including end.
func (p *parser) parseList(end string) ([]Node, error) {
	var nodes []Node
	for {
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, x)
		if p.isOp(",") {
			p.next()
			continue
		}
		if err := p.expect(end); err != nil {
			return nil, err
		}
		return nodes, nil
	}
}

// integer types an integer literal. Unbased decimals that fit in 32 bits
// are Int; larger ones become signed bit-vectors just wide enough to hold
// them. Everything else is a bit-vector.
func (p *parser) integer(tok Token) (value.Value, error) {
	if !strings.Contains(tok.Text, "'") {
		digits := strings.ReplaceAll(tok.Text, "_", "")
		if n, err := strconv.ParseInt(digits, 10, 32); err == nil {
			return value.NewInt(int32(n)), nil
		}
		if n, ok := new(big.Int).SetString(digits, 10); ok {
			bv, err := bitvec.FromDigits(n.BitLen()+1, true, 10, digits)
			if err != nil {
				return value.Value{}, p.literalError(err, tok)
			}
			return value.NewBitVector(bv.WithAttr(bitvec.Attr{Signed: true, Base: 10})), nil
		}
	}
	bv, err := bitvec.Parse(tok.Text)
	if err != nil {
		return value.Value{}, p.literalError(err, tok)
	}
	return value.NewBitVector(bv), nil
}

// literalError rebases a literal error onto the whole expression.
func (p *parser) literalError(err error, tok Token) error {
	var e *errors.Error
	if !stderrors.As(err, &e) {
		return err
	}
	rebased := *e
	if rebased.Pos >= 0 {
		rebased.Pos += tok.Pos
	}
	rebased.Input = p.src
	return &rebased
}
