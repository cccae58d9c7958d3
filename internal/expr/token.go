package expr

import (
	"strconv"
	"strings"

	"github.com/henrytill/vlnum-go/internal/errors"
)

type TokenType int

const (
	TokenEOF TokenType = iota
	TokenNumber
	TokenReal
	TokenString
	TokenIdent
	TokenSysIdent
	TokenCast
	TokenOperator
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of input"
	case TokenNumber:
		return "number"
	case TokenReal:
		return "real"
	case TokenString:
		return "string"
	case TokenIdent:
		return "identifier"
	case TokenSysIdent:
		return "system identifier"
	case TokenCast:
		return "cast"
	case TokenOperator:
		return "operator"
	}
	return "unknown"
}

// Token is a lexeme with its byte offset in the source. String tokens hold
// the unquoted text; Cast tokens hold the target name or size.
type Token struct {
	Type TokenType
	Text string
	Pos  int
}

// operators is ordered longest first so the first prefix match wins.
var operators = []string{
	"===", "!==", "<<<", ">>>",
	"**", "==", "!=", "<=", ">=", "<<", ">>", "&&", "||", "~&", "~|", "~^", "^~",
	"+", "-", "*", "/", "%", "<", ">", "!", "~", "&", "|", "^", "?", ":",
	"(", ")", "{", "}", "[", "]", ",",
}

type lexer struct {
	src string
	pos int
}

// Tokenize splits src into tokens, ending with an EOF token.
func Tokenize(src string) ([]Token, error) {
	l := &lexer{src: src}
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Type == TokenEOF {
			return toks, nil
		}
	}
}

func (l *lexer) next() (Token, error) {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return Token{Type: TokenEOF, Pos: l.pos}, nil
	}

	start := l.pos
	c := l.src[l.pos]
	switch {
	case c == '"':
		return l.quoted()
	case c == '$':
		l.pos++
		l.skip(isIdentContinue)
		if l.pos == start+1 {
			return Token{}, errors.IllegalChar(errors.PhaseParse, '$', start, l.src)
		}
		return Token{Type: TokenSysIdent, Text: l.src[start:l.pos], Pos: start}, nil
	case isIdentStart(c):
		l.skip(isIdentContinue)
		if l.castFollows() {
			return Token{Type: TokenCast, Text: l.src[start : l.pos-1], Pos: start}, nil
		}
		return Token{Type: TokenIdent, Text: l.src[start:l.pos], Pos: start}, nil
	case isDigit(c) || c == '\'':
		return l.number()
	}

	for _, op := range operators {
		if strings.HasPrefix(l.src[l.pos:], op) {
			l.pos += len(op)
			return Token{Type: TokenOperator, Text: op, Pos: start}, nil
		}
	}
	return Token{}, errors.IllegalChar(errors.PhaseParse, rune(c), start, l.src)
}

func (l *lexer) skip(f func(byte) bool) {
	for l.pos < len(l.src) && f(l.src[l.pos]) {
		l.pos++
	}
}

// castFollows consumes the quote of a "'(" that follows a cast target.
func (l *lexer) castFollows() bool {
	if strings.HasPrefix(l.src[l.pos:], "'(") {
		l.pos++
		return true
	}
	return false
}

// number scans unbased decimals, reals, size casts and based literals.
// Digits of based literals are scanned loosely; bitvec.Parse validates them.
func (l *lexer) number() (Token, error) {
	start := l.pos
	l.skip(isDecimal)
	if l.pos > start && l.castFollows() {
		return Token{Type: TokenCast, Text: l.src[start : l.pos-1], Pos: start}, nil
	}
	if l.pos < len(l.src) && l.src[l.pos] == '\'' {
		l.pos++
		if l.pos < len(l.src) && (l.src[l.pos] == 's' || l.src[l.pos] == 'S') {
			l.pos++
		}
		if l.pos < len(l.src) && isLetter(l.src[l.pos]) {
			l.pos++
		}
		l.skip(isBasedDigit)
		return Token{Type: TokenNumber, Text: l.src[start:l.pos], Pos: start}, nil
	}

	isReal := false
	if l.pos+1 < len(l.src) && l.src[l.pos] == '.' && isDigit(l.src[l.pos+1]) {
		isReal = true
		l.pos++
		l.skip(isDecimal)
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		j := l.pos + 1
		if j < len(l.src) && (l.src[j] == '+' || l.src[j] == '-') {
			j++
		}
		if j < len(l.src) && isDigit(l.src[j]) {
			isReal = true
			l.pos = j
			l.skip(isDecimal)
		}
	}
	if isReal {
		return Token{Type: TokenReal, Text: l.src[start:l.pos], Pos: start}, nil
	}
	return Token{Type: TokenNumber, Text: l.src[start:l.pos], Pos: start}, nil
}

func (l *lexer) quoted() (Token, error) {
	start := l.pos
	l.pos++
	for l.pos < len(l.src) && l.src[l.pos] != '"' {
		if l.src[l.pos] == '\\' {
			l.pos++
		}
		l.pos++
	}
	if l.pos >= len(l.src) {
		return Token{}, errors.New(errors.PhaseParse, errors.KindUnexpectedToken).
			Pos(len(l.src)).
			Input(l.src).
			Detail("unterminated string").
			Build()
	}
	l.pos++
	s, err := strconv.Unquote(l.src[start:l.pos])
	if err != nil {
		return Token{}, errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Pos(start).
			Input(l.src).
			Detail("bad string literal").
			Cause(err).
			Build()
	}
	return Token{Type: TokenString, Text: s, Pos: start}, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isDecimal(c byte) bool { return isDigit(c) || c == '_' }

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isIdentStart(c byte) bool { return isLetter(c) || c == '_' }

func isIdentContinue(c byte) bool {
	return isIdentStart(c) || isDigit(c) || c == '$'
}

func isBasedDigit(c byte) bool {
	return isDigit(c) || isLetter(c) || c == '_' || c == '?'
}
