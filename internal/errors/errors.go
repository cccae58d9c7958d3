package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseParse  Phase = "parse"  // literal and expression text
	PhaseEval   Phase = "eval"   // expression evaluation
	PhaseConfig Phase = "config" // config file loading
	PhaseLoad   Phase = "load"   // test-vector documents
	PhaseFormat Phase = "format" // report output
)

// Kind categorizes the error
type Kind string

const (
	KindIllegalChar     Kind = "illegal_char"
	KindIllegalSize     Kind = "illegal_size"
	KindIllegalBase     Kind = "illegal_base"
	KindEmptyLiteral    Kind = "empty_literal"
	KindUnexpectedToken Kind = "unexpected_token"
	KindUnknownName     Kind = "unknown_name"
	KindTypeMismatch    Kind = "type_mismatch"
	KindInvalidInput    Kind = "invalid_input"
	KindUnsupported     Kind = "unsupported"
)

// NoPos marks an error that has no source position.
const NoPos = -1

// Error is the structured error type used throughout the module.
//
// A parse failure (Phase == PhaseParse) carries the offending character in
// Value and its byte offset in Pos.
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Input  string
	Pos    int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Pos >= 0 {
		fmt.Fprintf(&b, " at %d", e.Pos)
	}

	if e.Input != "" {
		fmt.Fprintf(&b, " in %q", e.Input)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
			Pos:   NoPos,
		},
	}
}

// Pos sets the byte offset into the input
func (b *Builder) Pos(pos int) *Builder {
	b.err.Pos = pos
	return b
}

// Input sets the text being processed
func (b *Builder) Input(s string) *Builder {
	b.err.Input = s
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// IllegalChar creates a parse error for a character that is not allowed at pos
func IllegalChar(phase Phase, ch rune, pos int, input string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIllegalChar,
		Value:  ch,
		Pos:    pos,
		Input:  input,
		Detail: fmt.Sprintf("illegal character %q", ch),
	}
}

// IllegalSize creates a parse error for a bad width prefix
func IllegalSize(input string, detail string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindIllegalSize,
		Pos:    0,
		Input:  input,
		Detail: detail,
	}
}

// IllegalBase creates an error for a radix outside {2, 8, 10, 16}
func IllegalBase(base int) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindIllegalBase,
		Value:  base,
		Pos:    NoPos,
		Detail: fmt.Sprintf("illegal base %d", base),
	}
}

// EmptyLiteral creates an error for a literal with no digits
func EmptyLiteral(input string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindEmptyLiteral,
		Pos:    len(input),
		Input:  input,
		Detail: "no digits",
	}
}

// UnexpectedToken creates an expression parse error
func UnexpectedToken(text string, pos int, want string) *Error {
	detail := fmt.Sprintf("unexpected %q", text)
	if want != "" {
		detail += ", want " + want
	}
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindUnexpectedToken,
		Value:  text,
		Pos:    pos,
		Detail: detail,
	}
}

// UnknownName creates an evaluation error for an unbound identifier
func UnknownName(name string) *Error {
	return &Error{
		Phase:  PhaseEval,
		Kind:   KindUnknownName,
		Value:  name,
		Pos:    NoPos,
		Detail: fmt.Sprintf("unknown name %q", name),
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Pos:    NoPos,
		Detail: what,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Pos:    NoPos,
		Detail: detail,
	}
}

// IsParseError reports whether err is a structured parse-phase error.
func IsParseError(err error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Phase == PhaseParse {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
