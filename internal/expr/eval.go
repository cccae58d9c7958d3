package expr

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/henrytill/vlnum-go/internal/bitvec"
	"github.com/henrytill/vlnum-go/internal/errors"
	"github.com/henrytill/vlnum-go/internal/value"
	"github.com/henrytill/vlnum-go/internal/vltype"
)

// Env resolves identifiers: Params are named constants and Types are named
// cast targets.
type Env struct {
	Types  map[string]vltype.Type
	Params map[string]value.Value
}

func NewEnv() *Env {
	return &Env{
		Types:  make(map[string]vltype.Type),
		Params: make(map[string]value.Value),
	}
}

var unaryFuncs = map[string]func(value.Value) value.Value{
	"+":  func(v value.Value) value.Value { return v },
	"-":  value.Neg,
	"!":  value.LogNot,
	"~":  value.BitNot,
	"&":  value.ReduceAnd,
	"~&": value.ReduceNand,
	"|":  value.ReduceOr,
	"~|": value.ReduceNor,
	"^":  value.ReduceXor,
	"~^": value.ReduceXnor,
	"^~": value.ReduceXnor,
}

var binaryFuncs = map[string]func(a, b value.Value) value.Value{
	"**":  value.Pow,
	"*":   value.Mul,
	"/":   value.Div,
	"%":   value.Mod,
	"+":   value.Add,
	"-":   value.Sub,
	"<<":  value.Lsh,
	">>":  value.Rsh,
	"<<<": value.ALsh,
	">>>": value.ARsh,
	"<":   value.Lt,
	"<=":  value.Le,
	">":   value.Gt,
	">=":  value.Ge,
	"==":  value.Eq,
	"!=":  value.Ne,
	"===": value.CaseEq,
	"!==": value.CaseNe,
	"&":   value.BitAnd,
	"^":   value.BitXor,
	"~^":  value.BitXnor,
	"^~":  value.BitXnor,
	"|":   value.BitOr,
	"&&":  value.LogAnd,
	"||":  value.LogOr,
}

// EvalString parses and evaluates src.
func EvalString(src string, env *Env) (value.Value, error) {
	n, err := Parse(src)
	if err != nil {
		return value.Value{}, err
	}
	return Eval(n, env)
}

// Eval folds n to a constant. Unknown bits and invalid operand kinds are
// not errors: they produce X bits or an Error value. Errors are reserved
// for unbound names, unknown functions and malformed calls.
func Eval(n Node, env *Env) (value.Value, error) {
	if env == nil {
		env = NewEnv()
	}
	return env.eval(n)
}

func (env *Env) eval(n Node) (value.Value, error) {
	switch n := n.(type) {
	case *Literal:
		return n.Value, nil
	case *Ident:
		v, ok := env.Params[n.Name]
		if !ok {
			return value.Value{}, errors.UnknownName(n.Name)
		}
		return v, nil
	case *Unary:
		x, err := env.eval(n.X)
		if err != nil {
			return value.Value{}, err
		}
		return unaryFuncs[n.Op](x), nil
	case *Binary:
		x, err := env.eval(n.X)
		if err != nil {
			return value.Value{}, err
		}
		y, err := env.eval(n.Y)
		if err != nil {
			return value.Value{}, err
		}
		return binaryFuncs[n.Op](x, y), nil
	case *Cond:
		vs, err := env.evalAll(n.Cond, n.Then, n.Else)
		if err != nil {
			return value.Value{}, err
		}
		return value.Ite(vs[0], vs[1], vs[2]), nil
	case *Concat:
		vs, err := env.evalAll(n.Parts...)
		if err != nil {
			return value.Value{}, err
		}
		return value.Concat(vs...), nil
	case *Repeat:
		rep, err := env.eval(n.Count)
		if err != nil {
			return value.Value{}, err
		}
		vs, err := env.evalAll(n.Parts...)
		if err != nil {
			return value.Value{}, err
		}
		return value.MultiConcat(rep, vs...), nil
	case *Select:
		x, err := env.eval(n.X)
		if err != nil {
			return value.Value{}, err
		}
		msb, err := env.eval(n.Msb)
		if err != nil {
			return value.Value{}, err
		}
		if n.Lsb == nil {
			return value.BitSelect(x, msb), nil
		}
		lsb, err := env.eval(n.Lsb)
		if err != nil {
			return value.Value{}, err
		}
		return value.PartSelect(x, msb, lsb), nil
	case *Call:
		return env.call(n)
	case *Cast:
		return env.cast(n)
	}
	return value.Value{}, errors.Unsupported(errors.PhaseEval, "unknown node")
}

func (env *Env) evalAll(nodes ...Node) ([]value.Value, error) {
	vs := make([]value.Value, len(nodes))
	for i, n := range nodes {
		v, err := env.eval(n)
		if err != nil {
			return nil, err
		}
		vs[i] = v
	}
	return vs, nil
}

type sysFunc struct {
	arity int
	fn    func(args []value.Value) value.Value
}

var sysFuncs = map[string]sysFunc{
	"$signed":   {1, func(a []value.Value) value.Value { return resign(a[0], true) }},
	"$unsigned": {1, func(a []value.Value) value.Value { return resign(a[0], false) }},
	"$bits":     {1, bits},
	"$rtoi":     {1, func(a []value.Value) value.Value { return value.Convert(a[0], vltype.IntType) }},
	"$itor":     {1, func(a []value.Value) value.Value { return value.Convert(a[0], vltype.RealType) }},
	"$time":     {1, toTime},
	"$matchx":   {2, func(a []value.Value) value.Value { return value.EqWithX(a[0], a[1]) }},
	"$matchxz":  {2, func(a []value.Value) value.Value { return value.EqWithXZ(a[0], a[1]) }},
}

// resign reinterprets the bits of v with the given signedness.
func resign(v value.Value, signed bool) value.Value {
	t := v.ValueType()
	return value.Convert(v, vltype.New(signed, t.Sized, t.Size))
}

func bits(a []value.Value) value.Value {
	if a[0].IsError() {
		return a[0]
	}
	return value.NewInt(int32(a[0].BitSize()))
}

func toTime(a []value.Value) value.Value {
	if !a[0].IsTimeCompat() {
		return value.NewError()
	}
	return value.NewTime(a[0].Time())
}

func (env *Env) call(n *Call) (value.Value, error) {
	f, ok := sysFuncs[n.Name]
	if !ok {
		Logger().Debug("unknown system function", zap.String("name", n.Name), zap.Int("pos", n.At))
		return value.Value{}, errors.New(errors.PhaseEval, errors.KindUnsupported).
			Pos(n.At).
			Value(n.Name).
			Detail("unknown system function %s", n.Name).
			Build()
	}
	if len(n.Args) != f.arity {
		return value.Value{}, errors.New(errors.PhaseEval, errors.KindInvalidInput).
			Pos(n.At).
			Value(n.Name).
			Detail("%s takes %d argument(s), got %d", n.Name, f.arity, len(n.Args)).
			Build()
	}
	args, err := env.evalAll(n.Args...)
	if err != nil {
		return value.Value{}, err
	}
	return f.fn(args), nil
}

var builtinTypes = map[string]vltype.Type{
	"int":  vltype.IntType,
	"real": vltype.RealType,
	"time": vltype.TimeType,
}

func (env *Env) cast(n *Cast) (value.Value, error) {
	x, err := env.eval(n.X)
	if err != nil {
		return value.Value{}, err
	}
	switch n.Target {
	case "signed":
		return resign(x, true), nil
	case "unsigned":
		return resign(x, false), nil
	}
	if t, ok := builtinTypes[n.Target]; ok {
		return value.Convert(x, t), nil
	}
	if t, ok := env.Types[n.Target]; ok {
		return value.Convert(x, t), nil
	}
	if isDigit(n.Target[0]) {
		size, err := strconv.Atoi(n.Target)
		if err != nil || size < 1 || size > bitvec.MaxWidth {
			return value.Value{}, errors.New(errors.PhaseEval, errors.KindIllegalSize).
				Pos(n.At).
				Value(n.Target).
				Detail("bad cast width %s", n.Target).
				Build()
		}
		return value.Convert(x, vltype.New(x.IsSigned(), true, size)), nil
	}
	return value.Value{}, errors.UnknownName(n.Target)
}
