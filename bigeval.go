package exprtree

import (
	"math"
	"math/big"
	"strconv"
)

// Context is a context for evaluating expressions to arbitrary precision. It
// is not safe to use a Context concurrently; use Clone to get one per
// goroutine.
type Context struct {
	stack []*big.Float
	prec  uint
	err   error
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type precopt uint

func (precopt) ctxOption() {}

// Prec sets the precision of calculations in bits. It must be positive.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// NewContext creates a new evaluation context. If no precision is given, the
// default is 64.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{prec: 64}
	return ctx.Clone(opts...)
}

// Eval evaluates an expression and returns the result. The arithmetic is the
// same as the package-level Eval except that values are big.Floats rounded to
// the context's precision. big.Float has no NaN, so any operation whose
// IEEE-754 result would be NaN, e.g. 0/0 or Inf-Inf, is an error instead. If
// an error occurs, then the result is nil and ctx.Err returns the error.
//
// The returned value belongs to the caller; later evaluations don't modify it.
func (ctx *Context) Eval(e Expr) *big.Float {
	switch len(ctx.stack) {
	case 0: // do nothing
	case 1:
		ctx.stack[0] = new(big.Float).SetPrec(ctx.prec)
		ctx.stack = ctx.stack[:0]
	default:
		panic("exprtree: Eval during Eval")
	}
	err := ctx.eval(e)
	ctx.err = err
	if err != nil {
		ctx.stack = ctx.stack[:0]
		return nil
	}
	return ctx.Result()
}

// Result returns the result obtained after evaluating an expression. Panics if
// ctx has not been used to evaluate an expression. Returns nil if an error
// occurred during evaluation.
func (ctx *Context) Result() *big.Float {
	if ctx.err != nil {
		return nil
	}
	switch len(ctx.stack) {
	case 0:
		panic("exprtree: Context.Result called before evaluating any expression")
	case 1:
		return ctx.stack[0]
	default:
		panic("exprtree: inconsistent stack: " + strconv.Itoa(len(ctx.stack)) + " items")
	}
}

// Err returns the error from the last evaluation, if any.
func (ctx *Context) Err() error {
	return ctx.err
}

// Prec returns the precision to which values are computed in the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Clone creates a copy of a context and applies options to it. The returned
// context has no Result and is safe to use to evaluate an expression.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		stack: make([]*big.Float, 0, cap(ctx.stack)),
		prec:  ctx.prec,
	}
	for _, opt := range opts {
		switch opt := opt.(type) {
		case nil: // do nothing
		case precopt:
			if opt == 0 {
				panic("exprtree: precision must be positive")
			}
			n.prec = uint(opt)
		default:
			panic("exprtree: unknown option type")
		}
	}
	return &n
}

// push ensures a settable value on the stack.
func (ctx *Context) push() *big.Float {
	if len(ctx.stack) < cap(ctx.stack) {
		ctx.stack = ctx.stack[:len(ctx.stack)+1]
		if ctx.stack[len(ctx.stack)-1] == nil {
			ctx.stack[len(ctx.stack)-1] = new(big.Float).SetPrec(ctx.prec)
		}
	} else {
		ctx.stack = append(ctx.stack, new(big.Float).SetPrec(ctx.prec))
	}
	return ctx.stack[len(ctx.stack)-1]
}

// pop removes the top from the stack and returns it. The returned value may be
// modified by future node evaluations.
func (ctx *Context) pop() *big.Float {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack.
func (ctx *Context) top() *big.Float {
	return ctx.stack[len(ctx.stack)-1]
}

// eval pushes the expression's value to the context's stack.
func (ctx *Context) eval(e Expr) error {
	switch e := e.(type) {
	case Binary:
		if err := ctx.eval(e.LHS); err != nil {
			return err
		}
		if err := ctx.eval(e.RHS); err != nil {
			return err
		}
		r := ctx.pop()
		l := ctx.top()
		if undefined(e.Op, l, r) {
			return &DomainError{
				Op: e.Op.String(),
				X:  new(big.Float).Copy(l),
				Y:  new(big.Float).Copy(r),
			}
		}
		switch e.Op {
		case Add:
			l.Add(l, r)
		case Sub:
			l.Sub(l, r)
		case Mul:
			l.Mul(l, r)
		case Div:
			l.Quo(l, r)
		default:
			panic("exprtree: invalid binary operator " + e.Op.String())
		}
	case Unary:
		if err := ctx.eval(e.Operand); err != nil {
			return err
		}
		v := ctx.top()
		switch e.Op {
		case Neg:
			v.Neg(v)
		default:
			panic("exprtree: invalid unary operator " + e.Op.String())
		}
	case Group:
		return ctx.eval(e.Inner)
	case Num:
		if math.IsNaN(float64(e)) {
			return &DomainError{}
		}
		ctx.push().SetFloat64(float64(e))
	case nil:
		panic("exprtree: Eval of nil expression")
	default:
		panic("exprtree: unknown expression type")
	}
	return nil
}

// undefined reports whether l op r is NaN under IEEE-754. These are exactly
// the cases where big.Float panics.
func undefined(op BinaryOp, l, r *big.Float) bool {
	switch op {
	case Add:
		return l.IsInf() && r.IsInf() && l.Signbit() != r.Signbit()
	case Sub:
		return l.IsInf() && r.IsInf() && l.Signbit() == r.Signbit()
	case Mul:
		return l.IsInf() && r.Sign() == 0 || l.Sign() == 0 && r.IsInf()
	case Div:
		return l.Sign() == 0 && r.Sign() == 0 || l.IsInf() && r.IsInf()
	default:
		return false
	}
}

// EvalBig is a shortcut to evaluate an expression with a new context.
func EvalBig(e Expr, opts ...ContextOption) (*big.Float, error) {
	ctx := NewContext(opts...)
	r := ctx.Eval(e)
	return r, ctx.Err()
}

// DomainError is an error returned when an extended-precision operation has no
// result, which happens exactly when its IEEE-754 result would be NaN.
type DomainError struct {
	// Op is the operator symbol. It is empty if the error is due to a NaN
	// literal.
	Op string
	// X and Y are the left and right operands. Both are nil for NaN literals.
	X, Y *big.Float
}

func (err *DomainError) Error() string {
	if err.Op == "" {
		return "NaN literal has no extended-precision value"
	}
	return err.X.String() + " " + err.Op + " " + err.Y.String() + " is undefined"
}
