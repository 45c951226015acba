package exprtree

// Eval evaluates an expression tree. Arithmetic follows IEEE-754, so
// division by zero gives an infinity or NaN instead of an error, and negating
// zero gives negative zero. The left operand of a binary operation is always
// evaluated before the right.
//
// Eval panics if the tree contains a nil child or an invalid operator.
func Eval(e Expr) float64 {
	switch e := e.(type) {
	case Binary:
		a := Eval(e.LHS)
		b := Eval(e.RHS)
		switch e.Op {
		case Add:
			return a + b
		case Sub:
			return a - b
		case Mul:
			return a * b
		case Div:
			return a / b
		default:
			panic("exprtree: invalid binary operator " + e.Op.String())
		}
	case Unary:
		a := Eval(e.Operand)
		switch e.Op {
		case Neg:
			return -a
		default:
			panic("exprtree: invalid unary operator " + e.Op.String())
		}
	case Group:
		return Eval(e.Inner)
	case Num:
		return float64(e)
	case nil:
		panic("exprtree: Eval of nil expression")
	default:
		panic("exprtree: unknown expression type")
	}
}
