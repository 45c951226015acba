package exprtree

import (
	"strconv"
	"strings"
)

// Render formats an expression tree in fully parenthesized prefix notation.
// Every node other than a Num is wrapped in parentheses with its operator
// first, e.g. "(+ 1 (- 2))". Groups are written as "(group x)". Numbers use
// the shortest representation that parses back to the same float64, in the
// style of strconv.FormatFloat with format 'g': "4", "1.5", "-0", "1e+21",
// "NaN", "+Inf".
//
// Render panics if the tree contains a nil child or an invalid operator.
func Render(e Expr) string {
	var b strings.Builder
	render(&b, e)
	return b.String()
}

func render(b *strings.Builder, e Expr) {
	switch e := e.(type) {
	case Binary:
		if !e.Op.Valid() {
			panic("exprtree: invalid binary operator " + e.Op.String() + " after rendering " + b.String())
		}
		paren(b, e.Op.String(), e.LHS, e.RHS)
	case Unary:
		if !e.Op.Valid() {
			panic("exprtree: invalid unary operator " + e.Op.String() + " after rendering " + b.String())
		}
		paren(b, e.Op.String(), e.Operand)
	case Group:
		paren(b, "group", e.Inner)
	case Num:
		b.WriteString(FormatNum(float64(e)))
	case nil:
		panic("exprtree: Render of nil expression after rendering " + b.String())
	default:
		panic("exprtree: unknown expression type after rendering " + b.String())
	}
}

// paren writes (label arg...).
func paren(b *strings.Builder, label string, args ...Expr) {
	b.WriteByte('(')
	b.WriteString(label)
	for _, arg := range args {
		b.WriteByte(' ')
		render(b, arg)
	}
	b.WriteByte(')')
}

// FormatNum formats a literal value the way Render does.
func FormatNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
