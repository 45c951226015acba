package exprtree

import "strconv"

// Expr is a node in an expression tree. The only implementations are Binary,
// Unary, Group, and Num.
type Expr interface {
	// String renders the expression. It is the same as Render.
	String() string

	expr()
}

// Binary is a two-operand arithmetic operation.
type Binary struct {
	Op  BinaryOp
	LHS Expr
	RHS Expr
}

// Unary is a one-operand arithmetic operation.
type Unary struct {
	Op      UnaryOp
	Operand Expr
}

// Group marks a subexpression that was explicitly parenthesized. It evaluates
// to the same value as Inner.
type Group struct {
	Inner Expr
}

// Num is a literal value.
type Num float64

func (Binary) expr() {}
func (Unary) expr()  {}
func (Group) expr()  {}
func (Num) expr()    {}

func (e Binary) String() string { return Render(e) }
func (e Unary) String() string  { return Render(e) }
func (e Group) String() string  { return Render(e) }
func (e Num) String() string    { return Render(e) }

// BinaryOp is an operator of a Binary node.
type BinaryOp int8

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
)

var binsyms = [...]string{
	Add: "+",
	Sub: "-",
	Mul: "*",
	Div: "/",
}

// String returns the operator's symbol.
func (op BinaryOp) String() string {
	if !op.Valid() {
		return "BinaryOp(" + strconv.Itoa(int(op)) + ")"
	}
	return binsyms[op]
}

// Valid reports whether op is one of the declared binary operators.
func (op BinaryOp) Valid() bool {
	return op >= 0 && int(op) < len(binsyms)
}

// UnaryOp is an operator of a Unary node.
type UnaryOp int8

const (
	Neg UnaryOp = iota
)

var unsyms = [...]string{
	Neg: "-",
}

// String returns the operator's symbol.
func (op UnaryOp) String() string {
	if !op.Valid() {
		return "UnaryOp(" + strconv.Itoa(int(op)) + ")"
	}
	return unsyms[op]
}

// Valid reports whether op is one of the declared unary operators.
func (op UnaryOp) Valid() bool {
	return op >= 0 && int(op) < len(unsyms)
}

// binop gets the binary operator for a symbol. ok is false if there is none.
func binop(sym string) (op BinaryOp, ok bool) {
	for i, s := range binsyms {
		if s == sym {
			return BinaryOp(i), true
		}
	}
	return 0, false
}

// unop gets the unary operator for a symbol. ok is false if there is none.
func unop(sym string) (op UnaryOp, ok bool) {
	for i, s := range unsyms {
		if s == sym {
			return UnaryOp(i), true
		}
	}
	return 0, false
}
