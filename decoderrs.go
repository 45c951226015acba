package exprtree

import "strconv"

// OperatorError is an error indicating an operator in a tree document that is
// not one of the declared operators. It implements InputError.
type OperatorError struct {
	// Line and Col are the position of the operator.
	Line, Col int
	// Operator is the symbol that was not understood.
	Operator string
	// Unary is whether the node was a unary operation.
	Unary bool
}

func (err *OperatorError) Error() string {
	s := "binary"
	if err.Unary {
		s = "unary"
	}
	return errpos(err.Line, err.Col, "unknown "+s+" operator "+quote(err.Operator))
}

func (err *OperatorError) Pos() (line, col int) {
	return err.Line, err.Col
}

// ShapeError is an error indicating a document node that doesn't have the
// shape of any expression node, e.g. a string where a number belongs or a
// mapping with missing or unexpected keys. It implements InputError.
type ShapeError struct {
	// Line and Col are the position of the offending node.
	Line, Col int
	// Msg describes the problem.
	Msg string
}

func (err *ShapeError) Error() string {
	return errpos(err.Line, err.Col, err.Msg)
}

func (err *ShapeError) Pos() (line, col int) {
	return err.Line, err.Col
}

// DepthError is an error indicating a tree deeper than the decoder allows.
// It implements InputError.
type DepthError struct {
	// Line and Col are the position of the first node past the limit.
	Line, Col int
	// Max is the depth limit.
	Max int
}

func (err *DepthError) Error() string {
	return errpos(err.Line, err.Col, "tree deeper than "+strconv.Itoa(err.Max)+" nodes")
}

func (err *DepthError) Pos() (line, col int) {
	return err.Line, err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(line, col int, msg string) string {
	return strconv.Itoa(line) + ":" + strconv.Itoa(col) + ": " + msg
}

func quote(s string) string {
	return strconv.Quote(s)
}

// InputError is an error with position information. Every error resulting from
// a document that is valid YAML but not a valid tree implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based line and column of the node that caused the
	// error.
	Pos() (line, col int)
}

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*ShapeError)(nil)
	_ InputError = (*DepthError)(nil)
)
