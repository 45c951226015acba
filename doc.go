// Package exprtree evaluates and prints arithmetic expression trees.
//
// A tree is built from four kinds of nodes: Binary operations, Unary
// negations, explicit Groups, and Num literals. Eval reduces a tree to a
// float64 with ordinary IEEE-754 semantics, so "1/0" is +Inf rather than an
// error. Render prints a tree in fully parenthesized prefix form, so the tree
// for "4 + (1 + 2*3) * 2" prints as
//
//	(+ 4 (* (group (+ 1 (* 2 3))) 2))
//
// Groups don't change values; they exist to remember where the author wrote
// parentheses.
//
// Trees can also be evaluated to arbitrary precision with a Context, read from
// and written to YAML or JSON documents with Unmarshal, Decoder, and Marshal,
// and compiled to LLVM IR with package irgen.
//
package exprtree
