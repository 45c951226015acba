// Package irgen compiles expression trees to LLVM IR.
//
// Each tree becomes a function with no parameters returning double. The body
// is a single block computing the tree with fadd, fsub, fmul, fdiv, and fneg,
// in the same order exprtree.Eval evaluates it. Groups produce no code.
package irgen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/zephyrtronium/exprtree"
)

// Builder adds expression functions to an LLVM module.
type Builder struct {
	mod *ir.Module
}

// NewBuilder creates a builder with an empty module.
func NewBuilder() *Builder {
	return &Builder{mod: ir.NewModule()}
}

// Func adds a function named name that computes e.
func (b *Builder) Func(name string, e exprtree.Expr) *ir.Func {
	f := b.mod.NewFunc(name, types.Double)
	block := f.NewBlock("")
	block.NewRet(load(block, e))
	return f
}

// Module returns the module containing every function added so far.
func (b *Builder) Module() *ir.Module {
	return b.mod
}

// Compile is a shortcut to create a module with a single function.
func Compile(name string, e exprtree.Expr) *ir.Module {
	b := NewBuilder()
	b.Func(name, e)
	return b.Module()
}

// load appends the instructions to compute e to block and returns the value
// holding the result.
func load(block *ir.Block, e exprtree.Expr) value.Value {
	switch e := e.(type) {
	case exprtree.Binary:
		x := load(block, e.LHS)
		y := load(block, e.RHS)
		switch e.Op {
		case exprtree.Add:
			return block.NewFAdd(x, y)
		case exprtree.Sub:
			return block.NewFSub(x, y)
		case exprtree.Mul:
			return block.NewFMul(x, y)
		case exprtree.Div:
			return block.NewFDiv(x, y)
		default:
			panic("irgen: invalid binary operator " + e.Op.String())
		}
	case exprtree.Unary:
		x := load(block, e.Operand)
		switch e.Op {
		case exprtree.Neg:
			return block.NewFNeg(x)
		default:
			panic("irgen: invalid unary operator " + e.Op.String())
		}
	case exprtree.Group:
		return load(block, e.Inner)
	case exprtree.Num:
		return constant.NewFloat(types.Double, float64(e))
	case nil:
		panic("irgen: nil expression")
	default:
		panic("irgen: unknown expression type")
	}
}
