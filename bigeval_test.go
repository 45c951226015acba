package exprtree_test

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/zephyrtronium/exprtree"
)

func TestContextEval(t *testing.T) {
	cases := []struct {
		name string
		e    exprtree.Expr
		r    float64
	}{
		{"num", exprtree.Num(1.5), 1.5},
		{"inf", exprtree.Num(inf), inf},
		{"neg", neg(exprtree.Num(4)), -4},
		{"neg-zero", neg(exprtree.Num(0)), nz},
		{"add", bin(exprtree.Add, exprtree.Num(4), exprtree.Num(5)), 9},
		{"sub", bin(exprtree.Sub, exprtree.Num(4), exprtree.Num(5)), -1},
		{"mul", bin(exprtree.Mul, exprtree.Num(4), exprtree.Num(5)), 20},
		{"div", bin(exprtree.Div, exprtree.Num(4), exprtree.Num(5)), 0.8},
		{"group", group(exprtree.Num(7)), 7},
		{"sample", sample(), 18},
		{"div-zero", bin(exprtree.Div, exprtree.Num(1), exprtree.Num(0)), inf},
		{"div-nz", bin(exprtree.Div, exprtree.Num(1), neg(exprtree.Num(0))), ninf},
		{"add-inf", bin(exprtree.Add, exprtree.Num(inf), exprtree.Num(1)), inf},
		{"inf-minus-ninf", bin(exprtree.Sub, exprtree.Num(inf), exprtree.Num(ninf)), inf},
	}
	ctx := exprtree.NewContext(exprtree.Prec(64))
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctx := ctx.Clone()
			r := ctx.Eval(c.e)
			if ctx.Err() != nil {
				t.Error("evaluation error:", ctx.Err())
			}
			if r == nil {
				t.Fatal("nil result")
			}
			if q := ctx.Result(); r.Cmp(q) != 0 {
				t.Errorf("different results: Eval returned %g, Result returned %g", r, q)
			}
			if f, _ := r.Float64(); !same(f, c.r) {
				t.Errorf("wrong result: want %g, got %g", c.r, r)
			}
		})
	}
}

func TestContextDomainError(t *testing.T) {
	cases := []struct {
		name string
		e    exprtree.Expr
		op   string
	}{
		{"nan", exprtree.Num(nan), ""},
		{"nan-deep", bin(exprtree.Add, exprtree.Num(1), neg(exprtree.Num(nan))), ""},
		{"div-zero-zero", bin(exprtree.Div, exprtree.Num(0), exprtree.Num(0)), "/"},
		{"div-inf-inf", bin(exprtree.Div, exprtree.Num(inf), exprtree.Num(ninf)), "/"},
		{"add-inf-ninf", bin(exprtree.Add, exprtree.Num(inf), exprtree.Num(ninf)), "+"},
		{"sub-inf-inf", bin(exprtree.Sub, exprtree.Num(ninf), exprtree.Num(ninf)), "-"},
		{"mul-zero-inf", bin(exprtree.Mul, exprtree.Num(0), exprtree.Num(inf)), "*"},
		{"mul-inf-zero", bin(exprtree.Mul, group(exprtree.Num(inf)), neg(exprtree.Num(0))), "*"},
		{"div-sub-zero", bin(exprtree.Div, bin(exprtree.Sub, exprtree.Num(2), exprtree.Num(2)), exprtree.Num(0)), "/"},
	}
	ctx := exprtree.NewContext()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if r := ctx.Eval(c.e); r != nil {
				t.Errorf("evaluating %v gave non-nil result %g", c.e, r)
			}
			if r := ctx.Result(); r != nil {
				t.Errorf("Result after error gave non-nil result %g", r)
			}
			err := ctx.Err()
			if err == nil {
				t.Fatalf("evaluating %v gave no error", c.e)
			}
			var de *exprtree.DomainError
			if !errors.As(err, &de) {
				t.Fatalf("%#v is not *exprtree.DomainError", err)
			}
			if de.Op != c.op {
				t.Errorf("wrong operator: want %q, got %q", c.op, de.Op)
			}
			if de.Error() == "" {
				t.Error("empty error message")
			}
		})
	}
	// The context must still be usable after errors.
	if r := ctx.Eval(sample()); r == nil || r.Cmp(big.NewFloat(18)) != 0 {
		t.Errorf("wrong result after errors: want 18, got %v (%v)", r, ctx.Err())
	}
}

func TestContextResultKept(t *testing.T) {
	ctx := exprtree.NewContext()
	a := ctx.Eval(exprtree.Num(1))
	b := ctx.Eval(bin(exprtree.Add, exprtree.Num(2), exprtree.Num(3)))
	if a.Cmp(big.NewFloat(1)) != 0 {
		t.Errorf("first result changed to %g", a)
	}
	if b.Cmp(big.NewFloat(5)) != 0 {
		t.Errorf("wrong second result: want 5, got %g", b)
	}
}

func TestContextPrec(t *testing.T) {
	if p := exprtree.NewContext().Prec(); p != 64 {
		t.Errorf("wrong default precision: want 64, got %d", p)
	}
	ctx := exprtree.NewContext(exprtree.Prec(256))
	if p := ctx.Clone().Prec(); p != 256 {
		t.Errorf("clone lost precision: want 256, got %d", p)
	}
	if p := ctx.Clone(exprtree.Prec(8), exprtree.Prec(24)).Prec(); p != 24 {
		t.Errorf("last precision should win: want 24, got %d", p)
	}
	// 1/3 at 256 bits is closer to the real value than float64 can be.
	third := bin(exprtree.Div, exprtree.Num(1), exprtree.Num(3))
	r := ctx.Eval(third)
	if r.Prec() != 256 {
		t.Errorf("wrong result precision: want 256, got %d", r.Prec())
	}
	three := new(big.Float).SetPrec(256).SetInt64(3)
	prod := new(big.Float).SetPrec(256).Mul(r, three)
	diff := new(big.Float).Sub(prod, big.NewFloat(1))
	if diff.Abs(diff).Cmp(big.NewFloat(math.Ldexp(1, -250))) > 0 {
		t.Errorf("3 * (1/3) is too far from 1: %g", prod)
	}
	defer func() {
		if recover() == nil {
			t.Error("no panic on zero precision")
		}
	}()
	exprtree.NewContext(exprtree.Prec(0))
}

func TestContextAgrees(t *testing.T) {
	// At 53 bits, big.Float rounds the same as float64 as long as nothing
	// overflows within a subexpression.
	ctx := exprtree.NewContext(exprtree.Prec(53))
	xs := []exprtree.Expr{
		exprtree.Num(0),
		exprtree.Num(nz),
		exprtree.Num(2.5),
		exprtree.Num(-3),
		exprtree.Num(0.1),
		exprtree.Num(inf),
		exprtree.Num(nan),
		neg(exprtree.Num(1e300)),
		sample(),
	}
	for _, x := range xs {
		for _, y := range xs {
			for _, e := range []exprtree.Expr{bin(exprtree.Add, x, y), bin(exprtree.Sub, x, neg(y)), bin(exprtree.Mul, group(x), y), bin(exprtree.Div, x, y)} {
				want := exprtree.Eval(e)
				r := ctx.Eval(e)
				if math.IsNaN(want) {
					if r != nil {
						t.Errorf("%v: want error for NaN result, got %g", e, r)
					}
					continue
				}
				if r == nil {
					t.Errorf("%v: want %g, got error %v", e, want, ctx.Err())
					continue
				}
				f, _ := r.Float64()
				if !same(f, want) {
					t.Errorf("%v: want %g, got %g", e, want, f)
				}
			}
		}
	}
}

func TestEvalBig(t *testing.T) {
	r, err := exprtree.EvalBig(sample(), exprtree.Prec(100))
	if err != nil {
		t.Fatal(err)
	}
	if r.Cmp(big.NewFloat(18)) != 0 || r.Prec() != 100 {
		t.Errorf("wrong result: want 18 at prec 100, got %g at prec %d", r, r.Prec())
	}
	r, err = exprtree.EvalBig(bin(exprtree.Div, exprtree.Num(0), exprtree.Num(0)))
	if r != nil || err == nil {
		t.Errorf("want nil and error for 0/0, got %v and %v", r, err)
	}
}

func BenchmarkContextEval(b *testing.B) {
	b.ReportAllocs()
	ctx := exprtree.NewContext(exprtree.Prec(64))
	e := sample()
	for i := 0; i < b.N; i++ {
		ctx.Eval(e)
	}
}
