package exprtree

import (
	"bytes"
	"io"

	"gopkg.in/yaml.v3"
)

// Documents
//
// A tree document is YAML (and therefore also JSON) with one of four shapes:
//
//	4                                   Num
//	{op: "+", lhs: <doc>, rhs: <doc>}   Binary; op is one of + - * /
//	{op: "-", operand: <doc>}           Unary; op is -
//	{group: <doc>}                      Group
//
// Numbers may be any YAML int or float, including .nan, .inf, and -.inf.
// Operators should be quoted since * starts an alias in YAML. Aliases are
// rejected so that every node has exactly one parent.

// DefaultMaxDepth is the default limit on the depth of decoded trees.
const DefaultMaxDepth = 10000

// DecodeOption is an option for decoding tree documents.
type DecodeOption interface {
	decodeOption(*decodeConfig)
}

type decodeConfig struct {
	maxDepth int
}

type depthopt int

func (o depthopt) decodeOption(c *decodeConfig) {
	c.maxDepth = int(o)
}

// MaxDepth limits the depth of decoded trees to n nodes from root to leaf.
// Deeper documents produce a *DepthError. If n is not positive, there is no
// limit.
func MaxDepth(n int) DecodeOption {
	return depthopt(n)
}

func newDecodeConfig(opts []DecodeOption) decodeConfig {
	c := decodeConfig{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt.decodeOption(&c)
	}
	return c
}

// Unmarshal decodes a single tree document.
func Unmarshal(b []byte, opts ...DecodeOption) (Expr, error) {
	d := NewDecoder(bytes.NewReader(b), opts...)
	e, err := d.Decode()
	if err == io.EOF {
		return nil, &ShapeError{Line: 1, Col: 1, Msg: "empty document"}
	}
	return e, err
}

// Decoder reads a stream of tree documents separated by "---".
type Decoder struct {
	dec *yaml.Decoder
	cfg decodeConfig
}

// NewDecoder creates a decoder reading from r.
func NewDecoder(r io.Reader, opts ...DecodeOption) *Decoder {
	return &Decoder{
		dec: yaml.NewDecoder(r),
		cfg: newDecodeConfig(opts),
	}
}

// Decode decodes the next document in the stream. At the end of the stream,
// the error is io.EOF. Errors describing invalid trees implement InputError;
// other errors come from YAML syntax or the underlying reader.
func (d *Decoder) Decode() (Expr, error) {
	var doc yaml.Node
	if err := d.dec.Decode(&doc); err != nil {
		return nil, err
	}
	return d.cfg.decode(&doc, 1)
}

func (c *decodeConfig) decode(n *yaml.Node, depth int) (Expr, error) {
	if c.maxDepth > 0 && depth > c.maxDepth {
		return nil, &DepthError{Line: n.Line, Col: n.Column, Max: c.maxDepth}
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, &ShapeError{Line: n.Line, Col: n.Column, Msg: "empty document"}
		}
		return c.decode(n.Content[0], depth)
	case yaml.ScalarNode:
		return decodeNum(n)
	case yaml.MappingNode:
		return c.decodeMapping(n, depth)
	case yaml.SequenceNode:
		return nil, &ShapeError{Line: n.Line, Col: n.Column, Msg: "expected number or mapping, got sequence"}
	case yaml.AliasNode:
		return nil, &ShapeError{Line: n.Line, Col: n.Column, Msg: "aliases are not allowed"}
	default:
		return nil, &ShapeError{Line: n.Line, Col: n.Column, Msg: "empty document"}
	}
}

func decodeNum(n *yaml.Node) (Expr, error) {
	switch tag := n.ShortTag(); tag {
	case "!!int", "!!float":
		var v float64
		if err := n.Decode(&v); err != nil {
			return nil, &ShapeError{Line: n.Line, Col: n.Column, Msg: "invalid number " + quote(n.Value)}
		}
		return Num(v), nil
	default:
		return nil, &ShapeError{Line: n.Line, Col: n.Column, Msg: "expected number, got " + tag + " " + quote(n.Value)}
	}
}

func (c *decodeConfig) decodeMapping(n *yaml.Node, depth int) (Expr, error) {
	fields := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		if k.Kind != yaml.ScalarNode {
			return nil, &ShapeError{Line: k.Line, Col: k.Column, Msg: "mapping keys must be strings"}
		}
		if _, ok := fields[k.Value]; ok {
			return nil, &ShapeError{Line: k.Line, Col: k.Column, Msg: "duplicate key " + quote(k.Value)}
		}
		fields[k.Value] = n.Content[i+1]
	}
	switch {
	case fields["group"] != nil:
		if err := onlyKeys(n, fields, "group"); err != nil {
			return nil, err
		}
		inner, err := c.decode(fields["group"], depth+1)
		if err != nil {
			return nil, err
		}
		return Group{Inner: inner}, nil
	case fields["operand"] != nil:
		if err := onlyKeys(n, fields, "op", "operand"); err != nil {
			return nil, err
		}
		sym, err := opsym(fields["op"])
		if err != nil {
			return nil, err
		}
		op, ok := unop(sym.Value)
		if !ok {
			return nil, &OperatorError{Line: sym.Line, Col: sym.Column, Operator: sym.Value, Unary: true}
		}
		x, err := c.decode(fields["operand"], depth+1)
		if err != nil {
			return nil, err
		}
		return Unary{Op: op, Operand: x}, nil
	case fields["lhs"] != nil || fields["rhs"] != nil:
		if err := onlyKeys(n, fields, "op", "lhs", "rhs"); err != nil {
			return nil, err
		}
		sym, err := opsym(fields["op"])
		if err != nil {
			return nil, err
		}
		op, ok := binop(sym.Value)
		if !ok {
			return nil, &OperatorError{Line: sym.Line, Col: sym.Column, Operator: sym.Value, Unary: false}
		}
		l, err := c.decode(fields["lhs"], depth+1)
		if err != nil {
			return nil, err
		}
		r, err := c.decode(fields["rhs"], depth+1)
		if err != nil {
			return nil, err
		}
		return Binary{Op: op, LHS: l, RHS: r}, nil
	default:
		return nil, &ShapeError{Line: n.Line, Col: n.Column, Msg: "mapping is not a group, unary, or binary operation"}
	}
}

// onlyKeys checks that a mapping has the given keys and no others.
func onlyKeys(n *yaml.Node, fields map[string]*yaml.Node, keys ...string) error {
	for _, k := range keys {
		if fields[k] == nil {
			return &ShapeError{Line: n.Line, Col: n.Column, Msg: "missing key " + quote(k)}
		}
	}
	if len(fields) == len(keys) {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		if !contains(keys, k.Value) {
			return &ShapeError{Line: k.Line, Col: k.Column, Msg: "unexpected key " + quote(k.Value)}
		}
	}
	return nil
}

func contains(keys []string, k string) bool {
	for _, s := range keys {
		if s == k {
			return true
		}
	}
	return false
}

// opsym checks that an op value is a string scalar.
func opsym(op *yaml.Node) (*yaml.Node, error) {
	if op.Kind != yaml.ScalarNode || op.ShortTag() != "!!str" {
		return nil, &ShapeError{Line: op.Line, Col: op.Column, Msg: "op must be a string"}
	}
	return op, nil
}
