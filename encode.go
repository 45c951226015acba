package exprtree

import (
	"math"

	"gopkg.in/yaml.v3"
)

// Marshal encodes an expression tree as a flow-style YAML document that
// Unmarshal decodes to an equal tree.
func Marshal(e Expr) ([]byte, error) {
	return yaml.Marshal(encode(e))
}

func encode(e Expr) *yaml.Node {
	switch e := e.(type) {
	case Binary:
		if !e.Op.Valid() {
			panic("exprtree: invalid binary operator " + e.Op.String())
		}
		return mapping("op", opnode(e.Op.String()), "lhs", encode(e.LHS), "rhs", encode(e.RHS))
	case Unary:
		if !e.Op.Valid() {
			panic("exprtree: invalid unary operator " + e.Op.String())
		}
		return mapping("op", opnode(e.Op.String()), "operand", encode(e.Operand))
	case Group:
		return mapping("group", encode(e.Inner))
	case Num:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: yamlnum(float64(e))}
	case nil:
		panic("exprtree: Marshal of nil expression")
	default:
		panic("exprtree: unknown expression type")
	}
}

// mapping creates a flow mapping node from alternating keys and values.
func mapping(kv ...interface{}) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Style: yaml.FlowStyle}
	for i := 0; i < len(kv); i += 2 {
		k := &yaml.Node{Kind: yaml.ScalarNode, Value: kv[i].(string)}
		n.Content = append(n.Content, k, kv[i+1].(*yaml.Node))
	}
	return n
}

func opnode(sym string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Style: yaml.DoubleQuotedStyle, Value: sym}
}

// yamlnum formats a number so that YAML resolves it to the same float64.
func yamlnum(v float64) string {
	switch {
	case math.IsNaN(v):
		return ".nan"
	case math.IsInf(v, 1):
		return ".inf"
	case math.IsInf(v, -1):
		return "-.inf"
	case v == 0 && math.Signbit(v):
		// -0 alone resolves as the integer 0.
		return "-0.0"
	default:
		return FormatNum(v)
	}
}
