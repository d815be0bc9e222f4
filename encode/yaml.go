package encode

import (
	"io"

	"github.com/goccy/go-yaml"

	"github.com/flatkit/flatkit/ir"
)

func encodeYAML(node *ir.Node, w io.Writer, es *EncState) error {
	d, err := yaml.MarshalWithOptions(toYAML(node), yaml.Indent(es.indent))
	if err != nil {
		return err
	}
	return writeString(w, string(d))
}

// toYAML converts a node into the ordered forms the yaml marshaler
// understands. Objects become yaml.MapSlice so field order is kept.
func toYAML(node *ir.Node) any {
	switch node.Type {
	case ir.NullType:
		return nil
	case ir.BoolType:
		return node.Bool
	case ir.NumberType:
		if node.Int64 != nil {
			return *node.Int64
		}
		return node.Float()
	case ir.StringType:
		return node.String
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, val := range node.Values {
			res[i] = toYAML(val)
		}
		return res
	case ir.ObjectType:
		res := make(yaml.MapSlice, len(node.Fields))
		for i := range node.Fields {
			res[i] = yaml.MapItem{
				Key:   node.Fields[i].String,
				Value: toYAML(node.Values[i]),
			}
		}
		return res
	}
	return nil
}
