package parse

import (
	"fmt"
	"math"

	"github.com/goccy/go-yaml"

	"github.com/flatkit/flatkit/format"
	"github.com/flatkit/flatkit/ir"
)

func parseYAML(d []byte) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, &ParseError{Format: format.YAMLFormat, Err: err}
	}
	node, err := fromYAML(v)
	if err != nil {
		return nil, &ParseError{Format: format.YAMLFormat, Err: err}
	}
	return node, nil
}

func fromYAML(v any) (*ir.Node, error) {
	switch vv := v.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(vv), nil
	case string:
		return ir.FromString(vv), nil
	case int:
		return ir.FromInt(int64(vv)), nil
	case int64:
		return ir.FromInt(vv), nil
	case uint64:
		if vv > math.MaxInt64 {
			return ir.FromFloat(float64(vv)), nil
		}
		return ir.FromInt(int64(vv)), nil
	case float64:
		return ir.FromFloat(vv), nil
	case yaml.MapSlice:
		res := ir.Object()
		for _, item := range vv {
			key, ok := item.Key.(string)
			if !ok {
				key = fmt.Sprint(item.Key)
			}
			val, err := fromYAML(item.Value)
			if err != nil {
				return nil, err
			}
			res.Append(key, val)
		}
		return res, nil
	case []any:
		res := ir.Array()
		for _, item := range vv {
			val, err := fromYAML(item)
			if err != nil {
				return nil, err
			}
			res.Push(val)
		}
		return res, nil
	case map[string]any:
		// not produced with ordered decoding, but tolerate it
		res := ir.Object()
		for key, item := range vv {
			val, err := fromYAML(item)
			if err != nil {
				return nil, err
			}
			res.Append(key, val)
		}
		return res, nil
	}
	return nil, fmt.Errorf("unsupported yaml value %T", v)
}
