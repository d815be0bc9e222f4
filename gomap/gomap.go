package gomap

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"github.com/flatkit/flatkit/ir"
)

// ToIR converts a Go value to an IR node. Supported inputs are nil,
// booleans, numbers, strings, json.Number, slices, arrays, maps with
// string keys, structs with exported fields, and pointers to any of
// these. Map keys are sorted.
func ToIR(v any) (*ir.Node, error) {
	return toIR(v, "")
}

func toIR(v any, path string) (*ir.Node, error) {
	switch x := v.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(x), nil
	case string:
		return ir.FromString(x), nil
	case json.Number:
		return ir.FromNumber(x.String()), nil
	case *ir.Node:
		return x, nil
	}

	val := reflect.ValueOf(v)
	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.FromInt(val.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := val.Uint()
		if u > math.MaxInt64 {
			return ir.FromFloat(float64(u)), nil
		}
		return ir.FromInt(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return ir.FromFloat(val.Float()), nil
	case reflect.Pointer, reflect.Interface:
		if val.IsNil() {
			return ir.Null(), nil
		}
		return toIR(val.Elem().Interface(), path)
	case reflect.Slice, reflect.Array:
		res := ir.Array()
		for i := 0; i < val.Len(); i++ {
			el, err := toIR(val.Index(i).Interface(), fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			res.Push(el)
		}
		return res, nil
	case reflect.Map:
		if val.Type().Key().Kind() != reflect.String {
			return nil, &MarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("map key type %s is not a string", val.Type().Key()),
			}
		}
		fields := make(map[string]*ir.Node, val.Len())
		for _, k := range val.MapKeys() {
			ks := k.String()
			el, err := toIR(val.MapIndex(k).Interface(), joinPath(path, ks))
			if err != nil {
				return nil, err
			}
			fields[ks] = el
		}
		return ir.FromMap(fields), nil
	case reflect.Struct:
		res := ir.Object()
		t := val.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name := f.Name
			if tag, ok := f.Tag.Lookup("json"); ok {
				if tag == "-" {
					continue
				}
				if n, _, found := cutComma(tag); found || n != "" {
					if n != "" {
						name = n
					}
				}
			}
			el, err := toIR(val.Field(i).Interface(), joinPath(path, name))
			if err != nil {
				return nil, err
			}
			res.Append(name, el)
		}
		return res, nil
	}
	return nil, &MarshalError{
		FieldPath: path,
		Message:   fmt.Sprintf("unsupported type %T", v),
	}
}

// ToAny converts an IR node to native Go containers: map[string]any,
// []any, string, bool, int64, float64, or nil. Object field order is
// lost, so this is for interop with order-blind consumers.
func ToAny(node *ir.Node) any {
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
		for i, v := range node.Values {
			res[i] = ToAny(v)
		}
		return res
	case ir.ObjectType:
		res := make(map[string]any, len(node.Fields))
		for i := range node.Fields {
			res[node.Fields[i].String] = ToAny(node.Values[i])
		}
		return res
	}
	return nil
}

func joinPath(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}

func cutComma(tag string) (name, rest string, found bool) {
	for i := 0; i < len(tag); i++ {
		if tag[i] == ',' {
			return tag[:i], tag[i+1:], true
		}
	}
	return tag, "", false
}
