package gomap

import (
	"fmt"
	"math"
	"reflect"

	"github.com/flatkit/flatkit/ir"
)

var nodeType = reflect.TypeOf((*ir.Node)(nil))

// FromIR decodes node into the Go value pointed to by v. Supported
// targets mirror ToIR: booleans, numbers, strings, slices, maps with
// string keys, structs with exported fields (json tags honored),
// pointers, any, and *ir.Node for pass-through.
func FromIR(node *ir.Node, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &UnmarshalError{Message: fmt.Sprintf("target %T is not a non-nil pointer", v)}
	}
	return fromIR(node, rv.Elem(), "")
}

func fromIR(node *ir.Node, dst reflect.Value, path string) error {
	if dst.Type() == nodeType {
		dst.Set(reflect.ValueOf(node))
		return nil
	}
	if dst.Kind() == reflect.Pointer {
		if node.Type == ir.NullType {
			dst.SetZero()
			return nil
		}
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return fromIR(node, dst.Elem(), path)
	}
	if dst.Kind() == reflect.Interface && dst.NumMethod() == 0 {
		if node.Type == ir.NullType {
			dst.SetZero()
			return nil
		}
		dst.Set(reflect.ValueOf(ToAny(node)))
		return nil
	}
	switch node.Type {
	case ir.NullType:
		dst.SetZero()
		return nil
	case ir.BoolType:
		if dst.Kind() != reflect.Bool {
			return mismatch(node, dst, path)
		}
		dst.SetBool(node.Bool)
		return nil
	case ir.StringType:
		if dst.Kind() != reflect.String {
			return mismatch(node, dst, path)
		}
		dst.SetString(node.String)
		return nil
	case ir.NumberType:
		return numberInto(node, dst, path)
	case ir.ArrayType:
		return arrayInto(node, dst, path)
	case ir.ObjectType:
		return objectInto(node, dst, path)
	}
	return mismatch(node, dst, path)
}

func numberInto(node *ir.Node, dst reflect.Value, path string) error {
	switch dst.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if node.Int64 == nil {
			return mismatch(node, dst, path)
		}
		if dst.OverflowInt(*node.Int64) {
			return &UnmarshalError{FieldPath: path, Message: fmt.Sprintf("%s overflows %s", node.NumberText(), dst.Type())}
		}
		dst.SetInt(*node.Int64)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if node.Int64 == nil || *node.Int64 < 0 {
			return mismatch(node, dst, path)
		}
		u := uint64(*node.Int64)
		if dst.OverflowUint(u) {
			return &UnmarshalError{FieldPath: path, Message: fmt.Sprintf("%s overflows %s", node.NumberText(), dst.Type())}
		}
		dst.SetUint(u)
		return nil
	case reflect.Float32, reflect.Float64:
		f := node.Float()
		if dst.Kind() == reflect.Float32 && !math.IsInf(f, 0) && math.Abs(f) > math.MaxFloat32 {
			return &UnmarshalError{FieldPath: path, Message: fmt.Sprintf("%s overflows float32", node.NumberText())}
		}
		dst.SetFloat(f)
		return nil
	}
	return mismatch(node, dst, path)
}

func arrayInto(node *ir.Node, dst reflect.Value, path string) error {
	switch dst.Kind() {
	case reflect.Slice:
		res := reflect.MakeSlice(dst.Type(), len(node.Values), len(node.Values))
		for i, v := range node.Values {
			if err := fromIR(v, res.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		dst.Set(res)
		return nil
	case reflect.Array:
		if dst.Len() != len(node.Values) {
			return &UnmarshalError{FieldPath: path, Message: fmt.Sprintf("array length %d does not match %s", len(node.Values), dst.Type())}
		}
		for i, v := range node.Values {
			if err := fromIR(v, dst.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		return nil
	}
	return mismatch(node, dst, path)
}

func objectInto(node *ir.Node, dst reflect.Value, path string) error {
	switch dst.Kind() {
	case reflect.Map:
		if dst.Type().Key().Kind() != reflect.String {
			return mismatch(node, dst, path)
		}
		res := reflect.MakeMapWithSize(dst.Type(), len(node.Fields))
		for i := range node.Fields {
			key := node.Fields[i].String
			el := reflect.New(dst.Type().Elem()).Elem()
			if err := fromIR(node.Values[i], el, joinPath(path, key)); err != nil {
				return err
			}
			res.SetMapIndex(reflect.ValueOf(key).Convert(dst.Type().Key()), el)
		}
		dst.Set(res)
		return nil
	case reflect.Struct:
		t := dst.Type()
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
				if n, _, _ := cutComma(tag); n != "" {
					name = n
				}
			}
			val := ir.Get(node, name)
			if val == nil {
				continue
			}
			if err := fromIR(val, dst.Field(i), joinPath(path, name)); err != nil {
				return err
			}
		}
		return nil
	}
	return mismatch(node, dst, path)
}

func mismatch(node *ir.Node, dst reflect.Value, path string) error {
	return &UnmarshalError{
		FieldPath: path,
		Message:   fmt.Sprintf("cannot decode %s into %s", node.Type, dst.Type()),
	}
}
