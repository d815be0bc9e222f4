package encode

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/flatkit/flatkit/format"
	"github.com/flatkit/flatkit/ir"
)

type EncState struct {
	depth, indent int

	format format.Format
	wire   bool

	Color func(ir.Type, ColorAttr, string) string
}

func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	if es.format.IsYAML() {
		return encodeYAML(node, w, es)
	}
	if err := encodeJSON(node, w, es); err != nil {
		return err
	}
	if es.wire {
		return nil
	}
	return writeString(w, "\n")
}

func encodeJSON(node *ir.Node, w io.Writer, es *EncState) error {
	switch node.Type {
	case ir.NullType:
		return writeString(w, es.color(node.Type, ValueColor, "null"))
	case ir.BoolType:
		v := "false"
		if node.Bool {
			v = "true"
		}
		return writeString(w, es.color(node.Type, ValueColor, v))
	case ir.NumberType:
		return writeString(w, es.color(node.Type, ValueColor, node.NumberText()))
	case ir.StringType:
		return writeString(w, es.color(node.Type, ValueColor, jsonString(node.String)))
	case ir.ArrayType:
		return encodeJSONArray(node, w, es)
	case ir.ObjectType:
		return encodeJSONObject(node, w, es)
	}
	return nil
}

func encodeJSONArray(node *ir.Node, w io.Writer, es *EncState) error {
	open := es.color(node.Type, SepColor, "[")
	if len(node.Values) == 0 {
		return writeString(w, open+es.color(node.Type, SepColor, "]"))
	}
	if err := writeString(w, open); err != nil {
		return err
	}
	es.depth++
	for i, val := range node.Values {
		if i > 0 {
			if err := writeString(w, es.color(node.Type, SepColor, ",")); err != nil {
				return err
			}
		}
		if err := es.newlineIndent(w); err != nil {
			return err
		}
		if err := encodeJSON(val, w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := es.newlineIndent(w); err != nil {
		return err
	}
	return writeString(w, es.color(node.Type, SepColor, "]"))
}

func encodeJSONObject(node *ir.Node, w io.Writer, es *EncState) error {
	open := es.color(node.Type, SepColor, "{")
	if len(node.Fields) == 0 {
		return writeString(w, open+es.color(node.Type, SepColor, "}"))
	}
	if err := writeString(w, open); err != nil {
		return err
	}
	es.depth++
	sep := ":"
	if !es.wire {
		sep = ": "
	}
	for i := range node.Fields {
		if i > 0 {
			if err := writeString(w, es.color(node.Type, SepColor, ",")); err != nil {
				return err
			}
		}
		if err := es.newlineIndent(w); err != nil {
			return err
		}
		field := es.color(node.Type, FieldColor, jsonString(node.Fields[i].String))
		if err := writeString(w, field+es.color(node.Type, SepColor, sep)); err != nil {
			return err
		}
		if err := encodeJSON(node.Values[i], w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := es.newlineIndent(w); err != nil {
		return err
	}
	return writeString(w, es.color(node.Type, SepColor, "}"))
}

func (es *EncState) newlineIndent(w io.Writer) error {
	if es.wire {
		return nil
	}
	return writeString(w, "\n"+strings.Repeat(" ", es.depth*es.indent))
}

func (es *EncState) color(t ir.Type, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, a, s)
}

// jsonString renders s as a JSON string literal. The standard encoder
// already handles escaping and invalid UTF-8; HTML escaping is turned
// off so "<" and "&" pass through untouched.
func jsonString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return `""`
	}
	return strings.TrimRight(buf.String(), "\n")
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
