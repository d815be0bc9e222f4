package encode

import (
	"bytes"
	"testing"

	"github.com/flatkit/flatkit/format"
	"github.com/flatkit/flatkit/ir"
	"github.com/flatkit/flatkit/parse"
)

func TestEncodeWire(t *testing.T) {
	tests := []struct {
		name     string
		node     *ir.Node
		expected string
	}{
		{"null", ir.Null(), `null`},
		{"bool", ir.FromBool(true), `true`},
		{"int", ir.FromInt(42), `42`},
		{"number text preserved", ir.FromNumber("1.50"), `1.50`},
		{"string escaping", ir.FromString("a\"b\nc"), `"a\"b\nc"`},
		{"no html escaping", ir.FromString("a<b&c"), `"a<b&c"`},
		{"empty object", ir.Object(), `{}`},
		{"empty array", ir.Array(), `[]`},
		{"object order", ir.FromKeyVals([]ir.KeyVal{
			{Key: "z", Val: ir.FromInt(1)},
			{Key: "a", Val: ir.FromInt(2)},
		}), `{"z":1,"a":2}`},
		{"array nesting", ir.FromSlice([]*ir.Node{
			ir.FromInt(1),
			ir.FromKeyVals([]ir.KeyVal{{Key: "b", Val: ir.Null()}}),
		}), `[1,{"b":null}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := bytes.NewBuffer(nil)
			if err := Encode(tt.node, buf, EncodeWire(true)); err != nil {
				t.Fatal(err)
			}
			if got := buf.String(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestEncodePretty(t *testing.T) {
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: "a", Val: ir.FromInt(1)},
		{Key: "b", Val: ir.FromSlice([]*ir.Node{ir.FromString("x")})},
	})
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf); err != nil {
		t.Fatal(err)
	}
	expected := `{
  "a": 1,
  "b": [
    "x"
  ]
}
`
	if got := buf.String(); got != expected {
		t.Errorf("got:\n%s\nwant:\n%s", got, expected)
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		`{"z":1,"a":"two","list":[1,2.50,null],"empty":{},"nested":{"ok":true}}`,
		`[[],{},null,"s"]`,
		`"scalar"`,
	}
	for _, in := range inputs {
		node, err := parse.ParseString(in)
		if err != nil {
			t.Fatal(err)
		}
		if got := MustString(node, EncodeWire(true)); got != in {
			t.Errorf("round trip %q -> %q", in, got)
		}
	}
}

func TestEncodeYAML(t *testing.T) {
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: "z", Val: ir.FromInt(1)},
		{Key: "a", Val: ir.FromBool(true)},
	})
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, EncodeFormat(format.YAMLFormat)); err != nil {
		t.Fatal(err)
	}
	expected := "z: 1\na: true\n"
	if got := buf.String(); got != expected {
		t.Errorf("got %q, want %q", got, expected)
	}
}
