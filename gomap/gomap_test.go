package gomap

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/flatkit/flatkit/encode"
	"github.com/flatkit/flatkit/ir"
)

func TestToIR(t *testing.T) {
	tests := []struct {
		name     string
		in       any
		expected string
	}{
		{"nil", nil, `null`},
		{"bool", true, `true`},
		{"int", 42, `42`},
		{"float", 1.5, `1.5`},
		{"string", "x", `"x"`},
		{"slice", []any{1, "a", nil}, `[1,"a",null]`},
		{"map sorted", map[string]any{"b": 2, "a": 1}, `{"a":1,"b":2}`},
		{"nested", map[string]any{"l": []int{1, 2}}, `{"l":[1,2]}`},
		{"pointer", func() any { v := 7; return &v }(), `7`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := ToIR(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if got := encode.MustString(node, encode.EncodeWire(true)); got != tt.expected {
				t.Errorf("got %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestToIRStruct(t *testing.T) {
	type inner struct {
		Street string `json:"street"`
	}
	type person struct {
		Name    string `json:"name"`
		Age     int    `json:"age"`
		Address inner  `json:"address"`
		skip    int
		Omitted string `json:"-"`
	}
	_ = person{}.skip
	node, err := ToIR(person{Name: "alice", Age: 30, Address: inner{Street: "main"}})
	if err != nil {
		t.Fatal(err)
	}
	expected := `{"name":"alice","age":30,"address":{"street":"main"}}`
	if got := encode.MustString(node, encode.EncodeWire(true)); got != expected {
		t.Errorf("got %s, want %s", got, expected)
	}
}

func TestToIRUnsupported(t *testing.T) {
	if _, err := ToIR(map[int]any{1: "x"}); err == nil {
		t.Errorf("no error for int-keyed map")
	}
	if _, err := ToIR(make(chan int)); err == nil {
		t.Errorf("no error for channel")
	}
}

func TestToAny(t *testing.T) {
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: "a", Val: ir.FromInt(1)},
		{Key: "b", Val: ir.FromSlice([]*ir.Node{ir.FromString("x"), ir.Null()})},
	})
	got := ToAny(node)
	want := map[string]any{
		"a": int64(1),
		"b": []any{"x", nil},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ToAny mismatch (-want +got):\n%s", diff)
	}
}

func TestFromIR(t *testing.T) {
	type inner struct {
		Street string `json:"street"`
	}
	type person struct {
		Name    string   `json:"name"`
		Age     int      `json:"age"`
		Address inner    `json:"address"`
		Tags    []string `json:"tags"`
		Score   *float64 `json:"score"`
	}
	in := person{
		Name:    "Ada",
		Age:     36,
		Address: inner{Street: "Main"},
		Tags:    []string{"a", "b"},
		Score:   func() *float64 { v := 1.5; return &v }(),
	}
	node, err := ToIR(in)
	if err != nil {
		t.Fatal(err)
	}
	var out person
	if err := FromIR(node, &out); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFromIRAny(t *testing.T) {
	node, err := ToIR(map[string]any{"a": []any{int64(1), "x"}})
	if err != nil {
		t.Fatal(err)
	}
	var out any
	if err := FromIR(node, &out); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"a": []any{int64(1), "x"}}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFromIRNullClears(t *testing.T) {
	out := func() *int { v := 9; return &v }()
	if err := FromIR(ir.Null(), &out); err != nil {
		t.Fatal(err)
	}
	if out != nil {
		t.Errorf("got %v, want nil", out)
	}
}

func TestFromIRMismatch(t *testing.T) {
	var out int
	err := FromIR(ir.FromString("x"), &out)
	var ue *UnmarshalError
	if !errors.As(err, &ue) {
		t.Fatalf("got %v, want UnmarshalError", err)
	}
}

func TestFromIRRejectsNonPointer(t *testing.T) {
	var out int
	if err := FromIR(ir.FromInt(1), out); err == nil {
		t.Error("expected error for non-pointer target")
	}
}
