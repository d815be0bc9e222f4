package flatten

import (
	"testing"

	"github.com/flatkit/flatkit/ir"
	"github.com/flatkit/flatkit/parse"
)

func TestTransformExecute(t *testing.T) {
	for _, tt := range []struct {
		name string
		cfg  Config
		in   string
		want string
	}{
		{
			"shape preserved",
			New().WithMode(TransformMode),
			`{"a":{"b":[1,"x"]}}`,
			`{"a":{"b":[1,"x"]}}`,
		},
		{
			"keys rewritten at every level",
			New().WithMode(TransformMode).WithLowercaseKeys(true),
			`{"User":{"Name":"John","Tags":["A"]}}`,
			`{"user":{"name":"John","tags":["A"]}}`,
		},
		{
			"values rewritten in nested strings",
			New().WithMode(TransformMode).WithValueRule("secret", "***"),
			`{"a":{"b":["the secret","ok"]}}`,
			`{"a":{"b":["the ***","ok"]}}`,
		},
		{
			"coercion and filters",
			New().WithMode(TransformMode).
				WithAutoConvertTypes(true).
				WithRemoveNulls(true).
				WithRemoveEmptyObjects(true),
			`{"a":{"b":"N/A"},"c":"123"}`,
			`{"c":123}`,
		},
		{
			"collision within one object",
			New().WithMode(TransformMode).
				WithLowercaseKeys(true).
				WithHandleKeyCollision(true),
			`{"A":1,"a":2}`,
			`{"a":[1,2]}`,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mustBuild(t, tt.cfg).Execute([]byte(tt.in))
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTransformNodeLeavesInputIntact(t *testing.T) {
	doc, err := parse.ParseString(`{"A":"x"}`)
	if err != nil {
		t.Fatal(err)
	}
	e := mustBuild(t, New().WithMode(TransformMode).WithLowercaseKeys(true))
	out, err := e.TransformNode(doc)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Fields[0].String != "A" {
		t.Errorf("input mutated: %q", doc.Fields[0].String)
	}
	if out.Fields[0].String != "a" {
		t.Errorf("output key = %q, want %q", out.Fields[0].String, "a")
	}
	if ir.Get(out, "a") == nil {
		t.Error("value missing under rewritten key")
	}
}
