package flatdiff

import (
	"bytes"
	"strings"
	"testing"

	"github.com/flatkit/flatkit/encode"
	"github.com/flatkit/flatkit/flatten"
	"github.com/flatkit/flatkit/parse"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

func diffDocs(t *testing.T, from, to string) []Change {
	t.Helper()
	e, err := flatten.New().Build()
	if err != nil {
		t.Fatal(err)
	}
	fromNode, err := parse.ParseString(from)
	if err != nil {
		t.Fatal(err)
	}
	toNode, err := parse.ParseString(to)
	if err != nil {
		t.Fatal(err)
	}
	changes, err := Diff(fromNode, toNode, e)
	if err != nil {
		t.Fatal(err)
	}
	return changes
}

func TestDiff(t *testing.T) {
	changes := diffDocs(t,
		`{"user":{"name":"John","age":30},"gone":true}`,
		`{"user":{"name":"Jane","age":30},"new":[1]}`,
	)
	want := []struct {
		kind Kind
		key  string
	}{
		{Modified, "user.name"},
		{Added, "new.0"},
		{Removed, "gone"},
	}
	if len(changes) != len(want) {
		t.Fatalf("got %d changes, want %d: %+v", len(changes), len(want), changes)
	}
	for i, w := range want {
		if changes[i].Kind != w.kind || changes[i].Key != w.key {
			t.Errorf("change %d: got %s %q, want %s %q",
				i, changes[i].Kind, changes[i].Key, w.kind, w.key)
		}
	}
}

func TestDiffShapeInsensitive(t *testing.T) {
	// the same flat content nested differently is not a change
	if changes := diffDocs(t, `{"a":{"b":1}}`, `{"a.b":1}`); len(changes) != 0 {
		t.Errorf("got %+v, want no changes", changes)
	}
}

func TestDiffEqualDocs(t *testing.T) {
	if changes := diffDocs(t, `{"a":[1,2]}`, `{"a":[1,2]}`); len(changes) != 0 {
		t.Errorf("got %+v, want no changes", changes)
	}
}

func TestTextDiff(t *testing.T) {
	changes := diffDocs(t, `{"msg":"hello world"}`, `{"msg":"hello there"}`)
	if len(changes) != 1 {
		t.Fatalf("got %d changes, want 1", len(changes))
	}
	diffs := changes[0].TextDiff()
	if diffs == nil {
		t.Fatal("no text diff for string pair")
	}
	var from, to strings.Builder
	for _, d := range diffs {
		if d.Type != diffpatch.DiffInsert {
			from.WriteString(d.Text)
		}
		if d.Type != diffpatch.DiffDelete {
			to.WriteString(d.Text)
		}
	}
	if from.String() != "hello world" || to.String() != "hello there" {
		t.Errorf("diff does not reproduce inputs: %q, %q", from.String(), to.String())
	}
}

func TestTextDiffNonString(t *testing.T) {
	changes := diffDocs(t, `{"n":1}`, `{"n":2}`)
	if len(changes) != 1 {
		t.Fatalf("got %d changes, want 1", len(changes))
	}
	if diffs := changes[0].TextDiff(); diffs != nil {
		t.Errorf("got %+v, want nil for numeric pair", diffs)
	}
}

func TestAsNode(t *testing.T) {
	changes := diffDocs(t, `{"a":1,"b":2}`, `{"b":3,"c":4}`)
	got := encode.MustString(AsNode(changes), encode.EncodeWire(true))
	want := `{"b":{"from":2,"to":3},"c":{"to":4},"a":{"from":1}}`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestRender(t *testing.T) {
	changes := diffDocs(t, `{"a":1,"b":2}`, `{"b":3,"c":4}`)
	var buf bytes.Buffer
	if err := Render(&buf, changes, false); err != nil {
		t.Fatal(err)
	}
	want := "~ b: 2 -> 3\n+ c: 4\n- a: 1\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}
