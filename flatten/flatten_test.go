package flatten

import (
	"testing"

	"github.com/flatkit/flatkit/ir"
	"github.com/flatkit/flatkit/parse"

	jsonpatch "github.com/evanphx/json-patch"
)

func mustBuild(t *testing.T, c Config) *Engine {
	t.Helper()
	e, err := c.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return e
}

func TestFlattenExecute(t *testing.T) {
	for _, tt := range []struct {
		name string
		cfg  Config
		in   string
		want string
	}{
		{
			"nested object",
			New(),
			`{"user":{"name":"John","age":30}}`,
			`{"user.name":"John","user.age":30}`,
		},
		{
			"array indices",
			New(),
			`{"items":[1,2,{"nested":"value"}]}`,
			`{"items.0":1,"items.1":2,"items.2.nested":"value"}`,
		},
		{
			"custom separator",
			New().WithSeparator("_"),
			`{"a":{"b":[true]}}`,
			`{"a_b_0":true}`,
		},
		{
			"empty containers are leaves",
			New(),
			`{"a":{},"b":[],"c":{"d":{}}}`,
			`{"a":{},"b":[],"c.d":{}}`,
		},
		{
			"scalar root",
			New(),
			`"hello"`,
			`"hello"`,
		},
		{
			"empty object root",
			New(),
			`{}`,
			`{}`,
		},
		{
			"empty array root",
			New(),
			`[]`,
			`{}`,
		},
		{
			"lowercase keys",
			New().WithLowercaseKeys(true),
			`{"User":{"Name":"John"}}`,
			`{"user.name":"John"}`,
		},
		{
			"auto convert types",
			New().WithAutoConvertTypes(true),
			`{"id":"123","active":"yes","status":"N/A"}`,
			`{"id":123,"active":true,"status":null}`,
		},
		{
			"filters drop empties",
			New().
				WithRemoveEmptyStrings(true).
				WithRemoveNulls(true).
				WithRemoveEmptyObjects(true).
				WithRemoveEmptyArrays(true),
			`{"a":"","b":null,"c":{},"d":[],"e":1}`,
			`{"e":1}`,
		},
		{
			"value rule literal",
			New().WithValueRule("secret", "***"),
			`{"token":"my secret token"}`,
			`{"token":"my *** token"}`,
		},
		{
			"value rule regex",
			New().WithValueRule("regex:^user_(\\d+)$", "id-$1"),
			`{"a":"user_42","b":"user_x"}`,
			`{"a":"id-42","b":"user_x"}`,
		},
		{
			"key rule",
			New().WithKeyRule("user.", ""),
			`{"user":{"name":"John"}}`,
			`{"name":"John"}`,
		},
		{
			"keep expression",
			New().WithKeepWhere(`hasPrefix(key, "user.")`),
			`{"user":{"name":"John"},"other":1}`,
			`{"user.name":"John"}`,
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

func TestFlattenCollisions(t *testing.T) {
	for _, tt := range []struct {
		name string
		cfg  Config
		in   string
		want string
	}{
		{
			"avoid suffixes colliding keys",
			New().WithKeyRule("first", "name").WithKeyRule("last", "name"),
			`{"first":"A","last":"B"}`,
			`{"name.0":"A","name.1":"B"}`,
		},
		{
			"avoid leaves unique keys alone",
			New().WithKeyRule("first", "name"),
			`{"first":"A","other":"B"}`,
			`{"name":"A","other":"B"}`,
		},
		{
			"collect merges into array",
			New().
				WithKeyRule("first", "name").
				WithKeyRule("last", "name").
				WithHandleKeyCollision(true),
			`{"first":"A","last":"B"}`,
			`{"name":["A","B"]}`,
		},
		{
			"collect filters merged array elementwise",
			New().
				WithKeyRule("first", "v").
				WithKeyRule("last", "v").
				WithHandleKeyCollision(true).
				WithRemoveNulls(true),
			`{"first":null,"last":"B"}`,
			`{"v":["B"]}`,
		},
		{
			"collect drops fully filtered array",
			New().
				WithKeyRule("first", "v").
				WithKeyRule("last", "v").
				WithHandleKeyCollision(true).
				WithRemoveNulls(true),
			`{"first":null,"last":null,"keep":1}`,
			`{"keep":1}`,
		},
		{
			"lowercase induced collision",
			New().WithLowercaseKeys(true).WithHandleKeyCollision(true),
			`{"Name":"A","name":"B"}`,
			`{"name":["A","B"]}`,
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

func TestFlattenNodeEntries(t *testing.T) {
	doc, err := parse.ParseString(`{"a":{"b":1,"c":[true,false]}}`)
	if err != nil {
		t.Fatal(err)
	}
	entries, err := mustBuild(t, New()).FlattenNode(doc)
	if err != nil {
		t.Fatal(err)
	}
	wantKeys := []string{"a.b", "a.c.0", "a.c.1"}
	if len(entries) != len(wantKeys) {
		t.Fatalf("got %d entries, want %d", len(entries), len(wantKeys))
	}
	for i, k := range wantKeys {
		if entries[i].Key != k {
			t.Errorf("entry %d: got key %q, want %q", i, entries[i].Key, k)
		}
	}
}

func TestFlattenNodeLeavesInputIntact(t *testing.T) {
	doc, err := parse.ParseString(`{"n":"42"}`)
	if err != nil {
		t.Fatal(err)
	}
	e := mustBuild(t, New().WithAutoConvertTypes(true))
	if _, err := e.FlattenNode(doc); err != nil {
		t.Fatal(err)
	}
	if got := ir.Get(doc, "n"); got.Type != ir.StringType || got.String != "42" {
		t.Errorf("input mutated: %v", got)
	}
}

func TestFlattenNestedParallelOrder(t *testing.T) {
	in := `{"r":{"a":1,"b":{"x":2},"c":[3,4],"d":5,"e":6}}`
	seq, err := mustBuild(t, New()).Execute([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	par, err := mustBuild(t, New().WithNestedParallelThreshold(2).WithWorkers(4)).Execute([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if string(seq) != string(par) {
		t.Errorf("parallel output %s differs from sequential %s", par, seq)
	}
}

func TestFlattenRoundTrip(t *testing.T) {
	fl := mustBuild(t, New())
	un := mustBuild(t, New().WithMode(UnflattenMode))
	for _, in := range []string{
		`{"user":{"name":"John","age":30}}`,
		`{"items":[1,2,{"nested":"value"}]}`,
		`{"a":{"b":[{"c":null},{"d":""}]},"e":{}}`,
		`{"deep":{"deeper":{"deepest":[[1],[2,3]]}}}`,
	} {
		flat, err := fl.Execute([]byte(in))
		if err != nil {
			t.Fatalf("%s: flatten: %v", in, err)
		}
		back, err := un.Execute(flat)
		if err != nil {
			t.Fatalf("%s: unflatten: %v", in, err)
		}
		want, err := parse.ParseString(in)
		if err != nil {
			t.Fatal(err)
		}
		got, err := parse.Parse(back)
		if err != nil {
			t.Fatal(err)
		}
		if !ir.Equal(got, want) {
			t.Errorf("round trip of %s produced %s", in, back)
		}
		if !jsonpatch.Equal([]byte(in), back) {
			t.Errorf("round trip of %s not JSON-equal: %s", in, back)
		}
	}
}

func TestLowercaseIdempotent(t *testing.T) {
	e := mustBuild(t, New().WithLowercaseKeys(true))
	once, err := e.Execute([]byte(`{"User":{"NAME":"John"}}`))
	if err != nil {
		t.Fatal(err)
	}
	twice, err := e.Execute(once)
	if err != nil {
		t.Fatal(err)
	}
	if string(once) != string(twice) {
		t.Errorf("second pass changed output: %s vs %s", once, twice)
	}
}
