package flatten

import (
	"errors"
	"fmt"
	"testing"
)

func TestExecuteBatchOrder(t *testing.T) {
	for _, tt := range []struct {
		name string
		cfg  Config
	}{
		{"sequential", New()},
		{"parallel", New().WithParallelThreshold(2).WithWorkers(4)},
	} {
		t.Run(tt.name, func(t *testing.T) {
			var docs [][]byte
			for i := 0; i < 12; i++ {
				docs = append(docs, []byte(fmt.Sprintf(`{"n":{"v":%d}}`, i)))
			}
			res, err := mustBuild(t, tt.cfg).ExecuteBatch(docs)
			if err != nil {
				t.Fatal(err)
			}
			if len(res) != len(docs) {
				t.Fatalf("got %d results, want %d", len(res), len(docs))
			}
			for i, out := range res {
				want := fmt.Sprintf(`{"n.v":%d}`, i)
				if string(out) != want {
					t.Errorf("result %d: got %s, want %s", i, out, want)
				}
			}
		})
	}
}

func TestExecuteBatchFirstErrorByIndex(t *testing.T) {
	for _, tt := range []struct {
		name string
		cfg  Config
	}{
		{"sequential", New()},
		{"parallel", New().WithParallelThreshold(2).WithWorkers(4)},
	} {
		t.Run(tt.name, func(t *testing.T) {
			var docs [][]byte
			for i := 0; i < 12; i++ {
				docs = append(docs, []byte(`{"a":1}`))
			}
			docs[7] = []byte(`not json`)
			docs[3] = []byte(`{broken`)
			_, err := mustBuild(t, tt.cfg).ExecuteBatch(docs)
			var item *BatchItemError
			if !errors.As(err, &item) {
				t.Fatalf("got %v, want BatchItemError", err)
			}
			if item.Index != 3 {
				t.Errorf("got index %d, want 3", item.Index)
			}
		})
	}
}

func TestExecuteBatchEmpty(t *testing.T) {
	res, err := mustBuild(t, New()).ExecuteBatch(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 0 {
		t.Errorf("got %d results, want 0", len(res))
	}
}
