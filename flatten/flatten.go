package flatten

import (
	"strconv"

	"github.com/flatkit/flatkit/coerce"
	"github.com/flatkit/flatkit/debug"
	"github.com/flatkit/flatkit/ir"

	"golang.org/x/sync/errgroup"
)

// FlattenNode runs the flatten pipeline on a document tree and
// returns its ordered flat entries.  The input tree is not modified.
//
// A scalar root produces a single entry with the empty key.  Empty
// objects and arrays are treated as leaves and emit terminal entries
// carrying the empty container.
func (e *Engine) FlattenNode(doc *ir.Node) ([]Entry, error) {
	if e.cfg.autoConvert {
		doc = doc.Clone()
		coerce.Apply(doc)
	}
	if doc.Type.IsLeaf() {
		return []Entry{{Key: "", Value: e.rewriteValue(doc)}}, nil
	}
	return e.flattenEntries(doc)
}

// flattenEntries walks an already coerced container and applies the
// key, collision, value and filter stages.
func (e *Engine) flattenEntries(doc *ir.Node) ([]Entry, error) {
	entries := e.walk("", doc, true)
	entries = e.rewriteKeys(entries)
	entries = e.resolveCollisions(entries)
	entries = e.rewriteValues(entries)
	entries = e.filterEntries(entries)
	return e.keepEntries(entries)
}

// walk traverses the tree depth-first, emitting entries in document
// order.  Containers with at least the configured number of children
// fan their subtrees out over a worker group; deeper traversal within
// each subtree stays sequential.
func (e *Engine) walk(prefix string, n *ir.Node, parallel bool) []Entry {
	switch n.Type {
	case ir.ObjectType:
		if len(n.Fields) == 0 {
			return []Entry{{Key: prefix, Value: n}}
		}
		if parallel && len(n.Fields) >= e.cfg.nestedThreshold {
			return e.walkParallel(prefix, n)
		}
		var out []Entry
		for i, f := range n.Fields {
			out = append(out, e.walk(e.join(prefix, f.String), n.Values[i], parallel)...)
		}
		return out
	case ir.ArrayType:
		if len(n.Values) == 0 {
			return []Entry{{Key: prefix, Value: n}}
		}
		if parallel && len(n.Values) >= e.cfg.nestedThreshold {
			return e.walkParallel(prefix, n)
		}
		var out []Entry
		for i, v := range n.Values {
			out = append(out, e.walk(e.join(prefix, strconv.Itoa(i)), v, parallel)...)
		}
		return out
	}
	return []Entry{{Key: prefix, Value: n}}
}

func (e *Engine) walkParallel(prefix string, n *ir.Node) []Entry {
	if debug.Flatten() {
		debug.Logf("parallel walk at %q over %d children\n", prefix, len(n.Values))
	}
	results := make([][]Entry, len(n.Values))
	g := &errgroup.Group{}
	g.SetLimit(e.workers)
	for i := range n.Values {
		key := ""
		if n.Type == ir.ObjectType {
			key = e.join(prefix, n.Fields[i].String)
		} else {
			key = e.join(prefix, strconv.Itoa(i))
		}
		g.Go(func() error {
			results[i] = e.walk(key, n.Values[i], false)
			return nil
		})
	}
	// group funcs never return errors; Wait only synchronizes.
	_ = g.Wait()
	var out []Entry
	for _, sub := range results {
		out = append(out, sub...)
	}
	return out
}

func (e *Engine) join(prefix, seg string) string {
	if prefix == "" {
		return seg
	}
	return prefix + e.cfg.separator + seg
}
