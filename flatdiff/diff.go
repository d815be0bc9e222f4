package flatdiff

import (
	"github.com/flatkit/flatkit/flatten"
	"github.com/flatkit/flatkit/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Kind classifies one flat-key change.
type Kind int

const (
	Added Kind = iota
	Removed
	Modified
)

func (k Kind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Modified:
		return "modified"
	}
	return "unknown"
}

// Change records one differing flat key.  From is nil for Added, To
// is nil for Removed.
type Change struct {
	Kind Kind
	Key  string
	From *ir.Node
	To   *ir.Node
}

// Diff flattens from and to with e and reports their differing keys.
// Modified and added keys appear in the to document's order, followed
// by removed keys in the from document's order.
func Diff(from, to *ir.Node, e *flatten.Engine) ([]Change, error) {
	fromEntries, err := e.FlattenNode(from)
	if err != nil {
		return nil, err
	}
	toEntries, err := e.FlattenNode(to)
	if err != nil {
		return nil, err
	}
	fromVals := ir.ToMap(flatten.FlatObject(fromEntries))
	var changes []Change
	seen := make(map[string]bool, len(toEntries))
	for _, ent := range toEntries {
		seen[ent.Key] = true
		old, ok := fromVals[ent.Key]
		if !ok {
			changes = append(changes, Change{Kind: Added, Key: ent.Key, To: ent.Value})
			continue
		}
		if !ir.Equal(old, ent.Value) {
			changes = append(changes, Change{
				Kind: Modified,
				Key:  ent.Key,
				From: old,
				To:   ent.Value,
			})
		}
	}
	for _, ent := range fromEntries {
		if !seen[ent.Key] {
			changes = append(changes, Change{Kind: Removed, Key: ent.Key, From: ent.Value})
		}
	}
	return changes, nil
}

// TextDiff renders the character-level difference of a modified
// string value.  It returns nil unless both sides are strings.
func (c *Change) TextDiff() []diffpatch.Diff {
	if c.From == nil || c.To == nil {
		return nil
	}
	if c.From.Type != ir.StringType || c.To.Type != ir.StringType {
		return nil
	}
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(c.From.String, c.To.String, false)
	return dmp.DiffCleanupSemantic(diffs)
}

// AsNode converts changes to a document: each key maps to an object
// with "from" and/or "to" fields.
func AsNode(changes []Change) *ir.Node {
	kvs := make([]ir.KeyVal, 0, len(changes))
	for _, c := range changes {
		item := ir.Object()
		if c.From != nil {
			item.Append("from", c.From)
		}
		if c.To != nil {
			item.Append("to", c.To)
		}
		kvs = append(kvs, ir.KeyVal{Key: c.Key, Val: item})
	}
	return ir.FromKeyVals(kvs)
}
