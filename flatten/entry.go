package flatten

import (
	"github.com/flatkit/flatkit/ir"
)

// Entry is one flattened key/value pair.  Entries preserve the order
// in which the flattening walk produced them.
type Entry struct {
	Key   string
	Value *ir.Node

	// merged marks a value produced by collision collection, so the
	// filter stage can treat the collected array as a unit.
	merged bool
}

// FlatObject builds an object node from entries, in entry order.
func FlatObject(entries []Entry) *ir.Node {
	res := ir.Object()
	for _, e := range entries {
		res.Append(e.Key, e.Value)
	}
	return res
}

func entriesOf(obj *ir.Node) []Entry {
	entries := make([]Entry, 0, len(obj.Fields))
	for i, f := range obj.Fields {
		entries = append(entries, Entry{Key: f.String, Value: obj.Values[i]})
	}
	return entries
}
