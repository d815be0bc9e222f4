package flatten

import (
	"github.com/flatkit/flatkit/gomap"
	"github.com/flatkit/flatkit/ir"

	"github.com/expr-lang/expr"
)

// retains reports whether a value survives the configured filters.
func (e *Engine) retains(v *ir.Node) bool {
	switch v.Type {
	case ir.StringType:
		return !(e.cfg.removeEmptyStrings && v.String == "")
	case ir.NullType:
		return !e.cfg.removeNulls
	case ir.ObjectType:
		return !(e.cfg.removeEmptyObjects && len(v.Fields) == 0)
	case ir.ArrayType:
		return !(e.cfg.removeEmptyArrays && len(v.Values) == 0)
	}
	return true
}

// filterNode removes filtered values from a tree in place, deepest
// first, so containers emptied by filtering are themselves subject to
// the empty-container filters.
func (e *Engine) filterNode(n *ir.Node) {
	switch n.Type {
	case ir.ObjectType:
		fields := n.Fields[:0]
		values := n.Values[:0]
		for i, v := range n.Values {
			e.filterNode(v)
			if !e.retains(v) {
				continue
			}
			fields = append(fields, n.Fields[i])
			values = append(values, v)
		}
		n.Fields, n.Values = fields, values
	case ir.ArrayType:
		values := n.Values[:0]
		for _, v := range n.Values {
			e.filterNode(v)
			if !e.retains(v) {
				continue
			}
			values = append(values, v)
		}
		n.Values = values
	}
}

// filterEntries applies the filters to flattened entries.  A merged
// collision array is filtered element-wise and dropped when nothing
// survives; other entries are retained or dropped whole.
func (e *Engine) filterEntries(entries []Entry) []Entry {
	if !e.anyFilter() {
		return entries
	}
	res := entries[:0]
	for _, ent := range entries {
		if ent.merged {
			values := ent.Value.Values[:0]
			for _, v := range ent.Value.Values {
				if e.retains(v) {
					values = append(values, v)
				}
			}
			ent.Value.Values = values
			if len(values) == 0 {
				continue
			}
		} else if !e.retains(ent.Value) {
			continue
		}
		res = append(res, ent)
	}
	return res
}

// keepEntries drops entries for which the keep expression returns
// false.
func (e *Engine) keepEntries(entries []Entry) ([]Entry, error) {
	if e.keep == nil {
		return entries, nil
	}
	res := entries[:0]
	for _, ent := range entries {
		out, err := expr.Run(e.keep, map[string]any{
			"key":   ent.Key,
			"value": gomap.ToAny(ent.Value),
		})
		if err != nil {
			return nil, err
		}
		if out.(bool) {
			res = append(res, ent)
		}
	}
	return res, nil
}
