package flatten

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/flatkit/flatkit/coerce"
	"github.com/flatkit/flatkit/ir"
)

// UnflattenNode rebuilds a nested document from a flat object.  Keys
// are split on the separator; a path segment set consisting solely of
// valid array indices produces an array, anything else an object.
// The input tree is not modified.
func (e *Engine) UnflattenNode(flat *ir.Node) (*ir.Node, error) {
	if flat.Type != ir.ObjectType {
		return nil, fmt.Errorf("can only unflatten objects, got %s", flat.Type)
	}
	flat = flat.Clone()
	if e.cfg.autoConvert {
		coerce.Apply(flat)
	}
	return e.unflattenEntries(entriesOf(flat))
}

func (e *Engine) unflattenEntries(entries []Entry) (*ir.Node, error) {
	entries = e.rewriteKeys(entries)
	entries = e.resolveCollisions(entries)
	entries = e.rewriteValues(entries)
	entries = e.filterEntries(entries)

	kinds := e.analyzePaths(entries)
	res := ir.Object()
	for _, ent := range entries {
		if err := e.setPath(res, ent.Key, ent.Value, kinds); err != nil {
			return nil, err
		}
	}
	// filtering again catches containers built during reconstruction,
	// such as null padding in sparse arrays.
	if e.anyFilter() {
		e.filterNode(res)
	}
	return res, nil
}

const (
	sawIndex = 1 << iota
	sawField
)

// analyzePaths records, for every path prefix, whether the segments
// observed directly under it are all valid array indices.
func (e *Engine) analyzePaths(entries []Entry) map[string]uint8 {
	sep := e.cfg.separator
	kinds := make(map[string]uint8)
	for _, ent := range entries {
		key := ent.Key
		for pos := 0; ; {
			i := strings.Index(key[pos:], sep)
			if i < 0 {
				break
			}
			i += pos
			parent := key[:i]
			child := key[i+len(sep):]
			if j := strings.Index(child, sep); j >= 0 {
				child = child[:j]
			}
			if isArrayIndex(child) {
				kinds[parent] |= sawIndex
			} else {
				kinds[parent] |= sawField
			}
			pos = i + len(sep)
		}
	}
	return kinds
}

func (e *Engine) wantsArray(kinds map[string]uint8, prefix string) bool {
	return kinds[prefix] == sawIndex
}

// isArrayIndex reports whether s is a canonical non-negative integer:
// digits only, with no leading zeros except "0" itself.
func isArrayIndex(s string) bool {
	if s == "" {
		return false
	}
	if len(s) > 1 && s[0] == '0' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// setPath inserts val at the position key describes, creating
// intermediate containers as analyzePaths dictates.  Sparse array
// gaps are filled with nulls.  A non-index segment arriving in an
// array context converts the array to an object keyed by index.
func (e *Engine) setPath(root *ir.Node, key string, val *ir.Node, kinds map[string]uint8) error {
	sep := e.cfg.separator
	segs := strings.Split(key, sep)
	cur := root
	for i, seg := range segs[:len(segs)-1] {
		prefix := strings.Join(segs[:i+1], sep)
		next, err := e.descend(cur, seg, prefix, e.wantsArray(kinds, prefix))
		if err != nil {
			return err
		}
		cur = next
	}
	return e.assign(cur, segs[len(segs)-1], val)
}

// descend returns the container under cur at seg, creating or
// repairing it as needed.
func (e *Engine) descend(cur *ir.Node, seg, prefix string, wantArray bool) (*ir.Node, error) {
	newContainer := func() *ir.Node {
		if wantArray {
			return ir.Array()
		}
		return ir.Object()
	}
	switch cur.Type {
	case ir.ObjectType:
		if i := cur.IndexOf(seg); i >= 0 {
			child := cur.Values[i]
			if child.Type.IsLeaf() {
				return nil, &StructureConflictError{Path: prefix}
			}
			return child, nil
		}
		child := newContainer()
		cur.Append(seg, child)
		return child, nil
	case ir.ArrayType:
		if !isArrayIndex(seg) {
			arrayToObject(cur)
			return e.descend(cur, seg, prefix, wantArray)
		}
		idx, _ := strconv.Atoi(seg)
		padTo(cur, idx)
		child := cur.Values[idx]
		if child.Type.IsLeaf() {
			if child.Type == ir.NullType {
				child = newContainer()
				cur.Values[idx] = child
				return child, nil
			}
			return nil, &StructureConflictError{Path: prefix}
		}
		return child, nil
	}
	return nil, &StructureConflictError{Path: prefix}
}

// assign writes val at seg within the container cur, overwriting any
// prior value.
func (e *Engine) assign(cur *ir.Node, seg string, val *ir.Node) error {
	switch cur.Type {
	case ir.ObjectType:
		if i := cur.IndexOf(seg); i >= 0 {
			cur.Values[i] = val
			return nil
		}
		cur.Append(seg, val)
		return nil
	case ir.ArrayType:
		if !isArrayIndex(seg) {
			arrayToObject(cur)
			return e.assign(cur, seg, val)
		}
		idx, _ := strconv.Atoi(seg)
		padTo(cur, idx)
		cur.Values[idx] = val
		return nil
	}
	return &StructureConflictError{Path: seg}
}

// padTo null-fills arr so index idx is addressable.
func padTo(arr *ir.Node, idx int) {
	for len(arr.Values) <= idx {
		arr.Push(ir.Null())
	}
}

// arrayToObject converts arr in place to an object whose keys are the
// original indices, dropping null padding.
func arrayToObject(arr *ir.Node) {
	fields := make([]*ir.Node, 0, len(arr.Values))
	values := make([]*ir.Node, 0, len(arr.Values))
	for i, v := range arr.Values {
		if v.Type == ir.NullType {
			continue
		}
		fields = append(fields, ir.FromString(strconv.Itoa(i)))
		values = append(values, v)
	}
	arr.Type = ir.ObjectType
	arr.Fields, arr.Values = fields, values
}
