package flatten

import (
	"github.com/flatkit/flatkit/coerce"
	"github.com/flatkit/flatkit/ir"
	"github.com/flatkit/flatkit/rewrite"
)

// TransformNode applies coercion, key and value replacements and
// filters to a document without flattening it.  The input tree is not
// modified.
func (e *Engine) TransformNode(doc *ir.Node) (*ir.Node, error) {
	doc = doc.Clone()
	if e.cfg.autoConvert {
		coerce.Apply(doc)
	}
	e.transformTree(doc)
	if e.anyFilter() {
		e.filterNode(doc)
	}
	return doc, nil
}

// transformTree rewrites keys and string values in place, resolving
// key collisions within each object under the configured policy.
func (e *Engine) transformTree(n *ir.Node) {
	switch n.Type {
	case ir.ObjectType:
		entries := entriesOf(n)
		entries = e.rewriteKeys(entries)
		entries = e.resolveCollisions(entries)
		n.Fields = n.Fields[:0]
		n.Values = n.Values[:0]
		for _, ent := range entries {
			n.Append(ent.Key, ent.Value)
		}
		for _, v := range n.Values {
			e.transformTree(v)
		}
	case ir.ArrayType:
		for _, v := range n.Values {
			e.transformTree(v)
		}
	case ir.StringType:
		n.String = rewrite.Apply(e.valueRules, n.String)
	}
}
