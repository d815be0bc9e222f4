package flatten

import (
	"bytes"

	"github.com/flatkit/flatkit/coerce"
	"github.com/flatkit/flatkit/debug"
	"github.com/flatkit/flatkit/encode"
	"github.com/flatkit/flatkit/ir"
	"github.com/flatkit/flatkit/parse"

	"golang.org/x/sync/errgroup"
)

// Mode reports the transformation the engine was built for.
func (e *Engine) Mode() Mode {
	return e.cfg.mode
}

// Apply runs the configured transformation on a parsed document and
// returns the resulting tree.  The input tree is not modified.
func (e *Engine) Apply(node *ir.Node) (*ir.Node, error) {
	node = node.Clone()
	if e.cfg.autoConvert {
		coerce.Apply(node)
	}
	switch e.cfg.mode {
	case UnflattenMode:
		return e.executeUnflatten(node)
	case TransformMode:
		e.transformTree(node)
		if e.anyFilter() {
			e.filterNode(node)
		}
		return node, nil
	}
	return e.executeFlatten(node)
}

// Execute parses doc, runs the configured transformation and returns
// the result as compact JSON.
func (e *Engine) Execute(doc []byte) ([]byte, error) {
	node, err := parse.Parse(doc)
	if err != nil {
		return nil, err
	}
	if e.cfg.autoConvert {
		coerce.Apply(node)
	}
	var out *ir.Node
	switch e.cfg.mode {
	case UnflattenMode:
		out, err = e.executeUnflatten(node)
	case TransformMode:
		e.transformTree(node)
		if e.anyFilter() {
			e.filterNode(node)
		}
		out = node
	default:
		out, err = e.executeFlatten(node)
	}
	if err != nil {
		return nil, err
	}
	return wireBytes(out)
}

func (e *Engine) executeFlatten(node *ir.Node) (*ir.Node, error) {
	if node.Type.IsLeaf() {
		return e.rewriteValue(node), nil
	}
	if len(node.Fields) == 0 && len(node.Values) == 0 {
		return ir.Object(), nil
	}
	entries, err := e.flattenEntries(node)
	if err != nil {
		return nil, err
	}
	return FlatObject(entries), nil
}

func (e *Engine) executeUnflatten(node *ir.Node) (*ir.Node, error) {
	if node.Type.IsLeaf() {
		return e.rewriteValue(node), nil
	}
	// arrays cannot carry flat keys, and an empty object has nothing
	// to rebuild
	if node.Type == ir.ArrayType || len(node.Fields) == 0 {
		return ir.Object(), nil
	}
	return e.unflattenEntries(entriesOf(node))
}

// ExecuteBatch transforms docs independently, preserving input order
// in the result.  Batches at or above the parallel threshold are
// spread over the worker group.  The first failure, by input index,
// is returned as a BatchItemError; already dispatched documents run
// to completion.
func (e *Engine) ExecuteBatch(docs [][]byte) ([][]byte, error) {
	res := make([][]byte, len(docs))
	if len(docs) < e.cfg.parallelThreshold {
		for i, doc := range docs {
			out, err := e.Execute(doc)
			if err != nil {
				return nil, &BatchItemError{Index: i, Err: err}
			}
			res[i] = out
		}
		return res, nil
	}
	if debug.Dispatch() {
		debug.Logf("batch of %d over %d workers\n", len(docs), e.workers)
	}
	errs := make([]error, len(docs))
	g := &errgroup.Group{}
	g.SetLimit(e.workers)
	for i := range docs {
		g.Go(func() error {
			out, err := e.Execute(docs[i])
			if err != nil {
				errs[i] = err
				return nil
			}
			res[i] = out
			return nil
		})
	}
	_ = g.Wait()
	for i, err := range errs {
		if err != nil {
			return nil, &BatchItemError{Index: i, Err: err}
		}
	}
	return res, nil
}

func wireBytes(node *ir.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode.Encode(node, &buf, encode.EncodeWire(true)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
