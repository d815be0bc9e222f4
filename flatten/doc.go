// Package flatten converts nested documents to and from single-level
// key/value form, using a configurable separator to encode paths.
//
// The entry point is a Config, built fluently and compiled into an
// Engine with Build.  The Engine operates on parsed ir.Node trees
// (FlattenNode, UnflattenNode, TransformNode) or on raw documents
// (Execute, ExecuteBatch), which parse and re-encode around the node
// operations.
package flatten
