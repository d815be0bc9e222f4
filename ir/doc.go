// Package ir provides the intermediate representation (IR) for documents
// handled by the flatten engine.
//
// All documents (whether parsed from JSON or YAML text, or created
// programmatically) are represented as ir.Node trees. Object nodes keep
// their fields in source order via the parallel Fields/Values slices, so
// a document round trips without key reordering. Number nodes keep their
// source text alongside parsed int64/float64 values, so numeric
// formatting survives a parse/encode cycle.
//
// The IR contains no position information from input documents, making
// it purely semantic.
package ir
