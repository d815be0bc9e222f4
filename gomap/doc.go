// Package gomap provides encoding and decoding between IR nodes and Go values.
//
// # Usage
//
//	// Encode Go value to IR
//	node, err := gomap.ToIR(map[string]any{"name": "alice"})
//
//	// Decode IR to native Go containers
//	v := gomap.ToAny(node)
//
// Maps are emitted with sorted keys since Go map iteration order is
// unspecified; documents that need to keep field order should build IR
// nodes directly or go through the parse package.
//
// # Related Packages
//
//   - github.com/flatkit/flatkit/ir - IR representation
package gomap
