// Package encode encodes IR nodes to JSON or YAML text.
//
// # Usage
//
//	// Encode to pretty JSON
//	node := ir.FromMap(map[string]*ir.Node{
//	    "name": ir.FromString("alice"),
//	    "age":  ir.FromInt(30),
//	})
//	err := encode.Encode(node, w)
//
//	// Compact single-line output
//	err := encode.Encode(node, w, encode.EncodeWire(true))
//
//	// YAML output
//	err := encode.Encode(node, w, encode.EncodeFormat(format.YAMLFormat))
//
// # Related Packages
//
//   - github.com/flatkit/flatkit/ir - IR representation
//   - github.com/flatkit/flatkit/parse - Parse text to IR
package encode
