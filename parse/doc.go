// Package parse parses JSON and YAML text into IR nodes.
//
// # Usage
//
//	// Parse JSON text (the default format)
//	node, err := parse.Parse([]byte(`{"name": "alice", "age": 30}`))
//	if err != nil {
//	    return err
//	}
//
//	// Parse YAML
//	node, err := parse.Parse(data, parse.ParseYAML())
//
// Object field order and number formatting are preserved in the
// resulting IR.
//
// # Related Packages
//
//   - github.com/flatkit/flatkit/ir - IR representation
//   - github.com/flatkit/flatkit/encode - Encode IR to text
package parse
