package flatten

import "fmt"

// StructureConflictError indicates that unflattening found one path
// implying a scalar and another implying a container at the same
// prefix.
type StructureConflictError struct {
	Path string
}

func (e *StructureConflictError) Error() string {
	return fmt.Sprintf("cannot navigate into non-object/non-array value at %q", e.Path)
}

// BatchItemError wraps the first error from a batch, identifying the
// input document by its index.
type BatchItemError struct {
	Index int
	Err   error
}

func (e *BatchItemError) Error() string {
	return fmt.Sprintf("document %d: %v", e.Index, e.Err)
}

func (e *BatchItemError) Unwrap() error {
	return e.Err
}
