package dom

import "fmt"

// DOMError represents a failure surfaced by a tree mutation or query
// operation. Errors are returned synchronously; nothing is retried or
// silently recovered at this layer.
type DOMError struct {
	Name    string
	Message string
}

func (e *DOMError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

// ErrInvalidArgument creates an InvalidArgumentError. It reports a nil node
// or a node of the wrong kind passed to a mutation API.
func ErrInvalidArgument(message string) *DOMError {
	return &DOMError{Name: "InvalidArgumentError", Message: message}
}

// ErrHierarchyViolation creates a HierarchyViolationError. It reports an
// operation that would create a cycle, or a reference node that is not a
// child of the container it was claimed to belong to.
func ErrHierarchyViolation(message string) *DOMError {
	return &DOMError{Name: "HierarchyViolationError", Message: message}
}

// ErrIndexOutOfRange creates an IndexOutOfRangeError for positional access
// beyond the current child count.
func ErrIndexOutOfRange(message string) *DOMError {
	return &DOMError{Name: "IndexOutOfRangeError", Message: message}
}

// ErrInvariantViolation creates an InvariantViolationError. It is produced
// only by the consistency auditor and indicates a bug in the tree engine
// itself rather than caller misuse.
func ErrInvariantViolation(message string) *DOMError {
	return &DOMError{Name: "InvariantViolationError", Message: message}
}
