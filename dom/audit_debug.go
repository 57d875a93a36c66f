//go:build domdebug

package dom

// audit runs the full consistency audit after a mutating operation. A
// violation is a bug in the tree engine itself, so debug builds fail hard.
func (n *Node) audit() {
	if err := AuditTree(n); err != nil {
		panic(err)
	}
}
