package dom

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// DumpTree renders the tree containing n as an indented diagram, one line
// per node with its index and subtree counts. Meant for debugging and test
// failure output, not for serialization.
func DumpTree(n *Node) string {
	top := n.GetRootNode()
	tp := treeprint.NewWithRoot(dumpLabel(top))
	addDumpChildren(tp, top)
	return tp.String()
}

func addDumpChildren(tp treeprint.Tree, n *Node) {
	n.EachChild(func(child *Node) bool {
		if child.HasChildNodes() {
			addDumpChildren(tp.AddBranch(dumpLabel(child)), child)
		} else {
			tp.AddNode(dumpLabel(child))
		}
		return true
	})
}

func dumpLabel(n *Node) string {
	label := n.nodeName
	if n.nodeType == ElementNode {
		el := (*Element)(n)
		if id := el.Id(); id != "" {
			label += "#" + id
		}
		for _, class := range el.Classes() {
			label += "." + class
		}
	}
	return fmt.Sprintf("%s [i=%d n=%d e=%d]", label, n.index, n.subtreeNodes, n.subtreeElements)
}
