package planner

import (
	"mit.edu/dsg/godist/common"
)

// Walk visits the nodes reachable from the root in pre-order, children left to right.
// It stops as soon as fn returns false.
func (t *PlanTree) Walk(fn func(n *Node) bool) {
	if !t.root.IsValid() {
		return
	}
	t.walkFrom(t.root, fn)
}

// WalkFrom is Walk restricted to the subtree rooted at id.
func (t *PlanTree) WalkFrom(id common.NodeID, fn func(n *Node) bool) {
	if _, ok := t.Lookup(id); !ok {
		return
	}
	t.walkFrom(id, fn)
}

func (t *PlanTree) walkFrom(id common.NodeID, fn func(n *Node) bool) bool {
	n := t.nodes[id]
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !t.walkFrom(c, fn) {
			return false
		}
	}
	return true
}

// FindFirst returns the first node of the given kind in pre-order, or
// common.InvalidNodeID if there is none.
func (t *PlanTree) FindFirst(kind NodeKind) common.NodeID {
	found := common.InvalidNodeID
	t.Walk(func(n *Node) bool {
		if n.Kind() == kind {
			found = n.id
			return false
		}
		return true
	})
	return found
}

// FindAll returns every node of the given kind in pre-order.
func (t *PlanTree) FindAll(kind NodeKind) []common.NodeID {
	var found []common.NodeID
	t.Walk(func(n *Node) bool {
		if n.Kind() == kind {
			found = append(found, n.id)
		}
		return true
	})
	return found
}
