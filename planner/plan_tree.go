package planner

import (
	"mit.edu/dsg/godist/common"
)

// PlanTree is an arena holding every node of one statement plan. Nodes are addressed by
// stable NodeIDs, so references such as a Scan's back-reference to its Fetcher survive
// any restructuring.
//
// Ownership follows the tree: a parent exclusively owns its children. A node whose parent
// is common.InvalidNodeID and that is not the root is detached; the caller holding its
// id must attach it somewhere or Discard it. Every structural method updates the parent's
// child list and the child's parent link together, so callers never observe a half-made
// edge.
//
// A PlanTree is confined to the goroutine planning its statement and is not safe for
// concurrent use.
type PlanTree struct {
	nodes    []*Node
	root     common.NodeID
	live     int
	maxNodes int
}

func NewPlanTree() *PlanTree {
	return &PlanTree{root: common.InvalidNodeID}
}

// SetNodeLimit bounds the number of live nodes the tree may hold. NewNode fails with
// ResourceExhaustedError once the bound is reached. Zero means unbounded.
func (t *PlanTree) SetNodeLimit(n int) {
	t.maxNodes = n
}

// NewNode allocates a detached node carrying p.
func (t *PlanTree) NewNode(p Payload) (common.NodeID, error) {
	common.Assert(p != nil, "nil payload")
	if t.maxNodes > 0 && t.live >= t.maxNodes {
		return common.InvalidNodeID, common.NewPlanError(common.ResourceExhaustedError,
			"plan tree node budget of %d exhausted allocating %s", t.maxNodes, p.Kind())
	}
	id := common.NodeID(len(t.nodes))
	t.nodes = append(t.nodes, &Node{
		id:      id,
		parent:  common.InvalidNodeID,
		payload: p,
	})
	t.live++
	return id, nil
}

// NewNodeWithChildren allocates a node and attaches the given detached nodes as its
// children, in order.
func (t *PlanTree) NewNodeWithChildren(p Payload, children ...common.NodeID) (common.NodeID, error) {
	id, err := t.NewNode(p)
	if err != nil {
		return common.InvalidNodeID, err
	}
	for _, c := range children {
		if err := t.AddChild(id, c); err != nil {
			return common.InvalidNodeID, err
		}
	}
	return id, nil
}

// Lookup returns the live node with the given id.
func (t *PlanTree) Lookup(id common.NodeID) (*Node, bool) {
	if id < 0 || int(id) >= len(t.nodes) || t.nodes[id] == nil {
		return nil, false
	}
	return t.nodes[id], true
}

// Node returns the live node with the given id. Asking for a node that was never
// allocated or was discarded is a programming error.
func (t *PlanTree) Node(id common.NodeID) *Node {
	n, ok := t.Lookup(id)
	common.Assert(ok, "no live node %d", id)
	return n
}

func (t *PlanTree) Root() common.NodeID {
	return t.root
}

// SetRoot makes a detached node the root of the tree.
func (t *PlanTree) SetRoot(id common.NodeID) error {
	n, err := t.detached(id)
	if err != nil {
		return err
	}
	t.root = n.id
	return nil
}

// Len returns the number of live nodes, attached or not.
func (t *PlanTree) Len() int {
	return t.live
}

func (t *PlanTree) lookupErr(id common.NodeID) (*Node, error) {
	n, ok := t.Lookup(id)
	if !ok {
		return nil, common.NewPlanError(common.NoSuchObjectError, "no live node %d", id)
	}
	return n, nil
}

func (t *PlanTree) detached(id common.NodeID) (*Node, error) {
	n, err := t.lookupErr(id)
	if err != nil {
		return nil, err
	}
	if n.parent.IsValid() || t.root == id {
		return nil, common.NewPlanError(common.IllegalPlanError, "node %d (%s) is still attached", id, n.Kind())
	}
	return n, nil
}

// isAncestor reports whether a is b or an ancestor of b.
func (t *PlanTree) isAncestor(a, b common.NodeID) bool {
	for cur := b; cur.IsValid(); cur = t.nodes[cur].parent {
		if cur == a {
			return true
		}
	}
	return false
}

// AddChild appends the detached node child to parent's children.
func (t *PlanTree) AddChild(parent, child common.NodeID) error {
	p, err := t.lookupErr(parent)
	if err != nil {
		return err
	}
	c, err := t.detached(child)
	if err != nil {
		return err
	}
	if t.isAncestor(child, parent) {
		return common.NewPlanError(common.IllegalPlanError, "attaching node %d under %d creates a cycle", child, parent)
	}
	p.children = append(p.children, c.id)
	c.parent = p.id
	return nil
}

// DetachChild removes the child at index i from parent and returns it, detached. The
// caller now owns the returned node.
func (t *PlanTree) DetachChild(parent common.NodeID, i int) (common.NodeID, error) {
	p, err := t.lookupErr(parent)
	if err != nil {
		return common.InvalidNodeID, err
	}
	if i < 0 || i >= len(p.children) {
		return common.InvalidNodeID, common.NewPlanError(common.NoSuchObjectError,
			"node %d has no child at index %d", parent, i)
	}
	child := p.children[i]
	p.children = append(p.children[:i], p.children[i+1:]...)
	t.nodes[child].parent = common.InvalidNodeID
	return child, nil
}

// ReplaceChild puts the detached node newChild into oldChild's slot under parent.
// oldChild becomes detached and is owned by the caller.
func (t *PlanTree) ReplaceChild(parent, oldChild, newChild common.NodeID) error {
	p, err := t.lookupErr(parent)
	if err != nil {
		return err
	}
	idx := p.childIndex(oldChild)
	if idx < 0 {
		return common.NewPlanError(common.NoSuchObjectError, "node %d is not a child of %d", oldChild, parent)
	}
	nc, err := t.detached(newChild)
	if err != nil {
		return err
	}
	if t.isAncestor(newChild, parent) {
		return common.NewPlanError(common.IllegalPlanError, "attaching node %d under %d creates a cycle", newChild, parent)
	}
	p.children[idx] = nc.id
	nc.parent = p.id
	t.nodes[oldChild].parent = common.InvalidNodeID
	return nil
}

// InsertAbove splices the detached node wrapper into child's position and reattaches
// child as wrapper's last child. If child is the root, wrapper becomes the root.
func (t *PlanTree) InsertAbove(child, wrapper common.NodeID) error {
	c, err := t.lookupErr(child)
	if err != nil {
		return err
	}
	if _, err := t.detached(wrapper); err != nil {
		return err
	}
	if c.parent.IsValid() {
		if err := t.ReplaceChild(c.parent, child, wrapper); err != nil {
			return err
		}
	} else if t.root == child {
		t.root = wrapper
	} else {
		return common.NewPlanError(common.IllegalPlanError, "node %d (%s) is detached", child, c.Kind())
	}
	return t.AddChild(wrapper, child)
}

// WrapChildren moves every child of parent beneath the detached node wrapper, keeping
// their order, and makes wrapper the only child of parent.
func (t *PlanTree) WrapChildren(parent, wrapper common.NodeID) error {
	p, err := t.lookupErr(parent)
	if err != nil {
		return err
	}
	w, err := t.detached(wrapper)
	if err != nil {
		return err
	}
	if parent == wrapper {
		return common.NewPlanError(common.IllegalPlanError, "node %d cannot wrap its own children", parent)
	}
	moved := p.children
	p.children = []common.NodeID{w.id}
	w.parent = p.id
	for _, c := range moved {
		w.children = append(w.children, c)
		t.nodes[c].parent = w.id
	}
	return nil
}

// Discard deletes a detached node and its whole subtree. Scan back-references into the
// discarded subtree are cleared.
func (t *PlanTree) Discard(id common.NodeID) error {
	if _, err := t.detached(id); err != nil {
		return err
	}
	var dropped []common.NodeID
	t.walkFrom(id, func(n *Node) bool {
		dropped = append(dropped, n.id)
		return true
	})
	for _, d := range dropped {
		t.nodes[d] = nil
		t.live--
	}
	for _, n := range t.nodes {
		if n == nil || n.Kind() != KindScan {
			continue
		}
		if s := n.Scan(); s.RelatedFetcher.IsValid() && t.nodes[s.RelatedFetcher] == nil {
			s.RelatedFetcher = common.InvalidNodeID
		}
	}
	return nil
}
