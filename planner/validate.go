package planner

import (
	"mit.edu/dsg/godist/common"
)

// Validate checks the structural invariants a plan must satisfy when it is handed to the
// executor:
//   - the root exists and has no parent;
//   - every reachable node is reached exactly once and its parent link matches the edge
//     it was reached through (the tree is acyclic and singly parented);
//   - no live node is left unreachable;
//   - no Fetcher contains another Fetcher in its subtree;
//   - every Scan back-reference names a Fetcher that is an ancestor of the Scan.
func (t *PlanTree) Validate() error {
	root, ok := t.Lookup(t.root)
	if !ok {
		return common.NewPlanError(common.IllegalPlanError, "plan has no root")
	}
	if root.parent.IsValid() {
		return common.NewPlanError(common.IllegalPlanError, "root %d has parent %d", root.id, root.parent)
	}

	seen := make(map[common.NodeID]bool, t.live)
	var visit func(id common.NodeID, parent common.NodeID, fetcher common.NodeID) error
	visit = func(id common.NodeID, parent common.NodeID, fetcher common.NodeID) error {
		n, ok := t.Lookup(id)
		if !ok {
			return common.NewPlanError(common.IllegalPlanError, "node %d references missing child %d", parent, id)
		}
		if seen[id] {
			return common.NewPlanError(common.IllegalPlanError, "node %d (%s) is reachable twice", id, n.Kind())
		}
		seen[id] = true
		if n.parent != parent {
			return common.NewPlanError(common.IllegalPlanError,
				"node %d (%s) is a child of %d but records parent %d", id, n.Kind(), parent, n.parent)
		}
		if n.Kind() == KindFetcher {
			if fetcher.IsValid() {
				return common.NewPlanError(common.IllegalPlanError, "fetcher %d is nested under fetcher %d", id, fetcher)
			}
			fetcher = id
		}
		if n.Kind() == KindScan {
			if rel := n.Scan().RelatedFetcher; rel.IsValid() && !t.isAncestor(rel, id) {
				return common.NewPlanError(common.IllegalPlanError,
					"scan %d references fetcher %d outside its ancestors", id, rel)
			}
		}
		for _, c := range n.children {
			if err := visit(c, id, fetcher); err != nil {
				return err
			}
		}
		return nil
	}
	if err := visit(t.root, common.InvalidNodeID, common.InvalidNodeID); err != nil {
		return err
	}
	if len(seen) != t.live {
		return common.NewPlanError(common.IllegalPlanError, "%d nodes are not reachable from the root", t.live-len(seen))
	}
	return nil
}
