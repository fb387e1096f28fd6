package separate

import (
	"mit.edu/dsg/godist/common"
	"mit.edu/dsg/godist/planner"
	"mit.edu/dsg/godist/region"
	"mit.edu/dsg/godist/transaction"
)

// nodeBuilder allocates the boundary and protocol nodes of one rewrite step. A step
// allocates everything it needs before it touches the statement's tree; if any
// allocation fails, abort discards what was built so the tree is left as it was.
type nodeBuilder struct {
	tree    *planner.PlanTree
	created []common.NodeID
	err     error
}

func newNodeBuilder(tree *planner.PlanTree) *nodeBuilder {
	return &nodeBuilder{tree: tree}
}

// node allocates a detached node. After the first failure every call is a no-op
// returning common.InvalidNodeID; check Err once all nodes are requested.
func (b *nodeBuilder) node(p planner.Payload) common.NodeID {
	if b.err != nil {
		return common.InvalidNodeID
	}
	id, err := b.tree.NewNode(p)
	if err != nil {
		b.err = err
		return common.InvalidNodeID
	}
	b.created = append(b.created, id)
	return id
}

// fetcher builds a Fetcher tagged with op, routed to routing plus the insert-only
// partitions. inserts is nil for non-DML Fetchers.
func (b *nodeBuilder) fetcher(op planner.OpType, routing *region.RoutingTable, inserts *region.PartitionSet) common.NodeID {
	f := planner.NewFetcherNode(op)
	f.SetRouting(routing, inserts)
	return b.node(f)
}

func (b *nodeBuilder) txn(cmd transaction.TxnCmd) common.NodeID {
	return b.node(planner.NewTransactionNode(cmd))
}

// pair builds a Fetcher tagged op wrapping a store-side Transaction node cmd and returns
// the Fetcher.
func (b *nodeBuilder) pair(op planner.OpType, cmd transaction.TxnCmd, routing *region.RoutingTable, inserts *region.PartitionSet) common.NodeID {
	f := b.fetcher(op, routing, inserts)
	t := b.txn(cmd)
	b.attach(f, t)
	return f
}

// attach links freshly built nodes to each other.
func (b *nodeBuilder) attach(parent common.NodeID, children ...common.NodeID) {
	if b.err != nil {
		return
	}
	for _, c := range children {
		if err := b.tree.AddChild(parent, c); err != nil {
			b.err = err
			return
		}
	}
}

func (b *nodeBuilder) Err() error {
	return b.err
}

// abort discards every node built so far that has not been attached to the tree.
func (b *nodeBuilder) abort() {
	for i := len(b.created) - 1; i >= 0; i-- {
		n, ok := b.tree.Lookup(b.created[i])
		if !ok || n.Parent().IsValid() || b.tree.Root() == n.ID() {
			continue
		}
		// Discard only fails for attached nodes, which were skipped above.
		_ = b.tree.Discard(n.ID())
	}
	b.created = nil
}
