package separate

import (
	"mit.edu/dsg/godist/common"
	"mit.edu/dsg/godist/planner"
	"mit.edu/dsg/godist/query"
	"mit.edu/dsg/godist/region"
	"mit.edu/dsg/godist/transaction"
)

// dmlRouting is the routing shared by every Fetcher of a DML statement: the first
// Scan's partitions, or the statement-level table when there is no Scan, plus the
// insert-only partitions.
func dmlRouting(qc *query.QueryContext) *region.RoutingTable {
	base := region.StatementRoute(qc.Regions, qc.InsertRegionIDs)
	if scanID := qc.Plan.FindFirst(planner.KindScan); scanID.IsValid() {
		base = qc.Plan.Node(scanID).Scan().Routing
	}
	return region.Route(base, qc.Regions, qc.InsertRegionIDs)
}

func (s *Separator) separateDML(qc *query.QueryContext, packetID common.NodeID) (Shape, error) {
	op := qc.Plan.Node(packetID).Packet().Op
	routing := dmlRouting(qc)

	// An explicit transaction or a truncate already makes the statement consistent.
	if !qc.RuntimeState.Autocommit || op == planner.OpTruncateTable {
		return ShapeDMLDirect, s.wrapDML(qc, packetID, op, routing)
	}
	if !qc.Enable2PC {
		return ShapeDML1PC, s.wrapDML(qc, packetID, op, routing)
	}
	return ShapeDML2PC, s.assemble2PC(qc, packetID, op, routing)
}

// wrapDML moves the DML subtree beneath one Fetcher tagged with the statement's op.
func (s *Separator) wrapDML(qc *query.QueryContext, packetID common.NodeID, op planner.OpType, routing *region.RoutingTable) error {
	b := newNodeBuilder(qc.Plan)
	f := b.fetcher(op, routing, qc.InsertRegionIDs)
	if err := b.Err(); err != nil {
		b.abort()
		return err
	}
	return qc.Plan.WrapChildren(packetID, f)
}

// assemble2PC replaces the DML subtree under the packet with
//
//	COMMIT
//	  Fetcher PREPARE -> STORE_PREPARE -> dml ... -> STORE_BEGIN
//	  Fetcher COMMIT -> STORE_COMMIT
//	  Fetcher ROLLBACK -> STORE_ROLLBACK
//
// STORE_BEGIN is appended below the bottom of the DML subtree's single-child chain, so
// it runs first on every partition.
func (s *Separator) assemble2PC(qc *query.QueryContext, packetID common.NodeID, op planner.OpType, routing *region.RoutingTable) error {
	tree := qc.Plan
	packet := tree.Node(packetID)
	if packet.NumChildren() != 1 {
		return common.NewPlanError(common.IllegalPlanError,
			"%s packet has %d children, want a single DML subtree", op, packet.NumChildren())
	}
	dmlRoot := packet.Child(0)
	leaf := dmlRoot
	for tree.Node(leaf).NumChildren() == 1 {
		leaf = tree.Node(leaf).Child(0)
	}

	b := newNodeBuilder(tree)
	commit := b.txn(transaction.TxnCommit)
	prepareF := b.fetcher(planner.OpPrepare, routing, qc.InsertRegionIDs)
	commitF := b.fetcher(planner.OpCommit, routing, qc.InsertRegionIDs)
	rollbackF := b.fetcher(planner.OpRollback, routing, qc.InsertRegionIDs)
	storePrepare := b.txn(transaction.TxnPrepare)
	storeBegin := b.txn(transaction.TxnBeginStore)
	b.attach(prepareF, storePrepare)
	b.attach(commitF, b.txn(transaction.TxnCommitStore))
	b.attach(rollbackF, b.txn(transaction.TxnRollbackStore))
	b.attach(commit, prepareF, commitF, rollbackF)
	if err := b.Err(); err != nil {
		b.abort()
		return err
	}

	if _, err := tree.DetachChild(packetID, 0); err != nil {
		return err
	}
	if err := tree.AddChild(leaf, storeBegin); err != nil {
		return err
	}
	if err := tree.AddChild(storePrepare, dmlRoot); err != nil {
		return err
	}
	return tree.AddChild(packetID, commit)
}
