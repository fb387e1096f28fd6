package separate

import (
	"mit.edu/dsg/godist/common"
	"mit.edu/dsg/godist/planner"
	"mit.edu/dsg/godist/query"
	"mit.edu/dsg/godist/transaction"
)

// attachPairs builds the Fetcher/store-command pairs and appends them, in order, to the
// statement's Transaction node. Transaction-control statements have no Scan, so every
// pair is routed to the statement-level table and carries the insert-only partitions.
func (s *Separator) attachPairs(qc *query.QueryContext, txnID common.NodeID, pairs []txnPair) error {
	b := newNodeBuilder(qc.Plan)
	fetchers := make([]common.NodeID, 0, len(pairs))
	for _, p := range pairs {
		fetchers = append(fetchers, b.pair(p.op, p.cmd, qc.Regions, qc.InsertRegionIDs))
	}
	if err := b.Err(); err != nil {
		b.abort()
		return err
	}
	for _, f := range fetchers {
		if err := qc.Plan.AddChild(txnID, f); err != nil {
			return err
		}
	}
	return nil
}

type txnPair struct {
	op  planner.OpType
	cmd transaction.TxnCmd
}

var (
	beginPair    = txnPair{planner.OpBegin, transaction.TxnBeginStore}
	preparePair  = txnPair{planner.OpPrepare, transaction.TxnPrepare}
	commitPair   = txnPair{planner.OpCommit, transaction.TxnCommitStore}
	rollbackPair = txnPair{planner.OpRollback, transaction.TxnRollbackStore}
)

func (s *Separator) separateBegin(qc *query.QueryContext, txnID common.NodeID) error {
	return s.attachPairs(qc, txnID, []txnPair{beginPair})
}

func (s *Separator) separateCommit(qc *query.QueryContext, txnID common.NodeID) error {
	pairs := []txnPair{preparePair, commitPair}
	// A failed prepare must not leave an autocommit transaction half open.
	if qc.RuntimeState.Autocommit {
		pairs = append(pairs, rollbackPair)
	}
	if qc.Plan.Node(txnID).Transaction().Cmd.ChainsBegin() {
		pairs = append(pairs, beginPair)
	}
	return s.attachPairs(qc, txnID, pairs)
}

func (s *Separator) separateRollback(qc *query.QueryContext, txnID common.NodeID) error {
	pairs := []txnPair{rollbackPair}
	if qc.Plan.Node(txnID).Transaction().Cmd.ChainsBegin() {
		pairs = append(pairs, beginPair)
	}
	return s.attachPairs(qc, txnID, pairs)
}
