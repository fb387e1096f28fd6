package separate

import (
	"mit.edu/dsg/godist/common"
	"mit.edu/dsg/godist/planner"
	"mit.edu/dsg/godist/query"
	"mit.edu/dsg/godist/region"
)

// separateSelect places the boundary for a read. Only the first matching shape is
// rewritten, in the order joins, aggregation, sort, limit, so no coordinator merge phase
// is applied twice.
func (s *Separator) separateSelect(qc *query.QueryContext, packetID common.NodeID) (Shape, error) {
	tree := qc.Plan
	scans := tree.FindAll(planner.KindScan)
	if len(scans) == 0 {
		return ShapeNoop, common.NewPlanError(common.MissingScanNodeError,
			"%s statement has no scan node", tree.Node(packetID).Packet().Op)
	}
	routing := tree.Node(scans[0]).Scan().Routing
	joins := tree.FindAll(planner.KindJoin)

	if len(joins) > 0 {
		return ShapeJoin, s.separateJoins(qc, joins)
	}
	if len(scans) > 1 {
		return ShapeNoop, common.NewPlanError(common.IllegalPlanError,
			"%d scan nodes without a join", len(scans))
	}
	if routing.Len() == 1 {
		return ShapeSinglePartition, s.wrapSelect(qc, packetID, routing)
	}

	if aggID := tree.FindFirst(planner.KindAggregate); aggID.IsValid() {
		return ShapeAggregate, s.splitAggregate(qc, aggID, routing)
	}
	if sortID := tree.FindFirst(planner.KindSort); sortID.IsValid() {
		return ShapeSort, s.pushSort(qc, sortID, routing)
	}
	if limitID := tree.FindFirst(planner.KindLimit); limitID.IsValid() {
		if tree.Node(limitID).NumChildren() == 0 {
			return ShapeLimit, nil
		}
		return ShapeLimit, s.wrapSelect(qc, limitID, routing)
	}
	return ShapeDefault, s.wrapSelect(qc, packetID, routing)
}

// wrapSelect moves every child of parent beneath a new SELECT Fetcher.
func (s *Separator) wrapSelect(qc *query.QueryContext, parent common.NodeID, routing *region.RoutingTable) error {
	b := newNodeBuilder(qc.Plan)
	f := b.fetcher(planner.OpSelect, routing, nil)
	if err := b.Err(); err != nil {
		b.abort()
		return err
	}
	return qc.Plan.WrapChildren(parent, f)
}

// splitAggregate turns parent -> Aggregate into parent -> MergeAggregate -> Fetcher ->
// Aggregate. Each partition aggregates its own rows; the coordinator merges the partial
// results without a limit.
func (s *Separator) splitAggregate(qc *query.QueryContext, aggID common.NodeID, routing *region.RoutingTable) error {
	tree := qc.Plan
	agg := tree.Node(aggID)
	if !agg.Parent().IsValid() {
		return common.NewPlanError(common.MalformedPlanError, "aggregate node %d has no parent", aggID)
	}

	b := newNodeBuilder(tree)
	fp := planner.NewFetcherNode(planner.OpSelect)
	fp.SetRouting(routing, nil)
	fp.Merge = planner.MergeAggregate
	f := b.node(fp)
	merge := b.node(agg.Aggregate().MergeCopy())
	if err := b.Err(); err != nil {
		b.abort()
		return err
	}

	if err := tree.InsertAbove(aggID, f); err != nil {
		return err
	}
	return tree.InsertAbove(f, merge)
}

// pushSort puts a Fetcher carrying the sort order into the Sort's slot, with the Sort
// beneath it, so each partition returns pre-sorted rows for the coordinator to merge.
func (s *Separator) pushSort(qc *query.QueryContext, sortID common.NodeID, routing *region.RoutingTable) error {
	tree := qc.Plan
	sort := tree.Node(sortID)
	if !sort.Parent().IsValid() {
		return common.NewPlanError(common.MalformedPlanError, "sort node %d has no parent", sortID)
	}

	b := newNodeBuilder(tree)
	fp := planner.NewFetcherNode(planner.OpSelect)
	fp.SetRouting(routing, nil)
	fp.PushSort(sort.Sort())
	f := b.node(fp)
	if err := b.Err(); err != nil {
		b.abort()
		return err
	}
	return tree.InsertAbove(sortID, f)
}
