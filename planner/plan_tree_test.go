package planner

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mit.edu/dsg/godist/common"
	"mit.edu/dsg/godist/region"
)

// buildSelect creates Packet(SELECT) -> Limit -> Sort -> Filter -> Scan and returns the
// tree together with the ids, root first.
func buildSelect(t *testing.T) (*PlanTree, []common.NodeID) {
	tree := NewPlanTree()
	col := NewColumnValueExpression(0, common.IntType, "id")

	scan, err := tree.NewNode(NewScanNode(1, region.NewRoutingTable(region.Descriptor{ID: 1})))
	require.NoError(t, err)
	filter, err := tree.NewNodeWithChildren(NewFilterNode(
		NewComparisonExpression(col, NewConstantValueExpression(common.NewIntValue(3)), GreaterThan)), scan)
	require.NoError(t, err)
	sort, err := tree.NewNodeWithChildren(NewSortNode([]OrderByClause{{Expr: col, Direction: SortOrderDescending}}), filter)
	require.NoError(t, err)
	limit, err := tree.NewNodeWithChildren(NewLimitNode(0, 10), sort)
	require.NoError(t, err)
	packet, err := tree.NewNodeWithChildren(NewPacketNode(OpSelect), limit)
	require.NoError(t, err)
	require.NoError(t, tree.SetRoot(packet))
	require.NoError(t, tree.Validate())
	return tree, []common.NodeID{packet, limit, sort, filter, scan}
}

func TestPlanTree_BuildAndFind(t *testing.T) {
	tree, ids := buildSelect(t)
	packet, limit, sort, filter, scan := ids[0], ids[1], ids[2], ids[3], ids[4]

	assert.Equal(t, 5, tree.Len())
	assert.Equal(t, packet, tree.Root())
	assert.Equal(t, sort, tree.FindFirst(KindSort))
	assert.Equal(t, []common.NodeID{scan}, tree.FindAll(KindScan))
	assert.Equal(t, common.InvalidNodeID, tree.FindFirst(KindJoin))
	assert.Equal(t, limit, tree.Node(sort).Parent())
	assert.Equal(t, []common.NodeID{scan}, tree.Node(filter).Children())

	want := "Packet: SELECT\n" +
		"  Limit: 10 OFFSET 0\n" +
		"    Sort: id DESC\n" +
		"      Filter: (id > 3)\n" +
		"        Scan: TableOID(1) partitions={1}\n"
	assert.Equal(t, want, tree.Explain())
}

func TestPlanTree_AddChildRejectsAttachedAndCycles(t *testing.T) {
	tree, ids := buildSelect(t)
	packet, limit, sort := ids[0], ids[1], ids[2]

	err := tree.AddChild(packet, sort)
	assert.True(t, common.IsPlanError(err, common.IllegalPlanError), "sort is attached")

	err = tree.AddChild(sort, packet)
	assert.True(t, common.IsPlanError(err, common.IllegalPlanError), "packet is the root")

	detached, err := tree.DetachChild(packet, 0)
	require.NoError(t, err)
	assert.Equal(t, limit, detached)
	err = tree.AddChild(sort, limit)
	assert.True(t, common.IsPlanError(err, common.IllegalPlanError), "limit is an ancestor of sort")

	_, err = tree.DetachChild(packet, 0)
	assert.True(t, common.IsPlanError(err, common.NoSuchObjectError))
}

func TestPlanTree_ReplaceChild(t *testing.T) {
	tree, ids := buildSelect(t)
	limit, sort, filter := ids[1], ids[2], ids[3]

	fetcher, err := tree.NewNode(NewFetcherNode(OpSelect))
	require.NoError(t, err)
	require.NoError(t, tree.ReplaceChild(limit, sort, fetcher))

	assert.Equal(t, []common.NodeID{fetcher}, tree.Node(limit).Children())
	assert.Equal(t, limit, tree.Node(fetcher).Parent())
	assert.Equal(t, common.InvalidNodeID, tree.Node(sort).Parent())
	assert.Error(t, tree.Validate(), "sort is orphaned until reattached")

	require.NoError(t, tree.AddChild(fetcher, sort))
	require.NoError(t, tree.Validate())

	err = tree.ReplaceChild(limit, filter, fetcher)
	assert.True(t, common.IsPlanError(err, common.NoSuchObjectError))
}

func TestPlanTree_InsertAbove(t *testing.T) {
	tree, ids := buildSelect(t)
	packet, limit, sort, filter := ids[0], ids[1], ids[2], ids[3]

	fetcher, err := tree.NewNode(NewFetcherNode(OpSelect))
	require.NoError(t, err)
	require.NoError(t, tree.InsertAbove(sort, fetcher))
	require.NoError(t, tree.Validate())
	assert.Equal(t, limit, tree.Node(fetcher).Parent())
	assert.Equal(t, []common.NodeID{sort}, tree.Node(fetcher).Children())
	assert.Equal(t, []common.NodeID{filter}, tree.Node(sort).Children())

	// Inserting above the root replaces the root.
	wrapper, err := tree.NewNode(NewLimitNode(0, 1))
	require.NoError(t, err)
	require.NoError(t, tree.InsertAbove(packet, wrapper))
	assert.Equal(t, wrapper, tree.Root())
	require.NoError(t, tree.Validate())
}

func TestPlanTree_WrapChildren(t *testing.T) {
	tree := NewPlanTree()
	a, _ := tree.NewNode(NewScanNode(1, nil))
	b, _ := tree.NewNode(NewScanNode(2, nil))
	join, err := tree.NewNodeWithChildren(NewJoinNode(InnerJoin, nil), a, b)
	require.NoError(t, err)
	require.NoError(t, tree.SetRoot(join))

	fetcher, err := tree.NewNode(NewFetcherNode(OpSelect))
	require.NoError(t, err)
	require.NoError(t, tree.WrapChildren(join, fetcher))

	assert.Equal(t, []common.NodeID{fetcher}, tree.Node(join).Children())
	assert.Equal(t, []common.NodeID{a, b}, tree.Node(fetcher).Children())
	assert.Equal(t, fetcher, tree.Node(b).Parent())
	require.NoError(t, tree.Validate())

	assert.Error(t, tree.WrapChildren(join, join))
}

func TestPlanTree_DiscardClearsBackReferences(t *testing.T) {
	tree := NewPlanTree()
	scan, _ := tree.NewNode(NewScanNode(1, nil))
	packet, _ := tree.NewNodeWithChildren(NewPacketNode(OpSelect), scan)
	require.NoError(t, tree.SetRoot(packet))

	fetcher, _ := tree.NewNode(NewFetcherNode(OpSelect))
	txn, _ := tree.NewNode(NewFetcherNode(OpSelect))
	require.NoError(t, tree.AddChild(fetcher, txn))
	tree.Node(scan).Scan().RelatedFetcher = fetcher

	assert.Error(t, tree.Discard(txn), "attached nodes cannot be discarded")
	require.NoError(t, tree.Discard(fetcher))
	assert.Equal(t, 2, tree.Len())
	_, ok := tree.Lookup(txn)
	assert.False(t, ok)
	assert.Equal(t, common.InvalidNodeID, tree.Node(scan).Scan().RelatedFetcher)
	require.NoError(t, tree.Validate())
}

func TestPlanTree_NodeLimit(t *testing.T) {
	tree := NewPlanTree()
	tree.SetNodeLimit(2)
	_, err := tree.NewNode(NewPacketNode(OpSelect))
	require.NoError(t, err)
	second, err := tree.NewNode(NewScanNode(1, nil))
	require.NoError(t, err)

	_, err = tree.NewNode(NewFetcherNode(OpSelect))
	assert.True(t, common.IsPlanError(err, common.ResourceExhaustedError))

	require.NoError(t, tree.Discard(second))
	_, err = tree.NewNode(NewFetcherNode(OpSelect))
	assert.NoError(t, err, "discarding frees budget")
}

func TestPlanTree_ValidateNestedFetcher(t *testing.T) {
	tree := NewPlanTree()
	scan, _ := tree.NewNode(NewScanNode(1, nil))
	inner, _ := tree.NewNodeWithChildren(NewFetcherNode(OpSelect), scan)
	outer, _ := tree.NewNodeWithChildren(NewFetcherNode(OpSelect), inner)
	packet, _ := tree.NewNodeWithChildren(NewPacketNode(OpSelect), outer)
	require.NoError(t, tree.SetRoot(packet))

	err := tree.Validate()
	assert.True(t, common.IsPlanError(err, common.IllegalPlanError))
	assert.Contains(t, err.Error(), "nested")
}

func TestPlanTree_ValidateBackReferenceOutsideAncestors(t *testing.T) {
	tree := NewPlanTree()
	left, _ := tree.NewNode(NewScanNode(1, nil))
	right, _ := tree.NewNode(NewScanNode(2, nil))
	lf, _ := tree.NewNodeWithChildren(NewFetcherNode(OpSelect), left)
	rf, _ := tree.NewNodeWithChildren(NewFetcherNode(OpSelect), right)
	join, _ := tree.NewNodeWithChildren(NewJoinNode(InnerJoin, nil), lf, rf)
	require.NoError(t, tree.SetRoot(join))

	tree.Node(left).Scan().RelatedFetcher = lf
	require.NoError(t, tree.Validate())

	tree.Node(right).Scan().RelatedFetcher = lf
	assert.Error(t, tree.Validate())
}

func TestPlanTree_ShapeOf(t *testing.T) {
	tree, ids := buildSelect(t)
	want := Shape{Kind: KindPacket, Children: []Shape{
		{Kind: KindLimit, Children: []Shape{
			{Kind: KindSort, Children: []Shape{
				{Kind: KindFilter, Children: []Shape{{Kind: KindScan}}},
			}},
		}},
	}}
	if diff := cmp.Diff(want, tree.ShapeOf(ids[0])); diff != "" {
		t.Errorf("shape mismatch (-want +got):\n%s", diff)
	}
}

func TestPayloadAccessorsAssertKind(t *testing.T) {
	tree := NewPlanTree()
	id, _ := tree.NewNode(NewPacketNode(OpInsert))
	n := tree.Node(id)
	assert.Equal(t, OpInsert, n.Packet().Op)
	assert.Panics(t, func() { n.Scan() })
	assert.Panics(t, func() { tree.Node(42) })
}

func TestAggregateMergeCopy(t *testing.T) {
	col := NewColumnValueExpression(1, common.IntType, "v")
	agg := NewAggregateNode([]Expr{col}, []AggregateClause{{Type: AggSum, Expr: col}})
	agg.Limit = 5

	merge := agg.MergeCopy()
	assert.Equal(t, KindAggregate, agg.Kind())
	assert.Equal(t, KindMergeAggregate, merge.Kind())
	assert.True(t, merge.IsMerge())
	assert.Equal(t, Unbounded, merge.Limit)
	assert.Equal(t, agg.AggClauses, merge.AggClauses)

	merge.AggClauses[0].Type = AggMax
	assert.Equal(t, AggSum, agg.AggClauses[0].Type, "merge copy must not alias the original clauses")
}

func TestOpTypeClassification(t *testing.T) {
	for _, op := range []OpType{OpInsert, OpUpdate, OpDelete, OpReplace, OpTruncateTable, OpPrepare} {
		assert.True(t, op.IsDML(), op.String())
	}
	for _, op := range []OpType{OpSelect, OpBegin, OpCommit, OpRollback} {
		assert.False(t, op.IsDML(), op.String())
	}
	op, ok := ParseOpType("TRUNCATE_TABLE")
	assert.True(t, ok)
	assert.Equal(t, OpTruncateTable, op)
}
