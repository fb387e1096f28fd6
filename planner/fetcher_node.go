package planner

import (
	"fmt"

	"mit.edu/dsg/godist/region"
)

// MergeMode tells the executor how to combine the partial results a Fetcher collects
// from its partitions.
type MergeMode int

const (
	// MergeConcat appends partition results in arrival order.
	MergeConcat MergeMode = iota
	// MergeSorted performs an ordered merge on the Fetcher's OrderBy clauses; every
	// partition pre-sorts its rows.
	MergeSorted
	// MergeAggregate feeds partial aggregates to a coordinator-side MergeAggregate.
	MergeAggregate
)

func (m MergeMode) String() string {
	switch m {
	case MergeConcat:
		return "concat"
	case MergeSorted:
		return "sorted"
	case MergeAggregate:
		return "aggregate"
	}
	return "unknown"
}

// FetcherNode marks the boundary between coordinator-side and store-side execution. The
// subtree below it is shipped to every partition in Routing, and the partial results
// are merged according to Merge.
type FetcherNode struct {
	Op      OpType
	Routing *region.RoutingTable
	// InsertPartitions lists the partitions receiving inserted rows; only DML Fetchers
	// carry a non-empty set.
	InsertPartitions *region.PartitionSet
	Limit            int64
	OrderBy          []OrderByClause
	Merge            MergeMode
}

func NewFetcherNode(op OpType) *FetcherNode {
	return &FetcherNode{
		Op:               op,
		Routing:          &region.RoutingTable{},
		InsertPartitions: region.NewPartitionSet(),
		Limit:            Unbounded,
		Merge:            MergeConcat,
	}
}

// SetRouting installs the routing table and insert-only partition set. Both are copied.
func (n *FetcherNode) SetRouting(routing *region.RoutingTable, inserts *region.PartitionSet) {
	n.Routing = routing.Clone()
	n.InsertPartitions = inserts.Clone()
}

// PushSort transfers the ordering of a Sort node so that every partition pre-sorts and
// the coordinator merges in order.
func (n *FetcherNode) PushSort(sort *SortNode) {
	n.OrderBy = cloneOrderBy(sort.OrderBy)
	n.Merge = MergeSorted
}

func (n *FetcherNode) Kind() NodeKind {
	return KindFetcher
}

func (n *FetcherNode) String() string {
	s := fmt.Sprintf("Fetcher: %s merge=%s partitions=%s", n.Op, n.Merge, n.Routing)
	if !n.InsertPartitions.IsEmpty() {
		s += " inserts=" + n.InsertPartitions.String()
	}
	if len(n.OrderBy) > 0 {
		s += " order=[" + formatOrderBy(n.OrderBy) + "]"
	}
	return s
}

func (n *FetcherNode) isPayload() {}
