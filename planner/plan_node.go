package planner

import (
	"mit.edu/dsg/godist/common"
)

// NodeKind tags the payload a plan node carries.
type NodeKind int

const (
	KindPacket NodeKind = iota
	KindScan
	KindJoin
	KindFilter
	KindSort
	KindAggregate
	KindMergeAggregate
	KindLimit
	KindFetcher
	KindTransaction
	KindInsert
	KindUpdate
	KindDelete
)

func (k NodeKind) String() string {
	switch k {
	case KindPacket:
		return "Packet"
	case KindScan:
		return "Scan"
	case KindJoin:
		return "Join"
	case KindFilter:
		return "Filter"
	case KindSort:
		return "Sort"
	case KindAggregate:
		return "Aggregate"
	case KindMergeAggregate:
		return "MergeAggregate"
	case KindLimit:
		return "Limit"
	case KindFetcher:
		return "Fetcher"
	case KindTransaction:
		return "Transaction"
	case KindInsert:
		return "Insert"
	case KindUpdate:
		return "Update"
	case KindDelete:
		return "Delete"
	}
	return "unknown"
}

// Payload is the kind-specific content of a plan node. The set of payloads is closed:
// only the node types declared in this package implement it.
type Payload interface {
	// Kind returns the node kind this payload belongs to.
	Kind() NodeKind

	// String returns a one-line description used by Explain.
	String() string

	isPayload()
}

// Node is one vertex of a PlanTree. Structure (parent and children) is only modified
// through PlanTree methods, which keep both sides of every edge consistent.
type Node struct {
	id       common.NodeID
	parent   common.NodeID
	children []common.NodeID
	payload  Payload
}

func (n *Node) ID() common.NodeID {
	return n.id
}

func (n *Node) Kind() NodeKind {
	return n.payload.Kind()
}

// Parent returns the parent id, or common.InvalidNodeID for a detached node or the root.
func (n *Node) Parent() common.NodeID {
	return n.parent
}

// Children returns a copy of the ordered child list.
func (n *Node) Children() []common.NodeID {
	out := make([]common.NodeID, len(n.children))
	copy(out, n.children)
	return out
}

func (n *Node) NumChildren() int {
	return len(n.children)
}

func (n *Node) Child(i int) common.NodeID {
	common.Assert(i >= 0 && i < len(n.children), "child index %d out of range for node %d", i, n.id)
	return n.children[i]
}

func (n *Node) Payload() Payload {
	return n.payload
}

func (n *Node) String() string {
	return n.payload.String()
}

func (n *Node) childIndex(child common.NodeID) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

func (n *Node) Packet() *PacketNode {
	p, ok := n.payload.(*PacketNode)
	common.Assert(ok, "node %d is %s, not Packet", n.id, n.Kind())
	return p
}

func (n *Node) Scan() *ScanNode {
	p, ok := n.payload.(*ScanNode)
	common.Assert(ok, "node %d is %s, not Scan", n.id, n.Kind())
	return p
}

func (n *Node) Join() *JoinNode {
	p, ok := n.payload.(*JoinNode)
	common.Assert(ok, "node %d is %s, not Join", n.id, n.Kind())
	return p
}

func (n *Node) Filter() *FilterNode {
	p, ok := n.payload.(*FilterNode)
	common.Assert(ok, "node %d is %s, not Filter", n.id, n.Kind())
	return p
}

func (n *Node) Sort() *SortNode {
	p, ok := n.payload.(*SortNode)
	common.Assert(ok, "node %d is %s, not Sort", n.id, n.Kind())
	return p
}

// Aggregate returns the payload of an Aggregate or MergeAggregate node.
func (n *Node) Aggregate() *AggregateNode {
	p, ok := n.payload.(*AggregateNode)
	common.Assert(ok, "node %d is %s, not Aggregate", n.id, n.Kind())
	return p
}

func (n *Node) Limit() *LimitNode {
	p, ok := n.payload.(*LimitNode)
	common.Assert(ok, "node %d is %s, not Limit", n.id, n.Kind())
	return p
}

func (n *Node) Fetcher() *FetcherNode {
	p, ok := n.payload.(*FetcherNode)
	common.Assert(ok, "node %d is %s, not Fetcher", n.id, n.Kind())
	return p
}

func (n *Node) Transaction() *TransactionNode {
	p, ok := n.payload.(*TransactionNode)
	common.Assert(ok, "node %d is %s, not Transaction", n.id, n.Kind())
	return p
}
