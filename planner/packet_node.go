package planner

import (
	"fmt"
)

// OpType is the statement operation carried by Packet and Fetcher nodes.
type OpType int

const (
	OpSelect OpType = iota
	OpInsert
	OpUpdate
	OpDelete
	OpReplace
	OpTruncateTable
	OpBegin
	OpCommit
	OpRollback
	// OpPrepare tags the PREPARE Fetcher of a two-phase commit; as a statement op it is
	// treated as DML.
	OpPrepare
)

func (op OpType) String() string {
	switch op {
	case OpSelect:
		return "SELECT"
	case OpInsert:
		return "INSERT"
	case OpUpdate:
		return "UPDATE"
	case OpDelete:
		return "DELETE"
	case OpReplace:
		return "REPLACE"
	case OpTruncateTable:
		return "TRUNCATE_TABLE"
	case OpBegin:
		return "BEGIN"
	case OpCommit:
		return "COMMIT"
	case OpRollback:
		return "ROLLBACK"
	case OpPrepare:
		return "PREPARE"
	}
	return "unknown"
}

// ParseOpType maps the textual form produced by String back to an OpType.
func ParseOpType(s string) (OpType, bool) {
	for op := OpSelect; op <= OpPrepare; op++ {
		if op.String() == s {
			return op, true
		}
	}
	return 0, false
}

// IsDML reports whether the statement takes the write path, i.e. it is none of SELECT,
// BEGIN, COMMIT and ROLLBACK.
func (op OpType) IsDML() bool {
	switch op {
	case OpSelect, OpBegin, OpCommit, OpRollback:
		return false
	}
	return true
}

// PacketNode is the root of every statement plan. It represents the client statement and
// the operation it performs.
type PacketNode struct {
	Op OpType
}

func NewPacketNode(op OpType) *PacketNode {
	return &PacketNode{Op: op}
}

func (n *PacketNode) Kind() NodeKind {
	return KindPacket
}

func (n *PacketNode) String() string {
	return fmt.Sprintf("Packet: %s", n.Op)
}

func (n *PacketNode) isPayload() {}
