package planner

import (
	"fmt"
)

type JoinType int

const (
	InnerJoin JoinType = iota
	LeftJoin
	RightJoin
	SemiJoin
)

func (j JoinType) String() string {
	switch j {
	case InnerJoin:
		return "INNER"
	case LeftJoin:
		return "LEFT"
	case RightJoin:
		return "RIGHT"
	case SemiJoin:
		return "SEMI"
	}
	return "???"
}

// JoinNode joins the rows of its children. Children are Joins, Scans, or Filters directly
// above a Scan; the separator relies on that shape.
type JoinNode struct {
	Type      JoinType
	Predicate Expr
}

func NewJoinNode(joinType JoinType, predicate Expr) *JoinNode {
	return &JoinNode{
		Type:      joinType,
		Predicate: predicate,
	}
}

func (n *JoinNode) Kind() NodeKind {
	return KindJoin
}

func (n *JoinNode) String() string {
	if n.Predicate == nil {
		return fmt.Sprintf("Join: %s", n.Type)
	}
	return fmt.Sprintf("Join: %s ON %s", n.Type, n.Predicate.String())
}

func (n *JoinNode) isPayload() {}
