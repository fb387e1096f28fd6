package planner

import (
	"fmt"
)

// LimitNode limits the number of output rows.
type LimitNode struct {
	Offset int64
	Count  int64
}

func NewLimitNode(offset, count int64) *LimitNode {
	return &LimitNode{
		Offset: offset,
		Count:  count,
	}
}

func (n *LimitNode) Kind() NodeKind {
	return KindLimit
}

func (n *LimitNode) String() string {
	return fmt.Sprintf("Limit: %d OFFSET %d", n.Count, n.Offset)
}

func (n *LimitNode) isPayload() {}
