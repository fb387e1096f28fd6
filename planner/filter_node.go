package planner

import (
	"fmt"
)

// FilterNode filters rows from its child based on a predicate.
type FilterNode struct {
	Predicate Expr
}

func NewFilterNode(predicate Expr) *FilterNode {
	return &FilterNode{Predicate: predicate}
}

func (n *FilterNode) Kind() NodeKind {
	return KindFilter
}

func (n *FilterNode) String() string {
	if n.Predicate == nil {
		return "Filter"
	}
	return fmt.Sprintf("Filter: %s", n.Predicate.String())
}

func (n *FilterNode) isPayload() {}
