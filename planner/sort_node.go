package planner

import (
	"strings"
)

type SortDirection int

const (
	SortOrderAscending SortDirection = iota
	SortOrderDescending
)

func (d SortDirection) String() string {
	if d == SortOrderDescending {
		return "DESC"
	}
	return "ASC"
}

type OrderByClause struct {
	Expr      Expr
	Direction SortDirection
}

func (c OrderByClause) String() string {
	return c.Expr.String() + " " + c.Direction.String()
}

func cloneOrderBy(in []OrderByClause) []OrderByClause {
	if in == nil {
		return nil
	}
	out := make([]OrderByClause, len(in))
	copy(out, in)
	return out
}

func formatOrderBy(orderBy []OrderByClause) string {
	parts := make([]string, len(orderBy))
	for i, c := range orderBy {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}

// SortNode sorts the input rows.
type SortNode struct {
	OrderBy []OrderByClause
}

func NewSortNode(orderBy []OrderByClause) *SortNode {
	return &SortNode{OrderBy: orderBy}
}

func (n *SortNode) Kind() NodeKind {
	return KindSort
}

func (n *SortNode) String() string {
	return "Sort: " + formatOrderBy(n.OrderBy)
}

func (n *SortNode) isPayload() {}
