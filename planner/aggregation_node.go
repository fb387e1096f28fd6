package planner

import (
	"fmt"
	"strings"
)

type AggregatorType int

const (
	AggCount AggregatorType = iota
	AggSum
	AggMin
	AggMax
)

func (a AggregatorType) String() string {
	switch a {
	case AggCount:
		return "COUNT"
	case AggSum:
		return "SUM"
	case AggMin:
		return "MIN"
	case AggMax:
		return "MAX"
	}
	return "???"
}

// ParseAggregatorType maps a function name (case-insensitive) to its AggregatorType.
func ParseAggregatorType(s string) (AggregatorType, bool) {
	for a := AggCount; a <= AggMax; a++ {
		if strings.EqualFold(a.String(), s) {
			return a, true
		}
	}
	return 0, false
}

type AggregateClause struct {
	Type AggregatorType
	Expr Expr
}

func (c AggregateClause) String() string {
	return fmt.Sprintf("%s(%s)", c.Type, c.Expr.String())
}

// Unbounded is the limit of nodes that produce every row of their input.
const Unbounded int64 = -1

// AggregateNode represents a group-by and aggregation operation. The same payload backs
// the coordinator-side merge phase, which combines the partial results produced by each
// partition; merge payloads report KindMergeAggregate.
type AggregateNode struct {
	GroupByClause []Expr
	AggClauses    []AggregateClause
	Limit         int64
	merge         bool
}

func NewAggregateNode(groupBy []Expr, aggregates []AggregateClause) *AggregateNode {
	return &AggregateNode{
		GroupByClause: groupBy,
		AggClauses:    aggregates,
		Limit:         Unbounded,
	}
}

// MergeCopy returns the coordinator-side merge counterpart of n: the same grouping and
// aggregate configuration, unbounded.
func (n *AggregateNode) MergeCopy() *AggregateNode {
	groupBy := make([]Expr, len(n.GroupByClause))
	copy(groupBy, n.GroupByClause)
	aggs := make([]AggregateClause, len(n.AggClauses))
	copy(aggs, n.AggClauses)
	return &AggregateNode{
		GroupByClause: groupBy,
		AggClauses:    aggs,
		Limit:         Unbounded,
		merge:         true,
	}
}

func (n *AggregateNode) IsMerge() bool {
	return n.merge
}

func (n *AggregateNode) Kind() NodeKind {
	if n.merge {
		return KindMergeAggregate
	}
	return KindAggregate
}

func (n *AggregateNode) String() string {
	groups := make([]string, len(n.GroupByClause))
	for i, g := range n.GroupByClause {
		groups[i] = g.String()
	}
	aggs := make([]string, len(n.AggClauses))
	for i, a := range n.AggClauses {
		aggs[i] = a.String()
	}
	return fmt.Sprintf("%s: GroupBy(%s) Aggs(%s) limit=%d",
		n.Kind(), strings.Join(groups, ", "), strings.Join(aggs, ", "), n.Limit)
}

func (n *AggregateNode) isPayload() {}
