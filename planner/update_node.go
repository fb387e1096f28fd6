package planner

import (
	"fmt"
	"sort"
	"strings"

	"mit.edu/dsg/godist/common"
)

// UpdateNode represents an update of the rows produced by its child.
type UpdateNode struct {
	TableOid    common.ObjectID
	Assignments map[string]Expr
}

func NewUpdateNode(tableOid common.ObjectID, assignments map[string]Expr) *UpdateNode {
	return &UpdateNode{
		TableOid:    tableOid,
		Assignments: assignments,
	}
}

func (n *UpdateNode) Kind() NodeKind {
	return KindUpdate
}

func (n *UpdateNode) String() string {
	cols := make([]string, 0, len(n.Assignments))
	for col := range n.Assignments {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return fmt.Sprintf("Update: TableOID(%d) SET %s", n.TableOid, strings.Join(cols, ", "))
}

func (n *UpdateNode) isPayload() {}

