package planner

import (
	"fmt"

	"mit.edu/dsg/godist/common"
)

// DeleteNode represents a deletion of the rows produced by its child.
type DeleteNode struct {
	TableOid common.ObjectID
}

func NewDeleteNode(tableOid common.ObjectID) *DeleteNode {
	return &DeleteNode{TableOid: tableOid}
}

func (n *DeleteNode) Kind() NodeKind {
	return KindDelete
}

func (n *DeleteNode) String() string {
	return fmt.Sprintf("Delete: TableOID(%d)", n.TableOid)
}

func (n *DeleteNode) isPayload() {}
