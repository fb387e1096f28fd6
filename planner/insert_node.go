package planner

import (
	"fmt"

	"mit.edu/dsg/godist/common"
)

// InsertNode represents an insertion into a table. Inserted rows reach partitions that no
// Scan discovers; the statement context lists them as insert-only partitions.
type InsertNode struct {
	TableOid common.ObjectID
	Replace  bool
}

func NewInsertNode(tableOid common.ObjectID, replace bool) *InsertNode {
	return &InsertNode{
		TableOid: tableOid,
		Replace:  replace,
	}
}

func (n *InsertNode) Kind() NodeKind {
	return KindInsert
}

func (n *InsertNode) String() string {
	if n.Replace {
		return fmt.Sprintf("Replace: TableOID(%d)", n.TableOid)
	}
	return fmt.Sprintf("Insert: TableOID(%d)", n.TableOid)
}

func (n *InsertNode) isPayload() {}
