package planner

import (
	"fmt"

	"mit.edu/dsg/godist/transaction"
)

// TransactionNode carries one transaction command. Its children are executed in order;
// which of them actually run is decided by the executor.
type TransactionNode struct {
	Cmd transaction.TxnCmd
}

func NewTransactionNode(cmd transaction.TxnCmd) *TransactionNode {
	return &TransactionNode{Cmd: cmd}
}

func (n *TransactionNode) Kind() NodeKind {
	return KindTransaction
}

func (n *TransactionNode) String() string {
	return fmt.Sprintf("Transaction: %s", n.Cmd)
}

func (n *TransactionNode) isPayload() {}
