package transaction

// TxnCmd is the command tag carried by a Transaction plan node.
//
// Coordinator-side commands (Begin, Commit, CommitBegin, Rollback, RollbackBegin) drive
// the client-visible transaction. Store-side commands (BeginStore, Prepare, CommitStore,
// RollbackStore) are shipped to every partition addressed by the enclosing Fetcher.
type TxnCmd int

const (
	TxnBegin TxnCmd = iota
	TxnCommit
	// TxnCommitBegin commits the current transaction and immediately opens a new one.
	TxnCommitBegin
	TxnRollback
	// TxnRollbackBegin rolls back the current transaction and immediately opens a new one.
	TxnRollbackBegin
	TxnBeginStore
	TxnPrepare
	TxnCommitStore
	TxnRollbackStore
)

func (c TxnCmd) String() string {
	switch c {
	case TxnBegin:
		return "BEGIN"
	case TxnCommit:
		return "COMMIT"
	case TxnCommitBegin:
		return "COMMIT_BEGIN"
	case TxnRollback:
		return "ROLLBACK"
	case TxnRollbackBegin:
		return "ROLLBACK_BEGIN"
	case TxnBeginStore:
		return "STORE_BEGIN"
	case TxnPrepare:
		return "STORE_PREPARE"
	case TxnCommitStore:
		return "STORE_COMMIT"
	case TxnRollbackStore:
		return "STORE_ROLLBACK"
	}
	return "unknown"
}

// ParseTxnCmd maps the textual form produced by String back to a TxnCmd.
func ParseTxnCmd(s string) (TxnCmd, bool) {
	for c := TxnBegin; c <= TxnRollbackStore; c++ {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}

// IsStoreCmd reports whether the command executes on the partitions rather than on the
// coordinator.
func (c TxnCmd) IsStoreCmd() bool {
	switch c {
	case TxnBeginStore, TxnPrepare, TxnCommitStore, TxnRollbackStore:
		return true
	}
	return false
}

// IsCommit reports whether the command finishes the current transaction with a commit.
func (c TxnCmd) IsCommit() bool {
	return c == TxnCommit || c == TxnCommitBegin
}

// IsRollback reports whether the command finishes the current transaction with a rollback.
func (c TxnCmd) IsRollback() bool {
	return c == TxnRollback || c == TxnRollbackBegin
}

// ChainsBegin reports whether a new transaction must be opened right after this one ends.
func (c TxnCmd) ChainsBegin() bool {
	return c == TxnCommitBegin || c == TxnRollbackBegin
}
