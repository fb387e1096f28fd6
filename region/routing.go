package region

// Route computes the routing table a boundary node needs: every partition of base plus
// the partitions of the insert-only set, whose descriptors are resolved against the
// statement-level table. The result never aliases base or statement.
func Route(base *RoutingTable, statement *RoutingTable, inserts *PartitionSet) *RoutingTable {
	out := base.Clone()
	out.Merge(statement.Restrict(inserts))
	return out
}

// StatementRoute is the routing of a statement without any Scan: the statement-level
// table narrowed to the insert-only partitions when the statement names any, the whole
// statement-level table otherwise.
func StatementRoute(statement *RoutingTable, inserts *PartitionSet) *RoutingTable {
	if inserts.IsEmpty() {
		return statement.Clone()
	}
	return statement.Restrict(inserts)
}
