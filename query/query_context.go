package query

import (
	"mit.edu/dsg/godist/planner"
	"mit.edu/dsg/godist/region"
)

// RuntimeState is the per-statement execution state the separator consults.
type RuntimeState struct {
	// Autocommit is true when the statement runs outside an explicit transaction.
	Autocommit bool
	// ConnectionID identifies the client session, for logging only.
	ConnectionID uint64
}

// QueryContext carries one statement through planning. It is owned by the statement
// lifecycle; the separator rewrites Plan in place and keeps no reference to the context
// once it returns.
type QueryContext struct {
	SQL  string
	Plan *planner.PlanTree

	// Regions is the statement-level routing table: every partition the statement may
	// touch, as resolved by the upstream planner.
	Regions *region.RoutingTable
	// InsertRegionIDs lists the partitions that receive inserted rows and that no Scan
	// discovers.
	InsertRegionIDs *region.PartitionSet

	// NeedSeparate is set by upstream planning when the statement spans several partitions
	// or uses a feature that forces remote execution.
	NeedSeparate bool
	// Enable2PC is the cluster-wide switch selecting two-phase commit for autocommit DML.
	Enable2PC bool

	RuntimeState RuntimeState
}

func NewQueryContext(plan *planner.PlanTree) *QueryContext {
	return &QueryContext{
		Plan:            plan,
		Regions:         &region.RoutingTable{},
		InsertRegionIDs: region.NewPartitionSet(),
		RuntimeState:    RuntimeState{Autocommit: true},
	}
}
