package common

import "fmt"

// Assert checks a condition and panics if it is false.
//
// Use it for states the upstream planner guarantees never to produce, e.g. a payload
// accessed through the wrong kind accessor or a NodeID that was never allocated.
// Conditions that a malformed plan can trigger are returned as PlanError instead.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
