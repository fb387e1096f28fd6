package separate

import (
	"mit.edu/dsg/godist/common"
	"mit.edu/dsg/godist/planner"
	"mit.edu/dsg/godist/query"
)

// joinInput is a direct, non-join child of a Join and the Scan it reads from.
type joinInput struct {
	child common.NodeID
	scan  common.NodeID
}

// separateJoins gives every non-join input of every Join its own SELECT Fetcher, routed
// to that input's partitions. The input's Scan records the Fetcher so the executor can
// re-fetch per outer row. Joins are rewritten independently of each other.
func (s *Separator) separateJoins(qc *query.QueryContext, joins []common.NodeID) error {
	tree := qc.Plan
	var inputs []joinInput
	for _, j := range joins {
		for _, c := range tree.Node(j).Children() {
			child := tree.Node(c)
			switch child.Kind() {
			case planner.KindJoin:
				continue
			case planner.KindScan:
				inputs = append(inputs, joinInput{child: c, scan: c})
			case planner.KindFilter:
				if child.NumChildren() != 1 || tree.Node(child.Child(0)).Kind() != planner.KindScan {
					return common.NewPlanError(common.IllegalPlanError,
						"join %d input filter %d is not directly above a scan", j, c)
				}
				inputs = append(inputs, joinInput{child: c, scan: child.Child(0)})
			default:
				return common.NewPlanError(common.IllegalPlanError,
					"join %d has illegal input %s (node %d)", j, child.Kind(), c)
			}
		}
	}

	b := newNodeBuilder(tree)
	fetchers := make([]common.NodeID, len(inputs))
	for i, in := range inputs {
		fetchers[i] = b.fetcher(planner.OpSelect, tree.Node(in.scan).Scan().Routing, nil)
	}
	if err := b.Err(); err != nil {
		b.abort()
		return err
	}

	for i, in := range inputs {
		if err := tree.InsertAbove(in.child, fetchers[i]); err != nil {
			return err
		}
		tree.Node(in.scan).Scan().RelatedFetcher = fetchers[i]
	}
	return nil
}
