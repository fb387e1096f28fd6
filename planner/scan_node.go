package planner

import (
	"fmt"

	"mit.edu/dsg/godist/common"
	"mit.edu/dsg/godist/region"
)

// ScanNode represents a scan over the partitions of one table. Routing is computed by
// the upstream planner from the scan's key ranges.
//
// RelatedFetcher is a non-owning back-reference to the Fetcher that re-fetches this scan
// per row or batch when it feeds a Join. It is common.InvalidNodeID otherwise.
type ScanNode struct {
	TableOid       common.ObjectID
	Routing        *region.RoutingTable
	RelatedFetcher common.NodeID
}

func NewScanNode(tableOid common.ObjectID, routing *region.RoutingTable) *ScanNode {
	if routing == nil {
		routing = &region.RoutingTable{}
	}
	return &ScanNode{
		TableOid:       tableOid,
		Routing:        routing,
		RelatedFetcher: common.InvalidNodeID,
	}
}

func (n *ScanNode) Kind() NodeKind {
	return KindScan
}

func (n *ScanNode) String() string {
	s := fmt.Sprintf("Scan: TableOID(%d) partitions=%s", n.TableOid, n.Routing)
	if n.RelatedFetcher.IsValid() {
		s += fmt.Sprintf(" fetcher=#%d", n.RelatedFetcher)
	}
	return s
}

func (n *ScanNode) isPayload() {}
