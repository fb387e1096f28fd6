package region

import (
	"fmt"

	"mit.edu/dsg/godist/common"
)

// Descriptor describes one partition as produced by the placement subsystem. The
// separator treats it as opaque routing payload: it is copied onto Scan and Fetcher
// nodes and never interpreted.
type Descriptor struct {
	ID       common.PartitionID `json:"id"`
	TableOid common.ObjectID    `json:"table_oid"`
	Address  string             `json:"address"`
	StartKey string             `json:"start_key"`
	EndKey   string             `json:"end_key"`
}

func (d Descriptor) String() string {
	return fmt.Sprintf("Partition(%d)@%s[%q, %q)", d.ID, d.Address, d.StartKey, d.EndKey)
}
