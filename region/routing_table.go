package region

import (
	"strings"

	"github.com/tidwall/btree"
	"mit.edu/dsg/godist/common"
)

// RoutingTable maps partition ids to descriptors. It is kept ordered by partition id so
// every consumer (explain output, the executor fanning requests out) sees partitions in
// the same order.
//
// The zero value is an empty table ready to use. RoutingTables attached to plan nodes are
// never shared: use Clone before handing a table to another node.
type RoutingTable struct {
	m btree.Map[common.PartitionID, Descriptor]
}

// NewRoutingTable builds a table from the given descriptors. Later duplicates win.
func NewRoutingTable(descs ...Descriptor) *RoutingTable {
	rt := &RoutingTable{}
	for _, d := range descs {
		rt.Set(d)
	}
	return rt
}

// Set adds or replaces the descriptor for d.ID.
func (rt *RoutingTable) Set(d Descriptor) {
	rt.m.Set(d.ID, d)
}

// Get returns the descriptor for id.
func (rt *RoutingTable) Get(id common.PartitionID) (Descriptor, bool) {
	if rt == nil {
		return Descriptor{}, false
	}
	return rt.m.Get(id)
}

// Len returns the number of partitions in the table. A nil table is empty.
func (rt *RoutingTable) Len() int {
	if rt == nil {
		return 0
	}
	return rt.m.Len()
}

// IDs returns the partition ids in ascending order.
func (rt *RoutingTable) IDs() []common.PartitionID {
	if rt == nil {
		return nil
	}
	return rt.m.Keys()
}

// Descriptors returns the descriptors in ascending partition order.
func (rt *RoutingTable) Descriptors() []Descriptor {
	if rt == nil {
		return nil
	}
	return rt.m.Values()
}

// Clone returns an independent copy of the table.
func (rt *RoutingTable) Clone() *RoutingTable {
	out := &RoutingTable{}
	if rt == nil {
		return out
	}
	rt.m.Scan(func(id common.PartitionID, d Descriptor) bool {
		out.m.Set(id, d)
		return true
	})
	return out
}

// Restrict returns a new table holding only the partitions of rt whose ids are in set.
// Ids in set that rt does not know about are ignored.
func (rt *RoutingTable) Restrict(set *PartitionSet) *RoutingTable {
	out := &RoutingTable{}
	if rt == nil || set.IsEmpty() {
		return out
	}
	for _, id := range set.IDs() {
		if d, ok := rt.m.Get(id); ok {
			out.m.Set(id, d)
		}
	}
	return out
}

// Merge copies every partition of other into rt.
func (rt *RoutingTable) Merge(other *RoutingTable) {
	if other == nil {
		return
	}
	other.m.Scan(func(id common.PartitionID, d Descriptor) bool {
		rt.m.Set(id, d)
		return true
	})
}

// Equal reports whether both tables address the same partitions with the same descriptors.
func (rt *RoutingTable) Equal(other *RoutingTable) bool {
	if rt.Len() != other.Len() {
		return false
	}
	for _, d := range rt.Descriptors() {
		od, ok := other.Get(d.ID)
		if !ok || od != d {
			return false
		}
	}
	return true
}

func (rt *RoutingTable) String() string {
	ids := rt.IDs()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return "{" + strings.Join(parts, ",") + "}"
}
