package region

import (
	"github.com/RoaringBitmap/roaring"
	"mit.edu/dsg/godist/common"
)

// PartitionSet is a set of partition ids. The statement context uses it for the partitions
// touched by row inserts that no Scan discovers, and DML Fetchers carry a copy of it so
// the executor knows which partitions receive new rows.
type PartitionSet struct {
	bm *roaring.Bitmap
}

func NewPartitionSet(ids ...common.PartitionID) *PartitionSet {
	s := &PartitionSet{bm: roaring.New()}
	for _, id := range ids {
		s.bm.Add(uint32(id))
	}
	return s
}

func (s *PartitionSet) Add(id common.PartitionID) {
	if s.bm == nil {
		s.bm = roaring.New()
	}
	s.bm.Add(uint32(id))
}

func (s *PartitionSet) Contains(id common.PartitionID) bool {
	if s == nil || s.bm == nil {
		return false
	}
	return s.bm.Contains(uint32(id))
}

func (s *PartitionSet) Len() int {
	if s == nil || s.bm == nil {
		return 0
	}
	return int(s.bm.GetCardinality())
}

func (s *PartitionSet) IsEmpty() bool {
	return s.Len() == 0
}

// IDs returns the members in ascending order.
func (s *PartitionSet) IDs() []common.PartitionID {
	if s.IsEmpty() {
		return nil
	}
	raw := s.bm.ToArray()
	ids := make([]common.PartitionID, len(raw))
	for i, v := range raw {
		ids[i] = common.PartitionID(v)
	}
	return ids
}

// Clone returns an independent copy. Cloning a nil set yields an empty set.
func (s *PartitionSet) Clone() *PartitionSet {
	if s == nil || s.bm == nil {
		return NewPartitionSet()
	}
	return &PartitionSet{bm: s.bm.Clone()}
}

func (s *PartitionSet) String() string {
	if s.IsEmpty() {
		return "{}"
	}
	return s.bm.String()
}
