package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/puzpuzpuz/xsync/v3"
	"mit.edu/dsg/godist/common"
	"mit.edu/dsg/godist/region"
)

// Catalog is the planner's view of partition placement. The placement subsystem owns
// the truth; it registers and refreshes descriptors here, and statement planning reads
// them to resolve partitions that plans reference by id.
//
// Lookups happen on every statement while placement refreshes arrive concurrently, so
// descriptors live in a concurrent map. Persistence is a single JSON blob written through
// a PersistenceProvider, which is enough for the CLI and for tests; a cluster deployment
// feeds the catalog from the placement service instead.
type Catalog struct {
	partitions *xsync.MapOf[common.PartitionID, region.Descriptor]
	provider   PersistenceProvider
}

// PersistenceProvider abstracts how the catalog is saved to and loaded from disk.
type PersistenceProvider interface {
	LoadCatalogState() (json string, err error)
	SaveCatalogState(json string) error
}

type catalogState struct {
	Partitions []region.Descriptor `json:"partitions"`
}

// NewCatalog initializes a catalog. It attempts to load existing state from the
// provider; if no state exists, it starts empty. A nil provider keeps the catalog in
// memory only.
func NewCatalog(provider PersistenceProvider) (*Catalog, error) {
	c := &Catalog{
		partitions: xsync.NewMapOf[common.PartitionID, region.Descriptor](),
		provider:   provider,
	}
	if provider == nil {
		return c, nil
	}

	jsonData, err := provider.LoadCatalogState()
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, err
	}

	var state catalogState
	if err := json.Unmarshal([]byte(jsonData), &state); err != nil {
		// Parsing errors are fatal, usually indicating corruption
		return nil, fmt.Errorf("failed to parse catalog state: %v", err)
	}
	for _, d := range state.Partitions {
		c.partitions.Store(d.ID, d)
	}
	return c, nil
}

// AddPartition registers a new partition. If a partition with that id already exists,
// it returns DuplicateObjectError.
func (c *Catalog) AddPartition(d region.Descriptor) error {
	if _, loaded := c.partitions.LoadOrStore(d.ID, d); loaded {
		return common.PlanError{
			Code:      common.DuplicateObjectError,
			ErrString: fmt.Sprintf("partition %d already exists", d.ID),
		}
	}
	return c.persist()
}

// UpdatePartition replaces the descriptor of an existing partition, e.g. after the
// placement subsystem moved it to another store.
func (c *Catalog) UpdatePartition(d region.Descriptor) error {
	if _, ok := c.partitions.Load(d.ID); !ok {
		return common.PlanError{
			Code:      common.NoSuchObjectError,
			ErrString: fmt.Sprintf("partition %d does not exist", d.ID),
		}
	}
	c.partitions.Store(d.ID, d)
	return c.persist()
}

// RemovePartition drops a partition from the catalog.
func (c *Catalog) RemovePartition(id common.PartitionID) error {
	if _, ok := c.partitions.LoadAndDelete(id); !ok {
		return common.PlanError{
			Code:      common.NoSuchObjectError,
			ErrString: fmt.Sprintf("partition %d does not exist", id),
		}
	}
	return c.persist()
}

// GetPartition fetches the descriptor of one partition.
func (c *Catalog) GetPartition(id common.PartitionID) (region.Descriptor, error) {
	d, ok := c.partitions.Load(id)
	if !ok {
		return region.Descriptor{}, common.PlanError{
			Code:      common.NoSuchObjectError,
			ErrString: fmt.Sprintf("partition %d does not exist", id),
		}
	}
	return d, nil
}

// Resolve builds a routing table for the given partition ids. Every id must be known.
func (c *Catalog) Resolve(ids []common.PartitionID) (*region.RoutingTable, error) {
	rt := &region.RoutingTable{}
	for _, id := range ids {
		d, err := c.GetPartition(id)
		if err != nil {
			return nil, err
		}
		rt.Set(d)
	}
	return rt, nil
}

// TablePartitions returns the routing table of every partition of one table.
func (c *Catalog) TablePartitions(tableOid common.ObjectID) *region.RoutingTable {
	rt := &region.RoutingTable{}
	c.partitions.Range(func(_ common.PartitionID, d region.Descriptor) bool {
		if d.TableOid == tableOid {
			rt.Set(d)
		}
		return true
	})
	return rt
}

// Partitions returns every registered descriptor in partition order.
func (c *Catalog) Partitions() []region.Descriptor {
	out := make([]region.Descriptor, 0, c.partitions.Size())
	c.partitions.Range(func(_ common.PartitionID, d region.Descriptor) bool {
		out = append(out, d)
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (c *Catalog) String() string {
	b, _ := json.MarshalIndent(catalogState{Partitions: c.Partitions()}, "", "  ")
	return string(b)
}

func (c *Catalog) persist() error {
	if c.provider == nil {
		return nil
	}
	b, err := json.MarshalIndent(catalogState{Partitions: c.Partitions()}, "", "  ")
	if err != nil {
		return err
	}
	return c.provider.SaveCatalogState(string(b))
}

const CatalogFileName = "partitions.json"

type DiskCatalogManager struct {
	rootPath string
}

func NewDiskCatalogManager(rootPath string) *DiskCatalogManager {
	return &DiskCatalogManager{
		rootPath: rootPath,
	}
}

// LoadCatalogState implements the catalog.PersistenceProvider interface.
func (dcm *DiskCatalogManager) LoadCatalogState() (string, error) {
	path := filepath.Join(dcm.rootPath, CatalogFileName)
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err // Let the caller (Catalog) handle os.ErrNotExist
	}
	return string(content), nil
}

// SaveCatalogState implements the catalog.PersistenceProvider interface.
func (dcm *DiskCatalogManager) SaveCatalogState(jsonData string) error {
	// write a temporary file and rename it over the old state
	tmpPath := filepath.Join(dcm.rootPath, CatalogFileName+".tmp")
	finalPath := filepath.Join(dcm.rootPath, CatalogFileName)

	if err := os.MkdirAll(dcm.rootPath, 0755); err != nil {
		return err
	}
	if err := os.WriteFile(tmpPath, []byte(jsonData), 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, finalPath)
}
