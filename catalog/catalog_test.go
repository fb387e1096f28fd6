package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mit.edu/dsg/godist/common"
	"mit.edu/dsg/godist/region"
)

func TestCatalog_AddAndResolve(t *testing.T) {
	c, err := NewCatalog(nil)
	require.NoError(t, err)

	require.NoError(t, c.AddPartition(region.Descriptor{ID: 9, TableOid: 1, Address: "s2:8110"}))
	require.NoError(t, c.AddPartition(region.Descriptor{ID: 5, TableOid: 1, Address: "s1:8110"}))
	require.NoError(t, c.AddPartition(region.Descriptor{ID: 7, TableOid: 2, Address: "s1:8110"}))

	err = c.AddPartition(region.Descriptor{ID: 5})
	assert.True(t, common.IsPlanError(err, common.DuplicateObjectError))

	rt, err := c.Resolve([]common.PartitionID{9, 5})
	require.NoError(t, err)
	assert.Equal(t, []common.PartitionID{5, 9}, rt.IDs())

	_, err = c.Resolve([]common.PartitionID{5, 100})
	assert.True(t, common.IsPlanError(err, common.NoSuchObjectError))

	assert.Equal(t, []common.PartitionID{5, 9}, c.TablePartitions(1).IDs())
	assert.Len(t, c.Partitions(), 3)
}

func TestCatalog_UpdateAndRemove(t *testing.T) {
	c, err := NewCatalog(nil)
	require.NoError(t, err)
	require.NoError(t, c.AddPartition(region.Descriptor{ID: 1, Address: "old:1"}))

	require.NoError(t, c.UpdatePartition(region.Descriptor{ID: 1, Address: "new:1"}))
	d, err := c.GetPartition(1)
	require.NoError(t, err)
	assert.Equal(t, "new:1", d.Address)

	err = c.UpdatePartition(region.Descriptor{ID: 2})
	assert.True(t, common.IsPlanError(err, common.NoSuchObjectError))

	require.NoError(t, c.RemovePartition(1))
	_, err = c.GetPartition(1)
	assert.True(t, common.IsPlanError(err, common.NoSuchObjectError))
	assert.Error(t, c.RemovePartition(1))
}

func TestCatalog_DiskPersistence(t *testing.T) {
	dir := t.TempDir()
	c, err := NewCatalog(NewDiskCatalogManager(dir))
	require.NoError(t, err)
	assert.Empty(t, c.Partitions())

	require.NoError(t, c.AddPartition(region.Descriptor{ID: 3, TableOid: 1, Address: "s3:8110", StartKey: "a", EndKey: "m"}))
	require.NoError(t, c.AddPartition(region.Descriptor{ID: 4, TableOid: 1, Address: "s4:8110", StartKey: "m"}))

	reloaded, err := NewCatalog(NewDiskCatalogManager(dir))
	require.NoError(t, err)
	assert.Equal(t, c.Partitions(), reloaded.Partitions())

	d, err := reloaded.GetPartition(3)
	require.NoError(t, err)
	assert.Equal(t, "m", d.EndKey)
}
