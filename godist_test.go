package godist

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mit.edu/dsg/godist/common"
	"mit.edu/dsg/godist/config"
	"mit.edu/dsg/godist/logutil"
	"mit.edu/dsg/godist/planner"
	"mit.edu/dsg/godist/region"
	"mit.edu/dsg/godist/separate"
	"mit.edu/dsg/godist/transaction"
)

const deleteDoc = `{
  "sql": "delete from t where v > 1",
  "need_separate": true,
  "regions": [5, 9],
  "plan": {"type": "packet", "op": "DELETE", "children": [
    {"type": "delete", "table": 1, "children": [
      {"type": "scan", "table": 1, "regions": [5, 9]}
    ]}
  ]}
}`

func newTestGoDist(t *testing.T, dir string) *GoDist {
	prev := logutil.GetGlobalLogger()
	t.Cleanup(func() { logutil.SetGlobalLogger(prev) })

	cfg := config.Default()
	cfg.Log.Level = "error"
	g, err := NewGoDist(cfg, dir, prometheus.NewRegistry())
	require.NoError(t, err)
	return g
}

func TestGoDist_SeparateResolvesCatalog(t *testing.T) {
	dir := t.TempDir()
	g := newTestGoDist(t, dir)
	require.NoError(t, g.Catalog.AddPartition(region.Descriptor{ID: 5, TableOid: 1, Address: "store-a:8110"}))
	require.NoError(t, g.Catalog.AddPartition(region.Descriptor{ID: 9, TableOid: 1, Address: "store-b:8110"}))

	qc, shape, err := g.Separate([]byte(deleteDoc))
	require.NoError(t, err)
	assert.Equal(t, separate.ShapeDML2PC, shape)

	commit := qc.Plan.Node(qc.Plan.Root()).Child(0)
	assert.Equal(t, transaction.TxnCommit, qc.Plan.Node(commit).Transaction().Cmd)
	for _, f := range qc.Plan.FindAll(planner.KindFetcher) {
		rt := qc.Plan.Node(f).Fetcher().Routing
		assert.Equal(t, []common.PartitionID{5, 9}, rt.IDs())
		d, ok := rt.Get(9)
		require.True(t, ok)
		assert.Equal(t, "store-b:8110", d.Address)
	}

	// The catalog survives a restart.
	reopened := newTestGoDist(t, dir)
	_, err = reopened.Catalog.GetPartition(5)
	assert.NoError(t, err)
}

func TestGoDist_SeparateHonorsConfig(t *testing.T) {
	g := newTestGoDist(t, "")
	require.NoError(t, g.Catalog.AddPartition(region.Descriptor{ID: 5}))
	require.NoError(t, g.Catalog.AddPartition(region.Descriptor{ID: 9}))

	g.Config.Separate.Enable2PC = false
	_, shape, err := g.Separate([]byte(deleteDoc))
	require.NoError(t, err)
	assert.Equal(t, separate.ShapeDML1PC, shape)

	g.Config.Separate.Enable2PC = true
	g.Config.Separate.MaxPlanNodes = 5
	_, _, err = g.Separate([]byte(deleteDoc))
	assert.True(t, common.IsPlanError(err, common.ResourceExhaustedError), "got %v", err)
}

func TestGoDist_UnknownPartition(t *testing.T) {
	g := newTestGoDist(t, "")
	_, _, err := g.Separate([]byte(deleteDoc))
	assert.True(t, common.IsPlanError(err, common.NoSuchObjectError), "got %v", err)
}

func TestGoDist_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Format = "xml"
	_, err := NewGoDist(cfg, "", nil)
	assert.True(t, common.IsPlanError(err, common.InvalidConfigError), "got %v", err)
}
