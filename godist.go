package godist

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	// Imports all sub-components
	"mit.edu/dsg/godist/catalog"
	"mit.edu/dsg/godist/config"
	"mit.edu/dsg/godist/logutil"
	"mit.edu/dsg/godist/query"
	"mit.edu/dsg/godist/separate"
)

// GoDist is the top-level container for the planning front end: it owns the partition
// catalog and the separator configured for this process.
type GoDist struct {
	Config    config.Config
	Logger    *zap.Logger
	Catalog   *catalog.Catalog
	Metrics   *separate.Metrics
	Separator *separate.Separator
}

// NewGoDist wires the components described by cfg. catalogDir holds the partition
// catalog file; an empty catalogDir keeps the catalog in memory. reg may be nil, in which
// case metrics are collected but not exported.
func NewGoDist(cfg config.Config, catalogDir string, reg prometheus.Registerer) (*GoDist, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger, err := logutil.NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	logutil.SetGlobalLogger(logger)

	var provider catalog.PersistenceProvider
	if catalogDir != "" {
		if err := os.MkdirAll(catalogDir, 0755); err != nil {
			return nil, err
		}
		provider = catalog.NewDiskCatalogManager(catalogDir)
	}
	cat, err := catalog.NewCatalog(provider)
	if err != nil {
		return nil, err
	}

	metrics := separate.NewMetrics(reg)
	sep := separate.New(separate.Options{
		Logger:     logger,
		Metrics:    metrics,
		VerifyPlan: cfg.Separate.VerifyPlan,
	})
	logger.Info("godist initialized",
		zap.String("catalog-dir", catalogDir),
		zap.Bool("enable-2pc", cfg.Separate.Enable2PC),
		zap.Int("max-plan-nodes", cfg.Separate.MaxPlanNodes))

	return &GoDist{
		Config:    cfg,
		Logger:    logger,
		Catalog:   cat,
		Metrics:   metrics,
		Separator: sep,
	}, nil
}

// DecodeOptions returns the document decoding defaults implied by the configuration.
func (g *GoDist) DecodeOptions() query.DecodeOptions {
	return query.DecodeOptions{
		Enable2PC: g.Config.Separate.Enable2PC,
		NodeLimit: g.Config.Separate.MaxPlanNodes,
		Resolver:  g.Catalog,
	}
}

// Separate decodes a JSON plan document and rewrites its plan for distributed
// execution.
func (g *GoDist) Separate(doc []byte) (*query.QueryContext, separate.Shape, error) {
	qc, err := query.DecodeDocument(doc, g.DecodeOptions())
	if err != nil {
		g.Logger.Warn("decode plan document failed", zap.Error(err))
		return nil, separate.ShapeNoop, err
	}
	shape, err := g.Separator.AnalyzeShape(qc)
	if err != nil {
		return nil, shape, err
	}
	return qc, shape, nil
}
