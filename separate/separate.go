// Package separate rewrites a single-node statement plan into a distributed one: it
// inserts Fetcher boundary nodes between the coordinator and the partitions a statement
// touches, and assembles the Transaction protocol nodes that keep multi-partition writes
// atomic.
package separate

import (
	"go.uber.org/zap"
	"mit.edu/dsg/godist/common"
	"mit.edu/dsg/godist/planner"
	"mit.edu/dsg/godist/query"
)

// Shape names the rewrite Analyze applied to a plan.
type Shape string

const (
	ShapeNoop            Shape = "noop"
	ShapeLocal           Shape = "local"
	ShapeSinglePartition Shape = "single_partition"
	ShapeJoin            Shape = "join"
	ShapeAggregate       Shape = "aggregate"
	ShapeSort            Shape = "sort"
	ShapeLimit           Shape = "limit"
	ShapeDefault         Shape = "default"
	ShapeDMLDirect       Shape = "dml_direct"
	ShapeDML1PC          Shape = "dml_1pc"
	ShapeDML2PC          Shape = "dml_2pc"
	ShapeBegin           Shape = "begin"
	ShapeCommit          Shape = "commit"
	ShapeRollback        Shape = "rollback"
)

type Options struct {
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
	// Metrics may be nil.
	Metrics *Metrics
	// VerifyPlan runs PlanTree.Validate on every rewritten plan.
	VerifyPlan bool
}

// Separator is stateless between statements and may be shared by goroutines planning
// different statements.
type Separator struct {
	logger  *zap.Logger
	metrics *Metrics
	verify  bool
}

func New(opts Options) *Separator {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Separator{
		logger:  logger.Named("separate"),
		metrics: opts.Metrics,
		verify:  opts.VerifyPlan,
	}
}

// Analyze rewrites qc.Plan in place. On error the statement must be aborted: the plan is
// left as it was before the failing rewrite step and must not be executed remotely.
func (s *Separator) Analyze(qc *query.QueryContext) error {
	_, err := s.AnalyzeShape(qc)
	return err
}

// AnalyzeShape is Analyze, also reporting which rewrite was applied.
func (s *Separator) AnalyzeShape(qc *query.QueryContext) (Shape, error) {
	common.Assert(qc != nil && qc.Plan != nil, "query context without a plan")
	shape, err := s.analyze(qc)
	if err == nil && s.verify {
		err = qc.Plan.Validate()
	}
	if err != nil {
		s.metrics.observeFailure(err)
		s.logger.Warn("separate plan failed",
			zap.String("sql", qc.SQL),
			zap.String("op", statementOp(qc.Plan)),
			zap.Uint64("connection-id", qc.RuntimeState.ConnectionID),
			zap.Error(err))
		return shape, err
	}
	s.metrics.observeRewrite(shape)
	s.logger.Debug("separated plan",
		zap.String("sql", qc.SQL),
		zap.String("shape", string(shape)),
		zap.Int("nodes", qc.Plan.Len()))
	return shape, nil
}

func (s *Separator) analyze(qc *query.QueryContext) (Shape, error) {
	tree := qc.Plan
	packetID := tree.FindFirst(planner.KindPacket)
	if !packetID.IsValid() {
		return ShapeNoop, common.NewPlanError(common.MalformedPlanError, "plan has no packet node")
	}
	packet := tree.Node(packetID)
	if packet.NumChildren() == 0 {
		return ShapeNoop, nil
	}
	if !qc.NeedSeparate {
		return ShapeLocal, nil
	}

	op := packet.Packet().Op
	switch {
	case op.IsDML():
		return s.separateDML(qc, packetID)
	case op == planner.OpBegin || op == planner.OpCommit || op == planner.OpRollback:
		txnID := tree.FindFirst(planner.KindTransaction)
		if !txnID.IsValid() {
			return ShapeNoop, common.NewPlanError(common.MissingTransactionNodeError,
				"%s statement has no transaction node", op)
		}
		switch op {
		case planner.OpBegin:
			return ShapeBegin, s.separateBegin(qc, txnID)
		case planner.OpCommit:
			return ShapeCommit, s.separateCommit(qc, txnID)
		default:
			return ShapeRollback, s.separateRollback(qc, txnID)
		}
	}
	return s.separateSelect(qc, packetID)
}

func statementOp(tree *planner.PlanTree) string {
	if id := tree.FindFirst(planner.KindPacket); id.IsValid() {
		return tree.Node(id).Packet().Op.String()
	}
	return "none"
}
