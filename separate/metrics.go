package separate

import (
	"github.com/prometheus/client_golang/prometheus"
	"mit.edu/dsg/godist/common"
)

// Metrics counts rewrites by the shape they produced and failures by error code.
// A nil *Metrics records nothing.
type Metrics struct {
	rewrites *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewMetrics creates the separator counters and registers them with reg when it is not
// nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		rewrites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "godist",
				Subsystem: "separate",
				Name:      "rewrite_total",
				Help:      "Total count of plan rewrites by resulting shape.",
			}, []string{"shape"}),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "godist",
				Subsystem: "separate",
				Name:      "failure_total",
				Help:      "Total count of failed plan rewrites by error code.",
			}, []string{"code"}),
	}
	if reg != nil {
		reg.MustRegister(m.rewrites, m.failures)
	}
	return m
}

func (m *Metrics) observeRewrite(s Shape) {
	if m == nil {
		return
	}
	m.rewrites.WithLabelValues(string(s)).Inc()
}

func (m *Metrics) observeFailure(err error) {
	if m == nil {
		return
	}
	code := "unknown"
	for c := common.MalformedPlanError; c <= common.DecodeError; c++ {
		if common.IsPlanError(err, c) {
			code = c.String()
			break
		}
	}
	m.failures.WithLabelValues(code).Inc()
}
