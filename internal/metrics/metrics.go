package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder captures pipeline telemetry.
type Recorder interface {
	RecordSubmission(style string)
	RecordRejection(reason string)
	RecordDegraded(artifact string)
}

// PrometheusRecorder exports assessment counters to Prometheus.
type PrometheusRecorder struct {
	submissions *prometheus.CounterVec
	rejections  *prometheus.CounterVec
	degraded    *prometheus.CounterVec
}

// NewPrometheusRecorder registers the counters under namespace, reusing collectors that
// are already registered.
func NewPrometheusRecorder(namespace string, reg prometheus.Registerer) (*PrometheusRecorder, error) {
	if namespace == "" {
		namespace = "style_finder"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &PrometheusRecorder{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Classified submissions by winning style.",
		}, []string{"style"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejections_total",
			Help:      "Submissions rejected before a report was produced.",
		}, []string{"reason"}),
		degraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "degraded_reports_total",
			Help:      "Reports produced without one of their artifacts.",
		}, []string{"artifact"}),
	}
	vecs := []**prometheus.CounterVec{&r.submissions, &r.rejections, &r.degraded}
	for _, vec := range vecs {
		if err := reg.Register(*vec); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
					*vec = existing
					continue
				}
			}
			return nil, fmt.Errorf("register assessment metric: %w", err)
		}
	}
	return r, nil
}

func (r *PrometheusRecorder) RecordSubmission(style string) {
	if r == nil {
		return
	}
	r.submissions.WithLabelValues(style).Inc()
}

func (r *PrometheusRecorder) RecordRejection(reason string) {
	if r == nil {
		return
	}
	r.rejections.WithLabelValues(reason).Inc()
}

func (r *PrometheusRecorder) RecordDegraded(artifact string) {
	if r == nil {
		return
	}
	r.degraded.WithLabelValues(artifact).Inc()
}

type nopRecorder struct{}

// Nop returns a Recorder that drops everything.
func Nop() Recorder { return nopRecorder{} }

func (nopRecorder) RecordSubmission(string) {}

func (nopRecorder) RecordRejection(string) {}

func (nopRecorder) RecordDegraded(string) {}
