package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricComparisonsTotal   = "hierpart.comparisons.total"
	metricComparisonDuration = "hierpart.comparison.duration.seconds"
	metricNodesCompared      = "hierpart.comparison.nodes.total"

	attrOp     = "op"
	attrStatus = "status"

	statusOK    = "ok"
	statusError = "error"
)

// durationBucketBoundaries covers 100µs to 60s: comparisons range from
// trivial trees to deep partitions over large universes.
var durationBucketBoundaries = []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60}

// CompareMetrics holds the OTel instruments recorded around tree comparisons.
type CompareMetrics struct {
	comparisonsTotal   metric.Int64Counter
	comparisonDuration metric.Float64Histogram
	nodesCompared      metric.Int64Counter
}

// NewCompareMetrics creates the comparison instruments from the given meter.
func NewCompareMetrics(mt metric.Meter) (*CompareMetrics, error) {
	total, err := mt.Int64Counter(metricComparisonsTotal,
		metric.WithDescription("Total number of tree comparisons"),
		metric.WithUnit("{comparison}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricComparisonsTotal, err)
	}

	duration, err := mt.Float64Histogram(metricComparisonDuration,
		metric.WithDescription("Tree comparison duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricComparisonDuration, err)
	}

	nodes, err := mt.Int64Counter(metricNodesCompared,
		metric.WithDescription("Total number of tree nodes submitted to comparisons"),
		metric.WithUnit("{node}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricNodesCompared, err)
	}

	return &CompareMetrics{
		comparisonsTotal:   total,
		comparisonDuration: duration,
		nodesCompared:      nodes,
	}, nil
}

// Record registers one comparison under the given operation name. A nil
// receiver is a no-op, so metrics can be left unconfigured.
func (m *CompareMetrics) Record(ctx context.Context, op string, elapsed time.Duration, nodes int, err error) {
	if m == nil {
		return
	}

	status := statusOK
	if err != nil {
		status = statusError
	}

	attrs := metric.WithAttributes(
		attribute.String(attrOp, op),
		attribute.String(attrStatus, status),
	)

	m.comparisonsTotal.Add(ctx, 1, attrs)
	m.comparisonDuration.Record(ctx, elapsed.Seconds(), attrs)
	m.nodesCompared.Add(ctx, int64(nodes), attrs)
}
