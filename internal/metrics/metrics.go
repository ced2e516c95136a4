// Package metrics records store call counts and latencies with Prometheus.
package metrics

import (
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	requestsName = "todolist_store_requests_total"
	durationName = "todolist_store_request_duration_seconds"

	// OutcomeOK and OutcomeError label finished store calls.
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

var (
	storeRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: requestsName,
			Help: "Total number of store requests",
		},
		[]string{"op", "outcome"},
	)

	storeRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    durationName,
			Help:    "Histogram of store request durations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)
)

// Registry holds the client's collectors. It is separate from the default
// registry so nothing else leaks into the stats output.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(storeRequestsTotal, storeRequestDuration)
}

// ObserveStoreCall records one finished store call.
func ObserveStoreCall(op string, dur time.Duration, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	storeRequestsTotal.WithLabelValues(op, outcome).Inc()
	storeRequestDuration.WithLabelValues(op).Observe(dur.Seconds())
}

// Count is one request counter series.
type Count struct {
	Op      string
	Outcome string
	Value   float64
}

// Snapshot returns the request counters sorted by op, then outcome.
func Snapshot() ([]Count, error) {
	families, err := Registry.Gather()
	if err != nil {
		return nil, err
	}

	var counts []Count
	for _, mf := range families {
		if mf.GetName() != requestsName {
			continue
		}
		for _, m := range mf.GetMetric() {
			c := Count{Value: m.GetCounter().GetValue()}
			for _, lp := range m.GetLabel() {
				switch lp.GetName() {
				case "op":
					c.Op = lp.GetValue()
				case "outcome":
					c.Outcome = lp.GetValue()
				}
			}
			counts = append(counts, c)
		}
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Op != counts[j].Op {
			return counts[i].Op < counts[j].Op
		}
		return counts[i].Outcome < counts[j].Outcome
	})
	return counts, nil
}
