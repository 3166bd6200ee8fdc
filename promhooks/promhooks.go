// Package promhooks counts netsync and statestore hook events with
// Prometheus metrics.
package promhooks

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/unkn0wn-root/netsync"
	"github.com/unkn0wn-root/netsync/statestore"
	"github.com/unkn0wn-root/netsync/timecode"
)

// Hooks implements netsync.Hooks and statestore.Hooks.
type Hooks struct {
	rejected    *prometheus.CounterVec
	dropped     *prometheus.CounterVec
	transitions *prometheus.CounterVec
	located     prometheus.Counter
	position    prometheus.Gauge
	storeErrors *prometheus.CounterVec
	selfHeals   *prometheus.CounterVec
	setRejected prometheus.Counter
	seqErrors   prometheus.Counter
}

var (
	_ netsync.Hooks    = (*Hooks)(nil)
	_ statestore.Hooks = (*Hooks)(nil)
)

// New registers the collectors on reg under namespace (e.g. "netsync").
func New(reg prometheus.Registerer, namespace string) (*Hooks, error) {
	h := &Hooks{
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payloads_rejected_total",
			Help:      "Received payloads that failed to decode.",
		}, []string{"code"}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quarter_frames_dropped_total",
			Help:      "Partial quarter-frame sequences discarded.",
		}, []string{"reason"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transport_changes_total",
			Help:      "Transport transitions by target state.",
		}, []string{"to"}),
		located: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "locates_total",
			Help:      "Position updates from full frames, locates and quarter frames.",
		}),
		position: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "position_seconds",
			Help:      "Last known timecode position.",
		}),
		storeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_errors_total",
			Help:      "State store failures seen by masters and followers.",
		}, []string{"op"}),
		selfHeals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "statestore",
			Name:      "self_heals_total",
			Help:      "Records deleted on read.",
		}, []string{"reason"}),
		setRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "statestore",
			Name:      "set_rejected_total",
			Help:      "Writes declined by the provider.",
		}),
		seqErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "statestore",
			Name:      "seq_errors_total",
			Help:      "Sequence store failures.",
		}),
	}
	for _, c := range []prometheus.Collector{
		h.rejected, h.dropped, h.transitions, h.located, h.position,
		h.storeErrors, h.selfHeals, h.setRejected, h.seqErrors,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *Hooks) PayloadRejected(code netsync.Code, _ int) {
	h.rejected.WithLabelValues(strconv.Itoa(int(code))).Inc()
}

func (h *Hooks) QuarterFrameDropped(reason string) { h.dropped.WithLabelValues(reason).Inc() }

func (h *Hooks) TransportChanged(_, to netsync.Transport) {
	h.transitions.WithLabelValues(to.String()).Inc()
}

func (h *Hooks) Located(tc timecode.Timecode) {
	h.located.Inc()
	h.position.Set(tc.Duration().Seconds())
}

func (h *Hooks) StoreError(op string, _ error) { h.storeErrors.WithLabelValues(op).Inc() }

func (h *Hooks) SelfHeal(_, reason string) { h.selfHeals.WithLabelValues(reason).Inc() }
func (h *Hooks) SetRejected(string)        { h.setRejected.Inc() }
func (h *Hooks) SeqError(string, error)    { h.seqErrors.Inc() }
