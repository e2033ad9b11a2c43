package api

import "sync/atomic"

// Metrics exposes counters for the relay's API layer. The struct can be
// wrapped by Prometheus collectors when integrating with monitoring
// pipelines.
type Metrics struct {
	designsServed    atomic.Int64
	voicesCreated    atomic.Int64
	upstreamFailures atomic.Int64
	queueRejections  atomic.Int64
}

// NewMetrics constructs an empty Metrics collection.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// IncDesignsServed increments the counter for successful design calls.
func (m *Metrics) IncDesignsServed() {
	if m == nil {
		return
	}
	m.designsServed.Add(1)
}

// DesignsServed reports how many design calls were relayed successfully.
func (m *Metrics) DesignsServed() int64 {
	if m == nil {
		return 0
	}
	return m.designsServed.Load()
}

// IncVoicesCreated increments the counter for successful create calls.
func (m *Metrics) IncVoicesCreated() {
	if m == nil {
		return
	}
	m.voicesCreated.Add(1)
}

// VoicesCreated reports how many voices were persisted through the relay.
func (m *Metrics) VoicesCreated() int64 {
	if m == nil {
		return 0
	}
	return m.voicesCreated.Load()
}

// IncUpstreamFailures increments the counter for failed vendor calls.
func (m *Metrics) IncUpstreamFailures() {
	if m == nil {
		return
	}
	m.upstreamFailures.Add(1)
}

// UpstreamFailures reports how many vendor calls failed.
func (m *Metrics) UpstreamFailures() int64 {
	if m == nil {
		return 0
	}
	return m.upstreamFailures.Load()
}

// IncQueueRejections increments the counter for requests shed at admission.
func (m *Metrics) IncQueueRejections() {
	if m == nil {
		return
	}
	m.queueRejections.Add(1)
}

// QueueRejections reports how many requests were rejected because the
// upstream queue was full.
func (m *Metrics) QueueRejections() int64 {
	if m == nil {
		return 0
	}
	return m.queueRejections.Load()
}

// Snapshot returns the current counter values keyed for the detailed
// health payload.
func (m *Metrics) Snapshot() map[string]int64 {
	if m == nil {
		return nil
	}
	return map[string]int64{
		"designs_served":    m.DesignsServed(),
		"voices_created":    m.VoicesCreated(),
		"upstream_failures": m.UpstreamFailures(),
		"queue_rejections":  m.QueueRejections(),
	}
}
