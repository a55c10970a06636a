package metrics

import "github.com/prometheus/client_golang/prometheus"

// LeadMetrics exposes counters/histograms for lead intake and mail sends.
type LeadMetrics struct {
	submissionsTotal *prometheus.CounterVec
	sendsTotal       *prometheus.CounterVec
	sendLatency      *prometheus.HistogramVec
}

func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reviewrocket",
			Subsystem: "leads",
			Name:      "submissions_total",
			Help:      "Lead form submissions by source and outcome",
		}, []string{"source", "outcome"}),
		sendsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reviewrocket",
			Subsystem: "leads",
			Name:      "email_sends_total",
			Help:      "Outbound lead emails by kind and status",
		}, []string{"kind", "status"}),
		sendLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "reviewrocket",
			Subsystem: "leads",
			Name:      "send_latency_seconds",
			Help:      "Latency of outbound lead email sends",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.sendsTotal, m.sendLatency)
	return m
}

// ObserveSubmission records the final outcome of one submission.
func (m *LeadMetrics) ObserveSubmission(source, outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(source, outcome).Inc()
}

// ObserveSend records one outbound email. status is "sent" or a failure reason.
func (m *LeadMetrics) ObserveSend(kind, status string, seconds float64) {
	if m == nil {
		return
	}
	m.sendsTotal.WithLabelValues(kind, status).Inc()
	m.sendLatency.WithLabelValues(kind).Observe(seconds)
}
