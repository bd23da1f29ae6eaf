package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Provider struct {
	success prometheus.Counter
	fails   *prometheus.CounterVec
	io      prometheus.Observer
}

func (p *Provider) SuccessInc() {
	p.success.Inc()
}

// FailsInc counts a failure under its reason, e.g. an fcm.ErrorKind
func (p *Provider) FailsInc(reason string) {
	p.fails.WithLabelValues(reason).Inc()
}

// NewIOTimer starts a timer, the returned func observes the elapsed time
func (p *Provider) NewIOTimer() func() {
	timer := prometheus.NewTimer(p.io)
	return func() { timer.ObserveDuration() }
}
