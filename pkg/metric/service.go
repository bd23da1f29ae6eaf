package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Service struct {
	success *prometheus.CounterVec
	fails   *prometheus.CounterVec
	io      *prometheus.HistogramVec

	pushesRecv *prometheus.CounterVec
}

// New registers the service metrics in reg, prometheus.DefaultRegisterer if
// nil
func New(reg prometheus.Registerer) *Service {

	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Service{
		success: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "push",
			Name:      "processed_tasks",
			Help:      "Messages accepted by the gateway"},
			[]string{"projectId"}),
		fails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "push",
			Name:      "failed_tasks",
			Help:      "Failed messages by error kind"},
			[]string{"projectId", "reason"}),
		io: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "push",
			Name:      "io_seconds",
			Help:      "Time spent in I/O with the gateway",
			Buckets:   prometheus.DefBuckets},
			[]string{"projectId"}),
		pushesRecv: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "push",
			Name:      "pushes_recv",
			Help:      "Pushes recv"},
			[]string{"addr"}),
	}

	for i, c := range []prometheus.Collector{
		m.success,
		m.fails,
		m.io,
		m.pushesRecv,
	} {
		if err := reg.Register(c); err != nil {
			existing, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				panic(err)
			}
			m.reuse(i, existing.ExistingCollector)
		}
	}

	return m
}

// reuse keeps collectors registered by an earlier New in the same registry
func (m *Service) reuse(i int, c prometheus.Collector) {
	switch i {
	case 0:
		m.success = c.(*prometheus.CounterVec)
	case 1:
		m.fails = c.(*prometheus.CounterVec)
	case 2:
		m.io = c.(*prometheus.HistogramVec)
	case 3:
		m.pushesRecv = c.(*prometheus.CounterVec)
	}
}

func (m *Service) GetProviderMetrics(projectID string) (*Provider, error) {

	var err error

	p := &Provider{}
	p.fails, err = m.fails.CurryWith(prometheus.Labels{"projectId": projectID})
	if err != nil {
		return nil, err
	}

	p.success, err = m.success.GetMetricWith(prometheus.Labels{"projectId": projectID})
	if err != nil {
		return nil, err
	}

	p.io, err = m.io.GetMetricWith(prometheus.Labels{"projectId": projectID})
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (m *Service) GetPeerMetrics(addr string) (*Peer, error) {

	pushRecv, err := m.pushesRecv.GetMetricWith(prometheus.Labels{"addr": addr})
	if err != nil {
		return nil, err
	}

	return &Peer{pushRecv: pushRecv}, nil
}
