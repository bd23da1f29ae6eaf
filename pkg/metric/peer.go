package metric

import "github.com/prometheus/client_golang/prometheus"

// Peer counts push tasks received from one client address
type Peer struct {
	pushRecv prometheus.Counter
}

func (p *Peer) Inc() {
	p.pushRecv.Inc()
}
