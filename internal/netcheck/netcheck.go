// Package netcheck answers one question: does a network path to the news
// provider exist right now. The orchestrator branches on it before fetching.
package netcheck

import (
	"context"
	"net"
	"time"
)

// Probe reports current connectivity.
type Probe interface {
	Online(ctx context.Context) bool
}

// DialProbe checks connectivity with a single TCP dial.
type DialProbe struct {
	Addr    string
	Timeout time.Duration
}

// NewDialProbe probes host:443.
func NewDialProbe(host string) *DialProbe {
	return &DialProbe{Addr: net.JoinHostPort(host, "443"), Timeout: 3 * time.Second}
}

func (p *DialProbe) Online(ctx context.Context) bool {
	d := net.Dialer{Timeout: p.Timeout}
	conn, err := d.DialContext(ctx, "tcp", p.Addr)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
