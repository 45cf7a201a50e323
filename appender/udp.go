package appender

import (
	"context"
	"net"
	"sync/atomic"

	"golang.org/x/time/rate"
)

// UDP sends formatted messages as UDP datagrams, rate-limited against
// sustained bursts. The limiter is held behind an atomic pointer so
// Reload can swap the configured rate without blocking an in-flight
// Write — the same pattern the retrieval pack uses for hot-reloadable
// token-bucket limiters on a receive path.
type UDP struct {
	conn    *net.UDPConn
	limiter atomic.Pointer[rate.Limiter]
}

// UDPConfig configures the destination and send-rate limit.
type UDPConfig struct {
	Addr  string // host:port
	Limit int    // datagrams per second; 0 disables limiting
	Burst int    // token bucket burst size; ignored when Limit is 0
}

// NewUDP resolves cfg.Addr and dials a UDP socket.
func NewUDP(cfg UDPConfig) (*UDP, error) {
	addr, err := net.ResolveUDPAddr("udp", cfg.Addr)
	if err != nil {
		return nil, err
	}
	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return nil, err
	}
	u := &UDP{conn: conn}
	if cfg.Limit > 0 {
		u.limiter.Store(rate.NewLimiter(rate.Limit(cfg.Limit), cfg.Burst))
	}
	return u, nil
}

// Reload swaps the rate limit without interrupting in-flight sends.
func (u *UDP) Reload(limit, burst int) {
	if limit <= 0 {
		u.limiter.Store(nil)
		return
	}
	u.limiter.Store(rate.NewLimiter(rate.Limit(limit), burst))
}

func (u *UDP) Write(msg LoggedMessage) error {
	if l := u.limiter.Load(); l != nil {
		if err := l.Wait(context.Background()); err != nil {
			return err
		}
	}
	_, err := u.conn.Write(msg.Text)
	return err
}

func (u *UDP) Flush() error { return nil }

func (u *UDP) Close() error { return u.conn.Close() }

func (u *UDP) SetEncoding(string) error { return nil }
