package check

import (
	"context"
	"sync"

	"github.com/fwojciec/docindex"
	"golang.org/x/time/rate"
)

var _ docindex.DomainLimiter = (*HostLimiter)(nil)

// HostLimiter keeps one token bucket per host, so probes of different
// hosts proceed independently.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewHostLimiter allows rps requests per second to each host with the
// given burst. A non-positive rps disables limiting.
func NewHostLimiter(rps float64, burst int) *HostLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		burst:    burst,
	}
}

// Wait blocks until a request to host is allowed.
func (h *HostLimiter) Wait(ctx context.Context, host string) error {
	return h.limiter(host).Wait(ctx)
}

func (h *HostLimiter) limiter(host string) *rate.Limiter {
	h.mu.Lock()
	defer h.mu.Unlock()

	l, ok := h.limiters[host]
	if !ok {
		l = rate.NewLimiter(h.limit, h.burst)
		h.limiters[host] = l
	}
	return l
}
