package walktypes

import (
	"context"

	"golang.org/x/time/rate"
)

// rateLimited waits for the limiter before every listing call.
type rateLimited struct {
	next    Lister
	limiter *rate.Limiter
}

// RateLimited wraps next so that listing calls are made at most perSecond
// times per second, with bursts of up to burst calls. A non-positive
// perSecond returns next unchanged.
func RateLimited(next Lister, perSecond float64, burst int) Lister {
	if perSecond <= 0 {
		return next
	}
	if burst < 1 {
		burst = 1
	}
	return &rateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

func (r *rateLimited) List(ctx context.Context, req ListRequest) (*Page, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.next.List(ctx, req)
}
