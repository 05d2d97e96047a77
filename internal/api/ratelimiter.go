package api

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// rateLimiter admits allocation runs. When a run is refused it reports how
// long the client should wait before retrying.
type rateLimiter interface {
	Admit() (bool, time.Duration)
}

type runBudget struct {
	limiter *rate.Limiter
}

func newRunBudget(runsPerSecond float64, burst int) rateLimiter {
	if runsPerSecond <= 0 {
		runsPerSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}

	return &runBudget{
		limiter: rate.NewLimiter(rate.Limit(runsPerSecond), burst),
	}
}

func (b *runBudget) Admit() (bool, time.Duration) {
	if b == nil || b.limiter == nil {
		return true, 0
	}
	res := b.limiter.Reserve()
	if !res.OK() {
		return false, time.Second
	}
	wait := res.Delay()
	if wait == 0 {
		return true, 0
	}
	res.Cancel()
	return false, wait
}

// retryAfterHeader renders wait as whole seconds, never less than one.
func retryAfterHeader(wait time.Duration) string {
	secs := int(math.Ceil(wait.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// limitAllocations guards the allocation endpoint. Catalogue reads, health
// checks and metrics scrapes are never throttled.
func limitAllocations(limiter rateLimiter, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, wait := limiter.Admit()
		if ok {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Retry-After", retryAfterHeader(wait))
		writeError(w, http.StatusTooManyRequests, "Too many allocation runs", "allocation rate limit exceeded, retry after the advertised delay")
	})
}
