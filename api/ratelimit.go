package api

import (
	"context"
	"errors"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/fulldump/box"
	"golang.org/x/time/rate"
)

var ErrTooManyRequests = errors.New("too many requests")

// Limiter keeps one token bucket per client address.
type Limiter struct {
	mutex   sync.Mutex
	buckets map[string]*bucket
	rate    rate.Limit
	burst   int
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewLimiter(requestsPerSecond, burst int) *Limiter {
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		buckets: map[string]*bucket{},
		rate:    rate.Limit(requestsPerSecond),
		burst:   burst,
	}
}

// Allow reports whether key may proceed now and, if not, how long to wait.
func (l *Limiter) Allow(key string) (bool, time.Duration) {
	now := time.Now()

	l.mutex.Lock()
	b, exists := l.buckets[key]
	if !exists {
		b = &bucket{
			limiter: rate.NewLimiter(l.rate, l.burst),
		}
		l.buckets[key] = b
	}
	b.lastSeen = now
	l.mutex.Unlock()

	r := b.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, time.Second
	}
	delay := r.DelayFrom(now)
	if delay == 0 {
		return true, 0
	}
	r.CancelAt(now)
	return false, delay
}

// Cleanup forgets clients not seen since before.
func (l *Limiter) Cleanup(before time.Time) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	for key, b := range l.buckets {
		if b.lastSeen.Before(before) {
			delete(l.buckets, key)
		}
	}
}

func (l *Limiter) Len() int {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return len(l.buckets)
}

// clientHost is the host of the connection peer. Forwarding headers are client
// supplied and never used as a limiter key.
func clientHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit rejects clients going over the limiter budget, keyed by the
// connection peer address.
func RateLimit(l *Limiter) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			allowed, retryAfter := l.Allow(clientHost(box.GetRequest(ctx)))
			if !allowed {
				seconds := int(math.Ceil(retryAfter.Seconds()))
				box.GetResponse(ctx).Header().Set("Retry-After", strconv.Itoa(max(seconds, 1)))
				box.SetError(ctx, ErrTooManyRequests)
				return
			}
			next(ctx)
		}
	}
}
