package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

const aiLimitMessage = "Too many AI requests from this IP, please try again after a minute."

// AIRateLimiter enforces a sliding window per caller identity: at most
// `limit` requests inside any `window`. Rejected requests are not queued.
// Per-identity timestamp logs live in an LRU so an abusive crawler cannot
// grow the map without bound. The clock is a field so tests can pin it.
type AIRateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	now     func() time.Time
	history *lru.Cache[string, []time.Time]
}

func NewAIRateLimiter(limit int, window time.Duration) *AIRateLimiter {
	history, err := lru.New[string, []time.Time](10000)
	if err != nil {
		panic(err)
	}
	return &AIRateLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		history: history,
	}
}

// Allow records and admits the request unless the identity already made
// `limit` requests within the window.
func (l *AIRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	var recent []time.Time
	if stamps, ok := l.history.Get(key); ok {
		for _, t := range stamps {
			if now.Sub(t) < l.window {
				recent = append(recent, t)
			}
		}
	}

	if len(recent) >= l.limit {
		l.history.Add(key, recent)
		return false
	}

	recent = append(recent, now)
	l.history.Add(key, recent)
	return true
}

// Handler gates a route on the sliding window, keyed by client IP.
func (l *AIRateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": aiLimitMessage,
			})
			return
		}
		c.Next()
	}
}

// IPRateLimiter is a coarser token-bucket throttle for write endpoints,
// one bucket per client IP.
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*rate.Limiter
	r        rate.Limit
	b        int
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		visitors: make(map[string]*rate.Limiter),
		r:        r,
		b:        b,
	}
}

func (l *IPRateLimiter) limiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.visitors[ip]
	if !ok {
		lim = rate.NewLimiter(l.r, l.b)
		l.visitors[ip] = lim
	}
	return lim
}

func (l *IPRateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.limiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "Too many requests, please slow down.",
			})
			return
		}
		c.Next()
	}
}
