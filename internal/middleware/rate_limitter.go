package middleware

import (
	"EmployeeAssistant/pkg/response"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	defaultRatePerSecond = 50
	defaultBurst         = 100
	limiterIdleTTL       = 10 * time.Minute
)

var (
	ErrTooManyRequests = response.NewError(http.StatusTooManyRequests, "too many requests")
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter keeps one token bucket per client IP. Buckets idle for longer
// than limiterIdleTTL are dropped on the next sweep.
type rateLimiter struct {
	bucket    map[string]*clientLimiter
	rate      rate.Limit
	burstSize int
	mutex     *sync.Mutex
	lastSweep time.Time
	now       func() time.Time
}

func newRateLimiter(reqRate rate.Limit, burstSize int) *rateLimiter {
	return &rateLimiter{
		bucket:    make(map[string]*clientLimiter),
		rate:      reqRate,
		burstSize: burstSize,
		mutex:     &sync.Mutex{},
		now:       time.Now,
	}
}

// rateLimiterFromEnv reads RATE_LIMIT_RPS and RATE_LIMIT_BURST.
func rateLimiterFromEnv() *rateLimiter {
	rps := float64(defaultRatePerSecond)
	if v, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64); err == nil && v > 0 {
		rps = v
	}
	burst := defaultBurst
	if v, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST")); err == nil && v > 0 {
		burst = v
	}
	return newRateLimiter(rate.Limit(rps), burst)
}

func (r *rateLimiter) GetLimiterFrom(ip string) *rate.Limiter {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	now := r.now()
	if now.Sub(r.lastSweep) > limiterIdleTTL {
		for key, cl := range r.bucket {
			if now.Sub(cl.lastSeen) > limiterIdleTTL {
				delete(r.bucket, key)
			}
		}
		r.lastSweep = now
	}

	cl, exist := r.bucket[ip]
	if !exist {
		cl = &clientLimiter{limiter: rate.NewLimiter(r.rate, r.burstSize)}
		r.bucket[ip] = cl
	}
	cl.lastSeen = now

	return cl.limiter
}

func (r *rateLimiter) size() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.bucket)
}

func (m *middleware) NewRateLimiter(ctx *fiber.Ctx) error {
	clientIP := ctx.IP()
	limiter := m.rateLimitter.GetLimiterFrom(clientIP)

	if !limiter.Allow() {
		m.log.WithFields(logrus.Fields{
			"request_id": m.GetRequestID(ctx),
			"client_ip":  clientIP,
			"path":       ctx.Path(),
		}).Warn("Too many requests")
		return ctx.Status(response.StatusCode(ErrTooManyRequests)).JSON(fiber.Map{
			"error": ErrTooManyRequests.Error(),
		})
	}

	return ctx.Next()
}
