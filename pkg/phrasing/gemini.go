package phrasing

import (
	"EmployeeAssistant/pkg/gemini"
	"EmployeeAssistant/pkg/metrics"
	"context"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

const defaultTimeout = 10 * time.Second

type GeminiRenderer struct {
	client  gemini.IGemini
	log     *logrus.Logger
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker
}

type Option func(*GeminiRenderer)

func WithTimeout(d time.Duration) Option {
	return func(r *GeminiRenderer) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithBreakerSettings replaces the default breaker, mostly for tests.
func WithBreakerSettings(st gobreaker.Settings) Option {
	return func(r *GeminiRenderer) {
		r.breaker = gobreaker.NewCircuitBreaker(st)
	}
}

// NewGeminiRenderer wraps client with a per-call timeout and a circuit
// breaker. A nil client makes every phrasing attempt fail.
func NewGeminiRenderer(client gemini.IGemini, log *logrus.Logger, opts ...Option) *GeminiRenderer {
	r := &GeminiRenderer{
		client:  client,
		log:     log,
		timeout: timeoutFromEnv(),
	}
	r.breaker = gobreaker.NewCircuitBreaker(r.defaultBreakerSettings())

	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *GeminiRenderer) defaultBreakerSettings() gobreaker.Settings {
	return gobreaker.Settings{
		Name:        "gemini-phrasing",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			r.log.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker state changed")
		},
	}
}

func (r *GeminiRenderer) Render(ctx context.Context, req Request) (string, error) {
	if IsBusinessOnly(req.Intent.ID) {
		metrics.PhrasingRequestsTotal.WithLabelValues(metrics.PhrasingSkipped).Inc()
		return "", ErrSkipped
	}

	if r.client == nil {
		metrics.PhrasingRequestsTotal.WithLabelValues(metrics.PhrasingFailed).Inc()
		return "", ErrUnavailable
	}

	prompt := BuildPrompt(req)
	out, err := r.breaker.Execute(func() (interface{}, error) {
		c, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		text, err := r.client.GenerateText(c, prompt)
		if err != nil {
			return nil, err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, ErrEmptyReply
		}
		return text, nil
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		metrics.PhrasingRequestsTotal.WithLabelValues(metrics.PhrasingBreakerOpen).Inc()
		return "", err
	}
	if err != nil {
		metrics.PhrasingRequestsTotal.WithLabelValues(metrics.PhrasingFailed).Inc()
		r.log.WithFields(logrus.Fields{
			"intent": req.Intent.ID,
			"error":  err.Error(),
		}).Warn("Gemini phrasing failed")
		return "", err
	}

	metrics.PhrasingRequestsTotal.WithLabelValues(metrics.PhrasingOK).Inc()
	return out.(string), nil
}

func timeoutFromEnv() time.Duration {
	secs, err := strconv.Atoi(os.Getenv("PHRASING_TIMEOUT_SECONDS"))
	if err != nil || secs <= 0 {
		return defaultTimeout
	}
	return time.Duration(secs) * time.Second
}
