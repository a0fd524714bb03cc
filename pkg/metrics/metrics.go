package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeAnswered     = "answered"
	OutcomeNoIntent     = "no_intent"
	OutcomeLoginNeeded  = "login_required"
	OutcomeAwaitingSlot = "awaiting_slot"
	OutcomeFailed       = "failed"
	OutcomeCommand      = "command"

	PhrasingOK          = "ok"
	PhrasingFailed      = "failed"
	PhrasingSkipped     = "skipped"
	PhrasingBreakerOpen = "breaker_open"
)

var (
	ChatTurnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ess_chat_turns_total",
		Help: "Chat turns processed, by matched intent and outcome",
	}, []string{"intent", "outcome"})

	ChatTurnDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ess_chat_turn_duration_seconds",
		Help:    "Latency of a single chat turn",
		Buckets: prometheus.DefBuckets,
	})

	PhrasingRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ess_phrasing_requests_total",
		Help: "Generative phrasing attempts, by result",
	}, []string{"result"})
)

func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
