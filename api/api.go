// Package api implements the HTTP surface of the call-analysis service:
// the cloud analysis endpoint, the local sentiment endpoints, and the
// model/provider introspection endpoints.
package api

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/callsight/analysis"
	"github.com/skillsenselab/callsight/calls"
	"github.com/skillsenselab/callsight/component"
	"github.com/skillsenselab/callsight/llm"
	"github.com/skillsenselab/callsight/logger"
	"github.com/skillsenselab/callsight/observability"
	"github.com/skillsenselab/callsight/sentiment"
	"github.com/skillsenselab/callsight/server/endpoint"
	"github.com/skillsenselab/callsight/stt"
)

// Deps holds the pipelines and providers the handlers operate on. The
// cloud pipeline uses CloudSTT and Generator; the local pipeline uses
// LocalSTT and Sentiment. Metrics is optional.
type Deps struct {
	Analyzer  *analysis.Analyzer
	Local     *calls.LocalAnalyzer
	CloudSTT  stt.Provider
	Generator llm.Provider
	LocalSTT  stt.Provider
	Sentiment sentiment.Provider
	Metrics   *observability.Metrics
}

// Handler serves the call-analysis HTTP API.
type Handler struct {
	deps Deps
	log  *logger.Logger
}

// NewHandler creates a Handler over the given dependencies.
func NewHandler(deps Deps, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.NewDefault("api")
	}
	return &Handler{
		deps: deps,
		log:  log.WithComponent("api"),
	}
}

// RegisterRoutes mounts the API routes on the given router.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/analyze", h.instrument("analyze", h.Analyze))
	r.POST("/sentiment", h.instrument("sentiment", h.Sentiment))
	r.POST("/sentiment/batch", h.instrument("sentiment_batch", h.SentimentBatch))
	r.GET("/models/info", h.ModelsInfo)
}

// instrument records request counts and durations for an endpoint when
// metrics are configured.
func (h *Handler) instrument(op string, fn gin.HandlerFunc) gin.HandlerFunc {
	if h.deps.Metrics == nil {
		return fn
	}
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()
		h.deps.Metrics.RecordRequestStart(ctx)
		fn(c)
		h.deps.Metrics.RecordRequestEnd(ctx, "callsight", op,
			strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

// ProviderHealth returns a health checker that reports one entry per
// configured backend: credential presence for the cloud providers,
// sidecar reachability for the local ones.
func (h *Handler) ProviderHealth() endpoint.HealthChecker {
	return func(ctx context.Context) []component.Health {
		var out []component.Health
		if p := h.deps.Generator; p != nil {
			out = append(out, credentialHealth(ctx, p, "OPENAI_API_KEY"))
		}
		if p := h.deps.CloudSTT; p != nil {
			out = append(out, credentialHealth(ctx, p, "ELEVENLABS_API_KEY"))
		}
		if p := h.deps.LocalSTT; p != nil {
			out = append(out, sidecarHealth(ctx, p))
		}
		if p := h.deps.Sentiment; p != nil {
			out = append(out, sidecarHealth(ctx, p))
		}
		return out
	}
}

// availability is the subset of the provider interface health checks need.
type availability interface {
	Name() string
	IsAvailable(ctx context.Context) bool
}

func credentialHealth(ctx context.Context, p availability, envVar string) component.Health {
	if p.IsAvailable(ctx) {
		return component.Health{Name: p.Name(), Status: component.StatusHealthy, Message: "credential configured"}
	}
	return component.Health{Name: p.Name(), Status: component.StatusUnhealthy, Message: envVar + " not set"}
}

// sidecarHealth reports a local sidecar as degraded rather than
// unhealthy when unreachable: the service still serves the cloud
// pipeline without it.
func sidecarHealth(ctx context.Context, p availability) component.Health {
	if p.IsAvailable(ctx) {
		return component.Health{Name: p.Name(), Status: component.StatusHealthy, Message: "sidecar reachable"}
	}
	return component.Health{Name: p.Name(), Status: component.StatusDegraded, Message: "sidecar unreachable"}
}
