package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipemint/backend/internal/events"
	"github.com/pageza/recipemint/backend/internal/ledger"
	"github.com/pageza/recipemint/backend/internal/middleware"
	"github.com/pageza/recipemint/backend/internal/service"
)

// Deps are the collaborators the routes need. Metadata and Limiter may be nil.
type Deps struct {
	Ledger   *ledger.Ledger
	Auth     middleware.TokenValidator
	Metadata service.IMetadataService
	Limiter  *middleware.RateLimiter
}

// RouteRegistrar is implemented by every handler
type RouteRegistrar interface {
	RegisterRoutes(public, protected *gin.RouterGroup)
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Deps) {
	router.GET("/health", HealthCheck(deps.Ledger))

	v1 := router.Group("/api/v1")
	protected := v1.Group("", middleware.AuthMiddleware(deps.Auth), deps.Limiter.RateLimitMiddleware())

	handlers := []RouteRegistrar{
		NewProfileHandler(deps.Ledger),
		NewRecipeHandler(deps.Ledger),
		NewCollectibleHandler(deps.Ledger),
		NewAdminHandler(deps.Ledger),
		NewMetadataHandler(deps.Ledger, deps.Metadata),
		NewEventHandler(deps.Ledger),
	}
	for _, h := range handlers {
		h.RegisterRoutes(v1, protected)
	}
}

// HealthCheck reports whether the ledger store is reachable
func HealthCheck(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := l.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	}
}

// EventHandler pages through the committed event log
type EventHandler struct {
	ledger *ledger.Ledger
}

func NewEventHandler(l *ledger.Ledger) *EventHandler {
	return &EventHandler{ledger: l}
}

func (h *EventHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/events", h.ListEvents)
}

// ListEvents returns events after ?after= (default 0), at most ?limit=
func (h *EventHandler) ListEvents(c *gin.Context) {
	after, err := strconv.ParseUint(c.DefaultQuery("after", "0"), 10, 64)
	if err != nil {
		badRequest(c, "invalid after")
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		badRequest(c, "invalid limit")
		return
	}

	evts, err := h.ledger.GetEvents(c.Request.Context(), after, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	msgs := make([]events.Message, 0, len(evts))
	for _, e := range evts {
		msgs = append(msgs, events.NewMessage(e))
	}
	c.JSON(http.StatusOK, gin.H{"events": msgs})
}
