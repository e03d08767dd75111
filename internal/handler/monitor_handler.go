package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/seatwise/seatwise-backend/internal/config"
	"github.com/seatwise/seatwise-backend/internal/middleware"
	"github.com/seatwise/seatwise-backend/internal/response"
	"github.com/seatwise/seatwise-backend/internal/service"
)

const (
	refreshInterval   = 15 * time.Second
	keepAliveInterval = 30 * time.Second
	refreshTimeout    = 5 * time.Second // prevent slow queries from blocking the SSE loop
)

// MonitorHandler streams the live room dashboard to a proctor over SSE:
// an initial snapshot, forwarded Pub/Sub events, and periodic stat refreshes.
type MonitorHandler struct {
	rdb            *redis.Client
	sessionService *service.SessionService
	monitorService *service.MonitorService
	log            zerolog.Logger
}

// NewMonitorHandler creates a new MonitorHandler.
func NewMonitorHandler(
	rdb *redis.Client,
	sessionService *service.SessionService,
	monitorService *service.MonitorService,
	log zerolog.Logger,
) *MonitorHandler {
	return &MonitorHandler{
		rdb:            rdb,
		sessionService: sessionService,
		monitorService: monitorService,
		log:            log.With().Str("component", "monitor_handler").Logger(),
	}
}

// ownedSessionID parses :id and checks the session belongs to the caller.
func (h *MonitorHandler) ownedSessionID(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return uuid.Nil, false
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}

	session, err := h.sessionService.GetByID(c.Request.Context(), sessionID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return uuid.Nil, false
	}
	if session.ProctorID != claims.UserID {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		return uuid.Nil, false
	}
	return sessionID, true
}

// AuditTrail godoc
// GET /api/v1/proctor/sessions/:id/audit
func (h *MonitorHandler) AuditTrail(c *gin.Context) {
	sessionID, ok := h.ownedSessionID(c)
	if !ok {
		return
	}

	events, err := h.monitorService.AuditTrail(c.Request.Context(), sessionID)
	if err != nil {
		h.log.Error().Err(err).Msg("Audit trail lookup failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"events": events})
}

// MonitorSessionSSE godoc
// GET /api/v1/proctor/sessions/:id/monitor
func (h *MonitorHandler) MonitorSessionSSE(c *gin.Context) {
	sessionID, ok := h.ownedSessionID(c)
	if !ok {
		return
	}

	reqCtx := c.Request.Context()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*")

	h.sendSnapshot(c, reqCtx, sessionID)

	channelName := config.CacheKey.SessionMonitorChannel(sessionID.String())
	pubsub := h.rdb.Subscribe(reqCtx, channelName)
	defer pubsub.Close()

	ch := pubsub.Channel()

	keepAliveTicker := time.NewTicker(keepAliveInterval)
	defer keepAliveTicker.Stop()

	refreshTicker := time.NewTicker(refreshInterval)
	defer refreshTicker.Stop()

	// Skip refresh queries until an event proves someone is in the room.
	hasParticipants := false

	h.log.Info().Str("session_id", sessionID.String()).Msg("Proctor attached to live monitor SSE")

	pingPayload, _ := json.Marshal(map[string]string{"type": "ping"})

	for {
		select {
		case <-reqCtx.Done():
			h.log.Info().Str("session_id", sessionID.String()).Msg("Proctor disconnected from live monitor SSE")
			return

		case msg := <-ch:
			// Forward raw JSON directly, no deserialization needed.
			c.Writer.Write([]byte("data: "))
			c.Writer.Write([]byte(msg.Payload))
			c.Writer.Write([]byte("\n\n"))
			c.Writer.Flush()

			hasParticipants = true

		case <-refreshTicker.C:
			if !hasParticipants {
				continue
			}
			h.sendRefresh(c, reqCtx, sessionID)

		case <-keepAliveTicker.C:
			c.Writer.Write([]byte("data: "))
			c.Writer.Write(pingPayload)
			c.Writer.Write([]byte("\n\n"))
			c.Writer.Flush()
		}
	}
}

// sendSnapshot writes the first SSE event: full room state plus stats.
func (h *MonitorHandler) sendSnapshot(c *gin.Context, parentCtx context.Context, sessionID uuid.UUID) {
	ctx, cancel := context.WithTimeout(parentCtx, refreshTimeout)
	defer cancel()

	state, err := h.sessionService.State(ctx, sessionID)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to build monitor snapshot")
		return
	}

	stats, err := h.monitorService.Stats(ctx, sessionID)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to fetch stats for snapshot")
		return
	}

	c.SSEvent("message", map[string]interface{}{
		"type": "snapshot",
		"data": map[string]interface{}{
			"session":      state.Session,
			"participants": state.Participants,
			"empty_seats":  state.EmptySeats,
			"remaining":    state.Remaining,
			"stats":        stats,
		},
	})
	c.Writer.Flush()
}

// sendRefresh polls current counters and sends a compact refresh event.
func (h *MonitorHandler) sendRefresh(c *gin.Context, parentCtx context.Context, sessionID uuid.UUID) {
	ctx, cancel := context.WithTimeout(parentCtx, refreshTimeout)
	defer cancel()

	stats, err := h.monitorService.Stats(ctx, sessionID)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to fetch stats for refresh")
		return
	}

	c.SSEvent("message", map[string]interface{}{
		"type":  "refresh",
		"stats": stats,
	})
	c.Writer.Flush()
}
