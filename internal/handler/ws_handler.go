package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/seatwise/seatwise-backend/internal/middleware"
	"github.com/seatwise/seatwise-backend/internal/seating"
	"github.com/seatwise/seatwise-backend/internal/service"
	ws "github.com/seatwise/seatwise-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams the exam-room connection for a taking student: countdown
// pings plus the begin/submit actions over one socket.
type WSHandler struct {
	sessionService *service.SessionService
	seatingService *service.SeatingService
	log            zerolog.Logger
	upgrader       websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(
	sessionService *service.SessionService,
	seatingService *service.SeatingService,
	log zerolog.Logger,
	allowedOrigins []string,
) *WSHandler {
	return &WSHandler{
		sessionService: sessionService,
		seatingService: seatingService,
		log:            log.With().Str("component", "ws_handler").Logger(),
		upgrader:       buildUpgrader(allowedOrigins),
	}
}

// SessionWebSocketStream godoc
// WS /ws/v1/student/sessions/:id/stream
func (h *WSHandler) SessionWebSocketStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session ID"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	studentID := claims.UserID

	// The student must already be a participant before streaming.
	if _, err := h.seatingService.State(c.Request.Context(), sessionID, studentID); err != nil {
		ws.WriteError(conn, "not a participant of this session")
		return
	}

	wsLog := h.log.With().
		Int("student_id", studentID).
		Str("session_id", sessionID.String()).
		Logger()

	wsLog.Info().Msg("Student connected")

	for {
		var msg ws.RequestEnvelope
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			break
		}

		switch msg.Action {
		case ws.ActionPing:
			h.handlePing(conn, wsLog, sessionID, studentID)
		case ws.ActionBegin:
			h.handleBegin(conn, wsLog, sessionID, studentID)
		case ws.ActionSubmit:
			h.handleSubmit(conn, wsLog, sessionID, studentID)
		default:
			wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
			ws.WriteError(conn, "unknown action: "+string(msg.Action))
		}
	}
}

// handlePing answers with the participant's current countdowns, or an ended
// event once the session is closed.
func (h *WSHandler) handlePing(conn *websocket.Conn, wsLog zerolog.Logger, sessionID uuid.UUID, studentID int) {
	ctx := context.Background()

	session, err := h.sessionService.GetByID(ctx, sessionID)
	if err != nil {
		ws.WriteError(conn, "session lookup failed")
		return
	}
	if session.Status == seating.SessionEnded {
		ws.WriteTyped(conn, ws.EndedResponse{Event: ws.EventEnded})
		return
	}

	state, err := h.seatingService.State(ctx, sessionID, studentID)
	if err != nil {
		wsLog.Error().Err(err).Msg("State lookup failed")
		ws.WriteError(conn, "state lookup failed")
		return
	}

	ws.WriteTyped(conn, ws.PongResponse{
		Event:            ws.EventPong,
		BufferSeconds:    state.Remaining.BufferSeconds,
		ExamSeconds:      state.Remaining.ExamSeconds,
		RemainingSeconds: state.RemainingSeconds,
		RemainingClock:   state.RemainingClock,
	})
}

// handleBegin moves the seated student to taking.
func (h *WSHandler) handleBegin(conn *websocket.Conn, wsLog zerolog.Logger, sessionID uuid.UUID, studentID int) {
	participant, err := h.seatingService.Begin(context.Background(), sessionID, studentID)
	if err != nil {
		wsLog.Warn().Err(err).Msg("Begin rejected")
		ws.WriteError(conn, err.Error())
		return
	}

	wsLog.Info().Str("variant", participant.VariantLabel()).Msg("Student began exam")
	ws.WriteTyped(conn, ws.StartedResponse{
		Event:        ws.EventStarted,
		VariantLabel: participant.VariantLabel(),
	})
}

// handleSubmit finishes the student's exam.
func (h *WSHandler) handleSubmit(conn *websocket.Conn, wsLog zerolog.Logger, sessionID uuid.UUID, studentID int) {
	participant, err := h.seatingService.Submit(context.Background(), sessionID, studentID)
	if err != nil {
		wsLog.Warn().Err(err).Msg("Submit rejected")
		ws.WriteError(conn, err.Error())
		return
	}

	wsLog.Info().Msg("Student submitted")
	ws.WriteTyped(conn, ws.SubmittedResponse{
		Event:  ws.EventSubmitted,
		Status: string(participant.Status),
	})
}
