package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/seatwise/seatwise-backend/internal/middleware"
	"github.com/seatwise/seatwise-backend/internal/response"
	"github.com/seatwise/seatwise-backend/internal/service"
)

// ParticipantHandler exposes the student-facing session endpoints: joining,
// beginning the exam, polling the countdown, and submitting.
type ParticipantHandler struct {
	seatingService *service.SeatingService
	sessionService *service.SessionService
	log            zerolog.Logger
}

// NewParticipantHandler creates a new ParticipantHandler.
func NewParticipantHandler(
	seatingService *service.SeatingService,
	sessionService *service.SessionService,
	log zerolog.Logger,
) *ParticipantHandler {
	return &ParticipantHandler{
		seatingService: seatingService,
		sessionService: sessionService,
		log:            log.With().Str("component", "participant_handler").Logger(),
	}
}

func sessionIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

// ActiveSession godoc
// GET /api/v1/student/sessions/active
func (h *ParticipantHandler) ActiveSession(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	sessionID, ok := h.seatingService.ActiveSessionID(c.Request.Context(), claims.UserID)
	if !ok {
		response.Success(c, http.StatusOK, gin.H{"session": nil})
		return
	}

	session, err := h.sessionService.GetByID(c.Request.Context(), sessionID)
	if err != nil {
		// Stale pointer, the session itself is gone.
		response.Success(c, http.StatusOK, gin.H{"session": nil})
		return
	}

	response.Success(c, http.StatusOK, gin.H{"session": session})
}

// Join godoc
// POST /api/v1/student/sessions/:id/join
func (h *ParticipantHandler) Join(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	participant, err := h.seatingService.Join(c.Request.Context(), sessionID, claims.UserID)
	if err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"participant": participant})
}

// Begin godoc
// POST /api/v1/student/sessions/:id/begin
func (h *ParticipantHandler) Begin(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	participant, err := h.seatingService.Begin(c.Request.Context(), sessionID, claims.UserID)
	if err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"participant": participant})
}

// GetState godoc
// GET /api/v1/student/sessions/:id/state
func (h *ParticipantHandler) GetState(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	state, err := h.seatingService.State(c.Request.Context(), sessionID, claims.UserID)
	if err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, state)
}

// Submit godoc
// POST /api/v1/student/sessions/:id/submit
func (h *ParticipantHandler) Submit(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	participant, err := h.seatingService.Submit(c.Request.Context(), sessionID, claims.UserID)
	if err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"participant": participant})
}
