package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/seatwise/seatwise-backend/internal/middleware"
	"github.com/seatwise/seatwise-backend/internal/model"
	"github.com/seatwise/seatwise-backend/internal/response"
	"github.com/seatwise/seatwise-backend/internal/service"
	"github.com/seatwise/seatwise-backend/internal/validator"
)

// SessionHandler exposes the proctor-facing session endpoints: lifecycle,
// room state, and seat assignment.
type SessionHandler struct {
	sessionService *service.SessionService
	seatingService *service.SeatingService
	log            zerolog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(
	sessionService *service.SessionService,
	seatingService *service.SeatingService,
	log zerolog.Logger,
) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		seatingService: seatingService,
		log:            log.With().Str("component", "session_handler").Logger(),
	}
}

// ownedSession parses :id and checks the session belongs to the caller.
func (h *SessionHandler) ownedSession(c *gin.Context) (*model.Session, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return nil, false
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return nil, false
	}

	session, err := h.sessionService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return nil, false
	}
	if session.ProctorID != claims.UserID {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		return nil, false
	}
	return session, true
}

// Create godoc
// POST /api/v1/proctor/sessions
func (h *SessionHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CreateSessionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		failBind(c, fields)
		return
	}

	session := &model.Session{
		Title:            req.Title,
		ProctorID:        claims.UserID,
		Rows:             req.Rows,
		Cols:             req.Cols,
		TotalVariants:    req.TotalVariants,
		DurationMinutes:  req.DurationMinutes,
		BufferMinutes:    req.BufferMinutes,
		LateExtraMinutes: req.LateExtraMinutes,
	}

	if err := h.sessionService.Create(c.Request.Context(), session); err != nil {
		h.log.Error().Err(err).Msg("Create session failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"session": session})
}

// List godoc
// GET /api/v1/proctor/sessions
func (h *SessionHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	sessions, err := h.sessionService.ListByProctor(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"sessions": sessions})
}

// GetState godoc
// GET /api/v1/proctor/sessions/:id
func (h *SessionHandler) GetState(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	state, err := h.sessionService.State(c.Request.Context(), session.ID)
	if err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, state)
}

// Start godoc
// POST /api/v1/proctor/sessions/:id/start
func (h *SessionHandler) Start(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	started, err := h.sessionService.Start(c.Request.Context(), session.ID)
	if err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"session": started})
}

// End godoc
// POST /api/v1/proctor/sessions/:id/end
func (h *SessionHandler) End(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	ended, err := h.sessionService.End(c.Request.Context(), session.ID)
	if err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"session": ended})
}

// AssignSeat godoc
// POST /api/v1/proctor/sessions/:id/participants/:participant_id/seat
func (h *SessionHandler) AssignSeat(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	participantID, err := uuid.Parse(c.Param("participant_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.AssignSeatRequest
	if fields := validator.Bind(c, &req); fields != nil {
		failBind(c, fields)
		return
	}

	participant, err := h.seatingService.AssignSeat(c.Request.Context(), session.ID, participantID, req.Row, req.Col)
	if err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"participant": participant})
}

// AutoAssign godoc
// POST /api/v1/proctor/sessions/:id/auto-assign
func (h *SessionHandler) AutoAssign(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	result, err := h.seatingService.AutoAssign(c.Request.Context(), session.ID)
	if err != nil {
		failDomain(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}
