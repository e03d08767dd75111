package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seatwise/seatwise-backend/internal/repository"
	"github.com/seatwise/seatwise-backend/internal/response"
	"github.com/seatwise/seatwise-backend/internal/seating"
	"github.com/seatwise/seatwise-backend/internal/service"
)

// transitionCode picks the most specific API code for a rejected transition:
// the session-start precondition, the ended-session guard, and the
// not-yet-live guard each have their own code so clients can branch without
// parsing the message. Everything else is a plain illegal transition.
func transitionCode(te *seating.TransitionError) response.ErrCode {
	switch {
	case te.Entity == "session" && te.To == string(seating.SessionLive) && te.Reason != "":
		return response.ErrNoSeatedYet
	case te.Reason == "session has ended":
		return response.ErrSessionEnded
	case te.Entity == "participant" && te.To == string(seating.ParticipantTaking) && te.Reason != "":
		return response.ErrSessionNotLive
	default:
		return response.ErrIllegalTransition
	}
}

// failBind reports a request-body binding failure. A body that failed to
// parse at all has no field to point at and gets INVALID_PAYLOAD; field-level
// validation failures keep VALIDATION_ERROR.
func failBind(c *gin.Context, fields map[string]string) {
	if _, malformed := fields["detail"]; malformed && len(fields) == 1 {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidPayload, fields)
		return
	}
	response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
}

// failDomain maps service/repository errors onto the API error vocabulary.
// Transition rejections carry their own message so the client sees which
// states collided.
func failDomain(c *gin.Context, err error) {
	var transition *seating.TransitionError
	switch {
	case errors.As(err, &transition):
		response.FailWithMessage(c, http.StatusConflict, transitionCode(transition), transition.Error())
	case errors.Is(err, repository.ErrSeatTaken):
		response.Fail(c, http.StatusConflict, response.ErrSeatTaken)
	case errors.Is(err, repository.ErrAlreadyJoined):
		response.Fail(c, http.StatusConflict, response.ErrAlreadyJoined)
	case errors.Is(err, service.ErrSeatOutOfGrid):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrSeatOutOfGrid)
	case errors.Is(err, repository.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
