package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// Authentication
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrSessionActive      ErrCode = "SESSION_ALREADY_ACTIVE"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// Authorization
	ErrForbidden         ErrCode = "FORBIDDEN"
	ErrStudentAccessOnly ErrCode = "STUDENT_ACCESS_ONLY"
	ErrProctorAccessOnly ErrCode = "PROCTOR_ACCESS_ONLY"

	// Validation
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// Resources
	ErrNotFound ErrCode = "NOT_FOUND"

	// Seating
	ErrSeatTaken         ErrCode = "SEAT_TAKEN"
	ErrSeatOutOfGrid     ErrCode = "SEAT_OUT_OF_GRID"
	ErrAlreadyJoined     ErrCode = "ALREADY_JOINED"
	ErrIllegalTransition ErrCode = "ILLEGAL_TRANSITION"
	ErrSessionNotLive    ErrCode = "SESSION_NOT_LIVE"
	ErrSessionEnded      ErrCode = "SESSION_ENDED"
	ErrNoSeatedYet       ErrCode = "NO_SEATED_PARTICIPANTS"

	// Rate limiting
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// Server
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrInvalidCredentials:
		return "Invalid identifier or password."
	case ErrSessionActive:
		return "You are already logged in on another device."
	case ErrSessionInvalidated:
		return "Your login session has ended. Please sign in again."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid or expired."
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrStudentAccessOnly:
		return "This resource is restricted to students."
	case ErrProctorAccessOnly:
		return "This resource is restricted to proctors."
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid identifier format."
	case ErrInvalidPayload:
		return "Invalid request payload."
	case ErrNotFound:
		return "Resource not found."
	case ErrSeatTaken:
		return "That seat was just taken. Refresh the room and pick another."
	case ErrSeatOutOfGrid:
		return "The requested seat lies outside the session grid."
	case ErrAlreadyJoined:
		return "You have already joined this session."
	case ErrIllegalTransition:
		return "This status change is not allowed from the current state."
	case ErrSessionNotLive:
		return "The session has not started yet."
	case ErrSessionEnded:
		return "The session has already ended."
	case ErrNoSeatedYet:
		return "At least one seated participant is required to start."
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
