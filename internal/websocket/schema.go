package websocket

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing   Action = "ping"
	ActionBegin  Action = "begin"
	ActionSubmit Action = "submit"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError     Event = "error"
	EventPong      Event = "pong"
	EventStarted   Event = "started"
	EventSubmitted Event = "submitted"
	EventEnded     Event = "ended"
)

// PongResponse answers a ping with the participant's current countdowns, so
// a connected client needs no separate polling loop.
type PongResponse struct {
	Event            Event  `json:"event"`
	BufferSeconds    int    `json:"buffer_seconds"`
	ExamSeconds      int    `json:"exam_seconds"`
	RemainingSeconds int    `json:"remaining_seconds"`
	RemainingClock   string `json:"remaining_clock"`
}

// StartedResponse confirms the participant moved to taking.
type StartedResponse struct {
	Event        Event  `json:"event"`
	VariantLabel string `json:"variant_label"`
}

// SubmittedResponse confirms the submission was recorded.
type SubmittedResponse struct {
	Event  Event  `json:"event"`
	Status string `json:"status"`
}

// EndedResponse tells the client the session was closed by the proctor or
// the timer.
type EndedResponse struct {
	Event Event `json:"event"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}
