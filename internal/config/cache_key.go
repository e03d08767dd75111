package config

import "fmt"

// CacheKeyStruct centralizes every Redis key format the application uses, so
// no two call sites can drift apart on key naming.
type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// StudentLoginKey returns the key holding a student's active login JTI
// (single-device enforcement).
func (r *CacheKeyStruct) StudentLoginKey(studentID int) string {
	return fmt.Sprintf("login:%d", studentID)
}

// SessionStartKey returns the key holding a session's start unix timestamp.
func (r *CacheKeyStruct) SessionStartKey(sessionID string) string {
	return fmt.Sprintf("session:%s:start", sessionID)
}

// SessionTimingKey returns the key of the hash caching a session's timing
// config (duration, buffer, late grace) so countdown endpoints skip Postgres.
func (r *CacheKeyStruct) SessionTimingKey(sessionID string) string {
	return fmt.Sprintf("session:%s:timing", sessionID)
}

// ParticipantStartKey returns the key holding a participant's individual
// exam start unix timestamp, used by the late-joiner rule.
func (r *CacheKeyStruct) ParticipantStartKey(sessionID string, studentID int) string {
	return fmt.Sprintf("student:%d:session:%s:start", studentID, sessionID)
}

// StudentActiveSessionKey returns the key holding the session a student is
// currently participating in.
func (r *CacheKeyStruct) StudentActiveSessionKey(studentID int) string {
	return fmt.Sprintf("student:%d:active_session", studentID)
}

// SessionMonitorChannel returns the Redis Pub/Sub channel carrying live
// dashboard events for one session.
func (r *CacheKeyStruct) SessionMonitorChannel(sessionID string) string {
	return fmt.Sprintf("session:%s:monitor", sessionID)
}

var CacheKey = NewCacheKeyStruct()
