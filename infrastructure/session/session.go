package session

import (
	"net/netip"
	"time"

	"calcd/domain/arith"

	"github.com/google/uuid"
)

// Session is the conversation state of one peer: at most one in-flight task.
type Session struct {
	id               uuid.UUID
	addr             netip.AddrPort
	task             arith.Task
	hasTask          bool
	awaitingResponse bool
	lastActivity     time.Time
}

func newSession(addr netip.AddrPort, now time.Time) Session {
	return Session{
		id:           uuid.New(),
		addr:         addr,
		lastActivity: now,
	}
}

// ID is a correlation id for logs. It is not part of the protocol.
func (s *Session) ID() uuid.UUID {
	return s.id
}

func (s *Session) Addr() netip.AddrPort {
	return s.addr
}

// Task returns the pending task, if one has been issued.
func (s *Session) Task() (arith.Task, bool) {
	return s.task, s.hasTask
}

func (s *Session) AwaitingResponse() bool {
	return s.awaitingResponse
}

func (s *Session) LastActivity() time.Time {
	return s.lastActivity
}

// Issue stores task as pending and starts waiting for the peer's reply.
func (s *Session) Issue(task arith.Task, now time.Time) {
	s.task = task
	s.hasTask = true
	s.awaitingResponse = true
	s.Touch(now)
}

// Resolve marks the pending task as consumed.
func (s *Session) Resolve() {
	s.awaitingResponse = false
}

// Touch records activity. Earlier timestamps are ignored, so LastActivity never goes backwards.
func (s *Session) Touch(now time.Time) {
	if now.After(s.lastActivity) {
		s.lastActivity = now
	}
}

// Expired reports whether the session has been waiting for longer than timeout.
func (s *Session) Expired(now time.Time, timeout time.Duration) bool {
	return s.awaitingResponse && now.Sub(s.lastActivity) > timeout
}
