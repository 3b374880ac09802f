package domain

import (
	"strings"
	"time"
)

// SessionState tracks where a session is in its research lifecycle.
type SessionState string

const (
	StateNew         SessionState = "new"
	StateCollecting  SessionState = "collecting"
	StateResearching SessionState = "researching"
	StateResearched  SessionState = "researched"
	StateFailed      SessionState = "failed"
)

// Session holds one user's accumulated conversational state and the
// research artifact derived from it. Sessions live in memory only; the
// store owns the live object and hands out copies.
type Session struct {
	UserID      string
	Transcript  []string
	State       SessionState
	Research    *ResearchResult
	LastUpdated time.Time

	// ResearchStartedAt marks when the session entered RESEARCHING.
	// Staleness is measured against it rather than LastUpdated, which
	// moves on every mutation. Zero outside RESEARCHING.
	ResearchStartedAt time.Time
}

// NewSession creates an empty session for the given user.
func NewSession(userID string, now time.Time) *Session {
	return &Session{
		UserID:      userID,
		State:       StateNew,
		LastUpdated: now,
	}
}

// AppendTurn adds one text turn to the transcript. A NEW session moves to
// COLLECTING; RESEARCHED and FAILED sessions keep their state (and any
// cached result) so that new context refines rather than invalidates.
func (s *Session) AppendTurn(text string, now time.Time) error {
	if strings.TrimSpace(text) == "" {
		return ErrInvalidInput
	}
	s.Transcript = append(s.Transcript, text)
	if s.State == StateNew {
		s.State = StateCollecting
	}
	s.LastUpdated = now
	return nil
}

// SetResearching marks the session as having a research run in flight.
// The state acts as an exclusive lock: at most one run per session.
func (s *Session) SetResearching(now time.Time) {
	s.State = StateResearching
	s.ResearchStartedAt = now
	s.LastUpdated = now
}

// SetResearched stores a fresh research result, replacing any prior one
// wholesale.
func (s *Session) SetResearched(result *ResearchResult, now time.Time) {
	s.Research = result
	s.State = StateResearched
	s.ResearchStartedAt = time.Time{}
	s.LastUpdated = now
}

// SetFailed records a failed research run. The transcript is kept intact
// so the user can retry without re-entering context.
func (s *Session) SetFailed(now time.Time) {
	s.Research = nil
	s.State = StateFailed
	s.ResearchStartedAt = time.Time{}
	s.LastUpdated = now
}

// ResearchStale reports whether an in-flight research marker has outlived
// the given threshold, which means the run was abandoned (caller timeout
// or crash mid-call) and the session should recover to FAILED. Measured
// from when research started, so appending turns while a stale marker
// lingers cannot defer recovery.
func (s *Session) ResearchStale(now time.Time, threshold time.Duration) bool {
	return s.State == StateResearching && now.Sub(s.ResearchStartedAt) > threshold
}

// Clone returns a deep copy. Engines and composers receive clones so no
// component outside the store retains a handle to the live session.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.Transcript = append([]string(nil), s.Transcript...)
	if s.Research != nil {
		r := *s.Research
		c.Research = &r
	}
	return &c
}
