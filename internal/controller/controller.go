// Package controller orchestrates sessions, research, and prompt
// composition in response to user commands. It enforces the session
// state machine and serializes operations per user.
package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avolkov/briefgen/internal/composer"
	"github.com/avolkov/briefgen/internal/domain"
	"github.com/avolkov/briefgen/internal/research"
	"github.com/avolkov/briefgen/internal/session"
)

// DefaultStaleAfter is how long a session may sit in the researching
// state before the next operation treats the run as abandoned.
const DefaultStaleAfter = 5 * time.Minute

// Archiver records generated prompts for later retrieval. Recording is
// best-effort: a failure never fails the user-facing operation.
type Archiver interface {
	SavePrompt(ctx context.Context, userID string, target domain.Target, summary, prompt string) error
}

// Status is the read-only view returned by OnStatus.
type Status struct {
	State         domain.SessionState
	TranscriptLen int
	HasResult     bool
}

// Controller routes user commands through the session store, the
// research engine, and the composer.
type Controller struct {
	store      *session.Store
	engine     research.Engine
	archive    Archiver
	staleAfter time.Duration
	now        func() time.Time
}

// Option customizes a Controller.
type Option func(*Controller)

// WithArchive records every successfully composed prompt.
func WithArchive(a Archiver) Option {
	return func(c *Controller) { c.archive = a }
}

// WithStaleAfter overrides the abandonment threshold for in-flight
// research markers.
func WithStaleAfter(d time.Duration) Option {
	return func(c *Controller) { c.staleAfter = d }
}

// WithClock overrides the time source. Tests use this to drive
// staleness recovery deterministically.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New creates a Controller.
func New(store *session.Store, engine research.Engine, opts ...Option) *Controller {
	c := &Controller{
		store:      store,
		engine:     engine,
		staleAfter: DefaultStaleAfter,
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnMessage appends one turn of user text to the session transcript.
// It never triggers research: collecting context and running research
// are deliberately separate commands.
func (c *Controller) OnMessage(userID, text string) error {
	var err error
	c.store.WithLock(userID, func() {
		sess := c.store.GetOrCreate(userID)
		c.recoverStale(sess)

		if appendErr := sess.AppendTurn(text, c.now()); appendErr != nil {
			err = appendErr
			return
		}
		c.store.Replace(userID, sess)
	})
	return err
}

// OnGeneratePrompt produces a prompt for the given target, running
// research first if the session has no cached result. Repeated calls on
// a researched session compose from the cache without a second research
// run; switching targets reuses the same result.
func (c *Controller) OnGeneratePrompt(ctx context.Context, userID string, target domain.Target) (string, error) {
	if !domain.ValidTargets[target] {
		return "", fmt.Errorf("%w: unknown target %q", domain.ErrInvalidInput, target)
	}

	var (
		prompt string
		err    error
	)
	c.store.WithLock(userID, func() {
		sess := c.store.GetOrCreate(userID)
		c.recoverStale(sess)

		switch sess.State {
		case domain.StateNew:
			err = domain.ErrNoData
			return
		case domain.StateResearching:
			err = domain.ErrResearchInFlight
			return
		case domain.StateResearched:
			prompt, err = c.composeAndArchive(ctx, sess, target)
			return
		}

		// COLLECTING or FAILED: run research synchronously while the
		// stored session is marked researching, so a status query during
		// the call sees the in-flight state.
		sess.SetResearching(c.now())
		c.store.Replace(userID, sess)

		result, researchErr := c.engine.Research(ctx, sess.Transcript)
		if researchErr != nil {
			if ctx.Err() != nil {
				// Caller abandoned the call. Leave the session marked
				// researching; staleness recovery on the next operation
				// converts it to failed.
				err = fmt.Errorf("%w: %v", domain.ErrResearchFailed, researchErr)
				return
			}
			sess.SetFailed(c.now())
			c.store.Replace(userID, sess)
			err = fmt.Errorf("%w: %v", domain.ErrResearchFailed, researchErr)
			return
		}

		sess.SetResearched(result, c.now())
		c.store.Replace(userID, sess)
		prompt, err = c.composeAndArchive(ctx, sess, target)
	})
	return prompt, err
}

// OnStatus reports the session's current state and transcript length.
// It reads a snapshot without taking the user's operation lock, so a
// status query never blocks behind an in-flight research run.
func (c *Controller) OnStatus(userID string) Status {
	sess, ok := c.store.Get(userID)
	if !ok {
		return Status{State: domain.StateNew}
	}
	if sess.ResearchStale(c.now(), c.staleAfter) {
		// Report the recovered state; the next mutating operation
		// persists it.
		return Status{State: domain.StateFailed, TranscriptLen: len(sess.Transcript)}
	}
	return Status{
		State:         sess.State,
		TranscriptLen: len(sess.Transcript),
		HasResult:     sess.Research != nil,
	}
}

// OnClear discards the session. Idempotent: clearing an absent session
// succeeds.
func (c *Controller) OnClear(userID string) {
	c.store.WithLock(userID, func() {
		c.store.Delete(userID)
	})
}

// OnStart resets the user to a fresh session, matching the convention
// that a start command begins a new conversation.
func (c *Controller) OnStart(userID string) {
	c.OnClear(userID)
}

// ResearchSummary returns the cached research synthesis, if any.
func (c *Controller) ResearchSummary(userID string) (*domain.ResearchResult, bool) {
	sess, ok := c.store.Get(userID)
	if !ok || sess.Research == nil {
		return nil, false
	}
	return sess.Research, true
}

func (c *Controller) composeAndArchive(ctx context.Context, sess *domain.Session, target domain.Target) (string, error) {
	prompt, err := composer.Compose(sess.Research, target)
	if err != nil {
		return "", err
	}
	if c.archive != nil {
		// Best-effort. The prompt is already composed; an archive write
		// failure must not turn a successful generation into an error.
		_ = c.archive.SavePrompt(ctx, sess.UserID, target, sess.Research.Summary, prompt)
	}
	return prompt, nil
}

// recoverStale converts an abandoned researching marker to failed so the
// session never deadlocks in the in-flight state. Callers must hold the
// user's operation lock.
func (c *Controller) recoverStale(sess *domain.Session) {
	if sess.ResearchStale(c.now(), c.staleAfter) {
		sess.SetFailed(c.now())
		c.store.Replace(sess.UserID, sess)
	}
}

// IsUserError reports whether err is caused by user input rather than a
// system failure, so transports can phrase the reply accordingly.
func IsUserError(err error) bool {
	return errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrNoData)
}
