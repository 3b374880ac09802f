// Package archive persists generated prompts to SQLite so users can
// retrieve past output. The archive is write-mostly history: nothing in
// it ever feeds back into live session state.
package archive

import (
	"context"
	"time"

	"github.com/avolkov/briefgen/internal/domain"
)

// PromptRecord is one archived generation.
type PromptRecord struct {
	ID        string
	UserID    string
	Target    domain.Target
	Summary   string
	Prompt    string
	CreatedAt time.Time
}

// Archive stores and lists prompt records.
type Archive interface {
	SavePrompt(ctx context.Context, userID string, target domain.Target, summary, prompt string) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*PromptRecord, error)
}
