package archive

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avolkov/briefgen/internal/db"
	"github.com/avolkov/briefgen/internal/domain"
)

// SQLiteArchive implements Archive using a SQLite database.
type SQLiteArchive struct {
	db  db.DBTX
	now func() time.Time
}

// NewSQLiteArchive creates a new SQLiteArchive.
func NewSQLiteArchive(dbtx db.DBTX) *SQLiteArchive {
	return &SQLiteArchive{
		db:  dbtx,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (a *SQLiteArchive) SavePrompt(ctx context.Context, userID string, target domain.Target, summary, prompt string) error {
	query := `INSERT INTO prompt_archive (id, user_id, target, summary, prompt, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := a.db.ExecContext(ctx, query,
		uuid.New().String(),
		userID,
		string(target),
		summary,
		prompt,
		a.now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting prompt record: %w", err)
	}
	return nil
}

// ListByUser returns the user's archived prompts, newest first. A limit
// of 0 or less means no limit.
func (a *SQLiteArchive) ListByUser(ctx context.Context, userID string, limit int) ([]*PromptRecord, error) {
	query := `SELECT id, user_id, target, summary, prompt, created_at
		FROM prompt_archive WHERE user_id = ? ORDER BY created_at DESC, id`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing prompt records: %w", err)
	}
	defer rows.Close()

	var records []*PromptRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating prompt records: %w", err)
	}
	return records, nil
}

func scanRecord(rows *sql.Rows) (*PromptRecord, error) {
	var (
		rec          PromptRecord
		targetStr    string
		createdAtStr string
	)
	if err := rows.Scan(&rec.ID, &rec.UserID, &targetStr, &rec.Summary, &rec.Prompt, &createdAtStr); err != nil {
		return nil, fmt.Errorf("scanning prompt record: %w", err)
	}
	rec.Target = domain.Target(targetStr)

	createdAt, err := time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	rec.CreatedAt = createdAt
	return &rec, nil
}
