package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// Summary is a saved set of study notes.
type Summary struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SaveSummary stores notes and returns the new summary ID.
func (s *Store) SaveSummary(ctx context.Context, title, content string) (int, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, errors.New("save summary: empty title")
	}
	query, args := sqlite().Insert(SummariesTable.Name).
		Columns("title", "content", "created_at").
		Values(title, content, time.Now().UTC()).
		Query()
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("save summary: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("save summary: %w", err)
	}
	return int(id), nil
}

// ListSummaries returns summaries newest first, without content.
func (s *Store) ListSummaries(ctx context.Context) ([]Summary, error) {
	query, args := sqlite().Select("id", "title", "created_at").
		From(entsql.Table(SummariesTable.Name)).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("id")).
		Query()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sm Summary
		if err := rows.Scan(&sm.ID, &sm.Title, &sm.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		out = append(out, sm)
	}
	return out, rows.Err()
}

// GetSummary returns one summary with its content.
func (s *Store) GetSummary(ctx context.Context, id int) (*Summary, error) {
	query, args := sqlite().Select("id", "title", "content", "created_at").
		From(entsql.Table(SummariesTable.Name)).
		Where(entsql.EQ("id", id)).
		Query()
	var sm Summary
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&sm.ID, &sm.Title, &sm.Content, &sm.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("summary %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get summary %d: %w", id, err)
	}
	return &sm, nil
}

// DeleteSummary removes a summary with its scores and topic records.
func (s *Store) DeleteSummary(ctx context.Context, id int) error {
	return s.withTx(ctx, id, func(tx *sql.Tx) error {
		for _, t := range []string{QuizScoresTable.Name, TopicPerformanceTable.Name} {
			query, args := sqlite().Delete(t).Where(entsql.EQ("summary_id", id)).Query()
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("delete %s: %w", t, err)
			}
		}
		query, args := sqlite().Delete(SummariesTable.Name).Where(entsql.EQ("id", id)).Query()
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("delete summary %d: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("summary %d: %w", id, ErrNotFound)
		}
		return nil
	})
}

// summaryExists checks id inside tx.
func summaryExists(ctx context.Context, tx *sql.Tx, id int) error {
	query, args := sqlite().Select(entsql.Count("*")).
		From(entsql.Table(SummariesTable.Name)).
		Where(entsql.EQ("id", id)).
		Query()
	var n int
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return fmt.Errorf("lookup summary %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("summary %d: %w", id, ErrNotFound)
	}
	return nil
}
