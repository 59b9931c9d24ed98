// Package sessionstore keeps in-progress quiz sessions between requests so
// the interaction loop can be driven one answer at a time.
package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/studyforge/internal/quiz"
)

// ErrNotFound is returned by Load for an unknown or expired session.
var ErrNotFound = errors.New("session not found")

// Record is everything needed to resume a session: the learner state, the
// pool it indexes into and the summary results should be filed under.
type Record struct {
	State     quiz.SessionState `json:"state"`
	Pool      *quiz.Pool        `json:"pool"`
	SummaryID int               `json:"summary_id,omitempty"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Store persists Records by session ID.
type Store interface {
	Load(ctx context.Context, id string) (*Record, error)
	Save(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, id string) error
}

func encode(rec *Record) ([]byte, error) {
	if rec == nil || rec.State.ID == "" {
		return nil, errors.New("session record has no id")
	}
	if rec.Pool == nil {
		return nil, fmt.Errorf("session %s has no pool", rec.State.ID)
	}
	rec.UpdatedAt = time.Now().UTC()
	return json.Marshal(rec)
}

func decode(id string, data []byte) (*Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	if rec.Pool == nil {
		return nil, fmt.Errorf("decode session %s: missing pool", id)
	}
	return &rec, nil
}
