package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studyforge/internal/quiz"
)

func testRecord(t *testing.T, id string) *Record {
	t.Helper()
	opts := map[quiz.Label]string{quiz.LabelA: "yes", quiz.LabelB: "no"}
	pool, err := quiz.NewPool([]quiz.Item{
		{Topic: "Cells", Question: "Do cells have membranes?", Options: opts, CorrectOption: quiz.LabelA},
		{Topic: "energy", Question: "Is ATP a sugar?", Options: opts, CorrectOption: quiz.LabelB, Prerequisites: []int{0}},
	})
	require.NoError(t, err)
	return &Record{
		State: quiz.SessionState{
			ID:           id,
			CurrentIndex: 1,
			Answered:     []int{0},
			History:      map[int]float64{0: 1},
			MasteryLevel: "Expert",
			StartedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		},
		Pool:      pool,
		SummaryID: 7,
	}
}

// exerciseStore is run against every backend.
func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()

	_, err := s.Load(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	rec := testRecord(t, "abc-123")
	require.NoError(t, s.Save(ctx, rec))

	got, err := s.Load(ctx, "abc-123")
	require.NoError(t, err)
	assert.Equal(t, rec.State.Answered, got.State.Answered)
	assert.Equal(t, rec.State.History, got.State.History)
	assert.True(t, rec.State.StartedAt.Equal(got.State.StartedAt))
	assert.Equal(t, 7, got.SummaryID)
	assert.Equal(t, 2, got.Pool.Len())
	assert.Equal(t, "cells", got.Pool.Topic(0))
	assert.Equal(t, []int{0}, got.Pool.PrerequisitesOf(1))
	assert.False(t, got.UpdatedAt.IsZero())

	// Mutating the loaded copy does not touch the stored one.
	got.State.History[1] = 0
	again, err := s.Load(ctx, "abc-123")
	require.NoError(t, err)
	assert.Len(t, again.State.History, 1)

	require.NoError(t, s.Delete(ctx, "abc-123"))
	_, err = s.Load(ctx, "abc-123")
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, s.Delete(ctx, "abc-123"), "deleting twice is fine")

	assert.Error(t, s.Save(ctx, &Record{}))
	assert.Error(t, s.Save(ctx, &Record{State: quiz.SessionState{ID: "no-pool"}}))
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestFile(t *testing.T) {
	f, err := NewFile(t.TempDir(), time.Hour)
	require.NoError(t, err)
	exerciseStore(t, f)
}

func TestFile_RejectsPathTraversal(t *testing.T) {
	f, err := NewFile(t.TempDir(), 0)
	require.NoError(t, err)
	_, err = f.Load(context.Background(), "../etc/passwd")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestFile_Expiry(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFile(dir, time.Minute)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, f.Save(ctx, testRecord(t, "old")))

	p := filepath.Join(dir, "old.json")
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	rec, err := decode("old", data)
	require.NoError(t, err)
	rec.UpdatedAt = time.Now().Add(-time.Hour)
	b, err := json.Marshal(rec)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(p, b, 0o600))

	_, err = f.Load(ctx, "old")
	require.ErrorIs(t, err, ErrNotFound)
	_, statErr := os.Stat(p)
	assert.True(t, os.IsNotExist(statErr))
}

func TestParseURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid-redis", "redis://localhost:6379", false},
		{"valid-with-db", "redis://localhost:6379/2", false},
		{"wrong-scheme", "http://localhost:6379", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseURL() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRedis(t *testing.T) {
	url := os.Getenv("STUDYFORGE_TEST_REDIS_URL")
	if url == "" {
		t.Skip("STUDYFORGE_TEST_REDIS_URL not set")
	}
	r, err := NewRedis(t.Context(), url, time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	exerciseStore(t, r)
}

func TestNewRedis_UnreachableHost(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping unreachable host test in short mode")
	}
	if _, err := NewRedis(t.Context(), "redis://localhost:59999", time.Minute); err == nil {
		t.Fatal("NewRedis() should fail for an unreachable host")
	}
}
