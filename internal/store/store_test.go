package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/abhisek/studyforge/internal/mastery"
	"github.com/abhisek/studyforge/internal/quiz"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSummaryCRUD(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.SaveSummary(ctx, "  ", "x"); err == nil {
		t.Error("expected error for empty title")
	}

	id1, err := s.SaveSummary(ctx, "Go basics", "## Intro\n- types")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	id2, err := s.SaveSummary(ctx, "Concurrency", "## Channels")
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	list, err := s.ListSummaries(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != id2 || list[1].ID != id1 {
		t.Fatalf("list = %+v, want newest first", list)
	}
	if list[0].Content != "" {
		t.Error("list should not load content")
	}

	got, err := s.GetSummary(ctx, id1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Go basics" || got.Content != "## Intro\n- types" {
		t.Errorf("got %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	if err := s.DeleteSummary(ctx, id1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetSummary(ctx, id1); !errors.Is(err, ErrNotFound) {
		t.Errorf("get deleted: got %v, want ErrNotFound", err)
	}
	if err := s.DeleteSummary(ctx, id1); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete twice: got %v, want ErrNotFound", err)
	}
}

func TestQuizScoresAndStats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	id, err := s.SaveSummary(ctx, "notes", "")
	if err != nil {
		t.Fatalf("save summary: %v", err)
	}

	st, err := s.GetSummaryStats(ctx, id)
	if err != nil {
		t.Fatalf("stats (empty): %v", err)
	}
	if st.Attempts != 0 || st.AverageScore != 0 {
		t.Errorf("empty stats = %+v", st)
	}

	for _, sc := range [][2]int{{5, 10}, {9, 10}, {2, 4}} {
		if err := s.SaveQuizScore(ctx, id, sc[0], sc[1]); err != nil {
			t.Fatalf("save score: %v", err)
		}
	}
	if err := s.SaveQuizScore(ctx, id, 11, 10); err == nil {
		t.Error("expected error for score > total")
	}
	if err := s.SaveQuizScore(ctx, 999, 1, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown summary: got %v, want ErrNotFound", err)
	}

	scores, err := s.QuizScoresBySummary(ctx, id)
	if err != nil {
		t.Fatalf("scores: %v", err)
	}
	if len(scores) != 3 || scores[0].Ratio() != 0.5 {
		t.Errorf("scores = %+v", scores)
	}

	st, err = s.GetSummaryStats(ctx, id)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", st.Attempts)
	}
	if diff := st.AverageScore - (0.5+0.9+0.5)/3; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("AverageScore = %v", st.AverageScore)
	}
	if st.BestScore != 0.9 {
		t.Errorf("BestScore = %v, want 0.9", st.BestScore)
	}
}

func TestWeakTopicsAggregateAcrossSessions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	id, _ := s.SaveSummary(ctx, "notes", "")

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(s.SaveTopicPerformance(ctx, id, "Loops", 1, 3))
	must(s.SaveTopicPerformance(ctx, id, "loops", 0, 2))
	must(s.SaveTopicRecords(ctx, id, []quiz.PerformanceRecord{
		{Topic: "arrays", Correct: 3, Total: 3},
		{Topic: "maps", Correct: 1, Total: 2},
	}))
	if err := s.SaveTopicPerformance(ctx, id, "x", 2, 1); err == nil {
		t.Error("expected error for correct > total")
	}

	weak, err := s.GetWeakTopics(ctx, id, 0.7)
	if err != nil {
		t.Fatalf("weak: %v", err)
	}
	if len(weak) != 2 {
		t.Fatalf("weak = %+v, want loops and maps", weak)
	}
	if weak[0].Topic != "loops" || weak[0].Correct != 1 || weak[0].Total != 5 {
		t.Errorf("weak[0] = %+v", weak[0])
	}
	if weak[1].Topic != "maps" {
		t.Errorf("weak[1] = %+v", weak[1])
	}

	obs, err := s.ObservationsForSummary(ctx, id)
	if err != nil {
		t.Fatalf("observations: %v", err)
	}
	var c mastery.Classifier
	c.Train(obs)
	if c.Count() != 10 {
		t.Errorf("observation count = %d, want 10", c.Count())
	}
	got := c.WeakTopicNames(0.7)
	if len(got) != 2 || got[0] != "loops" || got[1] != "maps" {
		t.Errorf("classifier weak = %v", got)
	}

	// deleting the summary drops its records
	must(s.DeleteSummary(ctx, id))
	weak, err = s.GetWeakTopics(ctx, id, 1)
	if err != nil || len(weak) != 0 {
		t.Errorf("after delete: %v, %v", weak, err)
	}
}

func TestConcurrentWritesSerialised(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	id, _ := s.SaveSummary(ctx, "notes", "")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.SaveTopicPerformance(ctx, id, "loops", 1, 2); err != nil {
				t.Errorf("save: %v", err)
			}
		}()
	}
	wg.Wait()

	weak, err := s.GetWeakTopics(ctx, id, 1)
	if err != nil {
		t.Fatalf("weak: %v", err)
	}
	if len(weak) != 1 || weak[0].Total != 40 || weak[0].Correct != 20 {
		t.Errorf("weak = %+v", weak)
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "summary", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "quiz-gen", InputTokens: 300, OutputTokens: 150, LatencyMs: 400, Success: true, RequestBody: "req", ResponseBody: "resp"},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "quiz-gen", InputTokens: 10, LatencyMs: 100, ErrorMessage: "rate limited"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 || all[0].Provider != "openai" {
		t.Fatalf("query = %+v, want newest first", all)
	}
	if all[0].Success || all[0].ErrorMessage != "rate limited" {
		t.Errorf("failed event = %+v", all[0])
	}

	quizGen, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "quiz-gen", Limit: 1})
	if err != nil {
		t.Fatalf("query purpose: %v", err)
	}
	if len(quizGen) != 1 || quizGen[0].Model != "gpt-4o-mini" {
		t.Errorf("purpose query = %+v", quizGen)
	}

	got, err := repo.GetLLMEvent(ctx, all[1].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.RequestBody != "req" || got.ResponseBody != "resp" {
		t.Errorf("get = %+v", got)
	}
	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil || missing != nil {
		t.Errorf("get missing = %v, %v", missing, err)
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 || byPurpose[0].Purpose != "quiz-gen" || byPurpose[0].Calls != 2 || byPurpose[0].InputTokens != 310 {
		t.Errorf("by purpose = %+v", byPurpose)
	}
	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "gemini-2.5-flash" || byModel[0].AvgLatencyMs != 300 {
		t.Errorf("by model = %+v", byModel)
	}
}
