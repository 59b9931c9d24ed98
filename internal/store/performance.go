package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/studyforge/internal/mastery"
	"github.com/abhisek/studyforge/internal/quiz"
)

// QuizScore is one completed quiz attempt.
type QuizScore struct {
	ID             int       `json:"id"`
	SummaryID      int       `json:"summary_id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	CreatedAt      time.Time `json:"created_at"`
}

// Ratio is Score/TotalQuestions, 0 for an empty quiz.
func (q QuizScore) Ratio() float64 {
	if q.TotalQuestions == 0 {
		return 0
	}
	return float64(q.Score) / float64(q.TotalQuestions)
}

// WeakTopic is the stored cross-session aggregate for one topic.
type WeakTopic struct {
	Topic    string  `json:"topic"`
	Correct  int     `json:"correct"`
	Total    int     `json:"total"`
	Accuracy float64 `json:"accuracy"`
}

// SummaryStats aggregates every quiz attempt on a summary. Scores are
// ratios in [0,1].
type SummaryStats struct {
	Attempts     int     `json:"attempts"`
	AverageScore float64 `json:"average_score"`
	BestScore    float64 `json:"best_score"`
}

// SaveQuizScore records a completed quiz.
func (s *Store) SaveQuizScore(ctx context.Context, summaryID, score, totalQuestions int) error {
	if score < 0 || totalQuestions < 0 || score > totalQuestions {
		return fmt.Errorf("save quiz score: invalid score %d/%d", score, totalQuestions)
	}
	return s.withTx(ctx, summaryID, func(tx *sql.Tx) error {
		if err := summaryExists(ctx, tx, summaryID); err != nil {
			return err
		}
		query, args := sqlite().Insert(QuizScoresTable.Name).
			Columns("summary_id", "score", "total_questions", "created_at").
			Values(summaryID, score, totalQuestions, time.Now().UTC()).
			Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("save quiz score: %w", err)
		}
		return nil
	})
}

// QuizScoresBySummary returns attempts oldest first.
func (s *Store) QuizScoresBySummary(ctx context.Context, summaryID int) ([]QuizScore, error) {
	query, args := sqlite().Select("id", "summary_id", "score", "total_questions", "created_at").
		From(entsql.Table(QuizScoresTable.Name)).
		Where(entsql.EQ("summary_id", summaryID)).
		OrderBy("created_at", "id").
		Query()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz scores: %w", err)
	}
	defer rows.Close()

	var out []QuizScore
	for rows.Next() {
		var q QuizScore
		if err := rows.Scan(&q.ID, &q.SummaryID, &q.Score, &q.TotalQuestions, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan quiz score: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// SaveTopicPerformance appends a per-topic record. Topics are stored
// lower case.
func (s *Store) SaveTopicPerformance(ctx context.Context, summaryID int, topic string, correct, total int) error {
	return s.SaveTopicRecords(ctx, summaryID, []quiz.PerformanceRecord{{Topic: topic, Correct: correct, Total: total}})
}

// SaveTopicRecords appends several per-topic records in one transaction.
func (s *Store) SaveTopicRecords(ctx context.Context, summaryID int, records []quiz.PerformanceRecord) error {
	for _, r := range records {
		if r.Correct < 0 || r.Total <= 0 || r.Correct > r.Total {
			return fmt.Errorf("save topic performance %q: invalid counts %d/%d", r.Topic, r.Correct, r.Total)
		}
	}
	return s.withTx(ctx, summaryID, func(tx *sql.Tx) error {
		if err := summaryExists(ctx, tx, summaryID); err != nil {
			return err
		}
		for _, r := range records {
			topic := quiz.NormalizeTopic(r.Topic)
			if topic == "" {
				topic = quiz.DefaultTopic
			}
			ts := r.Timestamp
			if ts.IsZero() {
				ts = time.Now()
			}
			query, args := sqlite().Insert(TopicPerformanceTable.Name).
				Columns("summary_id", "topic", "correct", "total", "created_at").
				Values(summaryID, topic, r.Correct, r.Total, ts.UTC()).
				Query()
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("save topic performance %q: %w", topic, err)
			}
		}
		return nil
	})
}

// topicTotals sums correct and total per topic for a summary.
func (s *Store) topicTotals(ctx context.Context, summaryID int) ([]WeakTopic, error) {
	query, args := sqlite().Select("topic", entsql.Sum("correct"), entsql.Sum("total")).
		From(entsql.Table(TopicPerformanceTable.Name)).
		Where(entsql.EQ("summary_id", summaryID)).
		GroupBy("topic").
		OrderBy("topic").
		Query()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query topic performance: %w", err)
	}
	defer rows.Close()

	var out []WeakTopic
	for rows.Next() {
		var w WeakTopic
		if err := rows.Scan(&w.Topic, &w.Correct, &w.Total); err != nil {
			return nil, fmt.Errorf("scan topic performance: %w", err)
		}
		if w.Total > 0 {
			w.Accuracy = float64(w.Correct) / float64(w.Total)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// GetWeakTopics aggregates every stored record for the summary and
// returns topics with accuracy below threshold, weakest first.
func (s *Store) GetWeakTopics(ctx context.Context, summaryID int, threshold float64) ([]WeakTopic, error) {
	totals, err := s.topicTotals(ctx, summaryID)
	if err != nil {
		return nil, err
	}
	var out []WeakTopic
	for _, w := range totals {
		if w.Accuracy < threshold {
			out = append(out, w)
		}
	}
	slices.SortStableFunc(out, func(a, b WeakTopic) int {
		switch {
		case a.Accuracy < b.Accuracy:
			return -1
		case a.Accuracy > b.Accuracy:
			return 1
		}
		return strings.Compare(a.Topic, b.Topic)
	})
	return out, nil
}

// GetSummaryStats returns attempt count, average and best score ratio.
func (s *Store) GetSummaryStats(ctx context.Context, summaryID int) (SummaryStats, error) {
	ratio := "CAST(score AS REAL) / NULLIF(total_questions, 0)"
	query, args := sqlite().Select(entsql.Count("*"), entsql.Avg(ratio), entsql.Max(ratio)).
		From(entsql.Table(QuizScoresTable.Name)).
		Where(entsql.EQ("summary_id", summaryID)).
		Query()
	var (
		st        SummaryStats
		avg, best sql.NullFloat64
	)
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&st.Attempts, &avg, &best); err != nil {
		return SummaryStats{}, fmt.Errorf("summary stats: %w", err)
	}
	st.AverageScore = avg.Float64
	st.BestScore = best.Float64
	return st, nil
}

// ObservationsForSummary expands stored topic records into classifier
// observations across every session on the summary.
func (s *Store) ObservationsForSummary(ctx context.Context, summaryID int) ([]mastery.Observation, error) {
	totals, err := s.topicTotals(ctx, summaryID)
	if err != nil {
		return nil, err
	}
	var out []mastery.Observation
	for _, w := range totals {
		for i := range w.Total {
			out = append(out, mastery.Observation{Topic: w.Topic, Correct: i < w.Correct})
		}
	}
	return out, nil
}
