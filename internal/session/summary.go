package session

import (
	"time"

	"github.com/abhisek/studyforge/internal/mastery"
	"github.com/abhisek/studyforge/internal/quiz"
)

// TopicProgress accumulates answers for one topic.
type TopicProgress struct {
	Topic    string
	Total    int
	Correct  int
	Accuracy float64 // Correct / Total (computed)
}

// Record adds a new answer result to the progress.
func (tp *TopicProgress) Record(correct bool) {
	tp.Total++
	if correct {
		tp.Correct++
	}
	tp.Accuracy = float64(tp.Correct) / float64(tp.Total)
}

// Summary holds the data shown when a session ends.
type Summary struct {
	SessionID      string                   `json:"session_id"`
	Duration       time.Duration            `json:"duration"`
	TotalQuestions int                      `json:"total_questions"`
	Answered       int                      `json:"answered"`
	Correct        int                      `json:"correct"`
	Score          float64                  `json:"score"`
	Topics         []quiz.PerformanceRecord `json:"topics"`
	ReviewOrder    []string                 `json:"review_order"`
	WeakTopics     []mastery.TopicAccuracy  `json:"weak_topics"`
	MasteryLevel   string                   `json:"mastery_level"`
	Rank           string                   `json:"rank"`
}

// Summarize builds the end-of-session summary. Score is correct over
// answered, 0 when nothing was answered.
func (e *Engine) Summarize(s quiz.SessionState) Summary {
	now := e.opts.Now()

	var order []string
	progress := make(map[string]*TopicProgress)
	for _, i := range s.Answered {
		v, ok := s.History[i]
		if !ok {
			continue
		}
		t := e.pool.Topic(i)
		tp, ok := progress[t]
		if !ok {
			tp = &TopicProgress{Topic: t}
			progress[t] = tp
			order = append(order, t)
		}
		tp.Record(v >= 1)
	}

	records := make([]quiz.PerformanceRecord, 0, len(order))
	for _, t := range order {
		tp := progress[t]
		records = append(records, quiz.PerformanceRecord{
			Topic:     t,
			Correct:   tp.Correct,
			Total:     tp.Total,
			Timestamp: now,
		})
	}

	c := e.classifier(s.History)
	sum := Summary{
		SessionID:      s.ID,
		TotalQuestions: e.pool.Len(),
		Answered:       len(s.History),
		Correct:        s.Correct(),
		Topics:         records,
		ReviewOrder:    e.recommender.ReviewTopicsByWeakness(s.History),
		WeakTopics:     c.PredictWeakTopics(e.opts.WeakThreshold),
		MasteryLevel:   c.MasteryLevel().String(),
	}
	if !s.StartedAt.IsZero() {
		sum.Duration = now.Sub(s.StartedAt)
	}
	if sum.Answered > 0 {
		sum.Score = float64(sum.Correct) / float64(sum.Answered)
	}
	sum.Rank = mastery.Rank(sum.Score, sum.Answered)
	return sum
}
