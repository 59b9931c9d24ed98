package recommend

import (
	"maps"
	"slices"

	"github.com/abhisek/studyforge/internal/quiz"
)

// Defaults applied when history is empty or items are unrated.
const (
	NeutralAverage     = 0.5
	WeakTopicThreshold = 0.7
	RecentWindow       = 5
	DefaultDifficulty  = 2
)

// Learner is a snapshot of performance built fresh for every call.
type Learner struct {
	// Average is the mean score over history, NeutralAverage when empty.
	Average  float64
	Weak     map[string]bool
	Answered map[int]bool

	// Recent holds the topics of the most recently answered items.
	Recent map[string]bool
}

// topicScores groups scores by topic. Topics are returned in the order
// they first appear when history is walked by ascending item index.
func topicScores(pool *quiz.Pool, history map[int]float64) ([]string, map[string][]float64) {
	idx := slices.Sorted(maps.Keys(history))
	var order []string
	scores := make(map[string][]float64)
	for _, i := range idx {
		if i < 0 || i >= pool.Len() {
			continue
		}
		t := pool.Topic(i)
		if _, ok := scores[t]; !ok {
			order = append(order, t)
		}
		scores[t] = append(scores[t], history[i])
	}
	return order, scores
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var s float64
	for _, x := range xs {
		s += x
	}
	return s / float64(len(xs))
}

func (r *Recommender) learner(history map[int]float64, answered []int) *Learner {
	l := &Learner{
		Average:  NeutralAverage,
		Weak:     make(map[string]bool),
		Answered: make(map[int]bool, len(answered)),
		Recent:   make(map[string]bool),
	}
	if len(history) > 0 {
		var s float64
		for _, v := range history {
			s += v
		}
		l.Average = s / float64(len(history))
	}
	for _, t := range r.WeakTopics(history) {
		l.Weak[t] = true
	}
	for _, i := range answered {
		l.Answered[i] = true
	}
	start := max(0, len(answered)-r.recentWindow)
	for _, i := range answered[start:] {
		if i >= 0 && i < r.pool.Len() {
			l.Recent[r.pool.Topic(i)] = true
		}
	}
	return l
}
