package quiz

import (
	"maps"
	"slices"
	"time"
)

// PerformanceRecord aggregates results for one topic.
type PerformanceRecord struct {
	Topic     string    `json:"topic"`
	Correct   int       `json:"correct"`
	Total     int       `json:"total"`
	Timestamp time.Time `json:"timestamp"`
}

// Accuracy returns Correct/Total, or 0 when nothing was answered.
func (r PerformanceRecord) Accuracy() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Total)
}

// SessionState is the per-learner quiz state. It is a value type: the
// session engine never mutates a state it was given, it returns a new one.
type SessionState struct {
	// ID identifies the session in a session store.
	ID string `json:"id"`

	// CurrentIndex is the item being asked. A value >= pool length means
	// the session is complete.
	CurrentIndex int `json:"current_index"`

	// Answered lists item indices in the order they were answered.
	Answered []int `json:"answered"`

	// History maps item index to 1.0 (correct) or 0.0 (incorrect).
	History map[int]float64 `json:"history"`

	// WeakTopics is recomputed after each answer.
	WeakTopics []string `json:"weak_topics"`

	// MasteryLevel is the label of the learner's current level.
	MasteryLevel string `json:"mastery_level"`

	StartedAt time.Time `json:"started_at"`
}

// AnsweredSet returns the answered indices as a set.
func (s SessionState) AnsweredSet() map[int]bool {
	out := make(map[int]bool, len(s.Answered))
	for _, i := range s.Answered {
		out[i] = true
	}
	return out
}

// HasAnswered reports whether item i was answered.
func (s SessionState) HasAnswered(i int) bool {
	return slices.Contains(s.Answered, i)
}

// Clone returns a deep copy of s.
func (s SessionState) Clone() SessionState {
	c := s
	c.Answered = slices.Clone(s.Answered)
	c.WeakTopics = slices.Clone(s.WeakTopics)
	if s.History != nil {
		c.History = maps.Clone(s.History)
	} else {
		c.History = make(map[int]float64)
	}
	return c
}

// Correct returns the number of correctly answered items.
func (s SessionState) Correct() int {
	n := 0
	for _, v := range s.History {
		if v >= 1 {
			n++
		}
	}
	return n
}
