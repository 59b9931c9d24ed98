// Package mastery estimates per-topic accuracy from answer observations,
// classifies weak topics and derives an overall mastery level.
package mastery

import (
	"maps"
	"slices"
	"strings"

	"github.com/abhisek/studyforge/internal/quiz"
)

// DefaultThreshold is the accuracy below which a topic is weak.
const DefaultThreshold = 0.7

// Observation is one graded answer.
type Observation struct {
	Topic   string `json:"topic"`
	Correct bool   `json:"correct"`
}

// TopicAccuracy is the estimate for one topic.
type TopicAccuracy struct {
	Topic         string  `json:"topic"`
	Accuracy      float64 `json:"accuracy"`
	QuestionCount int     `json:"question_count"`
}

type tally struct {
	correct, total int
}

// Classifier aggregates observations per topic. The zero value is ready
// to use with DefaultCutPoints.
type Classifier struct {
	Cuts CutPoints

	topics map[string]*tally
	order  []string
}

// NewClassifier returns a classifier with the given cut points.
func NewClassifier(cuts CutPoints) *Classifier {
	return &Classifier{Cuts: cuts}
}

// Train discards previous state and aggregates obs.
func (c *Classifier) Train(obs []Observation) {
	c.topics = make(map[string]*tally)
	c.order = nil
	for _, o := range obs {
		c.Observe(o)
	}
}

// Observe adds a single observation.
func (c *Classifier) Observe(o Observation) {
	if c.topics == nil {
		c.topics = make(map[string]*tally)
	}
	topic := quiz.NormalizeTopic(o.Topic)
	if topic == "" {
		topic = quiz.DefaultTopic
	}
	t, ok := c.topics[topic]
	if !ok {
		t = &tally{}
		c.topics[topic] = t
		c.order = append(c.order, topic)
	}
	t.total++
	if o.Correct {
		t.correct++
	}
}

// Topics returns the estimate for every topic in first-seen order.
func (c *Classifier) Topics() []TopicAccuracy {
	out := make([]TopicAccuracy, 0, len(c.order))
	for _, name := range c.order {
		t := c.topics[name]
		out = append(out, TopicAccuracy{
			Topic:         name,
			Accuracy:      float64(t.correct) / float64(t.total),
			QuestionCount: t.total,
		})
	}
	return out
}

// PredictWeakTopics returns topics with accuracy strictly below
// threshold, lowest accuracy first. Ties are ordered by topic name.
func (c *Classifier) PredictWeakTopics(threshold float64) []TopicAccuracy {
	var out []TopicAccuracy
	for _, ta := range c.Topics() {
		if ta.Accuracy < threshold {
			out = append(out, ta)
		}
	}
	slices.SortFunc(out, func(a, b TopicAccuracy) int {
		switch {
		case a.Accuracy < b.Accuracy:
			return -1
		case a.Accuracy > b.Accuracy:
			return 1
		}
		return strings.Compare(a.Topic, b.Topic)
	})
	return out
}

// WeakTopicNames is PredictWeakTopics reduced to names.
func (c *Classifier) WeakTopicNames(threshold float64) []string {
	weak := c.PredictWeakTopics(threshold)
	out := make([]string, len(weak))
	for i, w := range weak {
		out[i] = w.Topic
	}
	return out
}

// OverallAccuracy is correct/total over every observation. ok is false
// when nothing has been observed.
func (c *Classifier) OverallAccuracy() (acc float64, ok bool) {
	var correct, total int
	for _, t := range c.topics {
		correct += t.correct
		total += t.total
	}
	if total == 0 {
		return 0, false
	}
	return float64(correct) / float64(total), true
}

// Count returns the number of observations.
func (c *Classifier) Count() int {
	n := 0
	for _, t := range c.topics {
		n += t.total
	}
	return n
}

// MasteryLevel maps overall accuracy to a level. With no observations
// the learner is a Beginner.
func (c *Classifier) MasteryLevel() Level {
	acc, ok := c.OverallAccuracy()
	if !ok {
		return Beginner
	}
	return c.cuts().LevelFor(acc)
}

func (c *Classifier) cuts() CutPoints {
	if c.Cuts == (CutPoints{}) {
		return DefaultCutPoints
	}
	return c.Cuts
}

// ObservationsFrom converts a session history into observations, in item
// order. Indices outside the pool are skipped.
func ObservationsFrom(pool *quiz.Pool, history map[int]float64) []Observation {
	var out []Observation
	for _, i := range slices.Sorted(maps.Keys(history)) {
		if i < 0 || i >= pool.Len() {
			continue
		}
		out = append(out, Observation{Topic: pool.Topic(i), Correct: history[i] >= 1})
	}
	return out
}
