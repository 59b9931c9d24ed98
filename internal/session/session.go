// Package session drives one learner through a quiz pool. Every call takes
// a quiz.SessionState and returns a new one; the engine holds no
// per-learner state.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/studyforge/internal/mastery"
	"github.com/abhisek/studyforge/internal/quiz"
	"github.com/abhisek/studyforge/internal/recommend"
)

var (
	// ErrSessionComplete is returned when answering after the last item.
	ErrSessionComplete = errors.New("session complete")

	// ErrAlreadyAnswered is returned when the current item was answered.
	ErrAlreadyAnswered = errors.New("item already answered")

	// ErrInvalidOption is returned for a label the item does not offer.
	ErrInvalidOption = errors.New("invalid option")
)

// Options tune an Engine.
type Options struct {
	// Recommend are passed to recommend.New.
	Recommend []recommend.Option

	// WeakThreshold is the classifier's weak-topic cut. Zero means
	// mastery.DefaultThreshold.
	WeakThreshold float64

	// Cuts are the mastery level cut points. Zero means defaults.
	Cuts mastery.CutPoints

	// Now is the clock. Nil means time.Now.
	Now func() time.Time
}

// Engine sequences and grades one pool.
type Engine struct {
	pool        *quiz.Pool
	recommender *recommend.Recommender
	opts        Options
}

// New validates the pool and builds an engine over it.
func New(pool *quiz.Pool, opts Options) (*Engine, error) {
	if pool == nil || pool.Len() == 0 {
		return nil, errors.New("session: empty pool")
	}
	r, err := recommend.New(pool, opts.Recommend...)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	if opts.WeakThreshold == 0 {
		opts.WeakThreshold = mastery.DefaultThreshold
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{pool: pool, recommender: r, opts: opts}, nil
}

// Pool returns the pool.
func (e *Engine) Pool() *quiz.Pool { return e.pool }

// Recommender returns the underlying recommender.
func (e *Engine) Recommender() *recommend.Recommender { return e.recommender }

// Start returns a fresh state positioned on the first recommended item.
func (e *Engine) Start() quiz.SessionState {
	s := quiz.SessionState{
		ID:           uuid.NewString(),
		Answered:     []int{},
		History:      make(map[int]float64),
		WeakTopics:   []string{},
		MasteryLevel: mastery.Beginner.String(),
		StartedAt:    e.opts.Now(),
	}
	s.CurrentIndex = e.recommender.SelectNext(-1, s.History, s.Answered)
	return s
}

// Current returns the item being asked.
func (e *Engine) Current(s quiz.SessionState) (quiz.Item, bool) {
	if e.Done(s) {
		return quiz.Item{}, false
	}
	return e.pool.At(s.CurrentIndex)
}

// Outcome is the result of grading one answer.
type Outcome struct {
	Index         int        `json:"index"`
	Topic         string     `json:"topic"`
	Chosen        quiz.Label `json:"chosen"`
	CorrectOption quiz.Label `json:"correct_option"`
	Correct       bool       `json:"correct"`
	Explanation   string     `json:"explanation,omitempty"`
}

// Answer grades option against the current item. It returns a new state
// with the outcome appended and weak topics and mastery recomputed; s is
// left untouched. CurrentIndex is not moved; call Advance for that.
func (e *Engine) Answer(s quiz.SessionState, option quiz.Label) (quiz.SessionState, Outcome, error) {
	item, ok := e.Current(s)
	if !ok {
		return s, Outcome{}, ErrSessionComplete
	}
	if s.HasAnswered(item.Index) {
		return s, Outcome{}, fmt.Errorf("%w: %d", ErrAlreadyAnswered, item.Index)
	}
	if _, ok := item.Options[option]; !ok {
		return s, Outcome{}, fmt.Errorf("%w: %q", ErrInvalidOption, option)
	}

	out := Outcome{
		Index:         item.Index,
		Topic:         item.Topic,
		Chosen:        option,
		CorrectOption: item.CorrectOption,
		Correct:       item.IsCorrect(option),
		Explanation:   item.Explanation,
	}

	next := s.Clone()
	next.Answered = append(next.Answered, item.Index)
	next.History[item.Index] = 0
	if out.Correct {
		next.History[item.Index] = 1
	}

	c := e.classifier(next.History)
	next.WeakTopics = c.WeakTopicNames(e.opts.WeakThreshold)
	if next.WeakTopics == nil {
		next.WeakTopics = []string{}
	}
	next.MasteryLevel = c.MasteryLevel().String()
	return next, out, nil
}

// Advance moves CurrentIndex to the next recommended item.
func (e *Engine) Advance(s quiz.SessionState) quiz.SessionState {
	next := s.Clone()
	next.CurrentIndex = e.recommender.SelectNext(s.CurrentIndex, s.History, s.Answered)
	// the frontier only looks ahead; pick up anything skipped behind
	if next.CurrentIndex >= e.pool.Len() {
		answered := next.AnsweredSet()
		for i := range e.pool.Len() {
			if !answered[i] {
				next.CurrentIndex = e.recommender.SelectNext(i-1, s.History, s.Answered)
				break
			}
		}
	}
	return next
}

// Done reports whether the session is over.
func (e *Engine) Done(s quiz.SessionState) bool {
	return s.CurrentIndex < 0 || s.CurrentIndex >= e.pool.Len() || len(s.AnsweredSet()) >= e.pool.Len()
}

func (e *Engine) classifier(history map[int]float64) *mastery.Classifier {
	c := mastery.NewClassifier(e.opts.Cuts)
	c.Train(mastery.ObservationsFrom(e.pool, history))
	return c
}
