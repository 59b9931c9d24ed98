// Package recommend picks the next quiz item with an f = g + h frontier
// search and ranks topics for review.
//
// g is the distance from the current item. h is the sum of the weights of
// every matching rule. The heuristic is hand-tuned and not admissible, so
// the choice is a ranking, not a shortest path.
package recommend

import (
	"container/heap"
	"errors"
	"fmt"
	"slices"

	"github.com/abhisek/studyforge/internal/quiz"
)

// ErrNilPool is returned by New when no pool is given.
var ErrNilPool = errors.New("recommend: nil pool")

// Option configures a Recommender.
type Option func(*Recommender)

// WithRules replaces the rule list.
func WithRules(rules []Rule) Option {
	return func(r *Recommender) { r.rules = slices.Clone(rules) }
}

// WithWeights re-weights the current rule list by rule name.
func WithWeights(weights map[string]float64) Option {
	return func(r *Recommender) { r.rules = Reweight(r.rules, weights) }
}

// WithWeakThreshold sets the topic accuracy below which a topic is weak.
func WithWeakThreshold(t float64) Option {
	return func(r *Recommender) { r.weakThreshold = t }
}

// WithRecentWindow sets how many recent answers the variety rules see.
func WithRecentWindow(n int) Option {
	return func(r *Recommender) { r.recentWindow = n }
}

// WithDefaultDifficulty sets the difficulty assumed for unrated items.
func WithDefaultDifficulty(d int) Option {
	return func(r *Recommender) { r.defaultDifficulty = d }
}

// Recommender scores items of a fixed pool. It holds no mutable state;
// every call derives what it needs from its arguments.
type Recommender struct {
	pool              *quiz.Pool
	rules             []Rule
	weakThreshold     float64
	recentWindow      int
	defaultDifficulty int
}

// New returns a recommender over pool with the default rules.
func New(pool *quiz.Pool, opts ...Option) (*Recommender, error) {
	if pool == nil {
		return nil, ErrNilPool
	}
	r := &Recommender{
		pool:              pool,
		rules:             DefaultRules(),
		weakThreshold:     WeakTopicThreshold,
		recentWindow:      RecentWindow,
		defaultDifficulty: DefaultDifficulty,
	}
	for _, o := range opts {
		o(r)
	}
	if r.recentWindow < 0 {
		return nil, fmt.Errorf("recommend: recent window must be >= 0, got %d", r.recentWindow)
	}
	return r, nil
}

// Pool returns the pool being sequenced.
func (r *Recommender) Pool() *quiz.Pool { return r.pool }

// Rules returns a copy of the rule list.
func (r *Recommender) Rules() []Rule { return slices.Clone(r.rules) }

// Scored is a candidate with its cost breakdown.
type Scored struct {
	Index int      `json:"index"`
	Topic string   `json:"topic"`
	G     float64  `json:"g"`
	H     float64  `json:"h"`
	F     float64  `json:"f"`
	Rules []string `json:"rules"`

	seq int
}

func (r *Recommender) candidate(i int) *Candidate {
	return &Candidate{
		Index:         i,
		Topic:         r.pool.Topic(i),
		Difficulty:    r.pool.DifficultyOf(i, r.defaultDifficulty),
		Prerequisites: r.pool.PrerequisitesOf(i),
	}
}

func (r *Recommender) heuristic(c *Candidate, l *Learner) (float64, []string) {
	var h float64
	var matched []string
	for _, rule := range r.rules {
		if rule.Applies(c, l) {
			h += rule.Weight
			matched = append(matched, rule.Name)
		}
	}
	return h, matched
}

// Heuristic returns h for item i given the history and answer log.
func (r *Recommender) Heuristic(i int, history map[int]float64, answered []int) float64 {
	if i < 0 || i >= r.pool.Len() {
		return 0
	}
	h, _ := r.heuristic(r.candidate(i), r.learner(history, answered))
	return h
}

// frontier is a min-heap on f, ties broken by insertion sequence.
type frontier []*Scored

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].F != f[j].F {
		return f[i].F < f[j].F
	}
	return f[i].seq < f[j].seq
}
func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x any)   { *f = append(*f, x.(*Scored)) }
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	x := old[n-1]
	*f = old[:n-1]
	return x
}

func (r *Recommender) expand(current int, history map[int]float64, answered []int) *frontier {
	l := r.learner(history, answered)
	open := &frontier{}
	seq := 0
	for i := current + 1; i < r.pool.Len(); i++ {
		if i < 0 || l.Answered[i] {
			continue
		}
		c := r.candidate(i)
		h, matched := r.heuristic(c, l)
		g := float64(i - current)
		heap.Push(open, &Scored{Index: i, Topic: c.Topic, G: g, H: h, F: g + h, Rules: matched, seq: seq})
		seq++
	}
	return open
}

// SelectNext returns the unanswered item after current with the lowest f.
// When current is at or past the last item, or nothing remains,
// current+1 is returned; any index >= pool length means the quiz is over.
// Pass current = -1 to consider every item.
func (r *Recommender) SelectNext(current int, history map[int]float64, answered []int) int {
	if current >= r.pool.Len()-1 {
		return current + 1
	}
	open := r.expand(current, history, answered)
	if open.Len() == 0 {
		return current + 1
	}
	return heap.Pop(open).(*Scored).Index
}

// Explain returns every candidate SelectNext considered, best first.
func (r *Recommender) Explain(current int, history map[int]float64, answered []int) []Scored {
	if current >= r.pool.Len()-1 {
		return nil
	}
	open := r.expand(current, history, answered)
	out := make([]Scored, 0, open.Len())
	for open.Len() > 0 {
		out = append(out, *heap.Pop(open).(*Scored))
	}
	return out
}
