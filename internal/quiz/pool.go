package quiz

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Pool is the fixed, ordered set of items for one quiz session.
type Pool struct {
	items []Item
}

// NewPool validates items, normalizes their topics and assigns indices
// in slice order. It fails fast on the first malformed item; an untagged
// item is malformed.
func NewPool(items []Item) (*Pool, error) {
	out := make([]Item, len(items))
	for i, it := range items {
		it.Index = i
		it.Topic = NormalizeTopic(it.Topic)
		it.Options = cloneOptions(it.Options)
		it.Prerequisites = slices.Clone(it.Prerequisites)
		if err := it.Validate(); err != nil {
			return nil, err
		}
		for _, p := range it.Prerequisites {
			if p < 0 || p >= len(items) {
				return nil, &ItemError{Index: i, Field: "prerequisites", Reason: fmt.Sprintf("index %d out of range", p)}
			}
		}
		out[i] = it
	}
	return &Pool{items: out}, nil
}

// Len returns the number of items.
func (p *Pool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.items)
}

// At returns the item at index i. ok is false when i is out of range.
func (p *Pool) At(i int) (Item, bool) {
	if p == nil || i < 0 || i >= len(p.items) {
		return Item{}, false
	}
	it := p.items[i]
	it.Options = cloneOptions(it.Options)
	it.Prerequisites = slices.Clone(it.Prerequisites)
	return it, true
}

// Topic returns the topic of item i, or DefaultTopic when out of range.
func (p *Pool) Topic(i int) string {
	if p == nil || i < 0 || i >= len(p.items) {
		return DefaultTopic
	}
	return p.items[i].Topic
}

// DifficultyOf returns the item's difficulty, or def when unrated.
func (p *Pool) DifficultyOf(i, def int) int {
	if p == nil || i < 0 || i >= len(p.items) || p.items[i].Difficulty == 0 {
		return def
	}
	return p.items[i].Difficulty
}

// PrerequisitesOf returns the prerequisite indices for item i.
func (p *Pool) PrerequisitesOf(i int) []int {
	if p == nil || i < 0 || i >= len(p.items) {
		return nil
	}
	return p.items[i].Prerequisites
}

// Items returns a copy of all items.
func (p *Pool) Items() []Item {
	if p == nil {
		return nil
	}
	out := make([]Item, len(p.items))
	for i := range p.items {
		out[i], _ = p.At(i)
	}
	return out
}

// Topics returns the distinct topics in first-seen order.
func (p *Pool) Topics() []string {
	seen := make(map[string]bool)
	var out []string
	for i := range p.Len() {
		t := p.Topic(i)
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

func (p *Pool) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Items())
}

func (p *Pool) UnmarshalJSON(data []byte) error {
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("decode quiz pool: %w", err)
	}
	np, err := NewPool(items)
	if err != nil {
		return err
	}
	*p = *np
	return nil
}

func cloneOptions(m map[Label]string) map[Label]string {
	if m == nil {
		return nil
	}
	out := make(map[Label]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
