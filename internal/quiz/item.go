package quiz

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Label identifies one answer option of a quiz item.
type Label string

const (
	LabelA Label = "A"
	LabelB Label = "B"
	LabelC Label = "C"
	LabelD Label = "D"
)

// Labels is the fixed, ordered option alphabet.
var Labels = []Label{LabelA, LabelB, LabelC, LabelD}

// DefaultTopic labels observations and stored records that carry no topic.
// Pool items must always be tagged.
const DefaultTopic = "general"

// Item is a single generated multiple-choice question.
// Items are immutable once placed in a Pool.
type Item struct {
	// Index is the item's position in the pool, stable for the session.
	Index int `json:"index"`

	// Topic is the normalized (lower case) topic tag.
	Topic string `json:"topic"`

	Question string           `json:"question"`
	Options  map[Label]string `json:"options"`

	// CorrectOption is one of the keys of Options.
	CorrectOption Label `json:"correct_option"`

	Explanation string `json:"explanation,omitempty"`

	// Difficulty is 1-5, or 0 when the generator did not rate the item.
	Difficulty int `json:"difficulty,omitempty"`

	// Prerequisites lists indices of items that should be seen first.
	Prerequisites []int `json:"prerequisites,omitempty"`
}

// ErrInvalidItem is matched by every ItemError.
var ErrInvalidItem = errors.New("invalid quiz item")

// ItemError identifies a malformed item in a generated pool.
type ItemError struct {
	Index  int
	Field  string
	Reason string
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("quiz item %d: %s: %s", e.Index, e.Field, e.Reason)
}

func (e *ItemError) Is(target error) bool { return target == ErrInvalidItem }

// ParseLabel converts user input such as "b" or " C " into a Label.
func ParseLabel(s string) (Label, bool) {
	l := Label(strings.ToUpper(strings.TrimSpace(s)))
	if slices.Contains(Labels, l) {
		return l, true
	}
	return "", false
}

var lower = cases.Lower(language.Und)

// NormalizeTopic trims and lower-cases a topic tag.
func NormalizeTopic(topic string) string {
	return lower.String(strings.TrimSpace(topic))
}

// Validate checks the item shape. The index reported is the item's pool index.
func (it *Item) Validate() error {
	if strings.TrimSpace(it.Question) == "" {
		return &ItemError{Index: it.Index, Field: "question", Reason: "missing"}
	}
	if strings.TrimSpace(it.Topic) == "" {
		return &ItemError{Index: it.Index, Field: "topic", Reason: "missing"}
	}
	if len(it.Options) == 0 {
		return &ItemError{Index: it.Index, Field: "options", Reason: "missing"}
	}
	for label, text := range it.Options {
		if !slices.Contains(Labels, label) {
			return &ItemError{Index: it.Index, Field: "options", Reason: fmt.Sprintf("unknown label %q", label)}
		}
		if strings.TrimSpace(text) == "" {
			return &ItemError{Index: it.Index, Field: "options", Reason: fmt.Sprintf("option %s is empty", label)}
		}
	}
	if it.CorrectOption == "" {
		return &ItemError{Index: it.Index, Field: "correct_option", Reason: "missing"}
	}
	if _, ok := it.Options[it.CorrectOption]; !ok {
		return &ItemError{Index: it.Index, Field: "correct_option", Reason: fmt.Sprintf("%q is not an option", it.CorrectOption)}
	}
	if it.Difficulty < 0 || it.Difficulty > 5 {
		return &ItemError{Index: it.Index, Field: "difficulty", Reason: fmt.Sprintf("must be 1-5, got %d", it.Difficulty)}
	}
	for _, p := range it.Prerequisites {
		if p == it.Index {
			return &ItemError{Index: it.Index, Field: "prerequisites", Reason: "item lists itself"}
		}
	}
	return nil
}

// OrderedOptions returns the item's options in alphabet order.
func (it *Item) OrderedOptions() []Label {
	var out []Label
	for _, l := range Labels {
		if _, ok := it.Options[l]; ok {
			out = append(out, l)
		}
	}
	return out
}

// IsCorrect reports whether the chosen label is the correct one.
func (it *Item) IsCorrect(choice Label) bool {
	return choice == it.CorrectOption
}
