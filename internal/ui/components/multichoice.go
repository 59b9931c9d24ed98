package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyforge/internal/quiz"
	"github.com/abhisek/studyforge/internal/ui/theme"
)

// MultiChoice is a lettered multiple-choice selector. It only records the
// learner's pick; grading happens elsewhere and is shown via Reveal.
type MultiChoice struct {
	Question  string
	Labels    []quiz.Label
	Texts     []string
	Selected  int
	Submitted bool
	Chosen    quiz.Label

	correct  quiz.Label
	revealed bool
}

// NewMultiChoice builds a selector for item, options in label order.
func NewMultiChoice(item quiz.Item) MultiChoice {
	labels := item.OrderedOptions()
	texts := make([]string, len(labels))
	for i, l := range labels {
		texts[i] = item.Options[l]
	}
	return MultiChoice{
		Question: item.Question,
		Labels:   labels,
		Texts:    texts,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles navigation, letter shortcuts and submission.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Labels)-1 {
			m.Selected++
		}
	case "enter":
		if len(m.Labels) > 0 {
			m.submit(m.Selected)
		}
	default:
		if l, ok := quiz.ParseLabel(key); ok {
			for i, have := range m.Labels {
				if have == l {
					m.submit(i)
					break
				}
			}
		}
	}

	return m, nil
}

func (m *MultiChoice) submit(i int) {
	m.Selected = i
	m.Submitted = true
	m.Chosen = m.Labels[i]
}

// Reveal marks correct as the right answer so View can color the options.
func (m *MultiChoice) Reveal(correct quiz.Label) {
	m.correct = correct
	m.revealed = true
}

// Reset clears a submission that was rejected.
func (m *MultiChoice) Reset() {
	m.Submitted = false
	m.Chosen = ""
	m.revealed = false
}

// View renders the question and its options.
func (m MultiChoice) View(width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(max(width-4, 20)).
		Render(m.Question))
	b.WriteString("\n\n")

	for i, label := range m.Labels {
		prefix := "  "
		if i == m.Selected && !m.revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, label, m.Texts[i])

		var style lipgloss.Style
		switch {
		case m.revealed && label == m.correct:
			style = theme.Correct
		case m.revealed && label == m.Chosen:
			style = theme.Incorrect
		case m.revealed:
			style = theme.Muted
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}
