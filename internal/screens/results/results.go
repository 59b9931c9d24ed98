// Package results shows the end-of-quiz summary.
package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyforge/internal/screen"
	"github.com/abhisek/studyforge/internal/session"
	"github.com/abhisek/studyforge/internal/ui/components"
	"github.com/abhisek/studyforge/internal/ui/layout"
	"github.com/abhisek/studyforge/internal/ui/theme"
)

// Screen displays a session.Summary.
type Screen struct {
	summary session.Summary
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.StatusProvider = (*Screen)(nil)

// New creates a results screen for summary.
func New(summary session.Summary) *Screen {
	return &Screen{summary: summary}
}

// Summary returns the summary being shown.
func (s *Screen) Summary() session.Summary {
	return s.summary
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Results"
}

func (s *Screen) Status() string {
	return fmt.Sprintf("%d/%d", s.summary.Correct, s.summary.Answered)
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Done"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	sum := s.summary
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render("Quiz complete!"))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(theme.Subtitle.Width(width).Render(
		fmt.Sprintf("Time: %d:%02d    Level: %s    %s", mins, secs, sum.MasteryLevel, sum.Rank)))
	b.WriteString("\n\n")

	b.WriteString(center(theme.Body.Render(fmt.Sprintf(
		"Answered: %d of %d        Correct: %d        Score: %.0f%%",
		sum.Answered, sum.TotalQuestions, sum.Correct, sum.Score*100))))
	b.WriteString("\n\n")

	if len(sum.Topics) > 0 {
		b.WriteString(center(theme.Muted.Render("Topics")))
		b.WriteString("\n")
		b.WriteString(center(layout.Divider(width, 60)))
		b.WriteString("\n")
		barWidth := min(width-8, 60)
		for _, rec := range sum.Topics {
			label := fmt.Sprintf("%-18s %d/%d", truncate(rec.Topic, 18), rec.Correct, rec.Total)
			b.WriteString(center(components.NewProgressBar(label, rec.Accuracy(), true, barWidth).View()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(sum.WeakTopics) > 0 {
		names := make([]string, len(sum.WeakTopics))
		for i, w := range sum.WeakTopics {
			names[i] = fmt.Sprintf("%s (%.0f%%)", w.Topic, w.Accuracy*100)
		}
		b.WriteString(center(theme.Weak.Render("Needs work: " + strings.Join(names, ", "))))
		b.WriteString("\n")
	}
	if len(sum.ReviewOrder) > 0 {
		b.WriteString(center(theme.Hint.Render("Review order: " + strings.Join(sum.ReviewOrder, " > "))))
		b.WriteString("\n")
	}

	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
