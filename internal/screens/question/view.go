package question

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyforge/internal/ui/components"
	"github.com/abhisek/studyforge/internal/ui/layout"
	"github.com/abhisek/studyforge/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	if s.confirmQuit {
		return renderQuitConfirm(width)
	}

	item, ok := s.engine.Current(s.state)
	if !ok {
		return theme.Subtitle.Width(width).Render("\n\nAll questions answered.")
	}

	var b strings.Builder

	topic := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  Topic: " + item.Topic)
	level := theme.Muted.Render(s.state.MasteryLevel)
	pad := max(width-lipgloss.Width(topic)-lipgloss.Width(level)-4, 1)
	b.WriteString(topic + strings.Repeat(" ", pad) + level)
	b.WriteString("\n")
	b.WriteString("  " + layout.Divider(width, width))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(s.choice.View(width)))
	b.WriteString("\n")

	if s.outcome != nil {
		b.WriteString(s.renderFeedback(width))
	} else if s.errMsg != "" {
		b.WriteString(theme.Incorrect.PaddingLeft(2).Render(s.errMsg))
		b.WriteString("\n")
	}

	if !layout.IsCompactWidth(width) && len(s.state.WeakTopics) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Weak.PaddingLeft(2).Render("Weak so far: " + strings.Join(s.state.WeakTopics, ", ")))
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(components.NewRatioBar("Progress", len(s.state.Answered), s.engine.Pool().Len(), min(width-4, 60)).View())

	return b.String()
}

func (s *Screen) renderFeedback(width int) string {
	out := s.outcome
	var b strings.Builder
	if out.Correct {
		b.WriteString(theme.Correct.PaddingLeft(2).Render("Correct!"))
	} else {
		b.WriteString(theme.Incorrect.PaddingLeft(2).Render(
			fmt.Sprintf("Not quite. The answer is %s.", out.CorrectOption)))
	}
	b.WriteString("\n")
	if out.Explanation != "" {
		b.WriteString(theme.Body.
			Width(min(width-6, 76)).
			PaddingLeft(2).
			Render(out.Explanation))
		b.WriteString("\n")
	}
	return b.String()
}

func renderQuitConfirm(width int) string {
	return "\n\n" + theme.Title.Width(width).Render("Stop the quiz?") + "\n\n" +
		theme.Subtitle.Width(width).Render("Your answers so far are kept.")
}
