// Package question is the interactive quiz screen.
package question

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyforge/internal/quiz"
	"github.com/abhisek/studyforge/internal/router"
	"github.com/abhisek/studyforge/internal/screen"
	"github.com/abhisek/studyforge/internal/screens/results"
	"github.com/abhisek/studyforge/internal/session"
	"github.com/abhisek/studyforge/internal/ui/components"
	"github.com/abhisek/studyforge/internal/ui/layout"
)

// Screen asks the recommended question, grades the pick and shows feedback.
type Screen struct {
	engine      *session.Engine
	state       quiz.SessionState
	choice      components.MultiChoice
	outcome     *session.Outcome
	confirmQuit bool
	errMsg      string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.StatusProvider = (*Screen)(nil)

// New resumes state on engine. A zero state starts a new session.
func New(engine *session.Engine, state quiz.SessionState) *Screen {
	if state.ID == "" {
		state = engine.Start()
	}
	// saved between grading and advancing
	if !engine.Done(state) && state.HasAnswered(state.CurrentIndex) {
		state = engine.Advance(state)
	}
	s := &Screen{engine: engine, state: state}
	s.loadCurrent()
	return s
}

// State returns the learner's state as of the last graded answer.
func (s *Screen) State() quiz.SessionState {
	return s.state
}

func (s *Screen) Init() tea.Cmd {
	if s.engine.Done(s.state) {
		return s.finish()
	}
	return nil
}

func (s *Screen) Title() string {
	return "Quiz"
}

func (s *Screen) Status() string {
	n := min(len(s.state.Answered)+1, s.engine.Pool().Len())
	if s.outcome != nil {
		n = len(s.state.Answered)
	}
	return fmt.Sprintf("Q %d/%d  ✓ %d", n, s.engine.Pool().Len(), s.state.Correct())
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Stop here"},
			{Key: "N", Description: "Keep going"},
		}
	case s.outcome != nil:
		return []layout.KeyHint{
			{Key: "any key", Description: "Next question"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "A-D", Description: "Pick"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	key := kmsg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			return s, tea.Quit
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if s.outcome != nil {
		return s, s.next()
	}

	if key == "esc" {
		s.confirmQuit = true
		return s, nil
	}

	s.errMsg = ""
	s.choice, _ = s.choice.Update(msg)
	if s.choice.Submitted {
		s.grade()
	}
	return s, nil
}

func (s *Screen) grade() {
	next, out, err := s.engine.Answer(s.state, s.choice.Chosen)
	if err != nil {
		s.errMsg = err.Error()
		s.choice.Reset()
		return
	}
	s.state = next
	s.outcome = &out
	s.choice.Reveal(out.CorrectOption)
}

func (s *Screen) next() tea.Cmd {
	s.outcome = nil
	s.state = s.engine.Advance(s.state)
	if s.engine.Done(s.state) {
		return s.finish()
	}
	s.loadCurrent()
	return nil
}

func (s *Screen) loadCurrent() {
	if item, ok := s.engine.Current(s.state); ok {
		s.choice = components.NewMultiChoice(item)
	}
}

func (s *Screen) finish() tea.Cmd {
	summary := s.engine.Summarize(s.state)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: results.New(summary)}
	}
}
