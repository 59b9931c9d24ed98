package question

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyforge/internal/quiz"
	"github.com/abhisek/studyforge/internal/router"
	"github.com/abhisek/studyforge/internal/screens/results"
	"github.com/abhisek/studyforge/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testEngine(t *testing.T, topics ...string) *session.Engine {
	t.Helper()
	items := make([]quiz.Item, len(topics))
	for i, topic := range topics {
		items[i] = quiz.Item{
			Topic:    topic,
			Question: fmt.Sprintf("question %d", i),
			Options: map[quiz.Label]string{
				quiz.LabelA: "right", quiz.LabelB: "wrong", quiz.LabelC: "wrong", quiz.LabelD: "wrong",
			},
			CorrectOption: quiz.LabelA,
			Explanation:   "A is the only right one",
			Difficulty:    2,
		}
	}
	pool, err := quiz.NewPool(items)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	e, err := session.New(pool, session.Options{})
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	return e
}

func TestScreen_StartsFreshSession(t *testing.T) {
	s := New(testEngine(t, "cells", "energy", "cells"), quiz.SessionState{})

	if s.Title() != "Quiz" {
		t.Errorf("Title = %q", s.Title())
	}
	if s.State().ID == "" {
		t.Error("expected a session id")
	}
	if got := s.Status(); got != "Q 1/3  ✓ 0" {
		t.Errorf("Status = %q", got)
	}
	if cmd := s.Init(); cmd != nil {
		t.Error("expected no init command for an unfinished session")
	}
	if len(s.KeyHints()) != 4 {
		t.Errorf("KeyHints = %v", s.KeyHints())
	}
}

func TestScreen_LetterPicksAndGrades(t *testing.T) {
	s := New(testEngine(t, "cells", "energy"), quiz.SessionState{})
	first := s.State().CurrentIndex

	s.Update(keyPress('a'))

	if s.outcome == nil || !s.outcome.Correct {
		t.Fatalf("expected a correct outcome, got %+v", s.outcome)
	}
	st := s.State()
	if len(st.Answered) != 1 || st.History[first] != 1 {
		t.Errorf("state after answer = %+v", st)
	}
	if len(s.KeyHints()) != 1 {
		t.Errorf("expected the continue hint during feedback, got %v", s.KeyHints())
	}
	if !strings.Contains(s.View(80, 24), "Correct!") {
		t.Error("expected feedback in view")
	}
}

func TestScreen_ArrowsAndEnter(t *testing.T) {
	s := New(testEngine(t, "cells", "energy"), quiz.SessionState{})

	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyEnter))

	if s.outcome == nil {
		t.Fatal("expected the answer to be graded")
	}
	if s.outcome.Chosen != quiz.LabelB || s.outcome.Correct {
		t.Errorf("outcome = %+v, want incorrect B", s.outcome)
	}
	if !strings.Contains(s.View(80, 24), "The answer is A") {
		t.Error("expected the correct option in the feedback")
	}
}

func TestScreen_FinishesWithResults(t *testing.T) {
	s := New(testEngine(t, "cells", "energy"), quiz.SessionState{})

	s.Update(keyPress('a'))
	if _, cmd := s.Update(keyPress('x')); cmd != nil {
		t.Fatal("expected the next question, not the results")
	}
	s.Update(keyPress('b'))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command to show results")
	}

	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	res, ok := msg.Screen.(*results.Screen)
	if !ok {
		t.Fatalf("expected results screen, got %T", msg.Screen)
	}
	sum := res.Summary()
	if sum.Answered != 2 || sum.Correct != 1 {
		t.Errorf("summary = %+v", sum)
	}
}

func TestScreen_QuitConfirm(t *testing.T) {
	s := New(testEngine(t, "cells", "energy"), quiz.SessionState{})

	s.Update(specialKey(tea.KeyEscape))
	if !s.confirmQuit {
		t.Fatal("expected quit confirmation")
	}
	s.Update(keyPress('n'))
	if s.confirmQuit {
		t.Fatal("expected confirmation dismissed")
	}

	s.Update(specialKey(tea.KeyEscape))
	_, cmd := s.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", cmd())
	}
	if len(s.State().Answered) != 0 {
		t.Error("quitting must not record an answer")
	}
}

func TestScreen_ResumeSkipsGradedItem(t *testing.T) {
	e := testEngine(t, "cells", "energy", "light")
	st := e.Start()
	graded, _, err := e.Answer(st, quiz.LabelA)
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}

	s := New(e, graded)

	if s.State().CurrentIndex == st.CurrentIndex {
		t.Error("expected resume to move past the graded item")
	}
	if got := s.Status(); got != "Q 2/3  ✓ 1" {
		t.Errorf("Status = %q", got)
	}
}

func TestScreen_InitOnFinishedSession(t *testing.T) {
	e := testEngine(t, "cells")
	st := e.Start()
	st, _, err := e.Answer(st, quiz.LabelC)
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	st = e.Advance(st)

	s := New(e, st)
	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected results command for a finished session")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Errorf("expected ReplaceScreenMsg, got %T", cmd())
	}
}
