package contentgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studyforge/internal/concepts"
	"github.com/abhisek/studyforge/internal/llm"
	"github.com/abhisek/studyforge/internal/quiz"
)

const notes = "# Cells\n- Nucleus\n- Membrane\n# Energy\n- ATP\n"

func item(topic string, difficulty int, prereqs ...int) map[string]any {
	if prereqs == nil {
		prereqs = []int{}
	}
	return map[string]any{
		"question":           "Which organelle is " + topic + "?",
		"options":            map[string]string{"A": "one", "B": "two", "C": "three", "D": "four"},
		"correct_option":     "B",
		"answer_explanation": "Two is right.",
		"topic":              topic,
		"difficulty":         difficulty,
		"prerequisites":      prereqs,
	}
}

func quizJSON(t *testing.T, items ...map[string]any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(map[string]any{"items": items})
	require.NoError(t, err)
	return b
}

func TestSummarize(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage("```markdown\n" + notes + "```")})
	g := New(mock, DefaultConfig())

	out, err := g.Summarize(context.Background(), "Cells have a nucleus. Energy comes from ATP.")
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(notes), out)

	// The notes must be something the concept extractor understands.
	assert.Equal(t, []string{"Cells", "Energy"}, concepts.Extract(out).Names())

	req := mock.LastRequest()
	assert.Nil(t, req.Schema)
	assert.Contains(t, req.Messages[0].Content, "Energy comes from ATP")
}

func TestSummarize_Errors(t *testing.T) {
	g := New(llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage("   ")}), DefaultConfig())
	_, err := g.Summarize(context.Background(), "text")
	require.ErrorIs(t, err, ErrGeneration)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = New(llm.NewMockProvider(), DefaultConfig()).Summarize(context.Background(), " \n")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrGeneration)

	g = New(llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}}), DefaultConfig())
	_, err = g.Summarize(context.Background(), "text")
	require.ErrorIs(t, err, ErrGeneration)
	var unavail *llm.ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
}

func TestGenerateQuiz(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: quizJSON(t,
		item("Cells", 1),
		item("cells", 2, 0),
		item("Energy", 4, 0, 1),
	)})
	g := New(mock, DefaultConfig())

	pool, err := g.GenerateQuiz(context.Background(), notes, nil)
	require.NoError(t, err)
	require.Equal(t, 3, pool.Len())

	it, _ := pool.At(2)
	assert.Equal(t, "energy", it.Topic)
	assert.Equal(t, quiz.LabelB, it.CorrectOption)
	assert.Equal(t, "Two is right.", it.Explanation)
	assert.Equal(t, 4, it.Difficulty)
	assert.Equal(t, []int{0, 1}, it.Prerequisites)
	assert.Equal(t, []string{"cells", "energy"}, pool.Topics())

	assert.Equal(t, QuizSchema, mock.LastRequest().Schema)
}

func TestGenerateQuiz_TopicAllowList(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: quizJSON(t,
		item("CELLS", 1),
		item("photosynthesis", 2),
		item("genetics", 3),
		item("Energy", 3),
		item("ecology", 3),
	)})
	g := New(mock, DefaultConfig())

	pool, err := g.GenerateQuiz(context.Background(), notes, []string{" Cells ", "Energy", "cells"})
	require.NoError(t, err)

	var got []string
	for i := range pool.Len() {
		got = append(got, pool.Topic(i))
	}
	assert.Equal(t, []string{"cells", "cells", "energy", "energy", "cells"}, got)
	assert.Contains(t, mock.LastRequest().Messages[0].Content, "1. cells\n2. energy\n")
}

func TestGenerateQuiz_TruncatesAndCleansPrerequisites(t *testing.T) {
	var items []map[string]any
	for i := range 12 {
		items = append(items, item(fmt.Sprintf("t%d", i), 2, i, 11, 0, 0))
	}
	g := New(llm.NewMockProvider(llm.MockResponse{Content: quizJSON(t, items...)}), DefaultConfig())

	pool, err := g.GenerateQuiz(context.Background(), notes, nil)
	require.NoError(t, err)
	require.Equal(t, 10, pool.Len())

	assert.Empty(t, pool.PrerequisitesOf(0))
	assert.Equal(t, []int{0}, pool.PrerequisitesOf(3))
}

func TestGenerateQuiz_ShapeErrors(t *testing.T) {
	bad := item("cells", 2)
	bad["correct_option"] = "A"
	bad["options"] = map[string]string{"A": " ", "B": "two", "C": "three", "D": "four"}

	g := New(llm.NewMockProvider(llm.MockResponse{Content: quizJSON(t, item("cells", 1), bad)}), DefaultConfig())
	_, err := g.GenerateQuiz(context.Background(), notes, nil)

	require.ErrorIs(t, err, ErrGeneration)
	require.ErrorIs(t, err, quiz.ErrInvalidItem)
	var ie *quiz.ItemError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 1, ie.Index)
	assert.Equal(t, "options", ie.Field)
}

func TestGenerateQuiz_SchemaViolation(t *testing.T) {
	g := New(llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`[{"question":"q"}]`)},
	), DefaultConfig())

	_, err := g.GenerateQuiz(context.Background(), notes, nil)
	require.ErrorIs(t, err, ErrGeneration)
	var inv *llm.ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestDecodeList_BareArray(t *testing.T) {
	got, err := decodeList[Flashcard](json.RawMessage("Here you go:\n[{\"question\":\"q\",\"answer\":\"a\"}]"), "cards")
	require.NoError(t, err)
	assert.Equal(t, []Flashcard{{Question: "q", Answer: "a"}}, got)

	_, err = decodeList[Flashcard](json.RawMessage(`{"deck":[]}`), "cards")
	assert.Error(t, err)
}

func TestGenerateFlashcards(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"cards":[{"question":" What is ATP? ","answer":"Energy currency"}]}`)},
		llm.MockResponse{Content: json.RawMessage(`{"cards":[{"question":"Q","answer":""}]}`)},
	)
	g := New(mock, DefaultConfig())

	cards, err := g.GenerateFlashcards(context.Background(), notes)
	require.NoError(t, err)
	assert.Equal(t, []Flashcard{{Question: "What is ATP?", Answer: "Energy currency"}}, cards)

	_, err = g.GenerateFlashcards(context.Background(), notes)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, verr.Index)
}

// routedProvider answers by purpose so concurrent calls are deterministic.
type routedProvider struct {
	byPurpose map[string]json.RawMessage
}

func (r routedProvider) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	body, ok := r.byPurpose[llm.PurposeFrom(ctx)]
	if !ok {
		return nil, errors.New("unexpected purpose")
	}
	return &llm.Response{Content: body, Model: "routed"}, nil
}

func (routedProvider) ModelID() string { return "routed" }

func TestGenerateStudySet(t *testing.T) {
	p := routedProvider{byPurpose: map[string]json.RawMessage{
		llm.PurposeQuizGen:    quizJSON(t, item("cells", 1), item("energy", 3)),
		llm.PurposeFlashcards: json.RawMessage(`{"cards":[{"question":"q","answer":"a"}]}`),
	}}

	set, err := New(p, DefaultConfig()).GenerateStudySet(context.Background(), notes, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, set.Pool.Len())
	assert.Len(t, set.Flashcards, 1)

	delete(p.byPurpose, llm.PurposeFlashcards)
	_, err = New(p, DefaultConfig()).GenerateStudySet(context.Background(), notes, nil)
	assert.ErrorIs(t, err, ErrGeneration)
}

func TestClip(t *testing.T) {
	assert.Equal(t, "héllo", clip("héllo", 0))
	assert.Equal(t, "h", clip("héllo", 2))
	assert.Equal(t, "hé", clip("héllo", 3))
}

func TestGenerateQuiz_UntaggedItem(t *testing.T) {
	untagged := item(" ", 2)

	g := New(llm.NewMockProvider(llm.MockResponse{Content: quizJSON(t, item("cells", 1), untagged)}), DefaultConfig())
	_, err := g.GenerateQuiz(context.Background(), notes, nil)
	require.ErrorIs(t, err, ErrGeneration)
	var ie *quiz.ItemError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 1, ie.Index)
	assert.Equal(t, "topic", ie.Field)

	// an allow-list assigns a topic before the pool is validated
	g = New(llm.NewMockProvider(llm.MockResponse{Content: quizJSON(t, item("cells", 1), untagged)}), DefaultConfig())
	pool, err := g.GenerateQuiz(context.Background(), notes, []string{"energy"})
	require.NoError(t, err)
	assert.Equal(t, "energy", pool.Topic(1))
}
