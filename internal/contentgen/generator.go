// Package contentgen produces the study content the quiz engine consumes:
// structured notes, multiple-choice quiz pools and flashcards. Every call
// goes through an llm.Provider and is validated before it is returned.
package contentgen

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/studyforge/internal/llm"
	"github.com/abhisek/studyforge/internal/quiz"
)

type Generator struct {
	provider llm.Provider
	config   Config
}

func New(provider llm.Provider, cfg Config) *Generator {
	if cfg.MaxQuestions <= 0 {
		cfg.MaxQuestions = DefaultConfig().MaxQuestions
	}
	return &Generator{provider: provider, config: cfg}
}

// Summarize rewrites source text as heading-and-bullet notes.
func (g *Generator) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", errors.New("summarize: empty input")
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeSummary)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      summarySystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: summaryMessage(clip(text, g.config.MaxInputChars))}},
		MaxTokens:   g.config.SummaryMaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return "", generationError("summary", err)
	}

	notes := stripFence(resp.Text())
	if notes == "" {
		return "", generationError("summary", &ValidationError{Kind: "summary", Index: -1, Message: "model returned no text"})
	}
	return notes, nil
}

// StudySet is a quiz pool and flashcards generated from the same notes.
type StudySet struct {
	Pool       *quiz.Pool
	Flashcards []Flashcard
}

// GenerateStudySet runs GenerateQuiz and GenerateFlashcards concurrently.
// The first failure cancels the other request.
func (g *Generator) GenerateStudySet(ctx context.Context, text string, topics []string) (*StudySet, error) {
	var set StudySet
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		pool, err := g.GenerateQuiz(ctx, text, topics)
		set.Pool = pool
		return err
	})
	eg.Go(func() error {
		cards, err := g.GenerateFlashcards(ctx, text)
		set.Flashcards = cards
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return &set, nil
}

// stripFence removes a ```markdown wrapper some models add around notes.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], " #-*") {
		s = s[nl+1:]
	}
	return strings.TrimSpace(s)
}
