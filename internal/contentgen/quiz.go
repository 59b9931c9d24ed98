package contentgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/abhisek/studyforge/internal/llm"
	"github.com/abhisek/studyforge/internal/quiz"
)

// itemOutput is one quiz item as the model writes it.
type itemOutput struct {
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	CorrectOption string            `json:"correct_option"`
	Explanation   string            `json:"answer_explanation"`
	Topic         string            `json:"topic"`
	Difficulty    int               `json:"difficulty"`
	Prerequisites []int             `json:"prerequisites"`
}

// GenerateQuiz asks for up to Config.MaxQuestions items over text. When
// topics is non-empty every item's topic is forced into that list: known
// topics are kept, anything else is assigned round-robin over the list.
func (g *Generator) GenerateQuiz(ctx context.Context, text string, topics []string) (*quiz.Pool, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("generate quiz: empty input")
	}
	allowed := normalizeTopics(topics)
	ctx = llm.WithPurpose(ctx, llm.PurposeQuizGen)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      quizSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: quizMessage(clip(text, g.config.MaxInputChars), allowed, g.config.MaxQuestions)}},
		Schema:      QuizSchema,
		MaxTokens:   g.config.QuizMaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, generationError("quiz", err)
	}

	raw, err := decodeList[itemOutput](resp.Content, "items")
	if err != nil {
		return nil, generationError("quiz", err)
	}
	if len(raw) == 0 {
		return nil, generationError("quiz", &ValidationError{Kind: "quiz", Index: -1, Message: "no items"})
	}
	if len(raw) > g.config.MaxQuestions {
		raw = raw[:g.config.MaxQuestions]
	}

	items := make([]quiz.Item, len(raw))
	next := 0
	for i, r := range raw {
		topic := quiz.NormalizeTopic(r.Topic)
		if len(allowed) > 0 && !slices.Contains(allowed, topic) {
			topic = allowed[next%len(allowed)]
			next++
		}
		items[i] = quiz.Item{
			Topic:         topic,
			Question:      strings.TrimSpace(r.Question),
			Options:       toOptions(r.Options),
			CorrectOption: quiz.Label(strings.ToUpper(strings.TrimSpace(r.CorrectOption))),
			Explanation:   strings.TrimSpace(r.Explanation),
			Difficulty:    r.Difficulty,
			Prerequisites: cleanPrerequisites(r.Prerequisites, i, len(raw)),
		}
	}

	pool, err := quiz.NewPool(items)
	if err != nil {
		return nil, generationError("quiz", err)
	}
	return pool, nil
}

func normalizeTopics(topics []string) []string {
	var out []string
	for _, t := range topics {
		t = quiz.NormalizeTopic(t)
		if t != "" && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}

func toOptions(in map[string]string) map[quiz.Label]string {
	out := make(map[quiz.Label]string, len(in))
	for k, v := range in {
		label := quiz.Label(strings.ToUpper(strings.TrimSpace(k)))
		out[label] = strings.TrimSpace(v)
	}
	return out
}

// cleanPrerequisites keeps in-range references to other items, once each.
// Items past the cut and self references are model noise, not shape errors.
func cleanPrerequisites(prereqs []int, self, n int) []int {
	var out []int
	for _, p := range prereqs {
		if p >= 0 && p < n && p != self && !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out
}

// decodeList accepts either {"<key>": [...]} or a bare array.
func decodeList[T any](content json.RawMessage, key string) ([]T, error) {
	content = bytes.TrimSpace(llm.ExtractJSON(string(content)))
	if len(content) > 0 && content[0] == '[' {
		var list []T
		if err := json.Unmarshal(content, &list); err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
		return list, nil
	}
	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(content, &wrapped); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	body, ok := wrapped[key]
	if !ok {
		return nil, fmt.Errorf("decode %s: missing %q field", key, key)
	}
	var list []T
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return list, nil
}
