package contentgen

import (
	"context"
	"errors"
	"strings"

	"github.com/abhisek/studyforge/internal/llm"
)

type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// GenerateFlashcards asks for question/answer cards over text.
func (g *Generator) GenerateFlashcards(ctx context.Context, text string) ([]Flashcard, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("generate flashcards: empty input")
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeFlashcards)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      flashcardsSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: flashcardsMessage(clip(text, g.config.MaxInputChars))}},
		Schema:      FlashcardSchema,
		MaxTokens:   g.config.FlashcardsMaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, generationError("flashcards", err)
	}

	cards, err := decodeList[Flashcard](resp.Content, "cards")
	if err != nil {
		return nil, generationError("flashcards", err)
	}
	if len(cards) == 0 {
		return nil, generationError("flashcards", &ValidationError{Kind: "flashcards", Index: -1, Message: "no cards"})
	}
	for i := range cards {
		cards[i].Question = strings.TrimSpace(cards[i].Question)
		cards[i].Answer = strings.TrimSpace(cards[i].Answer)
		if cards[i].Question == "" || cards[i].Answer == "" {
			return nil, generationError("flashcards", &ValidationError{Kind: "flashcards", Index: i, Message: "question and answer must be non-empty"})
		}
	}
	return cards, nil
}
