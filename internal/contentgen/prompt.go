package contentgen

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const summarySystemPrompt = `You turn study material into structured notes, similar to a README.md file.

Rules:
- Cover every concept and key point in the material.
- Start each concept with a markdown heading (#, ## or ###) holding a short title.
- Follow the heading with one or two sentences of description.
- List important points, facts and examples as "- " bullets under their heading.
- Do not nest headings inside bullets and do not wrap the output in code fences.
- Keep the language clear and concise.`

const quizSystemPrompt = `You write multiple-choice quizzes from study notes.

Rules:
- Every item has exactly four options labelled A, B, C and D with exactly one correct option.
- Distractors should reflect plausible misunderstandings, not random values.
- answer_explanation says briefly why the correct option is right.
- topic names the main concept the item tests.
- difficulty runs from 1 (direct recall) to 5 (multi-step reasoning).
- prerequisites lists zero-based positions of earlier items in your list that build the
  knowledge this item needs. Use an empty list when there are none.
- Output only the JSON document. No markdown, no commentary.`

const flashcardsSystemPrompt = `You write flashcards from study notes.

Rules:
- Each card has a short question and a concise answer.
- Cover each concept at least once; prefer definitions, contrasts and key facts.
- Output only the JSON document. No markdown, no commentary.`

func summaryMessage(text string) string {
	return "Text to summarize:\n\n" + text
}

func quizMessage(text string, topics []string, maxQuestions int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write up to %d quiz items.\n", maxQuestions)
	if len(topics) > 0 {
		b.WriteString("Only use these topics, spelled exactly as given, and order items from the first topic to the last:\n")
		for i, t := range topics {
			fmt.Fprintf(&b, "%d. %s\n", i+1, t)
		}
	}
	b.WriteString("\nNotes:\n")
	b.WriteString(text)
	return b.String()
}

func flashcardsMessage(text string) string {
	return "Notes:\n\n" + text
}

// clip truncates s to at most n bytes on a rune boundary. n <= 0 means no
// limit.
func clip(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
