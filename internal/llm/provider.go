package llm

import (
	"context"
	"encoding/json"
)

// Provider generates text or schema-constrained JSON from a prompt.
type Provider interface {
	// Generate sends req to the model. When req.Schema is set the returned
	// Content is JSON that has been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the resolved model this provider talks to.
	ModelID() string
}

// Request is a single generation call.
type Request struct {
	System   string
	Messages []Message

	// Schema constrains the response. Nil means free text.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero is deterministic.
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema the response must satisfy. Name doubles as
// the tool name (Anthropic) and the response_format name (OpenAI), so it
// should be kebab-case, e.g. "quiz-items".
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the model output plus accounting.
type Response struct {
	// Content is validated JSON when a schema was requested, otherwise the
	// raw text bytes.
	Content json.RawMessage

	Usage Usage
	Model string

	// StopReason is one of "end", "max_tokens", "error".
	StopReason string
}

// Text returns Content as a string. Free-text responses that arrive as a
// JSON string literal are unquoted.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	var s string
	if len(r.Content) > 0 && r.Content[0] == '"' && json.Unmarshal(r.Content, &s) == nil {
		return s
	}
	return string(r.Content)
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
