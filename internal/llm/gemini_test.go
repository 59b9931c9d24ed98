package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelAliases(t *testing.T) {
	tests := []struct{ in, want string }{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.in, geminiModels); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question":       map[string]any{"type": "string"},
				"correct_option": map[string]any{"type": "string", "enum": []string{"A", "B", "C", "D"}},
				"difficulty":     map[string]any{"type": "integer"},
				"prerequisites":  map[string]any{"type": "array", "items": map[string]any{"type": "integer"}},
			},
			"required": []any{"question", "correct_option"},
		},
		"minItems": 1,
		"maxItems": float64(10),
	}

	s := geminiSchema(def)
	if s.Type != genai.TypeArray {
		t.Fatalf("expected ARRAY, got %s", s.Type)
	}
	if s.MinItems == nil || *s.MinItems != 1 || s.MaxItems == nil || *s.MaxItems != 10 {
		t.Fatalf("unexpected item bounds: %v %v", s.MinItems, s.MaxItems)
	}
	item := s.Items
	if item.Type != genai.TypeObject || len(item.Properties) != 4 {
		t.Fatalf("unexpected item schema: %+v", item)
	}
	if len(item.Properties["correct_option"].Enum) != 4 {
		t.Fatalf("expected 4 enum values, got %v", item.Properties["correct_option"].Enum)
	}
	if item.Properties["prerequisites"].Items.Type != genai.TypeInteger {
		t.Fatalf("expected INTEGER prerequisite items")
	}
	if len(item.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %v", item.Required)
	}
}
