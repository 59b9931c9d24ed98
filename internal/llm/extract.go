package llm

import (
	"encoding/json"
	"strings"
)

// ExtractJSON pulls a JSON document out of model text. Models asked for
// JSON in free-text mode often wrap it in ``` fences or add a sentence
// before it. The outermost array or object is returned; when neither
// delimiter pair is present the trimmed text is returned unchanged.
func ExtractJSON(text string) json.RawMessage {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], "[{") {
			s = s[nl+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}
	if json.Valid([]byte(s)) {
		return json.RawMessage(s)
	}

	start := strings.IndexAny(s, "[{")
	for start >= 0 {
		closer := byte('}')
		if s[start] == '[' {
			closer = ']'
		}
		if end := strings.LastIndexByte(s, closer); end > start && json.Valid([]byte(s[start:end+1])) {
			return json.RawMessage(s[start : end+1])
		}
		next := strings.IndexAny(s[start+1:], "[{")
		if next < 0 {
			break
		}
		start += next + 1
	}
	return json.RawMessage(s)
}
