package store

import (
	"testing"

	"entgo.io/ent"
	"github.com/stretchr/testify/assert"

	entschema "github.com/abhisek/studyforge/ent/schema"
)

func TestTablesMatchEntSchema(t *testing.T) {
	cases := []struct {
		table  string
		fields []ent.Field
	}{
		{"summaries", entschema.Summary{}.Fields()},
		{"quiz_scores", entschema.QuizScore{}.Fields()},
		{"topic_performance", entschema.TopicPerformance{}.Fields()},
		{"llm_request_events", entschema.LLMRequestEvent{}.Fields()},
	}

	byName := make(map[string]map[string]bool)
	for _, tbl := range Tables {
		cols := make(map[string]bool)
		for _, c := range tbl.Columns {
			cols[c.Name] = true
		}
		byName[tbl.Name] = cols
	}

	for _, tc := range cases {
		cols, ok := byName[tc.table]
		if !ok {
			t.Errorf("table %q missing from migration set", tc.table)
			continue
		}
		// +1 for the implicit id column.
		assert.Len(t, cols, len(tc.fields)+1, "column count for %s", tc.table)
		for _, f := range tc.fields {
			name := f.Descriptor().Name
			assert.True(t, cols[name], "%s.%s declared in ent schema but not migrated", tc.table, name)
		}
	}
}
