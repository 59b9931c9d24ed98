package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// SummariesColumns holds the columns for the "summaries" table.
	SummariesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "title", Type: field.TypeString},
		{Name: "content", Type: field.TypeString, Size: 2147483647},
		{Name: "created_at", Type: field.TypeTime},
	}
	// SummariesTable holds the schema information for the "summaries" table.
	SummariesTable = &schema.Table{
		Name:       "summaries",
		Columns:    SummariesColumns,
		PrimaryKey: []*schema.Column{SummariesColumns[0]},
	}

	// QuizScoresColumns holds the columns for the "quiz_scores" table.
	QuizScoresColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "score", Type: field.TypeInt},
		{Name: "total_questions", Type: field.TypeInt},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "summary_id", Type: field.TypeInt},
	}
	// QuizScoresTable holds the schema information for the "quiz_scores" table.
	QuizScoresTable = &schema.Table{
		Name:       "quiz_scores",
		Columns:    QuizScoresColumns,
		PrimaryKey: []*schema.Column{QuizScoresColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "quiz_scores_summaries_scores",
				Columns:    []*schema.Column{QuizScoresColumns[4]},
				RefColumns: []*schema.Column{SummariesColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "quizscore_summary_id", Columns: []*schema.Column{QuizScoresColumns[4]}},
		},
	}

	// TopicPerformanceColumns holds the columns for the "topic_performance" table.
	TopicPerformanceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "topic", Type: field.TypeString},
		{Name: "correct", Type: field.TypeInt},
		{Name: "total", Type: field.TypeInt},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "summary_id", Type: field.TypeInt},
	}
	// TopicPerformanceTable holds the schema information for the "topic_performance" table.
	TopicPerformanceTable = &schema.Table{
		Name:       "topic_performance",
		Columns:    TopicPerformanceColumns,
		PrimaryKey: []*schema.Column{TopicPerformanceColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "topic_performance_summaries_performance",
				Columns:    []*schema.Column{TopicPerformanceColumns[5]},
				RefColumns: []*schema.Column{SummariesColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "topicperformance_summary_id_topic", Columns: []*schema.Column{TopicPerformanceColumns[5], TopicPerformanceColumns[1]}},
		},
	}

	// LLMRequestEventsColumns holds the columns for the "llm_request_events" table.
	LLMRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	// LLMRequestEventsTable holds the schema information for the "llm_request_events" table.
	LLMRequestEventsTable = &schema.Table{
		Name:       "llm_request_events",
		Columns:    LLMRequestEventsColumns,
		PrimaryKey: []*schema.Column{LLMRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{LLMRequestEventsColumns[4]}},
			{Name: "llmrequestevent_timestamp", Columns: []*schema.Column{LLMRequestEventsColumns[1]}},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		SummariesTable,
		QuizScoresTable,
		TopicPerformanceTable,
		LLMRequestEventsTable,
	}
)

func init() {
	QuizScoresTable.ForeignKeys[0].RefTable = SummariesTable
	TopicPerformanceTable.ForeignKeys[0].RefTable = SummariesTable
}
