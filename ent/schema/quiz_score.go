package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// QuizScore is one completed quiz attempt on a summary.
type QuizScore struct {
	ent.Schema
}

func (QuizScore) Fields() []ent.Field {
	return []ent.Field{
		field.Int("score").
			NonNegative().
			Comment("Correct answers"),
		field.Int("total_questions").
			NonNegative().
			Comment("Questions answered"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
		field.Int("summary_id"),
	}
}

func (QuizScore) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("summary", Summary.Type).
			Ref("scores").
			Field("summary_id").
			Unique().
			Required(),
	}
}

func (QuizScore) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("summary_id"),
	}
}
