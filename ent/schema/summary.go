package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
)

// Summary is a saved set of study notes that quizzes are generated from.
type Summary struct {
	ent.Schema
}

func (Summary) Fields() []ent.Field {
	return []ent.Field{
		field.String("title").
			NotEmpty().
			Comment("Display title, usually the source file name"),
		field.Text("content").
			Comment("Heading-and-bullet markdown notes"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}

func (Summary) Edges() []ent.Edge {
	return []ent.Edge{
		edge.To("scores", QuizScore.Type).
			Annotations(entsql.OnDelete(entsql.Cascade)),
		edge.To("performance", TopicPerformance.Type).
			Annotations(entsql.OnDelete(entsql.Cascade)),
	}
}
