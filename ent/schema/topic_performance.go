package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// TopicPerformance is the per-topic tally of one quiz attempt. Weak topic
// queries aggregate these rows across attempts.
type TopicPerformance struct {
	ent.Schema
}

func (TopicPerformance) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "topic_performance"},
	}
}

func (TopicPerformance) Fields() []ent.Field {
	return []ent.Field{
		field.String("topic").
			Comment("Lower-cased topic tag"),
		field.Int("correct").
			NonNegative(),
		field.Int("total").
			NonNegative(),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
		field.Int("summary_id"),
	}
}

func (TopicPerformance) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("summary", Summary.Type).
			Ref("performance").
			Field("summary_id").
			Unique().
			Required(),
	}
}

func (TopicPerformance) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("summary_id", "topic"),
	}
}
