package concepts

import "slices"

// Difficulty is a static complexity proxy derived from subtopic count.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// Topic is a numbered view of a ConceptNode.
type Topic struct {
	Order     int      `json:"order"`
	Main      string   `json:"main"`
	Subtopics []string `json:"subtopics"`
	Depth     int      `json:"depth"`
}

// Topics numbers the concepts from 1 in map order.
func (m *Map) Topics() []Topic {
	out := make([]Topic, 0, len(m.nodes))
	for i, n := range m.nodes {
		out = append(out, Topic{
			Order:     i + 1,
			Main:      n.Name,
			Subtopics: slices.Clone(n.Subtopics),
			Depth:     n.Depth(),
		})
	}
	return out
}

// DifficultyOf is Easy for no subtopics, Medium for 1-3 and Hard above.
func DifficultyOf(t Topic) Difficulty {
	switch {
	case t.Depth == 0:
		return Easy
	case t.Depth <= 3:
		return Medium
	default:
		return Hard
	}
}

// Stats summarises the shape of a concept map.
type Stats struct {
	MainConcepts int `json:"main_concepts"`
	Subtopics    int `json:"subtopics"`

	// Complexity histogram: simple has no subtopics, moderate 1-3,
	// complex more than 3.
	Simple   int `json:"simple"`
	Moderate int `json:"moderate"`
	Complex  int `json:"complex"`

	// AllTopics lists the main concepts in map order. These are the names
	// the difficulty planner clusters.
	AllTopics   []string            `json:"all_topics"`
	SubtopicMap map[string][]string `json:"subtopic_map"`
}

// Stats computes relationship statistics over the map.
func (m *Map) Stats() Stats {
	s := Stats{
		MainConcepts: len(m.nodes),
		SubtopicMap:  make(map[string][]string, len(m.nodes)),
	}
	for _, n := range m.nodes {
		s.AllTopics = append(s.AllTopics, n.Name)
		s.Subtopics += n.Depth()
		s.SubtopicMap[n.Name] = slices.Clone(n.Subtopics)
		switch DifficultyOf(Topic{Depth: n.Depth()}) {
		case Easy:
			s.Simple++
		case Medium:
			s.Moderate++
		default:
			s.Complex++
		}
	}
	return s
}

// Analysis bundles every derived view of one note text.
type Analysis struct {
	Concepts []ConceptNode `json:"concepts"`
	Topics   []Topic       `json:"topics"`
	DFSOrder []string      `json:"dfs_order"`

	// Traversal visits each name once with its depth.
	Traversal []Visit `json:"traversal"`
	Stats     Stats   `json:"stats"`
}

// Analyze extracts the concept map from text and derives all views.
func Analyze(text string) Analysis {
	m := Extract(text)
	return Analysis{
		Concepts:  m.Nodes(),
		Topics:    m.Topics(),
		DFSOrder:  m.DFSOrder(),
		Traversal: m.Traverse(),
		Stats:     m.Stats(),
	}
}
