package concepts

// Visit is one step of a depth-annotated traversal. Depth 0 is a main
// concept, depth 1 a subtopic.
type Visit struct {
	Name  string `json:"name"`
	Depth int    `json:"depth"`
}

// Traverse walks the map depth first with an explicit stack. Each name is
// visited once: a subtopic that shares a main concept's name is expanded
// at most once, so cross-linked notes cannot loop.
func (m *Map) Traverse() []Visit {
	var out []Visit
	visited := make(map[string]bool)

	for _, root := range m.nodes {
		if visited[root.Name] {
			continue
		}
		stack := []Visit{{Name: root.Name}}
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[v.Name] {
				continue
			}
			visited[v.Name] = true
			out = append(out, v)

			subs, ok := m.Subtopics(v.Name)
			if !ok {
				continue
			}
			// push in reverse so subtopics pop in source order
			for j := len(subs) - 1; j >= 0; j-- {
				if !visited[subs[j]] {
					stack = append(stack, Visit{Name: subs[j], Depth: v.Depth + 1})
				}
			}
		}
	}
	return out
}
