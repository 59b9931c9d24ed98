// Package concepts extracts a two-level concept hierarchy from structured
// study notes and derives topic views and statistics from it.
package concepts

import (
	"slices"
	"strings"
)

// ConceptNode is a main concept and its subtopics in source order.
type ConceptNode struct {
	Name      string   `json:"name"`
	Subtopics []string `json:"subtopics"`
}

// Depth is the number of subtopics.
func (n ConceptNode) Depth() int { return len(n.Subtopics) }

// Map is an ordered concept map. Iteration order is first-seen order of
// each heading.
type Map struct {
	nodes []ConceptNode
	index map[string]int
}

// NewMap returns an empty map.
func NewMap() *Map {
	return &Map{index: make(map[string]int)}
}

// Extract scans text line by line. Headings (a leading run of '#') start
// a concept; bullets ("- ", "* ") and fully bold lines append a subtopic
// to the current concept. Lines before the first heading are dropped.
// Headings never nest: every level is a peer.
func Extract(text string) *Map {
	m := NewMap()
	current := ""
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if name, ok := heading(line); ok {
			m.reset(name)
			current = name
			continue
		}
		sub, ok := subtopic(line)
		if !ok || current == "" {
			continue
		}
		m.appendSub(current, sub)
	}
	return m
}

func heading(line string) (string, bool) {
	if !strings.HasPrefix(line, "#") {
		return "", false
	}
	name := strings.TrimSpace(strings.TrimLeft(line, "#"))
	if name == "" {
		return "", false
	}
	return name, true
}

func subtopic(line string) (string, bool) {
	switch {
	case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
		s := strings.TrimSpace(line[2:])
		return s, s != ""
	case len(line) > 4 && strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**"):
		s := strings.TrimSpace(strings.ReplaceAll(line, "**", ""))
		return s, s != ""
	}
	return "", false
}

// reset inserts name with no subtopics. A repeated heading keeps its
// original position and drops the subtopics collected so far.
func (m *Map) reset(name string) {
	if i, ok := m.index[name]; ok {
		m.nodes[i].Subtopics = nil
		return
	}
	m.index[name] = len(m.nodes)
	m.nodes = append(m.nodes, ConceptNode{Name: name})
}

func (m *Map) appendSub(name, sub string) {
	i := m.index[name]
	m.nodes[i].Subtopics = append(m.nodes[i].Subtopics, sub)
}

// Len returns the number of main concepts.
func (m *Map) Len() int { return len(m.nodes) }

// Nodes returns a copy of the concept nodes in map order.
func (m *Map) Nodes() []ConceptNode {
	out := make([]ConceptNode, len(m.nodes))
	for i, n := range m.nodes {
		out[i] = ConceptNode{Name: n.Name, Subtopics: slices.Clone(n.Subtopics)}
	}
	return out
}

// Subtopics returns the subtopics of name.
func (m *Map) Subtopics(name string) ([]string, bool) {
	i, ok := m.index[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(m.nodes[i].Subtopics), true
}

// Names returns the main concept names in map order.
func (m *Map) Names() []string {
	out := make([]string, len(m.nodes))
	for i, n := range m.nodes {
		out[i] = n.Name
	}
	return out
}

// DFSOrder flattens the map: each main concept immediately followed by
// its subtopics, in map order. Nothing is de-duplicated.
func (m *Map) DFSOrder() []string {
	var out []string
	for _, n := range m.nodes {
		out = append(out, n.Name)
		out = append(out, n.Subtopics...)
	}
	return out
}
