package recommend

import (
	"fmt"
	"slices"
)

// WeakTopics returns topics whose mean score is below the weak
// threshold, in first-seen order.
func (r *Recommender) WeakTopics(history map[int]float64) []string {
	order, scores := topicScores(r.pool, history)
	var out []string
	for _, t := range order {
		if mean(scores[t]) < r.weakThreshold {
			out = append(out, t)
		}
	}
	return out
}

// ReviewTopicsByWeakness returns every answered topic, worst mean score
// first. Equal scores keep first-seen order.
func (r *Recommender) ReviewTopicsByWeakness(history map[int]float64) []string {
	order, scores := topicScores(r.pool, history)
	out := slices.Clone(order)
	slices.SortStableFunc(out, func(a, b string) int {
		ma, mb := mean(scores[a]), mean(scores[b])
		switch {
		case ma < mb:
			return -1
		case ma > mb:
			return 1
		}
		return 0
	})
	return out
}

// TopicScore is one row of a performance summary.
type TopicScore struct {
	Correct int    `json:"correct"`
	Total   int    `json:"total"`
	Score   string `json:"score"`
}

// PerformanceSummary tallies correct and total answers per topic.
func (r *Recommender) PerformanceSummary(history map[int]float64) map[string]TopicScore {
	order, scores := topicScores(r.pool, history)
	out := make(map[string]TopicScore, len(order))
	for _, t := range order {
		var ts TopicScore
		for _, s := range scores[t] {
			ts.Total++
			if s == 1.0 {
				ts.Correct++
			}
		}
		ts.Score = fmt.Sprintf("%.0f%%", float64(ts.Correct)/float64(ts.Total)*100)
		out[t] = ts
	}
	return out
}
