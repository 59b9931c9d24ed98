package recommend

import "slices"

// Candidate is an unanswered item being scored.
type Candidate struct {
	Index         int
	Topic         string
	Difficulty    int
	Prerequisites []int
}

// Rule is one heuristic factor. When Applies holds, Weight is added to h.
// Negative weights make a candidate more desirable.
type Rule struct {
	Name    string
	Applies func(c *Candidate, l *Learner) bool
	Weight  float64
}

// Rule names, usable as keys for re-weighting.
const (
	RuleWeakTopic      = "weak-topic"
	RuleChallengeHard  = "challenge-hard"
	RuleChallengeEasy  = "challenge-easy"
	RuleStrugglingEasy = "struggling-easy"
	RuleStrugglingHard = "struggling-hard"
	RuleOptimalZone    = "optimal-zone"
	RuleStrongHard     = "strong-hard"
	RuleStrongEasy     = "strong-easy"
	RulePrereqUnmet    = "prereq-unmet"
	RulePrereqMet      = "prereq-met"
	RuleRepeatTopic    = "repeat-topic"
	RuleNewTopic       = "new-topic"
)

// Learner-average cut points used by the difficulty rules.
const (
	challengeAverage  = 0.8
	strugglingAverage = 0.5
	strongAverage     = 0.7
)

// DefaultRules returns the heuristic factors in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		{RuleWeakTopic, func(c *Candidate, l *Learner) bool {
			return l.Weak[c.Topic]
		}, -10},

		// Challenge matching only applies off the weak set.
		{RuleChallengeHard, func(c *Candidate, l *Learner) bool {
			return !l.Weak[c.Topic] && l.Average > challengeAverage && c.Difficulty >= 4
		}, -5},
		{RuleChallengeEasy, func(c *Candidate, l *Learner) bool {
			return !l.Weak[c.Topic] && l.Average > challengeAverage && c.Difficulty < 4
		}, 3},

		{RuleStrugglingEasy, func(c *Candidate, l *Learner) bool {
			return l.Average < strugglingAverage && c.Difficulty <= 2
		}, -5},
		{RuleStrugglingHard, func(c *Candidate, l *Learner) bool {
			return l.Average < strugglingAverage && c.Difficulty >= 4
		}, 8},
		{RuleOptimalZone, func(c *Candidate, l *Learner) bool {
			return l.Average >= strugglingAverage && l.Average < strongAverage &&
				(c.Difficulty == 2 || c.Difficulty == 3)
		}, -7},
		{RuleStrongHard, func(c *Candidate, l *Learner) bool {
			return l.Average >= strongAverage && c.Difficulty >= 4
		}, -6},
		{RuleStrongEasy, func(c *Candidate, l *Learner) bool {
			return l.Average >= strongAverage && c.Difficulty < 4
		}, 5},

		{RulePrereqUnmet, func(c *Candidate, l *Learner) bool {
			return !prerequisitesMet(c, l)
		}, 15},
		{RulePrereqMet, prerequisitesMet, -3},

		{RuleRepeatTopic, func(c *Candidate, l *Learner) bool {
			return l.Recent[c.Topic]
		}, 2},
		{RuleNewTopic, func(c *Candidate, l *Learner) bool {
			return !l.Recent[c.Topic]
		}, -1},
	}
}

// prerequisitesMet holds when the candidate has no prerequisites, any
// prerequisite has been attempted, or nothing has been answered yet.
// Attempted, not answered correctly, is what counts.
func prerequisitesMet(c *Candidate, l *Learner) bool {
	if len(c.Prerequisites) == 0 {
		return true
	}
	if slices.ContainsFunc(c.Prerequisites, func(p int) bool { return l.Answered[p] }) {
		return true
	}
	return len(l.Answered) == 0
}

// Reweight returns a copy of rules with weights replaced by name.
// Unknown names are ignored.
func Reweight(rules []Rule, weights map[string]float64) []Rule {
	out := slices.Clone(rules)
	for i := range out {
		if w, ok := weights[out[i].Name]; ok {
			out[i].Weight = w
		}
	}
	return out
}

// RuleNames lists the names of rules in order.
func RuleNames(rules []Rule) []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.Name
	}
	return out
}
