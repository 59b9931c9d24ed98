package cmd

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyforge/internal/recommend"
)

// recommendReport is the --json shape of recommend.
type recommendReport struct {
	Current      int                             `json:"current"`
	Next         int                             `json:"next"`
	Done         bool                            `json:"done"`
	WeakTopics   []string                        `json:"weak_topics"`
	ReviewOrder  []string                        `json:"review_order"`
	Performance  map[string]recommend.TopicScore `json:"performance"`
	Alternatives []recommend.Scored              `json:"alternatives,omitempty"`
}

var recommendCmd = &cobra.Command{
	Use:   "recommend <quiz.json>",
	Short: "Pick the next question for a learner's answer history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		qf, err := loadQuizFile(cmd, args[0])
		if err != nil {
			return err
		}

		history := map[int]float64{}
		if path, _ := cmd.Flags().GetString("history"); path != "" {
			data, err := readInput(cmd, path)
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}
			if err := json.Unmarshal(data, &history); err != nil {
				return fmt.Errorf("decode history: %w", err)
			}
		}
		answered, _ := cmd.Flags().GetIntSlice("answered")
		if len(answered) == 0 {
			answered = slices.Sorted(maps.Keys(history))
		}
		current, _ := cmd.Flags().GetInt("current")

		r, err := recommend.New(qf.Pool, cfg.RecommendOptions()...)
		if err != nil {
			return err
		}

		next := r.SelectNext(current, history, answered)
		report := recommendReport{
			Current:     current,
			Next:        next,
			Done:        next >= qf.Pool.Len(),
			WeakTopics:  r.WeakTopics(history),
			ReviewOrder: r.ReviewTopicsByWeakness(history),
			Performance: r.PerformanceSummary(history),
		}
		explain, _ := cmd.Flags().GetBool("explain")
		if explain {
			report.Alternatives = r.Explain(current, history, answered)
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(out, report)
		}

		if report.Done {
			fmt.Fprintln(out, "No questions left after this point.")
		} else {
			item, _ := qf.Pool.At(next)
			fmt.Fprintf(out, "Next: #%d [%s, difficulty %d]\n", next, item.Topic, qf.Pool.DifficultyOf(next, 0))
			fmt.Fprintln(out, item.Question)
		}
		if len(report.WeakTopics) > 0 {
			fmt.Fprintf(out, "\nWeak topics: %s\n", strings.Join(report.WeakTopics, ", "))
		}
		if len(report.ReviewOrder) > 0 {
			fmt.Fprintf(out, "Review order: %s\n", strings.Join(report.ReviewOrder, " > "))
		}
		if explain && len(report.Alternatives) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintf(out, "%-5s  %-20s  %6s  %7s  %7s  %s\n", "Item", "Topic", "g", "h", "f", "Rules")
			fmt.Fprintln(out, strings.Repeat("─", 72))
			for _, s := range report.Alternatives {
				fmt.Fprintf(out, "%-5d  %-20s  %6.0f  %7.1f  %7.1f  %s\n",
					s.Index, truncate(s.Topic, 20), s.G, s.H, s.F, strings.Join(s.Rules, ", "))
			}
		}
		return nil
	},
}

func init() {
	recommendCmd.Flags().Int("current", -1, "Index of the question just asked (-1 before the first)")
	recommendCmd.Flags().String("history", "", `JSON file of item index to score, e.g. {"0": 1, "2": 0}`)
	recommendCmd.Flags().IntSlice("answered", nil, "Answered item indices in order (default: history keys)")
	recommendCmd.Flags().Bool("explain", false, "Show every candidate with its cost breakdown")
	recommendCmd.Flags().Bool("json", false, "Print JSON")
}
