package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyforge/internal/mastery"
	"github.com/abhisek/studyforge/internal/store"
)

// weakReport is the --json shape of weak.
type weakReport struct {
	SummaryID  int                     `json:"summary_id"`
	Threshold  float64                 `json:"threshold"`
	Classifier []mastery.TopicAccuracy `json:"classifier"`
	Stored     []store.WeakTopic       `json:"stored"`
	Level      string                  `json:"mastery_level"`
}

var weakCmd = &cobra.Command{
	Use:   "weak <summary-id>",
	Short: "List weak topics across every quiz taken on a summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		threshold, _ := cmd.Flags().GetFloat64("threshold")
		if threshold <= 0 {
			threshold = cfg.Engine.WeakThreshold
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		obs, err := st.ObservationsForSummary(ctx, id)
		if err != nil {
			return err
		}
		c := mastery.NewClassifier(cfg.Mastery)
		c.Train(obs)

		stored, err := st.GetWeakTopics(ctx, id, threshold)
		if err != nil {
			return err
		}

		report := weakReport{
			SummaryID:  id,
			Threshold:  threshold,
			Classifier: c.PredictWeakTopics(threshold),
			Stored:     stored,
			Level:      c.MasteryLevel().String(),
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(out, report)
		}

		if c.Count() == 0 {
			fmt.Fprintf(out, "No quiz results recorded for summary %d yet.\n", id)
			return nil
		}
		fmt.Fprintf(out, "Weak topics for summary %d (below %.0f%%), level %s\n",
			id, threshold*100, report.Level)
		fmt.Fprintln(out, strings.Repeat("─", 60))
		fmt.Fprintf(out, "%-24s  %10s  %14s\n", "Topic", "Classifier", "Stored")
		fmt.Fprintln(out, strings.Repeat("─", 60))

		storedBy := make(map[string]store.WeakTopic, len(stored))
		for _, w := range stored {
			storedBy[w.Topic] = w
		}
		seen := make(map[string]bool)
		for _, t := range report.Classifier {
			seen[t.Topic] = true
			fmt.Fprintf(out, "%-24s  %9.0f%%  %14s\n", truncate(t.Topic, 24), t.Accuracy*100, storedCell(storedBy, t.Topic))
		}
		for _, w := range stored {
			if !seen[w.Topic] {
				fmt.Fprintf(out, "%-24s  %10s  %14s\n", truncate(w.Topic, 24), "-", storedCell(storedBy, w.Topic))
			}
		}
		if len(report.Classifier) == 0 && len(stored) == 0 {
			fmt.Fprintln(out, "None. Every topic is at or above the threshold.")
		}
		return nil
	},
}

func storedCell(by map[string]store.WeakTopic, topic string) string {
	w, ok := by[topic]
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%d/%d %3.0f%%", w.Correct, w.Total, w.Accuracy*100)
}

func init() {
	weakCmd.Flags().Float64("threshold", 0, "Accuracy below which a topic is weak (default: engine.weak_threshold)")
	weakCmd.Flags().Bool("json", false, "Print JSON")
}
