package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyforge/internal/mastery"
	"github.com/abhisek/studyforge/internal/store"
)

// statsReport is the --json shape of stats.
type statsReport struct {
	Summary store.Summary      `json:"summary"`
	Stats   store.SummaryStats `json:"stats"`
	Level   string             `json:"mastery_level"`
	Rank    string             `json:"rank"`
	Scores  []store.QuizScore  `json:"scores"`
}

var statsCmd = &cobra.Command{
	Use:   "stats <summary-id>",
	Short: "Show quiz history and progress for a summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		sum, err := st.GetSummary(ctx, id)
		if err != nil {
			return fmt.Errorf("get summary %d: %w", id, err)
		}
		stats, err := st.GetSummaryStats(ctx, id)
		if err != nil {
			return err
		}
		scores, err := st.QuizScoresBySummary(ctx, id)
		if err != nil {
			return err
		}

		report := statsReport{
			Summary: store.Summary{ID: sum.ID, Title: sum.Title, CreatedAt: sum.CreatedAt},
			Stats:   stats,
			Level:   cfg.Mastery.LevelFor(stats.AverageScore).String(),
			Rank:    mastery.Rank(stats.AverageScore, stats.Attempts),
			Scores:  scores,
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(out, report)
		}

		fmt.Fprintf(out, "%s (summary %d)\n", sum.Title, sum.ID)
		fmt.Fprintln(out, strings.Repeat("─", 48))
		if stats.Attempts == 0 {
			fmt.Fprintln(out, "No quizzes taken yet.")
			return nil
		}
		fmt.Fprintf(out, "Attempts: %d   Average: %.0f%%   Best: %.0f%%\n",
			stats.Attempts, stats.AverageScore*100, stats.BestScore*100)
		fmt.Fprintf(out, "Level: %s   Rank: %s\n", report.Level, report.Rank)
		fmt.Fprintln(out)
		for _, s := range scores {
			fmt.Fprintf(out, "  %s  %d/%d  %3.0f%%\n",
				s.CreatedAt.Local().Format("2006-01-02 15:04"), s.Score, s.TotalQuestions, s.Ratio()*100)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Bool("json", false, "Print JSON")
}
