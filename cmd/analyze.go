package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyforge/internal/concepts"
	"github.com/abhisek/studyforge/internal/planner"
)

// analysisReport is the --json shape of analyze.
type analysisReport struct {
	concepts.Analysis
	Bands    planner.Bands `json:"difficulty_bands"`
	Sequence []string      `json:"progressive_sequence"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [notes.md|-]",
	Short: "Show the concept map, topic difficulty and study order of notes",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := notesText(cmd, args)
		if err != nil {
			return err
		}

		a := concepts.Analyze(text)
		p := cfg.Planner()
		// only main concepts are clustered; subtopics travel with them
		report := analysisReport{
			Analysis: a,
			Bands:    p.ClusterByDifficulty(a.Stats.AllTopics),
		}
		report.Sequence = report.Bands.Sequence()

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(out, report)
		}
		printAnalysis(out, report)
		return nil
	},
}

// notesText reads notes from the file argument or from --summary.
func notesText(cmd *cobra.Command, args []string) (string, error) {
	summaryID, _ := cmd.Flags().GetInt("summary")
	switch {
	case summaryID > 0 && len(args) > 0:
		return "", fmt.Errorf("give either a file or --summary, not both")
	case summaryID > 0:
		st, err := openStore()
		if err != nil {
			return "", err
		}
		defer st.Close()
		sum, err := st.GetSummary(cmd.Context(), summaryID)
		if err != nil {
			return "", fmt.Errorf("get summary %d: %w", summaryID, err)
		}
		return sum.Content, nil
	case len(args) == 1:
		data, err := readInput(cmd, args[0])
		if err != nil {
			return "", fmt.Errorf("read notes: %w", err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("no notes given: pass a file, - for stdin, or --summary")
}

func printAnalysis(w io.Writer, r analysisReport) {
	sep := strings.Repeat("─", 60)

	fmt.Fprintln(w, "Concept Map")
	fmt.Fprintln(w, sep)
	if len(r.Topics) == 0 {
		fmt.Fprintln(w, "(no headings found)")
	}
	for _, t := range r.Topics {
		band, _ := r.Bands.BandOf(t.Main)
		fmt.Fprintf(w, "%2d. %s  [%s, %s band]\n", t.Order, t.Main, concepts.DifficultyOf(t), band)
		for _, sub := range t.Subtopics {
			fmt.Fprintf(w, "      - %s\n", sub)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Main concepts: %d   Subtopics: %d\n", r.Stats.MainConcepts, r.Stats.Subtopics)
	fmt.Fprintf(w, "Complexity: %d simple, %d moderate, %d complex\n",
		r.Stats.Simple, r.Stats.Moderate, r.Stats.Complex)

	if len(r.DFSOrder) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Depth-first order")
		fmt.Fprintln(w, sep)
		fmt.Fprintln(w, strings.Join(r.DFSOrder, " > "))
	}

	if len(r.Traversal) > 0 && len(r.Traversal) < len(r.DFSOrder) {
		fmt.Fprintf(w, "(%d distinct topics; repeated names are visited once)\n", len(r.Traversal))
		for _, v := range r.Traversal {
			fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", v.Depth), v.Name)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Difficulty bands")
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "Easy:   %s\n", strings.Join(r.Bands.Easy, ", "))
	fmt.Fprintf(w, "Medium: %s\n", strings.Join(r.Bands.Medium, ", "))
	fmt.Fprintf(w, "Hard:   %s\n", strings.Join(r.Bands.Hard, ", "))

	if len(r.Sequence) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Suggested study sequence")
		fmt.Fprintln(w, sep)
		for i, t := range r.Sequence {
			fmt.Fprintf(w, "%2d. %s\n", i+1, t)
		}
	}
}

func init() {
	analyzeCmd.Flags().Int("summary", 0, "Analyze a saved summary instead of a file")
	analyzeCmd.Flags().Bool("json", false, "Print JSON")
}
