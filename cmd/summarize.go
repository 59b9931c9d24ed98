package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyforge/internal/concepts"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <file|->",
	Short: "Summarize source text into study notes and save them",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		data, err := readInput(cmd, args[0])
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		title, _ := cmd.Flags().GetString("title")
		if title == "" {
			title = defaultTitle(args[0])
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		gen, err := newGenerator(ctx, st)
		if err != nil {
			return err
		}

		log.Info("summarizing", "title", title, "chars", len(data))
		notes, err := gen.Summarize(ctx, string(data))
		if err != nil {
			return err
		}

		id, err := st.SaveSummary(ctx, title, notes)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
			fmt.Fprintln(out, notes)
			fmt.Fprintln(out)
		}
		stats := concepts.Extract(notes).Stats()
		fmt.Fprintf(out, "Saved summary %d %q (%d concepts, %d subtopics)\n",
			id, title, stats.MainConcepts, stats.Subtopics)
		return nil
	},
}

func defaultTitle(path string) string {
	if path == "-" {
		return "stdin"
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

var summariesCmd = &cobra.Command{
	Use:   "summaries",
	Short: "Manage saved summaries",
}

var summariesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved summaries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		list, err := st.ListSummaries(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(list) == 0 {
			fmt.Fprintln(out, "No summaries saved yet.")
			return nil
		}
		fmt.Fprintf(out, "%-5s  %-19s  %s\n", "ID", "Created", "Title")
		fmt.Fprintln(out, strings.Repeat("─", 60))
		for _, s := range list {
			fmt.Fprintf(out, "%-5d  %-19s  %s\n", s.ID, s.CreatedAt.Local().Format("2006-01-02 15:04:05"), s.Title)
		}
		return nil
	},
}

var summariesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a saved summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		s, err := st.GetSummary(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get summary %d: %w", id, err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# %s\n\n", s.Title)
		fmt.Fprintln(out, s.Content)
		return nil
	},
}

var summariesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a summary with its quiz scores and topic records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.DeleteSummary(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted summary %d\n", id)
		return nil
	},
}

func init() {
	summarizeCmd.Flags().StringP("title", "t", "", "Summary title (default: file name)")
	summarizeCmd.Flags().BoolP("quiet", "q", false, "Do not print the notes")

	summariesCmd.AddCommand(summariesListCmd)
	summariesCmd.AddCommand(summariesShowCmd)
	summariesCmd.AddCommand(summariesDeleteCmd)
}
