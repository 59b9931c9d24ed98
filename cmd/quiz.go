package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyforge/internal/app"
	"github.com/abhisek/studyforge/internal/quiz"
	"github.com/abhisek/studyforge/internal/session"
	"github.com/abhisek/studyforge/internal/sessionstore"
	"github.com/abhisek/studyforge/internal/store"
)

var quizCmd = &cobra.Command{
	Use:   "quiz <quiz.json>",
	Short: "Take a quiz interactively",
	Long: "Take a quiz in the terminal. Questions are picked adaptively after each answer.\n" +
		"Use the start, answer and status subcommands to step through a quiz one answer per call.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		qf, err := loadQuizFile(cmd, args[0])
		if err != nil {
			return err
		}
		summaryID := quizSummaryID(cmd, qf)

		engine, err := session.New(qf.Pool, cfg.SessionOptions())
		if err != nil {
			return err
		}

		state, err := app.Run(ctx, engine, quiz.SessionState{})
		if err != nil {
			return err
		}
		sum := engine.Summarize(state)
		printSummary(cmd.OutOrStdout(), sum)
		return recordResults(ctx, summaryID, sum)
	},
}

var quizStartCmd = &cobra.Command{
	Use:   "start <quiz.json>",
	Short: "Start a quiz session and print the first question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		qf, err := loadQuizFile(cmd, args[0])
		if err != nil {
			return err
		}
		engine, err := session.New(qf.Pool, cfg.SessionOptions())
		if err != nil {
			return err
		}

		sessions, closeSessions, err := openSessions(ctx)
		if err != nil {
			return err
		}
		defer closeSessions()

		rec := &sessionstore.Record{
			State:     engine.Start(),
			Pool:      qf.Pool,
			SummaryID: quizSummaryID(cmd, qf),
		}
		if err := sessions.Save(ctx, rec); err != nil {
			return err
		}
		log.Debug("session started", "session_id", rec.State.ID, "questions", qf.Pool.Len())

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Session %s\n\n", rec.State.ID)
		printCurrent(out, engine, rec.State)
		return nil
	},
}

var quizAnswerCmd = &cobra.Command{
	Use:   "answer <session-id> <A-D>",
	Short: "Answer the current question of a session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		option, ok := quiz.ParseLabel(args[1])
		if !ok {
			return fmt.Errorf("option must be one of A, B, C, D; got %q", args[1])
		}

		sessions, closeSessions, err := openSessions(ctx)
		if err != nil {
			return err
		}
		defer closeSessions()

		rec, err := sessions.Load(ctx, args[0])
		if err != nil {
			return err
		}
		engine, err := session.New(rec.Pool, cfg.SessionOptions())
		if err != nil {
			return err
		}

		state, outcome, err := engine.Answer(rec.State, option)
		if err != nil {
			return err
		}
		rec.State = engine.Advance(state)

		out := cmd.OutOrStdout()
		printOutcome(out, outcome)

		if !engine.Done(rec.State) {
			if err := sessions.Save(ctx, rec); err != nil {
				return err
			}
			fmt.Fprintln(out)
			printCurrent(out, engine, rec.State)
			return nil
		}

		sum := engine.Summarize(rec.State)
		fmt.Fprintln(out)
		printSummary(out, sum)
		if err := recordResults(ctx, rec.SummaryID, sum); err != nil {
			return err
		}
		return sessions.Delete(ctx, rec.State.ID)
	},
}

var quizStatusCmd = &cobra.Command{
	Use:   "status <session-id>",
	Short: "Show progress and the current question of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		sessions, closeSessions, err := openSessions(ctx)
		if err != nil {
			return err
		}
		defer closeSessions()

		rec, err := sessions.Load(ctx, args[0])
		if err != nil {
			return err
		}
		engine, err := session.New(rec.Pool, cfg.SessionOptions())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(out, rec.State)
		}
		s := rec.State
		fmt.Fprintf(out, "Session %s\n", s.ID)
		fmt.Fprintf(out, "Answered %d of %d, %d correct, level %s\n",
			len(s.Answered), rec.Pool.Len(), s.Correct(), s.MasteryLevel)
		if len(s.WeakTopics) > 0 {
			fmt.Fprintf(out, "Weak topics: %s\n", strings.Join(s.WeakTopics, ", "))
		}
		fmt.Fprintln(out)
		printCurrent(out, engine, s)
		return nil
	},
}

func quizSummaryID(cmd *cobra.Command, qf *quizFile) int {
	if id, _ := cmd.Flags().GetInt("summary"); id > 0 {
		return id
	}
	return qf.SummaryID
}

// openSessions returns the Redis store when one is configured, else the
// file store.
func openSessions(ctx context.Context) (sessionstore.Store, func(), error) {
	if url := cfg.Session.RedisURL; url != "" {
		r, err := sessionstore.NewRedis(ctx, url, cfg.Session.TTL)
		if err != nil {
			return nil, nil, err
		}
		return r, func() { r.Close() }, nil
	}
	dir := cfg.Session.Dir
	if dir == "" {
		d, err := sessionstore.DefaultDir()
		if err != nil {
			return nil, nil, err
		}
		dir = d
	}
	f, err := sessionstore.NewFile(dir, cfg.Session.TTL)
	if err != nil {
		return nil, nil, err
	}
	return f, func() {}, nil
}

// recordResults files a finished quiz under its summary. Quizzes with no
// summary or no answers are not recorded.
func recordResults(ctx context.Context, summaryID int, sum session.Summary) error {
	if summaryID <= 0 || sum.Answered == 0 {
		return nil
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()
	return saveResults(ctx, st, summaryID, sum)
}

func saveResults(ctx context.Context, st *store.Store, summaryID int, sum session.Summary) error {
	if err := st.SaveQuizScore(ctx, summaryID, sum.Correct, sum.Answered); err != nil {
		return fmt.Errorf("save quiz score: %w", err)
	}
	if err := st.SaveTopicRecords(ctx, summaryID, sum.Topics); err != nil {
		return fmt.Errorf("save topic results: %w", err)
	}
	log.Info("quiz recorded", "summary_id", summaryID, "session_id", sum.SessionID,
		"score", sum.Correct, "answered", sum.Answered)
	return nil
}

func printCurrent(w io.Writer, engine *session.Engine, s quiz.SessionState) {
	item, ok := engine.Current(s)
	if !ok {
		fmt.Fprintln(w, "All questions answered.")
		return
	}
	fmt.Fprintf(w, "Q%d of %d  [%s]\n", len(s.Answered)+1, engine.Pool().Len(), item.Topic)
	fmt.Fprintln(w, item.Question)
	for _, l := range item.OrderedOptions() {
		fmt.Fprintf(w, "  %s) %s\n", l, item.Options[l])
	}
}

func printOutcome(w io.Writer, o session.Outcome) {
	if o.Correct {
		fmt.Fprintln(w, "Correct!")
	} else {
		fmt.Fprintf(w, "Not quite. You chose %s, the answer is %s.\n", o.Chosen, o.CorrectOption)
	}
	if o.Explanation != "" {
		fmt.Fprintln(w, o.Explanation)
	}
}

func printSummary(w io.Writer, sum session.Summary) {
	sep := strings.Repeat("─", 48)
	fmt.Fprintln(w, "Quiz summary")
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "Answered %d of %d, %d correct (%.0f%%)\n",
		sum.Answered, sum.TotalQuestions, sum.Correct, sum.Score*100)
	fmt.Fprintf(w, "Level: %s   Rank: %s\n", sum.MasteryLevel, sum.Rank)
	if len(sum.Topics) > 0 {
		fmt.Fprintln(w)
		for _, t := range sum.Topics {
			fmt.Fprintf(w, "  %-24s %d/%d  %3.0f%%\n", t.Topic, t.Correct, t.Total, t.Accuracy()*100)
		}
	}
	if len(sum.WeakTopics) > 0 {
		names := make([]string, len(sum.WeakTopics))
		for i, wt := range sum.WeakTopics {
			names[i] = wt.Topic
		}
		fmt.Fprintf(w, "\nReview first: %s\n", strings.Join(names, ", "))
	}
}

func init() {
	quizCmd.PersistentFlags().Int("summary", 0, "File results under this summary (default: from the quiz file)")
	quizStatusCmd.Flags().Bool("json", false, "Print the session state as JSON")

	quizCmd.AddCommand(quizStartCmd)
	quizCmd.AddCommand(quizAnswerCmd)
	quizCmd.AddCommand(quizStatusCmd)
}
