package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyforge/internal/concepts"
	"github.com/abhisek/studyforge/internal/quiz"
	"github.com/abhisek/studyforge/internal/store"
)

// quizFile is what generate writes and quiz reads. A bare JSON array of
// items is accepted too.
type quizFile struct {
	SummaryID int        `json:"summary_id,omitempty"`
	Topics    []string   `json:"topics,omitempty"`
	Pool      *quiz.Pool `json:"items"`
}

func loadQuizFile(cmd *cobra.Command, path string) (*quizFile, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, fmt.Errorf("read quiz: %w", err)
	}
	var qf quizFile
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		qf.Pool = new(quiz.Pool)
		err = json.Unmarshal(trimmed, qf.Pool)
	} else {
		err = json.Unmarshal(data, &qf)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if qf.Pool == nil || qf.Pool.Len() == 0 {
		return nil, fmt.Errorf("%s holds no questions", path)
	}
	return &qf, nil
}

var generateCmd = &cobra.Command{
	Use:   "generate <summary-id>",
	Short: "Generate a quiz from a saved summary, aimed at weak topics when known",
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

		topics, _ := cmd.Flags().GetStringSlice("topics")
		if len(topics) == 0 {
			if topics, err = focusTopics(cmd, st, id, sum.Content); err != nil {
				return err
			}
		}

		gen, err := newGenerator(ctx, st)
		if err != nil {
			return err
		}

		qf := &quizFile{SummaryID: id, Topics: topics}
		cardsPath, _ := cmd.Flags().GetString("flashcards")
		if cardsPath != "" {
			set, err := gen.GenerateStudySet(ctx, sum.Content, topics)
			if err != nil {
				return err
			}
			qf.Pool = set.Pool
			if err := writeFile(cardsPath, set.Flashcards); err != nil {
				return err
			}
			log.Info("flashcards written", "path", cardsPath, "count", len(set.Flashcards))
		} else {
			if qf.Pool, err = gen.GenerateQuiz(ctx, sum.Content, topics); err != nil {
				return err
			}
		}

		outPath, _ := cmd.Flags().GetString("out")
		if outPath == "" || outPath == "-" {
			return writeJSON(cmd.OutOrStdout(), qf)
		}
		if err := writeFile(outPath, qf); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d questions on %s to %s\n",
			qf.Pool.Len(), strings.Join(qf.Pool.Topics(), ", "), outPath)
		return nil
	},
}

// focusTopics picks the quiz topic list: stored weak topics when there
// are any, else the notes' main concepts in easy-to-hard order.
func focusTopics(cmd *cobra.Command, st *store.Store, summaryID int, notes string) ([]string, error) {
	weak, err := st.GetWeakTopics(cmd.Context(), summaryID, cfg.Engine.WeakThreshold)
	if err != nil {
		return nil, err
	}
	if len(weak) > 0 {
		out := make([]string, len(weak))
		for i, w := range weak {
			out[i] = w.Topic
		}
		log.Info("targeting weak topics", "summary_id", summaryID, "topics", out)
		return out, nil
	}
	seq := cfg.Planner().ProgressiveSequence(concepts.Extract(notes).Names())
	log.Debug("no weak topics yet, using study sequence", "summary_id", summaryID, "topics", seq)
	return seq, nil
}

func writeFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeJSON(f, v); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func init() {
	generateCmd.Flags().StringP("out", "o", "", "Write the quiz to this file (default: stdout)")
	generateCmd.Flags().String("flashcards", "", "Also generate flashcards into this file")
	generateCmd.Flags().StringSlice("topics", nil, "Restrict questions to these topics")
}
