package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyforge/internal/config"
	"github.com/abhisek/studyforge/internal/contentgen"
	"github.com/abhisek/studyforge/internal/llm"
	"github.com/abhisek/studyforge/internal/platform/logger"
	"github.com/abhisek/studyforge/internal/store"
)

var (
	cfg *config.Config
	log = logger.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "studyforge",
	Short: "Turn study notes into adaptive quizzes",
	Long: "studyforge analyses study notes into a concept map, generates multiple-choice quizzes\n" +
		"with an LLM and sequences them adaptively toward the learner's weak topics.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		c, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if p, _ := cmd.Flags().GetString("db"); p != "" {
			c.Store.Path = p
		}
		l, err := logger.New(c.Log.Mode)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		cfg, log = c, l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		log.Sync()
	},
}

// Execute runs the CLI until ctx is cancelled.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides STUDYFORGE_CONFIG)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STUDYFORGE_DB)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(summariesCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(weakCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// openStore opens the configured database, falling back to the XDG path.
func openStore() (*store.Store, error) {
	path := cfg.Store.Path
	if path == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
		path = p
	} else if err := store.EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}
	s, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// newGenerator builds the content generator on the configured provider.
// LLM calls are recorded in st.
func newGenerator(ctx context.Context, st *store.Store) (*contentgen.Generator, error) {
	lc := cfg.LLMConfig()
	provider, err := llm.NewProvider(ctx, lc, st.EventRepo(), log.With("component", "llm"))
	if err != nil {
		return nil, fmt.Errorf("LLM provider not configured: %w", err)
	}
	log.Debug("llm provider ready", "provider", lc.Provider, "model", provider.ModelID())
	return contentgen.New(provider, contentgen.DefaultConfig()), nil
}

// readInput reads a file, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid ID %q", s)
	}
	return id, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
