package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/mathcoach/internal/config"
	"github.com/abhisek/mathcoach/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mathcoach",
	Short: "AI maths practice for Junior Cycle and Leaving Cert",
	Long: `MathCoach generates exam-style maths questions with an AI model, grades
your answers and, in adaptive mode, follows up with an easier or harder
question depending on how you did.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MATHCOACH_DB)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides MATHCOACH_LOG_LEVEL)")
	rootCmd.PersistentFlags().String("provider", "", "LLM provider: openai, anthropic, gemini, openrouter, ollama, mock (overrides MATHCOACH_LLM_PROVIDER)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path: --db flag first, then
// MATHCOACH_DB, then the default XDG location.
func resolveDBPath(cmd *cobra.Command, cfg *config.App) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}
