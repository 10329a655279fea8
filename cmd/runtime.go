package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathcoach/internal/config"
	"github.com/abhisek/mathcoach/internal/credential"
	"github.com/abhisek/mathcoach/internal/llm"
	"github.com/abhisek/mathcoach/internal/logging"
	"github.com/abhisek/mathcoach/internal/metrics"
	"github.com/abhisek/mathcoach/internal/questiongen"
	"github.com/abhisek/mathcoach/internal/session"
	"github.com/abhisek/mathcoach/internal/store"
)

// keylessCredential stands in for an API key with providers that do not
// authenticate.
const keylessCredential = "local"

// runtime is everything a command needs, built from configuration and
// flags.
type runtime struct {
	cfg     *config.App
	log     zerolog.Logger
	store   *store.Store
	creds   credential.Store
	metrics *metrics.Recorder
	gen     *questiongen.Generator

	closers []io.Closer
}

// setup loads configuration, applies flag overrides and opens the log and
// the database. consoleLog sends logs to stderr instead of the log file;
// the TUI owns the terminal so it always logs to the file.
func setup(cmd *cobra.Command, consoleLog bool) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if p, _ := cmd.Flags().GetString("provider"); p != "" {
		cfg.LLM.Provider = p
		if err := cfg.LLM.Validate(); err != nil {
			return nil, err
		}
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}

	logger, logCloser, err := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
		Console: consoleLog,
	})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	rt := &runtime{cfg: cfg, log: logger, closers: []io.Closer{logCloser}}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	rt.store = st
	rt.closers = append([]io.Closer{st}, rt.closers...)

	rt.creds = buildCredentials(cfg.LLM, st.Settings())
	rt.metrics = metrics.NewRecorder()

	genCfg := questiongen.DefaultConfig()
	genCfg.Timeout = cfg.LLM.Timeout
	rt.gen = questiongen.New(llm.Factory(cfg.LLM, st.EventRepo(), logger), genCfg)
	rt.gen.SetObserver(rt.metrics)

	cmd.SetContext(logging.IntoContext(cmd.Context(), logger))
	logger.Debug().
		Str("provider", cfg.LLM.Provider).
		Str("model", cfg.LLM.Model()).
		Str("db", dbPath).
		Msg("runtime ready")
	return rt, nil
}

// buildCredentials chains the stored key, the provider's conventional
// environment variable and, for keyless providers, a static stand-in.
func buildCredentials(cfg llm.Config, settings credential.Settings) credential.Chain {
	chain := credential.Chain{credential.NewSQLStore(settings)}
	if v := cfg.StandardKeyEnv(); v != "" {
		chain = append(chain, credential.EnvStore{Var: v})
	}
	if !cfg.NeedsKey() {
		chain = append(chain, credential.StaticStore{Key: keylessCredential})
	}
	return chain
}

// newMachine creates a practice session wired to the shared generator.
func (rt *runtime) newMachine() *session.Machine {
	return session.NewMachine(rt.gen, rt.creds, session.Options{
		Logger:   rt.log,
		Observer: rt.metrics,
	})
}

func (rt *runtime) Close() error {
	var errs []error
	for _, c := range rt.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
