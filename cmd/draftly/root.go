package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/SharangSharma09/Draftly/internal/adapter"
	"github.com/SharangSharma09/Draftly/internal/config"
	"github.com/SharangSharma09/Draftly/internal/credential"
	"github.com/SharangSharma09/Draftly/internal/history"
	"github.com/SharangSharma09/Draftly/internal/orchestrator"
	"github.com/SharangSharma09/Draftly/internal/registry"
)

// errReported marks a failure the command already printed.
var errReported = errors.New("reported")

// app holds the persistent flags and the resources opened from them.
type app struct {
	configPath string
	verbose    bool

	closers []io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "draftly",
		Short: "Rewrite text with hosted language models",
		Long: `draftly rewrites text through one of several LLM providers using a fixed
set of actions (simplify, formal, witty, fix_grammar, add_emoji, ...).

Examples:
  draftly serve --port 5000
  draftly transform --action formal --model gpt-4o "hey, can u send the file"
  pbpaste | draftly transform --action fix_grammar --model claude-3-sonnet
  draftly models
  draftly history --clear`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to config.yaml")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log provider calls to stderr")

	root.AddCommand(
		newServeCmd(a),
		newTransformCmd(a),
		newModelsCmd(a),
		newKeysCmd(a),
		newHistoryCmd(a),
	)
	return root
}

func (a *app) loadConfig() (config.Config, error) {
	return config.Load(a.configPath)
}

// cliLogger keeps one-shot commands quiet unless --verbose is set. Transform
// failures are printed by the command itself.
func (a *app) cliLogger(cfg config.Config, w io.Writer) *slog.Logger {
	level := slog.LevelError
	if a.verbose {
		level = cfg.SlogLevel()
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// keys chains config keys, the watched keys file, Redis and the environment,
// in that order.
func (a *app) keys(cfg config.Config) (credential.Source, error) {
	chain := credential.Chain{cfg.Keys()}

	if cfg.KeysFile != "" {
		f, err := credential.NewFile(cfg.KeysFile)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, f)
		chain = append(chain, f)
	}
	if cfg.RedisURL != "" {
		r, err := credential.NewRedis(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, r)
		chain = append(chain, r)
	}

	return append(chain, credential.Env{}), nil
}

func (a *app) history(cfg config.Config) (*history.Recorder, error) {
	switch cfg.HistoryBackend {
	case "file":
		return history.NewRecorder(history.NewFileStore(cfg.HistoryPath)), nil
	case "redis":
		s, err := history.NewRedisStore(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, s)
		return history.NewRecorder(s), nil
	default:
		return history.NewRecorder(&history.MemoryStore{}), nil
	}
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i].Close()
	}
	a.closers = nil
}

func newAdapters(cfg config.Config, keys credential.Source) []adapter.LLMAdapter {
	timeout := cfg.RequestTimeout
	return []adapter.LLMAdapter{
		adapter.NewOpenAI(keys, cfg.BaseURL(registry.OpenAI), timeout),
		adapter.NewPerplexity(keys, cfg.BaseURL(registry.Perplexity), timeout),
		adapter.NewClaude(keys, cfg.BaseURL(registry.Anthropic), timeout),
		adapter.NewGemini(keys, cfg.BaseURL(registry.Google), timeout),
		adapter.NewDeepseek(keys, cfg.BaseURL(registry.Deepseek), timeout),
	}
}

func newOrchestrator(cfg config.Config, keys credential.Source, policy orchestrator.Policy, logger *slog.Logger) *orchestrator.Orchestrator {
	opts := []orchestrator.Option{
		orchestrator.WithPolicy(policy),
		orchestrator.WithTimeout(cfg.RequestTimeout),
		orchestrator.WithLogger(logger),
	}
	if cfg.LocalEmoji {
		opts = append(opts, orchestrator.WithLocalEmoji(nil))
	}
	return orchestrator.New(newAdapters(cfg, keys), opts...)
}

func parseProviderArg(s string) (registry.Provider, error) {
	p, err := registry.ParseProvider(s)
	if err != nil || p == registry.Other {
		return "", fmt.Errorf("unknown provider %q", s)
	}
	return p, nil
}
