package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/lumikids/lumi/internal/app"
	"github.com/lumikids/lumi/internal/content"
	"github.com/lumikids/lumi/internal/genai"
	sess "github.com/lumikids/lumi/internal/session"
	"github.com/lumikids/lumi/internal/store"
)

// runApp resolves config, opens the store, builds the content source
// and launches the TUI.
func runApp(cmd *cobra.Command) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}

	logger, logFile, err := setupLogger(dbPath)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer logFile.Close()

	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	source, err := buildSource(cmd, logger)
	if err != nil {
		return err
	}

	return app.Run(app.Options{
		Source: source,
		SessionCfg: sess.Config{
			Learner:      resolveLearner(cmd),
			AdvanceDelay: resolveAdvanceDelay(),
		},
		Store:  st,
		Logger: logger,
	})
}

// setupLogger writes JSON logs to a file next to the database. Logging
// to stderr would scribble over the alt screen, so the file is the
// only sink.
func setupLogger(dbPath string) (*slog.Logger, *os.File, error) {
	logPath := filepath.Join(filepath.Dir(dbPath), "lumi.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}

	level := slog.LevelInfo
	if os.Getenv("LUMI_DEBUG") != "" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, f, nil
}

// buildSource constructs the content source for the selected mode.
// With no mode configured, remote is used when a service URL is set
// and the bundled bank otherwise, so an unconfigured install still
// starts a session instead of refusing to launch.
func buildSource(cmd *cobra.Command, logger *slog.Logger) (content.Source, error) {
	modeStr, _ := cmd.Flags().GetString("mode")
	if modeStr == "" {
		modeStr = os.Getenv("LUMI_MODE")
	}
	if modeStr == "" {
		if os.Getenv("LUMI_API_URL") != "" {
			modeStr = string(content.ModeRemote)
		} else {
			modeStr = string(content.ModeLocal)
		}
	}
	mode, err := content.ParseMode(modeStr)
	if err != nil {
		return nil, err
	}

	switch mode {
	case content.ModeLocal:
		return content.NewLocalSource(), nil

	case content.ModeGenAI:
		cfg := genai.ConfigFromEnv()
		provider, err := genai.NewProvider(cfg)
		if err != nil {
			return nil, fmt.Errorf("configure genai provider: %w", err)
		}
		return genai.NewSource(provider, logger), nil

	default:
		return content.NewRemoteSource(content.RemoteConfig{
			BaseURL: os.Getenv("LUMI_API_URL"),
			Token:   os.Getenv("LUMI_API_TOKEN"),
			Timeout: resolveRemoteTimeout(),
		}, logger)
	}
}

func resolveLearner(cmd *cobra.Command) content.Learner {
	id, _ := cmd.Flags().GetString("learner")
	if id == "" {
		id = os.Getenv("LUMI_LEARNER")
	}
	if id == "" {
		id = "default"
	}

	year, _ := cmd.Flags().GetInt("year")
	if year == 0 {
		year, _ = strconv.Atoi(os.Getenv("LUMI_YEAR"))
	}
	if year == 0 {
		year = 3
	}

	return content.Learner{ID: id, YearLevel: year}
}

// resolveAdvanceDelay reads the post-submit pacing delay, in
// milliseconds, from the environment.
func resolveAdvanceDelay() time.Duration {
	ms, err := strconv.Atoi(os.Getenv("LUMI_ADVANCE_DELAY_MS"))
	if err != nil || ms < 0 {
		return sess.DefaultAdvanceDelay
	}
	return time.Duration(ms) * time.Millisecond
}

func resolveRemoteTimeout() time.Duration {
	secs, err := strconv.Atoi(os.Getenv("LUMI_API_TIMEOUT_SECS"))
	if err != nil || secs <= 0 {
		return content.DefaultRemoteTimeout
	}
	return time.Duration(secs) * time.Second
}
