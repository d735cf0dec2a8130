// Package cli wires the application together and drives the interactive menu
// and the headless invocation mode.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"autoshorts/internal/config"
	"autoshorts/internal/images"
	"autoshorts/internal/llm"
	"autoshorts/internal/pipeline"
	"autoshorts/internal/prompts"
	"autoshorts/internal/research"
	"autoshorts/internal/status"
	"autoshorts/internal/store"
	"autoshorts/internal/tts"
	"autoshorts/internal/upload"
	"autoshorts/internal/video"
	"autoshorts/internal/workflow"
)

const (
	cacheDirName  = ".autoshorts"
	imagesDirName = "images"
	outputDirName = "output"
)

// App holds everything constructed once at process start and passed down
// explicitly; there is no global mutable state.
type App struct {
	BaseDir string
	Cfg     *config.Config
	Secrets *config.Secrets
	Store   *store.Store
	Log     zerolog.Logger
}

// NewApp loads environment, configuration, secrets and the store rooted at
// baseDir. Missing or malformed config and credentials are fatal here, at
// startup, not later.
func NewApp(baseDir string) (*App, error) {
	_ = godotenv.Load()

	cfg, err := config.New(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	secrets, err := config.LoadSecrets(filepath.Join(baseDir, "client_secret.json"))
	if err != nil {
		return nil, err
	}
	s, err := store.New(filepath.Join(baseDir, cacheDirName))
	if err != nil {
		return nil, err
	}

	level := zerolog.WarnLevel
	if cfg.Verbose() {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	return &App{BaseDir: baseDir, Cfg: cfg, Secrets: secrets, Store: s, Log: log}, nil
}

// CleanTempFiles removes non-JSON leftovers from the cache directory.
func (a *App) CleanTempFiles() {
	entries, err := os.ReadDir(a.Store.Dir())
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) == ".json" {
			continue
		}
		os.Remove(filepath.Join(a.Store.Dir(), e.Name()))
	}
}

// buildYouTubeWorkflow assembles the adapters and pipeline for one account's
// run. Construction performs no provider calls; credentials are exchanged
// lazily on first use.
func (a *App) buildYouTubeWorkflow(ctx context.Context, acct store.Account) (*workflow.YouTube, error) {
	promptSet, err := prompts.Load(a.promptsPath())
	if err != nil {
		return nil, err
	}

	imageGen, err := images.New(filepath.Join(a.BaseDir, imagesDirName), a.Cfg.ImageModel())
	if err != nil {
		return nil, err
	}
	speech, err := tts.New(ctx, a.Secrets.GoogleCredentials, acct.Language)
	if err != nil {
		return nil, err
	}
	uploader, err := upload.New(ctx, a.Secrets.GoogleCredentials)
	if err != nil {
		return nil, err
	}

	var trends pipeline.TrendSource
	if a.Cfg.Subreddit() != "" {
		r, err := research.New()
		if err != nil {
			status.Warn("Topic research unavailable: %v", err)
		} else {
			trends = r
		}
	}

	p := &pipeline.Pipeline{
		Text:       llm.New(a.Secrets.LLMAPIKey, a.Cfg.Model()),
		PromptText: llm.New(a.Secrets.LLMAPIKey, a.Cfg.ImagePromptModel()),
		Images:     imageGen,
		Speech:     speech,
		Composer:   video.New(a.Cfg.SongsDir(), a.Log),
		Trends:     trends,
		Prompts:    promptSet,
		WorkDir:    filepath.Join(a.BaseDir, outputDirName),
		Log:        a.Log,
	}

	return workflow.NewYouTube(a.Store, a.Cfg, p, uploader, a.Log), nil
}

func (a *App) promptsPath() string {
	path := filepath.Join(a.BaseDir, "prompts.yaml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// RunHeadless is the non-interactive entry point: workflow name plus account
// id, generate and upload in one shot. The account is resolved before any
// adapter is constructed or invoked.
func (a *App) RunHeadless(ctx context.Context, workflowName, accountID string) error {
	if workflowName != string(store.ProviderYouTube) {
		return fmt.Errorf("unknown workflow %q (supported: youtube)", workflowName)
	}
	acct, ok, err := a.Store.FindAccount(store.ProviderYouTube, accountID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no youtube account with id %s", accountID)
	}

	yt, err := a.buildYouTubeWorkflow(ctx, acct)
	if err != nil {
		return err
	}
	return workflow.RunHeadless(ctx, workflowName, accountID, yt)
}
