// Package workflow drives provider workflows over the account store and the
// video-generation pipeline.
package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"autoshorts/internal/config"
	"autoshorts/internal/pipeline"
	"autoshorts/internal/status"
	"autoshorts/internal/store"
	"autoshorts/internal/upload"
)

// VideoGenerator runs the generation pipeline for one seed.
type VideoGenerator interface {
	Generate(ctx context.Context, seed pipeline.Seed) (*pipeline.Session, error)
}

// Uploader publishes a finished video and returns its ID and public URL.
type Uploader interface {
	Upload(ctx context.Context, videoPath string, meta upload.Metadata) (string, string, error)
}

// YouTube orchestrates shorts automation for one provider's accounts.
type YouTube struct {
	store     *store.Store
	cfg       *config.Config
	generator VideoGenerator
	uploader  Uploader
	log       zerolog.Logger
}

// NewYouTube wires a YouTube workflow from its collaborators.
func NewYouTube(s *store.Store, cfg *config.Config, gen VideoGenerator, up Uploader, log zerolog.Logger) *YouTube {
	return &YouTube{store: s, cfg: cfg, generator: gen, uploader: up, log: log}
}

// Run generates a video for the given account and, when uploadVideo is set,
// publishes it and appends a video record to the account. An unknown account
// id fails before any adapter is invoked. A failed run never mutates the
// account store.
func (y *YouTube) Run(ctx context.Context, accountID string, uploadVideo bool) (*pipeline.Session, error) {
	acct, ok, err := y.store.FindAccount(store.ProviderYouTube, accountID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no youtube account with id %s", accountID)
	}

	y.log.Debug().Str("account", acct.Nickname).Str("niche", acct.Niche).Msg("starting youtube run")
	seed := pipeline.Seed{
		AccountID: acct.ID,
		Nickname:  acct.Nickname,
		Niche:     acct.Niche,
		Language:  acct.Language,
		Subreddit: y.cfg.Subreddit(),
	}

	session, err := y.generator.Generate(ctx, seed)
	if err != nil {
		return nil, fmt.Errorf("generate video: %w", err)
	}
	status.Success("Video generated: %s", session.VideoPath)

	if !uploadVideo {
		return session, nil
	}
	if err := y.Upload(ctx, acct, session); err != nil {
		return session, err
	}
	return session, nil
}

// Upload publishes a generated session's video and records it on the account.
func (y *YouTube) Upload(ctx context.Context, acct store.Account, session *pipeline.Session) error {
	meta := upload.Metadata{
		Title:       session.Metadata.Title,
		Description: session.Metadata.Description,
		Tags:        []string{"YouTube Shorts", acct.Niche},
		CategoryID:  "22",
		Privacy:     "unlisted",
		MadeForKids: y.cfg.IsForKids(),
	}

	videoID, videoURL, err := y.uploader.Upload(ctx, session.VideoPath, meta)
	if err != nil {
		status.Error("Upload failed: %v", err)
		return fmt.Errorf("upload video: %w", err)
	}
	status.Success("Video uploaded successfully: %s", videoURL)

	record := store.VideoRecord{
		ID:       videoID,
		Title:    session.Metadata.Title,
		URL:      videoURL,
		PostedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := y.store.AppendVideo(store.ProviderYouTube, acct.ID, record); err != nil {
		return fmt.Errorf("record video: %w", err)
	}
	return nil
}

// RunHeadless executes the named workflow for an account without any
// interaction, generating and uploading in one shot. Only "youtube" is
// recognized.
func RunHeadless(ctx context.Context, workflowName, accountID string, yt *YouTube) error {
	if workflowName != string(store.ProviderYouTube) {
		return fmt.Errorf("unknown workflow %q (supported: youtube)", workflowName)
	}
	if accountID == "" {
		return fmt.Errorf("account id cannot be empty")
	}
	_, err := yt.Run(ctx, accountID, true)
	return err
}
