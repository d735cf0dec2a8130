// Package pipeline runs the fixed video-generation sequence: topic, script,
// metadata, image prompts, images, narration, final compose. No branching, no
// retries, no parallelism; each step's output is the next step's input and
// any failure aborts the run.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"autoshorts/internal/llm"
	"autoshorts/internal/prompts"
)

// TextGenerator produces text from a prompt.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ImageGenerator produces one image file per prompt.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// SpeechSynthesizer writes narration audio for a text to outputPath.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, outputPath string) (string, error)
}

// Composer renders images plus narration into a final video file.
type Composer interface {
	Compose(ctx context.Context, imagePaths []string, audioPath, outputDir string) (string, error)
}

// TrendSource supplies trending titles for topic enrichment.
type TrendSource interface {
	TrendingTitles(ctx context.Context, subreddit string, limit int) ([]string, error)
}

// Seed is the input of one pipeline run.
type Seed struct {
	AccountID string
	Nickname  string
	Niche     string
	Language  string
	Subreddit string
}

// Metadata is the generated title/description pair.
type Metadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Session is the transient working state of a single run. It is discarded
// after the run; only the video path and the account's appended video record
// outlive it. A JSON copy is written into the run directory for inspection.
type Session struct {
	RunID        string   `json:"run_id"`
	StartedAt    string   `json:"started_at"`
	CompletedAt  string   `json:"completed_at,omitempty"`
	AccountID    string   `json:"account_id"`
	Niche        string   `json:"niche"`
	Language     string   `json:"language"`
	Topic        string   `json:"topic,omitempty"`
	Script       string   `json:"script,omitempty"`
	Metadata     Metadata `json:"metadata"`
	ImagePrompts []string `json:"image_prompts,omitempty"`
	ImagePaths   []string `json:"image_paths,omitempty"`
	AudioPath    string   `json:"audio_path,omitempty"`
	VideoPath    string   `json:"video_path,omitempty"`
}

// Pipeline holds the adapters one run sequences through.
type Pipeline struct {
	Text        TextGenerator
	PromptText  TextGenerator // used for image prompts; falls back to Text when nil
	Images      ImageGenerator
	Speech      SpeechSynthesizer
	Composer    Composer
	Trends      TrendSource // optional topic enrichment
	Prompts     prompts.Set
	WorkDir     string
	TrendsLimit int
	Log         zerolog.Logger
}

// Generate runs the full sequence and returns the completed session. On error
// the partially filled session is returned alongside it; the caller must not
// treat it as a deliverable.
func (p *Pipeline) Generate(ctx context.Context, seed Seed) (*Session, error) {
	session := &Session{
		RunID:     uuid.NewString()[:8],
		StartedAt: time.Now().UTC().Format(time.RFC3339),
		AccountID: seed.AccountID,
		Niche:     seed.Niche,
		Language:  seed.Language,
	}

	runDir := filepath.Join(p.WorkDir, session.RunID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return session, fmt.Errorf("create run dir: %w", err)
	}
	p.Log.Info().Str("run_id", session.RunID).Str("niche", seed.Niche).Msg("pipeline starting")

	trends := p.fetchTrends(ctx, seed)

	if err := p.generateTopic(ctx, session, seed, trends); err != nil {
		return session, err
	}
	if err := p.generateScript(ctx, session, seed); err != nil {
		return session, err
	}
	if err := p.generateMetadata(ctx, session); err != nil {
		return session, err
	}
	if err := p.generateImagePrompts(ctx, session); err != nil {
		return session, err
	}
	if err := p.generateImages(ctx, session); err != nil {
		return session, err
	}
	if err := p.synthesizeNarration(ctx, session, runDir); err != nil {
		return session, err
	}
	if err := p.composeVideo(ctx, session, runDir); err != nil {
		return session, err
	}

	session.CompletedAt = time.Now().UTC().Format(time.RFC3339)
	p.saveSession(session, runDir)
	p.Log.Info().Str("run_id", session.RunID).Str("video", session.VideoPath).Msg("pipeline complete")
	return session, nil
}

func (p *Pipeline) fetchTrends(ctx context.Context, seed Seed) []string {
	if p.Trends == nil || seed.Subreddit == "" {
		return nil
	}
	limit := p.TrendsLimit
	if limit <= 0 {
		limit = 5
	}
	trends, err := p.Trends.TrendingTitles(ctx, seed.Subreddit, limit)
	if err != nil {
		p.Log.Warn().Err(err).Str("subreddit", seed.Subreddit).Msg("topic research failed, continuing without trends")
		return nil
	}
	return trends
}

func (p *Pipeline) generateTopic(ctx context.Context, session *Session, seed Seed, trends []string) error {
	prompt, err := p.Prompts.RenderTopic(seed.Niche, trends)
	if err != nil {
		return err
	}
	topic, err := p.Text.Complete(ctx, prompt)
	if err != nil {
		return fmt.Errorf("generate topic: %w", err)
	}
	if topic == "" {
		return fmt.Errorf("generate topic: empty completion")
	}
	session.Topic = topic
	p.Log.Debug().Str("topic", topic).Msg("topic generated")
	return nil
}

func (p *Pipeline) generateScript(ctx context.Context, session *Session, seed Seed) error {
	prompt, err := p.Prompts.RenderScript(session.Topic, seed.Language)
	if err != nil {
		return err
	}
	script, err := p.Text.Complete(ctx, prompt)
	if err != nil {
		return fmt.Errorf("generate script: %w", err)
	}
	script = strings.ReplaceAll(script, "*", "")
	if strings.TrimSpace(script) == "" {
		return fmt.Errorf("generate script: empty completion")
	}
	session.Script = script
	return nil
}

func (p *Pipeline) generateMetadata(ctx context.Context, session *Session) error {
	titlePrompt, err := p.Prompts.RenderTitle(session.Topic)
	if err != nil {
		return err
	}
	title, err := p.Text.Complete(ctx, titlePrompt)
	if err != nil {
		return fmt.Errorf("generate title: %w", err)
	}

	descPrompt, err := p.Prompts.RenderDescription(session.Script)
	if err != nil {
		return err
	}
	description, err := p.Text.Complete(ctx, descPrompt)
	if err != nil {
		return fmt.Errorf("generate description: %w", err)
	}

	session.Metadata = Metadata{Title: title, Description: description}
	return nil
}

// generateImagePrompts expects the model to return a parseable JSON array of
// strings. A malformed response is a fatal parse failure with no recovery.
func (p *Pipeline) generateImagePrompts(ctx context.Context, session *Session) error {
	prompt, err := p.Prompts.RenderImagePrompts(session.Script)
	if err != nil {
		return err
	}

	gen := p.PromptText
	if gen == nil {
		gen = p.Text
	}
	raw, err := gen.Complete(ctx, prompt)
	if err != nil {
		return fmt.Errorf("generate image prompts: %w", err)
	}

	var imagePrompts []string
	if err := json.Unmarshal([]byte(llm.CleanJSON(raw)), &imagePrompts); err != nil {
		return fmt.Errorf("parse image prompts: %w", err)
	}
	if len(imagePrompts) == 0 {
		return fmt.Errorf("parse image prompts: empty list")
	}
	session.ImagePrompts = imagePrompts
	return nil
}

// generateImages produces exactly one image per prompt, sequentially.
func (p *Pipeline) generateImages(ctx context.Context, session *Session) error {
	for i, prompt := range session.ImagePrompts {
		path, err := p.Images.Generate(ctx, prompt)
		if err != nil {
			return fmt.Errorf("generate image %d/%d: %w", i+1, len(session.ImagePrompts), err)
		}
		session.ImagePaths = append(session.ImagePaths, path)
		p.Log.Debug().Int("index", i).Str("path", path).Msg("image generated")
	}
	return nil
}

func (p *Pipeline) synthesizeNarration(ctx context.Context, session *Session, runDir string) error {
	audioPath, err := p.Speech.Synthesize(ctx, session.Script, filepath.Join(runDir, "audio.wav"))
	if err != nil {
		return fmt.Errorf("synthesize narration: %w", err)
	}
	session.AudioPath = audioPath
	return nil
}

func (p *Pipeline) composeVideo(ctx context.Context, session *Session, runDir string) error {
	videoPath, err := p.Composer.Compose(ctx, session.ImagePaths, session.AudioPath, runDir)
	if err != nil {
		return fmt.Errorf("compose video: %w", err)
	}
	session.VideoPath = videoPath
	return nil
}

// saveSession writes the session snapshot into the run directory. Failing to
// save is logged, not fatal: the artifact is for inspection only.
func (p *Pipeline) saveSession(session *Session, runDir string) {
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		p.Log.Warn().Err(err).Msg("could not marshal session")
		return
	}
	path := filepath.Join(runDir, "session.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		p.Log.Warn().Err(err).Str("path", path).Msg("could not save session")
	}
}
