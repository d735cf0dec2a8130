// Package images generates AI images and stores them under a local directory.
package images

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const defaultEndpoint = "https://image.pollinations.ai/prompt"

// A response smaller than this is almost certainly an error page, not image data.
const minImageBytes = 100

// Generator fetches images from Pollinations and writes each one to a freshly
// generated unique path under the output directory.
type Generator struct {
	outputDir  string
	model      string
	endpoint   string
	httpClient *http.Client
	attempts   int
}

// Option configures a Generator.
type Option func(*Generator)

// WithEndpoint replaces the image service endpoint.
func WithEndpoint(u string) Option {
	return func(g *Generator) { g.endpoint = u }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(g *Generator) { g.httpClient = hc }
}

// WithAttempts sets how many times a fetch is tried before giving up.
func WithAttempts(n int) Option {
	return func(g *Generator) { g.attempts = n }
}

// New creates a Generator writing into outputDir, creating it if needed.
func New(outputDir, model string, opts ...Option) (*Generator, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create images dir: %w", err)
	}
	g := &Generator{
		outputDir:  outputDir,
		model:      model,
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		attempts:   3,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Generate fetches one image for the prompt and returns the path it was
// written to.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	model := g.model
	if model == "" {
		model = "flux"
	}
	imageURL := fmt.Sprintf("%s/%s?width=1080&height=1920&nologo=true&model=%s",
		g.endpoint, url.PathEscape(prompt), url.QueryEscape(model))

	outFile := filepath.Join(g.outputDir, uuid.NewString()+".png")

	var err error
	for attempt := 1; attempt <= g.attempts; attempt++ {
		err = g.download(ctx, imageURL, outFile)
		if err == nil {
			return outFile, nil
		}
		if attempt == g.attempts {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Duration(attempt) * 2 * time.Second):
		}
	}
	return "", fmt.Errorf("image fetch failed after %d attempts: %w", g.attempts, err)
}

func (g *Generator) download(ctx context.Context, imageURL, outFile string) error {
	req, err := http.NewRequestWithContext(ctx, "GET", imageURL, nil)
	if err != nil {
		return err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from image service", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(data) < minImageBytes {
		return fmt.Errorf("response too small (%d bytes)", len(data))
	}

	return os.WriteFile(outFile, data, 0644)
}
