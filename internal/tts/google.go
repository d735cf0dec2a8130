// Package tts synthesizes narration audio through the Google Cloud
// Text-to-Speech API.
package tts

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"google.golang.org/api/option"
	texttospeech "google.golang.org/api/texttospeech/v1"
)

// voiceCodes maps the human-readable language names stored on accounts to
// BCP-47 voice language codes. Unknown languages fall back to US English.
var voiceCodes = map[string]string{
	"english":    "en-US",
	"german":     "de-DE",
	"spanish":    "es-ES",
	"french":     "fr-FR",
	"italian":    "it-IT",
	"portuguese": "pt-BR",
	"dutch":      "nl-NL",
	"hindi":      "hi-IN",
	"japanese":   "ja-JP",
}

// VoiceCode resolves an account language name to a synthesis language code.
func VoiceCode(language string) string {
	if code, ok := voiceCodes[strings.ToLower(strings.TrimSpace(language))]; ok {
		return code
	}
	return "en-US"
}

// Synthesizer wraps the Text-to-Speech service as one blocking call writing a
// whole audio file per request. No retry, no streaming.
type Synthesizer struct {
	svc      *texttospeech.Service
	language string
}

// New creates a Synthesizer authorized by the given service-account JSON,
// voiced in the given account language.
func New(ctx context.Context, credentialsJSON []byte, language string, extra ...option.ClientOption) (*Synthesizer, error) {
	var opts []option.ClientOption
	if len(credentialsJSON) > 0 {
		opts = append(opts, option.WithCredentialsJSON(credentialsJSON))
	}
	opts = append(opts, extra...)
	svc, err := texttospeech.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("text-to-speech service: %w", err)
	}
	return &Synthesizer{svc: svc, language: VoiceCode(language)}, nil
}

// Synthesize converts text to LINEAR16 audio and writes it to outputPath,
// returning the path it wrote.
func (s *Synthesizer) Synthesize(ctx context.Context, text, outputPath string) (string, error) {
	req := &texttospeech.SynthesizeSpeechRequest{
		Input: &texttospeech.SynthesisInput{Text: text},
		Voice: &texttospeech.VoiceSelectionParams{
			LanguageCode: s.language,
			SsmlGender:   "NEUTRAL",
		},
		AudioConfig: &texttospeech.AudioConfig{AudioEncoding: "LINEAR16"},
	}

	resp, err := s.svc.Text.Synthesize(req).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("synthesize speech: %w", err)
	}

	audio, err := base64.StdEncoding.DecodeString(resp.AudioContent)
	if err != nil {
		return "", fmt.Errorf("decode audio content: %w", err)
	}

	if err := os.WriteFile(outputPath, audio, 0644); err != nil {
		return "", fmt.Errorf("write audio file: %w", err)
	}
	return outputPath, nil
}
