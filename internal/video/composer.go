// Package video assembles the final vertical video from generated images and
// narration audio using ffmpeg.
package video

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Composer shells out to ffmpeg to build an evenly timed slideshow over the
// narration track, optionally mixing in a random background song.
type Composer struct {
	songsDir string
	log      zerolog.Logger
}

// New creates a Composer. songsDir may be empty to skip background music.
func New(songsDir string, log zerolog.Logger) *Composer {
	return &Composer{songsDir: songsDir, log: log}
}

// Compose renders images + audio into outputDir/final.mp4 and returns the
// video path. Image display time is the narration duration split evenly.
func (c *Composer) Compose(ctx context.Context, imagePaths []string, audioPath, outputDir string) (string, error) {
	if len(imagePaths) == 0 {
		return "", fmt.Errorf("no images to compose")
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	total, err := AudioDuration(ctx, audioPath)
	if err != nil {
		return "", fmt.Errorf("probe audio duration: %w", err)
	}

	listFile := filepath.Join(outputDir, "slideshow.txt")
	if err := os.WriteFile(listFile, []byte(ConcatList(imagePaths, total)), 0644); err != nil {
		return "", err
	}

	outFile := filepath.Join(outputDir, "final.mp4")
	args := []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listFile,
		"-i", audioPath,
	}

	song := c.pickSong()
	if song != "" {
		c.log.Info().Str("song", filepath.Base(song)).Msg("mixing background song")
		args = append(args,
			"-i", song,
			"-filter_complex", "[1:a]volume=1.0[a1];[2:a]volume=0.15[a2];[a1][a2]amix=inputs=2:duration=first[aout]",
			"-map", "0:v",
			"-map", "[aout]",
		)
	} else {
		args = append(args, "-map", "0:v", "-map", "1:a")
	}

	args = append(args,
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "22",
		"-vf", "scale=1080:1920:force_original_aspect_ratio=decrease,pad=1080:1920:(ow-iw)/2:(oh-ih)/2,setsar=1",
		"-r", "30",
		"-pix_fmt", "yuv420p",
		"-shortest",
		outFile,
	)

	c.log.Info().Int("images", len(imagePaths)).Float64("duration_sec", total).Msg("rendering final video")

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("ffmpeg compose: %w\n%s", err, tail(string(out), 800))
	}
	return outFile, nil
}

// ConcatList builds an ffmpeg concat-demuxer list displaying each image for an
// equal share of the total duration. The final entry is repeated without a
// duration, as the demuxer requires.
func ConcatList(imagePaths []string, totalSec float64) string {
	per := totalSec / float64(len(imagePaths))
	var sb strings.Builder
	for _, p := range imagePaths {
		fmt.Fprintf(&sb, "file '%s'\n", p)
		fmt.Fprintf(&sb, "duration %.3f\n", per)
	}
	fmt.Fprintf(&sb, "file '%s'\n", imagePaths[len(imagePaths)-1])
	return sb.String()
}

// AudioDuration returns the length of an audio file in seconds via ffprobe.
func AudioDuration(ctx context.Context, audioPath string) (float64, error) {
	out, err := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		audioPath,
	).Output()
	if err != nil {
		return 0, err
	}
	return ParseDuration(string(out))
}

// ParseDuration parses ffprobe's duration output.
func ParseDuration(s string) (float64, error) {
	var dur float64
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%f", &dur); err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", strings.TrimSpace(s), err)
	}
	return dur, nil
}

// pickSong chooses a random audio file from the songs directory, or "" when
// the directory is unset, missing, or empty.
func (c *Composer) pickSong() string {
	if c.songsDir == "" {
		return ""
	}
	entries, err := os.ReadDir(c.songsDir)
	if err != nil {
		return ""
	}
	var songs []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".mp3", ".wav", ".m4a", ".ogg":
			songs = append(songs, filepath.Join(c.songsDir, e.Name()))
		}
	}
	if len(songs) == 0 {
		return ""
	}
	return songs[rand.Intn(len(songs))]
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
