// Package upload publishes finished videos through the YouTube Data API v3.
package upload

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	youtube "google.golang.org/api/youtube/v3"
)

// Metadata carries everything the upload call needs beside the file itself.
type Metadata struct {
	Title       string
	Description string
	Tags        []string
	CategoryID  string
	Privacy     string
	MadeForKids bool
}

// Uploader wraps the videos.insert call. On provider failure it reports the
// error and leaves all local state untouched: no retry, no rollback.
type Uploader struct {
	svc *youtube.Service
}

// New creates an Uploader authorized by the given service-account JSON.
func New(ctx context.Context, credentialsJSON []byte, extra ...option.ClientOption) (*Uploader, error) {
	var opts []option.ClientOption
	if len(credentialsJSON) > 0 {
		creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, youtube.YoutubeUploadScope)
		if err != nil {
			return nil, fmt.Errorf("youtube credentials: %w", err)
		}
		opts = append(opts, option.WithTokenSource(creds.TokenSource))
	}
	opts = append(opts, extra...)

	svc, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("youtube service: %w", err)
	}
	return &Uploader{svc: svc}, nil
}

// Upload sends the video file with its metadata and returns the assigned
// video ID and public watch URL.
func (u *Uploader) Upload(ctx context.Context, videoPath string, meta Metadata) (string, string, error) {
	privacy := meta.Privacy
	if privacy == "" {
		privacy = "unlisted"
	}
	categoryID := meta.CategoryID
	if categoryID == "" {
		categoryID = "22"
	}

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       meta.Title,
			Description: meta.Description,
			Tags:        meta.Tags,
			CategoryId:  categoryID,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus:           privacy,
			SelfDeclaredMadeForKids: meta.MadeForKids,
		},
	}

	f, err := os.Open(videoPath)
	if err != nil {
		return "", "", fmt.Errorf("open video file: %w", err)
	}
	defer f.Close()

	call := u.svc.Videos.Insert([]string{"snippet", "status"}, video)
	call.Media(f)

	uploaded, err := call.Context(ctx).Do()
	if err != nil {
		return "", "", fmt.Errorf("youtube upload: %w", err)
	}

	return uploaded.Id, WatchURL(uploaded.Id), nil
}

// WatchURL builds the public URL for a YouTube video ID.
func WatchURL(videoID string) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
}
