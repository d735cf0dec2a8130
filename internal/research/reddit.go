// Package research pulls trending post titles from a niche subreddit to
// enrich topic generation. The enrichment is best effort: a failure here
// never aborts a pipeline run.
package research

import (
	"context"
	"fmt"
	"strings"

	"github.com/vartanbeno/go-reddit/v2/reddit"
)

// Researcher fetches trending titles through the public Reddit API.
type Researcher struct {
	client *reddit.Client
}

// New creates a read-only Researcher.
func New() (*Researcher, error) {
	client, err := reddit.NewReadonlyClient()
	if err != nil {
		return nil, fmt.Errorf("reddit client: %w", err)
	}
	return &Researcher{client: client}, nil
}

// TrendingTitles returns up to limit top post titles from the subreddit over
// the past week.
func (r *Researcher) TrendingTitles(ctx context.Context, subreddit string, limit int) ([]string, error) {
	subreddit = strings.TrimPrefix(strings.TrimSpace(subreddit), "r/")
	if subreddit == "" {
		return nil, fmt.Errorf("empty subreddit")
	}

	posts, _, err := r.client.Subreddit.TopPosts(ctx, subreddit, &reddit.ListPostOptions{
		ListOptions: reddit.ListOptions{Limit: limit},
		Time:        "week",
	})
	if err != nil {
		return nil, fmt.Errorf("top posts of r/%s: %w", subreddit, err)
	}

	titles := make([]string, 0, len(posts))
	for _, p := range posts {
		if t := strings.TrimSpace(p.Title); t != "" {
			titles = append(titles, t)
		}
	}
	return titles, nil
}
