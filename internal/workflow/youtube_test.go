package workflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoshorts/internal/config"
	"autoshorts/internal/pipeline"
	"autoshorts/internal/store"
	"autoshorts/internal/upload"
)

type fakeGenerator struct {
	calls   int
	seed    pipeline.Seed
	session *pipeline.Session
	err     error
}

func (f *fakeGenerator) Generate(ctx context.Context, seed pipeline.Seed) (*pipeline.Session, error) {
	f.calls++
	f.seed = seed
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

type fakeUploader struct {
	calls int
	path  string
	meta  upload.Metadata
	err   error
}

func (f *fakeUploader) Upload(ctx context.Context, videoPath string, meta upload.Metadata) (string, string, error) {
	f.calls++
	f.path = videoPath
	f.meta = meta
	if f.err != nil {
		return "", "", f.err
	}
	return "vid123", upload.WatchURL("vid123"), nil
}

func testConfig(t *testing.T, content string) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	cfg, err := config.New(path)
	require.NoError(t, err)
	return cfg
}

func newTestWorkflow(t *testing.T) (*YouTube, *store.Store, *fakeGenerator, *fakeUploader) {
	t.Helper()
	s, err := store.New(t.TempDir())
	require.NoError(t, err)

	gen := &fakeGenerator{session: &pipeline.Session{
		VideoPath: "/out/final.mp4",
		Metadata:  pipeline.Metadata{Title: "X", Description: "Y"},
	}}
	up := &fakeUploader{}
	cfg := testConfig(t, `{"is_for_kids": false, "subreddit": "space"}`)

	return NewYouTube(s, cfg, gen, up, zerolog.Nop()), s, gen, up
}

func TestRun_GenerateAndUpload(t *testing.T) {
	yt, s, gen, up := newTestWorkflow(t)
	require.NoError(t, s.AddAccount(store.ProviderYouTube, store.Account{
		ID: "a1", Nickname: "nick", Niche: "space", Language: "English",
	}))

	session, err := yt.Run(context.Background(), "a1", true)
	require.NoError(t, err)

	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, "a1", gen.seed.AccountID)
	assert.Equal(t, "space", gen.seed.Niche)
	assert.Equal(t, "space", gen.seed.Subreddit)

	assert.Equal(t, 1, up.calls)
	assert.Equal(t, "/out/final.mp4", up.path)
	assert.Equal(t, "X", up.meta.Title)
	assert.Contains(t, up.meta.Tags, "YouTube Shorts")
	assert.Equal(t, "unlisted", up.meta.Privacy)
	assert.Equal(t, "/out/final.mp4", session.VideoPath)

	// The upload is recorded on the account.
	acct, ok, err := s.FindAccount(store.ProviderYouTube, "a1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, acct.Videos, 1)
	assert.Equal(t, "vid123", acct.Videos[0].ID)
	assert.Equal(t, upload.WatchURL("vid123"), acct.Videos[0].URL)
}

func TestRun_WithoutUpload(t *testing.T) {
	yt, s, gen, up := newTestWorkflow(t)
	require.NoError(t, s.AddAccount(store.ProviderYouTube, store.Account{ID: "a1"}))

	_, err := yt.Run(context.Background(), "a1", false)
	require.NoError(t, err)

	assert.Equal(t, 1, gen.calls)
	assert.Zero(t, up.calls)

	acct, _, err := s.FindAccount(store.ProviderYouTube, "a1")
	require.NoError(t, err)
	assert.Empty(t, acct.Videos)
}

func TestRun_UnknownAccountInvokesNoAdapter(t *testing.T) {
	yt, _, gen, up := newTestWorkflow(t)

	_, err := yt.Run(context.Background(), "ghost", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no youtube account")
	assert.Zero(t, gen.calls)
	assert.Zero(t, up.calls)
}

func TestRun_GenerationFailureLeavesStoreUntouched(t *testing.T) {
	yt, s, gen, up := newTestWorkflow(t)
	require.NoError(t, s.AddAccount(store.ProviderYouTube, store.Account{ID: "a1"}))
	gen.err = fmt.Errorf("llm down")

	_, err := yt.Run(context.Background(), "a1", true)
	require.Error(t, err)
	assert.Zero(t, up.calls)

	acct, _, err := s.FindAccount(store.ProviderYouTube, "a1")
	require.NoError(t, err)
	assert.Empty(t, acct.Videos)
}

func TestRun_UploadFailureLeavesStoreUntouched(t *testing.T) {
	yt, s, _, up := newTestWorkflow(t)
	require.NoError(t, s.AddAccount(store.ProviderYouTube, store.Account{ID: "a1"}))
	up.err = fmt.Errorf("quota exceeded")

	_, err := yt.Run(context.Background(), "a1", true)
	require.Error(t, err)

	acct, _, err := s.FindAccount(store.ProviderYouTube, "a1")
	require.NoError(t, err)
	assert.Empty(t, acct.Videos)
}

func TestRunHeadless(t *testing.T) {
	yt, s, gen, up := newTestWorkflow(t)
	require.NoError(t, s.AddAccount(store.ProviderYouTube, store.Account{ID: "a1"}))

	require.NoError(t, RunHeadless(context.Background(), "youtube", "a1", yt))
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, 1, up.calls)
}

func TestRunHeadless_UnknownWorkflow(t *testing.T) {
	yt, _, gen, up := newTestWorkflow(t)

	err := RunHeadless(context.Background(), "tiktok", "a1", yt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown workflow")
	assert.Zero(t, gen.calls)
	assert.Zero(t, up.calls)
}

func TestRunHeadless_UnknownAccount(t *testing.T) {
	yt, _, gen, up := newTestWorkflow(t)

	err := RunHeadless(context.Background(), "youtube", "ghost", yt)
	require.Error(t, err)
	assert.Zero(t, gen.calls)
	assert.Zero(t, up.calls)
}

func TestRunHeadless_EmptyAccountID(t *testing.T) {
	yt, _, gen, _ := newTestWorkflow(t)

	err := RunHeadless(context.Background(), "youtube", "", yt)
	require.Error(t, err)
	assert.Zero(t, gen.calls)
}
