package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNew_MalformedConfigIsFatal(t *testing.T) {
	path := writeConfig(t, "{oops")
	_, err := New(path)
	assert.Error(t, err)
}

func TestNew_MissingConfigIsFatal(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestAccessors(t *testing.T) {
	path := writeConfig(t, `{
		"verbose": true,
		"llm": "gpt4",
		"image_model": "flux",
		"threads": 4,
		"is_for_kids": false,
		"subreddit": "spaceporn"
	}`)
	cfg, err := New(path)
	require.NoError(t, err)

	assert.True(t, cfg.Verbose())
	assert.Equal(t, "gpt4", cfg.Model())
	assert.Equal(t, "flux", cfg.ImageModel())
	assert.Equal(t, 4, cfg.Threads())
	assert.False(t, cfg.IsForKids())
	assert.Equal(t, "spaceporn", cfg.Subreddit())
}

func TestAccessors_AbsentKeysYieldDefaults(t *testing.T) {
	cfg, err := New(writeConfig(t, `{}`))
	require.NoError(t, err)

	assert.False(t, cfg.Verbose())
	assert.Empty(t, cfg.Model())
	assert.Zero(t, cfg.Threads())
	assert.Equal(t, 300, cfg.ScraperTimeout())

	_, ok, err := cfg.Email()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestImagePromptModel_FallsBackToModel(t *testing.T) {
	cfg, err := New(writeConfig(t, `{"llm": "gpt4"}`))
	require.NoError(t, err)
	assert.Equal(t, "gpt4", cfg.ImagePromptModel())

	cfg, err = New(writeConfig(t, `{"llm": "gpt4", "image_prompt_llm": "gpt35_turbo"}`))
	require.NoError(t, err)
	assert.Equal(t, "gpt35_turbo", cfg.ImagePromptModel())
}

func TestAccessors_ObserveLiveEdits(t *testing.T) {
	path := writeConfig(t, `{"llm": "gpt4"}`)
	cfg, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, "gpt4", cfg.Model())

	// No in-memory caching: a rewrite is visible to the next accessor call.
	require.NoError(t, os.WriteFile(path, []byte(`{"llm": "mixtral_8x7b"}`), 0644))
	assert.Equal(t, "mixtral_8x7b", cfg.Model())
}

func TestLoadSecrets(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	dir := t.TempDir()
	path := filepath.Join(dir, "client_secret.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"web": {
			"openai_api_key": "sk-test",
			"google_credentials": {"type": "service_account"}
		}
	}`), 0644))

	secrets, err := LoadSecrets(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-test", secrets.LLMAPIKey)
	assert.JSONEq(t, `{"type": "service_account"}`, string(secrets.GoogleCredentials))
}

func TestLoadSecrets_Failures(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadSecrets(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("nope"), 0644))
	_, err = LoadSecrets(bad)
	assert.Error(t, err)

	noWeb := filepath.Join(dir, "noweb.json")
	require.NoError(t, os.WriteFile(noWeb, []byte(`{"installed": {}}`), 0644))
	_, err = LoadSecrets(noWeb)
	assert.Error(t, err)
}
