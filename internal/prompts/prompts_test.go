package prompts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTopic(t *testing.T) {
	set := Defaults()

	out, err := set.RenderTopic("ancient history", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "ancient history")
	assert.NotContains(t, out, "trending")

	out, err = set.RenderTopic("ancient history", []string{"The lost city", "Bronze age trade"})
	require.NoError(t, err)
	assert.Contains(t, out, "- The lost city")
	assert.Contains(t, out, "- Bronze age trade")
}

func TestRenderScript(t *testing.T) {
	out, err := Defaults().RenderScript("The fall of Rome", "German")
	require.NoError(t, err)
	assert.Contains(t, out, "The fall of Rome")
	assert.Contains(t, out, "German")
}

func TestRenderImagePrompts_AsksForJSONArray(t *testing.T) {
	out, err := Defaults().RenderImagePrompts("Some script.")
	require.NoError(t, err)
	assert.Contains(t, out, "Some script.")
	assert.Contains(t, out, "JSON array")
}

func TestLoad_OverridesLayerOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("topic: \"Pitch one video about {{.Niche}}.\"\n"), 0644))

	set, err := Load(path)
	require.NoError(t, err)

	out, err := set.RenderTopic("chess", nil)
	require.NoError(t, err)
	assert.Equal(t, "Pitch one video about chess.", out)

	// Untouched keys keep their defaults.
	assert.Equal(t, Defaults().Script, set.Script)
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	set, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), set)
}

func TestLoad_Failures(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("topic: [unclosed"), 0644))
	_, err = Load(bad)
	assert.Error(t, err)
}
