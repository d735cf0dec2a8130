package images

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fakePNG = bytes.Repeat([]byte{0x89, 0x50, 0x4e, 0x47}, 64)

func newTestGenerator(t *testing.T, handler http.HandlerFunc) *Generator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g, err := New(t.TempDir(), "flux",
		WithEndpoint(srv.URL),
		WithHTTPClient(srv.Client()),
		WithAttempts(1),
	)
	require.NoError(t, err)
	return g
}

func TestGenerate(t *testing.T) {
	var gotPath, gotQuery string
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotQuery = r.URL.RawQuery
		w.Write(fakePNG)
	})

	path, err := g.Generate(context.Background(), "a foggy mountain road")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(path, ".png"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, fakePNG, data)

	assert.Contains(t, gotPath, "a%20foggy%20mountain%20road")
	assert.Contains(t, gotQuery, "model=flux")
}

func TestGenerate_UniquePaths(t *testing.T) {
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(fakePNG)
	})

	first, err := g.Generate(context.Background(), "p")
	require.NoError(t, err)
	second, err := g.Generate(context.Background(), "p")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, filepath.Dir(first), filepath.Dir(second))
}

func TestGenerate_TinyBodyIsRejected(t *testing.T) {
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("nope"))
	})

	_, err := g.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too small")
}

func TestGenerate_HTTPErrorIsRejected(t *testing.T) {
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream image service unavailable right now, try later", http.StatusBadGateway)
	})

	_, err := g.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
}
