package assets

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdboard/sdboard/pkg/whttp"
)

// 1x1 transparent PNG.
var pngPixel, _ = base64.StdEncoding.DecodeString(
	"iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII=")

const sampleGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"GID_1": "BEN.10_1", "NAME_1": "Ouémé"}, "geometry": {"type": "Point", "coordinates": [2.6, 6.5]}},
    {"type": "Feature", "properties": {"GID_1": "BEN.8_1", "NAME_1": "Littoral"}, "geometry": {"type": "Point", "coordinates": [2.4, 6.4]}},
    {"type": "Feature", "properties": {"GID_1": "BEN.1_1", "NAME_1": "Alibori"}, "geometry": null}
  ]
}`

func newTestLoader() *Loader {
	c := whttp.NewClient(1, 2*time.Second, nil)
	c.RetryWaitMin = time.Millisecond
	c.RetryWaitMax = time.Millisecond
	return NewLoader(c)
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0o644))
	return p
}

func TestLoadLogoFromFile(t *testing.T) {
	p := writeTemp(t, "logo.png", pngPixel)

	logo, err := newTestLoader().LoadLogo(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "image/png", logo.MediaType)
	assert.True(t, strings.HasPrefix(logo.DataURI, "data:image/png;base64,"))
}

func TestLoadLogoFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Write([]byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`))
	}))
	defer srv.Close()

	logo, err := newTestLoader().LoadLogo(context.Background(), srv.URL+"/brand")
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", logo.MediaType)
}

func TestLoadLogoFailures(t *testing.T) {
	l := newTestLoader()
	ctx := context.Background()

	_, err := l.LoadLogo(ctx, "")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = l.LoadLogo(ctx, filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = l.LoadLogo(ctx, writeTemp(t, "logo.txt", []byte("plain text")))
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestLoadBoundariesFromFile(t *testing.T) {
	p := writeTemp(t, "gadm41_BEN_1.json", []byte(sampleGeoJSON))

	b, err := newTestLoader().LoadBoundaries(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "NAME_1", b.NameProperty)
	assert.Len(t, b.Features, 3)

	f, ok := b.Lookup("Oueme")
	require.True(t, ok, "accent-insensitive lookup failed")
	assert.Equal(t, "Ouémé", f.Name)
	assert.Contains(t, f.Raw, `"BEN.10_1"`)

	_, ok = b.Lookup("  LITTORAL ")
	assert.True(t, ok)

	assert.Equal(t, []string{"Zou"}, b.Unmatched([]string{"Alibori", "Zou", "Ouémé"}))
}

func TestLoadBoundariesFromURL(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/geo+json")
		w.Write([]byte(sampleGeoJSON))
	}))
	defer srv.Close()

	b, err := newTestLoader().LoadBoundaries(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, b.Features, 3)
	assert.Equal(t, 2, hits)
}

func TestLoadBoundariesRejectsHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><title>Sign in</title></html>"))
	}))
	defer srv.Close()

	_, err := newTestLoader().LoadBoundaries(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Sign in")
}

func TestParseBoundariesInvalid(t *testing.T) {
	tests := map[string]string{
		"not json":        `{"type":`,
		"not a FC":        `{"type": "Feature", "properties": {}}`,
		"no features":     `{"type": "FeatureCollection", "features": []}`,
		"no name columns": `{"type": "FeatureCollection", "features": [{"type": "Feature", "properties": {"id": 1}}]}`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseBoundaries([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalidBoundaries)
		})
	}
}

func TestParseBoundariesPropertyPriority(t *testing.T) {
	doc := `{"type": "FeatureCollection", "features": [
		{"type": "Feature", "properties": {"name": "Zou", "ADM1_NAME": "ZOU"}}
	]}`
	b, err := ParseBoundaries([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "ADM1_NAME", b.NameProperty)
}

func TestNormalizeRegion(t *testing.T) {
	assert.Equal(t, NormalizeRegion("Ouémé"), NormalizeRegion("OUEME"))
	assert.Equal(t, "atlantique", NormalizeRegion(" Atlantique "))
}

func TestNilBoundariesLookup(t *testing.T) {
	var b *Boundaries
	_, ok := b.Lookup("Zou")
	assert.False(t, ok)
}
