// Package assets loads the dashboard's external artifacts: the brand logo and the
// regional boundary file. Both are optional; callers degrade to placeholders when a
// load fails.
package assets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	homedir "github.com/mitchellh/go-homedir"

	"github.com/sdboard/sdboard/pkg/whttp"
)

var (
	// ErrNotConfigured is returned when an asset location is empty.
	ErrNotConfigured = errors.New("asset location not configured")
	// ErrUnsupportedImage is returned when a logo is neither PNG, JPEG nor SVG.
	ErrUnsupportedImage = errors.New("unsupported image type")
	// ErrInvalidBoundaries is returned when a boundary file is not a usable FeatureCollection.
	ErrInvalidBoundaries = errors.New("invalid boundary file")
)

// Loader reads assets from local paths or http(s) URLs.
type Loader struct {
	client *retryablehttp.Client
}

// NewLoader returns a loader that fetches remote locations with client.
func NewLoader(client *retryablehttp.Client) *Loader {
	return &Loader{client: client}
}

func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

func (l *Loader) read(ctx context.Context, location string) ([]byte, string, error) {
	if strings.TrimSpace(location) == "" {
		return nil, "", ErrNotConfigured
	}

	if isRemote(location) {
		if l.client == nil {
			return nil, "", fmt.Errorf("%s: no http client configured", location)
		}
		res, err := whttp.Get(ctx, l.client, &whttp.Request{URL: location})
		if err != nil {
			return nil, "", err
		}
		if res.HTMLTitle != "" {
			return nil, "", fmt.Errorf("%s: got an HTML page (%q)", location, res.HTMLTitle)
		}
		return res.Body, res.ContentType, nil
	}

	path, err := homedir.Expand(location)
	if err != nil {
		return nil, "", err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	return b, "", nil
}

// Status records the outcome of one asset load for the debug page.
type Status struct {
	Name     string        `json:"name"`
	Location string        `json:"location"`
	Loaded   bool          `json:"loaded"`
	Error    string        `json:"error,omitempty"`
	Took     time.Duration `json:"took"`
}

// NewStatus builds a Status from a load result.
func NewStatus(name, location string, took time.Duration, err error) Status {
	s := Status{Name: name, Location: location, Loaded: err == nil, Took: took}
	if err != nil {
		s.Error = err.Error()
	}
	return s
}
