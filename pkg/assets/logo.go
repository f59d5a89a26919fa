package assets

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"path"
	"strings"
)

// Logo is an image ready to be inlined in an <img> tag.
type Logo struct {
	MediaType string
	DataURI   string
}

// LoadLogo reads a PNG, JPEG or SVG image and encodes it as a data URI.
func (l *Loader) LoadLogo(ctx context.Context, location string) (Logo, error) {
	b, contentType, err := l.read(ctx, location)
	if err != nil {
		return Logo{}, fmt.Errorf("logo: %w", err)
	}

	mt := imageType(b, contentType, location)
	if mt == "" {
		return Logo{}, fmt.Errorf("logo %s: %w", location, ErrUnsupportedImage)
	}

	return Logo{
		MediaType: mt,
		DataURI:   "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(b),
	}, nil
}

func imageType(b []byte, contentType, location string) string {
	switch http.DetectContentType(b) {
	case "image/png":
		return "image/png"
	case "image/jpeg":
		return "image/jpeg"
	}
	if contentType == "image/svg+xml" || strings.EqualFold(path.Ext(location), ".svg") {
		return "image/svg+xml"
	}
	return ""
}
