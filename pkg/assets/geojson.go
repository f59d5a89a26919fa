package assets

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
)

// NameProperties are the feature properties searched, in order, for a region name.
var NameProperties = []string{"NAME_1", "ADM1_NAME", "name", "Name", "ADM1_EN"}

// Feature is one region outline, kept as raw GeoJSON.
type Feature struct {
	Name string
	Raw  string
}

// Boundaries is a FeatureCollection indexed by normalised region name.
type Boundaries struct {
	NameProperty string
	Features     []Feature
	index        map[string]int
}

// LoadBoundaries reads a GeoJSON FeatureCollection and indexes its features by region
// name. Geometry is passed through unchecked.
func (l *Loader) LoadBoundaries(ctx context.Context, location string) (*Boundaries, error) {
	b, _, err := l.read(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("boundaries: %w", err)
	}
	return ParseBoundaries(b)
}

// ParseBoundaries indexes an in-memory FeatureCollection.
func ParseBoundaries(data []byte) (*Boundaries, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidBoundaries)
	}
	doc := gjson.ParseBytes(data)
	if t := doc.Get("type").String(); t != "FeatureCollection" {
		return nil, fmt.Errorf("%w: type %q, want FeatureCollection", ErrInvalidBoundaries, t)
	}
	features := doc.Get("features").Array()
	if len(features) == 0 {
		return nil, fmt.Errorf("%w: no features", ErrInvalidBoundaries)
	}

	prop := ""
	for _, candidate := range NameProperties {
		if features[0].Get("properties." + candidate).Exists() {
			prop = candidate
			break
		}
	}
	if prop == "" {
		return nil, fmt.Errorf("%w: no region name property among %v", ErrInvalidBoundaries, NameProperties)
	}

	out := &Boundaries{
		NameProperty: prop,
		Features:     make([]Feature, 0, len(features)),
		index:        make(map[string]int, len(features)),
	}
	for _, f := range features {
		name := f.Get("properties." + prop).String()
		if name == "" {
			continue
		}
		out.index[NormalizeRegion(name)] = len(out.Features)
		out.Features = append(out.Features, Feature{Name: name, Raw: f.Raw})
	}
	return out, nil
}

// Lookup finds the feature for region, ignoring case and accents.
func (b *Boundaries) Lookup(region string) (Feature, bool) {
	if b == nil {
		return Feature{}, false
	}
	i, ok := b.index[NormalizeRegion(region)]
	if !ok {
		return Feature{}, false
	}
	return b.Features[i], true
}

// Unmatched returns the regions that have no feature.
func (b *Boundaries) Unmatched(regions []string) []string {
	var out []string
	for _, r := range regions {
		if _, ok := b.Lookup(r); !ok {
			out = append(out, r)
		}
	}
	return out
}
