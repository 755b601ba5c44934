// README: Google Maps geocoding resolver.
package geo

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"medtransit/internal/types"
)

// GoogleResolver resolves addresses through the Google Geocoding API.
type GoogleResolver struct {
	client *maps.Client
}

func NewGoogleResolver(apiKey string) (*GoogleResolver, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleResolver{client: client}, nil
}

func (g *GoogleResolver) Resolve(ctx context.Context, text string) (types.Point, bool, error) {
	if text == "" {
		return types.Point{}, false, nil
	}
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: text})
	if err != nil {
		return types.Point{}, false, fmt.Errorf("geocode %q: %w", text, err)
	}
	if len(results) == 0 {
		return types.Point{}, false, nil
	}
	loc := results[0].Geometry.Location
	return types.Point{Lat: loc.Lat, Lng: loc.Lng}, true, nil
}
