// README: Deterministic hash-based coordinate resolver for environments without geocoding.
package geo

import (
	"context"
	"hash/fnv"

	"github.com/mmcloughlin/geohash"

	"medtransit/internal/types"
)

const (
	// mockSpanDegrees is the size of the synthetic service area the mock
	// scatters locations across (roughly a metro area).
	mockSpanDegrees = 0.5
	// mockCellPrecision snaps every resolved point to a geohash cell
	// (~±2.4km at 5 chars) so callers can only ever rely on coarse
	// near/far buckets, never sub-mile precision.
	mockCellPrecision = 5
)

// MockResolver derives stable synthetic coordinates from the text itself.
// Identical text always resolves to the identical point, which keeps
// proximity scoring deterministic across runs.
type MockResolver struct {
	base types.Point
}

func NewMockResolver(base types.Point) *MockResolver {
	return &MockResolver{base: base}
}

func (m *MockResolver) Resolve(_ context.Context, text string) (types.Point, bool, error) {
	if text == "" {
		return types.Point{}, false, nil
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	sum := h.Sum64()

	latOff := (float64(sum&0xFFFF)/0xFFFF - 0.5) * mockSpanDegrees
	lngOff := (float64((sum>>16)&0xFFFF)/0xFFFF - 0.5) * mockSpanDegrees

	cell := geohash.EncodeWithPrecision(m.base.Lat+latOff, m.base.Lng+lngOff, mockCellPrecision)
	lat, lng := geohash.DecodeCenter(cell)
	return types.Point{Lat: lat, Lng: lng}, true, nil
}
