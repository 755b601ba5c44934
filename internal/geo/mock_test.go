// README: Mock resolver and distance helper tests.
package geo

import (
	"context"
	"testing"

	"github.com/mmcloughlin/geohash"

	"medtransit/internal/types"
)

var dallas = types.Point{Lat: 32.7767, Lng: -96.7970}

func TestMockResolver_Deterministic(t *testing.T) {
	r := NewMockResolver(dallas)
	ctx := context.Background()

	first, ok, err := r.Resolve(ctx, "1441 N Beckley Ave, Dallas, TX")
	if err != nil || !ok {
		t.Fatalf("Resolve failed: ok=%v err=%v", ok, err)
	}
	for i := 0; i < 5; i++ {
		again, ok, err := r.Resolve(ctx, "1441 N Beckley Ave, Dallas, TX")
		if err != nil || !ok {
			t.Fatalf("repeat Resolve failed: ok=%v err=%v", ok, err)
		}
		if again != first {
			t.Fatalf("same text resolved differently: %+v vs %+v", first, again)
		}
	}
}

func TestMockResolver_DistinctTexts(t *testing.T) {
	r := NewMockResolver(dallas)
	ctx := context.Background()

	a, _, _ := r.Resolve(ctx, "Parkland Hospital")
	b, _, _ := r.Resolve(ctx, "Baylor Medical Center")
	if a == b {
		t.Errorf("distinct addresses hashed to the same point: %+v", a)
	}
}

func TestMockResolver_EmptyText(t *testing.T) {
	r := NewMockResolver(dallas)
	_, ok, err := r.Resolve(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("empty text must not resolve")
	}
}

func TestMockResolver_SnapsToCellCenter(t *testing.T) {
	r := NewMockResolver(dallas)
	p, ok, err := r.Resolve(context.Background(), "Methodist Dallas")
	if err != nil || !ok {
		t.Fatalf("Resolve failed: ok=%v err=%v", ok, err)
	}

	cell := geohash.EncodeWithPrecision(p.Lat, p.Lng, mockCellPrecision)
	lat, lng := geohash.DecodeCenter(cell)
	if p.Lat != lat || p.Lng != lng {
		t.Errorf("resolved point %+v is not a cell center (%f, %f)", p, lat, lng)
	}
}

func TestMockResolver_StaysNearBase(t *testing.T) {
	r := NewMockResolver(dallas)
	ctx := context.Background()
	for _, text := range []string{"a", "b", "clinic one", "clinic two", "dialysis center east"} {
		p, ok, err := r.Resolve(ctx, text)
		if err != nil || !ok {
			t.Fatalf("Resolve(%q) failed: ok=%v err=%v", text, ok, err)
		}
		// Half a degree of span plus cell snapping keeps everything well
		// inside 60 miles of the base point.
		if d := MilesBetween(dallas, p); d > 60 {
			t.Errorf("Resolve(%q) = %+v, %.1f mi from base", text, p, d)
		}
	}
}

func TestMilesBetween(t *testing.T) {
	if d := MilesBetween(dallas, dallas); d != 0 {
		t.Errorf("zero distance = %f", d)
	}

	// Dallas to Fort Worth is about 31 miles.
	fortWorth := types.Point{Lat: 32.7555, Lng: -97.3308}
	d := MilesBetween(dallas, fortWorth)
	if d < 29 || d > 33 {
		t.Errorf("Dallas-Fort Worth = %.1f mi, want roughly 31", d)
	}

	// Symmetric.
	if back := MilesBetween(fortWorth, dallas); back != d {
		t.Errorf("distance not symmetric: %f vs %f", d, back)
	}
}
