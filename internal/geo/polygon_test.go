package geo

import (
	"math"
	"testing"
)

// side of a ~100 m square expressed in degrees of latitude.
const sideDeg = 100.0 / metersPerDegreeLat

func squareAtEquator() Polygon {
	return NewPolygon(
		Point{Lat: 0, Lng: 0},
		Point{Lat: 0, Lng: sideDeg},
		Point{Lat: sideDeg, Lng: sideDeg},
		Point{Lat: sideDeg, Lng: 0},
	)
}

func TestHaversineMeters_OneDegreeAtEquator(t *testing.T) {
	got := HaversineMeters(Point{Lat: 0, Lng: 0}, Point{Lat: 0, Lng: 1})
	want := 2 * math.Pi * earthRadiusM / 360
	if math.Abs(got-want) > 1 {
		t.Fatalf("expected ~%.1f m, got %.1f m", want, got)
	}
}

func TestPolygonArea_Square(t *testing.T) {
	area := squareAtEquator().Area()
	if math.Abs(area-10000) > 10 {
		t.Fatalf("expected ~10000 m2, got %f", area)
	}
}

func TestPolygon_TooFewVertices(t *testing.T) {
	p := NewPolygon(Point{Lat: 0, Lng: 0}, Point{Lat: 0, Lng: sideDeg})
	if !p.IsEmpty() {
		t.Fatalf("expected empty polygon")
	}
	if area := p.Area(); area != 0 {
		t.Fatalf("expected zero area, got %f", area)
	}
	if perim := p.Perimeter(); perim != 0 {
		t.Fatalf("expected zero perimeter, got %f", perim)
	}
}

func TestPolygon_ClosingVertexIgnored(t *testing.T) {
	open := squareAtEquator()
	closed := NewPolygon(append(open.Vertices, open.Vertices[0])...)
	if math.Abs(open.Area()-closed.Area()) > 1e-9 {
		t.Fatalf("expected identical area, got %f and %f", open.Area(), closed.Area())
	}
	if math.Abs(open.Perimeter()-closed.Perimeter()) > 1e-9 {
		t.Fatalf("expected identical perimeter, got %f and %f", open.Perimeter(), closed.Perimeter())
	}
}

func TestPolygonPerimeter_Square(t *testing.T) {
	perim := squareAtEquator().Perimeter()
	if math.Abs(perim-400) > 1 {
		t.Fatalf("expected ~400 m, got %f", perim)
	}
}

func TestPolygonBoundsDims_Square(t *testing.T) {
	dims := squareAtEquator().BoundsDims()
	if math.Abs(dims.WidthM-100) > 1 || math.Abs(dims.HeightM-100) > 1 {
		t.Fatalf("expected ~100x100 m, got %fx%f", dims.WidthM, dims.HeightM)
	}
	diagonal := squareAtEquator().Diagonal()
	if math.Abs(diagonal-100*math.Sqrt2) > 1 {
		t.Fatalf("expected ~141.4 m diagonal, got %f", diagonal)
	}
}

func TestPolygonCentroid_Square(t *testing.T) {
	c := squareAtEquator().Centroid()
	if math.Abs(c.Lat-sideDeg/2) > 1e-12 || math.Abs(c.Lng-sideDeg/2) > 1e-12 {
		t.Fatalf("unexpected centroid %+v", c)
	}
}

func TestPointIsFinite(t *testing.T) {
	if !(Point{Lat: 12.9, Lng: 77.5}).IsFinite() {
		t.Fatalf("expected finite point")
	}
	if (Point{Lat: math.NaN(), Lng: 0}).IsFinite() {
		t.Fatalf("expected NaN point to be non-finite")
	}
	if (Point{Lat: 0, Lng: math.Inf(1)}).IsFinite() {
		t.Fatalf("expected Inf point to be non-finite")
	}
}

func TestDegreeToMeterConversions(t *testing.T) {
	if got := DegreesLatToMeters(1); math.Abs(got-111320) > 1e-9 {
		t.Fatalf("expected 111320 m per degree latitude, got %f", got)
	}
	if got := DegreesLngToMeters(1, 0); math.Abs(got-111320) > 1e-9 {
		t.Fatalf("expected full scale at the equator, got %f", got)
	}
	if got := DegreesLngToMeters(1, 60); math.Abs(got-111320*0.5) > 1e-6 {
		t.Fatalf("expected half scale at 60 degrees, got %f", got)
	}
	if got := DegreesLngToMeters(-1, 0); math.Abs(got+111320) > 1e-9 {
		t.Fatalf("expected sign preserved, got %f", got)
	}
}

func TestPolygonArea_WesternHemisphere(t *testing.T) {
	side := sideDeg
	p := NewPolygon(
		Point{Lat: 0, Lng: -side},
		Point{Lat: 0, Lng: 0},
		Point{Lat: side, Lng: 0},
		Point{Lat: side, Lng: -side},
	)
	if got := p.Area(); math.Abs(got-10000) > 10 {
		t.Fatalf("expected ~10000 m2 for negative longitudes, got %f", got)
	}
}
