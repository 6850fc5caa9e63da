package geo

import "math"

// Polygon is an ordered ring of vertices. The ring is implicitly closed: a
// trailing vertex equal to the first is tolerated and ignored.
type Polygon struct {
	Vertices []Point
}

// NewPolygon creates a polygon from a list of vertices.
func NewPolygon(pts ...Point) Polygon {
	return Polygon{Vertices: pts}
}

// BBox is an axis-aligned bounding box in degrees.
type BBox struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLng float64 `json:"max_lng"`
}

// Dims holds bounding-box dimensions in meters.
type Dims struct {
	WidthM  float64 `json:"width_m"`
	HeightM float64 `json:"height_m"`
}

// ring returns the open ring (without a duplicated closing vertex).
func (p Polygon) ring() []Point {
	n := len(p.Vertices)
	if n > 1 && p.Vertices[0] == p.Vertices[n-1] {
		return p.Vertices[:n-1]
	}
	return p.Vertices
}

// IsEmpty reports whether the ring has fewer than 3 distinct vertices and
// therefore cannot enclose an area. Callers treat empty polygons as "no
// geometry", not as an error.
func (p Polygon) IsEmpty() bool {
	return len(p.ring()) < 3
}

// Area returns the enclosed planar area in square meters, using the shoelace
// formula over vertices projected to meters around the ring's mean latitude.
// Empty polygons report 0.
func (p Polygon) Area() float64 {
	ring := p.ring()
	if len(ring) < 3 {
		return 0
	}
	meanLat := 0.0
	for _, v := range ring {
		meanLat += v.Lat
	}
	meanLat /= float64(len(ring))

	area := 0.0
	for i := range ring {
		j := (i + 1) % len(ring)
		xi, yi := DegreesLngToMeters(ring[i].Lng, meanLat), DegreesLatToMeters(ring[i].Lat)
		xj, yj := DegreesLngToMeters(ring[j].Lng, meanLat), DegreesLatToMeters(ring[j].Lat)
		area += xi*yj - xj*yi
	}
	return math.Abs(area) / 2
}

// Perimeter returns the ring length in meters as a sum of great-circle
// distances between consecutive vertices, including the closing edge.
func (p Polygon) Perimeter() float64 {
	ring := p.ring()
	if len(ring) < 3 {
		return 0
	}
	total := 0.0
	for i := range ring {
		j := (i + 1) % len(ring)
		total += HaversineMeters(ring[i], ring[j])
	}
	return total
}

// Centroid returns the vertex average. Empty polygons report the zero point.
func (p Polygon) Centroid() Point {
	ring := p.ring()
	if len(ring) == 0 {
		return Point{}
	}
	var sumLat, sumLng float64
	for _, v := range ring {
		sumLat += v.Lat
		sumLng += v.Lng
	}
	n := float64(len(ring))
	return Point{Lat: sumLat / n, Lng: sumLng / n}
}

// Bounds returns the bounding box in degrees.
func (p Polygon) Bounds() BBox {
	ring := p.ring()
	if len(ring) == 0 {
		return BBox{}
	}
	box := BBox{
		MinLat: ring[0].Lat, MaxLat: ring[0].Lat,
		MinLng: ring[0].Lng, MaxLng: ring[0].Lng,
	}
	for _, v := range ring[1:] {
		box.MinLat = math.Min(box.MinLat, v.Lat)
		box.MaxLat = math.Max(box.MaxLat, v.Lat)
		box.MinLng = math.Min(box.MinLng, v.Lng)
		box.MaxLng = math.Max(box.MaxLng, v.Lng)
	}
	return box
}

// BoundsDims measures the bounding box in meters: width along the
// min-latitude edge and height along the min-longitude edge, both via
// great-circle distance rather than flat degree scaling.
func (p Polygon) BoundsDims() Dims {
	if p.IsEmpty() {
		return Dims{}
	}
	box := p.Bounds()
	width := HaversineMeters(
		Point{Lat: box.MinLat, Lng: box.MinLng},
		Point{Lat: box.MinLat, Lng: box.MaxLng},
	)
	height := HaversineMeters(
		Point{Lat: box.MinLat, Lng: box.MinLng},
		Point{Lat: box.MaxLat, Lng: box.MinLng},
	)
	return Dims{WidthM: width, HeightM: height}
}

// Diagonal returns the bounding-box diagonal length in meters.
func (p Polygon) Diagonal() float64 {
	dims := p.BoundsDims()
	return math.Hypot(dims.WidthM, dims.HeightM)
}
