package domain

import (
	"errors"
	"math"
	"testing"

	"rainharvest-cloud/internal/catalog"
	"rainharvest-cloud/internal/geo"
)

func TestNormalize_FillsDefaults(t *testing.T) {
	cat := catalog.Default()
	in := SiteInput{Lat: 12.9, Lng: 77.5, RoofArea: 100, RoofType: "Concrete"}
	out := in.Normalize(cat)

	if out.RoofType != "concrete" {
		t.Fatalf("expected lowercased roof type, got %q", out.RoofType)
	}
	if out.SoilType != "loamy" {
		t.Fatalf("expected default soil, got %q", out.SoilType)
	}
	if out.AvgFloorHeight != 3.0 {
		t.Fatalf("expected default floor height, got %f", out.AvgFloorHeight)
	}
	if out.WetMonths != 4 {
		t.Fatalf("expected default wet months, got %d", out.WetMonths)
	}
	if out.FilterSafetyFactor != 1.5 {
		t.Fatalf("expected default safety factor, got %f", out.FilterSafetyFactor)
	}
	if out.PitCostPerM3 != 800 {
		t.Fatalf("expected default pit cost, got %f", out.PitCostPerM3)
	}
}

func TestNormalize_ClearsGroundFieldsWhenExcluded(t *testing.T) {
	cat := catalog.Default()
	coeff := 0.4
	in := SiteInput{
		Lat: 12.9, Lng: 77.5, RoofArea: 100, RoofType: "concrete",
		GroundArea: 50, GroundSurfaces: []string{"asphalt"}, GroundRunoffCoeff: &coeff,
	}
	out := in.Normalize(cat)
	if out.GroundArea != 0 || out.GroundSurfaces != nil || out.GroundRunoffCoeff != nil {
		t.Fatalf("expected ground fields cleared, got %+v", out)
	}
}

func TestValidate_FieldErrors(t *testing.T) {
	coeffHigh := 1.5
	cases := []struct {
		name  string
		in    SiteInput
		field string
	}{
		{"lat range", SiteInput{Lat: 91, Lng: 0, RoofArea: 100, RoofType: "concrete"}, "lat"},
		{"lng range", SiteInput{Lat: 0, Lng: -181, RoofArea: 100, RoofType: "concrete"}, "lng"},
		{"lat nan", SiteInput{Lat: math.NaN(), Lng: 0, RoofArea: 100, RoofType: "concrete"}, "lat"},
		{"roof area", SiteInput{Lat: 0, Lng: 0, RoofArea: 0, RoofType: "concrete"}, "roof_area_m2"},
		{"roof type", SiteInput{Lat: 0, Lng: 0, RoofArea: 100}, "roof_type"},
		{"dwellers", SiteInput{Lat: 0, Lng: 0, RoofArea: 100, RoofType: "concrete", Dwellers: -1}, "dwellers"},
		{"ground area", SiteInput{Lat: 0, Lng: 0, RoofArea: 100, RoofType: "concrete", IncludeGround: true}, "ground_area_m2"},
		{"ground coeff", SiteInput{Lat: 0, Lng: 0, RoofArea: 100, RoofType: "concrete", IncludeGround: true, GroundArea: 50, GroundRunoffCoeff: &coeffHigh}, "ground_runoff_coeff"},
		{"polygon vertex", SiteInput{Lat: 0, Lng: 0, RoofArea: 100, RoofType: "concrete", RoofPolygon: []geo.Point{{Lat: math.Inf(1), Lng: 0}}}, "roof_polygon"},
	}
	for _, tc := range cases {
		err := tc.in.Validate()
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected ValidationError, got %T", tc.name, err)
		}
		if verr.Field != tc.field {
			t.Fatalf("%s: expected field %q, got %q", tc.name, tc.field, verr.Field)
		}
	}
}

func TestValidate_ShortPolygonIsAccepted(t *testing.T) {
	in := SiteInput{
		Lat: 12.9, Lng: 77.5, RoofArea: 100, RoofType: "concrete",
		RoofPolygon: []geo.Point{{Lat: 12.9, Lng: 77.5}, {Lat: 12.901, Lng: 77.5}},
	}
	if err := in.Validate(); err != nil {
		t.Fatalf("expected short polygon to pass validation, got %v", err)
	}
}
