package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("expected valid default catalog, got %v", err)
	}
}

func TestBandBoundaries(t *testing.T) {
	cat := Default()
	cases := []struct {
		liters float64
		label  string
	}{
		{0, "Dug Well / Small Pit"},
		{49999, "Dug Well / Small Pit"},
		{50000, "Percolation Pit / Tank"},
		{199999, "Percolation Pit / Tank"},
		{200000, "Recharge Shaft / Large Pit"},
		{499999, "Recharge Shaft / Large Pit"},
		{500000, "Injection Well / Large-scale recharge"},
		{5000000, "Injection Well / Large-scale recharge"},
	}
	for _, tc := range cases {
		if got := cat.Band(tc.liters).Label; got != tc.label {
			t.Fatalf("band(%f): expected %q, got %q", tc.liters, tc.label, got)
		}
	}
}

func TestValidate_BandGap(t *testing.T) {
	cat := Default()
	cat.AquiferBands[1].MinLitersYear = 60000
	if err := cat.Validate(); err == nil {
		t.Fatalf("expected error for band gap")
	}
}

func TestValidate_LastBandMustBeOpenEnded(t *testing.T) {
	cat := Default()
	cat.AquiferBands[len(cat.AquiferBands)-1].MaxLitersYear = 900000
	if err := cat.Validate(); err == nil {
		t.Fatalf("expected error for closed last band")
	}
}

func TestValidate_UnknownFilterStrategy(t *testing.T) {
	cat := Default()
	cat.FilterStrategy = "largest"
	if err := cat.Validate(); err == nil {
		t.Fatalf("expected error for unknown filter strategy")
	}
}

func TestValidate_UnknownDefaultSoil(t *testing.T) {
	cat := Default()
	cat.DefaultSoil = "volcanic"
	if err := cat.Validate(); err == nil {
		t.Fatalf("expected error for unknown default soil")
	}
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cat, err := Load("")
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cat.PitCostPerM3 != 800 {
		t.Fatalf("expected default pit cost 800, got %f", cat.PitCostPerM3)
	}
}

func TestLoad_YAMLOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := "pit_cost_per_m3: 1000\nfilter_strategy: least-surplus\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cat.PitCostPerM3 != 1000 {
		t.Fatalf("expected overridden pit cost 1000, got %f", cat.PitCostPerM3)
	}
	if cat.FilterStrategy != "least-surplus" {
		t.Fatalf("expected overridden strategy, got %q", cat.FilterStrategy)
	}
	if len(cat.Pipes) != 4 {
		t.Fatalf("expected default pipes preserved, got %d", len(cat.Pipes))
	}
}

func TestLoad_InvalidOverrideRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte("filter_strategy: largest\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error for bad override")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
