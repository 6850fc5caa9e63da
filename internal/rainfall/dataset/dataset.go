package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Entry is one district record in the bundled rainfall dataset.
type Entry struct {
	District   string  `json:"district"`
	State      string  `json:"state"`
	RainfallMM float64 `json:"rainfall_mm"`
}

// ErrNotFound indicates the district is not in the dataset.
var ErrNotFound = errors.New("dataset: district not found")

// Dataset is an in-memory district -> rainfall lookup, keyed by normalized
// district name. Immutable after load.
type Dataset struct {
	byDistrict map[string]Entry
}

// Load reads a JSON dataset file of district rainfall entries.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse builds a dataset from raw JSON.
func Parse(data []byte) (*Dataset, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("dataset: invalid json: %w", err)
	}
	byDistrict := make(map[string]Entry, len(entries))
	for _, e := range entries {
		if e.District == "" {
			continue
		}
		byDistrict[normalize(e.District)] = e
	}
	return &Dataset{byDistrict: byDistrict}, nil
}

// Lookup finds a district entry by name, case-insensitively.
func (d *Dataset) Lookup(district string) (Entry, error) {
	if d == nil {
		return Entry{}, ErrNotFound
	}
	entry, ok := d.byDistrict[normalize(district)]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return entry, nil
}

// Len returns the number of districts loaded.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.byDistrict)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
