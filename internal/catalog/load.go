package catalog

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Load returns the built-in catalog, optionally overlaid with a YAML file
// when path is non-empty. The merged catalog is validated before use.
func Load(path string) (Catalog, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
