// Package brand loads brand configuration documents. A brand config is an
// arbitrary structured document with at least a name/sector identity and
// free-form descriptive sections; beyond the identity it is treated as an
// opaque context payload passed through to prompts, and its schema is not
// validated here.
package brand

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is a parsed brand configuration document.
type Config map[string]any

// Load reads a brand configuration from a JSON or YAML file, chosen by
// extension (.yaml / .yml parse as YAML, everything else as JSON).
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("brand: read config: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("brand: parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("brand: parse %s: %w", path, err)
		}
	}
	return cfg, nil
}

// Name returns meta.name, or "Unnamed Project" when absent.
func (c Config) Name() string {
	if name := c.metaField("name"); name != "" {
		return name
	}
	return "Unnamed Project"
}

// Sector returns meta.sector, or "General" when absent.
func (c Config) Sector() string {
	if sector := c.metaField("sector"); sector != "" {
		return sector
	}
	return "General"
}

func (c Config) metaField(key string) string {
	meta, ok := c["meta"].(map[string]any)
	if !ok {
		return ""
	}
	value, _ := meta[key].(string)
	return value
}
