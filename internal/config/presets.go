package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"gfi/internal/domain/friction"
)

//go:embed presets.yaml
var defaultPresets []byte

// LoadPresets reads the role/benchmark tables. An empty path selects the
// embedded defaults.
func LoadPresets(path string) (friction.Presets, error) {
	data := defaultPresets
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return friction.Presets{}, &ConfigurationError{Key: "GFI_PRESETS_FILE", Reason: "cannot read presets file", Err: err}
		}
		data = b
	}
	return ParsePresets(data)
}

// ParsePresets decodes and checks a YAML presets document
func ParsePresets(data []byte) (friction.Presets, error) {
	var p friction.Presets
	if err := yaml.Unmarshal(data, &p); err != nil {
		return friction.Presets{}, &ConfigurationError{Key: "GFI_PRESETS_FILE", Reason: "invalid YAML", Err: err}
	}
	if err := p.Check(); err != nil {
		return friction.Presets{}, &ConfigurationError{Key: "GFI_PRESETS_FILE", Reason: fmt.Sprintf("invalid presets: %v", err), Err: err}
	}
	return p, nil
}
