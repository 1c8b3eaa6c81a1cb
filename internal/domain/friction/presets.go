package friction

import "fmt"

// RolePreset maps a role type to its opportunity-cost multiplier
type RolePreset struct {
	Key        string  `yaml:"key" json:"key"`
	Label      string  `yaml:"label" json:"label"`
	Multiplier float64 `yaml:"multiplier" json:"multiplier"`
}

// Presets is the static lookup data supplied at startup.
// Benchmarks holds a reference capacity-loss percentage per industry.
type Presets struct {
	Roles      []RolePreset         `yaml:"roles" json:"roles"`
	Benchmarks map[Industry]float64 `yaml:"industry_benchmarks" json:"industry_benchmarks"`
}

// Check verifies that every preset is usable by the cost model
func (p Presets) Check() error {
	if len(p.Roles) == 0 {
		return fmt.Errorf("no role presets defined")
	}
	seen := make(map[string]bool, len(p.Roles))
	for _, r := range p.Roles {
		if r.Key == "" {
			return fmt.Errorf("role preset with empty key")
		}
		if r.Key == RoleCustom {
			return fmt.Errorf("role preset key %q is reserved", RoleCustom)
		}
		if seen[r.Key] {
			return fmt.Errorf("duplicate role preset %q", r.Key)
		}
		seen[r.Key] = true
		if r.Multiplier < MinMultiplier || r.Multiplier > MaxMultiplier {
			return fmt.Errorf("role preset %q multiplier %.2f outside [%.0f, %.0f]", r.Key, r.Multiplier, MinMultiplier, MaxMultiplier)
		}
	}
	for ind := range p.Benchmarks {
		if !ind.Valid() {
			return fmt.Errorf("benchmark for unknown industry %q", ind)
		}
	}
	return nil
}

// Benchmark returns the reference capacity-loss percentage for an industry
func (p Presets) Benchmark(ind Industry) (float64, bool) {
	v, ok := p.Benchmarks[ind]
	return v, ok
}
