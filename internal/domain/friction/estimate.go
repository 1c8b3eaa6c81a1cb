package friction

import "math"

const (
	hoursPerWeek = 40
	weeksPerYear = 52
)

// Estimate is the friction cost derived from one Intake
type Estimate struct {
	Multiplier        float64 `json:"multiplier" gorm:"column:multiplier"`
	TotalDelayHours   float64 `json:"total_delay_hours" gorm:"column:total_delay_hours"`
	DirectCost        float64 `json:"direct_cost" gorm:"column:direct_cost"`
	OpportunityCost   float64 `json:"opportunity_cost" gorm:"column:opportunity_cost"`
	TotalFrictionCost float64 `json:"total_friction_cost" gorm:"column:total_friction_cost"`
	WeeksLost         float64 `json:"weeks_lost" gorm:"column:weeks_lost"`
	CapacityLossPct   float64 `json:"capacity_loss_pct" gorm:"column:capacity_loss_pct"`
}

// Model computes friction estimates against a fixed role preset table.
// It holds no mutable state and is safe for concurrent use.
type Model struct {
	multipliers map[string]float64
}

// NewModel builds a model from presets. The presets are copied.
func NewModel(p Presets) *Model {
	m := &Model{multipliers: make(map[string]float64, len(p.Roles))}
	for _, r := range p.Roles {
		m.multipliers[r.Key] = r.Multiplier
	}
	return m
}

// Multiplier resolves the opportunity-cost multiplier for an intake
func (m *Model) Multiplier(in Intake) (float64, error) {
	if in.RoleType == RoleCustom {
		if in.Multiplier == nil {
			return 0, invalid("multiplier", "required for custom role type")
		}
		v := *in.Multiplier
		if !finite(v) || v < MinMultiplier || v > MaxMultiplier {
			return 0, invalid("multiplier", "must be between %.1f and %.1f, got %v", MinMultiplier, MaxMultiplier, v)
		}
		return v, nil
	}
	v, ok := m.multipliers[in.RoleType]
	if !ok {
		return 0, invalid("role_type", "unknown role type %q", in.RoleType)
	}
	return v, nil
}

// Estimate validates the intake and computes the friction estimate.
// Invalid input yields an *InvalidInputError and a zero Estimate.
func (m *Model) Estimate(in Intake) (Estimate, error) {
	if err := validateIntake(in); err != nil {
		return Estimate{}, err
	}
	mult, err := m.Multiplier(in)
	if err != nil {
		return Estimate{}, err
	}
	est := compute(in.ProcessDelayHours, in.AffectedPeople, in.HourlyRate, mult)
	if err := checkFinite(est); err != nil {
		return Estimate{}, err
	}
	return est, nil
}

// checkFinite rejects inputs that are finite on their own but overflow the
// products. The hour totals are blamed on the delay, the costs on the rate.
func checkFinite(est Estimate) error {
	if !finite(est.TotalDelayHours) || !finite(est.WeeksLost) || !finite(est.CapacityLossPct) {
		return invalid("process_delay_hours", "result overflows, got %v total hours", est.TotalDelayHours)
	}
	if !finite(est.DirectCost) || !finite(est.OpportunityCost) || !finite(est.TotalFrictionCost) {
		return invalid("hourly_rate", "result overflows, got %v direct cost", est.DirectCost)
	}
	return nil
}

func compute(delayHours float64, people int, rate, mult float64) Estimate {
	total := delayHours * float64(people)
	direct := total * rate
	opportunity := direct * mult
	weeks := total / hoursPerWeek

	var capacity float64
	if weeks > 0 {
		capacity = (weeks / weeksPerYear) * 100
	}

	return Estimate{
		Multiplier:        mult,
		TotalDelayHours:   total,
		DirectCost:        direct,
		OpportunityCost:   opportunity,
		TotalFrictionCost: direct + opportunity,
		WeeksLost:         weeks,
		CapacityLossPct:   capacity,
	}
}

func validateIntake(in Intake) error {
	if !in.OrganizationSize.Valid() {
		return invalid("organization_size", "unknown size %q", in.OrganizationSize)
	}
	if !in.Industry.Valid() {
		return invalid("industry", "unknown industry %q", in.Industry)
	}
	if !finite(in.ProcessDelayHours) || in.ProcessDelayHours < 0 {
		return invalid("process_delay_hours", "must be a non-negative number, got %v", in.ProcessDelayHours)
	}
	if in.AffectedPeople < 1 {
		return invalid("affected_people", "must be at least 1, got %d", in.AffectedPeople)
	}
	if !finite(in.HourlyRate) || in.HourlyRate < 0 {
		return invalid("hourly_rate", "must be a non-negative number, got %v", in.HourlyRate)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
