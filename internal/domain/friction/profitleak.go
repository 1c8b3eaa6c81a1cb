package friction

import "math"

// The profit-leak calculator is a separate configuration profile used by the
// Spanish landing page. Its formula is unrelated to Model.Estimate and is
// kept as-is rather than reconciled with it.

// EmployeeBand is a head-count range picked from the form
type EmployeeBand string

var employeeBands = []struct {
	band  EmployeeBand
	count int
}{
	{"1-10", 5},
	{"11-50", 30},
	{"51-200", 125},
	{"201-500", 350},
	{"501-1000", 750},
	{"1000+", 1500},
}

// EmployeeBands lists the accepted bands in display order
func EmployeeBands() []EmployeeBand {
	out := make([]EmployeeBand, len(employeeBands))
	for i, b := range employeeBands {
		out[i] = b.band
	}
	return out
}

// Employees returns the representative head count for the band
func (b EmployeeBand) Employees() (int, bool) {
	for _, e := range employeeBands {
		if e.band == b {
			return e.count, true
		}
	}
	return 0, false
}

const (
	workHoursPerYear      = 2080
	meetingWasteShare     = 0.4
	meetingWeeksPerYear   = 50
	projectValueShare     = 0.3
	delayImpactShare      = 0.2
	reworkImpactShare     = 0.15
	decisionWeeklyCost    = 500
	decisionReach         = 10
	turnoverCostFactor    = 1.5
	customerValueFactor   = 2
	customerImpactShare   = 0.1
	maxProfitLeakRisk     = 100
	highRiskThreshold     = 70
	moderateRiskThreshold = 40
)

// ProfitLeakIntake holds the twelve-question assessment answers
type ProfitLeakIntake struct {
	CompanyName           string       `json:"company_name"`
	EmployeeBand          EmployeeBand `json:"employee_band"`
	Industry              string       `json:"industry"`
	AvgSalary             float64      `json:"avg_salary"`
	RevenuePerEmployee    float64      `json:"revenue_per_employee"`
	MeetingHoursPerWeek   float64      `json:"meeting_hours_per_week"`
	ApprovalLayers        int          `json:"approval_layers"`
	ProjectDelayPct       float64      `json:"project_delay_pct"`
	ReworkPct             float64      `json:"rework_pct"`
	DecisionTimeDays      float64      `json:"decision_time_days"`
	TurnoverRate          float64      `json:"turnover_rate"`
	CustomerComplaintRate float64      `json:"customer_complaint_rate"`
}

// LeakCategory is one line of the profit-leak breakdown
type LeakCategory struct {
	Key    string  `json:"key"`
	Amount float64 `json:"amount"`
}

// RiskBand is the coarse profit-leak risk level
type RiskBand string

const (
	RiskBandLow      RiskBand = "low"
	RiskBandModerate RiskBand = "moderate"
	RiskBandHigh     RiskBand = "high"
)

// ProfitLeak is the result of the profit-leak calculator
type ProfitLeak struct {
	Employees       int            `json:"employees"`
	HourlyRate      float64        `json:"hourly_rate"`
	Breakdown       []LeakCategory `json:"breakdown"`
	TotalLeak       float64        `json:"total_leak"`
	LeakPerEmployee float64        `json:"leak_per_employee"`
	RiskScore       float64        `json:"risk_score"`
	RiskBand        RiskBand       `json:"risk_band"`
}

// ComputeProfitLeak runs the profit-leak profile
func ComputeProfitLeak(in ProfitLeakIntake) (ProfitLeak, error) {
	employees, ok := in.EmployeeBand.Employees()
	if !ok {
		return ProfitLeak{}, invalid("employee_band", "unknown band %q", in.EmployeeBand)
	}
	if err := validateProfitLeak(in); err != nil {
		return ProfitLeak{}, err
	}

	n := float64(employees)
	hourly := in.AvgSalary / workHoursPerYear

	meeting := in.MeetingHoursPerWeek * meetingWasteShare * meetingWeeksPerYear * n * hourly
	delay := (in.ProjectDelayPct / 100) * (in.RevenuePerEmployee * projectValueShare) * n * delayImpactShare
	rework := (in.ReworkPct / 100) * in.AvgSalary * n * reworkImpactShare
	// Negative below one week of decision time; kept as the variant computes it.
	decision := (in.DecisionTimeDays/7 - 1) * decisionWeeklyCost * n * decisionReach
	turnover := (in.TurnoverRate / 100) * n * in.AvgSalary * turnoverCostFactor
	customer := (in.CustomerComplaintRate / 100) * n * in.RevenuePerEmployee * customerValueFactor * customerImpactShare

	breakdown := []LeakCategory{
		{Key: "meeting_overload", Amount: meeting},
		{Key: "project_delays", Amount: delay},
		{Key: "rework", Amount: rework},
		{Key: "decision_bottlenecks", Amount: decision},
		{Key: "turnover", Amount: turnover},
		{Key: "customer_friction", Amount: customer},
	}
	var total float64
	for _, c := range breakdown {
		total += c.Amount
	}

	factors := []float64{
		float64(in.ApprovalLayers-1) * 10,
		in.ProjectDelayPct * 0.5,
		in.ReworkPct * 1.5,
		(in.DecisionTimeDays / 30) * 20,
		in.TurnoverRate,
		in.CustomerComplaintRate * 1.5,
	}
	var sum float64
	for _, f := range factors {
		sum += f
	}
	score := math.Min(sum/float64(len(factors)), maxProfitLeakRisk)

	return ProfitLeak{
		Employees:       employees,
		HourlyRate:      hourly,
		Breakdown:       breakdown,
		TotalLeak:       total,
		LeakPerEmployee: total / n,
		RiskScore:       score,
		RiskBand:        bandFor(score),
	}, nil
}

func bandFor(score float64) RiskBand {
	switch {
	case score > highRiskThreshold:
		return RiskBandHigh
	case score > moderateRiskThreshold:
		return RiskBandModerate
	default:
		return RiskBandLow
	}
}

func validateProfitLeak(in ProfitLeakIntake) error {
	ranges := []struct {
		field    string
		value    float64
		min, max float64
	}{
		{"avg_salary", in.AvgSalary, 30000, math.MaxFloat64},
		{"revenue_per_employee", in.RevenuePerEmployee, 50000, math.MaxFloat64},
		{"meeting_hours_per_week", in.MeetingHoursPerWeek, 0, 40},
		{"approval_layers", float64(in.ApprovalLayers), 1, 10},
		{"project_delay_pct", in.ProjectDelayPct, 0, 100},
		{"rework_pct", in.ReworkPct, 0, 50},
		{"decision_time_days", in.DecisionTimeDays, 1, 90},
		{"turnover_rate", in.TurnoverRate, 0, 50},
		{"customer_complaint_rate", in.CustomerComplaintRate, 0, 50},
	}
	for _, r := range ranges {
		if !finite(r.value) || r.value < r.min || r.value > r.max {
			if r.max == math.MaxFloat64 {
				return invalid(r.field, "must be at least %.0f, got %v", r.min, r.value)
			}
			return invalid(r.field, "must be between %.0f and %.0f, got %v", r.min, r.max, r.value)
		}
	}
	return nil
}
