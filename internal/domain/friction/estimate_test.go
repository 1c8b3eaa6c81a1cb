package friction

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPresets() Presets {
	return Presets{
		Roles: []RolePreset{
			{Key: "frontline", Label: "Frontline staff", Multiplier: 1.5},
			{Key: "specialist", Label: "Specialist", Multiplier: 3},
			{Key: "manager", Label: "Manager", Multiplier: 5},
			{Key: "senior_leader", Label: "Senior leader", Multiplier: 8},
			{Key: "executive", Label: "Executive", Multiplier: 12},
		},
		Benchmarks: map[Industry]float64{IndustryTechnology: 18},
	}
}

func ptr(v float64) *float64 { return &v }

func baseIntake() Intake {
	return Intake{
		OrganizationSize:  SizeMedium,
		Industry:          IndustryTechnology,
		ProcessDelayHours: 150,
		AffectedPeople:    5,
		HourlyRate:        65,
		RoleType:          "specialist",
	}
}

func TestModel_Estimate_ScenarioA(t *testing.T) {
	m := NewModel(testPresets())

	est, err := m.Estimate(baseIntake())
	require.NoError(t, err)

	assert.Equal(t, 3.0, est.Multiplier)
	assert.InDelta(t, 750, est.TotalDelayHours, 1e-9)
	assert.InDelta(t, 48750, est.DirectCost, 1e-9)
	assert.InDelta(t, 146250, est.OpportunityCost, 1e-9)
	assert.InDelta(t, 195000, est.TotalFrictionCost, 1e-9)
	assert.InDelta(t, 18.75, est.WeeksLost, 1e-9)
	assert.InDelta(t, 36.06, est.CapacityLossPct, 0.005)

	tier, err := ClassifyRisk(est.TotalFrictionCost)
	require.NoError(t, err)
	assert.Equal(t, TierModerate, tier.Tier)
}

func TestModel_Estimate_ScenarioB(t *testing.T) {
	m := NewModel(testPresets())

	in := Intake{
		OrganizationSize:  SizeEnterprise,
		Industry:          IndustryFinance,
		ProcessDelayHours: 480,
		AffectedPeople:    15,
		HourlyRate:        120,
		RoleType:          "senior_leader",
	}
	est, err := m.Estimate(in)
	require.NoError(t, err)

	assert.InDelta(t, 7200, est.TotalDelayHours, 1e-9)
	assert.InDelta(t, 864000, est.DirectCost, 1e-9)
	assert.InDelta(t, 6912000, est.OpportunityCost, 1e-9)
	assert.InDelta(t, 7776000, est.TotalFrictionCost, 1e-9)

	tier, err := ClassifyRisk(est.TotalFrictionCost)
	require.NoError(t, err)
	assert.Equal(t, TierCritical, tier.Tier)
}

func TestModel_Estimate_TotalMatchesClosedForm(t *testing.T) {
	m := NewModel(testPresets())

	cases := []struct {
		hours  float64
		people int
		rate   float64
		mult   float64
	}{
		{0, 1, 0, 1},
		{1, 1, 1, 1},
		{12.5, 3, 47.25, 2.2},
		{2000, 400, 310, 15},
		{0.1, 9999, 0.01, 7.77},
	}
	for _, tc := range cases {
		in := baseIntake()
		in.ProcessDelayHours = tc.hours
		in.AffectedPeople = tc.people
		in.HourlyRate = tc.rate
		in.RoleType = RoleCustom
		in.Multiplier = ptr(tc.mult)

		est, err := m.Estimate(in)
		require.NoError(t, err)

		want := tc.hours * float64(tc.people) * tc.rate * (1 + tc.mult)
		assert.InDelta(t, want, est.TotalFrictionCost, math.Max(1e-6, want*1e-12))
		assert.GreaterOrEqual(t, est.TotalFrictionCost, 0.0)
	}
}

func TestModel_Estimate_ZeroDelayHasNoCapacityLoss(t *testing.T) {
	m := NewModel(testPresets())
	in := baseIntake()
	in.ProcessDelayHours = 0

	est, err := m.Estimate(in)
	require.NoError(t, err)
	assert.Zero(t, est.WeeksLost)
	assert.Zero(t, est.CapacityLossPct)
}

func TestModel_Estimate_CapacityLossNotCapped(t *testing.T) {
	m := NewModel(testPresets())
	in := baseIntake()
	in.ProcessDelayHours = 3000
	in.AffectedPeople = 10

	est, err := m.Estimate(in)
	require.NoError(t, err)
	// 30000h / 40 = 750 weeks, 750/52 = 1442.3%
	assert.InDelta(t, 1442.3077, est.CapacityLossPct, 0.001)
}

func TestModel_Estimate_Deterministic(t *testing.T) {
	m := NewModel(testPresets())
	in := baseIntake()
	in.HourlyRate = 61.37

	first, err := m.Estimate(in)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := m.Estimate(in)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestModel_Estimate_InvalidInput(t *testing.T) {
	m := NewModel(testPresets())

	cases := []struct {
		name  string
		field string
		edit  func(*Intake)
	}{
		{"zero people", "affected_people", func(in *Intake) { in.AffectedPeople = 0 }},
		{"negative people", "affected_people", func(in *Intake) { in.AffectedPeople = -3 }},
		{"negative rate", "hourly_rate", func(in *Intake) { in.HourlyRate = -0.01 }},
		{"nan rate", "hourly_rate", func(in *Intake) { in.HourlyRate = math.NaN() }},
		{"negative delay", "process_delay_hours", func(in *Intake) { in.ProcessDelayHours = -1 }},
		{"infinite delay", "process_delay_hours", func(in *Intake) { in.ProcessDelayHours = math.Inf(1) }},
		{"overflowing delay", "process_delay_hours", func(in *Intake) {
			in.ProcessDelayHours = 1e308
			in.AffectedPeople = 10
			in.HourlyRate = 0
		}},
		{"overflowing rate", "hourly_rate", func(in *Intake) { in.HourlyRate = math.MaxFloat64 }},
		{"unknown size", "organization_size", func(in *Intake) { in.OrganizationSize = "huge" }},
		{"unknown industry", "industry", func(in *Intake) { in.Industry = "mining" }},
		{"unknown role", "role_type", func(in *Intake) { in.RoleType = "intern" }},
		{"custom without multiplier", "multiplier", func(in *Intake) { in.RoleType = RoleCustom }},
		{"custom multiplier too low", "multiplier", func(in *Intake) {
			in.RoleType = RoleCustom
			in.Multiplier = ptr(0.99)
		}},
		{"custom multiplier too high", "multiplier", func(in *Intake) {
			in.RoleType = RoleCustom
			in.Multiplier = ptr(15.01)
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := baseIntake()
			tc.edit(&in)

			est, err := m.Estimate(in)
			require.Error(t, err)
			assert.Equal(t, Estimate{}, est)

			var invalidErr *InvalidInputError
			require.True(t, errors.As(err, &invalidErr))
			assert.Equal(t, tc.field, invalidErr.Field)
		})
	}
}

func TestModel_Multiplier_CustomBounds(t *testing.T) {
	m := NewModel(testPresets())

	for _, v := range []float64{MinMultiplier, 7.5, MaxMultiplier} {
		in := baseIntake()
		in.RoleType = RoleCustom
		in.Multiplier = ptr(v)

		got, err := m.Multiplier(in)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestModel_Multiplier_PresetIgnoresOverride(t *testing.T) {
	m := NewModel(testPresets())
	in := baseIntake()
	in.RoleType = "manager"
	in.Multiplier = ptr(14)

	got, err := m.Multiplier(in)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got)
}

func TestPresets_Check(t *testing.T) {
	require.NoError(t, testPresets().Check())

	bad := testPresets()
	bad.Roles = append(bad.Roles, RolePreset{Key: "oracle", Multiplier: 20})
	assert.ErrorContains(t, bad.Check(), "oracle")

	reserved := testPresets()
	reserved.Roles = append(reserved.Roles, RolePreset{Key: RoleCustom, Multiplier: 2})
	assert.ErrorContains(t, reserved.Check(), "reserved")

	dup := testPresets()
	dup.Roles = append(dup.Roles, RolePreset{Key: "manager", Multiplier: 2})
	assert.ErrorContains(t, dup.Check(), "duplicate")

	badBench := testPresets()
	badBench.Benchmarks["mining"] = 4
	assert.ErrorContains(t, badBench.Check(), "mining")

	assert.Error(t, Presets{}.Check())
}
