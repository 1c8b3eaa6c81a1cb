package friction

// Tier is the discrete risk level of a friction estimate
type Tier string

const (
	TierLow      Tier = "low"
	TierModerate Tier = "moderate"
	TierSevere   Tier = "severe"
	TierCritical Tier = "critical"
)

// RiskTier pairs a tier with the engagement recommended for it
type RiskTier struct {
	Tier       Tier   `json:"tier" gorm:"column:tier;size:16;index"`
	Engagement string `json:"engagement" gorm:"column:engagement;size:128"`
}

type threshold struct {
	min        float64
	tier       Tier
	engagement string
}

// Ordered from the highest lower bound down; lower bounds are inclusive.
var thresholds = []threshold{
	{5_000_000, TierCritical, "Tier-2 paid structural audit"},
	{1_000_000, TierSevere, "Tier-1 paid diagnostic, consider Tier-2 structural audit"},
	{100_000, TierModerate, "Tier-1 paid diagnostic"},
	{0, TierLow, "Self-guided optimization"},
}

// Tiers lists every tier from lowest to highest
func Tiers() []Tier {
	return []Tier{TierLow, TierModerate, TierSevere, TierCritical}
}

func (t Tier) Valid() bool {
	switch t {
	case TierLow, TierModerate, TierSevere, TierCritical:
		return true
	}
	return false
}

// ClassifyRisk maps a total friction cost to its tier
func ClassifyRisk(totalFrictionCost float64) (RiskTier, error) {
	if !finite(totalFrictionCost) || totalFrictionCost < 0 {
		return RiskTier{}, invalid("total_friction_cost", "must be a non-negative number, got %v", totalFrictionCost)
	}
	for _, th := range thresholds {
		if totalFrictionCost >= th.min {
			return RiskTier{Tier: th.tier, Engagement: th.engagement}, nil
		}
	}
	// unreachable: the last threshold starts at zero
	return RiskTier{}, invalid("total_friction_cost", "no tier for %v", totalFrictionCost)
}
