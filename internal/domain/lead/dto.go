package lead

import "gfi/internal/domain/friction"

// LeadListResponse represents paginated list
type LeadListResponse struct {
	Leads  []Lead `json:"leads"`
	Total  int64  `json:"total"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

// StatsResponse holds lead counts per risk tier
type StatsResponse struct {
	Total  int64                   `json:"total"`
	ByTier map[friction.Tier]int64 `json:"by_tier"`
}
