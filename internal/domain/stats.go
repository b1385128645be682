package domain

// ImpactStats are a user's lifetime travel statistics.
// They only grow: RecordTrip is the sole writer.
type ImpactStats struct {
	Trips     int     `json:"trips"`
	Carbon    float64 `json:"carbon"`
	EcoPoints int     `json:"ecoPoints"`
}

// RecordTrip accumulates a completed booking: one trip, the stay's carbon,
// and one eco-point per $10 of total cost.
func (s *ImpactStats) RecordTrip(dest Destination, nights int, totalCost float64) {
	s.Trips++
	s.Carbon += dest.CarbonFootprint * float64(nights)
	s.EcoPoints += int(roundHalfUp(totalCost / 10))
}

// TreesToOffset returns the trees needed to absorb the lifetime carbon.
func (s ImpactStats) TreesToOffset() int {
	return TreesToOffset(s.Carbon)
}

// Badge is an achievement shown on the impact dashboard.
type Badge struct {
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Unlocked bool   `json:"unlocked"`
}

// EvaluateBadges computes every badge from the current stats and wishlist
// size. Badges are derived on demand and never stored.
func EvaluateBadges(stats ImpactStats, wishlistSize int) []Badge {
	return []Badge{
		{Name: "First Adventure", Icon: "fa-leaf", Unlocked: stats.Trips >= 1},
		{Name: "Tree Planter", Icon: "fa-tree", Unlocked: stats.TreesToOffset() >= 5},
		{Name: "World Explorer", Icon: "fa-globe", Unlocked: stats.Trips >= 3},
		{Name: "Eco Champion", Icon: "fa-star", Unlocked: stats.EcoPoints >= 100},
		{Name: "Verified Eco-Traveler", Icon: "fa-certificate", Unlocked: stats.Trips >= 5},
		{Name: "Community Supporter", Icon: "fa-heart", Unlocked: wishlistSize >= 3},
	}
}
