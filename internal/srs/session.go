package srs

const (
	DefaultSessionPreference = 20
	DefaultSessionMax        = 50
)

// CalculateOptimalSessionSize sizes one study session from the number of
// due cards: at least the user's preference, 30% of the backlog (rounded
// up) when that is larger, never more than maxRecommended.
func CalculateOptimalSessionSize(totalDue, userPreference, maxRecommended int) int {
	if totalDue < 0 {
		totalDue = 0
	}
	if userPreference <= 0 {
		userPreference = DefaultSessionPreference
	}
	if maxRecommended <= 0 {
		maxRecommended = DefaultSessionMax
	}
	// ceil(totalDue * 0.3) without float error
	share := (totalDue*3 + 9) / 10
	return min(max(userPreference, share), maxRecommended)
}
