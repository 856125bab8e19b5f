package models

type FlashcardStat struct {
	TotalCards      int     `json:"total_cards"`
	TotalReviews    int     `json:"total_reviews"`
	CardsMastered   int     `json:"cards_mastered"`
	CardsStruggling int     `json:"cards_struggling"`
	CardsDue        int     `json:"cards_due"`
	CardsDueSoon    int     `json:"cards_due_soon"`
	OverallAccuracy float64 `json:"overall_accuracy"`
	AvgEaseFactor   float64 `json:"avg_ease_factor"`
	AvgIntervalDays float64 `json:"avg_interval_days"`
}

type PhaseStat struct {
	Phase         string  `json:"phase"`
	TotalCards    int     `json:"total_cards"`
	AvgEaseFactor float64 `json:"avg_ease_factor"`
	AvgInterval   float64 `json:"avg_interval_days"`
}

type QualityCount struct {
	Quality     int    `json:"quality"`
	Description string `json:"description"`
	Count       int    `json:"count"`
}

type ActivityDay struct {
	Day      string  `json:"day"`
	Reviews  int     `json:"reviews"`
	Correct  int     `json:"correct"`
	AvgTimeS float64 `json:"avg_time_seconds"`
}

type StatsOverview struct {
	Summary  *FlashcardStat `json:"summary"`
	Phases   []PhaseStat    `json:"phases"`
	Quality  []QualityCount `json:"quality_distribution"`
	Activity []ActivityDay  `json:"activity"`
}
