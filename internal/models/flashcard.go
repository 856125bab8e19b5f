package models

import (
	"time"

	"github.com/vytor/studyflash/internal/srs"
)

// Flashcard is a learning item together with its persisted review record.
type Flashcard struct {
	ID             int64      `json:"id"`
	DeckID         int64      `json:"deck_id"`
	Front          string     `json:"front"`
	Back           string     `json:"back"`
	EaseFactor     float64    `json:"ease_factor"`
	IntervalDays   int        `json:"interval_days"`
	Repetitions    int        `json:"repetitions"`
	NextReviewAt   time.Time  `json:"next_review_at"`
	LastReviewedAt *time.Time `json:"last_reviewed_at"`
	TimesReviewed  int        `json:"times_reviewed"`
	TimesCorrect   int        `json:"times_correct"`
	Version        int64      `json:"version"`
	CreatedAt      time.Time  `json:"created_at"`
}

// NewFlashcard returns an unsaved card in the initial review state, due at now.
func NewFlashcard(deckID int64, front, back string, now time.Time) Flashcard {
	c := Flashcard{DeckID: deckID, Front: front, Back: back, Version: 1}
	c.ApplyState(srs.DefaultState())
	c.NextReviewAt = now
	return c
}

// ReviewState extracts the scheduling record.
func (c Flashcard) ReviewState() srs.ReviewState {
	return srs.ReviewState{
		EaseFactor:     c.EaseFactor,
		Interval:       c.IntervalDays,
		Repetitions:    c.Repetitions,
		NextReviewDate: c.NextReviewAt,
	}
}

// ApplyState copies a scheduling record onto the card.
func (c *Flashcard) ApplyState(s srs.ReviewState) {
	c.EaseFactor = s.EaseFactor
	c.IntervalDays = s.Interval
	c.Repetitions = s.Repetitions
	c.NextReviewAt = s.NextReviewDate
}

func (c Flashcard) Phase() srs.Phase {
	return c.ReviewState().Phase()
}

type FlashcardFilter struct {
	ProfileID int64
	DeckID    int64
	DueBefore *time.Time
	Phase     srs.Phase
	Limit     int
	Offset    int
}

// Review modes stored in review_history.mode.
const (
	ReviewModeQuality    = "quality"
	ReviewModeConfidence = "confidence"
)

type ReviewHistory struct {
	ID           int64     `json:"id"`
	FlashcardID  int64     `json:"flashcard_id"`
	Mode         string    `json:"mode"`
	Quality      *int      `json:"quality,omitempty"`
	IsCorrect    bool      `json:"is_correct"`
	Confidence   *float64  `json:"confidence,omitempty"`
	TimeSeconds  float64   `json:"time_seconds"`
	PrevInterval int       `json:"prev_interval"`
	NewInterval  int       `json:"new_interval"`
	PrevEase     float64   `json:"prev_ease"`
	NewEase      float64   `json:"new_ease"`
	ReviewedAt   time.Time `json:"reviewed_at"`
}

// CardInput is one card of an import batch.
type CardInput struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

type StudySession struct {
	ID        string      `json:"id"`
	DeckID    int64       `json:"deck_id,omitempty"`
	TotalDue  int         `json:"total_due"`
	Size      int         `json:"size"`
	Cards     []Flashcard `json:"cards"`
	CardIDs   []int64     `json:"card_ids"`
	StartedAt time.Time   `json:"started_at"`
}
