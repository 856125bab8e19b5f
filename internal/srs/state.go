package srs

import (
	"math"
	"time"
)

const (
	MinEaseFactor     = 1.3
	InitialEaseFactor = 2.5
	InitialInterval   = 1

	// graduatingInterval is the fixed interval granted on the second
	// consecutive success.
	graduatingInterval = 6
)

// ReviewState is the scheduling record kept per user and learning item.
type ReviewState struct {
	EaseFactor     float64   `json:"ease_factor"`
	Interval       int       `json:"interval_days"`
	Repetitions    int       `json:"repetitions"`
	NextReviewDate time.Time `json:"next_review_date"`
}

// DefaultState returns the state of an item that has never been reviewed.
func DefaultState() ReviewState {
	return ReviewState{
		EaseFactor:  InitialEaseFactor,
		Interval:    InitialInterval,
		Repetitions: 0,
	}
}

// Phase reports where the item sits in the learning state machine.
func (s ReviewState) Phase() Phase {
	if s.Repetitions < 2 {
		return Learning
	}
	return Reviewing
}

// repaired lifts a corrupted state back inside its invariants.
func (s ReviewState) repaired() ReviewState {
	if math.IsNaN(s.EaseFactor) || s.EaseFactor < MinEaseFactor {
		s.EaseFactor = MinEaseFactor
	}
	if s.Interval < 1 {
		s.Interval = 1
	}
	if s.Interval > MaxInterval {
		s.Interval = MaxInterval
	}
	if s.Repetitions < 0 {
		s.Repetitions = 0
	}
	return s
}

// Phase is either Learning (fixed 1 and 6 day steps) or Reviewing
// (interval grows with the ease factor).
type Phase string

const (
	Learning  Phase = "learning"
	Reviewing Phase = "reviewing"
)

func (p Phase) IsValid() bool {
	return p == Learning || p == Reviewing
}
