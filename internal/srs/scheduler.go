package srs

import (
	"math"
	"time"
)

// MaxInterval caps interval growth at roughly a century.
const MaxInterval = 36500

// ScheduleNextReview computes the state that follows prev after a review
// recorded at now. A nil prev is treated as an item's first review.
//
// Quality outcomes use the SM-2 rule (ScheduleSM2); CorrectnessConfidence
// outcomes use the confidence-scaled rule (ScheduleConfidence). Both
// return a state with EaseFactor >= 1.3, Interval >= 1 and a
// NextReviewDate strictly after now. Out-of-range outcomes are rejected.
func ScheduleNextReview(prev *ReviewState, outcome Outcome, now time.Time) (ReviewState, error) {
	state := DefaultState()
	if prev != nil {
		state = *prev
	}

	switch o := outcome.(type) {
	case Quality:
		return ScheduleSM2(state, o, now)
	case CorrectnessConfidence:
		return ScheduleConfidence(state, o, now)
	default:
		return ReviewState{}, ErrUnknownOutcome
	}
}

// ScheduleSM2 applies the canonical SM-2 update for a 0-5 grade.
func ScheduleSM2(prev ReviewState, q Quality, now time.Time) (ReviewState, error) {
	if err := q.validate(); err != nil {
		return ReviewState{}, err
	}
	prev = prev.repaired()

	next := prev
	if q.Passed() {
		switch prev.Repetitions {
		case 0:
			next.Interval = InitialInterval
		case 1:
			next.Interval = graduatingInterval
		default:
			next.Interval = roundInterval(float64(prev.Interval) * prev.EaseFactor)
		}
		next.Repetitions = prev.Repetitions + 1
	} else {
		next.Interval = InitialInterval
		next.Repetitions = 0
	}

	miss := float64(QualityPerfect - q)
	next.EaseFactor = clampEase(prev.EaseFactor + (0.1 - miss*(0.08+miss*0.02)))
	next.NextReviewDate = now.AddDate(0, 0, next.Interval)
	return next, nil
}

// ScheduleConfidence applies the confidence-scaled rule. A wrong answer
// drops the ease by 0.2 and restarts the item; a right answer grows the
// interval by ease times a multiplier between 0.5 and 1.0.
func ScheduleConfidence(prev ReviewState, c CorrectnessConfidence, now time.Time) (ReviewState, error) {
	if err := c.validate(); err != nil {
		return ReviewState{}, err
	}
	prev = prev.repaired()

	next := prev
	if !c.IsCorrect {
		next.Interval = InitialInterval
		next.Repetitions = 0
		next.EaseFactor = clampEase(prev.EaseFactor - 0.2)
	} else {
		multiplier := 0.5 + c.Confidence*0.5
		next.EaseFactor = clampEase(prev.EaseFactor + (0.1 - (1-c.Confidence)*0.08))
		next.Interval = roundInterval(float64(prev.Interval) * prev.EaseFactor * multiplier)
		next.Repetitions = prev.Repetitions + 1
	}
	next.NextReviewDate = now.AddDate(0, 0, next.Interval)
	return next, nil
}

func clampEase(ef float64) float64 {
	return math.Max(MinEaseFactor, ef)
}

func roundInterval(days float64) int {
	if days >= MaxInterval {
		return MaxInterval
	}
	return max(1, int(math.Round(days)))
}
