package srs

import (
	"fmt"
	"math"
)

// Outcome is the result of a single review. It is implemented only by
// Quality and CorrectnessConfidence.
type Outcome interface {
	validate() error
	isOutcome()
}

// CorrectnessConfidence records a pass/fail answer together with how
// sure the learner felt, from 0 (guess) to 1 (certain).
type CorrectnessConfidence struct {
	IsCorrect  bool    `json:"is_correct"`
	Confidence float64 `json:"confidence"`
}

func (CorrectnessConfidence) isOutcome() {}

func (c CorrectnessConfidence) validate() error {
	if math.IsNaN(c.Confidence) || c.Confidence < 0 || c.Confidence > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidConfidence, c.Confidence)
	}
	return nil
}

func (Quality) isOutcome() {}

func (q Quality) validate() error {
	if !q.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidQuality, int(q))
	}
	return nil
}
