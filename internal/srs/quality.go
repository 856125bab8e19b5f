package srs

import "fmt"

// Quality is the classic SM-2 recall grade.
type Quality int

const (
	QualityBlackout Quality = iota
	QualityIncorrect
	QualityIncorrectFamiliar
	QualityCorrectDifficult
	QualityCorrectHesitant
	QualityPerfect
)

// PassingQuality is the lowest grade that counts as a successful recall.
const PassingQuality = QualityCorrectDifficult

var qualityDescriptions = [...]string{
	QualityBlackout:          "Complete blackout",
	QualityIncorrect:         "Incorrect, but recognized the answer",
	QualityIncorrectFamiliar: "Incorrect, but the answer felt familiar",
	QualityCorrectDifficult:  "Correct, with serious difficulty",
	QualityCorrectHesitant:   "Correct, after some hesitation",
	QualityPerfect:           "Perfect recall",
}

func (q Quality) IsValid() bool {
	return q >= QualityBlackout && q <= QualityPerfect
}

// Passed reports whether q counts as a success.
func (q Quality) Passed() bool {
	return q >= PassingQuality
}

// Description returns the human-readable label shown next to a grade.
func (q Quality) Description() string {
	if !q.IsValid() {
		return fmt.Sprintf("Quality(%d)", int(q))
	}
	return qualityDescriptions[q]
}

func (q Quality) String() string {
	return q.Description()
}

// QualityLabel pairs a grade with its label.
type QualityLabel struct {
	Quality     int    `json:"quality"`
	Description string `json:"description"`
}

// QualityDescriptions returns the full grade table in ascending order.
func QualityDescriptions() []QualityLabel {
	out := make([]QualityLabel, 0, len(qualityDescriptions))
	for q := QualityBlackout; q <= QualityPerfect; q++ {
		out = append(out, QualityLabel{Quality: int(q), Description: q.Description()})
	}
	return out
}
