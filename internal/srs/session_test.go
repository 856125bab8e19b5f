package srs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/studyflash/internal/srs"
)

func TestCalculateOptimalSessionSize(t *testing.T) {
	tests := []struct {
		name       string
		totalDue   int
		preference int
		max        int
		expected   int
	}{
		{name: "large backlog uses share", totalDue: 100, preference: 20, max: 50, expected: 30},
		{name: "small backlog uses preference", totalDue: 10, preference: 20, max: 50, expected: 20},
		{name: "huge backlog is capped", totalDue: 1000, preference: 20, max: 50, expected: 50},
		{name: "share rounds up", totalDue: 101, preference: 20, max: 50, expected: 31},
		{name: "preference above cap is capped", totalDue: 0, preference: 80, max: 50, expected: 50},
		{name: "zero preference falls back to default", totalDue: 0, preference: 0, max: 0, expected: 20},
		{name: "negative due treated as empty", totalDue: -5, preference: 10, max: 50, expected: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, srs.CalculateOptimalSessionSize(tt.totalDue, tt.preference, tt.max))
		})
	}
}
