package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPreview_Qualities(t *testing.T) {
	out, err := run(t, "preview", "--qualities", "5,5,5", "--start", "2026-01-01")

	require.NoError(t, err)
	assert.Contains(t, out, "2026-01-02")
	assert.Contains(t, out, "2026-01-08")
	assert.Contains(t, out, "2.80")
	assert.Contains(t, out, "reviewing")
}

func TestPreview_Answers(t *testing.T) {
	out, err := run(t, "preview", "--answers", "correct:1,wrong:0.5", "--start", "2026-01-01")

	require.NoError(t, err)
	assert.Contains(t, out, "correct (1.00)")
	assert.Contains(t, out, "wrong (0.50)")
	assert.Contains(t, out, "2.40")
}

func TestPreview_RejectsBadInput(t *testing.T) {
	_, err := run(t, "preview", "--qualities", "9")
	assert.ErrorContains(t, err, "quality out of range")

	_, err = run(t, "preview", "--answers", "maybe:0.5")
	assert.Error(t, err)

	_, err = run(t, "preview")
	assert.Error(t, err)
}

func TestSessionSize(t *testing.T) {
	out, err := run(t, "session-size", "--due", "100")
	require.NoError(t, err)
	assert.Equal(t, "30", strings.TrimSpace(out))

	out, err = run(t, "session-size", "--due", "10", "--preference", "15", "--max", "12")
	require.NoError(t, err)
	assert.Equal(t, "12", strings.TrimSpace(out))
}
