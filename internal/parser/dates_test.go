package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		start *string
		end   *string
	}{
		{
			name:  "full range",
			text:  "experience 1 May 2024 — May 2026",
			start: strPtr("May 2024"),
			end:   strPtr("May 2026"),
		},
		{
			name:  "open ended with present",
			text:  "netflix clone May 2024 — Present",
			start: strPtr("May 2024"),
			end:   strPtr("Present"),
		},
		{
			name:  "single date no present",
			text:  "graduated Jun 2020",
			start: strPtr("Jun 2020"),
			end:   nil,
		},
		{
			name:  "no dates",
			text:  "company name",
			start: nil,
			end:   nil,
		},
		{
			name:  "bare year is not a month-year date",
			text:  "founded in 2019",
			start: nil,
			end:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := ParseDateRange(tt.text)
			assertDate(t, tt.start, start)
			assertDate(t, tt.end, end)
		})
	}
}

func TestHasDateToken(t *testing.T) {
	assert.True(t, hasDateToken("May 2024 — Present"))
	assert.True(t, hasDateToken("founded in 2019"))
	assert.False(t, hasDateToken("no dates here"))
}

func assertDate(t *testing.T, want, got *string) {
	t.Helper()
	if want == nil {
		assert.Nil(t, got)
		return
	}
	require.NotNil(t, got)
	assert.Equal(t, *want, *got)
}

func strPtr(s string) *string {
	return &s
}
