package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidDate(t *testing.T) {
	valid := map[string]time.Time{
		"2024-12-30": time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC),
		"2024-02-29": time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		"0001-01-01": time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC),
		"9999-12-31": time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	for input, want := range valid {
		t.Run(input, func(t *testing.T) {
			got, ok := IsValidDate(input)
			require.True(t, ok)
			assert.True(t, want.Equal(got), "got %s", got)
		})
	}

	invalid := []string{
		"",
		"2024/01/01",
		"2024-1-01",
		"24-01-01",
		"abcd-ef-gh",
		"2000-00-00",
		"2024-13-01",
		"2024-02-30",
		"2023-02-29",
		"2024-04-31",
		"0000-01-01",
		" 2024-01-01",
		"2024-01-01T00:00:00Z",
		"２０２４-01-01",
	}
	for _, input := range invalid {
		t.Run("invalid "+input, func(t *testing.T) {
			got, ok := IsValidDate(input)
			assert.False(t, ok)
			assert.True(t, got.IsZero())
		})
	}
}

func TestParseDate(t *testing.T) {
	_, err := ParseDate("due_date", "2024-02-30")
	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "due_date", verr.Field)

	date, err := ParseDate("due_date", "2024-02-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", date.Format("2006-01-02"))
}

func TestCheckLength(t *testing.T) {
	assert.NoError(t, CheckTitle(strings.Repeat("a", 20)))
	assert.NoError(t, CheckTitle(""))
	assert.Error(t, CheckTitle(strings.Repeat("a", 21)))

	// limits count characters, not bytes
	assert.NoError(t, CheckTitle(strings.Repeat("ж", 20)))

	assert.NoError(t, CheckDescription(strings.Repeat("b", 45)))
	err := CheckDescription(strings.Repeat("b", 46))
	require.Error(t, err)
	assert.Equal(t, "Description cannot be more than 45 characters.", err.Error())
}
