package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidID(t *testing.T) {
	assert.True(t, IsValidID(uuid.NewString()))
	assert.True(t, IsValidID("6f1d2c3e-6a1b-4c2d-9e8f-0a1b2c3d4e5f"))

	for _, id := range []string{"", "123", "not-a-uuid", "6f1d2c3e6a1b4c2d9e8f0a1b2c3d4e5f", "{6f1d2c3e-6a1b-4c2d-9e8f-0a1b2c3d4e5f}", "6f1d2c3e-6a1b-4c2d-9e8f-0a1b2c3d4e5z"} {
		assert.False(t, IsValidID(id), id)
	}
}

func TestParseSalary(t *testing.T) {
	v, err := ParseSalary("50000")
	require.NoError(t, err)
	assert.Equal(t, 50000.0, v)

	v, err = ParseSalary(" 1234.5 ")
	require.NoError(t, err)
	assert.Equal(t, 1234.5, v)

	for _, s := range []string{"", "abc", "NaN", "Inf", "12k"} {
		_, err := ParseSalary(s)
		assert.Error(t, err, s)
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, s := range []string{"2024-01-01", "2024-01-01T00:00:00Z", "2024-01-01T15:30:00", "2024-01-01T15:30:00.000Z", "2024/01/01"} {
		got, err := ParseDate(s)
		require.NoError(t, err, s)
		assert.True(t, want.Equal(got), "%s -> %v", s, got)
	}

	// Converted to UTC before truncation.
	got, err := ParseDate("2024-01-01T23:30:00-05:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDate("yesterday")
	assert.Error(t, err)
}
