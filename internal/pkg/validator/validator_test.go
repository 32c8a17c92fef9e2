package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.False(t, IsEmpty("x"))
}

func TestIsValidDate(t *testing.T) {
	t.Parallel()

	date, ok := IsValidDate("2025-06-02")
	assert.True(t, ok)
	assert.Equal(t, 2025, date.Year())

	_, ok = IsValidDate("02-06-2025")
	assert.False(t, ok)

	_, ok = IsValidDate("2025-13-01")
	assert.False(t, ok)

	_, ok = IsValidDate("")
	assert.False(t, ok)
}

func TestIsValidPeriod(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidPeriod(1, 2025))
	assert.True(t, IsValidPeriod(12, 2000))
	assert.False(t, IsValidPeriod(0, 2025))
	assert.False(t, IsValidPeriod(13, 2025))
	assert.False(t, IsValidPeriod(6, 1999))
}

func TestValidationErrorsToMap(t *testing.T) {
	t.Parallel()

	errs := ValidationErrors{
		{Field: "start_date", Message: "is required"},
		{Field: "end_date", Message: "is required"},
	}
	m := errs.ToMap()
	assert.Len(t, m, 2)
	assert.Equal(t, "is required", m["start_date"])
	assert.Contains(t, errs.Error(), "start_date: is required")
}
