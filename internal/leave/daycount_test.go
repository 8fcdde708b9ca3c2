package leave_test

import (
	"testing"
	"time"

	"go-hrportal/internal/leave"

	"github.com/stretchr/testify/assert"
)

func TestCountDays(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	t.Run("single day counts as one", func(t *testing.T) {
		assert.Equal(t, 1, leave.CountDays(day(2026, 3, 10), day(2026, 3, 10)))
	})

	t.Run("inclusive range", func(t *testing.T) {
		assert.Equal(t, 5, leave.CountDays(day(2026, 3, 10), day(2026, 3, 14)))
	})

	t.Run("spans a month boundary", func(t *testing.T) {
		assert.Equal(t, 4, leave.CountDays(day(2026, 1, 30), day(2026, 2, 2)))
	})

	t.Run("spans a year boundary", func(t *testing.T) {
		assert.Equal(t, 3, leave.CountDays(day(2025, 12, 31), day(2026, 1, 2)))
	})

	t.Run("end before start is non positive", func(t *testing.T) {
		assert.LessOrEqual(t, leave.CountDays(day(2026, 3, 14), day(2026, 3, 10)), 0)
	})

	t.Run("time of day is ignored", func(t *testing.T) {
		start := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
		end := time.Date(2026, 3, 11, 0, 1, 0, 0, time.UTC)
		assert.Equal(t, 2, leave.CountDays(start, end))
	})
}
