package leave

import (
	"time"

	leaveerrors "go-hrportal/internal/leave/errors"
)

const dateLayout = "2006-01-02"

// CountDays returns the inclusive number of calendar days covered by
// [start, end]. Both dates are normalized to midnight UTC before the
// subtraction so time-of-day never affects the count. A result <= 0 means
// the range is invalid (end precedes start).
//
// Submission validation and balance adjustment both call this; the day
// count is always recomputed from the request's stored dates, never read
// back from a cached column.
func CountDays(start, end time.Time) int {
	s := atMidnightUTC(start)
	e := atMidnightUTC(end)
	return int(e.Sub(s).Hours()/24) + 1
}

func atMidnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}
