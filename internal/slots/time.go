package slots

import (
	"fmt"
	"time"
)

// MinutesPerDay bounds a TimeOfDay.
const MinutesPerDay = 24 * 60

const (
	clockLayout = "15:04"
	dateLayout  = "2006-01-02"
)

// TimeOfDay is a wall-clock time as minutes since midnight.
type TimeOfDay int

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS". Only the first five characters
// are read, so seconds coming from a SQL TIME column are dropped.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	const op = "slots.ParseTimeOfDay"

	if len(s) > len(clockLayout) {
		s = s[:len(clockLayout)]
	}

	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// MustParseTimeOfDay is ParseTimeOfDay for literals known to be valid.
func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// String renders the zero padded HH:MM form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Add shifts t by the given number of minutes.
func (t TimeOfDay) Add(minutes int) TimeOfDay {
	return t + TimeOfDay(minutes)
}

// FromClock returns the time of day of a wall-clock instant in its own location.
func FromClock(c time.Time) TimeOfDay {
	return TimeOfDay(c.Hour()*60 + c.Minute())
}

// NowFor returns the current time of day when date is the clock's local date.
// For any other date it returns nil, which disables past-slot filtering.
func NowFor(date string, clock time.Time) *TimeOfDay {
	if clock.Format(dateLayout) != date {
		return nil
	}

	now := FromClock(clock)
	return &now
}

// ValidDate reports whether s is an ISO YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// DisplayDate renders an ISO date as DD/MM/YYYY. Unparsable input is returned
// unchanged.
func DisplayDate(iso string) string {
	d, err := time.Parse(dateLayout, iso)
	if err != nil {
		return iso
	}
	return d.Format("02/01/2006")
}
