package slots

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidHours    = errors.New("opening time must be before closing time")
	ErrInvalidInterval = errors.New("slot interval must be positive")
	ErrInvalidDuration = errors.New("service duration must be positive")
)

type Status string

const (
	StatusAvailable          Status = "available"
	StatusOccupied           Status = "occupied"
	StatusPastCutoff         Status = "past_cutoff"
	StatusTooLateForDuration Status = "too_late_for_duration"
)

// Interval is a half-open range [Start, End) within one day.
type Interval struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// Overlaps reports whether the two half-open ranges intersect. Ranges that
// only touch at an endpoint do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && i.End > o.Start
}

func (i Interval) String() string {
	return i.Start.String() + "-" + i.End.String()
}

// ScheduleConfig describes the salon's operating hours and the grid step.
type ScheduleConfig struct {
	OpeningTime  TimeOfDay
	ClosingTime  TimeOfDay
	SlotInterval int
}

func (c ScheduleConfig) Validate() error {
	const op = "slots.ScheduleConfig.Validate"

	if c.OpeningTime < 0 || c.ClosingTime > MinutesPerDay || c.OpeningTime >= c.ClosingTime {
		return fmt.Errorf("%s: %w (%s-%s)", op, ErrInvalidHours, c.OpeningTime, c.ClosingTime)
	}
	if c.SlotInterval <= 0 {
		return fmt.Errorf("%s: %w (%d)", op, ErrInvalidInterval, c.SlotInterval)
	}

	return nil
}

type Service struct {
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration"`
}

func (s Service) Validate() error {
	if s.DurationMinutes <= 0 {
		return fmt.Errorf("slots.Service.Validate: %s: %w", s.Name, ErrInvalidDuration)
	}
	return nil
}

// Reserve returns the interval the service would occupy when started at start.
func (s Service) Reserve(start TimeOfDay) Interval {
	return Interval{Start: start, End: start.Add(s.DurationMinutes)}
}

type SlotDecision struct {
	Start  TimeOfDay `json:"start"`
	Label  string    `json:"label"`
	Status Status    `json:"status"`
}

// BookingsIndex groups booked intervals by ISO date.
type BookingsIndex map[string][]Interval

// For returns the booked intervals of date, or nil when there are none.
func (b BookingsIndex) For(date string) []Interval {
	if b == nil {
		return nil
	}
	return b[date]
}

func (b BookingsIndex) Add(date string, iv Interval) {
	b[date] = append(b[date], iv)
}
