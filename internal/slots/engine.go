// Package slots decides which appointment start times can be offered on a day.
//
// The engine is a pure function of its Query: it keeps no state, does no I/O
// and is safe to call from any number of goroutines.
package slots

// Query is the input of a single availability computation.
type Query struct {
	Config  ScheduleConfig
	Service Service
	// Booked holds the confirmed intervals of Date. Nil means none, which is
	// also what callers pass when the bookings feed is unavailable.
	Booked []Interval
	Date   string
	// Now is set only when Date is today; starts before it are dropped.
	Now *TimeOfDay
}

// Evaluate classifies every grid position between opening and closing time.
//
// The grid walks in SlotInterval steps while start+SlotInterval fits before
// closing time. Whether the service itself fits is checked separately, so both
// bounds are applied.
func Evaluate(q Query) []SlotDecision {
	cfg := q.Config
	if cfg.SlotInterval <= 0 {
		return nil
	}

	decisions := make([]SlotDecision, 0, positions(cfg))

	for start := cfg.OpeningTime; start.Add(cfg.SlotInterval) <= cfg.ClosingTime; start = start.Add(cfg.SlotInterval) {
		decisions = append(decisions, SlotDecision{
			Start:  start,
			Label:  start.String(),
			Status: classify(q, start),
		})
	}

	return decisions
}

// Compute returns the slots a client is shown: Available and Occupied entries
// in ascending order. Past starts and starts too late for the service are
// omitted, not disabled.
func Compute(q Query) []SlotDecision {
	all := Evaluate(q)

	shown := make([]SlotDecision, 0, len(all))
	for _, d := range all {
		if d.Status == StatusAvailable || d.Status == StatusOccupied {
			shown = append(shown, d)
		}
	}

	return shown
}

// HasAvailable reports whether at least one decision can be picked. An empty
// or fully occupied grid should be rendered as "no availability".
func HasAvailable(decisions []SlotDecision) bool {
	for _, d := range decisions {
		if d.Status == StatusAvailable {
			return true
		}
	}
	return false
}

func classify(q Query, start TimeOfDay) Status {
	if q.Now != nil && start < *q.Now {
		return StatusPastCutoff
	}

	candidate := q.Service.Reserve(start)
	if candidate.End > q.Config.ClosingTime {
		return StatusTooLateForDuration
	}

	for _, booked := range q.Booked {
		if candidate.Overlaps(booked) {
			return StatusOccupied
		}
	}

	return StatusAvailable
}

func positions(cfg ScheduleConfig) int {
	n := int(cfg.ClosingTime-cfg.OpeningTime) / cfg.SlotInterval
	if n < 0 {
		return 0
	}
	return n
}
