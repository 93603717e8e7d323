package api

import (
	"errors"
	"fmt"

	"salon-booking/internal/slots"
)

// IndexUnavailable groups the feed by date. Entries whose times cannot be
// parsed are skipped and reported in the joined error; the returned index is
// always usable.
func IndexUnavailable(feed []UnavailableTime) (slots.BookingsIndex, error) {
	idx := make(slots.BookingsIndex)

	var errs []error
	for i, u := range feed {
		start, err := slots.ParseTimeOfDay(u.HoraInicio)
		if err != nil {
			errs = append(errs, fmt.Errorf("entry %d hora_inicio: %w", i, err))
			continue
		}
		end, err := slots.ParseTimeOfDay(u.HoraFim)
		if err != nil {
			errs = append(errs, fmt.Errorf("entry %d hora_fim: %w", i, err))
			continue
		}
		idx.Add(u.Data, slots.Interval{Start: start, End: end})
	}

	return idx, errors.Join(errs...)
}
