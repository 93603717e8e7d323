// Package widget drives one client through the booking steps: it loads the
// approved bookings once, computes the slot grid for the chosen service and
// date, and submits the request to the backend.
package widget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"salon-booking/api"
	"salon-booking/internal/catalog"
	"salon-booking/internal/handoff"
	"salon-booking/internal/session"
	"salon-booking/internal/slots"
	"salon-booking/pkg/sl"
)

var (
	ErrInvalidDate     = errors.New("date must be YYYY-MM-DD")
	ErrSlotUnavailable = errors.New("slot is not available")
	ErrStepIncomplete  = errors.New("current step is incomplete")
)

type Feed interface {
	BookingsIndex(ctx context.Context) (slots.BookingsIndex, error)
}

type Submitter interface {
	CreateBooking(ctx context.Context, req *api.BookingRequest) (*api.BookingCreated, error)
}

type Widget struct {
	log      *slog.Logger
	catalog  *catalog.Catalog
	schedule slots.ScheduleConfig
	handoff  *handoff.Composer
	now      func() time.Time

	booked   slots.BookingsIndex
	degraded bool
	state    session.State
}

// New returns a widget on the first step. composer may be nil when the
// backend is trusted to return the hand-off link.
func New(log *slog.Logger, cat *catalog.Catalog, schedule slots.ScheduleConfig, composer *handoff.Composer) *Widget {
	return &Widget{
		log:      log,
		catalog:  cat,
		schedule: schedule,
		handoff:  composer,
		now:      time.Now,
		booked:   slots.BookingsIndex{},
		state:    session.New(),
	}
}

func (w *Widget) SetClock(now func() time.Time) {
	w.now = now
}

// Load fetches the approved bookings. A failing feed is logged and the widget
// keeps going with no bookings, so every slot inside hours shows as free.
func (w *Widget) Load(ctx context.Context, feed Feed) {
	const op = "widget.Load"

	idx, err := feed.BookingsIndex(ctx)
	switch {
	case err == nil:
		w.booked, w.degraded = idx, false
	case idx != nil:
		w.log.Warn("skipped malformed bookings", slog.String("op", op), sl.Err(err))
		w.booked, w.degraded = idx, false
	default:
		w.log.Warn("bookings feed unavailable, treating every date as free", slog.String("op", op), sl.Err(err))
		w.booked, w.degraded = slots.BookingsIndex{}, true
	}
}

// Degraded reports whether the last Load fell back to an empty index.
func (w *Widget) Degraded() bool {
	return w.degraded
}

func (w *Widget) State() session.State {
	return w.state
}

func (w *Widget) Services() []catalog.Entry {
	return w.catalog.All()
}

func (w *Widget) ChooseService(key string) error {
	svc, err := w.catalog.Lookup(key)
	if err != nil {
		return fmt.Errorf("widget.ChooseService: %w", err)
	}

	w.state = w.state.SelectService(key, svc)

	// a time picked for a shorter service may no longer fit
	if w.state.Time != "" && !w.offered(w.state.Time) {
		w.state = w.state.SelectTime("")
	}

	return nil
}

// ChooseDate selects the date and returns its slots. The previously chosen
// time is cleared.
func (w *Widget) ChooseDate(date string) ([]slots.SlotDecision, error) {
	const op = "widget.ChooseDate"

	if !slots.ValidDate(date) {
		return nil, fmt.Errorf("%s: %w: %q", op, ErrInvalidDate, date)
	}

	w.state = w.state.SelectDate(date)
	return w.Slots(), nil
}

// Slots recomputes the grid for the current service and date; nil until both
// are chosen.
func (w *Widget) Slots() []slots.SlotDecision {
	q, ok := w.state.Query(w.schedule, w.booked, w.now())
	if !ok {
		return nil
	}
	return slots.Compute(q)
}

// ChooseTime accepts only a label currently offered as available.
func (w *Widget) ChooseTime(label string) error {
	if !w.offered(label) {
		return fmt.Errorf("widget.ChooseTime: %w: %s", ErrSlotUnavailable, label)
	}

	w.state = w.state.SelectTime(label)
	return nil
}

func (w *Widget) offered(label string) bool {
	for _, d := range w.Slots() {
		if d.Label == label && d.Status == slots.StatusAvailable {
			return true
		}
	}
	return false
}

func (w *Widget) SetContact(name, whatsapp string) {
	w.state = w.state.SetContact(name, whatsapp)
}

// Next advances one step when the current step's guard allows it.
func (w *Widget) Next() error {
	switch w.state.Step {
	case session.StepService:
		if !w.state.CanLeaveStep1() {
			return fmt.Errorf("widget.Next: %w: %s", ErrStepIncomplete, w.state.Step)
		}
	case session.StepDateTime:
		if !w.state.CanLeaveStep2() {
			return fmt.Errorf("widget.Next: %w: %s", ErrStepIncomplete, w.state.Step)
		}
	default:
		return fmt.Errorf("widget.Next: %w: %s", ErrStepIncomplete, w.state.Step)
	}

	w.state = w.state.GoTo(w.state.Step + 1)
	return nil
}

func (w *Widget) Back() {
	if w.state.Step > session.StepService && w.state.Step < session.StepConfirmed {
		w.state = w.state.GoTo(w.state.Step - 1)
	}
}

func (w *Widget) Reset() {
	w.state = w.state.Reset()
}

type Confirmation struct {
	Booking      api.BookingCreated
	Summary      session.Summary
	WhatsappLink string
}

// Submit sends the booking request. On success the widget moves to the
// confirmed step and the hand-off link is returned, built locally when the
// backend did not include one.
func (w *Widget) Submit(ctx context.Context, submitter Submitter) (*Confirmation, error) {
	const op = "widget.Submit"

	if !w.state.ReadyToSubmit() {
		return nil, fmt.Errorf("%s: %w", op, ErrStepIncomplete)
	}

	if !w.offered(w.state.Time) {
		return nil, fmt.Errorf("%s: %w: %s", op, ErrSlotUnavailable, w.state.Time)
	}

	sum, err := w.state.Summary()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	created, err := submitter.CreateBooking(ctx, &api.BookingRequest{
		ClienteNome:     w.state.ClientName,
		ClienteWhatsapp: w.state.ClientWhatsapp,
		ServicoNome:     sum.ServiceName,
		DataAgendamento: sum.Date,
		HoraInicio:      sum.Time,
		HoraFim:         sum.EndTime,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	link := created.WhatsappLink
	if link == "" && w.handoff != nil {
		link, err = w.handoff.Link(handoff.Request{
			BookingID:      created.ID,
			ServiceName:    sum.ServiceName,
			Date:           sum.Date,
			Time:           sum.Time,
			ClientName:     w.state.ClientName,
			ClientWhatsapp: w.state.ClientWhatsapp,
		})
		if err != nil {
			w.log.Warn("no hand-off link", slog.String("op", op), sl.Err(err))
		}
	}

	w.state = w.state.GoTo(session.StepConfirmed)

	return &Confirmation{Booking: *created, Summary: sum, WhatsappLink: link}, nil
}
