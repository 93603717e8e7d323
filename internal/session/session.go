// Package session holds the state of one client walking through the booking
// steps. State is a plain value: every transition returns a new State and
// leaves its receiver untouched, so the caller owns it outright.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"salon-booking/internal/slots"
)

var ErrIncomplete = errors.New("booking is incomplete")

type Step int

const (
	StepService Step = iota + 1
	StepDateTime
	StepContact
	StepConfirmed
)

func (s Step) String() string {
	switch s {
	case StepService:
		return "service"
	case StepDateTime:
		return "date_time"
	case StepContact:
		return "contact"
	case StepConfirmed:
		return "confirmed"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

type State struct {
	Step           Step
	ServiceKey     string
	Service        slots.Service
	Date           string
	Time           string
	ClientName     string
	ClientWhatsapp string
}

func New() State {
	return State{Step: StepService}
}

// Reset discards every selection and returns to the first step.
func (s State) Reset() State {
	return New()
}

func (s State) GoTo(step Step) State {
	s.Step = step
	return s
}

// SelectService keeps the chosen date and time; callers recompute slots when a
// date is already set.
func (s State) SelectService(key string, svc slots.Service) State {
	s.ServiceKey = key
	s.Service = svc
	return s
}

// SelectDate clears the chosen time, which belonged to the previous date.
func (s State) SelectDate(date string) State {
	s.Date = date
	s.Time = ""
	return s
}

func (s State) SelectTime(label string) State {
	s.Time = label
	return s
}

func (s State) SetContact(name, whatsapp string) State {
	s.ClientName = name
	s.ClientWhatsapp = whatsapp
	return s
}

func (s State) HasService() bool {
	return s.ServiceKey != ""
}

func (s State) CanLeaveStep1() bool {
	return s.HasService()
}

func (s State) CanLeaveStep2() bool {
	return s.Time != ""
}

func (s State) ReadyToSubmit() bool {
	return s.HasService() && s.Date != "" && s.Time != "" && strings.TrimSpace(s.ClientName) != ""
}

// Query builds the availability query for the selected service and date. It
// reports false until both are chosen.
func (s State) Query(cfg slots.ScheduleConfig, booked slots.BookingsIndex, clock time.Time) (slots.Query, bool) {
	if !s.HasService() || s.Date == "" {
		return slots.Query{}, false
	}

	return slots.Query{
		Config:  cfg,
		Service: s.Service,
		Booked:  booked.For(s.Date),
		Date:    s.Date,
		Now:     slots.NowFor(s.Date, clock),
	}, true
}

type Summary struct {
	ServiceName string
	Date        string
	DisplayDate string
	Time        string
	EndTime     string
}

func (s State) Summary() (Summary, error) {
	const op = "session.State.Summary"

	if !s.HasService() || s.Date == "" || s.Time == "" {
		return Summary{}, fmt.Errorf("%s: %w", op, ErrIncomplete)
	}

	start, err := slots.ParseTimeOfDay(s.Time)
	if err != nil {
		return Summary{}, fmt.Errorf("%s: %w", op, err)
	}

	return Summary{
		ServiceName: s.Service.Name,
		Date:        s.Date,
		DisplayDate: slots.DisplayDate(s.Date),
		Time:        start.String(),
		EndTime:     s.Service.Reserve(start).End.String(),
	}, nil
}
