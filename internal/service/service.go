package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"salon-booking/api"
	"salon-booking/internal/cache"
	"salon-booking/internal/catalog"
	"salon-booking/internal/handoff"
	"salon-booking/internal/metrics"
	"salon-booking/internal/models"
	"salon-booking/internal/slots"
	"salon-booking/pkg/response"
	"salon-booking/pkg/sl"
)

var tracer = otel.Tracer("salon.internal.service")

const (
	dateLayout     = "2006-01-02"
	createdMessage = "Agendamento solicitado com sucesso. Aguardando aprovação."
)

type Store interface {
	ListApprovedBookings(ctx context.Context) ([]models.Booking, error)
	CreateBooking(ctx context.Context, booking *models.Booking) (int64, error)
	ApproveBooking(ctx context.Context, id int64) (*models.Booking, error)
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	ListBookings(ctx context.Context, status *models.BookingStatus, date *time.Time) ([]models.Booking, error)
}

type Options struct {
	Catalog  *catalog.Catalog
	Schedule slots.ScheduleConfig
	Handoff  *handoff.Composer
	Metrics  *metrics.BookingMetrics
}

type Service struct {
	log      *slog.Logger
	store    Store
	cache    cache.UnavailableCache
	catalog  *catalog.Catalog
	schedule slots.ScheduleConfig
	handoff  *handoff.Composer
	metrics  *metrics.BookingMetrics
	now      func() time.Time
}

// NewService wires the booking backend. cache may be nil, in which case every
// feed read goes to the store.
func NewService(log *slog.Logger, store Store, c cache.UnavailableCache, opts Options) *Service {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Handoff == nil {
		opts.Handoff = handoff.New(handoff.Config{})
	}

	return &Service{
		log:      log,
		store:    store,
		cache:    c,
		catalog:  opts.Catalog,
		schedule: opts.Schedule,
		handoff:  opts.Handoff,
		metrics:  opts.Metrics,
		now:      time.Now,
	}
}

// SetClock replaces the wall clock used to hide past slots.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) Services() []api.ServiceResponse {
	entries := s.catalog.All()

	out := make([]api.ServiceResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, api.ServiceResponse{
			Key:      e.Key,
			Name:     e.Name,
			Duration: e.DurationMinutes,
		})
	}

	return out
}

// ListUnavailable returns the approved bookings feed.
func (s *Service) ListUnavailable(ctx context.Context) ([]api.UnavailableTime, error) {
	const op = "service.ListUnavailable"

	ctx, span := tracer.Start(ctx, "service.ListUnavailable")
	defer span.End()

	if s.cache != nil {
		feed, ok, err := s.cache.GetUnavailable(ctx)
		if err != nil {
			s.log.Warn("unavailable cache read failed", slog.String("op", op), sl.Err(err))
		}
		if ok {
			span.SetAttributes(attribute.Bool("salon.cache_hit", true), attribute.Int("salon.bookings", len(feed)))
			return feed, nil
		}
	}

	bookings, err := s.store.ListApprovedBookings(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	feed := make([]api.UnavailableTime, 0, len(bookings))
	for _, b := range bookings {
		feed = append(feed, api.UnavailableTime{
			Data:       b.Date.Format(dateLayout),
			HoraInicio: clockWithSeconds(b.StartTime),
			HoraFim:    clockWithSeconds(b.EndTime),
		})
	}

	if s.cache != nil {
		if err := s.cache.SetUnavailable(ctx, feed); err != nil {
			s.log.Warn("unavailable cache write failed", slog.String("op", op), sl.Err(err))
		}
	}

	span.SetAttributes(attribute.Bool("salon.cache_hit", false), attribute.Int("salon.bookings", len(feed)))

	return feed, nil
}

// BookingsIndex normalizes the feed for the slot engine. Malformed entries are
// logged and skipped.
func (s *Service) BookingsIndex(ctx context.Context) (slots.BookingsIndex, error) {
	const op = "service.BookingsIndex"

	feed, err := s.ListUnavailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	idx, err := api.IndexUnavailable(feed)
	if err != nil {
		s.log.Warn("skipped malformed bookings", slog.String("op", op), sl.Err(err))
	}

	return idx, nil
}

// Availability computes the slots shown for one service on one date. When the
// bookings cannot be read the date is treated as free and the response is
// flagged as degraded.
func (s *Service) Availability(ctx context.Context, serviceKey, date string) (*api.SlotsResponse, error) {
	const op = "service.Availability"

	ctx, span := tracer.Start(ctx, "service.Availability")
	defer span.End()

	started := time.Now()

	span.SetAttributes(attribute.String("salon.service", serviceKey), attribute.String("salon.date", date))

	if !slots.ValidDate(date) {
		return nil, fmt.Errorf("%s: %w: data %q", op, response.ErrBadRequest, date)
	}

	svc, err := s.catalog.Lookup(serviceKey)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownService) {
			return nil, fmt.Errorf("%s: %w: %s", op, response.ErrUnknownService, serviceKey)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	degraded := false
	idx, err := s.BookingsIndex(ctx)
	if err != nil {
		span.RecordError(err)
		s.log.Warn("bookings feed unavailable, showing every slot as free",
			slog.String("op", op),
			slog.String("date", date),
			sl.Err(err),
		)
		s.metrics.ObserveFeedFallback("storage")
		degraded = true
		idx = nil
	}

	decisions := slots.Compute(slots.Query{
		Config:  s.schedule,
		Service: svc,
		Booked:  idx.For(date),
		Date:    date,
		Now:     slots.NowFor(date, s.now()),
	})

	resp := &api.SlotsResponse{
		Servico:  svc.Name,
		Data:     date,
		HasSlots: slots.HasAvailable(decisions),
		Degraded: degraded,
		Slots:    make([]api.SlotResponse, 0, len(decisions)),
	}
	for _, d := range decisions {
		resp.Slots = append(resp.Slots, api.SlotResponse{
			Hora:       d.Label,
			Status:     string(d.Status),
			Disponivel: d.Status == slots.StatusAvailable,
		})
	}

	s.metrics.ObserveSlotQuery(serviceKey, degraded, time.Since(started).Seconds())

	return resp, nil
}

// CreateBooking stores a pending booking request and returns the link that
// hands it to the owner.
func (s *Service) CreateBooking(ctx context.Context, req *api.BookingRequest) (*api.BookingCreated, error) {
	const op = "service.CreateBooking"

	ctx, span := tracer.Start(ctx, "service.CreateBooking")
	defer span.End()

	b, err := bookingFromRequest(req)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.store.CreateBooking(ctx, b)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	span.SetAttributes(attribute.Int64("salon.booking_id", id))
	s.metrics.ObserveBooking("created")

	link, err := s.handoff.Link(handoff.Request{
		BookingID:      id,
		ServiceName:    b.ServiceName,
		Date:           b.Date.Format(dateLayout),
		Time:           b.StartTime,
		ClientName:     b.ClientName,
		ClientWhatsapp: b.ClientWhatsapp,
	})
	if err != nil {
		s.log.Debug("no hand-off link", slog.String("op", op), sl.Err(err))
	}

	return &api.BookingCreated{
		Mensagem:     createdMessage,
		ID:           id,
		Status:       string(models.BookingPending),
		WhatsappLink: link,
	}, nil
}

// ApproveBooking blocks the booking's interval for new clients.
func (s *Service) ApproveBooking(ctx context.Context, id int64) (*api.BookingResponse, error) {
	const op = "service.ApproveBooking"

	ctx, span := tracer.Start(ctx, "service.ApproveBooking")
	defer span.End()

	span.SetAttributes(attribute.Int64("salon.booking_id", id))

	if id <= 0 {
		return nil, fmt.Errorf("%s: %w", op, response.ErrInvalidID)
	}

	b, err := s.store.ApproveBooking(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn("unavailable cache invalidation failed", slog.String("op", op), sl.Err(err))
		}
	}

	s.metrics.ObserveBooking("approved")

	return toBookingResponse(b), nil
}

func (s *Service) GetBooking(ctx context.Context, id int64) (*api.BookingResponse, error) {
	const op = "service.GetBooking"

	if id <= 0 {
		return nil, fmt.Errorf("%s: %w", op, response.ErrInvalidID)
	}

	b, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toBookingResponse(b), nil
}

// ListBookings lists bookings, optionally filtered by status (PENDENTE or
// APROVADO) and date (YYYY-MM-DD). Empty filters are ignored.
func (s *Service) ListBookings(ctx context.Context, status, date string) ([]api.BookingResponse, error) {
	const op = "service.ListBookings"

	var statusPtr *models.BookingStatus
	if status != "" {
		st := models.BookingStatus(strings.ToUpper(status))
		if st != models.BookingPending && st != models.BookingApproved {
			return nil, fmt.Errorf("%s: %w: status %q", op, response.ErrBadRequest, status)
		}
		statusPtr = &st
	}

	var datePtr *time.Time
	if date != "" {
		d, err := time.Parse(dateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: data %q", op, response.ErrBadRequest, date)
		}
		datePtr = &d
	}

	bookings, err := s.store.ListBookings(ctx, statusPtr, datePtr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]api.BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, *toBookingResponse(&bookings[i]))
	}

	return out, nil
}

func toBookingResponse(b *models.Booking) *api.BookingResponse {
	return &api.BookingResponse{
		ID:          b.ID,
		ClienteNome: b.ClientName,
		ServicoNome: b.ServiceName,
		Data:        b.Date.Format(dateLayout),
		HoraInicio:  clockWithSeconds(b.StartTime),
		HoraFim:     clockWithSeconds(b.EndTime),
		Status:      string(b.Status),
	}
}

func bookingFromRequest(req *api.BookingRequest) (*models.Booking, error) {
	if req == nil {
		return nil, response.ErrBadRequest
	}

	fields := []string{
		req.ClienteNome,
		req.ClienteWhatsapp,
		req.ServicoNome,
		req.DataAgendamento,
		req.HoraInicio,
		req.HoraFim,
	}
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return nil, fmt.Errorf("%w: dados incompletos, faltam campos obrigatórios", response.ErrBadRequest)
		}
	}

	date, err := time.Parse(dateLayout, strings.TrimSpace(req.DataAgendamento))
	if err != nil {
		return nil, fmt.Errorf("%w: data_agendamento: %v", response.ErrBadRequest, err)
	}

	start, err := slots.ParseTimeOfDay(strings.TrimSpace(req.HoraInicio))
	if err != nil {
		return nil, fmt.Errorf("%w: hora_inicio: %v", response.ErrBadRequest, err)
	}

	end, err := slots.ParseTimeOfDay(strings.TrimSpace(req.HoraFim))
	if err != nil {
		return nil, fmt.Errorf("%w: hora_fim: %v", response.ErrBadRequest, err)
	}

	if end <= start {
		return nil, fmt.Errorf("%w: hora_fim must be after hora_inicio", response.ErrBadRequest)
	}

	return &models.Booking{
		ClientName:     strings.TrimSpace(req.ClienteNome),
		ClientWhatsapp: strings.TrimSpace(req.ClienteWhatsapp),
		ServiceName:    strings.TrimSpace(req.ServicoNome),
		Date:           date,
		StartTime:      start.String(),
		EndTime:        end.String(),
		Status:         models.BookingPending,
	}, nil
}

// clockWithSeconds renders the SQL TIME form HH:MM:SS. Values already carrying
// seconds are kept.
func clockWithSeconds(t string) string {
	if len(t) == len("15:04") {
		return t + ":00"
	}
	return t
}
