package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"salon-booking/internal/models"
	"salon-booking/pkg/response"

	"github.com/lib/pq"
)

type Storage struct {
	db *sql.DB
}

func New(storagePath string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("postgres", storagePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

// NewWithDB wraps an already opened handle.
func NewWithDB(db *sql.DB) *Storage {
	return &Storage{db: db}
}

func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

func (s *Storage) Ping(ctx context.Context) error {
	const op = "storage.postgres.Ping"

	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// #### agendamentos ####

func (s *Storage) ListApprovedBookings(ctx context.Context) ([]models.Booking, error) {
	const op = "storage.postgres.ListApprovedBookings"

	rows, err := s.db.QueryContext(ctx, `
		SELECT data_agendamento, hora_inicio, hora_fim
		FROM agendamentos
		WHERE status = $1
		ORDER BY data_agendamento, hora_inicio`,
		string(models.BookingApproved),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		b := models.Booking{Status: models.BookingApproved}
		if err := rows.Scan(&b.Date, &b.StartTime, &b.EndTime); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookings, nil
}

func (s *Storage) CreateBooking(ctx context.Context, b *models.Booking) (int64, error) {
	const op = "storage.postgres.CreateBooking"

	status := b.Status
	if status == "" {
		status = models.BookingPending
	}

	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO agendamentos
		(cliente_nome, cliente_whatsapp, servico_nome, data_agendamento, hora_inicio, hora_fim, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		b.ClientName,
		b.ClientWhatsapp,
		b.ServiceName,
		b.Date,
		b.StartTime,
		b.EndTime,
		string(status),
	).Scan(&id)
	if err != nil {
		var sqlErr *pq.Error
		if errors.As(err, &sqlErr) && isInvalidInput(sqlErr.Code) {
			return 0, fmt.Errorf("%s: %w: %s", op, response.ErrBadRequest, sqlErr.Message)
		}

		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// ApproveBooking marks the booking approved and returns its row.
func (s *Storage) ApproveBooking(ctx context.Context, id int64) (*models.Booking, error) {
	const op = "storage.postgres.ApproveBooking"

	b := models.Booking{}
	err := s.db.QueryRowContext(ctx, `
		UPDATE agendamentos SET status = $1
		WHERE id = $2
		RETURNING id, cliente_nome, cliente_whatsapp, servico_nome,
			data_agendamento, hora_inicio, hora_fim, status, created_at`,
		string(models.BookingApproved),
		id,
	).Scan(
		&b.ID,
		&b.ClientName,
		&b.ClientWhatsapp,
		&b.ServiceName,
		&b.Date,
		&b.StartTime,
		&b.EndTime,
		&b.Status,
		&b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &b, nil
}

func (s *Storage) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	const op = "storage.postgres.GetBooking"

	b := models.Booking{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, cliente_nome, cliente_whatsapp, servico_nome,
			data_agendamento, hora_inicio, hora_fim, status, created_at
		FROM agendamentos
		WHERE id = $1`,
		id,
	).Scan(
		&b.ID,
		&b.ClientName,
		&b.ClientWhatsapp,
		&b.ServiceName,
		&b.Date,
		&b.StartTime,
		&b.EndTime,
		&b.Status,
		&b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &b, nil
}

// ListBookings filters by status and date when they are set.
func (s *Storage) ListBookings(ctx context.Context, status *models.BookingStatus, date *time.Time) ([]models.Booking, error) {
	const op = "storage.postgres.ListBookings"

	query := `
		SELECT id, cliente_nome, cliente_whatsapp, servico_nome,
			data_agendamento, hora_inicio, hora_fim, status, created_at
		FROM agendamentos
		WHERE 1=1`
	args := []any{}
	argPos := 1

	if status != nil {
		query += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, string(*status))
		argPos++
	}

	if date != nil {
		query += fmt.Sprintf(" AND data_agendamento = $%d", argPos)
		args = append(args, *date)
		argPos++
	}

	query += " ORDER BY data_agendamento, hora_inicio"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		b := models.Booking{}
		if err := rows.Scan(
			&b.ID,
			&b.ClientName,
			&b.ClientWhatsapp,
			&b.ServiceName,
			&b.Date,
			&b.StartTime,
			&b.EndTime,
			&b.Status,
			&b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookings, nil
}

// isInvalidInput matches SQLSTATEs raised for malformed dates, times and
// check constraint violations.
func isInvalidInput(code pq.ErrorCode) bool {
	switch code {
	case "22007", "22008", "22P02", "23514":
		return true
	}
	return false
}
