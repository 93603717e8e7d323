package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salon-booking/internal/models"
	"salon-booking/pkg/response"
)

func newMock(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewWithDB(db), mock
}

func TestListApprovedBookings(t *testing.T) {
	s, mock := newMock(t)

	day := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT data_agendamento, hora_inicio, hora_fim FROM agendamentos WHERE status = \$1`).
		WithArgs("APROVADO").
		WillReturnRows(sqlmock.NewRows([]string{"data_agendamento", "hora_inicio", "hora_fim"}).
			AddRow(day, "10:00:00", "10:45:00").
			AddRow(day, "14:00:00", "15:30:00"))

	got, err := s.ListApprovedBookings(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "10:00:00", got[0].StartTime)
	assert.Equal(t, "15:30:00", got[1].EndTime)
	assert.Equal(t, models.BookingApproved, got[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListApprovedBookings_QueryError(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(`SELECT data_agendamento`).WillReturnError(sql.ErrConnDone)

	_, err := s.ListApprovedBookings(context.Background())
	assert.ErrorIs(t, err, sql.ErrConnDone)
}

func TestCreateBooking(t *testing.T) {
	s, mock := newMock(t)

	b := &models.Booking{
		ClientName:     "Maria",
		ClientWhatsapp: "82999990000",
		ServiceName:    "Corte de Cabelo",
		Date:           time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		StartTime:      "10:00",
		EndTime:        "10:45",
	}

	mock.ExpectQuery(`INSERT INTO agendamentos`).
		WithArgs("Maria", "82999990000", "Corte de Cabelo", b.Date, "10:00", "10:45", "PENDENTE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := s.CreateBooking(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBooking_InvalidInput(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO agendamentos`).
		WillReturnError(&pq.Error{Code: "22007", Message: "invalid input syntax for type time"})

	_, err := s.CreateBooking(context.Background(), &models.Booking{StartTime: "nope"})
	assert.ErrorIs(t, err, response.ErrBadRequest)
}

func TestApproveBooking(t *testing.T) {
	s, mock := newMock(t)

	day := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`UPDATE agendamentos SET status = \$1`).
		WithArgs("APROVADO", int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "cliente_nome", "cliente_whatsapp", "servico_nome",
			"data_agendamento", "hora_inicio", "hora_fim", "status", "created_at",
		}).AddRow(int64(3), "Maria", "82999990000", "Manicure + Pedicure", day, "14:00:00", "15:00:00", "APROVADO", created))

	b, err := s.ApproveBooking(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Maria", b.ClientName)
	assert.Equal(t, models.BookingApproved, b.Status)
	assert.Equal(t, day, b.Date)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveBooking_NotFound(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery(`UPDATE agendamentos`).
		WithArgs("APROVADO", int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := s.ApproveBooking(context.Background(), 404)
	assert.ErrorIs(t, err, response.ErrNotFound)
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

var bookingColumns = []string{
	"id", "cliente_nome", "cliente_whatsapp", "servico_nome",
	"data_agendamento", "hora_inicio", "hora_fim", "status", "created_at",
}

func TestGetBooking(t *testing.T) {
	s, mock := newMock(t)

	day := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM agendamentos WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow(int64(4), "Ana", "", "Escova Simples", day, "09:00:00", "09:30:00", "PENDENTE", day))

	b, err := s.GetBooking(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, b.Status)
	assert.Equal(t, "Escova Simples", b.ServiceName)

	mock.ExpectQuery(`FROM agendamentos WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnError(sql.ErrNoRows)

	_, err = s.GetBooking(context.Background(), 5)
	assert.ErrorIs(t, err, response.ErrNotFound)
}

func TestListBookings_Filters(t *testing.T) {
	s, mock := newMock(t)

	day := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	status := models.BookingPending

	mock.ExpectQuery(`WHERE 1=1 AND status = \$1 AND data_agendamento = \$2 ORDER BY`).
		WithArgs("PENDENTE", day).
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow(int64(1), "Ana", "", "Escova Simples", day, "09:00:00", "09:30:00", "PENDENTE", day))

	got, err := s.ListBookings(context.Background(), &status, &day)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	mock.ExpectQuery(`WHERE 1=1 ORDER BY`).
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	got, err = s.ListBookings(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPing(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	s := NewWithDB(db)

	mock.ExpectPing()
	require.NoError(t, s.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(sql.ErrConnDone)
	err = s.Ping(context.Background())
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.Contains(t, err.Error(), "storage.postgres.Ping")

	assert.NoError(t, mock.ExpectationsWereMet())
}
