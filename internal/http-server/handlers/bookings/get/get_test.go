package get

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"salon-booking/api"
	"salon-booking/pkg/response"
)

type fakeGetter struct {
	status, date string
}

func (f *fakeGetter) GetBooking(ctx context.Context, id int64) (*api.BookingResponse, error) {
	if id == 404 {
		return nil, fmt.Errorf("svc: %w", response.ErrNotFound)
	}
	return &api.BookingResponse{ID: id, Status: "PENDENTE"}, nil
}

func (f *fakeGetter) ListBookings(ctx context.Context, status, date string) ([]api.BookingResponse, error) {
	f.status, f.date = status, date
	if status == "cancelado" {
		return nil, fmt.Errorf("svc: %w", response.ErrBadRequest)
	}
	return []api.BookingResponse{{ID: 1, Status: "PENDENTE"}}, nil
}

func router(g BookingGetter) http.Handler {
	r := chi.NewRouter()
	h := New(slog.New(slog.NewTextHandler(io.Discard, nil)), g)
	r.Get("/api/agendamentos", h)
	r.Get("/api/agendamentos/{id}", h)
	return r
}

func TestGet(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantCode int
		wantBody string
	}{
		{name: "by id", path: "/api/agendamentos/3", wantCode: http.StatusOK, wantBody: `"id":3`},
		{name: "bad id", path: "/api/agendamentos/x", wantCode: http.StatusBadRequest, wantBody: "INVALID_REQUEST"},
		{name: "missing", path: "/api/agendamentos/404", wantCode: http.StatusNotFound, wantBody: "NOT_FOUND"},
		{name: "list", path: "/api/agendamentos?status=PENDENTE&data=2026-10-20", wantCode: http.StatusOK, wantBody: `"bookings":[`},
		{name: "bad filter", path: "/api/agendamentos?status=cancelado", wantCode: http.StatusBadRequest, wantBody: "INVALID_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router(&fakeGetter{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestGet_PassesFilters(t *testing.T) {
	g := &fakeGetter{}
	rec := httptest.NewRecorder()
	router(g).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/agendamentos?status=APROVADO&data=2026-10-21", nil))

	assert.Equal(t, "APROVADO", g.status)
	assert.Equal(t, "2026-10-21", g.date)
}
