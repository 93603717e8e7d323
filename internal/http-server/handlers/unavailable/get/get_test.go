package get

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"salon-booking/api"
)

type listerFunc func(ctx context.Context) ([]api.UnavailableTime, error)

func (f listerFunc) ListUnavailable(ctx context.Context) ([]api.UnavailableTime, error) {
	return f(ctx)
}

func TestGet(t *testing.T) {
	tests := []struct {
		name     string
		lister   listerFunc
		wantCode int
		wantBody string
	}{
		{
			name: "approved bookings",
			lister: func(context.Context) ([]api.UnavailableTime, error) {
				return []api.UnavailableTime{{Data: "2026-10-20", HoraInicio: "10:00:00", HoraFim: "10:45:00"}}, nil
			},
			wantCode: http.StatusOK,
			wantBody: `[{"data":"2026-10-20","hora_inicio":"10:00:00","hora_fim":"10:45:00"}]`,
		},
		{
			name:     "none",
			lister:   func(context.Context) ([]api.UnavailableTime, error) { return nil, nil },
			wantCode: http.StatusOK,
			wantBody: `[]`,
		},
		{
			name:     "storage down",
			lister:   func(context.Context) ([]api.UnavailableTime, error) { return nil, errors.New("boom") },
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":{"code":"REQUEST_FAILED","message":"failed to list unavailable times"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/horarios-indisponiveis", nil)

			New(slog.New(slog.NewTextHandler(io.Discard, nil)), tt.lister).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
