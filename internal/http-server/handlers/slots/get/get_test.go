package get

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salon-booking/api"
	"salon-booking/pkg/response"
)

type getterFunc func(ctx context.Context, serviceKey, date string) (*api.SlotsResponse, error)

func (f getterFunc) Availability(ctx context.Context, serviceKey, date string) (*api.SlotsResponse, error) {
	return f(ctx, serviceKey, date)
}

func TestGet(t *testing.T) {
	getter := getterFunc(func(_ context.Context, key, date string) (*api.SlotsResponse, error) {
		return &api.SlotsResponse{
			Servico:  "Corte de Cabelo",
			Data:     date,
			HasSlots: true,
			Slots: []api.SlotResponse{
				{Hora: "09:00", Status: "available", Disponivel: true},
				{Hora: "09:30", Status: "occupied"},
			},
		}, nil
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/horarios?servico=corte&data=2026-10-20", nil)
	New(slog.New(slog.NewTextHandler(io.Discard, nil)), getter).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got api.SlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "2026-10-20", got.Data)
	assert.True(t, got.HasSlots)
	assert.Len(t, got.Slots, 2)
}

func TestGet_Errors(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		err      error
		wantCode int
		wantErr  string
	}{
		{name: "missing params", query: "?servico=corte", wantCode: http.StatusBadRequest, wantErr: "INVALID_REQUEST"},
		{name: "unknown service", query: "?servico=x&data=2026-10-20", err: fmt.Errorf("a: %w", response.ErrUnknownService), wantCode: http.StatusNotFound, wantErr: "UNKNOWN_SERVICE"},
		{name: "bad date", query: "?servico=corte&data=ontem", err: fmt.Errorf("a: %w", response.ErrBadRequest), wantCode: http.StatusBadRequest, wantErr: "INVALID_REQUEST"},
		{name: "internal", query: "?servico=corte&data=2026-10-20", err: errors.New("boom"), wantCode: http.StatusInternalServerError, wantErr: "REQUEST_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getter := getterFunc(func(context.Context, string, string) (*api.SlotsResponse, error) {
				return nil, tt.err
			})

			rec := httptest.NewRecorder()
			New(slog.New(slog.NewTextHandler(io.Discard, nil)), getter).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/horarios"+tt.query, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantErr)
		})
	}
}
