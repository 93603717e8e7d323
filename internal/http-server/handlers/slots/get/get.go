package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"salon-booking/api"
	"salon-booking/pkg/response"
	"salon-booking/pkg/sl"
)

type AvailabilityGetter interface {
	Availability(ctx context.Context, serviceKey, date string) (*api.SlotsResponse, error)
}

// New answers GET /api/horarios?servico=<key>&data=<YYYY-MM-DD>.
func New(log *slog.Logger, getter AvailabilityGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.slots.get.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		serviceKey := r.URL.Query().Get("servico")
		date := r.URL.Query().Get("data")

		if serviceKey == "" || date == "" {
			log.Error("servico and data are required")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.INVALID_REQUEST), "servico and data are required"))
			return
		}

		resp, err := getter.Availability(r.Context(), serviceKey, date)

		if errors.Is(err, response.ErrUnknownService) {
			log.Error("unknown service", slog.String("servico", serviceKey))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.UNKNOWN_SERVICE), "unknown service"))
			return
		}

		if errors.Is(err, response.ErrBadRequest) {
			log.Error("invalid date", slog.String("data", date))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.INVALID_REQUEST), "data must be YYYY-MM-DD"))
			return
		}

		if err != nil {
			log.Error("Failed to compute availability", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to compute availability"))
			return
		}

		if resp.Degraded {
			log.Warn("availability served without bookings feed", slog.String("data", date))
		}

		render.JSON(w, r, resp)
	}
}
