package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"salon-booking/api"
	"salon-booking/pkg/response"
	"salon-booking/pkg/sl"
)

type BookingGetter interface {
	GetBooking(ctx context.Context, id int64) (*api.BookingResponse, error)
	ListBookings(ctx context.Context, status, date string) ([]api.BookingResponse, error)
}

type Response struct {
	response.Response
	Bookings []api.BookingResponse `json:"bookings,omitempty"`
	Booking  *api.BookingResponse  `json:"booking,omitempty"`
}

func New(log *slog.Logger, getter BookingGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.bookings.get.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		idStr := chi.URLParam(r, "id")

		if idStr != "" {
			// Get by ID
			id, err := strconv.ParseInt(idStr, 10, 64)
			if err != nil {
				log.Error("invalid booking id", slog.String("id", idStr))
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error(string(response.INVALID_REQUEST), "invalid booking id"))
				return
			}

			booking, err := getter.GetBooking(r.Context(), id)

			if errors.Is(err, response.ErrInvalidID) {
				log.Error("invalid booking id", slog.Int64("id", id))
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error(string(response.INVALID_REQUEST), "invalid booking id"))
				return
			}

			if errors.Is(err, response.ErrNotFound) {
				log.Error("resource not found")
				w.WriteHeader(http.StatusNotFound)
				render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
				return
			}

			if err != nil {
				log.Error("Failed to get booking", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get booking"))
				return
			}

			log.Info("Booking retrieved", slog.Int64("id", booking.ID))
			render.JSON(w, r, Response{Booking: booking})
			return
		}

		// List
		bookings, err := getter.ListBookings(r.Context(), r.URL.Query().Get("status"), r.URL.Query().Get("data"))

		if errors.Is(err, response.ErrBadRequest) {
			log.Error("invalid filters", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.INVALID_REQUEST), "status must be PENDENTE or APROVADO and data YYYY-MM-DD"))
			return
		}

		if err != nil {
			log.Error("Failed to list bookings", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list bookings"))
			return
		}

		log.Info("Bookings listed", slog.Int("count", len(bookings)))
		render.JSON(w, r, Response{Bookings: bookings})
	}
}
