package getAllBookings

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"smartBooking/internal/lib/api/response"
	"smartBooking/internal/lib/logger/sl"
	"smartBooking/internal/models"

	"github.com/go-chi/render"
)

type BookingsResponse struct {
	response.Response
	Bookings []models.Booking `json:"bookings"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingsGetter
type BookingsGetter interface {
	GetAllBookings(ctx context.Context, eventID int) ([]models.Booking, error)
}

// New lists bookings newest first. An optional event_id query parameter
// narrows the listing to one event.
func New(log *slog.Logger, bookings BookingsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.getAllBookings.New"

		log = log.With(slog.String("op", op))

		var eventID int
		if eventIDStr := r.URL.Query().Get("event_id"); eventIDStr != "" {
			var err error
			eventID, err = strconv.Atoi(eventIDStr)
			if err != nil || eventID < 1 {
				log.Error("invalid event_id filter", slog.String("event_id", eventIDStr))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("invalid event_id filter"))
				return
			}
		}

		list, err := bookings.GetAllBookings(r.Context(), eventID)
		if err != nil {
			log.Error("failed to get bookings", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get bookings"))
			return
		}

		log.Info("bookings retrieved", slog.Int("count", len(list)))

		render.JSON(w, r, BookingsResponse{
			Response: response.OK(),
			Bookings: list,
		})
	}
}
