package getAllEvents

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"smartBooking/internal/lib/api/response"
	"smartBooking/internal/lib/logger/sl"
	"smartBooking/internal/models"
	"smartBooking/internal/storage"

	"github.com/go-chi/render"
)

type EventsResponse struct {
	response.Response
	Events []models.Event `json:"events"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventsGetter
type EventsGetter interface {
	GetAllEvents(ctx context.Context, filters storage.EventFilters) ([]models.Event, error)
}

// New lists events ordered by date. Supports optional q (free text over
// title/description), location (substring) and date (YYYY-MM-DD) filters.
func New(log *slog.Logger, events EventsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getAllEvents.New"

		log = log.With(slog.String("op", op))

		filters := storage.EventFilters{
			Query:    r.URL.Query().Get("q"),
			Location: r.URL.Query().Get("location"),
		}

		if dateStr := r.URL.Query().Get("date"); dateStr != "" {
			date, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				log.Error("invalid date filter", slog.String("date", dateStr))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("invalid date filter, expected YYYY-MM-DD"))
				return
			}
			filters.Date = date
		}

		list, err := events.GetAllEvents(r.Context(), filters)
		if err != nil {
			log.Error("failed to get events", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get events"))
			return
		}

		log.Info("events retrieved successfully", slog.Int("count", len(list)))

		render.JSON(w, r, EventsResponse{
			Response: response.OK(),
			Events:   list,
		})
	}
}
