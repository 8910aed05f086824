package updateEvent

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"smartBooking/internal/lib/api/response"
	"smartBooking/internal/lib/logger/sl"
	"smartBooking/internal/models"
	"smartBooking/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

// EventRequest carries only the fields the admin wants to change. Absent
// fields stay as they are; in particular total_seats and available_seats
// are updated independently of each other.
type EventRequest struct {
	Title          *string    `json:"title,omitempty" validate:"omitempty,min=2"`
	Description    *string    `json:"description,omitempty"`
	Location       *string    `json:"location,omitempty" validate:"omitempty,min=2"`
	Date           *time.Time `json:"date,omitempty"`
	TotalSeats     *int       `json:"total_seats,omitempty" validate:"omitempty,gt=0"`
	AvailableSeats *int       `json:"available_seats,omitempty" validate:"omitempty,gte=0"`
	Price          *float64   `json:"price,omitempty" validate:"omitempty,gte=0"`
	Img            *string    `json:"img,omitempty"`
}

type EventResponse struct {
	response.Response
	Event *models.Event `json:"event"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventUpdater
type EventUpdater interface {
	UpdateEvent(ctx context.Context, id int, p storage.UpdateEventParams) (*models.Event, error)
}

func New(log *slog.Logger, events EventUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.updateEvent.New"

		log = log.With(slog.String("op", op))

		eventIDStr := chi.URLParam(r, "id")
		eventID, err := strconv.Atoi(eventIDStr)
		if err != nil {
			log.Error("invalid event id format", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid event id format"))
			return
		}

		log = log.With(slog.Int("event_id", eventID))

		var req EventRequest

		err = render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		event, err := events.UpdateEvent(r.Context(), eventID, storage.UpdateEventParams{
			Title:          req.Title,
			Description:    req.Description,
			Location:       req.Location,
			Date:           req.Date,
			TotalSeats:     req.TotalSeats,
			AvailableSeats: req.AvailableSeats,
			Price:          req.Price,
			Img:            req.Img,
		})
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrEventNotFound):
				log.Info("event not found")
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
			case errors.Is(err, storage.ErrNoUpdateFields):
				log.Info("no fields to update")
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("no fields to update"))
			default:
				log.Error("failed to update event", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to update event"))
			}
			return
		}

		log.Info("event updated")

		render.JSON(w, r, EventResponse{
			Response: response.OK(),
			Event:    event,
		})
	}
}
