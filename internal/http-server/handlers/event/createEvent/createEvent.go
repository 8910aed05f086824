package createEvent

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"smartBooking/internal/lib/api/response"
	"smartBooking/internal/lib/logger/sl"
	"smartBooking/internal/models"
	"smartBooking/internal/storage"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type EventRequest struct {
	Title          string    `json:"title" validate:"required,min=2"`
	Description    string    `json:"description,omitempty"`
	Location       string    `json:"location" validate:"required,min=2"`
	Date           time.Time `json:"date" validate:"required"`
	TotalSeats     int       `json:"total_seats" validate:"required,gt=0"`
	AvailableSeats *int      `json:"available_seats,omitempty" validate:"omitempty,gte=0"`
	Price          float64   `json:"price" validate:"gte=0"`
	Img            string    `json:"img,omitempty"`
}

type EventResponse struct {
	response.Response
	Event *models.Event `json:"event"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventCreator
type EventCreator interface {
	CreateEvent(ctx context.Context, p storage.CreateEventParams) (*models.Event, error)
}

func New(log *slog.Logger, events EventCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.createEvent.New"

		log = log.With(slog.String("op", op))

		var req EventRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		// A new event starts fully available unless the admin says otherwise.
		availableSeats := req.TotalSeats
		if req.AvailableSeats != nil {
			availableSeats = *req.AvailableSeats
		}
		if availableSeats > req.TotalSeats {
			log.Error("available_seats exceeds total_seats",
				slog.Int("available_seats", availableSeats),
				slog.Int("total_seats", req.TotalSeats),
			)
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("available_seats cannot exceed total_seats"))
			return
		}

		event, err := events.CreateEvent(r.Context(), storage.CreateEventParams{
			Title:          req.Title,
			Description:    req.Description,
			Location:       req.Location,
			Date:           req.Date,
			TotalSeats:     req.TotalSeats,
			AvailableSeats: availableSeats,
			Price:          req.Price,
			Img:            req.Img,
		})
		if err != nil {
			log.Error("failed to add event", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to add event"))
			return
		}

		log.Info("event added", slog.Int("id", event.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, EventResponse{
			Response: response.OK(),
			Event:    event,
		})
	}
}
