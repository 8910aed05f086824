package createBooking

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"smartBooking/internal/lib/api/response"
	"smartBooking/internal/lib/logger/sl"
	"smartBooking/internal/models"
	"smartBooking/internal/storage"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type BookingRequest struct {
	EventID  int    `json:"event_id" validate:"required,gt=0"`
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Mobile   string `json:"mobile,omitempty"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

type BookingResponse struct {
	response.Response
	Booking *models.Booking `json:"booking"`
}

// InsufficientSeatsResponse reports the availability observed under the row
// lock, so the client can offer a smaller quantity.
type InsufficientSeatsResponse struct {
	response.Response
	Available int `json:"available"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingCreator
type BookingCreator interface {
	CreateBooking(ctx context.Context, p storage.CreateBookingParams) (*models.Booking, error)
}

func New(log *slog.Logger, booking BookingCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.createBooking.New"

		log = log.With(slog.String("op", op))

		var req BookingRequest

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
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		booked, err := booking.CreateBooking(r.Context(), storage.CreateBookingParams{
			EventID:  req.EventID,
			Name:     req.Name,
			Email:    req.Email,
			Mobile:   req.Mobile,
			Quantity: req.Quantity,
		})
		if err != nil {
			var insufficientErr *storage.InsufficientSeatsError

			switch {
			case errors.Is(err, storage.ErrEventNotFound):
				log.Info("event not found", slog.Int("event_id", req.EventID))
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
			case errors.As(err, &insufficientErr):
				log.Info("not enough available seats",
					slog.Int("event_id", req.EventID),
					slog.Int("requested", req.Quantity),
					slog.Int("available", insufficientErr.Available),
				)
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, InsufficientSeatsResponse{
					Response:  response.Error("not enough available seats"),
					Available: insufficientErr.Available,
				})
			default:
				log.Error("failed to create booking", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to create booking"))
			}
			return
		}

		log.Info("booking created",
			slog.Int("booking_id", booked.ID),
			slog.Int("event_id", booked.EventID),
			slog.Int("quantity", booked.Quantity),
		)

		responseCreated(w, r, booked)
	}
}

func responseCreated(w http.ResponseWriter, r *http.Request, booking *models.Booking) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, BookingResponse{
		Response: response.OK(),
		Booking:  booking,
	})
}
