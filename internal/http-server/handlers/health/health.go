package health

import (
	"context"
	"log/slog"
	"net/http"

	"smartBooking/internal/lib/api/response"
	"smartBooking/internal/lib/logger/sl"

	"github.com/go-chi/render"
)

type HealthResponse struct {
	response.Response
	DB bool `json:"db"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Pinger
type Pinger interface {
	Ping(ctx context.Context) error
}

func New(log *slog.Logger, db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.health.New"

		if err := db.Ping(r.Context()); err != nil {
			log.Error("health check failed", slog.String("op", op), sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, HealthResponse{
				Response: response.Error("database unavailable"),
			})
			return
		}

		render.JSON(w, r, HealthResponse{
			Response: response.OK(),
			DB:       true,
		})
	}
}
