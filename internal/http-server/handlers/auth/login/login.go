package login

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"smartBooking/internal/config"
	"smartBooking/internal/lib/api/response"
	"smartBooking/internal/lib/logger/sl"
	"smartBooking/internal/models"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	response.Response
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// New checks the admin credentials from config and issues a signed HS256
// token carrying the admin role.
func New(log *slog.Logger, cfg config.Admin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.login.New"

		log = log.With(slog.String("op", op))

		var req LoginRequest

		err := render.DecodeJSON(r.Body, &req)
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

		usernameOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(cfg.Username)) == 1
		passwordOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(cfg.Password)) == 1

		if !usernameOK || !passwordOK {
			log.Info("invalid credentials", slog.String("username", req.Username))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid credentials"))
			return
		}

		claims := &models.Claims{
			Username: req.Username,
			Role:     models.RoleAdmin,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(cfg.TokenTTL)),
				IssuedAt:  jwt.NewNumericDate(time.Now()),
			},
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		tokenString, err := token.SignedString([]byte(cfg.JWTSecret))
		if err != nil {
			log.Error("failed to sign token", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to generate token"))
			return
		}

		log.Info("admin logged in", slog.String("username", req.Username))

		render.JSON(w, r, LoginResponse{
			Response: response.OK(),
			Token:    tokenString,
			Username: req.Username,
			Role:     models.RoleAdmin,
		})
	}
}
