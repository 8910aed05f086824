// Package adminauth guards admin endpoints with a Bearer JWT check. There is
// deliberately no unauthenticated fallback: a request without a valid admin
// token is always rejected.
package adminauth

import (
	"log/slog"
	"net/http"
	"strings"

	"smartBooking/internal/lib/api/response"
	"smartBooking/internal/lib/logger/sl"
	"smartBooking/internal/models"

	"github.com/go-chi/render"
	"github.com/golang-jwt/jwt/v4"
)

func New(log *slog.Logger, secret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		log := log.With(
			slog.String("component", "middleware/adminauth"),
		)

		fn := func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == "" || tokenString == authHeader {
				log.Info("missing bearer token", slog.String("path", r.URL.Path))
				unauthorized(w, r)
				return
			}

			claims := &models.Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				if err != nil {
					log.Info("invalid token", sl.Err(err))
				}
				unauthorized(w, r)
				return
			}

			if claims.Role != models.RoleAdmin {
				log.Info("token without admin role", slog.String("role", claims.Role))
				unauthorized(w, r)
				return
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, response.Error("authentication required"))
}
