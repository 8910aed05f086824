package login

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"smartBooking/internal/config"
	"smartBooking/internal/lib/logger/handlers/slogdiscard"
	"smartBooking/internal/models"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAdmin() config.Admin {
	return config.Admin{
		Username:  "admin",
		Password:  "s3cret",
		JWTSecret: "test-signing-key",
		TokenTTL:  24 * time.Hour,
	}
}

func TestLoginHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		requestBody    string
		expectedStatus int
		checkBody      func(t *testing.T, body string)
	}{
		{
			name:           "Success",
			requestBody:    `{"username": "admin", "password": "s3cret"}`,
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				var resp LoginResponse
				require.NoError(t, json.Unmarshal([]byte(body), &resp))
				assert.Equal(t, "OK", resp.Status)
				assert.Equal(t, models.RoleAdmin, resp.Role)
				assert.NotEmpty(t, resp.Token)
			},
		},
		{
			name:           "Wrong password",
			requestBody:    `{"username": "admin", "password": "wrong"}`,
			expectedStatus: http.StatusUnauthorized,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "invalid credentials")
			},
		},
		{
			name:           "Wrong username",
			requestBody:    `{"username": "root", "password": "s3cret"}`,
			expectedStatus: http.StatusUnauthorized,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "invalid credentials")
			},
		},
		{
			name:           "Missing password",
			requestBody:    `{"username": "admin"}`,
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "Password")
			},
		},
		{
			name:           "Invalid JSON",
			requestBody:    `not json`,
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "failed to decode request")
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			handler := New(logger, testAdmin())

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(tc.requestBody))
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			tc.checkBody(t, rr.Body.String())
		})
	}
}

func TestIssuedTokenIsVerifiable(t *testing.T) {
	t.Parallel()

	cfg := testAdmin()
	handler := New(slogdiscard.NewDiscardLogger(), cfg)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		bytes.NewBufferString(`{"username": "admin", "password": "s3cret"}`))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(resp.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})

	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.WithinDuration(t, time.Now().Add(cfg.TokenTTL), claims.ExpiresAt.Time, time.Minute)
}
