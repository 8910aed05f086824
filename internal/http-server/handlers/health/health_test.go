package health

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"smartBooking/internal/http-server/handlers/health/mocks"
	"smartBooking/internal/lib/logger/handlers/slogdiscard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHealthHandler(t *testing.T) {
	t.Parallel()

	t.Run("Healthy", func(t *testing.T) {
		t.Parallel()

		pinger := mocks.NewPinger(t)
		pinger.On("Ping", mock.Anything).Return(nil)

		handler := New(slogdiscard.NewDiscardLogger(), pinger)

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"status":"OK","db":true}`, rr.Body.String())
	})

	t.Run("Database down", func(t *testing.T) {
		t.Parallel()

		pinger := mocks.NewPinger(t)
		pinger.On("Ping", mock.Anything).Return(errors.New("connection refused"))

		handler := New(slogdiscard.NewDiscardLogger(), pinger)

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"status":"Error","error":"database unavailable","db":false}`, rr.Body.String())
	})
}
