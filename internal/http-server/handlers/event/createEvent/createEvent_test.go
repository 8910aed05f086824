package createEvent

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"smartBooking/internal/http-server/handlers/event/createEvent/mocks"
	"smartBooking/internal/lib/logger/handlers/slogdiscard"
	"smartBooking/internal/models"
	"smartBooking/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateEventHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	date := time.Date(2026, 10, 1, 19, 0, 0, 0, time.UTC)

	testCases := []struct {
		name           string
		requestBody    string
		mockSetup      func(m *mocks.EventCreator)
		expectedStatus int
		checkBody      func(t *testing.T, body string)
	}{
		{
			name:        "Success with implicit availability",
			requestBody: `{"title": "Go Conference", "location": "Berlin", "date": "2026-10-01T19:00:00Z", "total_seats": 100, "price": 25.5}`,
			mockSetup: func(m *mocks.EventCreator) {
				m.On("CreateEvent", mock.Anything, storage.CreateEventParams{
					Title:          "Go Conference",
					Location:       "Berlin",
					Date:           date,
					TotalSeats:     100,
					AvailableSeats: 100,
					Price:          25.5,
				}).Return(&models.Event{
					ID:             1,
					Title:          "Go Conference",
					Location:       "Berlin",
					Date:           date,
					TotalSeats:     100,
					AvailableSeats: 100,
					Price:          25.5,
				}, nil)
			},
			expectedStatus: http.StatusCreated,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"status":"OK"`)
				assert.Contains(t, body, `"available_seats":100`)
			},
		},
		{
			name:        "Explicit available seats",
			requestBody: `{"title": "Go Conference", "location": "Berlin", "date": "2026-10-01T19:00:00Z", "total_seats": 100, "available_seats": 40, "price": 25.5}`,
			mockSetup: func(m *mocks.EventCreator) {
				m.On("CreateEvent", mock.Anything, storage.CreateEventParams{
					Title:          "Go Conference",
					Location:       "Berlin",
					Date:           date,
					TotalSeats:     100,
					AvailableSeats: 40,
					Price:          25.5,
				}).Return(&models.Event{ID: 1, AvailableSeats: 40}, nil)
			},
			expectedStatus: http.StatusCreated,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"available_seats":40`)
			},
		},
		{
			name:           "Available exceeds total",
			requestBody:    `{"title": "Go Conference", "location": "Berlin", "date": "2026-10-01T19:00:00Z", "total_seats": 10, "available_seats": 20, "price": 25.5}`,
			mockSetup:      func(m *mocks.EventCreator) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "available_seats cannot exceed total_seats")
			},
		},
		{
			name:           "Missing title",
			requestBody:    `{"location": "Berlin", "date": "2026-10-01T19:00:00Z", "total_seats": 100, "price": 25.5}`,
			mockSetup:      func(m *mocks.EventCreator) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"status":"Error"`)
				assert.Contains(t, body, "Title")
			},
		},
		{
			name:           "Negative price",
			requestBody:    `{"title": "Go Conference", "location": "Berlin", "date": "2026-10-01T19:00:00Z", "total_seats": 100, "price": -1}`,
			mockSetup:      func(m *mocks.EventCreator) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "Price")
			},
		},
		{
			name:           "Invalid JSON",
			requestBody:    `not json`,
			mockSetup:      func(m *mocks.EventCreator) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "failed to decode request")
			},
		},
		{
			name:        "Storage error",
			requestBody: `{"title": "Go Conference", "location": "Berlin", "date": "2026-10-01T19:00:00Z", "total_seats": 100, "price": 25.5}`,
			mockSetup: func(m *mocks.EventCreator) {
				m.On("CreateEvent", mock.Anything, mock.AnythingOfType("storage.CreateEventParams")).
					Return(nil, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "failed to add event")
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockCreator := mocks.NewEventCreator(t)
			tc.mockSetup(mockCreator)

			handler := New(logger, mockCreator)

			req, err := http.NewRequest(http.MethodPost, "/api/events", bytes.NewBufferString(tc.requestBody))
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")
			tc.checkBody(t, rr.Body.String())
		})
	}
}
