package getAllEvents

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"smartBooking/internal/http-server/handlers/event/getAllEvents/mocks"
	"smartBooking/internal/lib/logger/handlers/slogdiscard"
	"smartBooking/internal/models"
	"smartBooking/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetAllEventsHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		url            string
		mockSetup      func(m *mocks.EventsGetter)
		expectedStatus int
		checkBody      func(t *testing.T, body string)
	}{
		{
			name: "Unfiltered",
			url:  "/api/events",
			mockSetup: func(m *mocks.EventsGetter) {
				m.On("GetAllEvents", mock.Anything, storage.EventFilters{}).Return([]models.Event{
					{ID: 1, Title: "Go Conference", Location: "Berlin"},
					{ID: 2, Title: "Jazz Night", Location: "Hamburg"},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "Go Conference")
				assert.Contains(t, body, "Jazz Night")
			},
		},
		{
			name: "Location and query filters",
			url:  "/api/events?location=Berlin&q=go",
			mockSetup: func(m *mocks.EventsGetter) {
				m.On("GetAllEvents", mock.Anything, storage.EventFilters{
					Query:    "go",
					Location: "Berlin",
				}).Return([]models.Event{{ID: 1, Title: "Go Conference"}}, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "Go Conference")
			},
		},
		{
			name: "Date filter",
			url:  "/api/events?date=2026-10-01",
			mockSetup: func(m *mocks.EventsGetter) {
				m.On("GetAllEvents", mock.Anything, storage.EventFilters{
					Date: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
				}).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"status":"OK"`)
			},
		},
		{
			name:           "Invalid date filter",
			url:            "/api/events?date=01-10-2026",
			mockSetup:      func(m *mocks.EventsGetter) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "invalid date filter")
			},
		},
		{
			name: "Storage error",
			url:  "/api/events",
			mockSetup: func(m *mocks.EventsGetter) {
				m.On("GetAllEvents", mock.Anything, storage.EventFilters{}).
					Return(nil, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "failed to get events")
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockGetter := mocks.NewEventsGetter(t)
			tc.mockSetup(mockGetter)

			handler := New(logger, mockGetter)

			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			tc.checkBody(t, rr.Body.String())
		})
	}
}
