package getAllBookings

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"smartBooking/internal/http-server/handlers/booking/getAllBookings/mocks"
	"smartBooking/internal/lib/logger/handlers/slogdiscard"
	"smartBooking/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetAllBookingsHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		url            string
		mockSetup      func(m *mocks.BookingsGetter)
		expectedStatus int
		checkBody      func(t *testing.T, body string)
	}{
		{
			name: "All bookings",
			url:  "/api/bookings",
			mockSetup: func(m *mocks.BookingsGetter) {
				m.On("GetAllBookings", mock.Anything, 0).Return([]models.Booking{
					{ID: 2, EventID: 1, Name: "Bob", Quantity: 1},
					{ID: 1, EventID: 1, Name: "Alice", Quantity: 2},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"status":"OK"`)
				assert.Contains(t, body, "Alice")
				assert.Contains(t, body, "Bob")
			},
		},
		{
			name: "Filtered by event",
			url:  "/api/bookings?event_id=3",
			mockSetup: func(m *mocks.BookingsGetter) {
				m.On("GetAllBookings", mock.Anything, 3).Return([]models.Booking{
					{ID: 4, EventID: 3, Name: "Carol", Quantity: 1},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "Carol")
			},
		},
		{
			name:           "Invalid event_id filter",
			url:            "/api/bookings?event_id=abc",
			mockSetup:      func(m *mocks.BookingsGetter) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "invalid event_id filter")
			},
		},
		{
			name: "Empty list",
			url:  "/api/bookings",
			mockSetup: func(m *mocks.BookingsGetter) {
				m.On("GetAllBookings", mock.Anything, 0).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"status":"OK"`)
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockGetter := mocks.NewBookingsGetter(t)
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
