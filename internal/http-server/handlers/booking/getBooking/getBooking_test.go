package getBooking

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"smartBooking/internal/http-server/handlers/booking/getBooking/mocks"
	"smartBooking/internal/lib/logger/handlers/slogdiscard"
	"smartBooking/internal/models"
	"smartBooking/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetBookingHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		bookingID      string
		mockSetup      func(m *mocks.BookingGetter)
		expectedStatus int
		checkBody      func(t *testing.T, body string)
	}{
		{
			name:      "Success",
			bookingID: "5",
			mockSetup: func(m *mocks.BookingGetter) {
				m.On("GetBooking", mock.Anything, 5).Return(&models.Booking{
					ID:          5,
					EventID:     1,
					Name:        "Alice",
					Email:       "alice@example.com",
					Quantity:    2,
					TotalAmount: 40.0,
					Status:      models.BookingStatusConfirmed,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"status":"OK"`)
				assert.Contains(t, body, `"name":"Alice"`)
			},
		},
		{
			name:           "Invalid booking ID format",
			bookingID:      "abc",
			mockSetup:      func(m *mocks.BookingGetter) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "invalid booking id format")
			},
		},
		{
			name:      "Not found",
			bookingID: "99",
			mockSetup: func(m *mocks.BookingGetter) {
				m.On("GetBooking", mock.Anything, 99).Return(nil, storage.ErrBookingNotFound)
			},
			expectedStatus: http.StatusNotFound,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "booking not found")
			},
		},
		{
			name:      "Internal error",
			bookingID: "5",
			mockSetup: func(m *mocks.BookingGetter) {
				m.On("GetBooking", mock.Anything, 5).Return(nil, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "failed to get booking")
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockGetter := mocks.NewBookingGetter(t)
			tc.mockSetup(mockGetter)

			router := chi.NewRouter()
			router.Get("/api/bookings/{id}", New(logger, mockGetter))

			req, err := http.NewRequest(http.MethodGet, "/api/bookings/"+tc.bookingID, nil)
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			tc.checkBody(t, rr.Body.String())
		})
	}
}
