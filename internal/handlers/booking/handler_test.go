package booking_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"tourizto/infras/otel/mocks"
	"tourizto/internal/domains/booking/model/dto"
	serviceMocks "tourizto/internal/domains/booking/service/mocks"
	"tourizto/internal/handlers/booking"
	"tourizto/shared/failure"
)

type fixture struct {
	service *serviceMocks.MockBooking
	router  *chi.Mux
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	svc := serviceMocks.NewMockBooking(ctrl)
	handler := booking.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return fixture{
		service: svc,
		router:  router,
	}
}

func validPayload() string {
	return `{
		"name": "Asha Verma",
		"email": "asha@example.com",
		"phone": "+91-9876543210",
		"place": "Rajwada Palace",
		"placeId": 1,
		"date": "2026-01-15",
		"time": "10:00 AM",
		"adults": 2,
		"children": 1,
		"totalAmount": 550
	}`
}

func TestCreateBooking(t *testing.T) {
	t.Run("returns 201 with booking and emailId", func(t *testing.T) {
		f := newFixture(t)

		result := dto.IntakeResult{
			Booking: dto.BookingResponse{
				ID:               "booking-1",
				Name:             "Asha Verma",
				BookingReference: "TZ-600123",
				ReceiptNumber:    "RCPT-600123-42",
				Status:           "confirmed",
			},
			EmailID: "<message-id@smtp.example.com>",
		}

		f.service.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(result, nil)

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/bookings/", strings.NewReader(validPayload()))

		f.router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusCreated, recorder.Code)

		var body booking.Envelope
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, "TZ-600123", body.Booking.BookingReference)
		assert.Equal(t, "<message-id@smtp.example.com>", body.EmailID)
		assert.Empty(t, body.EmailError)
	})

	t.Run("returns 201 with emailError when the mail fails", func(t *testing.T) {
		f := newFixture(t)

		result := dto.IntakeResult{
			Booking:    dto.BookingResponse{ID: "booking-1", BookingReference: "TZ-600123"},
			EmailError: "failed to send confirmation email",
		}

		f.service.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(result, nil)

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/bookings/", strings.NewReader(validPayload()))

		f.router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusCreated, recorder.Code)

		var body booking.Envelope
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, "failed to send confirmation email", body.EmailError)
		assert.Empty(t, body.EmailID)
	})

	t.Run("reports every missing required field at once", func(t *testing.T) {
		f := newFixture(t)

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/bookings/", strings.NewReader(`{"children": 1}`))

		f.router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var body booking.ErrorEnvelope
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.ElementsMatch(t, []string{
			"name", "email", "phone", "place", "placeId",
			"date", "time", "adults", "totalAmount",
		}, body.MissingFields)
	})

	t.Run("returns 400 on malformed JSON", func(t *testing.T) {
		f := newFixture(t)

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/bookings/", strings.NewReader(`{"name": `))

		f.router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var body booking.ErrorEnvelope
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Empty(t, body.MissingFields)
	})

	t.Run("rejects a malformed email address", func(t *testing.T) {
		f := newFixture(t)

		payload := strings.Replace(validPayload(), `"email": "asha@example.com"`, `"email": "not-an-address"`, 1)

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/bookings/", strings.NewReader(payload))

		f.router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)

		var body booking.ErrorEnvelope
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Contains(t, body.Fields, "email")
	})

	t.Run("returns 500 when references keep colliding", func(t *testing.T) {
		f := newFixture(t)

		f.service.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(dto.IntakeResult{}, errors.New("failed to create booking: pq: duplicate key value violates unique constraint \"bookings_booking_reference_key\""))

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/bookings/", strings.NewReader(validPayload()))

		f.router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)

		var body booking.ErrorEnvelope
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, "Failed to create booking", body.Message)
		assert.Contains(t, body.Error, "duplicate key value")
	})

	t.Run("accepts placeId sent as a string", func(t *testing.T) {
		f := newFixture(t)

		payload := strings.Replace(validPayload(), `"placeId": 1`, `"placeId": "1"`, 1)

		f.service.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, req dto.CreateBookingRequest) (dto.IntakeResult, error) {
				assert.Equal(t, "1", req.PlaceID.String())

				return dto.IntakeResult{Booking: dto.BookingResponse{ID: "booking-1"}}, nil
			})

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/bookings/", strings.NewReader(payload))

		f.router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusCreated, recorder.Code)
	})
}

func TestGetBookingByID(t *testing.T) {
	t.Run("returns the booking", func(t *testing.T) {
		f := newFixture(t)

		f.service.EXPECT().
			Get(gomock.Any(), "booking-1").
			Return(dto.BookingResponse{ID: "booking-1", BookingReference: "TZ-600123"}, nil)

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/bookings/booking-1", nil)

		f.router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var body booking.Envelope
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, "booking-1", body.Booking.ID)
	})

	t.Run("returns the not found envelope", func(t *testing.T) {
		f := newFixture(t)

		f.service.EXPECT().
			Get(gomock.Any(), "missing").
			Return(dto.BookingResponse{}, failure.NotFound("booking not found"))

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/bookings/missing", nil)

		f.router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusNotFound, recorder.Code)

		var body booking.ErrorEnvelope
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, "Booking not found", body.Message)
	})
}

func TestUpdateBookingStatus(t *testing.T) {
	t.Run("updates the status", func(t *testing.T) {
		f := newFixture(t)

		f.service.EXPECT().
			UpdateStatus(gomock.Any(), dto.UpdateBookingStatusRequest{Status: "cancelled"}, "booking-1").
			Return(nil)

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPatch, "/bookings/booking-1/status", strings.NewReader(`{"status": "cancelled"}`))

		f.router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("rejects an unknown status value", func(t *testing.T) {
		f := newFixture(t)

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPatch, "/bookings/booking-1/status", strings.NewReader(`{"status": "archived"}`))

		f.router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("returns the not found envelope for an absent booking", func(t *testing.T) {
		f := newFixture(t)

		f.service.EXPECT().
			UpdateStatus(gomock.Any(), dto.UpdateBookingStatusRequest{Status: "confirmed"}, "missing").
			Return(failure.NotFound("booking not found"))

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPatch, "/bookings/missing/status", strings.NewReader(`{"status": "confirmed"}`))

		f.router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusNotFound, recorder.Code)

		var body booking.ErrorEnvelope
		assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal(t, "Booking not found", body.Message)
	})
}
