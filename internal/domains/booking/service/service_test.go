package service_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"tourizto/config"
	kafkaMocks "tourizto/infras/kafka/mocks"
	mailerMocks "tourizto/infras/mailer/mocks"
	"tourizto/infras/otel/mocks"
	bookingMocks "tourizto/internal/domains/booking/mocks"
	"tourizto/internal/domains/booking/model"
	"tourizto/internal/domains/booking/model/dto"
	"tourizto/internal/domains/booking/reference"
	"tourizto/internal/domains/booking/service"
	cacheMocks "tourizto/shared/cache/mocks"
	gDto "tourizto/shared/dto"
	"tourizto/shared/failure"
)

const fixedEpochMilli = int64(1735689600123)

type fixture struct {
	repo   *bookingMocks.MockBooking
	mailer *mailerMocks.MockMailer
	broker *kafkaMocks.MockClient
	cache  *cacheMocks.MockRedisCache
	svc    service.Booking
}

func newFixture(t *testing.T, kafkaEnabled bool) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &fixture{
		repo:   bookingMocks.NewMockBooking(ctrl),
		mailer: mailerMocks.NewMockMailer(ctrl),
		broker: kafkaMocks.NewMockClient(ctrl),
		cache:  cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.Enable = kafkaEnabled
	cfg.Kafka.BookingTopic = "booking.lifecycle"

	refs := reference.NewWithSource(
		func() time.Time { return time.UnixMilli(fixedEpochMilli) },
		func(_ int) int { return 42 },
	)

	// Intake fires cache invalidation and event publication from a
	// goroutine, so those expectations stay permissive.
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.broker.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, refs, f.mailer, f.broker, cfg, f.cache, mocks.NewOtel())

	return f
}

func validRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		Name:        "Asha Verma",
		Email:       "asha@example.com",
		Phone:       "+91 98765 43210",
		Place:       "Rajwada Palace",
		PlaceID:     "3",
		Date:        "2026-01-15",
		Time:        "10:00 AM",
		Adults:      2,
		Children:    1,
		TotalAmount: 450,
	}
}

func uniqueViolation(constraint string) error {
	return &pq.Error{Code: "23505", Constraint: constraint}
}

func TestBookingService_Create(t *testing.T) {
	t.Run("generates references when absent", func(t *testing.T) {
		f := newFixture(t, false)

		var inserted model.Booking

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m model.Booking) error {
				inserted = m
				return nil
			})
		f.mailer.EXPECT().
			Send(gomock.Any(), "asha@example.com", gomock.Any(), gomock.Any()).
			Return("<msg-1@smtp>", nil)

		res, err := f.svc.Create(context.Background(), validRequest())

		assert.NoError(t, err)
		assert.Equal(t, "TZ-600123", inserted.BookingReference)
		assert.Equal(t, "RCPT-600123-42", inserted.ReceiptNumber)
		assert.Equal(t, "confirmed", inserted.Status)
		assert.Equal(t, "<msg-1@smtp>", res.EmailID)
		assert.Empty(t, res.EmailError)
		assert.Equal(t, "TZ-600123", res.Booking.BookingReference)
	})

	t.Run("keeps caller supplied references", func(t *testing.T) {
		f := newFixture(t, false)

		req := validRequest()
		req.BookingReference = "TZ-111111"
		req.ReceiptNumber = "RCPT-111111-1"

		var inserted model.Booking

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m model.Booking) error {
				inserted = m
				return nil
			})
		f.mailer.EXPECT().
			Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("<msg-2@smtp>", nil)

		_, err := f.svc.Create(context.Background(), req)

		assert.NoError(t, err)
		assert.Equal(t, "TZ-111111", inserted.BookingReference)
		assert.Equal(t, "RCPT-111111-1", inserted.ReceiptNumber)
	})

	t.Run("retries once with suffixed reference on collision", func(t *testing.T) {
		f := newFixture(t, false)

		var second model.Booking

		first := f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(uniqueViolation(model.ConstraintBookingReference))
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			After(first).
			DoAndReturn(func(_ context.Context, m model.Booking) error {
				second = m
				return nil
			})
		f.mailer.EXPECT().
			Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("<msg-3@smtp>", nil)

		res, err := f.svc.Create(context.Background(), validRequest())

		assert.NoError(t, err)
		assert.Equal(t, "TZ-600123-42", second.BookingReference)
		assert.Equal(t, "RCPT-600123-42", second.ReceiptNumber)
		assert.Equal(t, "TZ-600123-42", res.Booking.BookingReference)
	})

	t.Run("regenerates only the receipt when the receipt collides", func(t *testing.T) {
		f := newFixture(t, false)

		var second model.Booking

		first := f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(uniqueViolation(model.ConstraintReceiptNumber))
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			After(first).
			DoAndReturn(func(_ context.Context, m model.Booking) error {
				second = m
				return nil
			})
		f.mailer.EXPECT().
			Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("<msg-4@smtp>", nil)

		_, err := f.svc.Create(context.Background(), validRequest())

		assert.NoError(t, err)
		assert.Equal(t, "TZ-600123", second.BookingReference)
	})

	t.Run("second collision surfaces the store error", func(t *testing.T) {
		f := newFixture(t, false)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(uniqueViolation(model.ConstraintBookingReference)).
			Times(2)

		_, err := f.svc.Create(context.Background(), validRequest())

		assert.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
		assert.ErrorContains(t, err, "failed to create booking")
	})

	t.Run("rejects a date outside the expected layout", func(t *testing.T) {
		f := newFixture(t, false)

		req := validRequest()
		req.Date = "May 1, 2026"

		_, err := f.svc.Create(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Equal(t, 1, strings.Count(err.Error(), "invalid date format"))
	})

	t.Run("store failure surfaces as error", func(t *testing.T) {
		f := newFixture(t, false)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(errors.New("connection refused"))

		_, err := f.svc.Create(context.Background(), validRequest())

		assert.Error(t, err)
	})

	t.Run("mail failure does not fail the intake", func(t *testing.T) {
		f := newFixture(t, false)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)
		f.mailer.EXPECT().
			Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("smtp timeout"))

		res, err := f.svc.Create(context.Background(), validRequest())

		assert.NoError(t, err)
		assert.Empty(t, res.EmailID)
		assert.Equal(t, "failed to send confirmation email", res.EmailError)
	})

	t.Run("invalid date is a bad request", func(t *testing.T) {
		f := newFixture(t, false)

		req := validRequest()
		req.Date = "15/01/2026"

		_, err := f.svc.Create(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("publishes lifecycle event when kafka enabled", func(t *testing.T) {
		f := newFixture(t, true)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)
		f.mailer.EXPECT().
			Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("<msg-5@smtp>", nil)

		_, err := f.svc.Create(context.Background(), validRequest())

		assert.NoError(t, err)
	})
}

func TestBookingService_Get(t *testing.T) {
	t.Run("returns stored booking on cache miss", func(t *testing.T) {
		f := newFixture(t, false)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{
				ID:               "b-1",
				Name:             "Asha Verma",
				BookingReference: "TZ-600123",
				Status:           "confirmed",
			}, nil)

		res, err := f.svc.Get(context.Background(), "b-1")

		assert.NoError(t, err)
		assert.Equal(t, "TZ-600123", res.BookingReference)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		f := newFixture(t, false)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{}, nil)

		_, err := f.svc.Get(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_GetAll(t *testing.T) {
	f := newFixture(t, false)

	f.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).
		Times(2)
	f.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(1, nil)
	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Booking{{ID: "b-1", BookingReference: "TZ-600123"}}, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Len(t, res.Bookings, 1)
}

func TestBookingService_UpdateStatus(t *testing.T) {
	t.Run("updates an existing booking", func(t *testing.T) {
		f := newFixture(t, false)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "b-1", Status: "confirmed"}, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		err := f.svc.UpdateStatus(context.Background(), dto.UpdateBookingStatusRequest{Status: "cancelled"}, "b-1")

		assert.NoError(t, err)
	})

	t.Run("unknown booking is not found", func(t *testing.T) {
		f := newFixture(t, false)

		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{}, nil)

		err := f.svc.UpdateStatus(context.Background(), dto.UpdateBookingStatusRequest{Status: "cancelled"}, "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
