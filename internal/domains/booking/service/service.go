package service

import (
	"context"
	"fmt"
	"tourizto/config"
	"tourizto/infras/kafka"
	"tourizto/infras/mailer"
	"tourizto/infras/otel"
	"tourizto/internal/domains/booking/model"
	"tourizto/internal/domains/booking/model/dto"
	"tourizto/internal/domains/booking/reference"
	"tourizto/internal/domains/booking/repository"
	"tourizto/shared"
	"tourizto/shared/cache"
	"tourizto/shared/constant"
	gDto "tourizto/shared/dto"
	"tourizto/shared/failure"
	"tourizto/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	eventBookingCreated       = "booking.created"
	eventBookingStatusChanged = "booking.status_changed"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.IntakeResult, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id string) error
}

type serviceImpl struct {
	repo   repository.Booking
	refs   *reference.Generator
	mailer mailer.Mailer
	broker kafka.Client
	cfg    *config.Config
	cache  cache.RedisCache
	otel   otel.Otel
}

func New(
	repo repository.Booking,
	refs *reference.Generator,
	mail mailer.Mailer,
	broker kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:   repo,
		refs:   refs,
		mailer: mail,
		broker: broker,
		cfg:    cfg,
		cache:  cache,
		otel:   otel,
	}
}

// Create runs the booking intake: fill in missing references, persist,
// retry once when a reference collides, then send the confirmation
// mail. Mail failure is reported in the result, not as an error.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.IntakeResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		user = constant.ContextGuest
	}

	booking, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking request")

		return res, failure.BadRequestFromString(err.Error()) // nolint:wrapcheck
	}

	if booking.BookingReference == constant.Empty {
		booking.BookingReference = s.refs.BookingReference()
	}

	if booking.ReceiptNumber == constant.Empty {
		booking.ReceiptNumber = s.refs.ReceiptNumber()
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		constraint := repository.UniqueViolationConstraint(err)
		if constraint == constant.Empty {
			log.Error().Err(err).Msg("failed to create booking")

			return res, fmt.Errorf("failed to create booking: %w", err)
		}

		booking = s.regenerateColliding(booking, constraint)

		if err = s.repo.Insert(ctx, booking); err != nil {
			log.Error().Err(err).Str("constraint", constraint).Msg("failed to create booking after reference retry")

			return res, fmt.Errorf("failed to create booking: %w", err)
		}
	}

	res.Booking.FromModel(booking)

	messageID, mailErr := s.sendConfirmation(ctx, booking)
	if mailErr != nil {
		res.EmailError = "failed to send confirmation email"
	} else {
		res.EmailID = messageID
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.publishEvent(c, eventBookingCreated, booking)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	return res, nil
}

// regenerateColliding replaces only the reference named by the tripped
// constraint. Retried booking references carry a random suffix so the
// same millisecond cannot collide again.
func (s *serviceImpl) regenerateColliding(booking model.Booking, constraint string) model.Booking {
	switch constraint {
	case model.ConstraintBookingReference:
		booking.BookingReference = s.refs.RetryBookingReference()
	case model.ConstraintReceiptNumber:
		booking.ReceiptNumber = s.refs.ReceiptNumber()
	default:
		booking.BookingReference = s.refs.RetryBookingReference()
		booking.ReceiptNumber = s.refs.ReceiptNumber()
	}

	return booking
}

func (s *serviceImpl) sendConfirmation(ctx context.Context, booking model.Booking) (string, error) {
	subject, body := buildConfirmationEmail(booking)

	messageID, err := s.mailer.Send(ctx, booking.Email, subject, body)
	if err != nil {
		log.Error().Err(err).Str("bookingReference", booking.BookingReference).Msg("failed to send confirmation email")

		return constant.Empty, err
	}

	return messageID, nil
}

func (s *serviceImpl) publishEvent(ctx context.Context, event string, booking model.Booking) {
	if !s.cfg.Kafka.Enable {
		return
	}

	payload := dto.BookingEvent{
		Event:            event,
		BookingID:        booking.ID,
		BookingReference: booking.BookingReference,
		Place:            booking.Place,
		Status:           booking.Status,
		TotalAmount:      booking.TotalAmount,
		OccurredAt:       timezone.Format(timezone.Now(), constant.DateFormat),
	}

	err := s.broker.SendMessages(ctx, s.cfg.Kafka.BookingTopic, kafka.Message{
		Key:   booking.ID,
		Value: payload,
	})
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("failed to publish booking event")
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		log.Error().Str("id", id).Msg("booking not found")

		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	booking.Status = req.Status

	go func() {
		c := context.WithoutCancel(ctx)

		s.publishEvent(c, eventBookingStatusChanged, booking)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	return nil
}
