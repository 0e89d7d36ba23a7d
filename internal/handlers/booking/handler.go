package booking

import (
	"encoding/json"
	"net/http"
	"tourizto/infras/otel"
	"tourizto/internal/domains/booking/model"
	"tourizto/internal/domains/booking/model/dto"
	"tourizto/internal/domains/booking/service"
	"tourizto/shared/constant"
	gDto "tourizto/shared/dto"
	"tourizto/shared/failure"
	"tourizto/shared/validator"
	"tourizto/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

// Envelope is the booking endpoints' success body. Its shape is part of
// the public contract and is not wrapped in the generic data envelope.
type Envelope struct {
	Success    bool                 `json:"success"`
	Booking    *dto.BookingResponse `json:"booking,omitempty"`
	EmailID    string               `json:"emailId,omitempty"`
	EmailError string               `json:"emailError,omitempty"`
}

// ErrorEnvelope is the booking endpoints' failure body.
type ErrorEnvelope struct {
	Success       bool              `json:"success"`
	Message       string            `json:"message"`
	MissingFields []string          `json:"missingFields,omitempty"`
	Fields        map[string]string `json:"fields,omitempty"`
	Error         string            `json:"error,omitempty"`
}

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Patch("/{id}/status", handler.UpdateBookingStatus)
	})
}

// CreateBooking handles the public booking intake.
// @Summary Create a new booking
// @Description Create a booking for a place visit. Booking reference and receipt number are generated when absent.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} booking.Envelope "Booking created"
// @Failure 400 {object} booking.ErrorEnvelope
// @Failure 500 {object} booking.ErrorEnvelope
// @Router /v1/bookings [post]
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := json.NewDecoder(request.Body).Decode(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode request body")

		response.WithPayload(writer, http.StatusBadRequest, ErrorEnvelope{
			Success: false,
			Message: "Invalid request body",
		})

		return
	}

	if err := validator.CheckStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("booking payload failed validation")

		missing := validator.MissingFields(err)
		if len(missing) > 0 {
			response.WithPayload(writer, http.StatusBadRequest, ErrorEnvelope{
				Success:       false,
				Message:       "Missing required fields",
				MissingFields: missing,
			})

			return
		}

		response.WithPayload(writer, http.StatusBadRequest, ErrorEnvelope{
			Success: false,
			Message: "Invalid booking payload",
			Fields:  validator.FieldErrors(err),
		})

		return
	}

	result, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		code := failure.GetCode(err)
		envelope := ErrorEnvelope{
			Success: false,
			Message: "Failed to create booking",
		}

		if code >= http.StatusInternalServerError {
			envelope.Error = err.Error()
		} else {
			envelope.Message = err.Error()
		}

		response.WithPayload(writer, code, envelope)

		return
	}

	scope.AddEvent("Booking created with reference " + result.Booking.BookingReference)

	response.WithPayload(writer, http.StatusCreated, Envelope{
		Success:    true,
		Booking:    &result.Booking,
		EmailID:    result.EmailID,
		EmailError: result.EmailError,
	})
}

// GetBookings retrieves all bookings based on query parameters.
// @Summary Get all bookings
// @Description Retrieve all bookings with optional filtering and pagination, newest first.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param place_id query string false "Filter by place ID"
// @Param status query string false "Filter by status (pending, confirmed, cancelled)"
// @Param visit_date query string false "Filter by visit date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	placeID := r.URL.Query().Get(model.FieldPlaceID)
	status := r.URL.Query().Get(model.FieldStatus)
	visitDate := r.URL.Query().Get(model.FieldVisitDate)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	// Only add filters if the values are non-empty
	if placeID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldPlaceID,
			Operator: gDto.FilterOperatorEq,
			Value:    placeID,
			Table:    model.TableName,
		})
	}

	if status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if visitDate != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldVisitDate,
			Operator: gDto.FilterOperatorEq,
			Value:    visitDate,
			Table:    model.TableName,
		})
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Description Retrieve a booking by its unique identifier.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} booking.Envelope "Booking details"
// @Failure 404 {object} booking.ErrorEnvelope
// @Failure 500 {object} booking.ErrorEnvelope
// @Router /v1/bookings/{id} [get]
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		code := failure.GetCode(err)
		if code == http.StatusNotFound {
			response.WithPayload(w, code, ErrorEnvelope{
				Success: false,
				Message: "Booking not found",
			})

			return
		}

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking retrieved successfully")

	response.WithPayload(w, http.StatusOK, Envelope{
		Success: true,
		Booking: &booking,
	})
}

// UpdateBookingStatus updates the status of an existing booking.
// @Summary Update a booking's status
// @Description Set the booking status to pending, confirmed or cancelled.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateBookingStatusRequest true "Update Booking Status Request"
// @Success 200 {object} response.Message "Booking status updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} booking.ErrorEnvelope
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/status [patch]
func (handler *Handler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBookingStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateBookingStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateStatus(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking status")

		if failure.GetCode(err) == http.StatusNotFound {
			response.WithPayload(w, http.StatusNotFound, ErrorEnvelope{
				Success: false,
				Message: "Booking not found",
			})

			return
		}

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking status updated by user " + user)

	response.WithMessage(w, http.StatusOK, "Booking status updated successfully")
}
