package dto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
	"tourizto/internal/domains/booking/model"
	"tourizto/shared"
	"tourizto/shared/constant"
	gModel "tourizto/shared/model"
	"tourizto/shared/timezone"

	"github.com/google/uuid"
)

const visitDateFormat = "2006-01-02"

// ScalarID accepts either a JSON string or a JSON number and keeps the
// value as a string. Booking clients send place identifiers both ways.
type ScalarID string

func (s *ScalarID) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid identifier: %w", err)
	}

	switch val := raw.(type) {
	case string:
		*s = ScalarID(val)
	case float64:
		*s = ScalarID(strconv.FormatFloat(val, 'f', -1, 64))
	case nil:
		*s = ""
	default:
		return fmt.Errorf("identifier must be a string or number, got %T", raw)
	}

	return nil
}

func (s ScalarID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s)) //nolint:wrapcheck
}

func (s ScalarID) String() string {
	return string(s)
}

type CreateBookingRequest struct {
	Name             string   `json:"name"             validate:"required,max=100"`
	Email            string   `json:"email"            validate:"required,email,max=100"`
	Phone            string   `json:"phone"            validate:"required,max=20"`
	Place            string   `json:"place"            validate:"required,max=150"`
	PlaceID          ScalarID `json:"placeId"          validate:"required"`
	Date             string   `json:"date"             validate:"required"`
	Time             string   `json:"time"             validate:"required"`
	Adults           int      `json:"adults"           validate:"required,min=1"`
	Children         int      `json:"children"         validate:"omitempty,min=0"`
	SpecialRequests  string   `json:"specialRequests"  validate:"omitempty,max=500"`
	TotalAmount      float64  `json:"totalAmount"      validate:"required,min=0"`
	Status           string   `json:"status"           validate:"omitempty,oneof=pending confirmed cancelled"`
	BookingReference string   `json:"bookingReference" validate:"omitempty,max=20"`
	ReceiptNumber    string   `json:"receiptNumber"    validate:"omitempty,max=20"`
}

func (c *CreateBookingRequest) ToModel(user string) (model.Booking, error) {
	visitDate, err := time.Parse(visitDateFormat, c.Date)
	if err != nil {
		return model.Booking{}, fmt.Errorf("invalid date format: %w", err)
	}

	status := constant.BookingStatusConfirmed
	if c.Status != constant.Empty {
		status = c.Status
	}

	return model.Booking{
		ID:               uuid.NewString(),
		Name:             c.Name,
		Email:            c.Email,
		Phone:            c.Phone,
		Place:            c.Place,
		PlaceID:          c.PlaceID.String(),
		VisitDate:        visitDate,
		VisitTime:        c.Time,
		Adults:           c.Adults,
		Children:         c.Children,
		SpecialRequests:  c.SpecialRequests,
		TotalAmount:      c.TotalAmount,
		Status:           status,
		BookingReference: c.BookingReference,
		ReceiptNumber:    c.ReceiptNumber,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateBookingStatusRequest struct {
	Status string `db:"status" json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

type BookingResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone"`
	Place            string  `json:"place"`
	PlaceID          string  `json:"placeId"`
	Date             string  `json:"date"`
	Time             string  `json:"time"`
	Adults           int     `json:"adults"`
	Children         int     `json:"children"`
	SpecialRequests  string  `json:"specialRequests,omitempty"`
	TotalAmount      float64 `json:"totalAmount"`
	Status           string  `json:"status"`
	BookingReference string  `json:"bookingReference"`
	ReceiptNumber    string  `json:"receiptNumber"`
	CreatedAt        string  `json:"createdAt"`
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Email = mod.Email
	r.Phone = mod.Phone
	r.Place = mod.Place
	r.PlaceID = mod.PlaceID
	r.Date = mod.VisitDate.Format(visitDateFormat)
	r.Time = mod.VisitTime
	r.Adults = mod.Adults
	r.Children = mod.Children
	r.SpecialRequests = mod.SpecialRequests
	r.TotalAmount = mod.TotalAmount
	r.Status = mod.Status
	r.BookingReference = mod.BookingReference
	r.ReceiptNumber = mod.ReceiptNumber
	r.CreatedAt = timezone.Format(mod.CreatedAt, constant.DateFormat)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// IntakeResult carries the stored booking together with the outcome of
// the confirmation mail. Mail failure never fails the intake.
type IntakeResult struct {
	Booking    BookingResponse
	EmailID    string
	EmailError string
}

// BookingEvent is the payload published to the booking lifecycle topic.
type BookingEvent struct {
	Event            string  `json:"event"`
	BookingID        string  `json:"booking_id"`
	BookingReference string  `json:"booking_reference"`
	Place            string  `json:"place"`
	Status           string  `json:"status"`
	TotalAmount      float64 `json:"total_amount"`
	OccurredAt       string  `json:"occurred_at"`
}
