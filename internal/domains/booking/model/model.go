package model

import (
	"tourizto/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID               = "id"
	FieldName             = "name"
	FieldEmail            = "email"
	FieldPhone            = "phone"
	FieldPlace            = "place"
	FieldPlaceID          = "place_id"
	FieldVisitDate        = "visit_date"
	FieldVisitTime        = "visit_time"
	FieldAdults           = "adults"
	FieldChildren         = "children"
	FieldSpecialRequests  = "special_requests"
	FieldTotalAmount      = "total_amount"
	FieldStatus           = "status"
	FieldBookingReference = "booking_reference"
	FieldReceiptNumber    = "receipt_number"

	// Unique index names as created by the schema migration. The intake
	// retry path matches these against pq constraint errors to decide
	// which reference to regenerate.
	ConstraintBookingReference = "bookings_booking_reference_key"
	ConstraintReceiptNumber    = "bookings_receipt_number_key"
)

type Booking struct {
	ID               string    `db:"id"`
	Name             string    `db:"name"`
	Email            string    `db:"email"`
	Phone            string    `db:"phone"`
	Place            string    `db:"place"`
	PlaceID          string    `db:"place_id"`
	VisitDate        time.Time `db:"visit_date"`
	VisitTime        string    `db:"visit_time"`
	Adults           int       `db:"adults"`
	Children         int       `db:"children"`
	SpecialRequests  string    `db:"special_requests"`
	TotalAmount      float64   `db:"total_amount"`
	Status           string    `db:"status"`
	BookingReference string    `db:"booking_reference"`
	ReceiptNumber    string    `db:"receipt_number"`
	model.Metadata
}
