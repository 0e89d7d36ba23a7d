package model

import (
	"tourizto/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "places"
	EntityName = "place"

	FieldID       = "id"
	FieldName     = "name"
	FieldCategory = "category"
	FieldLocation = "location"
)

type Place struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Description string         `db:"description"`
	Category    string         `db:"category"`
	Location    string         `db:"location"`
	AdultPrice  float64        `db:"adult_price"`
	ChildPrice  float64        `db:"child_price"`
	Rating      float64        `db:"rating"`
	Images      pq.StringArray `db:"images"`
	model.Metadata
}
