package validator_test

import (
	"strings"
	"testing"
	"tourizto/shared/failure"
	"tourizto/shared/validator"

	"github.com/stretchr/testify/assert"
)

type samplePayload struct {
	Name   string  `json:"name"   validate:"required"`
	Email  string  `json:"email"  validate:"required,email"`
	Phone  string  `json:"phone"  validate:"required"`
	Adults int     `json:"adults" validate:"required,min=1"`
	Amount float64 `json:"totalAmount" validate:"required"`
}

func TestValidateDecodesAndValidates(t *testing.T) {
	body := `{"name":"A","email":"a@x.com","phone":"9998887777","adults":2,"totalAmount":150}`

	payload := samplePayload{}
	err := validator.Validate(strings.NewReader(body), &payload)

	assert.NoError(t, err)
	assert.Equal(t, 2, payload.Adults)
}

func TestValidateRejectsBadJSON(t *testing.T) {
	payload := samplePayload{}
	err := validator.Validate(strings.NewReader("{not json"), &payload)

	assert.Error(t, err)

	var fail *failure.Failure
	assert.ErrorAs(t, err, &fail)
	assert.Equal(t, 400, fail.Code)
}

func TestMissingFieldsCollectsAll(t *testing.T) {
	payload := samplePayload{Name: "A", Email: "a@x.com"}

	err := validator.CheckStruct(&payload)
	assert.Error(t, err)

	missing := validator.MissingFields(err)
	assert.ElementsMatch(t, []string{"phone", "adults", "totalAmount"}, missing)
}

func TestMissingFieldsUsesJSONNames(t *testing.T) {
	payload := samplePayload{}

	err := validator.CheckStruct(&payload)
	assert.Error(t, err)

	missing := validator.MissingFields(err)
	assert.Contains(t, missing, "totalAmount")
	assert.NotContains(t, missing, "Amount")
}

func TestFieldErrorsReportsDomainRule(t *testing.T) {
	payload := samplePayload{Name: "A", Email: "a@x.com", Phone: "9998887777", Adults: -1, Amount: 150}

	err := validator.CheckStruct(&payload)
	assert.Error(t, err)

	fieldErrors := validator.FieldErrors(err)
	assert.Equal(t, "adults must be greater than or equal to 1", fieldErrors["adults"])

	assert.Empty(t, validator.MissingFields(err))
}

func TestValidateStructMessage(t *testing.T) {
	payload := samplePayload{Name: "A", Email: "not-an-email", Phone: "9998887777", Adults: 1, Amount: 10}

	err := validator.ValidateStruct(&payload)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "email must be a valid email address")
}
