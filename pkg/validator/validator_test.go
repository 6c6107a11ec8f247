package validator

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type samplePayload struct {
	ProductID  uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity   int       `json:"quantity" validate:"required,min=1"`
	PersonName string    `json:"person_name" validate:"required"`
	Note       *string   `json:"note" validate:"omitempty,notblank"`
}

func TestValidateStructValid(t *testing.T) {
	errs := ValidateStruct(&samplePayload{
		ProductID:  uuid.New(),
		Quantity:   3,
		PersonName: "Ana",
	})
	assert.Empty(t, errs)
}

func TestValidateStructKeysByJSONName(t *testing.T) {
	errs := ValidateStruct(&samplePayload{})

	assert.Contains(t, errs, "product_id")
	assert.Contains(t, errs, "quantity")
	assert.Contains(t, errs, "person_name")
	assert.NotContains(t, errs, "note")

	assert.Equal(t, "person_name is required", errs["person_name"])
	assert.Equal(t, "quantity must be at least 1", errs["quantity"])
	assert.Equal(t, "product_id must be a valid id", errs["product_id"])
}

func TestValidateStructNonStructInput(t *testing.T) {
	var errs map[string]string
	assert.NotPanics(t, func() {
		errs = ValidateStruct(42)
	})
	assert.Contains(t, errs, "input")

	assert.NotPanics(t, func() {
		errs = ValidateStruct(nil)
	})
	assert.Contains(t, errs, "input")
}

func TestValidateStructNotBlank(t *testing.T) {
	blank := "   "
	errs := ValidateStruct(&samplePayload{
		ProductID:  uuid.New(),
		Quantity:   1,
		PersonName: "Ana",
		Note:       &blank,
	})
	assert.Contains(t, errs, "note")
}
