package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("missing")))
	assert.Equal(t, KindValidation, KindOf(Validation(map[string]string{"name": "name is required"})))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))

	wrapped := fmt.Errorf("while deleting: %w", Conflict("has stock"))
	assert.Equal(t, KindConflict, KindOf(wrapped))
}

func TestInsufficientStockCarriesQuantity(t *testing.T) {
	err := InsufficientStock("insufficient stock, current quantity: 7", 7)

	var appErr *Error
	assert.ErrorAs(t, err, &appErr)
	assert.NotNil(t, appErr.CurrentQuantity)
	assert.Equal(t, 7, *appErr.CurrentQuantity)
	assert.EqualError(t, err, "insufficient stock, current quantity: 7")
}

func TestIsMatchesByKind(t *testing.T) {
	assert.ErrorIs(t, NotFound("product not found"), NotFound(""))
	assert.NotErrorIs(t, NotFound("product not found"), Duplicate(""))
}

func TestErrorAsThroughWrap(t *testing.T) {
	err := fmt.Errorf("restock failed: %w", Validation(map[string]string{"quantity_added": "quantity_added must be at least 1"}))

	var appErr *Error
	assert.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Fields, "quantity_added")
}
