package model

import (
	"strings"

	"github.com/google/uuid"
)

// Request payloads for the mutation-facing operations. Each is normalized
// (trimmed) before validation so whitespace-only input fails the same way
// empty input does.

type ProductCreateRequest struct {
	ProductCode     string    `json:"product_code" validate:"required"`
	Name            string    `json:"name" validate:"required"`
	CategoryID      uuid.UUID `json:"category_id" validate:"uuid_required"`
	MeasurementUnit string    `json:"measurement_unit" validate:"required"`
	ReorderPoint    int       `json:"reorder_point" validate:"required,min=1"`
}

func (r *ProductCreateRequest) Normalize() {
	r.ProductCode = strings.TrimSpace(r.ProductCode)
	r.Name = strings.TrimSpace(r.Name)
	r.MeasurementUnit = strings.TrimSpace(r.MeasurementUnit)
}

// ProductUpdateRequest is a partial payload: nil fields are left untouched,
// present fields are validated.
type ProductUpdateRequest struct {
	ProductCode     *string    `json:"product_code" validate:"omitnil,notblank"`
	Name            *string    `json:"name" validate:"omitnil,notblank"`
	CategoryID      *uuid.UUID `json:"category_id" validate:"omitnil,uuid_required"`
	MeasurementUnit *string    `json:"measurement_unit" validate:"omitnil,notblank"`
	ReorderPoint    *int       `json:"reorder_point" validate:"omitnil,min=1"`
}

func (r *ProductUpdateRequest) Normalize() {
	trim := func(s *string) {
		if s != nil {
			*s = strings.TrimSpace(*s)
		}
	}
	trim(r.ProductCode)
	trim(r.Name)
	trim(r.MeasurementUnit)
}

type RestockRequest struct {
	ProductID     uuid.UUID `json:"product_id" validate:"uuid_required"`
	QuantityAdded int       `json:"quantity_added" validate:"required,min=1"`
	Unit          string    `json:"unit"`
	Notes         string    `json:"notes"`
	PersonName    string    `json:"person_name" validate:"required"`
	PersonRole    string    `json:"person_role"`
}

func (r *RestockRequest) Normalize() {
	r.Unit = strings.TrimSpace(r.Unit)
	r.Notes = strings.TrimSpace(r.Notes)
	r.PersonName = strings.TrimSpace(r.PersonName)
	r.PersonRole = strings.TrimSpace(r.PersonRole)
}

type UsageRequest struct {
	StockItemID   uuid.UUID `json:"stock_item_id" validate:"uuid_required"`
	QuantityTaken int       `json:"quantity_taken" validate:"required,min=1"`
	PersonName    string    `json:"person_name" validate:"required"`
	PersonRole    string    `json:"person_role"`
	Notes         string    `json:"notes"`
}

func (r *UsageRequest) Normalize() {
	r.PersonName = strings.TrimSpace(r.PersonName)
	r.PersonRole = strings.TrimSpace(r.PersonRole)
	r.Notes = strings.TrimSpace(r.Notes)
}

// MutationResult is what both engine operations hand back: the balance row
// after the change plus the log row that recorded it.
type MutationResult struct {
	Stock *Stock    `json:"stock_item"`
	Log   *StockLog `json:"log"`
}
