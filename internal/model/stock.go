package model

import "github.com/google/uuid"

// Stock is the single balance record per product: the current on-hand
// quantity. It is created lazily by the first restock and only ever
// written by the mutation engine.
type Stock struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity"`

	// Unit label captured when stock tracking began. May diverge from the
	// product's current measurement_unit; that divergence is intentional.
	Unit string `gorm:"type:varchar(20)" json:"unit"`
}
