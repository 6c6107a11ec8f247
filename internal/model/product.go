package model

import "github.com/google/uuid"

// Product is a catalog entry for a consumable good.
type Product struct {
	BaseModel
	ProductCode     string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"product_code"`
	Name            string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	CategoryID      uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id"`
	Category        *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	MeasurementUnit string    `gorm:"type:varchar(20);not null" json:"measurement_unit"`
	ReorderPoint    int       `gorm:"not null;default:1" json:"reorder_point"`
}

// ProductOption is the slim projection used to populate product pickers.
type ProductOption struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	ProductCode     string    `json:"product_code"`
	MeasurementUnit string    `json:"measurement_unit"`
}
