package model

import "github.com/google/uuid"

type TransactionType string

const (
	TxAddition   TransactionType = "addition"
	TxWithdrawal TransactionType = "withdrawal"
)

// StockLog is one append-only history row per balance change. Rows are
// never updated or deleted; replaying them from zero in created_at order
// reconstructs the current stock quantity.
type StockLog struct {
	BaseModel
	StockID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"stock_id"`
	Stock           *Stock          `gorm:"foreignKey:StockID" json:"stock,omitempty"`
	TransactionType TransactionType `gorm:"type:varchar(20);not null" json:"transaction_type"`
	QuantityChanged int             `gorm:"not null" json:"quantity_changed"` // magnitude, always >= 1
	PersonName      string          `gorm:"type:varchar(255);not null" json:"person_name"`
	PersonRole      string          `gorm:"type:varchar(100)" json:"person_role,omitempty"`
	Notes           string          `gorm:"type:text" json:"notes,omitempty"`

	// Authenticated actor who recorded the transaction, if any.
	UserID *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	User   *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
