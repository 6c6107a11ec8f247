package model

// Category is referenced by products for display purposes only.
// It is owned by another part of the system; this module never mutates it.
type Category struct {
	BaseModel
	Name string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
}
