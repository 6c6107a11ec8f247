package repository

import (
	"go-consumable-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryRepository resolves category references for display joins. The
// catalog never mutates categories; they belong to another subsystem.
type CategoryRepository interface {
	FindByID(id uuid.UUID) (*model.Category, error)
	FindAllSorted() ([]model.Category, error)
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db}
}

func (r *categoryRepo) FindByID(id uuid.UUID) (*model.Category, error) {
	var category model.Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) FindAllSorted() ([]model.Category, error) {
	var categories []model.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}
