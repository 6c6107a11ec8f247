package repository

import (
	"time"

	"go-consumable-inventory/internal/model"
	"go-consumable-inventory/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductListItem is the flattened catalog list projection with the
// category name joined in for display.
type ProductListItem struct {
	ID              uuid.UUID `json:"id"`
	ProductCode     string    `json:"product_code"`
	Name            string    `json:"name"`
	CategoryName    string    `json:"category_name"`
	MeasurementUnit string    `json:"measurement_unit"`
	ReorderPoint    int       `json:"reorder_point"`
	CreatedAt       time.Time `json:"created_at"`
}

// ProductFilter narrows the catalog list: Q searches name and code,
// CategoryID restricts to one category.
type ProductFilter struct {
	Q          string
	CategoryID *uuid.UUID
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByCode(code string) (*model.Product, error)
	FindByName(name string) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uuid.UUID) (int64, error)
	List(p pagination.Params, filter ProductFilter) ([]ProductListItem, int64, error)
	Options() ([]model.ProductOption, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.Preload("Category").First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByCode(code string) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "product_code = ?", code).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByName(name string) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uuid.UUID) (int64, error) {
	res := r.db.Delete(&model.Product{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *productRepo) List(p pagination.Params, filter ProductFilter) ([]ProductListItem, int64, error) {
	base := r.db.Model(&model.Product{}).
		Joins("LEFT JOIN categories ON categories.id = products.category_id")

	if filter.Q != "" {
		pattern := "%" + filter.Q + "%"
		base = base.Where("LOWER(products.name) LIKE LOWER(?) OR LOWER(products.product_code) LIKE LOWER(?)", pattern, pattern)
	}
	if filter.CategoryID != nil {
		base = base.Where("products.category_id = ?", *filter.CategoryID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []ProductListItem
	err := base.
		Select(`products.id, products.product_code, products.name,
			COALESCE(categories.name, '') AS category_name,
			products.measurement_unit, products.reorder_point, products.created_at`).
		Order(p.OrderClause()).
		Offset(p.Offset()).
		Limit(p.Limit).
		Scan(&items).Error
	return items, total, err
}

// Options backs the product picker: every product, name order, slim fields.
func (r *productRepo) Options() ([]model.ProductOption, error) {
	var options []model.ProductOption
	err := r.db.Model(&model.Product{}).
		Select("id, name, product_code, measurement_unit").
		Order("name ASC").
		Scan(&options).Error
	return options, err
}
