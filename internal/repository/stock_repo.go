package repository

import (
	"time"

	"go-consumable-inventory/internal/model"
	"go-consumable-inventory/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockListItem is the ledger list projection joined with its product.
type StockListItem struct {
	ID              uuid.UUID `json:"id"`
	Quantity        int       `json:"quantity"`
	Unit            string    `json:"unit"`
	ProductID       uuid.UUID `json:"product_id"`
	ProductName     string    `json:"product_name"`
	ProductCode     string    `json:"product_code"`
	MeasurementUnit string    `json:"measurement_unit"`
	ReorderPoint    int       `json:"reorder_point"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// StockRepository is the balance-row data access. The mutating methods take
// the transaction handle so they can run inside the engine's atomic unit.
type StockRepository interface {
	FindByID(id uuid.UUID) (*model.Stock, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Stock, error)
	FindByProductTx(tx *gorm.DB, productID uuid.UUID) (*model.Stock, error)
	CreateTx(tx *gorm.DB, stock *model.Stock) error
	Increment(tx *gorm.DB, id uuid.UUID, qty int) error
	// DecrementIfAvailable subtracts qty only when the current quantity
	// covers it; reports whether the row was changed.
	DecrementIfAvailable(tx *gorm.DB, id uuid.UUID, qty int) (bool, error)
	CountByProduct(productID uuid.UUID) (int64, error)
	List(p pagination.Params, q string) ([]StockListItem, int64, error)
}

type stockRepo struct {
	db *gorm.DB
}

func NewStockRepo(db *gorm.DB) StockRepository {
	return &stockRepo{db}
}

func (r *stockRepo) FindByID(id uuid.UUID) (*model.Stock, error) {
	return r.FindByIDTx(r.db, id)
}

func (r *stockRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Stock, error) {
	var stock model.Stock
	if err := tx.Preload("Product").First(&stock, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &stock, nil
}

func (r *stockRepo) FindByProductTx(tx *gorm.DB, productID uuid.UUID) (*model.Stock, error) {
	var stock model.Stock
	if err := tx.First(&stock, "product_id = ?", productID).Error; err != nil {
		return nil, err
	}
	return &stock, nil
}

func (r *stockRepo) CreateTx(tx *gorm.DB, stock *model.Stock) error {
	return tx.Create(stock).Error
}

// Increment applies a relative update so the row write itself is the
// serialization point; no quantity is read outside the store.
func (r *stockRepo) Increment(tx *gorm.DB, id uuid.UUID, qty int) error {
	return tx.Model(&model.Stock{}).
		Where("id = ?", id).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", qty)).Error
}

func (r *stockRepo) DecrementIfAvailable(tx *gorm.DB, id uuid.UUID, qty int) (bool, error) {
	res := tx.Model(&model.Stock{}).
		Where("id = ? AND quantity >= ?", id, qty).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", qty))
	return res.RowsAffected > 0, res.Error
}

func (r *stockRepo) CountByProduct(productID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Stock{}).Where("product_id = ?", productID).Count(&count).Error
	return count, err
}

func (r *stockRepo) List(p pagination.Params, q string) ([]StockListItem, int64, error) {
	base := r.db.Model(&model.Stock{}).
		Joins("JOIN products ON products.id = stocks.product_id")

	if q != "" {
		pattern := "%" + q + "%"
		base = base.Where("LOWER(products.name) LIKE LOWER(?) OR LOWER(products.product_code) LIKE LOWER(?)", pattern, pattern)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []StockListItem
	err := base.
		Select(`stocks.id, stocks.quantity, stocks.unit, stocks.created_at, stocks.updated_at,
			products.id AS product_id, products.name AS product_name,
			products.product_code, products.measurement_unit, products.reorder_point`).
		Order(p.OrderClause()).
		Offset(p.Offset()).
		Limit(p.Limit).
		Scan(&items).Error
	return items, total, err
}
