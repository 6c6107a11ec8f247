package repository

import (
	"time"

	"go-consumable-inventory/internal/model"
	"go-consumable-inventory/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LogListItem is the history list projection: log row joined through its
// stock row to the product, and to the recording actor.
type LogListItem struct {
	ID              uuid.UUID             `json:"id"`
	StockID         uuid.UUID             `json:"stock_id"`
	TransactionType model.TransactionType `json:"transaction_type"`
	QuantityChanged int                   `json:"quantity_changed"`
	PersonName      string                `json:"person_name"`
	PersonRole      string                `json:"person_role,omitempty"`
	Notes           string                `json:"notes,omitempty"`
	ProductName     string                `json:"product_name"`
	ProductCode     string                `json:"product_code"`
	UserName        string                `json:"user_name,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
}

// LogFilter mirrors the history screen's filter row. Q is the quick search
// across product, person, notes and actor; the rest are per-column filters.
type LogFilter struct {
	Q               string
	TransactionType string
	PersonName      string
	PersonRole      string
	Notes           string
	QuantityChanged *int
	// Inclusive created_at window, usually one local day.
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

type StockLogRepository interface {
	CreateTx(tx *gorm.DB, entry *model.StockLog) error
	FindByStock(stockID uuid.UUID) ([]model.StockLog, error)
	List(p pagination.Params, filter LogFilter) ([]LogListItem, int64, error)
}

type stockLogRepo struct {
	db *gorm.DB
}

func NewStockLogRepo(db *gorm.DB) StockLogRepository {
	return &stockLogRepo{db}
}

func (r *stockLogRepo) CreateTx(tx *gorm.DB, entry *model.StockLog) error {
	return tx.Create(entry).Error
}

func (r *stockLogRepo) FindByStock(stockID uuid.UUID) ([]model.StockLog, error) {
	var entries []model.StockLog
	err := r.db.Where("stock_id = ?", stockID).Order("created_at ASC").Find(&entries).Error
	return entries, err
}

func (r *stockLogRepo) List(p pagination.Params, filter LogFilter) ([]LogListItem, int64, error) {
	base := r.db.Model(&model.StockLog{}).
		Joins("JOIN stocks ON stocks.id = stock_logs.stock_id").
		Joins("JOIN products ON products.id = stocks.product_id").
		Joins("LEFT JOIN users ON users.id = stock_logs.user_id")

	if filter.Q != "" {
		pattern := "%" + filter.Q + "%"
		base = base.Where(`LOWER(products.name) LIKE LOWER(?)
			OR LOWER(stock_logs.person_name) LIKE LOWER(?)
			OR LOWER(stock_logs.notes) LIKE LOWER(?)
			OR LOWER(users.full_name) LIKE LOWER(?)`,
			pattern, pattern, pattern, pattern)
	}
	if filter.TransactionType != "" {
		base = base.Where("stock_logs.transaction_type = ?", filter.TransactionType)
	}
	if filter.PersonName != "" {
		base = base.Where("LOWER(stock_logs.person_name) LIKE LOWER(?)", "%"+filter.PersonName+"%")
	}
	if filter.PersonRole != "" {
		base = base.Where("LOWER(stock_logs.person_role) LIKE LOWER(?)", "%"+filter.PersonRole+"%")
	}
	if filter.Notes != "" {
		base = base.Where("LOWER(stock_logs.notes) LIKE LOWER(?)", "%"+filter.Notes+"%")
	}
	if filter.QuantityChanged != nil {
		base = base.Where("stock_logs.quantity_changed = ?", *filter.QuantityChanged)
	}
	if filter.CreatedFrom != nil {
		base = base.Where("stock_logs.created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		base = base.Where("stock_logs.created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []LogListItem
	err := base.
		Select(`stock_logs.id, stock_logs.stock_id, stock_logs.transaction_type,
			stock_logs.quantity_changed, stock_logs.person_name, stock_logs.person_role,
			stock_logs.notes, stock_logs.created_at,
			products.name AS product_name, products.product_code,
			COALESCE(users.full_name, '') AS user_name`).
		Order(p.OrderClause()).
		Offset(p.Offset()).
		Limit(p.Limit).
		Scan(&items).Error
	return items, total, err
}
