package service

import (
	"fmt"
	"strings"
	"testing"

	"go-consumable-inventory/internal/model"
	"go-consumable-inventory/internal/repository"
	"go-consumable-inventory/pkg/pagination"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a per-test in-memory database. The pool is capped at one
// connection so concurrent transactions serialize at the pool instead of
// tripping sqlite's shared-cache locking.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Category{}, &model.Product{}, &model.Stock{}, &model.StockLog{}, &model.User{},
	))
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *model.Category {
	t.Helper()
	category := &model.Category{Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedProduct(t *testing.T, db *gorm.DB, category *model.Category, code, name, unit string) *model.Product {
	t.Helper()
	product := &model.Product{
		ProductCode:     code,
		Name:            name,
		CategoryID:      category.ID,
		MeasurementUnit: unit,
		ReorderPoint:    5,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	user := &model.User{Email: email, FullName: "Test User", IsActive: true}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func defaultPage() pagination.Params {
	return pagination.Params{Page: 1, Limit: 10, SortBy: "products.name", Order: "asc"}
}

func newCatalog(db *gorm.DB) CatalogService {
	return NewCatalogService(
		repository.NewProductRepo(db),
		repository.NewCategoryRepo(db),
		repository.NewStockRepo(db),
	)
}
