package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-consumable-inventory/internal/model"
	"go-consumable-inventory/internal/repository"
	"go-consumable-inventory/internal/service"
	"go-consumable-inventory/pkg/pagination"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newHandlerDB(t *testing.T) *gorm.DB {
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

func newLogsApp(t *testing.T) (*gorm.DB, *fiber.App) {
	t.Helper()
	db := newHandlerDB(t)

	svc := service.NewStockService(
		repository.NewStockRepo(db),
		repository.NewStockLogRepo(db),
		db, nil, zap.NewNop(),
	)

	app := fiber.New()
	app.Get("/logs", NewStockHandler(svc).GetLogs)
	return db, app
}

// seedLogAt inserts a history row with an explicit creation time.
func seedLogAt(t *testing.T, db *gorm.DB, stockID uuid.UUID, person string, at time.Time) {
	t.Helper()
	entry := &model.StockLog{
		BaseModel:       model.BaseModel{CreatedAt: at, UpdatedAt: at},
		StockID:         stockID,
		TransactionType: model.TxAddition,
		QuantityChanged: 1,
		PersonName:      person,
	}
	require.NoError(t, db.Create(entry).Error)
}

func TestDayWindowInclusiveBounds(t *testing.T) {
	day := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)
	from, to := dayWindow(day)

	assert.Equal(t, day, from)
	assert.Equal(t, time.Date(2026, 5, 20, 23, 59, 59, 999999999, time.UTC), to)
	assert.True(t, to.Before(day.AddDate(0, 0, 1)))
}

func TestDayWindowSpansShortDSTDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}

	// 2026-03-08 is 23 hours long in this zone; the window must still end
	// inside the same calendar day.
	day := time.Date(2026, 3, 8, 0, 0, 0, 0, loc)
	from, to := dayWindow(day)

	assert.Equal(t, 23*time.Hour-time.Nanosecond, to.Sub(from))
	assert.Equal(t, 8, to.Day())
	assert.Equal(t, 23, to.Hour())
}

func TestGetLogsCreatedAtFiltersOneDay(t *testing.T) {
	db, app := newLogsApp(t)

	category := &model.Category{Name: "Pantry"}
	require.NoError(t, db.Create(category).Error)
	product := &model.Product{
		ProductCode: "COF-001", Name: "Coffee Beans",
		CategoryID: category.ID, MeasurementUnit: "kg", ReorderPoint: 5,
	}
	require.NoError(t, db.Create(product).Error)
	stock := &model.Stock{ProductID: product.ID, Quantity: 4, Unit: "kg"}
	require.NoError(t, db.Create(stock).Error)

	day := time.Date(2026, 5, 20, 0, 0, 0, 0, time.Local)
	seedLogAt(t, db, stock.ID, "Midnight", day)
	seedLogAt(t, db, stock.ID, "LastSecond", day.Add(23*time.Hour+59*time.Minute+59*time.Second))
	seedLogAt(t, db, stock.ID, "DayBefore", day.Add(-time.Second))
	seedLogAt(t, db, stock.ID, "DayAfter", day.AddDate(0, 0, 1))

	resp, err := app.Test(httptest.NewRequest("GET", "/logs?created_at=2026-05-20", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var result pagination.Result[repository.LogListItem]
	require.NoError(t, json.Unmarshal(body, &result))

	// Both ends of the day are inclusive; the neighbors stay out.
	require.Len(t, result.Data, 2)
	persons := []string{result.Data[0].PersonName, result.Data[1].PersonName}
	assert.ElementsMatch(t, []string{"Midnight", "LastSecond"}, persons)
	assert.EqualValues(t, 2, result.Pagination.TotalItems)
}

func TestGetLogsRejectsMalformedCreatedAt(t *testing.T) {
	_, app := newLogsApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/logs?created_at=20-05-2026", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
