package handler

import (
	"strconv"
	"time"

	"go-consumable-inventory/internal/model"
	"go-consumable-inventory/internal/repository"
	"go-consumable-inventory/internal/service"
	"go-consumable-inventory/pkg/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var stockSortColumns = map[string]string{
	"product_name": "products.name",
	"product_code": "products.product_code",
	"quantity":     "stocks.quantity",
	"created_at":   "stocks.created_at",
	"updated_at":   "stocks.updated_at",
}

var logSortColumns = map[string]string{
	"created_at":       "stock_logs.created_at",
	"transaction_type": "stock_logs.transaction_type",
	"quantity_changed": "stock_logs.quantity_changed",
	"person_name":      "stock_logs.person_name",
	"product_name":     "products.name",
}

type StockHandler struct {
	service service.StockService
}

func NewStockHandler(s service.StockService) *StockHandler {
	return &StockHandler{service: s}
}

// dayWindow expands a calendar day to its inclusive bounds. Calendar
// arithmetic stays in the day's zone, so on DST transition days the window
// still ends at the day's last instant instead of spilling into (or out of)
// its neighbors.
func dayWindow(day time.Time) (time.Time, time.Time) {
	return day, day.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// actorID extracts the authenticated actor set by the auth middleware.
func actorID(c *fiber.Ctx) *uuid.UUID {
	raw, ok := c.Locals("user_id").(string)
	if !ok {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

func (h *StockHandler) RecordRestock(c *fiber.Ctx) error {
	var req model.RestockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.service.RecordRestock(c.Context(), &req, actorID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Restock recorded", "data": result})
}

func (h *StockHandler) RecordUsage(c *fiber.Ctx) error {
	var req model.UsageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.service.RecordUsage(c.Context(), &req, actorID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Usage recorded", "data": result})
}

func (h *StockHandler) GetStockItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid stock ID"})
	}

	stock, err := h.service.GetStockItem(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stock)
}

func (h *StockHandler) GetStock(c *fiber.Ctx) error {
	p := pagination.Parse(
		c.Query("page"), c.Query("limit"), c.Query("sortBy"), c.Query("order"),
		stockSortColumns, "products.name", "asc",
	)

	result, err := h.service.ListStock(p, c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *StockHandler) GetLogs(c *fiber.Ctx) error {
	p := pagination.Parse(
		c.Query("page"), c.Query("limit"), c.Query("sortBy"), c.Query("order"),
		logSortColumns, "stock_logs.created_at", "desc",
	)

	filter := repository.LogFilter{
		Q:               c.Query("q"),
		TransactionType: c.Query("transaction_type"),
		PersonName:      c.Query("person_name"),
		PersonRole:      c.Query("person_role"),
		Notes:           c.Query("notes"),
	}

	if raw := c.Query("quantity_changed"); raw != "" {
		qty, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid quantity_changed filter"})
		}
		filter.QuantityChanged = &qty
	}

	// created_at filters one local day, inclusive at both ends.
	if raw := c.Query("created_at"); raw != "" {
		day, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid created_at filter, expected YYYY-MM-DD"})
		}
		from, to := dayWindow(day)
		filter.CreatedFrom = &from
		filter.CreatedTo = &to
	}

	result, err := h.service.ListLogs(p, filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
