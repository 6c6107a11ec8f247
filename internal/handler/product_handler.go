package handler

import (
	"go-consumable-inventory/internal/model"
	"go-consumable-inventory/internal/repository"
	"go-consumable-inventory/internal/service"
	"go-consumable-inventory/pkg/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Sortable columns for the catalog list, keyed by the query value the
// client sends.
var productSortColumns = map[string]string{
	"name":             "products.name",
	"product_code":     "products.product_code",
	"category_name":    "categories.name",
	"measurement_unit": "products.measurement_unit",
	"reorder_point":    "products.reorder_point",
	"created_at":       "products.created_at",
}

type ProductHandler struct {
	service service.CatalogService
}

func NewProductHandler(s service.CatalogService) *ProductHandler {
	return &ProductHandler{service: s}
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req model.ProductCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.CreateProduct(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req model.ProductUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.UpdateProduct(id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product updated", "data": product})
}

func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.service.DeleteProduct(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	p := pagination.Parse(
		c.Query("page"), c.Query("limit"), c.Query("sortBy"), c.Query("order"),
		productSortColumns, "products.name", "asc",
	)

	filter := repository.ProductFilter{Q: c.Query("q")}
	if raw := c.Query("category"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
		}
		filter.CategoryID = &categoryID
	}

	result, err := h.service.ListProducts(p, filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// GetProductOptions backs the product picker on the restock form.
func (h *ProductHandler) GetProductOptions(c *fiber.Ctx) error {
	options, err := h.service.ListProductOptions()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(options)
}

func (h *ProductHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}
