package service

import (
	"errors"

	"go-consumable-inventory/internal/apperr"
	"go-consumable-inventory/internal/model"
	"go-consumable-inventory/internal/repository"
	"go-consumable-inventory/pkg/pagination"
	"go-consumable-inventory/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CatalogService interface {
	CreateProduct(req *model.ProductCreateRequest) (*model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
	UpdateProduct(id uuid.UUID, req *model.ProductUpdateRequest) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
	ListProducts(p pagination.Params, filter repository.ProductFilter) (*pagination.Result[repository.ProductListItem], error)
	ListProductOptions() ([]model.ProductOption, error)
	ListCategories() ([]model.Category, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	stockRepo    repository.StockRepository
}

func NewCatalogService(pRepo repository.ProductRepository, cRepo repository.CategoryRepository, sRepo repository.StockRepository) CatalogService {
	return &catalogService{
		productRepo:  pRepo,
		categoryRepo: cRepo,
		stockRepo:    sRepo,
	}
}

func (s *catalogService) CreateProduct(req *model.ProductCreateRequest) (*model.Product, error) {
	req.Normalize()
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation(errs)
	}

	if err := s.checkDuplicate(req.ProductCode, req.Name, uuid.Nil); err != nil {
		return nil, err
	}

	product := &model.Product{
		ProductCode:     req.ProductCode,
		Name:            req.Name,
		CategoryID:      req.CategoryID,
		MeasurementUnit: req.MeasurementUnit,
		ReorderPoint:    req.ReorderPoint,
	}

	if err := s.productRepo.Create(product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Duplicate("a product with the same name or code already exists")
		}
		return nil, err
	}
	return product, nil
}

func (s *catalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, err
	}
	return product, nil
}

// UpdateProduct applies a partial payload: only fields present in the
// request are written, but every present field is validated first.
func (s *catalogService) UpdateProduct(id uuid.UUID, req *model.ProductUpdateRequest) (*model.Product, error) {
	req.Normalize()
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation(errs)
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, err
	}

	code, name := "", ""
	if req.ProductCode != nil && *req.ProductCode != product.ProductCode {
		code = *req.ProductCode
	}
	if req.Name != nil && *req.Name != product.Name {
		name = *req.Name
	}
	if err := s.checkDuplicate(code, name, product.ID); err != nil {
		return nil, err
	}

	if req.ProductCode != nil {
		product.ProductCode = *req.ProductCode
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
	}
	if req.MeasurementUnit != nil {
		product.MeasurementUnit = *req.MeasurementUnit
	}
	if req.ReorderPoint != nil {
		product.ReorderPoint = *req.ReorderPoint
	}

	// Save must not cascade into the preloaded category; it is not ours.
	product.Category = nil

	if err := s.productRepo.Update(product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Duplicate("a product with the same name or code already exists")
		}
		return nil, err
	}
	return product, nil
}

// checkDuplicate rejects a code or name already taken by another product.
// Empty values are skipped; the unique indexes stay as the backstop for
// races between the check and the write.
func (s *catalogService) checkDuplicate(code, name string, selfID uuid.UUID) error {
	if code != "" {
		if existing, err := s.productRepo.FindByCode(code); err == nil && existing.ID != selfID {
			return apperr.Duplicate("a product with the same name or code already exists")
		}
	}
	if name != "" {
		if existing, err := s.productRepo.FindByName(name); err == nil && existing.ID != selfID {
			return apperr.Duplicate("a product with the same name or code already exists")
		}
	}
	return nil
}

// DeleteProduct hard-deletes a catalog entry, but never one that already has
// stock history: the ledger references it and the log must stay replayable.
func (s *catalogService) DeleteProduct(id uuid.UUID) error {
	count, err := s.stockRepo.CountByProduct(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflict("product cannot be deleted because it already has stock data")
	}

	affected, err := s.productRepo.Delete(id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFound("product not found")
	}
	return nil
}

func (s *catalogService) ListProducts(p pagination.Params, filter repository.ProductFilter) (*pagination.Result[repository.ProductListItem], error) {
	items, total, err := s.productRepo.List(p, filter)
	if err != nil {
		return nil, err
	}
	result := pagination.NewResult(items, total, p)
	return &result, nil
}

func (s *catalogService) ListProductOptions() ([]model.ProductOption, error) {
	return s.productRepo.Options()
}

func (s *catalogService) ListCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAllSorted()
}
