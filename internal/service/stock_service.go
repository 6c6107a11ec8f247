package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-consumable-inventory/internal/apperr"
	"go-consumable-inventory/internal/model"
	"go-consumable-inventory/internal/repository"
	"go-consumable-inventory/internal/ws"
	"go-consumable-inventory/pkg/pagination"
	"go-consumable-inventory/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// Every atomic unit must finish inside this window; on expiry the
	// whole unit rolls back.
	mutationTimeout = 5 * time.Second

	// Bounded retry for store-level contention only. Validation and
	// business-rule failures are never retried.
	maxAttempts = 3
)

type StockService interface {
	RecordRestock(ctx context.Context, req *model.RestockRequest, actorID *uuid.UUID) (*model.MutationResult, error)
	RecordUsage(ctx context.Context, req *model.UsageRequest, actorID *uuid.UUID) (*model.MutationResult, error)
	GetStockItem(id uuid.UUID) (*model.Stock, error)
	ListStock(p pagination.Params, q string) (*pagination.Result[repository.StockListItem], error)
	ListLogs(p pagination.Params, filter repository.LogFilter) (*pagination.Result[repository.LogListItem], error)
}

type stockService struct {
	stockRepo repository.StockRepository
	logRepo   repository.StockLogRepository
	db        *gorm.DB
	wsHub     *ws.Hub
	log       *zap.Logger
}

func NewStockService(sRepo repository.StockRepository, lRepo repository.StockLogRepository, db *gorm.DB, hub *ws.Hub, log *zap.Logger) StockService {
	return &stockService{
		stockRepo: sRepo,
		logRepo:   lRepo,
		db:        db,
		wsHub:     hub,
		log:       log,
	}
}

// RecordRestock adds quantity to a product's balance. The ledger row is
// created lazily on the first restock, zero-initialized and immediately
// incremented, with the unit captured from the product (or the explicit
// unit in the payload). Balance update and log append commit together or
// not at all.
func (s *stockService) RecordRestock(ctx context.Context, req *model.RestockRequest, actorID *uuid.UUID) (*model.MutationResult, error) {
	req.Normalize()
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation(errs)
	}

	var result *model.MutationResult
	err := s.runAtomic(ctx, func(tx *gorm.DB) error {
		stock, err := s.stockRepo.FindByProductTx(tx, req.ProductID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			var product model.Product
			if err := tx.First(&product, "id = ?", req.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound("product not found")
				}
				return err
			}
			unit := req.Unit
			if unit == "" {
				unit = product.MeasurementUnit
			}
			stock = &model.Stock{ProductID: req.ProductID, Quantity: 0, Unit: unit}
			if err := s.stockRepo.CreateTx(tx, stock); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if err := s.stockRepo.Increment(tx, stock.ID, req.QuantityAdded); err != nil {
			return err
		}

		entry := &model.StockLog{
			StockID:         stock.ID,
			TransactionType: model.TxAddition,
			QuantityChanged: req.QuantityAdded,
			PersonName:      req.PersonName,
			PersonRole:      req.PersonRole,
			Notes:           req.Notes,
			UserID:          actorID,
		}
		if err := s.logRepo.CreateTx(tx, entry); err != nil {
			return err
		}

		updated, err := s.stockRepo.FindByIDTx(tx, stock.ID)
		if err != nil {
			return err
		}
		result = &model.MutationResult{Stock: updated, Log: entry}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcast("restock", result)
	s.log.Info("stock restocked",
		zap.String("stock_id", result.Stock.ID.String()),
		zap.Int("quantity_added", req.QuantityAdded),
		zap.Int("new_quantity", result.Stock.Quantity),
	)
	return result, nil
}

// RecordUsage withdraws quantity from an existing ledger row. A usage never
// creates a ledger row, and a withdrawal larger than the balance is rejected
// with the current quantity attached for display.
func (s *stockService) RecordUsage(ctx context.Context, req *model.UsageRequest, actorID *uuid.UUID) (*model.MutationResult, error) {
	req.Normalize()
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation(errs)
	}

	var result *model.MutationResult
	err := s.runAtomic(ctx, func(tx *gorm.DB) error {
		stock, err := s.stockRepo.FindByIDTx(tx, req.StockItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("stock item not found")
			}
			return err
		}

		// The guarded update is the serialization point: it only lands
		// when the balance still covers the withdrawal at write time.
		ok, err := s.stockRepo.DecrementIfAvailable(tx, stock.ID, req.QuantityTaken)
		if err != nil {
			return err
		}
		if !ok {
			current, err := s.stockRepo.FindByIDTx(tx, stock.ID)
			if err != nil {
				return err
			}
			return apperr.InsufficientStock(
				fmt.Sprintf("insufficient stock, current quantity: %d", current.Quantity),
				current.Quantity,
			)
		}

		entry := &model.StockLog{
			StockID:         stock.ID,
			TransactionType: model.TxWithdrawal,
			QuantityChanged: req.QuantityTaken,
			PersonName:      req.PersonName,
			PersonRole:      req.PersonRole,
			Notes:           req.Notes,
			UserID:          actorID,
		}
		if err := s.logRepo.CreateTx(tx, entry); err != nil {
			return err
		}

		updated, err := s.stockRepo.FindByIDTx(tx, stock.ID)
		if err != nil {
			return err
		}
		result = &model.MutationResult{Stock: updated, Log: entry}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcast("usage", result)
	s.log.Info("stock withdrawn",
		zap.String("stock_id", result.Stock.ID.String()),
		zap.Int("quantity_taken", req.QuantityTaken),
		zap.Int("new_quantity", result.Stock.Quantity),
	)
	return result, nil
}

func (s *stockService) GetStockItem(id uuid.UUID) (*model.Stock, error) {
	stock, err := s.stockRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("stock item not found")
		}
		return nil, err
	}
	return stock, nil
}

func (s *stockService) ListStock(p pagination.Params, q string) (*pagination.Result[repository.StockListItem], error) {
	items, total, err := s.stockRepo.List(p, q)
	if err != nil {
		return nil, err
	}
	result := pagination.NewResult(items, total, p)
	return &result, nil
}

func (s *stockService) ListLogs(p pagination.Params, filter repository.LogFilter) (*pagination.Result[repository.LogListItem], error) {
	items, total, err := s.logRepo.List(p, filter)
	if err != nil {
		return nil, err
	}
	result := pagination.NewResult(items, total, p)
	return &result, nil
}

// runAtomic executes fn as one all-or-nothing unit with a bounded timeout,
// retrying only on store-level contention: two first-restocks racing on the
// unique product index, deadlocks, serialization failures, or a locked
// database file. Exhausted retries surface as a transient conflict so the
// caller can replay the whole action.
func (s *stockService) runAtomic(ctx context.Context, fn func(tx *gorm.DB) error) error {
	ctx, cancel := context.WithTimeout(ctx, mutationTimeout)
	defer cancel()

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = s.db.WithContext(ctx).Transaction(fn)
		if errors.Is(err, context.DeadlineExceeded) {
			return apperr.TransientConflict("stock mutation timed out and was rolled back")
		}
		if err == nil || !isRetryable(err) {
			return err
		}
		s.log.Warn("stock mutation contention, retrying",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return apperr.TransientConflict("stock mutation timed out under contention")
		case <-time.After(time.Duration(attempt) * 10 * time.Millisecond):
		}
	}
	return apperr.TransientConflict("stock mutation kept conflicting, please retry")
}

func isRetryable(err error) bool {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the first-restock race on the stock row's unique
		// product index; the next attempt finds the winner's row.
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "deadlock detected") ||
		strings.Contains(msg, "could not serialize access") ||
		strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked")
}

func (s *stockService) broadcast(action string, result *model.MutationResult) {
	if s.wsHub == nil {
		return
	}
	event := ws.StockEvent{
		Type:            "stock_update",
		Action:          action,
		StockID:         result.Stock.ID,
		Quantity:        result.Stock.Quantity,
		QuantityChanged: result.Log.QuantityChanged,
		TransactionType: string(result.Log.TransactionType),
		PersonName:      result.Log.PersonName,
	}
	if result.Stock.Product != nil {
		event.ProductName = result.Stock.Product.Name
		event.ProductCode = result.Stock.Product.ProductCode
	}
	go s.wsHub.BroadcastEvent(event)
}
