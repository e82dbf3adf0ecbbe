package inventory

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Mbishu2002/newDesk/pkg/apperrors"
	"github.com/Mbishu2002/newDesk/pkg/models"
)

// ItemStore is the persistence surface the adjustment engine needs. The
// write is transactional: the item update and the movement insert land
// together or not at all.
type ItemStore interface {
	GetItem(id string) (*models.InventoryItem, error)
	ApplyAdjustment(item *models.InventoryItem, movement *models.StockMovement) error
}

type AdjustmentRequest struct {
	InventoryID   string
	Delta         int
	MovementType  string
	Reason        string
	PerformedByID string
}

type PhysicalCountRequest struct {
	InventoryID   string
	PhysicalCount int
	Reason        string
	PerformedByID string
}

type AdjustmentResult struct {
	Item     *models.InventoryItem `json:"item"`
	Movement *models.StockMovement `json:"movement,omitempty"`
}

// AdjustmentService applies quantity deltas to inventory rows. All writes
// to the same row go through a per-row mutex, so concurrent adjustments
// apply their deltas one after another instead of losing updates.
type AdjustmentService struct {
	store ItemStore
	log   *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewAdjustmentService(store ItemStore, log *zap.Logger) *AdjustmentService {
	return &AdjustmentService{
		store: store,
		log:   log,
		locks: make(map[string]*sync.Mutex),
	}
}

func (s *AdjustmentService) rowLock(inventoryID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[inventoryID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[inventoryID] = lock
	}
	return lock
}

// Adjust applies a signed quantity delta to one inventory row, recomputes
// the derived fields and appends the matching movement row.
func (s *AdjustmentService) Adjust(req AdjustmentRequest) (*AdjustmentResult, error) {
	if req.Delta == 0 {
		return nil, apperrors.InvalidAdjustment("adjustment delta must not be zero")
	}

	movementType := req.MovementType
	if movementType == "" {
		if req.Delta > 0 {
			movementType = models.MovementAdded
		} else {
			movementType = models.MovementSold
		}
	}

	lock := s.rowLock(req.InventoryID)
	lock.Lock()
	defer lock.Unlock()

	item, err := s.store.GetItem(req.InventoryID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperrors.NotFound("inventory item %s not found", req.InventoryID)
	}

	newQuantity := item.Quantity + req.Delta
	if newQuantity < 0 {
		return nil, apperrors.InvalidAdjustment(
			"adjustment of %d would drive quantity below zero (current %d)", req.Delta, item.Quantity)
	}

	item.Quantity = newQuantity
	item.Recalculate()
	item.UpdatedAt = time.Now()

	movement := s.buildMovement(item, req.Delta, movementType, req.Reason, req.PerformedByID)

	if err := s.store.ApplyAdjustment(item, movement); err != nil {
		return nil, err
	}

	s.log.Info("stock adjusted",
		zap.String("inventory_id", item.ID),
		zap.Int("delta", req.Delta),
		zap.Int("quantity", item.Quantity),
		zap.String("status", item.Status))

	return &AdjustmentResult{Item: item, Movement: movement}, nil
}

// PhysicalCount reconciles a counted quantity against the stored one. The
// delta is computed from the row's current quantity, and both counts are
// kept on the movement for the audit trail. A count that matches the
// system quantity writes nothing.
func (s *AdjustmentService) PhysicalCount(req PhysicalCountRequest) (*AdjustmentResult, error) {
	if req.PhysicalCount < 0 {
		return nil, apperrors.InvalidAdjustment("physical count must not be negative")
	}

	lock := s.rowLock(req.InventoryID)
	lock.Lock()
	defer lock.Unlock()

	item, err := s.store.GetItem(req.InventoryID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperrors.NotFound("inventory item %s not found", req.InventoryID)
	}

	systemCount := item.Quantity
	delta := req.PhysicalCount - systemCount
	if delta == 0 {
		return &AdjustmentResult{Item: item}, nil
	}

	item.Quantity = req.PhysicalCount
	item.Recalculate()
	item.UpdatedAt = time.Now()

	movement := s.buildMovement(item, delta, models.MovementAdjustment, req.Reason, req.PerformedByID)
	movement.SystemCount = &systemCount
	physicalCount := req.PhysicalCount
	movement.PhysicalCount = &physicalCount

	if err := s.store.ApplyAdjustment(item, movement); err != nil {
		return nil, err
	}

	s.log.Info("physical count reconciled",
		zap.String("inventory_id", item.ID),
		zap.Int("system_count", systemCount),
		zap.Int("physical_count", req.PhysicalCount))

	return &AdjustmentResult{Item: item, Movement: movement}, nil
}

func (s *AdjustmentService) buildMovement(item *models.InventoryItem, delta int, movementType, reason, performedByID string) *models.StockMovement {
	direction := models.DirectionInbound
	quantity := delta
	if delta < 0 {
		direction = models.DirectionOutbound
		quantity = -delta
	}

	now := time.Now()
	return &models.StockMovement{
		ID:            uuid.NewString(),
		ProductID:     item.ProductID,
		InventoryID:   item.ID,
		Quantity:      quantity,
		Direction:     direction,
		MovementType:  movementType,
		Reason:        reason,
		PerformedByID: performedByID,
		CostPerUnit:   item.UnitCost,
		TotalCost:     item.UnitCost.Mul(decimal.NewFromInt(int64(quantity))),
		Date:          now,
		CreatedAt:     now,
	}
}
