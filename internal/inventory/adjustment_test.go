package inventory

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/Mbishu2002/newDesk/pkg/apperrors"
	"github.com/Mbishu2002/newDesk/pkg/models"
)

type MockItemStore struct {
	mock.Mock
}

func (m *MockItemStore) GetItem(id string) (*models.InventoryItem, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryItem), args.Error(1)
}

func (m *MockItemStore) ApplyAdjustment(item *models.InventoryItem, movement *models.StockMovement) error {
	args := m.Called(item, movement)
	return args.Error(0)
}

// fakeItemStore keeps items in memory so tests can apply a sequence of
// adjustments and inspect the resulting ledger.
type fakeItemStore struct {
	mu        sync.Mutex
	items     map[string]models.InventoryItem
	movements []models.StockMovement
}

func newFakeItemStore(items ...models.InventoryItem) *fakeItemStore {
	s := &fakeItemStore{items: make(map[string]models.InventoryItem)}
	for _, item := range items {
		s.items[item.ID] = item
	}
	return s
}

func (s *fakeItemStore) GetItem(id string) (*models.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (s *fakeItemStore) ApplyAdjustment(item *models.InventoryItem, movement *models.StockMovement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = *item
	s.movements = append(s.movements, *movement)
	return nil
}

func testItem(quantity int) models.InventoryItem {
	return models.InventoryItem{
		ID:           "inv-1",
		ProductID:    "prod-1",
		ShopID:       "shop-1",
		Quantity:     quantity,
		UnitCost:     decimal.NewFromFloat(2.50),
		SellingPrice: decimal.NewFromFloat(4.00),
		ReorderPoint: 10,
	}
}

func TestAdjustRecomputesDerivedFields(t *testing.T) {
	store := newFakeItemStore(testItem(20))
	service := NewAdjustmentService(store, zap.NewNop())

	result, err := service.Adjust(AdjustmentRequest{
		InventoryID:   "inv-1",
		Delta:         5,
		Reason:        "restock",
		PerformedByID: "user-1",
	})

	assert.NoError(t, err)
	assert.Equal(t, 25, result.Item.Quantity)
	assert.True(t, result.Item.TotalValue.Equal(decimal.NewFromFloat(62.50)),
		"totalValue must equal quantity * unitCost, got %s", result.Item.TotalValue)
	assert.Equal(t, models.StatusHighStock, result.Item.Status)
	assert.Equal(t, models.DirectionInbound, result.Movement.Direction)
	assert.Equal(t, 5, result.Movement.Quantity)
	assert.True(t, result.Movement.TotalCost.Equal(decimal.NewFromFloat(12.50)))
}

func TestAdjustRoundTrip(t *testing.T) {
	store := newFakeItemStore(testItem(20))
	service := NewAdjustmentService(store, zap.NewNop())

	_, err := service.Adjust(AdjustmentRequest{InventoryID: "inv-1", Delta: 10, Reason: "in", PerformedByID: "u"})
	assert.NoError(t, err)
	_, err = service.Adjust(AdjustmentRequest{InventoryID: "inv-1", Delta: -10, Reason: "out", PerformedByID: "u"})
	assert.NoError(t, err)

	item, _ := store.GetItem("inv-1")
	assert.Equal(t, 20, item.Quantity)
	assert.Len(t, store.movements, 2)
	assert.Equal(t, models.DirectionInbound, store.movements[0].Direction)
	assert.Equal(t, 10, store.movements[0].Quantity)
	assert.Equal(t, models.DirectionOutbound, store.movements[1].Direction)
	assert.Equal(t, 10, store.movements[1].Quantity)
}

func TestAdjustRejectsZeroDelta(t *testing.T) {
	store := newFakeItemStore(testItem(20))
	service := NewAdjustmentService(store, zap.NewNop())

	_, err := service.Adjust(AdjustmentRequest{InventoryID: "inv-1", Delta: 0, Reason: "noop"})

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidAdjustment, apperrors.KindOf(err))
	assert.Empty(t, store.movements)
}

func TestAdjustRejectsNegativeResult(t *testing.T) {
	store := newFakeItemStore(testItem(3))
	service := NewAdjustmentService(store, zap.NewNop())

	_, err := service.Adjust(AdjustmentRequest{InventoryID: "inv-1", Delta: -5, Reason: "oversell"})

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidAdjustment, apperrors.KindOf(err))
	assert.Empty(t, store.movements, "a rejected adjustment must not write a movement row")

	item, _ := store.GetItem("inv-1")
	assert.Equal(t, 3, item.Quantity)
}

func TestAdjustUnknownItem(t *testing.T) {
	mockStore := new(MockItemStore)
	mockStore.On("GetItem", "missing").Return(nil, nil)
	service := NewAdjustmentService(mockStore, zap.NewNop())

	_, err := service.Adjust(AdjustmentRequest{InventoryID: "missing", Delta: 1, Reason: "x"})

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	mockStore.AssertNotCalled(t, "ApplyAdjustment", mock.Anything, mock.Anything)
}

func TestPhysicalCountRecordsBothCounts(t *testing.T) {
	store := newFakeItemStore(testItem(50))
	service := NewAdjustmentService(store, zap.NewNop())

	result, err := service.PhysicalCount(PhysicalCountRequest{
		InventoryID:   "inv-1",
		PhysicalCount: 42,
		Reason:        "Physical count adjustment",
		PerformedByID: "user-1",
	})

	assert.NoError(t, err)
	assert.Equal(t, 42, result.Item.Quantity)
	assert.Equal(t, models.MovementAdjustment, result.Movement.MovementType)
	assert.Equal(t, models.DirectionOutbound, result.Movement.Direction)
	assert.Equal(t, 8, result.Movement.Quantity)
	assert.Equal(t, 50, *result.Movement.SystemCount)
	assert.Equal(t, 42, *result.Movement.PhysicalCount)
}

func TestPhysicalCountMatchingQuantityWritesNothing(t *testing.T) {
	store := newFakeItemStore(testItem(50))
	service := NewAdjustmentService(store, zap.NewNop())

	result, err := service.PhysicalCount(PhysicalCountRequest{
		InventoryID:   "inv-1",
		PhysicalCount: 50,
		Reason:        "Physical count adjustment",
	})

	assert.NoError(t, err)
	assert.Nil(t, result.Movement)
	assert.Empty(t, store.movements)
}

func TestConcurrentAdjustmentsAreSerialized(t *testing.T) {
	store := newFakeItemStore(testItem(20))
	service := NewAdjustmentService(store, zap.NewNop())

	var wg sync.WaitGroup
	for _, delta := range []int{5, -3} {
		wg.Add(1)
		go func(d int) {
			defer wg.Done()
			_, err := service.Adjust(AdjustmentRequest{
				InventoryID:   "inv-1",
				Delta:         d,
				Reason:        "concurrent",
				PerformedByID: "user-1",
			})
			assert.NoError(t, err)
		}(delta)
	}
	wg.Wait()

	item, _ := store.GetItem("inv-1")
	assert.Equal(t, 22, item.Quantity, "no update may be lost regardless of ordering")
	assert.Len(t, store.movements, 2)
}
