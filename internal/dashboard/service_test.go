package dashboard

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/Mbishu2002/newDesk/pkg/apperrors"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) ShopIDsForBusiness(businessID string) ([]string, error) {
	args := m.Called(businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStore) InventoryStats(shopIDs []string) (*InventoryStats, error) {
	args := m.Called(shopIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*InventoryStats), args.Error(1)
}

func (m *MockStore) MovementTrends(shopIDs []string, since time.Time) ([]MovementTrend, error) {
	args := m.Called(shopIDs, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]MovementTrend), args.Error(1)
}

func (m *MockStore) TopSuppliers(shopIDs []string, limit uint) ([]SupplierRollup, error) {
	args := m.Called(shopIDs, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]SupplierRollup), args.Error(1)
}

func (m *MockStore) TopProducts(shopIDs []string, limit uint) ([]ProductRollup, error) {
	args := m.Called(shopIDs, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ProductRollup), args.Error(1)
}

func (m *MockStore) SalesStats(shopIDs []string, dateRange *DateRange) (*SalesStats, error) {
	args := m.Called(shopIDs, dateRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SalesStats), args.Error(1)
}

func (m *MockStore) RevenueTrends(shopIDs []string, dateRange *DateRange, view string) ([]RevenuePoint, error) {
	args := m.Called(shopIDs, dateRange, view)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]RevenuePoint), args.Error(1)
}

func (m *MockStore) TopCategories(shopIDs []string, dateRange *DateRange, view string, limit uint) ([]CategoryRollup, error) {
	args := m.Called(shopIDs, dateRange, view, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]CategoryRollup), args.Error(1)
}

func strPtr(s string) *string { return &s }

func TestInventoryDashboardRequiresScope(t *testing.T) {
	store := new(MockStore)
	service := NewService(store, zap.NewNop())

	_, err := service.InventoryDashboard(Scope{})

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindScopeRequired, apperrors.KindOf(err))
	store.AssertNotCalled(t, "InventoryStats", mock.Anything)
}

func TestInventoryDashboardResolvesBusinessToShops(t *testing.T) {
	store := new(MockStore)
	service := NewService(store, zap.NewNop())

	shopIDs := []string{"shop-1", "shop-2"}
	stats := &InventoryStats{TotalItems: 12, TotalQuantity: 340}

	store.On("ShopIDsForBusiness", "biz-1").Return(shopIDs, nil)
	store.On("InventoryStats", shopIDs).Return(stats, nil)
	store.On("MovementTrends", shopIDs, mock.AnythingOfType("time.Time")).Return([]MovementTrend{}, nil)
	store.On("TopSuppliers", shopIDs, uint(topSupplierLimit)).Return([]SupplierRollup{}, nil)
	store.On("TopProducts", shopIDs, uint(topProductLimit)).Return([]ProductRollup{}, nil)

	dashboard, err := service.InventoryDashboard(Scope{BusinessID: strPtr("biz-1")})

	assert.NoError(t, err)
	assert.Equal(t, stats, dashboard.Stats)
	store.AssertExpectations(t)
}

func TestInventoryDashboardKeepsSparseTrends(t *testing.T) {
	store := new(MockStore)
	service := NewService(store, zap.NewNop())

	shopIDs := []string{"shop-1"}
	// Two active days out of seven; the quiet days stay absent.
	trends := []MovementTrend{
		{Period: "2026-08-24", NetChange: 15},
		{Period: "2026-08-28", NetChange: -4},
	}

	store.On("InventoryStats", shopIDs).Return(&InventoryStats{}, nil)
	store.On("MovementTrends", shopIDs, mock.AnythingOfType("time.Time")).Return(trends, nil)
	store.On("TopSuppliers", shopIDs, uint(topSupplierLimit)).Return([]SupplierRollup{}, nil)
	store.On("TopProducts", shopIDs, uint(topProductLimit)).Return([]ProductRollup{}, nil)

	dashboard, err := service.InventoryDashboard(Scope{ShopID: strPtr("shop-1")})

	assert.NoError(t, err)
	assert.Len(t, dashboard.Trends, 2)
	assert.Equal(t, trends, dashboard.Trends)
}

func TestSalesDashboardRejectsUnknownView(t *testing.T) {
	store := new(MockStore)
	service := NewService(store, zap.NewNop())

	_, err := service.SalesDashboard(Scope{ShopID: strPtr("shop-1")}, nil, "quarterly")

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestSalesDashboardDefaultsRangeForMinuteView(t *testing.T) {
	store := new(MockStore)
	service := NewService(store, zap.NewNop())

	shopIDs := []string{"shop-1"}
	store.On("SalesStats", shopIDs, mock.MatchedBy(func(r *DateRange) bool {
		if r == nil {
			return false
		}
		window := r.End.Sub(r.Start)
		return window > 23*time.Hour && window <= 24*time.Hour
	})).Return(&SalesStats{TotalSales: decimal.NewFromInt(100), TotalOrders: 3}, nil)
	store.On("RevenueTrends", shopIDs, mock.Anything, ViewMinutes).Return([]RevenuePoint{}, nil)

	dashboard, err := service.SalesDashboard(Scope{ShopID: strPtr("shop-1")}, nil, ViewMinutes)

	assert.NoError(t, err)
	assert.Equal(t, 3, dashboard.WeeklyStats.TotalItems)
	assert.True(t, dashboard.WeeklyStats.TotalRevenue.Equal(decimal.NewFromInt(100)))
	store.AssertExpectations(t)
}

func TestSalesDashboardDefaultsToDailyView(t *testing.T) {
	store := new(MockStore)
	service := NewService(store, zap.NewNop())

	shopIDs := []string{"shop-1"}
	store.On("SalesStats", shopIDs, (*DateRange)(nil)).Return(&SalesStats{}, nil)
	store.On("RevenueTrends", shopIDs, (*DateRange)(nil), ViewDaily).Return([]RevenuePoint{}, nil)

	_, err := service.SalesDashboard(Scope{ShopID: strPtr("shop-1")}, nil, "")

	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestTopCategoriesPropagatesScopeError(t *testing.T) {
	store := new(MockStore)
	service := NewService(store, zap.NewNop())

	store.On("ShopIDsForBusiness", "biz-missing").Return(nil, apperrors.NotFound("business biz-missing not found"))

	_, err := service.TopCategories(Scope{BusinessID: strPtr("biz-missing")}, nil, ViewDaily)

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
