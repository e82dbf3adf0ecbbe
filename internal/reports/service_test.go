package reports

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/Mbishu2002/newDesk/pkg/apperrors"
)

type MockReportStore struct {
	mock.Mock
}

func (m *MockReportStore) SalesRows(shopIDs []string, start, end time.Time) ([]Row, error) {
	args := m.Called(shopIDs, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Row), args.Error(1)
}

func (m *MockReportStore) AddedStockRows(shopIDs []string, start, end time.Time) ([]Row, error) {
	args := m.Called(shopIDs, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Row), args.Error(1)
}

func (m *MockReportStore) CurrentStockRows(shopIDs []string) ([]Row, error) {
	args := m.Called(shopIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Row), args.Error(1)
}

func (m *MockReportStore) LowStockRows(shopIDs []string) ([]Row, error) {
	args := m.Called(shopIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Row), args.Error(1)
}

func (m *MockReportStore) ShopIDsForBusiness(businessID string) ([]string, error) {
	args := m.Called(businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func shopScope() Request {
	shopID := "shop-1"
	return Request{ShopID: &shopID}
}

func TestGenerateRequiresScope(t *testing.T) {
	service := NewService(new(MockReportStore), zap.NewNop())

	_, err := service.Generate(Request{ReportType: TypeCurrentStock})

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindScopeRequired, apperrors.KindOf(err))
}

func TestGenerateRejectsUnknownType(t *testing.T) {
	service := NewService(new(MockReportStore), zap.NewNop())

	req := shopScope()
	req.ReportType = "yearly-summary"

	_, err := service.Generate(req)

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestSalesReportRequiresDateRange(t *testing.T) {
	store := new(MockReportStore)
	service := NewService(store, zap.NewNop())

	req := shopScope()
	req.ReportType = TypeSales

	_, err := service.Generate(req)

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	store.AssertNotCalled(t, "SalesRows", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateRendersPDF(t *testing.T) {
	store := new(MockReportStore)
	service := NewService(store, zap.NewNop())

	rows := []Row{
		{Product: "Sacks of rice", Quantity: 40, UnitPrice: decimal.NewFromInt(25), TotalValue: decimal.NewFromInt(1000)},
		{Product: "Cooking oil", Quantity: 8, UnitPrice: decimal.NewFromInt(12), TotalValue: decimal.NewFromInt(96)},
	}
	store.On("CurrentStockRows", []string{"shop-1"}).Return(rows, nil)

	req := shopScope()
	req.ReportType = TypeCurrentStock

	pdf, err := service.Generate(req)

	assert.NoError(t, err)
	assert.True(t, len(pdf) > 0)
	assert.Equal(t, "%PDF", string(pdf[:4]))
	store.AssertExpectations(t)
}

func TestGenerateResolvesBusinessScope(t *testing.T) {
	store := new(MockReportStore)
	service := NewService(store, zap.NewNop())

	businessID := "biz-1"
	store.On("ShopIDsForBusiness", businessID).Return([]string{"shop-1", "shop-2"}, nil)
	store.On("LowStockRows", []string{"shop-1", "shop-2"}).Return([]Row{}, nil)

	req := Request{ReportType: TypeLowStock, BusinessID: &businessID}

	_, err := service.Generate(req)

	assert.NoError(t, err)
	store.AssertExpectations(t)
}
