package dashboard

import (
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Mbishu2002/newDesk/pkg/apperrors"
)

// Supported bucket granularities for time-grouped rollups.
const (
	ViewMinutes = "minutes"
	ViewHourly  = "hourly"
	ViewDaily   = "daily"
	ViewWeekly  = "weekly"
	ViewMonthly = "monthly"
)

const (
	topSupplierLimit = 5
	topProductLimit  = 4
	topCategoryLimit = 5
)

type Scope struct {
	BusinessID *string `json:"businessId"`
	ShopID     *string `json:"shopId"`
}

type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type InventoryStats struct {
	TotalQuantity int             `json:"totalQuantity" db:"total_quantity"`
	TotalValue    decimal.Decimal `json:"totalValue" db:"total_value"`
	TotalItems    int             `json:"totalItems" db:"total_items"`
	LowStock      int             `json:"lowStock" db:"low_stock"`
}

// MovementTrend is the net quantity change (inbound minus outbound) of one
// bucket. Buckets with no movements are absent, never zero-filled.
type MovementTrend struct {
	Period    string `json:"period" db:"period"`
	NetChange int    `json:"netChange" db:"net_change"`
}

type SupplierRollup struct {
	Name  string          `json:"name" db:"name"`
	Items int             `json:"items" db:"items"`
	Value decimal.Decimal `json:"value" db:"value"`
}

type ProductRollup struct {
	Name    string          `json:"name" db:"name"`
	SKU     string          `json:"sku" db:"sku"`
	InStock int             `json:"inStock" db:"in_stock"`
	Value   decimal.Decimal `json:"value" db:"value"`
}

type CategoryRollup struct {
	ID           string          `json:"id" db:"id"`
	Name         string          `json:"name" db:"name"`
	Period       string          `json:"period" db:"period"`
	ProductCount int             `json:"productCount" db:"product_count"`
	TotalItems   int             `json:"totalItems" db:"total_items"`
	TotalValue   decimal.Decimal `json:"totalValue" db:"total_value"`
}

type SalesStats struct {
	TotalSales  decimal.Decimal `json:"totalSales" db:"total_sales"`
	TotalOrders int             `json:"totalOrders" db:"total_orders"`
}

type RevenuePoint struct {
	Period string          `json:"period" db:"period"`
	Income decimal.Decimal `json:"income" db:"income"`
}

// Store is the read surface the aggregation engine runs on. Every call
// recomputes from the record store; there is no caching layer.
type Store interface {
	ShopIDsForBusiness(businessID string) ([]string, error)
	InventoryStats(shopIDs []string) (*InventoryStats, error)
	MovementTrends(shopIDs []string, since time.Time) ([]MovementTrend, error)
	TopSuppliers(shopIDs []string, limit uint) ([]SupplierRollup, error)
	TopProducts(shopIDs []string, limit uint) ([]ProductRollup, error)
	SalesStats(shopIDs []string, dateRange *DateRange) (*SalesStats, error)
	RevenueTrends(shopIDs []string, dateRange *DateRange, view string) ([]RevenuePoint, error)
	TopCategories(shopIDs []string, dateRange *DateRange, view string, limit uint) ([]CategoryRollup, error)
}

type Service struct {
	store Store
	log   *zap.Logger
}

func NewService(store Store, log *zap.Logger) *Service {
	return &Service{store: store, log: log}
}

// resolveScope narrows a request to a concrete set of shop ids: the given
// shop, or every shop under the given business. Exactly one of the two
// must be present.
func (s *Service) resolveScope(scope Scope) ([]string, error) {
	if scope.ShopID != nil && *scope.ShopID != "" {
		return []string{*scope.ShopID}, nil
	}
	if scope.BusinessID != nil && *scope.BusinessID != "" {
		shopIDs, err := s.store.ShopIDsForBusiness(*scope.BusinessID)
		if err != nil {
			return nil, err
		}
		return shopIDs, nil
	}
	return nil, apperrors.ScopeRequired("either shopId or businessId is required")
}

type InventoryDashboard struct {
	Stats        *InventoryStats  `json:"stats"`
	Trends       []MovementTrend  `json:"trends"`
	TopSuppliers []SupplierRollup `json:"topSuppliers"`
	TopProducts  []ProductRollup  `json:"topProducts"`
}

func (s *Service) InventoryDashboard(scope Scope) (*InventoryDashboard, error) {
	shopIDs, err := s.resolveScope(scope)
	if err != nil {
		return nil, err
	}

	stats, err := s.store.InventoryStats(shopIDs)
	if err != nil {
		return nil, err
	}

	trends, err := s.store.MovementTrends(shopIDs, time.Now().AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}

	suppliers, err := s.store.TopSuppliers(shopIDs, topSupplierLimit)
	if err != nil {
		return nil, err
	}

	products, err := s.store.TopProducts(shopIDs, topProductLimit)
	if err != nil {
		return nil, err
	}

	return &InventoryDashboard{
		Stats:        stats,
		Trends:       trends,
		TopSuppliers: suppliers,
		TopProducts:  products,
	}, nil
}

type SalesDashboard struct {
	WeeklyStats struct {
		TotalItems   int             `json:"totalItems"`
		TotalRevenue decimal.Decimal `json:"totalRevenue"`
	} `json:"weeklyStats"`
	Trends []RevenuePoint `json:"trends"`
}

func (s *Service) SalesDashboard(scope Scope, dateRange *DateRange, view string) (*SalesDashboard, error) {
	shopIDs, err := s.resolveScope(scope)
	if err != nil {
		return nil, err
	}

	view, err = normalizeView(view)
	if err != nil {
		return nil, err
	}

	// Minute and hour views without an explicit range default to the
	// last 24 hours.
	if dateRange == nil && (view == ViewMinutes || view == ViewHourly) {
		end := time.Now()
		dateRange = &DateRange{Start: end.Add(-24 * time.Hour), End: end}
	}

	stats, err := s.store.SalesStats(shopIDs, dateRange)
	if err != nil {
		return nil, err
	}

	trends, err := s.store.RevenueTrends(shopIDs, dateRange, view)
	if err != nil {
		return nil, err
	}

	dashboard := &SalesDashboard{Trends: trends}
	dashboard.WeeklyStats.TotalItems = stats.TotalOrders
	dashboard.WeeklyStats.TotalRevenue = stats.TotalSales
	return dashboard, nil
}

func (s *Service) TopCategories(scope Scope, dateRange *DateRange, view string) ([]CategoryRollup, error) {
	shopIDs, err := s.resolveScope(scope)
	if err != nil {
		return nil, err
	}

	view, err = normalizeView(view)
	if err != nil {
		return nil, err
	}

	return s.store.TopCategories(shopIDs, dateRange, view, topCategoryLimit)
}

func normalizeView(view string) (string, error) {
	switch view {
	case "":
		return ViewDaily, nil
	case ViewMinutes, ViewHourly, ViewDaily, ViewWeekly, ViewMonthly:
		return view, nil
	default:
		return "", apperrors.Validation("unknown view %q", view)
	}
}
