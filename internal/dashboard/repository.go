package dashboard

import (
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/Mbishu2002/newDesk/internal/repository"
	"github.com/Mbishu2002/newDesk/pkg/apperrors"
)

type Repository struct {
	r *repository.Repository
}

func NewRepository(r *repository.Repository) *Repository {
	return &Repository{r: r}
}

// bucketExpr truncates a timestamp column to the requested granularity.
// Minute buckets are 5-minute intervals; weeks are ISO weeks.
func bucketExpr(column, view string) exp.LiteralExpression {
	switch view {
	case ViewMinutes:
		return goqu.L(fmt.Sprintf(
			"to_char(date_trunc('hour', %s), 'YYYY-MM-DD HH24:') || lpad(((extract(minute from %s)::int / 5) * 5)::text, 2, '0')",
			column, column))
	case ViewHourly:
		return goqu.L(fmt.Sprintf("to_char(%s, 'YYYY-MM-DD HH24')", column))
	case ViewWeekly:
		return goqu.L(fmt.Sprintf("to_char(%s, 'IYYY-IW')", column))
	case ViewMonthly:
		return goqu.L(fmt.Sprintf("to_char(%s, 'YYYY-MM')", column))
	default:
		return goqu.L(fmt.Sprintf("to_char(%s, 'YYYY-MM-DD')", column))
	}
}

func (r *Repository) ShopIDsForBusiness(businessID string) ([]string, error) {
	var shopIDs []string
	query := r.r.GoquDBWrapper.
		From("shops").
		Select("id").
		Where(goqu.Ex{"business_id": businessID})

	if err := query.Executor().ScanVals(&shopIDs); err != nil {
		return nil, apperrors.FromDB(err)
	}

	return shopIDs, nil
}

func (r *Repository) InventoryStats(shopIDs []string) (*InventoryStats, error) {
	stats := &InventoryStats{}
	query := r.r.GoquDBWrapper.
		From("inventory_items").
		Select(
			goqu.L("COALESCE(SUM(quantity), 0)").As("total_quantity"),
			goqu.L("COALESCE(SUM(quantity * unit_cost), 0)").As("total_value"),
			goqu.COUNT("id").As("total_items"),
			goqu.L("COUNT(CASE WHEN quantity <= reorder_point THEN 1 END)").As("low_stock"),
		).
		Where(goqu.C("shop_id").In(shopIDs))

	found, err := query.Executor().ScanStruct(stats)
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	if !found {
		return &InventoryStats{}, nil
	}

	return stats, nil
}

func (r *Repository) MovementTrends(shopIDs []string, since time.Time) ([]MovementTrend, error) {
	var trends []MovementTrend
	query := r.r.GoquDBWrapper.
		From(goqu.T("stock_movements").As("m")).
		Join(
			goqu.T("inventory_items").As("i"),
			goqu.On(goqu.Ex{"i.id": goqu.I("m.inventory_id")}),
		).
		Select(
			bucketExpr("m.created_at", ViewDaily).As("period"),
			goqu.L("SUM(CASE WHEN m.direction = 'inbound' THEN m.quantity ELSE -m.quantity END)").As("net_change"),
		).
		Where(goqu.I("i.shop_id").In(shopIDs)).
		Where(goqu.I("m.created_at").Gte(since)).
		GroupBy(bucketExpr("m.created_at", ViewDaily)).
		Order(goqu.L("period").Asc())

	if err := query.Executor().ScanStructs(&trends); err != nil {
		return nil, apperrors.FromDB(err)
	}

	return trends, nil
}

func (r *Repository) TopSuppliers(shopIDs []string, limit uint) ([]SupplierRollup, error) {
	var suppliers []SupplierRollup
	query := r.r.GoquDBWrapper.
		From(goqu.T("suppliers").As("s")).
		Join(
			goqu.T("product_suppliers").As("ps"),
			goqu.On(goqu.Ex{"ps.supplier_id": goqu.I("s.id")}),
		).
		Join(
			goqu.T("products").As("p"),
			goqu.On(goqu.Ex{"p.id": goqu.I("ps.product_id")}),
		).
		Select(
			goqu.I("s.name").As("name"),
			goqu.COUNT(goqu.I("p.id")).As("items"),
			goqu.L("COALESCE(SUM(p.quantity * p.purchase_price), 0)").As("value"),
		).
		Where(goqu.I("p.shop_id").In(shopIDs)).
		GroupBy(goqu.I("s.id"), goqu.I("s.name")).
		Order(goqu.L("value").Desc(), goqu.I("s.name").Asc()).
		Limit(limit)

	if err := query.Executor().ScanStructs(&suppliers); err != nil {
		return nil, apperrors.FromDB(err)
	}

	return suppliers, nil
}

func (r *Repository) TopProducts(shopIDs []string, limit uint) ([]ProductRollup, error) {
	var products []ProductRollup
	query := r.r.GoquDBWrapper.
		From(goqu.T("products").As("p")).
		Join(
			goqu.T("inventory_items").As("i"),
			goqu.On(goqu.Ex{"i.product_id": goqu.I("p.id")}),
		).
		Select(
			goqu.I("p.name").As("name"),
			goqu.I("p.sku").As("sku"),
			goqu.L("COALESCE(SUM(i.quantity), 0)").As("in_stock"),
			goqu.L("COALESCE(SUM(i.quantity * i.selling_price), 0)").As("value"),
		).
		Where(goqu.I("p.shop_id").In(shopIDs)).
		GroupBy(goqu.I("p.id"), goqu.I("p.name"), goqu.I("p.sku")).
		Order(goqu.L("value").Desc(), goqu.I("p.name").Asc()).
		Limit(limit)

	if err := query.Executor().ScanStructs(&products); err != nil {
		return nil, apperrors.FromDB(err)
	}

	return products, nil
}

func (r *Repository) SalesStats(shopIDs []string, dateRange *DateRange) (*SalesStats, error) {
	query := r.r.GoquDBWrapper.
		From("sales").
		Select(
			goqu.L("COALESCE(SUM(net_amount), 0)").As("total_sales"),
			goqu.L("COUNT(DISTINCT id)").As("total_orders"),
		).
		Where(goqu.C("shop_id").In(shopIDs))

	if dateRange != nil {
		query = query.Where(goqu.C("created_at").Between(goqu.Range(dateRange.Start, dateRange.End)))
	}

	stats := &SalesStats{}
	found, err := query.Executor().ScanStruct(stats)
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	if !found {
		return &SalesStats{}, nil
	}

	return stats, nil
}

func (r *Repository) RevenueTrends(shopIDs []string, dateRange *DateRange, view string) ([]RevenuePoint, error) {
	var points []RevenuePoint
	query := r.r.GoquDBWrapper.
		From("sales").
		Select(
			bucketExpr("created_at", view).As("period"),
			goqu.L("COALESCE(SUM(net_amount), 0)").As("income"),
		).
		Where(goqu.C("shop_id").In(shopIDs)).
		GroupBy(bucketExpr("created_at", view)).
		Order(goqu.L("period").Asc())

	if dateRange != nil {
		query = query.Where(goqu.C("created_at").Between(goqu.Range(dateRange.Start, dateRange.End)))
	}

	if err := query.Executor().ScanStructs(&points); err != nil {
		return nil, apperrors.FromDB(err)
	}

	return points, nil
}

func (r *Repository) TopCategories(shopIDs []string, dateRange *DateRange, view string, limit uint) ([]CategoryRollup, error) {
	var categories []CategoryRollup
	query := r.r.GoquDBWrapper.
		From(goqu.T("categories").As("c")).
		Join(
			goqu.T("products").As("p"),
			goqu.On(goqu.Ex{"p.category_id": goqu.I("c.id")}),
		).
		Select(
			goqu.I("c.id").As("id"),
			goqu.I("c.name").As("name"),
			bucketExpr("p.created_at", view).As("period"),
			goqu.COUNT(goqu.I("p.id")).As("product_count"),
			goqu.L("COALESCE(SUM(p.quantity), 0)").As("total_items"),
			goqu.L("COALESCE(SUM(p.quantity * p.selling_price), 0)").As("total_value"),
		).
		Where(goqu.I("p.shop_id").In(shopIDs)).
		GroupBy(goqu.I("c.id"), goqu.I("c.name"), bucketExpr("p.created_at", view)).
		Order(goqu.L("total_value").Desc(), goqu.I("c.name").Asc()).
		Limit(limit)

	if dateRange != nil {
		query = query.Where(goqu.I("p.created_at").Between(goqu.Range(dateRange.Start, dateRange.End)))
	}

	if err := query.Executor().ScanStructs(&categories); err != nil {
		return nil, apperrors.FromDB(err)
	}

	return categories, nil
}
