package reports

import (
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/shopspring/decimal"

	"github.com/Mbishu2002/newDesk/internal/repository"
	"github.com/Mbishu2002/newDesk/pkg/apperrors"
	"github.com/Mbishu2002/newDesk/pkg/models"
)

// Row is one printed line of a report. Date stays empty for the stock
// snapshots, which have no time axis.
type Row struct {
	Date       string          `db:"date"`
	Product    string          `db:"product"`
	Quantity   int             `db:"quantity"`
	UnitPrice  decimal.Decimal `db:"unit_price"`
	TotalValue decimal.Decimal `db:"total_value"`
}

type ReportStore interface {
	SalesRows(shopIDs []string, start, end time.Time) ([]Row, error)
	AddedStockRows(shopIDs []string, start, end time.Time) ([]Row, error)
	CurrentStockRows(shopIDs []string) ([]Row, error)
	LowStockRows(shopIDs []string) ([]Row, error)
	ShopIDsForBusiness(businessID string) ([]string, error)
}

type reportStoreImpl struct {
	r *repository.Repository
}

func NewStore(r *repository.Repository) ReportStore {
	return &reportStoreImpl{r: r}
}

func (r *reportStoreImpl) ShopIDsForBusiness(businessID string) ([]string, error) {
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

// SalesRows lists outbound sale movements in the window, one line per
// movement.
func (r *reportStoreImpl) SalesRows(shopIDs []string, start, end time.Time) ([]Row, error) {
	return r.movementRows(shopIDs, models.MovementSold, start, end)
}

func (r *reportStoreImpl) AddedStockRows(shopIDs []string, start, end time.Time) ([]Row, error) {
	return r.movementRows(shopIDs, models.MovementAdded, start, end)
}

func (r *reportStoreImpl) movementRows(shopIDs []string, movementType string, start, end time.Time) ([]Row, error) {
	var rows []Row
	query := r.r.GoquDBWrapper.
		From(goqu.T("stock_movements").As("m")).
		Join(
			goqu.T("inventory_items").As("i"),
			goqu.On(goqu.Ex{"i.id": goqu.I("m.inventory_id")}),
		).
		Join(
			goqu.T("products").As("p"),
			goqu.On(goqu.Ex{"p.id": goqu.I("i.product_id")}),
		).
		Select(
			goqu.L("to_char(m.created_at, 'YYYY-MM-DD')").As("date"),
			goqu.I("p.name").As("product"),
			goqu.I("m.quantity").As("quantity"),
			goqu.I("m.cost_per_unit").As("unit_price"),
			goqu.I("m.total_cost").As("total_value"),
		).
		Where(
			goqu.I("i.shop_id").In(shopIDs),
			goqu.I("m.movement_type").Eq(movementType),
			goqu.I("m.created_at").Between(goqu.Range(start, end)),
		).
		Order(goqu.I("m.created_at").Asc())

	if err := query.Executor().ScanStructs(&rows); err != nil {
		return nil, apperrors.FromDB(err)
	}

	return rows, nil
}

func (r *reportStoreImpl) CurrentStockRows(shopIDs []string) ([]Row, error) {
	return r.stockRows(shopIDs, false)
}

func (r *reportStoreImpl) LowStockRows(shopIDs []string) ([]Row, error) {
	return r.stockRows(shopIDs, true)
}

func (r *reportStoreImpl) stockRows(shopIDs []string, lowOnly bool) ([]Row, error) {
	var rows []Row
	query := r.r.GoquDBWrapper.
		From(goqu.T("inventory_items").As("i")).
		Join(
			goqu.T("products").As("p"),
			goqu.On(goqu.Ex{"p.id": goqu.I("i.product_id")}),
		).
		Select(
			goqu.L("''").As("date"),
			goqu.I("p.name").As("product"),
			goqu.I("i.quantity").As("quantity"),
			goqu.I("i.unit_cost").As("unit_price"),
			goqu.I("i.total_value").As("total_value"),
		).
		Where(goqu.I("i.shop_id").In(shopIDs)).
		Order(goqu.I("p.name").Asc())

	if lowOnly {
		query = query.Where(goqu.L("i.quantity <= i.reorder_point"))
	}

	if err := query.Executor().ScanStructs(&rows); err != nil {
		return nil, apperrors.FromDB(err)
	}

	return rows, nil
}
