package inventory

import (
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/Mbishu2002/newDesk/internal/repository"
	"github.com/Mbishu2002/newDesk/pkg/apperrors"
	"github.com/Mbishu2002/newDesk/pkg/models"
)

type MovementFilter struct {
	InventoryID string
	ProductID   *string
	StartDate   time.Time
	EndDate     time.Time
	Page        uint
	Limit       uint
}

// MovementRepository reads the append-only stock movement ledger. There
// are deliberately no update or delete queries here.
type MovementRepository struct {
	r *repository.Repository
}

func NewMovementRepository(r *repository.Repository) *MovementRepository {
	return &MovementRepository{r: r}
}

func (r *MovementRepository) movementQuery(filter MovementFilter) *goqu.SelectDataset {
	query := r.r.GoquDBWrapper.
		From("stock_movements").
		Where(goqu.Ex{"inventory_id": filter.InventoryID}).
		Where(goqu.C("date").Gte(filter.StartDate)).
		Where(goqu.C("date").Lte(filter.EndDate))

	if filter.ProductID != nil {
		query = query.Where(goqu.Ex{"product_id": *filter.ProductID})
	}

	return query
}

func (r *MovementRepository) GetAll(filter MovementFilter) ([]models.StockMovement, int64, error) {
	count, err := r.movementQuery(filter).Count()
	if err != nil {
		return nil, 0, apperrors.FromDB(err)
	}

	var movements []models.StockMovement
	query := r.movementQuery(filter).
		Select(
			"id", "product_id", "inventory_id", "quantity", "direction",
			"movement_type", "reason", "performed_by_id", "cost_per_unit",
			"total_cost", "system_count", "physical_count", "date", "created_at",
		).
		Order(goqu.I("date").Desc(), goqu.I("created_at").Desc()).
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit)

	if err := query.Executor().ScanStructs(&movements); err != nil {
		return nil, 0, apperrors.FromDB(err)
	}

	pages := count / int64(filter.Limit)
	if count%int64(filter.Limit) != 0 {
		pages++
	}

	return movements, pages, nil
}
