package inventory

import (
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"

	"github.com/Mbishu2002/newDesk/internal/repository"
	"github.com/Mbishu2002/newDesk/pkg/apperrors"
	"github.com/Mbishu2002/newDesk/pkg/models"
)

var itemColumns = []any{
	"id", "product_id", "shop_id", "quantity", "unit_cost", "selling_price",
	"total_value", "status", "reorder_point", "created_at", "updated_at",
}

type Repository struct {
	r *repository.Repository
}

func NewRepository(r *repository.Repository) *Repository {
	return &Repository{r: r}
}

func (r *Repository) GetItem(id string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	query := r.r.GoquDBWrapper.
		From("inventory_items").
		Select(itemColumns...).
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&item)
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	if !found {
		return nil, nil
	}

	return &item, nil
}

// ApplyAdjustment writes the recomputed item row and its movement entry
// in one transaction.
func (r *Repository) ApplyAdjustment(item *models.InventoryItem, movement *models.StockMovement) error {
	err := repository.WithTransaction(r.r.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		update := tx.Update("inventory_items").
			Set(goqu.Record{
				"quantity":    item.Quantity,
				"total_value": item.TotalValue,
				"status":      item.Status,
				"updated_at":  item.UpdatedAt,
			}).
			Where(goqu.Ex{"id": item.ID})

		result, err := update.Executor().Exec()
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return sql.ErrNoRows
		}

		insert := tx.Insert("stock_movements").
			Rows(goqu.Record{
				"id":              movement.ID,
				"product_id":      movement.ProductID,
				"inventory_id":    movement.InventoryID,
				"quantity":        movement.Quantity,
				"direction":       movement.Direction,
				"movement_type":   movement.MovementType,
				"reason":          movement.Reason,
				"performed_by_id": movement.PerformedByID,
				"cost_per_unit":   movement.CostPerUnit,
				"total_cost":      movement.TotalCost,
				"system_count":    movement.SystemCount,
				"physical_count":  movement.PhysicalCount,
				"date":            movement.Date,
				"created_at":      movement.CreatedAt,
			})

		_, err = insert.Executor().Exec()
		return err
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("inventory item %s not found", item.ID)
		}
		return apperrors.FromDB(err)
	}

	return nil
}

func (r *Repository) GetByShop(shopID string, page, limit uint) ([]models.InventoryItem, int64, error) {
	count, err := r.r.GoquDBWrapper.
		From("inventory_items").
		Where(goqu.Ex{"shop_id": shopID}).
		Count()
	if err != nil {
		return nil, 0, apperrors.FromDB(err)
	}

	var items []models.InventoryItem
	query := r.r.GoquDBWrapper.
		From("inventory_items").
		Select(itemColumns...).
		Where(goqu.Ex{"shop_id": shopID}).
		Order(goqu.I("updated_at").Desc()).
		Limit(limit).
		Offset((page - 1) * limit)

	if err := query.Executor().ScanStructs(&items); err != nil {
		return nil, 0, apperrors.FromDB(err)
	}

	return items, count, nil
}

func (r *Repository) Delete(id string) error {
	result, err := r.r.GoquDBWrapper.
		Delete("inventory_items").
		Where(goqu.Ex{"id": id}).
		Executor().Exec()
	if err != nil {
		return apperrors.FromDB(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Store(err)
	}
	if affected == 0 {
		return apperrors.NotFound("inventory item %s not found", id)
	}

	return nil
}
