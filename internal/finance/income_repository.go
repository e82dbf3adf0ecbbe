package finance

import (
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Mbishu2002/newDesk/internal/repository"
	"github.com/Mbishu2002/newDesk/pkg/apperrors"
	"github.com/Mbishu2002/newDesk/pkg/models"
)

type IncomeRepository interface {
	Create(req CreateIncomeRequest) (*models.Income, error)
	GetAll(filter IncomeFilter) ([]models.Income, error)
	Update(id string, req UpdateIncomeRequest) (*models.Income, error)
	Delete(id string) error
}

type CreateIncomeRequest struct {
	Date          time.Time       `json:"date" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod string          `json:"paymentMethod" binding:"required"`
	OhadaCodeID   string          `json:"ohadaCodeId" binding:"required"`
	ShopID        *string         `json:"shopId"`
}

type UpdateIncomeRequest struct {
	Date          *time.Time       `json:"date"`
	Description   *string          `json:"description"`
	Amount        *decimal.Decimal `json:"amount"`
	PaymentMethod *string          `json:"paymentMethod"`
	OhadaCodeID   *string          `json:"ohadaCodeId"`
	ShopID        *string          `json:"shopId"`
}

type IncomeFilter struct {
	ShopID  *string
	ShopIDs []string
}

type incomeRepositoryImpl struct {
	r *repository.Repository
}

func NewIncomeRepository(r *repository.Repository) IncomeRepository {
	return &incomeRepositoryImpl{r: r}
}

func (r *incomeRepositoryImpl) Create(req CreateIncomeRequest) (*models.Income, error) {
	income := models.Income{
		ID:            uuid.NewString(),
		Date:          req.Date,
		Description:   req.Description,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		OhadaCodeID:   req.OhadaCodeID,
		ShopID:        req.ShopID,
		CreatedAt:     time.Now(),
	}

	query := r.r.GoquDBWrapper.Insert("incomes").
		Rows(goqu.Record{
			"id":             income.ID,
			"date":           income.Date,
			"description":    income.Description,
			"amount":         income.Amount,
			"payment_method": income.PaymentMethod,
			"ohada_code_id":  income.OhadaCodeID,
			"shop_id":        income.ShopID,
			"created_at":     income.CreatedAt,
		})

	if _, err := query.Executor().Exec(); err != nil {
		return nil, apperrors.FromDB(err)
	}

	return &income, nil
}

func (r *incomeRepositoryImpl) GetAll(filter IncomeFilter) ([]models.Income, error) {
	query := r.r.GoquDBWrapper.
		From(goqu.T("incomes").As("i")).
		LeftJoin(
			goqu.T("ohada_codes").As("o"),
			goqu.On(goqu.Ex{"o.id": goqu.I("i.ohada_code_id")}),
		).
		Select(
			goqu.I("i.id").As("id"),
			goqu.I("i.date").As("date"),
			goqu.I("i.description").As("description"),
			goqu.I("i.amount").As("amount"),
			goqu.I("i.payment_method").As("payment_method"),
			goqu.I("i.ohada_code_id").As("ohada_code_id"),
			goqu.I("i.shop_id").As("shop_id"),
			goqu.I("i.created_at").As("created_at"),
			goqu.I("o.code").As("ohada_code"),
			goqu.I("o.name").As("ohada_name"),
		).
		Order(goqu.I("i.date").Desc())

	if filter.ShopID != nil {
		query = query.Where(goqu.Ex{"i.shop_id": *filter.ShopID})
	} else if len(filter.ShopIDs) > 0 {
		query = query.Where(goqu.I("i.shop_id").In(filter.ShopIDs))
	}

	rows, err := query.Executor().Query()
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	defer rows.Close()

	var incomes []models.Income
	for rows.Next() {
		var income models.Income
		var code, name sql.NullString
		if err := rows.Scan(
			&income.ID, &income.Date, &income.Description, &income.Amount,
			&income.PaymentMethod, &income.OhadaCodeID, &income.ShopID,
			&income.CreatedAt, &code, &name,
		); err != nil {
			return nil, apperrors.Store(err)
		}
		if code.Valid {
			income.OhadaCode = &models.OhadaCode{
				ID:   income.OhadaCodeID,
				Code: code.String,
				Name: name.String,
			}
		}
		incomes = append(incomes, income)
	}

	return incomes, nil
}

func (r *incomeRepositoryImpl) Update(id string, req UpdateIncomeRequest) (*models.Income, error) {
	record := goqu.Record{}
	if req.Date != nil {
		record["date"] = *req.Date
	}
	if req.Description != nil {
		record["description"] = *req.Description
	}
	if req.Amount != nil {
		record["amount"] = *req.Amount
	}
	if req.PaymentMethod != nil {
		record["payment_method"] = *req.PaymentMethod
	}
	if req.OhadaCodeID != nil {
		record["ohada_code_id"] = *req.OhadaCodeID
	}
	if req.ShopID != nil {
		record["shop_id"] = *req.ShopID
	}
	if len(record) == 0 {
		return nil, apperrors.Validation("no fields to update")
	}

	result, err := r.r.GoquDBWrapper.Update("incomes").
		Set(record).
		Where(goqu.Ex{"id": id}).
		Executor().Exec()
	if err != nil {
		return nil, apperrors.FromDB(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, apperrors.Store(err)
	}
	if affected == 0 {
		return nil, apperrors.NotFound("income entry %s not found", id)
	}

	var income models.Income
	found, err := r.r.GoquDBWrapper.
		From("incomes").
		Select("id", "date", "description", "amount", "payment_method", "ohada_code_id", "shop_id", "created_at").
		Where(goqu.Ex{"id": id}).
		Executor().ScanStruct(&income)
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	if !found {
		return nil, apperrors.NotFound("income entry %s not found", id)
	}

	return &income, nil
}

func (r *incomeRepositoryImpl) Delete(id string) error {
	result, err := r.r.GoquDBWrapper.
		Delete("incomes").
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
		return apperrors.NotFound("income entry %s not found", id)
	}

	return nil
}
