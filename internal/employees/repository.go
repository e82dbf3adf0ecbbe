package employees

import (
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/shopspring/decimal"

	"github.com/Mbishu2002/newDesk/internal/repository"
	"github.com/Mbishu2002/newDesk/pkg/apperrors"
	"github.com/Mbishu2002/newDesk/pkg/models"
)

type EmployeeRepository interface {
	CreateWithUser(employee models.Employee, user models.User) error
	Get(id string) (*models.Employee, error)
	GetByShops(shopIDs []string) ([]models.Employee, error)
	Update(id string, req UpdateEmployeeRequest) (*models.Employee, error)
	Delete(id string) error
	SalesFor(employeeID string) ([]models.Sale, error)
}

type UpdateEmployeeRequest struct {
	FirstName        *string          `json:"firstName"`
	LastName         *string          `json:"lastName"`
	Phone            *string          `json:"phone"`
	EmploymentStatus *string          `json:"employmentStatus"`
	Salary           *decimal.Decimal `json:"salary"`
	ShopID           *string          `json:"shopId"`
}

type employeeRepositoryImpl struct {
	r *repository.Repository
}

func NewRepository(r *repository.Repository) EmployeeRepository {
	return &employeeRepositoryImpl{r: r}
}

// CreateWithUser persists the login account and the employee record in a
// single transaction. If either insert fails, neither row survives.
func (r *employeeRepositoryImpl) CreateWithUser(employee models.Employee, user models.User) error {
	err := repository.WithTransaction(r.r.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		if _, err := tx.Insert("users").
			Rows(goqu.Record{
				"id":            user.ID,
				"username":      user.Username,
				"email":         user.Email,
				"password_hash": user.PasswordHash,
				"role":          user.Role,
				"shop_id":       user.ShopID,
				"created_at":    user.CreatedAt,
			}).
			Executor().Exec(); err != nil {
			return err
		}

		if _, err := tx.Insert("employees").
			Rows(goqu.Record{
				"id":                employee.ID,
				"first_name":        employee.FirstName,
				"last_name":         employee.LastName,
				"phone":             employee.Phone,
				"status":            employee.Status,
				"hire_date":         employee.HireDate,
				"employment_status": employee.EmploymentStatus,
				"salary":            employee.Salary,
				"user_id":           employee.UserID,
				"shop_id":           employee.ShopID,
				"business_id":       employee.BusinessID,
				"created_at":        employee.CreatedAt,
			}).
			Executor().Exec(); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return apperrors.FromDB(err)
	}

	return nil
}

func (r *employeeRepositoryImpl) Get(id string) (*models.Employee, error) {
	var employee models.Employee
	query := r.r.GoquDBWrapper.
		From("employees").
		Select(employeeColumns()...).
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&employee)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.FromDB(err)
	}
	if !found {
		return nil, nil
	}

	r.attachUser(&employee)
	return &employee, nil
}

func (r *employeeRepositoryImpl) GetByShops(shopIDs []string) ([]models.Employee, error) {
	var employees []models.Employee
	query := r.r.GoquDBWrapper.
		From("employees").
		Select(employeeColumns()...).
		Where(goqu.C("shop_id").In(shopIDs)).
		Order(goqu.I("last_name").Asc(), goqu.I("first_name").Asc())

	if err := query.Executor().ScanStructs(&employees); err != nil {
		return nil, apperrors.FromDB(err)
	}

	for i := range employees {
		r.attachUser(&employees[i])
	}

	return employees, nil
}

func (r *employeeRepositoryImpl) Update(id string, req UpdateEmployeeRequest) (*models.Employee, error) {
	record := goqu.Record{}
	if req.FirstName != nil {
		record["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		record["last_name"] = *req.LastName
	}
	if req.Phone != nil {
		record["phone"] = *req.Phone
	}
	if req.EmploymentStatus != nil {
		record["employment_status"] = *req.EmploymentStatus
	}
	if req.Salary != nil {
		record["salary"] = *req.Salary
	}
	if req.ShopID != nil {
		record["shop_id"] = *req.ShopID
	}
	if len(record) == 0 {
		return nil, apperrors.Validation("no fields to update")
	}

	result, err := r.r.GoquDBWrapper.Update("employees").
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
		return nil, apperrors.NotFound("employee %s not found", id)
	}

	return r.Get(id)
}

// Delete removes the employee and its login account together.
func (r *employeeRepositoryImpl) Delete(id string) error {
	employee, err := r.Get(id)
	if err != nil {
		return err
	}
	if employee == nil {
		return apperrors.NotFound("employee %s not found", id)
	}

	err = repository.WithTransaction(r.r.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		if _, err := tx.Delete("employees").Where(goqu.Ex{"id": id}).Executor().Exec(); err != nil {
			return err
		}
		if _, err := tx.Delete("users").Where(goqu.Ex{"id": employee.UserID}).Executor().Exec(); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return apperrors.FromDB(err)
	}

	return nil
}

func (r *employeeRepositoryImpl) SalesFor(employeeID string) ([]models.Sale, error) {
	var sales []models.Sale
	query := r.r.GoquDBWrapper.
		From("sales").
		Select("id", "shop_id", "employee_id", "net_amount", "total", "created_at").
		Where(goqu.Ex{"employee_id": employeeID}).
		Order(goqu.I("created_at").Desc())

	if err := query.Executor().ScanStructs(&sales); err != nil {
		return nil, apperrors.FromDB(err)
	}

	return sales, nil
}

func (r *employeeRepositoryImpl) attachUser(employee *models.Employee) {
	var user models.User
	found, err := r.r.GoquDBWrapper.
		From("users").
		Select("id", "username", "email", "role", "shop_id", "created_at").
		Where(goqu.Ex{"id": employee.UserID}).
		Executor().ScanStruct(&user)
	if err == nil && found {
		employee.User = &user
	}
}

func employeeColumns() []any {
	return []any{
		"id", "first_name", "last_name", "phone", "status", "hire_date",
		"employment_status", "salary", "user_id", "shop_id", "business_id", "created_at",
	}
}
