package finance

import (
	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/Mbishu2002/newDesk/internal/repository"
	"github.com/Mbishu2002/newDesk/pkg/apperrors"
	"github.com/Mbishu2002/newDesk/pkg/models"
)

type OhadaCodeRepository interface {
	GetByType(codeType string) ([]models.OhadaCode, error)
	CreateCustom(req CreateOhadaCodeRequest) (*models.OhadaCode, error)
}

type CreateOhadaCodeRequest struct {
	Code        string  `json:"code" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Type        string  `json:"type" binding:"required"`
}

type ohadaCodeRepositoryImpl struct {
	r *repository.Repository
}

func NewOhadaCodeRepository(r *repository.Repository) OhadaCodeRepository {
	return &ohadaCodeRepositoryImpl{r: r}
}

func (r *ohadaCodeRepositoryImpl) GetByType(codeType string) ([]models.OhadaCode, error) {
	var codes []models.OhadaCode
	query := r.r.GoquDBWrapper.
		From("ohada_codes").
		Select("id", "code", "name", "description", "type", "classification").
		Where(goqu.Ex{"type": codeType}).
		Order(goqu.I("code").Asc())

	if err := query.Executor().ScanStructs(&codes); err != nil {
		return nil, apperrors.FromDB(err)
	}

	return codes, nil
}

// CreateCustom registers a user-defined classification code. Standard
// codes come from the migration seed and are never created here.
func (r *ohadaCodeRepositoryImpl) CreateCustom(req CreateOhadaCodeRequest) (*models.OhadaCode, error) {
	if req.Type != models.OhadaTypeIncome && req.Type != models.OhadaTypeExpense {
		return nil, apperrors.Validation("type must be income or expense")
	}

	code := models.OhadaCode{
		ID:             uuid.NewString(),
		Code:           req.Code,
		Name:           req.Name,
		Description:    req.Description,
		Type:           req.Type,
		Classification: models.OhadaClassCustom,
	}

	query := r.r.GoquDBWrapper.Insert("ohada_codes").
		Rows(goqu.Record{
			"id":             code.ID,
			"code":           code.Code,
			"name":           code.Name,
			"description":    code.Description,
			"type":           code.Type,
			"classification": code.Classification,
		})

	if _, err := query.Executor().Exec(); err != nil {
		return nil, apperrors.FromDB(err)
	}

	return &code, nil
}
