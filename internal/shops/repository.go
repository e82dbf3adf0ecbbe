package shops

import (
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/Mbishu2002/newDesk/internal/repository"
	"github.com/Mbishu2002/newDesk/pkg/apperrors"
	"github.com/Mbishu2002/newDesk/pkg/models"
)

type ShopRepository struct {
	Repository *repository.Repository
}

func NewShopRepository(r *repository.Repository) *ShopRepository {
	return &ShopRepository{Repository: r}
}

type CreateShopRequest struct {
	Name       string  `json:"name" binding:"required"`
	BusinessID string  `json:"businessId" binding:"required"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	Country    *string `json:"country"`
}

type UpdateShopRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	Country *string `json:"country"`
}

func (r *ShopRepository) GetShops(businessID string) ([]models.Shop, error) {
	shops := []models.Shop{}
	query := r.Repository.GoquDBWrapper.
		Select("id", "name", "business_id", "address", "city", "country", "created_at").
		From("shops").
		Where(goqu.Ex{"business_id": businessID}).
		Order(goqu.I("name").Asc())

	if err := query.Executor().ScanStructs(&shops); err != nil {
		return nil, apperrors.FromDB(err)
	}

	return shops, nil
}

func (r *ShopRepository) GetShop(id string) (*models.Shop, error) {
	var shop models.Shop
	query := r.Repository.GoquDBWrapper.
		Select("id", "name", "business_id", "address", "city", "country", "created_at").
		From("shops").
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&shop)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.FromDB(err)
	}
	if !found {
		return nil, nil
	}

	return &shop, nil
}

func (r *ShopRepository) PersistShop(req CreateShopRequest) (*models.Shop, error) {
	shop := models.Shop{
		ID:         uuid.NewString(),
		Name:       req.Name,
		BusinessID: req.BusinessID,
		Address:    req.Address,
		City:       req.City,
		Country:    req.Country,
		CreatedAt:  time.Now(),
	}

	query := r.Repository.GoquDBWrapper.Insert("shops").
		Rows(goqu.Record{
			"id":          shop.ID,
			"name":        shop.Name,
			"business_id": shop.BusinessID,
			"address":     shop.Address,
			"city":        shop.City,
			"country":     shop.Country,
			"created_at":  shop.CreatedAt,
		})

	if _, err := query.Executor().Exec(); err != nil {
		return nil, apperrors.FromDB(err)
	}

	return &shop, nil
}

func (r *ShopRepository) UpdateShop(id string, req UpdateShopRequest) (*models.Shop, error) {
	record := goqu.Record{}
	if req.Name != nil {
		record["name"] = *req.Name
	}
	if req.Address != nil {
		record["address"] = *req.Address
	}
	if req.City != nil {
		record["city"] = *req.City
	}
	if req.Country != nil {
		record["country"] = *req.Country
	}
	if len(record) == 0 {
		return nil, apperrors.Validation("no fields to update")
	}

	result, err := r.Repository.GoquDBWrapper.
		Update("shops").
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
		return nil, apperrors.NotFound("shop %s not found", id)
	}

	return r.GetShop(id)
}

// RemoveShop deletes an empty shop. Foreign key references from
// inventory or employees surface as Conflict via FromDB.
func (r *ShopRepository) RemoveShop(id string) error {
	result, err := r.Repository.GoquDBWrapper.
		Delete("shops").
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
		return apperrors.NotFound("shop %s not found", id)
	}

	return nil
}

type CreateBusinessRequest struct {
	FullBusinessName string  `json:"fullBusinessName" binding:"required"`
	BusinessType     *string `json:"businessType"`
	OwnerID          string  `json:"ownerId" binding:"required"`
}

func (r *ShopRepository) PersistBusiness(req CreateBusinessRequest) (*models.Business, error) {
	business := models.Business{
		ID:               uuid.NewString(),
		FullBusinessName: req.FullBusinessName,
		BusinessType:     req.BusinessType,
		OwnerID:          req.OwnerID,
		CreatedAt:        time.Now(),
	}

	query := r.Repository.GoquDBWrapper.Insert("businesses").
		Rows(goqu.Record{
			"id":                 business.ID,
			"full_business_name": business.FullBusinessName,
			"business_type":      business.BusinessType,
			"owner_id":           business.OwnerID,
			"created_at":         business.CreatedAt,
		})

	if _, err := query.Executor().Exec(); err != nil {
		return nil, apperrors.FromDB(err)
	}

	return &business, nil
}

func (r *ShopRepository) GetBusinessByOwner(ownerID string) (*models.Business, error) {
	var business models.Business
	query := r.Repository.GoquDBWrapper.
		Select("id", "full_business_name", "business_type", "owner_id", "created_at").
		From("businesses").
		Where(goqu.Ex{"owner_id": ownerID})

	found, err := query.Executor().ScanStruct(&business)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.FromDB(err)
	}
	if !found {
		return nil, nil
	}

	return &business, nil
}
