package products

import (
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Mbishu2002/newDesk/internal/repository"
	"github.com/Mbishu2002/newDesk/pkg/apperrors"
	"github.com/Mbishu2002/newDesk/pkg/models"
)

var productColumns = []any{
	"id", "name", "sku", "description", "category_id", "shop_id", "business_id",
	"selling_price", "purchase_price", "quantity", "reorder_point", "status",
	"unit_type", "featured_image", "created_at", "updated_at",
}

type ProductRepository interface {
	Create(req CreateProductRequest) (*models.Product, error)
	Get(id string) (*models.Product, error)
	GetAll(shopIDs []string) ([]models.Product, error)
	GetByCategory(categoryID, shopID string) ([]models.Product, error)
	Update(id string, updates UpdateProductRequest) (*models.Product, error)
	Delete(id string) error
}

type CreateProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	SKU           string          `json:"sku" binding:"required"`
	Description   *string         `json:"description"`
	CategoryID    *string         `json:"categoryId"`
	ShopID        string          `json:"shopId" binding:"required"`
	BusinessID    string          `json:"businessId" binding:"required"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	Quantity      int             `json:"quantity"`
	ReorderPoint  int             `json:"reorderPoint"`
	UnitType      *string         `json:"unitType"`
	FeaturedImage *string         `json:"featuredImage"`
}

type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	CategoryID    *string          `json:"categoryId"`
	SellingPrice  *decimal.Decimal `json:"sellingPrice"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice"`
	Quantity      *int             `json:"quantity"`
	ReorderPoint  *int             `json:"reorderPoint"`
	UnitType      *string          `json:"unitType"`
	FeaturedImage *string          `json:"featuredImage"`
}

type productRepositoryImpl struct {
	r *repository.Repository
}

func NewRepository(r *repository.Repository) ProductRepository {
	return &productRepositoryImpl{r: r}
}

func (r *productRepositoryImpl) Create(req CreateProductRequest) (*models.Product, error) {
	now := time.Now()
	product := models.Product{
		ID:            uuid.NewString(),
		Name:          req.Name,
		SKU:           req.SKU,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		ShopID:        req.ShopID,
		BusinessID:    req.BusinessID,
		SellingPrice:  req.SellingPrice,
		PurchasePrice: req.PurchasePrice,
		Quantity:      req.Quantity,
		ReorderPoint:  req.ReorderPoint,
		Status:        models.StockStatus(req.Quantity, req.ReorderPoint),
		UnitType:      req.UnitType,
		FeaturedImage: req.FeaturedImage,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	query := r.r.GoquDBWrapper.Insert("products").
		Rows(goqu.Record{
			"id":             product.ID,
			"name":           product.Name,
			"sku":            product.SKU,
			"description":    product.Description,
			"category_id":    product.CategoryID,
			"shop_id":        product.ShopID,
			"business_id":    product.BusinessID,
			"selling_price":  product.SellingPrice,
			"purchase_price": product.PurchasePrice,
			"quantity":       product.Quantity,
			"reorder_point":  product.ReorderPoint,
			"status":         product.Status,
			"unit_type":      product.UnitType,
			"featured_image": product.FeaturedImage,
			"created_at":     product.CreatedAt,
			"updated_at":     product.UpdatedAt,
		})

	if _, err := query.Executor().Exec(); err != nil {
		return nil, apperrors.FromDB(err)
	}

	return &product, nil
}

func (r *productRepositoryImpl) Get(id string) (*models.Product, error) {
	var product models.Product
	query := r.r.GoquDBWrapper.
		From("products").
		Select(productColumns...).
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&product)
	if err != nil {
		return nil, apperrors.FromDB(err)
	}
	if !found {
		return nil, apperrors.NotFound("product %s not found", id)
	}

	r.attachCategory(&product)
	return &product, nil
}

func (r *productRepositoryImpl) GetAll(shopIDs []string) ([]models.Product, error) {
	var products []models.Product
	query := r.r.GoquDBWrapper.
		From("products").
		Select(productColumns...).
		Where(goqu.C("shop_id").In(shopIDs)).
		Order(goqu.I("created_at").Desc())

	if err := query.Executor().ScanStructs(&products); err != nil {
		return nil, apperrors.FromDB(err)
	}

	return products, nil
}

func (r *productRepositoryImpl) GetByCategory(categoryID, shopID string) ([]models.Product, error) {
	var products []models.Product
	query := r.r.GoquDBWrapper.
		From("products").
		Select(productColumns...).
		Where(goqu.Ex{"category_id": categoryID, "shop_id": shopID}).
		Order(goqu.I("created_at").Desc())

	if err := query.Executor().ScanStructs(&products); err != nil {
		return nil, apperrors.FromDB(err)
	}

	return products, nil
}

func (r *productRepositoryImpl) Update(id string, updates UpdateProductRequest) (*models.Product, error) {
	product, err := r.Get(id)
	if err != nil {
		return nil, err
	}

	record := goqu.Record{"updated_at": time.Now()}
	if updates.Name != nil {
		record["name"] = *updates.Name
	}
	if updates.Description != nil {
		record["description"] = *updates.Description
	}
	if updates.CategoryID != nil {
		record["category_id"] = *updates.CategoryID
	}
	if updates.SellingPrice != nil {
		record["selling_price"] = *updates.SellingPrice
	}
	if updates.PurchasePrice != nil {
		record["purchase_price"] = *updates.PurchasePrice
	}
	if updates.UnitType != nil {
		record["unit_type"] = *updates.UnitType
	}
	if updates.FeaturedImage != nil {
		record["featured_image"] = *updates.FeaturedImage
	}

	// A quantity or reorder point change forces a status reclassification;
	// the stored status is never allowed to drift from the thresholds.
	if updates.Quantity != nil || updates.ReorderPoint != nil {
		quantity := product.Quantity
		reorderPoint := product.ReorderPoint
		if updates.Quantity != nil {
			quantity = *updates.Quantity
			record["quantity"] = quantity
		}
		if updates.ReorderPoint != nil {
			reorderPoint = *updates.ReorderPoint
			record["reorder_point"] = reorderPoint
		}
		record["status"] = models.StockStatus(quantity, reorderPoint)
	}

	query := r.r.GoquDBWrapper.Update("products").
		Set(record).
		Where(goqu.Ex{"id": id})

	if _, err := query.Executor().Exec(); err != nil {
		return nil, apperrors.FromDB(err)
	}

	return r.Get(id)
}

func (r *productRepositoryImpl) Delete(id string) error {
	result, err := r.r.GoquDBWrapper.
		Delete("products").
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
		return apperrors.NotFound("product %s not found", id)
	}

	return nil
}

func (r *productRepositoryImpl) attachCategory(product *models.Product) {
	if product.CategoryID == nil {
		return
	}

	var category models.Category
	query := r.r.GoquDBWrapper.
		From("categories").
		Select("id", "name", "business_id", "image").
		Where(goqu.Ex{"id": *product.CategoryID})

	if found, err := query.Executor().ScanStruct(&category); err == nil && found {
		product.Category = &category
	}
}
