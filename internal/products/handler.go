package products

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Mbishu2002/newDesk/pkg/apperrors"
	"github.com/Mbishu2002/newDesk/pkg/envelope"
)

type Handler struct {
	Repository ProductRepository
	Log        *zap.Logger
}

func NewHandler(r ProductRepository, log *zap.Logger) *Handler {
	return &Handler{Repository: r, Log: log}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/inventory/product/create", h.Create)
	router.POST("/inventory/product/get-all", h.GetAll)
	router.POST("/inventory/product/get", h.Get)
	router.POST("/inventory/product/update", h.Update)
	router.POST("/inventory/product/delete", h.Delete)
	router.POST("/inventory/product/get-by-category", h.GetByCategory)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("name, sku, shopId and businessId are required"))
		return
	}

	product, err := h.Repository.Create(req)
	if err != nil {
		envelope.Fail(c, err)
		return
	}

	h.Log.Info("product created", zap.String("id", product.ID), zap.String("sku", product.SKU))
	envelope.Created(c, gin.H{"product": product})
}

type getAllRequest struct {
	ShopID  string   `json:"shopId"`
	ShopIDs []string `json:"shopIds"`
}

func (h *Handler) GetAll(c *gin.Context) {
	var req getAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("invalid request payload"))
		return
	}

	shopIDs := req.ShopIDs
	if len(shopIDs) == 0 && req.ShopID != "" {
		shopIDs = []string{req.ShopID}
	}
	if len(shopIDs) == 0 {
		envelope.Fail(c, apperrors.Validation("no valid shop identifier provided"))
		return
	}

	products, err := h.Repository.GetAll(shopIDs)
	if err != nil {
		envelope.Fail(c, err)
		return
	}

	envelope.OK(c, gin.H{"products": products})
}

type idRequest struct {
	ID string `json:"id" binding:"required"`
}

func (h *Handler) Get(c *gin.Context) {
	var req idRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("id is required"))
		return
	}

	product, err := h.Repository.Get(req.ID)
	if err != nil {
		envelope.Fail(c, err)
		return
	}

	envelope.OK(c, gin.H{"product": product})
}

type updateRequest struct {
	ID      string               `json:"id" binding:"required"`
	Updates UpdateProductRequest `json:"updates"`
}

func (h *Handler) Update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("id is required"))
		return
	}

	product, err := h.Repository.Update(req.ID, req.Updates)
	if err != nil {
		envelope.Fail(c, err)
		return
	}

	envelope.OK(c, gin.H{"product": product})
}

func (h *Handler) Delete(c *gin.Context) {
	var req idRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("id is required"))
		return
	}

	if err := h.Repository.Delete(req.ID); err != nil {
		envelope.Fail(c, err)
		return
	}

	envelope.Message(c, "Product deleted successfully")
}

type byCategoryRequest struct {
	CategoryID string `json:"categoryId" binding:"required"`
	ShopID     string `json:"shopId" binding:"required"`
}

func (h *Handler) GetByCategory(c *gin.Context) {
	var req byCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("categoryId and shopId are required"))
		return
	}

	products, err := h.Repository.GetByCategory(req.CategoryID, req.ShopID)
	if err != nil {
		envelope.Fail(c, err)
		return
	}

	envelope.OK(c, gin.H{"products": products})
}
