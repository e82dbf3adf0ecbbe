package shops

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Mbishu2002/newDesk/pkg/apperrors"
	"github.com/Mbishu2002/newDesk/pkg/envelope"
)

type ShopHandler struct {
	Repository *ShopRepository
	Log        *zap.Logger
}

func NewShopHandler(r *ShopRepository, log *zap.Logger) *ShopHandler {
	return &ShopHandler{Repository: r, Log: log}
}

func (h *ShopHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/entities/shop/create", h.CreateShop)
	router.POST("/entities/shop/get-all", h.GetShops)
	router.POST("/entities/shop/get", h.GetShop)
	router.POST("/entities/shop/update", h.UpdateShop)
	router.POST("/entities/shop/delete", h.RemoveShop)
	router.POST("/entities/business/create", h.CreateBusiness)
	router.POST("/entities/business/get-by-owner", h.GetBusinessByOwner)
}

func (h *ShopHandler) CreateShop(c *gin.Context) {
	var req CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("name and businessId are required"))
		return
	}

	shop, err := h.Repository.PersistShop(req)
	if err != nil {
		envelope.Fail(c, err)
		return
	}

	envelope.Created(c, gin.H{"shop": shop})
}

type shopListRequest struct {
	BusinessID string `json:"businessId" binding:"required"`
}

func (h *ShopHandler) GetShops(c *gin.Context) {
	var req shopListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("businessId is required"))
		return
	}

	shops, err := h.Repository.GetShops(req.BusinessID)
	if err != nil {
		envelope.Fail(c, err)
		return
	}

	envelope.OK(c, gin.H{"shops": shops})
}

type idRequest struct {
	ID string `json:"id" binding:"required"`
}

func (h *ShopHandler) GetShop(c *gin.Context) {
	var req idRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("id is required"))
		return
	}

	shop, err := h.Repository.GetShop(req.ID)
	if err != nil {
		envelope.Fail(c, err)
		return
	}
	if shop == nil {
		envelope.Fail(c, apperrors.NotFound("shop %s not found", req.ID))
		return
	}

	envelope.OK(c, gin.H{"shop": shop})
}

type updateShopRequest struct {
	ID      string            `json:"id" binding:"required"`
	Updates UpdateShopRequest `json:"updates"`
}

func (h *ShopHandler) UpdateShop(c *gin.Context) {
	var req updateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("id is required"))
		return
	}

	shop, err := h.Repository.UpdateShop(req.ID, req.Updates)
	if err != nil {
		envelope.Fail(c, err)
		return
	}

	envelope.OK(c, gin.H{"shop": shop})
}

func (h *ShopHandler) RemoveShop(c *gin.Context) {
	var req idRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("id is required"))
		return
	}

	if err := h.Repository.RemoveShop(req.ID); err != nil {
		envelope.Fail(c, err)
		return
	}

	h.Log.Info("shop deleted", zap.String("shop_id", req.ID))
	envelope.Message(c, "Shop deleted successfully")
}

func (h *ShopHandler) CreateBusiness(c *gin.Context) {
	var req CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("fullBusinessName and ownerId are required"))
		return
	}

	business, err := h.Repository.PersistBusiness(req)
	if err != nil {
		envelope.Fail(c, err)
		return
	}

	envelope.Created(c, gin.H{"business": business})
}

type businessByOwnerRequest struct {
	OwnerID string `json:"ownerId" binding:"required"`
}

func (h *ShopHandler) GetBusinessByOwner(c *gin.Context) {
	var req businessByOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("ownerId is required"))
		return
	}

	business, err := h.Repository.GetBusinessByOwner(req.OwnerID)
	if err != nil {
		envelope.Fail(c, err)
		return
	}
	if business == nil {
		envelope.Fail(c, apperrors.NotFound("no business found for owner %s", req.OwnerID))
		return
	}

	envelope.OK(c, gin.H{"business": business})
}
