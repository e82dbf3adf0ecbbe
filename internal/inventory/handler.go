package inventory

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Mbishu2002/newDesk/pkg/apperrors"
	"github.com/Mbishu2002/newDesk/pkg/envelope"
	"github.com/Mbishu2002/newDesk/pkg/security"
)

type Handler struct {
	Repository  *Repository
	Movements   *MovementRepository
	Adjustments *AdjustmentService
	Log         *zap.Logger
}

func NewHandler(repo *Repository, movements *MovementRepository, adjustments *AdjustmentService, log *zap.Logger) *Handler {
	return &Handler{
		Repository:  repo,
		Movements:   movements,
		Adjustments: adjustments,
		Log:         log,
	}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/inventory/get-by-shop", h.GetByShop)
	router.POST("/inventory/delete", h.Delete)
	router.POST("/inventory/adjust-stock", h.AdjustStock)
	router.POST("/stock-movement/get-all", h.GetMovements)
	router.POST("/stock-movement/create-adjustment", h.CreateAdjustment)
}

type getByShopRequest struct {
	ShopID     string `json:"shopId" binding:"required"`
	IsAdmin    bool   `json:"isAdmin"`
	Pagination struct {
		Page  uint `json:"page"`
		Limit uint `json:"limit"`
	} `json:"pagination"`
}

func (h *Handler) GetByShop(c *gin.Context) {
	var req getByShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("shopId is required"))
		return
	}
	if req.Pagination.Page == 0 {
		req.Pagination.Page = 1
	}
	if req.Pagination.Limit == 0 {
		req.Pagination.Limit = 10
	}

	items, total, err := h.Repository.GetByShop(req.ShopID, req.Pagination.Page, req.Pagination.Limit)
	if err != nil {
		envelope.Fail(c, err)
		return
	}

	envelope.OK(c, gin.H{
		"items": items,
		"pagination": gin.H{
			"page":  req.Pagination.Page,
			"limit": req.Pagination.Limit,
			"total": total,
		},
	})
}

type deleteRequest struct {
	ID string `json:"id" binding:"required"`
}

func (h *Handler) Delete(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("id is required"))
		return
	}

	if err := h.Repository.Delete(req.ID); err != nil {
		envelope.Fail(c, err)
		return
	}

	envelope.Message(c, "Inventory item deleted successfully")
}

type adjustStockRequest struct {
	InventoryID   string `json:"inventoryId" binding:"required"`
	Delta         int    `json:"delta"`
	MovementType  string `json:"movementType"`
	Reason        string `json:"reason" binding:"required"`
	PerformedByID string `json:"performedById"`
}

func (h *Handler) AdjustStock(c *gin.Context) {
	var req adjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("inventoryId, delta and reason are required"))
		return
	}

	performedBy := req.PerformedByID
	if performedBy == "" {
		if session, ok := security.SessionFrom(c); ok {
			performedBy = session.UserID
		}
	}

	result, err := h.Adjustments.Adjust(AdjustmentRequest{
		InventoryID:   req.InventoryID,
		Delta:         req.Delta,
		MovementType:  req.MovementType,
		Reason:        req.Reason,
		PerformedByID: performedBy,
	})
	if err != nil {
		envelope.Fail(c, err)
		return
	}

	envelope.OK(c, result)
}

type getMovementsRequest struct {
	InventoryID string    `json:"inventoryId" binding:"required"`
	StartDate   time.Time `json:"startDate" binding:"required"`
	EndDate     time.Time `json:"endDate" binding:"required"`
	ProductID   *string   `json:"productId"`
	Page        uint      `json:"page"`
	Limit       uint      `json:"limit"`
}

func (h *Handler) GetMovements(c *gin.Context) {
	var req getMovementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("inventoryId, startDate and endDate are required"))
		return
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.Limit == 0 {
		req.Limit = 10
	}

	movements, pages, err := h.Movements.GetAll(MovementFilter{
		InventoryID: req.InventoryID,
		ProductID:   req.ProductID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Page:        req.Page,
		Limit:       req.Limit,
	})
	if err != nil {
		envelope.Fail(c, err)
		return
	}

	envelope.OK(c, gin.H{
		"movements": movements,
		"pages":     pages,
	})
}

type createAdjustmentRequest struct {
	ProductID     string `json:"productId"`
	InventoryID   string `json:"inventoryId" binding:"required"`
	PhysicalCount *int   `json:"physicalCount" binding:"required"`
	SystemCount   *int   `json:"systemCount"`
	Reason        string `json:"reason" binding:"required"`
	PerformedByID string `json:"performedById"`
}

func (h *Handler) CreateAdjustment(c *gin.Context) {
	var req createAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("inventoryId, physicalCount and reason are required"))
		return
	}

	performedBy := req.PerformedByID
	if performedBy == "" {
		if session, ok := security.SessionFrom(c); ok {
			performedBy = session.UserID
		}
	}

	result, err := h.Adjustments.PhysicalCount(PhysicalCountRequest{
		InventoryID:   req.InventoryID,
		PhysicalCount: *req.PhysicalCount,
		Reason:        req.Reason,
		PerformedByID: performedBy,
	})
	if err != nil {
		envelope.Fail(c, err)
		return
	}

	envelope.OK(c, result)
}
