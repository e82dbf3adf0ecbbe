package dashboard

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Mbishu2002/newDesk/pkg/apperrors"
	"github.com/Mbishu2002/newDesk/pkg/envelope"
)

type Handler struct {
	Service *Service
	Log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{Service: service, Log: log}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/dashboard/inventory/get", h.GetInventoryDashboard)
	router.POST("/dashboard/sales/get", h.GetSalesDashboard)
	router.POST("/dashboard/categories/top", h.GetTopCategories)
}

type dashboardRequest struct {
	BusinessID *string    `json:"businessId"`
	ShopID     *string    `json:"shopId"`
	View       string     `json:"view"`
	DateRange  *DateRange `json:"dateRange"`
}

func (h *Handler) GetInventoryDashboard(c *gin.Context) {
	var req dashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("invalid request payload"))
		return
	}

	dashboard, err := h.Service.InventoryDashboard(Scope{BusinessID: req.BusinessID, ShopID: req.ShopID})
	if err != nil {
		envelope.Fail(c, err)
		return
	}

	envelope.OK(c, dashboard)
}

func (h *Handler) GetSalesDashboard(c *gin.Context) {
	var req dashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("invalid request payload"))
		return
	}

	start := time.Now()
	dashboard, err := h.Service.SalesDashboard(Scope{BusinessID: req.BusinessID, ShopID: req.ShopID}, req.DateRange, req.View)
	if err != nil {
		envelope.Fail(c, err)
		return
	}

	h.Log.Debug("sales dashboard computed",
		zap.String("view", req.View),
		zap.Duration("took", time.Since(start)),
	)
	envelope.OK(c, dashboard)
}

func (h *Handler) GetTopCategories(c *gin.Context) {
	var req dashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("invalid request payload"))
		return
	}

	categories, err := h.Service.TopCategories(Scope{BusinessID: req.BusinessID, ShopID: req.ShopID}, req.DateRange, req.View)
	if err != nil {
		envelope.Fail(c, err)
		return
	}

	envelope.OK(c, gin.H{"categories": categories})
}
