package finance

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Mbishu2002/newDesk/pkg/apperrors"
	"github.com/Mbishu2002/newDesk/pkg/envelope"
)

type Handler struct {
	Incomes    IncomeRepository
	OhadaCodes OhadaCodeRepository
	Log        *zap.Logger
}

func NewHandler(incomes IncomeRepository, ohadaCodes OhadaCodeRepository, log *zap.Logger) *Handler {
	return &Handler{Incomes: incomes, OhadaCodes: ohadaCodes, Log: log}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/finance/income/get-all", h.GetAllIncome)
	router.POST("/finance/income/create", h.CreateIncome)
	router.POST("/finance/income/update", h.UpdateIncome)
	router.POST("/finance/income/delete", h.DeleteIncome)
	router.POST("/finance/ohada-codes/get-by-type", h.GetOhadaCodesByType)
	router.POST("/finance/ohada-codes/create", h.CreateOhadaCode)
}

type incomeListRequest struct {
	ShopID  *string  `json:"shopId"`
	ShopIDs []string `json:"shopIds"`
}

func (h *Handler) GetAllIncome(c *gin.Context) {
	var req incomeListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("invalid request payload"))
		return
	}

	incomes, err := h.Incomes.GetAll(IncomeFilter{ShopID: req.ShopID, ShopIDs: req.ShopIDs})
	if err != nil {
		envelope.Fail(c, err)
		return
	}

	envelope.OK(c, gin.H{"incomes": incomes})
}

func (h *Handler) CreateIncome(c *gin.Context) {
	var req CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("date, description, amount, paymentMethod and ohadaCodeId are required"))
		return
	}

	income, err := h.Incomes.Create(req)
	if err != nil {
		envelope.Fail(c, err)
		return
	}

	envelope.Created(c, gin.H{"income": income})
}

type updateIncomeRequest struct {
	ID      string              `json:"id" binding:"required"`
	Updates UpdateIncomeRequest `json:"updates"`
}

func (h *Handler) UpdateIncome(c *gin.Context) {
	var req updateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("id is required"))
		return
	}

	income, err := h.Incomes.Update(req.ID, req.Updates)
	if err != nil {
		envelope.Fail(c, err)
		return
	}

	envelope.OK(c, gin.H{"income": income})
}

type idRequest struct {
	ID string `json:"id" binding:"required"`
}

func (h *Handler) DeleteIncome(c *gin.Context) {
	var req idRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("id is required"))
		return
	}

	if err := h.Incomes.Delete(req.ID); err != nil {
		envelope.Fail(c, err)
		return
	}

	envelope.Message(c, "Income entry deleted successfully")
}

type codesByTypeRequest struct {
	Type string `json:"type" binding:"required"`
}

func (h *Handler) GetOhadaCodesByType(c *gin.Context) {
	var req codesByTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("type is required"))
		return
	}

	codes, err := h.OhadaCodes.GetByType(req.Type)
	if err != nil {
		envelope.Fail(c, err)
		return
	}

	envelope.OK(c, gin.H{"codes": codes})
}

func (h *Handler) CreateOhadaCode(c *gin.Context) {
	var req CreateOhadaCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("code, name and type are required"))
		return
	}

	code, err := h.OhadaCodes.CreateCustom(req)
	if err != nil {
		envelope.Fail(c, err)
		return
	}

	h.Log.Info("custom ohada code created", zap.String("code", code.Code), zap.String("type", code.Type))
	envelope.Created(c, gin.H{"code": code})
}
