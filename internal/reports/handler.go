package reports

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mbishu2002/newDesk/pkg/apperrors"
	"github.com/Mbishu2002/newDesk/pkg/envelope"
)

type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/reports/generate", h.GenerateReport)
}

// GenerateReport is the one endpoint that does not answer with the JSON
// envelope on success: it streams the rendered PDF.
func (h *Handler) GenerateReport(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		envelope.Fail(c, apperrors.Validation("reportType is required"))
		return
	}

	pdf, err := h.Service.Generate(req)
	if err != nil {
		envelope.Fail(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_report.pdf", req.ReportType))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
