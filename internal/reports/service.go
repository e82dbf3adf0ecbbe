package reports

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Mbishu2002/newDesk/pkg/apperrors"
)

const (
	TypeSales        = "sales"
	TypeCurrentStock = "current-stock"
	TypeAddedStock   = "added-stock"
	TypeLowStock     = "low-stock"
)

type Request struct {
	ReportType string     `json:"reportType" binding:"required"`
	BusinessID *string    `json:"businessId"`
	ShopID     *string    `json:"shopId"`
	StartDate  *time.Time `json:"startDate"`
	EndDate    *time.Time `json:"endDate"`
}

type Service struct {
	store ReportStore
	log   *zap.Logger
}

func NewService(store ReportStore, log *zap.Logger) *Service {
	return &Service{store: store, log: log}
}

// Generate resolves the scope, fetches the rows for the requested report
// type and renders them as a PDF document.
func (s *Service) Generate(req Request) ([]byte, error) {
	shopIDs, err := s.resolveScope(req)
	if err != nil {
		return nil, err
	}

	rows, title, err := s.fetchRows(shopIDs, req)
	if err != nil {
		return nil, err
	}

	pdf, err := render(rows, title, req)
	if err != nil {
		return nil, apperrors.Store(err)
	}

	s.log.Info("report generated",
		zap.String("report_type", req.ReportType),
		zap.Int("rows", len(rows)),
	)
	return pdf, nil
}

func (s *Service) resolveScope(req Request) ([]string, error) {
	if req.ShopID != nil && *req.ShopID != "" {
		return []string{*req.ShopID}, nil
	}
	if req.BusinessID != nil && *req.BusinessID != "" {
		return s.store.ShopIDsForBusiness(*req.BusinessID)
	}
	return nil, apperrors.ScopeRequired("either shopId or businessId is required")
}

func (s *Service) fetchRows(shopIDs []string, req Request) ([]Row, string, error) {
	switch req.ReportType {
	case TypeSales, TypeAddedStock:
		if req.StartDate == nil || req.EndDate == nil {
			return nil, "", apperrors.Validation("startDate and endDate are required for %s reports", req.ReportType)
		}
		if req.ReportType == TypeSales {
			rows, err := s.store.SalesRows(shopIDs, *req.StartDate, *req.EndDate)
			return rows, "Sales Report", err
		}
		rows, err := s.store.AddedStockRows(shopIDs, *req.StartDate, *req.EndDate)
		return rows, "Added Stock Report", err

	case TypeCurrentStock:
		rows, err := s.store.CurrentStockRows(shopIDs)
		return rows, "Current Stock Report", err

	case TypeLowStock:
		rows, err := s.store.LowStockRows(shopIDs)
		return rows, "Low Stock Report", err

	default:
		return nil, "", apperrors.Validation("unknown report type %q", req.ReportType)
	}
}

func hasDateAxis(reportType string) bool {
	return reportType == TypeSales || reportType == TypeAddedStock
}

func render(rows []Row, title string, req Request) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 12)
	if hasDateAxis(req.ReportType) {
		pdf.CellFormat(0, 10, fmt.Sprintf("Date Range: %s to %s",
			req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02")), "", 1, "L", false, 0, "")
		pdf.Ln(5)

		if req.ReportType == TypeSales {
			var totalItems int
			totalValue := decimal.Zero
			for _, row := range rows {
				totalItems += row.Quantity
				totalValue = totalValue.Add(row.TotalValue)
			}
			pdf.CellFormat(0, 10, fmt.Sprintf("Total Items Sold: %d", totalItems), "", 1, "L", false, 0, "")
			pdf.CellFormat(0, 10, fmt.Sprintf("Total Sales: %s", totalValue.StringFixed(2)), "", 1, "L", false, 0, "")
			pdf.Ln(5)
		}
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(40, 10, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 10, "Product", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 10, "Quantity", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 10, "Unit Price", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 10, "Total Value", "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	for _, row := range rows {
		pdf.CellFormat(40, 10, row.Date, "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 10, row.Product, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 10, fmt.Sprintf("%d", row.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 10, row.UnitPrice.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 10, row.TotalValue.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
