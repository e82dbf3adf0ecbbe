package container

import (
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/Mbishu2002/newDesk/internal/auth"
	"github.com/Mbishu2002/newDesk/internal/dashboard"
	"github.com/Mbishu2002/newDesk/internal/employees"
	"github.com/Mbishu2002/newDesk/internal/finance"
	"github.com/Mbishu2002/newDesk/internal/inventory"
	"github.com/Mbishu2002/newDesk/internal/products"
	"github.com/Mbishu2002/newDesk/internal/rate_limiter"
	"github.com/Mbishu2002/newDesk/internal/reports"
	"github.com/Mbishu2002/newDesk/internal/repository"
	"github.com/Mbishu2002/newDesk/internal/shops"
	"github.com/Mbishu2002/newDesk/internal/users"
	"github.com/Mbishu2002/newDesk/pkg/auditlog"
	"github.com/Mbishu2002/newDesk/pkg/security"
)

// Login attempts allowed per IP inside the sliding window.
const (
	loginRateLimit  = 5
	loginRateWindow = 15 * time.Minute
)

type Container struct {
	Repository       *repository.Repository
	Tokens           *security.TokenManager
	Audit            *auditlog.Recorder
	AuthHandler      *auth.Handler
	InventoryHandler *inventory.Handler
	ProductHandler   *products.Handler
	FinanceHandler   *finance.Handler
	DashboardHandler *dashboard.Handler
	EmployeeHandler  *employees.Handler
	ShopHandler      *shops.ShopHandler
	UserHandler      *users.UsersHandler
	ReportHandler    *reports.Handler
}

func NewAppContainer(db *sql.DB, jwtSecret string, log *zap.Logger) (*Container, error) {
	repo := repository.NewRepository(db)

	tokens, err := security.NewTokenManager(jwtSecret)
	if err != nil {
		return nil, err
	}

	audit := auditlog.NewRecorder(repo, log)
	limiter := rate_limiter.NewRateLimiter(loginRateLimit, loginRateWindow)

	userRepo := users.NewRepository(repo)
	authHandler := auth.NewHandler(userRepo, tokens, limiter, audit, log)
	userHandler := users.NewHandler(userRepo)

	inventoryRepo := inventory.NewRepository(repo)
	movementRepo := inventory.NewMovementRepository(repo)
	adjustments := inventory.NewAdjustmentService(inventoryRepo, log)
	inventoryHandler := inventory.NewHandler(inventoryRepo, movementRepo, adjustments, log)

	productRepo := products.NewRepository(repo)
	productHandler := products.NewHandler(productRepo, log)

	incomeRepo := finance.NewIncomeRepository(repo)
	ohadaRepo := finance.NewOhadaCodeRepository(repo)
	financeHandler := finance.NewHandler(incomeRepo, ohadaRepo, log)

	dashboardRepo := dashboard.NewRepository(repo)
	dashboardService := dashboard.NewService(dashboardRepo, log)
	dashboardHandler := dashboard.NewHandler(dashboardService, log)

	employeeRepo := employees.NewRepository(repo)
	employeeHandler := employees.NewHandler(employeeRepo, userRepo, log)

	shopRepo := shops.NewShopRepository(repo)
	shopHandler := shops.NewShopHandler(shopRepo, log)

	reportStore := reports.NewStore(repo)
	reportService := reports.NewService(reportStore, log)
	reportHandler := reports.NewHandler(reportService)

	return &Container{
		Repository:       repo,
		Tokens:           tokens,
		Audit:            audit,
		AuthHandler:      authHandler,
		InventoryHandler: inventoryHandler,
		ProductHandler:   productHandler,
		FinanceHandler:   financeHandler,
		DashboardHandler: dashboardHandler,
		EmployeeHandler:  employeeHandler,
		ShopHandler:      shopHandler,
		UserHandler:      userHandler,
		ReportHandler:    reportHandler,
	}, nil
}
