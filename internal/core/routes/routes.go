package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Mbishu2002/newDesk/internal/core/container"
	"github.com/Mbishu2002/newDesk/internal/middleware"
)

// RegisterPublicRoutes mounts the endpoints reachable without a token:
// login and first-account registration.
func RegisterPublicRoutes(router *gin.Engine, container *container.Container) {
	public := router.Group("/api")
	container.AuthHandler.RegisterPublicRoutes(public)
}

// RegisterProtectedRoutes mounts every named operation behind the JWT
// middleware.
func RegisterProtectedRoutes(router *gin.Engine, container *container.Container) {
	protected := router.Group("/api")
	protected.Use(container.Tokens.JWTMiddleware())

	container.AuthHandler.RegisterProtectedRoutes(protected)
	container.InventoryHandler.RegisterRoutes(protected)
	container.ProductHandler.RegisterRoutes(protected)
	container.FinanceHandler.RegisterRoutes(protected)
	container.DashboardHandler.RegisterRoutes(protected)
	container.EmployeeHandler.RegisterRoutes(protected)
	container.ShopHandler.RegisterRoutes(protected)
	container.UserHandler.RegisterRoutes(protected)
	container.ReportHandler.RegisterRoutes(protected)
}

func RegisterUtilityRoutes(router *gin.Engine) {
	router.GET("/health", middleware.HealthCheckMiddleware())
}
