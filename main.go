package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Mbishu2002/newDesk/cmd"
	"github.com/Mbishu2002/newDesk/internal/core/container"
	"github.com/Mbishu2002/newDesk/internal/core/logger"
	"github.com/Mbishu2002/newDesk/internal/core/routes"
	"github.com/Mbishu2002/newDesk/internal/database"
	"github.com/Mbishu2002/newDesk/internal/middleware"
)

func init() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load .env file, but don't overwrite system environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	cmd.Execute(ctx)
}

func main() {
	zapLogger := logger.NewLogger()
	defer zapLogger.Sync()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		zapLogger.Fatal("DATABASE_URL is not set")
	}

	db, err := database.NewPostgresConnection(dbURL)
	if err != nil {
		zapLogger.Fatal("unable to connect to the database", zap.Error(err))
	}
	defer db.Close()

	zapLogger.Info("connected to the database")

	appContainer, err := container.NewAppContainer(db, os.Getenv("JWT_SECRET"), zapLogger)
	if err != nil {
		zapLogger.Fatal("unable to build the application container", zap.Error(err))
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	router.Use(middleware.TimeoutMiddleware(30 * time.Second))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterUtilityRoutes(router)
	routes.RegisterPublicRoutes(router, appContainer)
	routes.RegisterProtectedRoutes(router, appContainer)

	host := os.Getenv("APP_HOST")
	if host == "" {
		host = ":8080"
	}

	zapLogger.Info("starting server", zap.String("host", host))
	if err := router.Run(host); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}
