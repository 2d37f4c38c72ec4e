package server

import (
	"context"
	"net/http"
	"time"

	_ "crm/api/swagger" // swagger docs
	"crm/internal/config"
	"crm/internal/database"
	"crm/internal/handler"
	"crm/internal/middleware"
	"crm/internal/repository"
	"crm/internal/service"
	"crm/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

const healthTimeout = 2 * time.Second

// Deps are the long-lived components the HTTP layer is built from.
type Deps struct {
	Config config.Config
	Logger zerolog.Logger
	DB     *gorm.DB
	Hub    *websocket.Hub
	// Store enables POST /api/attachments when non-nil.
	Store service.ObjectStore
}

// NewRouter wires repositories, services and handlers into a gin engine.
func NewRouter(deps Deps) (*gin.Engine, error) {
	if err := handler.RegisterValidators(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.Metrics())

	corsConfig := cors.DefaultConfig()
	if len(deps.Config.CORSOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = deps.Config.CORSOrigins
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(deps.DB)
	customerRepo := repository.NewCustomerRepository(deps.DB)
	activityRepo := repository.NewActivityRepository(deps.DB)

	var events service.EventPublisher
	if deps.Hub != nil {
		events = deps.Hub
	}
	customerService := service.NewCustomerService(customerRepo, txManager, events)
	activityService := service.NewActivityService(activityRepo, customerRepo, txManager, events)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", healthHandler(deps.DB))

	authenticate := middleware.Authenticate([]byte(deps.Config.JWTSecret))
	if deps.Hub != nil {
		router.GET("/ws", authenticate, deps.Hub.ServeWs)
	}

	api := router.Group("/api", authenticate)
	handler.NewCustomerHandler(customerService, deps.Logger).RegisterRoutes(api)
	handler.NewActivityHandler(activityService, deps.Logger).RegisterRoutes(api)
	handler.NewMetaHandler().RegisterRoutes(api)
	if deps.Store != nil {
		handler.NewAttachmentHandler(service.NewAttachmentService(deps.Store), deps.Logger).RegisterRoutes(api)
	}

	return router, nil
}

// healthHandler reports OK while the database answers a ping.
func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		if err := database.Ping(ctx, db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "UNAVAILABLE", "error": "database unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	}
}
