// Package server assembles the repository, service and handler layers into a gin engine.
package server

import (
	"net/http"

	_ "acservice/api/swagger" // swagger docs
	"acservice/internal/handler"
	"acservice/internal/middleware"
	"acservice/internal/repository"
	"acservice/internal/service"
	"acservice/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Repositories is the storage backend the server runs on, postgres or memory
type Repositories struct {
	Users      repository.UserRepository
	Complaints repository.ComplaintRepository
	Audit      repository.AuditRepository
	Statistics repository.StatisticsRepository
	Tx         repository.TransactionManager
}

// Services built by New, exposed for bootstrap tasks such as seeding the admin
type Services struct {
	Users      service.UserService
	Complaints service.ComplaintService
	Statistics service.StatisticsService
	Audit      service.AuditService
}

type Options struct {
	Tokens      *service.TokenIssuer
	Hub         *websocket.Hub // nil disables /ws and live events
	CORSOrigins []string
}

// New wires Repository -> Service -> Handler and registers every route
func New(repos Repositories, opts Options) (*gin.Engine, Services) {
	var events service.EventPublisher
	if opts.Hub != nil {
		events = opts.Hub
	}

	svc := Services{
		Users:      service.NewUserService(repos.Users, repos.Audit, repos.Tx, opts.Tokens),
		Complaints: service.NewComplaintService(repos.Complaints, repos.Users, repos.Audit, repos.Tx, events),
		Statistics: service.NewStatisticsService(repos.Statistics),
		Audit:      service.NewAuditService(repos.Audit),
	}

	auth := middleware.NewAuthenticator(opts.Tokens)
	userHandler := handler.NewUserHandler(svc.Users, auth)
	complaintHandler := handler.NewComplaintHandler(svc.Complaints, auth)
	statisticsHandler := handler.NewStatisticsHandler(svc.Statistics, auth)
	auditHandler := handler.NewAuditHandler(svc.Audit, auth)

	router := gin.Default()

	if len(opts.CORSOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = opts.CORSOrigins
		corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
		router.Use(cors.New(corsConfig))
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	if opts.Hub != nil {
		router.GET("/ws", func(c *gin.Context) {
			websocket.ServeWs(opts.Hub, c, opts.Tokens)
		})
	}

	api := router.Group("")
	userHandler.RegisterRoutes(api)
	complaintHandler.RegisterRoutes(api)
	statisticsHandler.RegisterRoutes(api)
	auditHandler.RegisterRoutes(api)

	return router, svc
}
