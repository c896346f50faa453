package router

import (
	"github.com/gin-gonic/gin"

	"aansluitintake/internal/domain"
	"aansluitintake/internal/handler"
	"aansluitintake/internal/middleware"
	"aansluitintake/internal/service"
)

// Handlers bundles the HTTP handlers the router wires up.
type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Connection *handler.ConnectionHandler
	Intake     *handler.IntakeHandler
	Export     *handler.ExportHandler
	Kvk        *handler.KvkHandler
	Address    *handler.AddressHandler
	Health     *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, allowedOrigins []string, h Handlers) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	intake := protected.Group("/intake")
	intake.POST("/files", h.Intake.UploadFile)
	intake.POST("/text", h.Intake.Text)
	intake.POST("/excel", h.Intake.Excel)
	intake.GET("/jobs", h.Intake.ListJobs)
	intake.GET("/jobs/:id", h.Intake.GetJob)
	intake.POST("/stop", h.Intake.Stop)

	conns := protected.Group("/connections")
	conns.GET("", h.Connection.List)
	conns.POST("", h.Connection.Create)
	conns.DELETE("", middleware.RequireRole(domain.RoleAdmin), h.Connection.DeleteAll)
	conns.GET("/:id", h.Connection.Get)
	conns.PUT("/:id", h.Connection.Update)
	conns.DELETE("/:id", h.Connection.Delete)
	conns.GET("/:id/validation", h.Connection.Validation)
	conns.POST("/:id/kvk", h.Connection.ApplyKVK)

	kvk := protected.Group("/kvk")
	kvk.GET("/search", h.Kvk.Search)
	kvk.GET("/profile/:kvkNumber", h.Kvk.Profile)

	protected.GET("/address", h.Address.Lookup)

	exports := protected.Group("/exports")
	exports.GET("/:format", h.Export.Download)
	exports.POST("/email", h.Export.Email)

	users := protected.Group("/users")
	users.POST("", middleware.RequireRole(domain.RoleAdmin), h.User.Create)
	users.GET("", middleware.RequireRole(domain.RoleAdmin), h.User.List)
	users.GET("/:id", h.User.Get)
	users.PUT("/:id", h.User.Update)
	users.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.User.Delete)

	return r
}
