package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/dmarchuk/estatedesk/internal/logging"
)

// Handlers groups the boundary's handler set for route registration.
type Handlers struct {
	Auth         *AuthHandler
	Properties   *PropertyHandler
	Transactions *TransactionHandler
	Clients      *ClientHandler
	Trends       *TrendHandler
	Profiles     *ProfileHandler
}

// NewRouter wires the public and authenticated route groups.
func NewRouter(h Handlers, secretKey []byte, logger logging.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger))

	api := r.Group("/api")

	// anonymous
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.GET("/properties", h.Properties.List)
	api.GET("/trends", h.Trends.List)

	// authenticated
	authed := api.Group("", RequireAuth(secretKey))
	authed.GET("/profile", h.Profiles.Get)
	authed.POST("/profile", h.Profiles.Save)

	authed.POST("/properties", h.Properties.Create)
	authed.GET("/properties/:id", h.Properties.Get)
	authed.PUT("/properties/:id", h.Properties.Update)
	authed.DELETE("/properties/:id", h.Properties.Delete)

	authed.GET("/transactions", h.Transactions.List)
	authed.POST("/transactions", h.Transactions.Record)
	authed.PUT("/transactions/:id", h.Transactions.Update)
	authed.DELETE("/transactions/:id", h.Transactions.Delete)

	authed.GET("/orders", h.Transactions.Orders)

	authed.GET("/clients", h.Clients.List)
	authed.DELETE("/clients/:id", h.Clients.Delete)

	return r
}
