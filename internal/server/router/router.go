package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/fleetstock/internal/server/handlers"
)

// Handlers groups the HTTP adapters mounted by New. Webhook may be nil when
// WhatsApp is not configured.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Inventory *handlers.InventoryHandler
	Export    *handlers.ExportHandler
	Users     *handlers.UserHandler
	Webhook   *handlers.WebhookHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if h.Webhook != nil {
		r.GET("/webhook", h.Webhook.Verify)
		r.POST("/webhook", h.Webhook.Receive)
	}

	api := r.Group("/api/v1")
	api.POST("/auth/login", h.Auth.Login)

	authed := api.Group("")
	authed.Use(h.Auth.RequireUser())
	admin := authed.Group("")
	admin.Use(handlers.RequireAdmin())

	authed.GET("/auth/me", h.Auth.Me)

	authed.GET("/items", h.Inventory.ListItems)
	authed.GET("/items/low-stock", h.Inventory.LowStock)
	authed.GET("/items/:id", h.Inventory.GetItem)
	admin.POST("/items", h.Inventory.UpsertItem)
	admin.PUT("/items/:id/quantity", h.Inventory.SetQuantity)
	admin.DELETE("/items/:id", h.Inventory.DeleteItem)

	authed.GET("/vehicles", h.Inventory.ListVehicles)
	authed.GET("/vehicles/:id", h.Inventory.GetVehicle)
	admin.POST("/vehicles", h.Inventory.RegisterVehicle)
	authed.POST("/vehicles/:id/transfers", h.Inventory.Transfer)
	authed.POST("/vehicles/:id/counts", h.Inventory.SubmitCount)
	authed.GET("/vehicles/:id/counts", h.Inventory.ListCounts)
	authed.POST("/vehicles/:id/checklists", h.Inventory.SubmitChecklist)
	authed.GET("/vehicles/:id/checklists", h.Inventory.ListChecklists)

	authed.GET("/checklist/tools", h.Inventory.Tools)

	authed.GET("/export/inventory.xlsx", h.Export.InventoryWorkbook)
	admin.POST("/export/sheets", h.Export.SyncSheets)
	authed.GET("/backup", h.Export.Backup)
	admin.POST("/backup", h.Export.Restore)
	admin.POST("/reset", h.Export.Reset)

	admin.GET("/users", h.Users.List)
	admin.POST("/users", h.Users.Create)
	admin.DELETE("/users/:id", h.Users.Delete)

	if h.Webhook != nil {
		admin.POST("/send-message", h.Webhook.SendMessage)
	}

	logger.Info("router initialized")
	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
