// internal/app/router.go
package app

import (
	"net/http"

	adminHandler "crmdash-service/internal/handlers/admin"
	billingHandler "crmdash-service/internal/handlers/billing"
	contactHandler "crmdash-service/internal/handlers/contact"
	pipelineHandler "crmdash-service/internal/handlers/pipeline"
	ticketHandler "crmdash-service/internal/handlers/ticket"
	wsHandler "crmdash-service/internal/handlers/ws"
	"crmdash-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers bundles everything the route table needs.
type Handlers struct {
	Pipeline       *pipelineHandler.PipelineHandler
	Customers      *contactHandler.ContactHandler
	Suppliers      *contactHandler.ContactHandler
	Quotes         *billingHandler.DocumentHandler
	Invoices       *billingHandler.DocumentHandler
	Admin          *adminHandler.AdminHandler
	Tickets        *ticketHandler.TicketHandler
	WS             *wsHandler.WSHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	r.Use(middleware.RecoveryMiddleware(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	api.Use(h.AuthMiddleware.Auth())
	{
		// ========== Pipeline ==========
		pipeline := api.Group("/pipeline")
		{
			pipeline.GET("", h.Pipeline.List)
			pipeline.GET("/summary", h.Pipeline.Summary)
			pipeline.GET("/:id", h.Pipeline.Get)
			pipeline.POST("", h.Pipeline.Create)
			pipeline.PATCH("/:id", h.Pipeline.Update)
			pipeline.DELETE("/:id", h.Pipeline.Delete)
		}

		// ========== Contacts ==========
		customers := api.Group("/customers")
		{
			customers.GET("", h.Customers.List)
			customers.GET("/:id", h.Customers.Get)
			customers.POST("", h.Customers.Create)
			customers.PATCH("/:id", h.Customers.Update)
			customers.DELETE("/:id", h.Customers.Delete)
		}

		suppliers := api.Group("/suppliers")
		{
			suppliers.GET("", h.Suppliers.List)
			suppliers.GET("/:id", h.Suppliers.Get)
			suppliers.POST("", h.Suppliers.Create)
			suppliers.PATCH("/:id", h.Suppliers.Update)
			suppliers.DELETE("/:id", h.Suppliers.Delete)
		}

		// ========== Billing documents ==========
		quotes := api.Group("/quotes")
		{
			quotes.GET("", h.Quotes.List)
			quotes.GET("/:id", h.Quotes.Get)
			quotes.POST("", h.Quotes.Create)
			quotes.POST("/import", h.Quotes.Import)
			quotes.PATCH("/:id/status", h.Quotes.UpdateStatus)
			quotes.DELETE("/:id", h.Quotes.Delete)
		}

		invoices := api.Group("/invoices")
		{
			invoices.GET("", h.Invoices.List)
			invoices.GET("/:id", h.Invoices.Get)
			invoices.POST("", h.Invoices.Create)
			invoices.PATCH("/:id/status", h.Invoices.UpdateStatus)
			invoices.DELETE("/:id", h.Invoices.Delete)
		}

		// ========== Admin console ==========
		admin := api.Group("/admin")
		{
			admin.GET("/subscriptions", h.Admin.ListSubscriptions)
			admin.POST("/subscriptions/:org_id", h.Admin.ChangeSubscription)
			admin.DELETE("/subscriptions/:org_id", h.Admin.CancelSubscription)
			admin.POST("/invoices/:id/refund", h.Admin.RefundInvoice)
			admin.GET("/billing/stats", h.Admin.BillingStats)
			admin.GET("/billing/export", h.Admin.ExportBilling)
			admin.GET("/users", h.Admin.ListUsers)
			admin.GET("/deletion-requests", h.Admin.ListDeletionRequests)
			admin.POST("/deletion-requests/:id/transition", h.Admin.TransitionDeletionRequest)
		}

		// ========== Tickets ==========
		tickets := api.Group("/tickets")
		{
			tickets.GET("", h.Tickets.List)
			tickets.GET("/:id", h.Tickets.Get)
			tickets.POST("", h.Tickets.Create)
			tickets.PATCH("/:id", h.Tickets.Update)
			tickets.DELETE("/:id", h.Tickets.Delete)
			tickets.POST("/:id/activity", h.Tickets.AppendActivity)
		}
	}

	// Live entity-change events.
	r.GET("/ws", h.WS.HandleConnection)
}
