// internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"crmdash-service/internal/config"
	"crmdash-service/internal/db"
	"crmdash-service/internal/gateway"
	adminHandler "crmdash-service/internal/handlers/admin"
	billingHandler "crmdash-service/internal/handlers/billing"
	contactHandler "crmdash-service/internal/handlers/contact"
	pipelineHandler "crmdash-service/internal/handlers/pipeline"
	ticketHandler "crmdash-service/internal/handlers/ticket"
	wsHandler "crmdash-service/internal/handlers/ws"
	"crmdash-service/internal/middleware"
	"crmdash-service/internal/pkg/session"
	adminsvc "crmdash-service/internal/service/admin"
	billingsvc "crmdash-service/internal/service/billing"
	customersvc "crmdash-service/internal/service/customer"
	pipelinesvc "crmdash-service/internal/service/pipeline"
	ticketsvc "crmdash-service/internal/service/ticket"
	"crmdash-service/internal/store"
	"crmdash-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Server struct {
	cfg     config.AppConfig
	engine  *gin.Engine
	logger  *zap.Logger
	httpSrv *http.Server
	stopHub context.CancelFunc
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.Default()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.stopHub = cancel

	// ----- Logger -----
	logger, _ := zap.NewProduction()
	s.logger = logger

	// ----- Redis (session credential storage) -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	// ----- Session store & gateway -----
	sessions := session.NewStore(redisClient, s.cfg.SessionKeyPrefix, s.cfg.SessionKeySuffix)
	gw := gateway.NewClient(s.cfg.BackendURL, s.cfg.BackendAnonKey, sessions, logger)
	fns := gateway.NewFunctions(s.cfg.FunctionsURL, sessions, logger)

	taxRate, err := decimal.NewFromString(s.cfg.TaxRate)
	if err != nil {
		return fmt.Errorf("invalid TAX_RATE: %w", err)
	}

	// ----- Event hub -----
	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	// ----- Entity services -----
	pipelineService := pipelinesvc.NewService(gw, logger)
	customerService := customersvc.NewCustomerService(gw, logger)
	supplierService := customersvc.NewSupplierService(gw, logger)
	quoteService := billingsvc.NewQuoteService(gw, logger, taxRate)
	invoiceService := billingsvc.NewInvoiceService(gw, logger, taxRate)
	subscriptionService := billingsvc.NewSubscriptionService(gw, fns, logger)
	ticketService := ticketsvc.NewService(gw, logger)
	adminService := adminsvc.NewService(gw, logger)

	// ----- State containers (one writable copy per entity) -----
	pipelineStore := store.NewContainer("pipeline", pipelineService.List, hub, logger)
	customerStore := store.NewContainer("customers", customerService.List, hub, logger)
	supplierStore := store.NewContainer("suppliers", supplierService.List, hub, logger)
	quoteStore := store.NewContainer("quotes", quoteService.List, hub, logger)
	invoiceStore := store.NewContainer("invoices", invoiceService.List, hub, logger)
	subscriptionStore := store.NewContainer("subscriptions", subscriptionService.List, hub, logger)
	ticketStore := store.NewContainer("tickets", ticketService.List, hub, logger)
	dsarStore := store.NewContainer("deletion_requests", adminService.ListDeletionRequests, hub, logger)

	// ----- Handlers -----
	handlers := &Handlers{
		Pipeline:  pipelineHandler.NewPipelineHandler(pipelineService, pipelineStore),
		Customers: contactHandler.NewContactHandler(customerService, customerStore, "customer"),
		Suppliers: contactHandler.NewContactHandler(supplierService, supplierStore, "supplier"),
		Quotes:    billingHandler.NewDocumentHandler(quoteService, quoteStore, "quote"),
		Invoices:  billingHandler.NewDocumentHandler(invoiceService, invoiceStore, "invoice"),
		Admin: adminHandler.NewAdminHandler(
			subscriptionService, adminService, subscriptionStore, dsarStore,
		),
		Tickets:        ticketHandler.NewTicketHandler(ticketService, ticketStore, hub),
		WS:             wsHandler.NewWSHandler(hub, logger),
		AuthMiddleware: middleware.NewAuthMiddleware(sessions, logger),
	}

	SetupRouter(s.engine, logger, handlers)

	s.httpSrv = &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.engine,
	}

	s.logger.Info("server starting", zap.String("addr", s.cfg.HTTPAddr))
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, stops the event hub and flushes
// the logger. Safe to call on a server that never started.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.stopHub != nil {
		s.stopHub()
	}
	if s.logger != nil {
		defer s.logger.Sync()
	}
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}
