//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=mock_server
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/greenharvest/marketplace/internal/storage"
	"github.com/greenharvest/marketplace/internal/workflow"
)

type Storage interface {
	SubmitRequest(ctx context.Context, req workflow.ProductRequest) (*workflow.ProductRequest, error)
	ResolveRequest(ctx context.Context, id string, t workflow.Transition, notes string) (*workflow.ProductRequest, error)
	GetRequest(ctx context.Context, id string) (*workflow.ProductRequest, error)
	GetRequests(ctx context.Context) ([]workflow.ProductRequest, error)
	GetFarmerRequests(ctx context.Context, farmerID string) ([]workflow.ProductRequest, error)

	CreateOrder(ctx context.Context, order workflow.Order) (*workflow.Order, error)
	GetOrder(ctx context.Context, id string) (*workflow.Order, error)
	GetCustomerOrders(ctx context.Context, customerID string) ([]workflow.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, target workflow.OrderStatus) (*workflow.Order, error)
	CancelOrder(ctx context.Context, id string) (*workflow.Order, error)

	CreateFarmerOrder(ctx context.Context, fo workflow.FarmerOrder) (*workflow.FarmerOrder, error)
	AdvanceFarmerOrder(ctx context.Context, id string, t workflow.Transition) (*workflow.FarmerOrder, error)
	GetFarmerOrders(ctx context.Context, farmerID string) ([]workflow.FarmerOrder, error)

	CreateAvailability(ctx context.Context, av workflow.ProductAvailability) (*workflow.ProductAvailability, error)
	AdjustAvailabilityQuantity(ctx context.Context, id string, quantity int) (*workflow.ProductAvailability, error)
	GetAvailability(ctx context.Context, id string) (*workflow.ProductAvailability, error)
	GetFarmerAvailability(ctx context.Context, farmerID string) ([]workflow.ProductAvailability, error)

	GetHistory(ctx context.Context, entityType, entityID string) ([]storage.HistoryEntry, error)
	RequestStats(ctx context.Context) (map[workflow.RequestStatus]int, error)
	OrderStats(ctx context.Context) (map[workflow.OrderStatus]int, error)
	AvailabilityStats(ctx context.Context) (map[workflow.AvailabilityStatus]int, error)
	GetLoyaltySummary(ctx context.Context, customerID string) (*storage.LoyaltySummary, error)
}

type UserRepo interface {
	ValidateUser(ctx context.Context, username, password string) (bool, error)
}

type Server struct {
	storage      Storage
	userRepo     UserRepo
	logger       *zap.Logger
	server       *http.Server
	AuditManager *AuditManager
}

func New(storage Storage, userRepo UserRepo, logger *zap.Logger) *Server {
	auditManager := NewAuditManager(2, 5, 500*time.Millisecond)
	return &Server{
		storage:      storage,
		userRepo:     userRepo,
		logger:       logger,
		AuditManager: auditManager,
	}
}

func (s *Server) Run(ctx context.Context, port string) error {
	router := s.setupRoutes()

	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	s.AuditManager.Start(ctx)

	s.logger.Info("server starting", zap.String("port", port))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")

	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}

	s.AuditManager.Shutdown(ctx)
	s.logger.Info("server shutdown completed")

	return nil
}

func (s *Server) setupRoutes() http.Handler {
	api := http.NewServeMux()

	api.HandleFunc("POST /requests", s.handleSubmitRequest)
	api.HandleFunc("GET /requests", s.handleListRequests)
	api.HandleFunc("GET /requests/{id}", s.handleGetRequest)
	api.HandleFunc("POST /requests/{id}/approve", s.handleResolveRequest(workflow.TransitionApprove))
	api.HandleFunc("POST /requests/{id}/reject", s.handleResolveRequest(workflow.TransitionReject))
	api.HandleFunc("GET /requests/{id}/history", s.handleHistory(storage.EntityRequest))
	api.HandleFunc("GET /farmers/{farmerID}/requests", s.handleListFarmerRequests)

	api.HandleFunc("POST /orders", s.handleCreateOrder)
	api.HandleFunc("GET /orders/{id}", s.handleGetOrder)
	api.HandleFunc("PUT /orders/{id}/status", s.handleUpdateOrderStatus)
	api.HandleFunc("POST /orders/{id}/cancel", s.handleCancelOrder)
	api.HandleFunc("GET /orders/{id}/history", s.handleHistory(storage.EntityOrder))
	api.HandleFunc("GET /customers/{customerID}/orders", s.handleListCustomerOrders)
	api.HandleFunc("GET /customers/{customerID}/loyalty", s.handleLoyalty)

	api.HandleFunc("POST /farmer-orders", s.handleCreateFarmerOrder)
	api.HandleFunc("POST /farmer-orders/{id}/confirm", s.handleFarmerOrderTransition(workflow.TransitionConfirm))
	api.HandleFunc("POST /farmer-orders/{id}/pack", s.handleFarmerOrderTransition(workflow.TransitionPack))
	api.HandleFunc("POST /farmer-orders/{id}/ship", s.handleFarmerOrderTransition(workflow.TransitionShip))
	api.HandleFunc("POST /farmer-orders/{id}/deliver", s.handleFarmerOrderTransition(workflow.TransitionDeliver))
	api.HandleFunc("GET /farmer-orders/{id}/history", s.handleHistory(storage.EntityFarmerOrder))
	api.HandleFunc("GET /farmers/{farmerID}/orders", s.handleListFarmerOrders)

	api.HandleFunc("POST /availability", s.handleCreateAvailability)
	api.HandleFunc("GET /availability/{id}", s.handleGetAvailability)
	api.HandleFunc("PUT /availability/{id}/quantity", s.handleAdjustQuantity)
	api.HandleFunc("GET /farmers/{farmerID}/availability", s.handleListFarmerAvailability)

	api.HandleFunc("GET /stats/requests", s.handleRequestStats)
	api.HandleFunc("GET /stats/orders", s.handleOrderStats)
	api.HandleFunc("GET /stats/availability", s.handleAvailabilityStats)

	root := http.NewServeMux()
	root.Handle("GET /metrics", promhttp.Handler())
	root.Handle("/", s.auditLogMiddleware(s.basicAuthMiddleware(api)))

	return root
}

func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		valid, err := s.userRepo.ValidateUser(r.Context(), username, password)
		if err != nil || !valid {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondDomainError maps workflow errors onto HTTP codes: missing records
// are 404, rejected transitions 409, unknown transition names 400.
func (s *Server) respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, workflow.ErrRecordNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, workflow.ErrInvalidTransition):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, workflow.ErrUnknownTransition):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("request failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Internal error")
	}
}
