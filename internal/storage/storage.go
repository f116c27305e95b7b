//go:generate mockgen -source ./storage.go -destination=./mocks/storage.go -package=mock_storage
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/greenharvest/marketplace/internal/db"
	"github.com/greenharvest/marketplace/internal/draftstore"
	"github.com/greenharvest/marketplace/internal/metrics"
	"github.com/greenharvest/marketplace/internal/repository"
	"github.com/greenharvest/marketplace/internal/stats"
	"github.com/greenharvest/marketplace/internal/workflow"
)

const (
	EntityRequest      = "request"
	EntityOrder        = "order"
	EntityFarmerOrder  = "farmer_order"
	EntityAvailability = "availability"

	auditTopic = "workflow_audit"

	estimatedDeliveryWindow = 3 * 24 * time.Hour
)

type RequestRepository interface {
	Create(ctx context.Context, req *repository.ProductRequest) error
	GetByID(ctx context.Context, id string) (*repository.ProductRequest, error)
	GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.ProductRequest, error)
	UpdateTx(ctx context.Context, tx db.Tx, req *repository.ProductRequest) error
	GetByFarmerID(ctx context.Context, farmerID string) ([]*repository.ProductRequest, error)
	GetAll(ctx context.Context) ([]*repository.ProductRequest, error)
}

type OrderRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, order *repository.Order, items []repository.OrderItem) error
	GetByID(ctx context.Context, id string) (*repository.Order, error)
	GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.Order, error)
	UpdateTx(ctx context.Context, tx db.Tx, order *repository.Order) error
	GetItems(ctx context.Context, orderID string) ([]repository.OrderItem, error)
	GetByCustomerID(ctx context.Context, customerID string) ([]*repository.Order, error)
	GetAll(ctx context.Context) ([]*repository.Order, error)
	GetDeliveredTotal(ctx context.Context, customerID string) (float64, error)
}

type FarmerOrderRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, fo *repository.FarmerOrder) error
	GetByID(ctx context.Context, id string) (*repository.FarmerOrder, error)
	GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.FarmerOrder, error)
	UpdateTx(ctx context.Context, tx db.Tx, fo *repository.FarmerOrder) error
	GetByFarmerID(ctx context.Context, farmerID string) ([]*repository.FarmerOrder, error)
	GetByOrderID(ctx context.Context, orderID string) ([]*repository.FarmerOrder, error)
}

type AvailabilityRepository interface {
	Create(ctx context.Context, av *repository.ProductAvailability) error
	GetByID(ctx context.Context, id string) (*repository.ProductAvailability, error)
	GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.ProductAvailability, error)
	UpdateTx(ctx context.Context, tx db.Tx, av *repository.ProductAvailability) error
	GetByFarmerID(ctx context.Context, farmerID string) ([]*repository.ProductAvailability, error)
	GetAll(ctx context.Context) ([]*repository.ProductAvailability, error)
	GetAllInStock(ctx context.Context) ([]*repository.ProductAvailability, error)
}

type HistoryRepository interface {
	Create(ctx context.Context, entry *repository.HistoryEntry) error
	CreateTx(ctx context.Context, tx db.Tx, entry *repository.HistoryEntry) error
	GetByEntity(ctx context.Context, entityType, entityID string) ([]*repository.HistoryEntry, error)
}

type OutboxTaskRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, task *repository.OutboxTask) error
	GetProcessableTasks(ctx context.Context, tx db.Tx, limit int) ([]*repository.OutboxTask, error)
	UpdateTaskStatusTx(ctx context.Context, tx db.Tx, id uuid.UUID, status repository.TaskStatus, attempts int, lastError *string, completedAt *time.Time) error
	UpdateTaskStatus(ctx context.Context, db db.DB, id uuid.UUID, status repository.TaskStatus, attempts int, lastError *string, completedAt *time.Time) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, username, password, role string) error
	ValidateUser(ctx context.Context, username, password string) (bool, error)
}

// DraftStore keeps the namespaced per-role JSON copies of workflow
// collections. Writes to it are independent of the Postgres transaction.
type DraftStore interface {
	Load(key string, dest any) error
	Save(key string, collection any) error
}

// AvailabilityCache is a read-through cache of in-stock entries.
type AvailabilityCache interface {
	Get(id string) (*repository.ProductAvailability, bool)
	Set(av *repository.ProductAvailability)
	Delete(id string)
}

// HistoryEntry is the outward view of one status change.
type HistoryEntry struct {
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changed_at"`
}

// LoyaltySummary is derived from a customer's delivered-order spend.
type LoyaltySummary struct {
	CustomerID    string     `json:"customer_id"`
	TotalSpent    float64    `json:"total_spent"`
	Tier          stats.Tier `json:"tier"`
	Progress      float64    `json:"progress"`
	NextThreshold float64    `json:"next_threshold"`
}

type Storage struct {
	db           db.DB
	requests     RequestRepository
	orders       OrderRepository
	farmerOrders FarmerOrderRepository
	availability AvailabilityRepository
	history      HistoryRepository
	outbox       OutboxTaskRepository
	drafts       DraftStore
	cache        AvailabilityCache

	timeNow func() time.Time
	newID   func() string
}

func NewStorage(
	db db.DB,
	requests RequestRepository,
	orders OrderRepository,
	farmerOrders FarmerOrderRepository,
	availability AvailabilityRepository,
	history HistoryRepository,
	outbox OutboxTaskRepository,
	drafts DraftStore,
) *Storage {
	return &Storage{
		db:           db,
		requests:     requests,
		orders:       orders,
		farmerOrders: farmerOrders,
		availability: availability,
		history:      history,
		outbox:       outbox,
		drafts:       drafts,
		timeNow:      time.Now,
		newID:        func() string { return uuid.NewString() },
	}
}

// WithAvailabilityCache attaches a warm cache for availability lookups.
func (s *Storage) WithAvailabilityCache(cache AvailabilityCache) *Storage {
	s.cache = cache
	return s
}

// SubmitRequest records a farmer's new product request as pending and mirrors
// it into the farmer's draft namespace.
func (s *Storage) SubmitRequest(ctx context.Context, req workflow.ProductRequest) (*workflow.ProductRequest, error) {
	if req.FarmerID == "" {
		return nil, errors.New("request must have a farmer id")
	}
	if req.ProductName == "" {
		return nil, errors.New("request must have a product name")
	}

	if req.ID == "" {
		req.ID = s.newID()
	}
	req.Status = workflow.RequestPending
	req.CreatedDate = s.timeNow().UTC()

	repoReq := toRepoRequest(req)
	if err := s.requests.Create(ctx, repoReq); err != nil {
		return nil, fmt.Errorf("failed to add product request: %w", err)
	}

	entry := &repository.HistoryEntry{
		EntityType: EntityRequest,
		EntityID:   req.ID,
		Status:     string(req.Status),
		ChangedAt:  s.timeNow().UTC(),
	}
	if err := s.history.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to add request history entry: %w", err)
	}

	if err := s.mirrorRequest(req); err != nil {
		return nil, err
	}

	metrics.RequestsSubmittedTotal.Inc()
	return &req, nil
}

// ResolveRequest applies an admin decision (approve or reject) to a pending
// request. The status change, its history entry and the audit outbox task are
// committed in one transaction; the farmer's draft copy is rewritten after
// the commit, as a second independent write.
func (s *Storage) ResolveRequest(ctx context.Context, id string, t workflow.Transition, notes string) (*workflow.ProductRequest, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repoReq, err := s.requests.GetByIDTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: request %s", workflow.ErrRecordNotFound, id)
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	target, err := workflow.CheckRequestTransition(workflow.RequestStatus(repoReq.Status), t)
	if err != nil {
		metrics.InvalidTransitionsTotal.WithLabelValues(EntityRequest).Inc()
		return nil, err
	}

	now := s.timeNow().UTC()
	oldStatus := repoReq.Status
	repoReq.Status = string(target)
	repoReq.Notes = nullable(notes)
	repoReq.UpdatedAt = now

	if err := s.requests.UpdateTx(ctx, tx, repoReq); err != nil {
		return nil, fmt.Errorf("failed to update request: %w", err)
	}

	if err := s.appendAudit(ctx, tx, EntityRequest, id, string(t), oldStatus, repoReq.Status, notes, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	req := fromRepoRequest(repoReq)
	if err := s.mirrorResolvedRequest(req, t, notes); err != nil {
		return nil, err
	}

	metrics.TransitionsAppliedTotal.WithLabelValues(EntityRequest).Inc()
	if target == workflow.RequestApproved {
		metrics.RequestsApprovedTotal.Inc()
	} else {
		metrics.RequestsRejectedTotal.Inc()
	}
	return &req, nil
}

func (s *Storage) GetRequest(ctx context.Context, id string) (*workflow.ProductRequest, error) {
	repoReq, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: request %s", workflow.ErrRecordNotFound, id)
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	req := fromRepoRequest(repoReq)
	return &req, nil
}

func (s *Storage) GetRequests(ctx context.Context) ([]workflow.ProductRequest, error) {
	repoReqs, err := s.requests.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return fromRepoRequests(repoReqs), nil
}

func (s *Storage) GetFarmerRequests(ctx context.Context, farmerID string) ([]workflow.ProductRequest, error) {
	repoReqs, err := s.requests.GetByFarmerID(ctx, farmerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list farmer requests: %w", err)
	}
	return fromRepoRequests(repoReqs), nil
}

// CreateOrder persists a customer order with its line items and fans out one
// pending farmer order per farmer represented in the items. TotalAmount is
// frozen from the live item sum at this point and never recomputed.
func (s *Storage) CreateOrder(ctx context.Context, order workflow.Order) (*workflow.Order, error) {
	if order.CustomerID == "" {
		return nil, errors.New("order must have a customer id")
	}
	if len(order.Items) == 0 {
		return nil, errors.New("order must contain at least one item")
	}
	for _, item := range order.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("order item quantity for product %s must be greater than zero", item.ProductID)
		}
		if item.Price < 0 {
			return nil, fmt.Errorf("order item price for product %s cannot be negative", item.ProductID)
		}
	}

	if order.ID == "" {
		order.ID = s.newID()
	}
	now := s.timeNow().UTC()
	order.Status = workflow.OrderPending
	order.TotalAmount = stats.SumItemValue(order.Items)
	order.CreatedDate = now
	order.UpdatedDate = now

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repoOrder, repoItems := toRepoOrder(order)
	if err := s.orders.CreateTx(ctx, tx, repoOrder, repoItems); err != nil {
		return nil, fmt.Errorf("failed to add order: %w", err)
	}

	for _, farmerID := range farmerIDs(order.Items) {
		fo := &repository.FarmerOrder{
			ID:        s.newID(),
			OrderID:   order.ID,
			FarmerID:  farmerID,
			Status:    string(workflow.FarmerOrderPending),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.farmerOrders.CreateTx(ctx, tx, fo); err != nil {
			return nil, fmt.Errorf("failed to add farmer order for farmer %s: %w", farmerID, err)
		}
	}

	if err := s.appendAudit(ctx, tx, EntityOrder, order.ID, "create", "", string(order.Status), order.Notes, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if err := s.mirrorOrder(order); err != nil {
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()
	return &order, nil
}

func (s *Storage) GetOrder(ctx context.Context, id string) (*workflow.Order, error) {
	repoOrder, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: order %s", workflow.ErrRecordNotFound, id)
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	items, err := s.orders.GetItems(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	order := fromRepoOrder(repoOrder, items)
	return &order, nil
}

func (s *Storage) GetCustomerOrders(ctx context.Context, customerID string) ([]workflow.Order, error) {
	repoOrders, err := s.orders.GetByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list customer orders: %w", err)
	}

	orders := make([]workflow.Order, len(repoOrders))
	for i, repoOrder := range repoOrders {
		items, err := s.orders.GetItems(ctx, repoOrder.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get items for order %s: %w", repoOrder.ID, err)
		}
		orders[i] = fromRepoOrder(repoOrder, items)
	}
	return orders, nil
}

// UpdateOrderStatus moves an order to the target status, provided the
// allowed-next table permits the move. Confirming an order stamps an
// estimated delivery date if none is set.
func (s *Storage) UpdateOrderStatus(ctx context.Context, id string, target workflow.OrderStatus) (*workflow.Order, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repoOrder, err := s.orders.GetByIDTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: order %s", workflow.ErrRecordNotFound, id)
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if err := workflow.CheckOrderTransition(workflow.OrderStatus(repoOrder.Status), target); err != nil {
		metrics.InvalidTransitionsTotal.WithLabelValues(EntityOrder).Inc()
		return nil, err
	}

	now := s.timeNow().UTC()
	oldStatus := repoOrder.Status
	repoOrder.Status = string(target)
	repoOrder.UpdatedAt = now
	if target == workflow.OrderConfirmed && repoOrder.EstimatedDelivery == nil {
		eta := now.Add(estimatedDeliveryWindow)
		repoOrder.EstimatedDelivery = &eta
	}

	if err := s.orders.UpdateTx(ctx, tx, repoOrder); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	if err := s.appendAudit(ctx, tx, EntityOrder, id, "status_change", oldStatus, repoOrder.Status, "", now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	items, err := s.orders.GetItems(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	order := fromRepoOrder(repoOrder, items)

	if err := s.mirrorOrderStatus(order, now); err != nil {
		return nil, err
	}

	metrics.TransitionsAppliedTotal.WithLabelValues(EntityOrder).Inc()
	return &order, nil
}

func (s *Storage) CancelOrder(ctx context.Context, id string) (*workflow.Order, error) {
	return s.UpdateOrderStatus(ctx, id, workflow.OrderCancelled)
}

// CreateFarmerOrder records a pending farmer order against an existing
// customer order, for items added outside the create-order fan-out. The
// parent order is locked while the row is inserted.
func (s *Storage) CreateFarmerOrder(ctx context.Context, fo workflow.FarmerOrder) (*workflow.FarmerOrder, error) {
	if fo.OrderID == "" {
		return nil, errors.New("farmer order must have an order id")
	}
	if fo.FarmerID == "" {
		return nil, errors.New("farmer order must have a farmer id")
	}

	if fo.ID == "" {
		fo.ID = s.newID()
	}
	now := s.timeNow().UTC()
	fo.Status = workflow.FarmerOrderPending
	fo.CreatedDate = now

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := s.orders.GetByIDTx(ctx, tx, fo.OrderID); err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: order %s", workflow.ErrRecordNotFound, fo.OrderID)
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	repoFO := &repository.FarmerOrder{
		ID:        fo.ID,
		OrderID:   fo.OrderID,
		FarmerID:  fo.FarmerID,
		Status:    string(fo.Status),
		Notes:     nullable(fo.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.farmerOrders.CreateTx(ctx, tx, repoFO); err != nil {
		return nil, fmt.Errorf("failed to add farmer order: %w", err)
	}

	if err := s.appendAudit(ctx, tx, EntityFarmerOrder, fo.ID, "create", "", string(fo.Status), fo.Notes, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if err := s.mirrorNewFarmerOrder(fo); err != nil {
		return nil, err
	}
	return &fo, nil
}

// AdvanceFarmerOrder moves a farmer order one step along the fulfillment
// pipeline (confirm, pack, ship, deliver), stamping the step's date column.
func (s *Storage) AdvanceFarmerOrder(ctx context.Context, id string, t workflow.Transition) (*workflow.FarmerOrder, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repoFO, err := s.farmerOrders.GetByIDTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: farmer order %s", workflow.ErrRecordNotFound, id)
		}
		return nil, fmt.Errorf("failed to get farmer order: %w", err)
	}

	target, err := workflow.CheckFarmerOrderTransition(workflow.FarmerOrderStatus(repoFO.Status), t)
	if err != nil {
		metrics.InvalidTransitionsTotal.WithLabelValues(EntityFarmerOrder).Inc()
		return nil, err
	}

	now := s.timeNow().UTC()
	oldStatus := repoFO.Status
	repoFO.Status = string(target)
	repoFO.UpdatedAt = now
	switch target {
	case workflow.FarmerOrderConfirmed:
		repoFO.ConfirmedAt = &now
	case workflow.FarmerOrderShipped:
		repoFO.ShippedAt = &now
	case workflow.FarmerOrderDelivered:
		repoFO.DeliveredAt = &now
	}

	if err := s.farmerOrders.UpdateTx(ctx, tx, repoFO); err != nil {
		return nil, fmt.Errorf("failed to update farmer order: %w", err)
	}

	if err := s.appendAudit(ctx, tx, EntityFarmerOrder, id, string(t), oldStatus, repoFO.Status, "", now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	fo := fromRepoFarmerOrder(repoFO, nil)
	if err := s.mirrorFarmerOrder(fo, t, now); err != nil {
		return nil, err
	}

	metrics.TransitionsAppliedTotal.WithLabelValues(EntityFarmerOrder).Inc()
	return &fo, nil
}

func (s *Storage) GetFarmerOrders(ctx context.Context, farmerID string) ([]workflow.FarmerOrder, error) {
	repoFOs, err := s.farmerOrders.GetByFarmerID(ctx, farmerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list farmer orders: %w", err)
	}

	orders := make([]workflow.FarmerOrder, len(repoFOs))
	for i, repoFO := range repoFOs {
		items, err := s.orders.GetItems(ctx, repoFO.OrderID)
		if err != nil {
			return nil, fmt.Errorf("failed to get items for order %s: %w", repoFO.OrderID, err)
		}
		orders[i] = fromRepoFarmerOrder(repoFO, filterItemsByFarmer(items, repoFO.FarmerID))
	}
	return orders, nil
}

// CreateAvailability records a farmer's stock entry. The status is a pure
// function of the quantity.
func (s *Storage) CreateAvailability(ctx context.Context, av workflow.ProductAvailability) (*workflow.ProductAvailability, error) {
	if av.FarmerID == "" || av.ProductID == "" {
		return nil, errors.New("availability must have farmer and product ids")
	}

	if av.ID == "" {
		av.ID = s.newID()
	}
	av.Status = workflow.AvailabilityStatusFor(av.Quantity)
	av.CreatedDate = s.timeNow().UTC()

	repoAv := toRepoAvailability(av)
	if err := s.availability.Create(ctx, repoAv); err != nil {
		return nil, fmt.Errorf("failed to add availability: %w", err)
	}

	entry := &repository.HistoryEntry{
		EntityType: EntityAvailability,
		EntityID:   av.ID,
		Status:     string(av.Status),
		ChangedAt:  av.CreatedDate,
	}
	if err := s.history.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to add availability history entry: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(repoAv)
	}
	return &av, nil
}

// AdjustAvailabilityQuantity sets a new quantity and re-derives the stock
// status from it, holding the row lock for the whole read-modify-write. A
// status change is audited like any other transition.
func (s *Storage) AdjustAvailabilityQuantity(ctx context.Context, id string, quantity int) (*workflow.ProductAvailability, error) {
	if quantity < 0 {
		return nil, errors.New("quantity cannot be negative")
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repoAv, err := s.availability.GetByIDTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: availability %s", workflow.ErrRecordNotFound, id)
		}
		return nil, fmt.Errorf("failed to get availability: %w", err)
	}

	now := s.timeNow().UTC()
	oldStatus := repoAv.Status
	repoAv.Quantity = quantity
	repoAv.Status = string(workflow.AvailabilityStatusFor(quantity))
	repoAv.UpdatedAt = now

	if err := s.availability.UpdateTx(ctx, tx, repoAv); err != nil {
		return nil, fmt.Errorf("failed to update availability: %w", err)
	}

	if repoAv.Status != oldStatus {
		if err := s.appendAudit(ctx, tx, EntityAvailability, id, "adjust_quantity", oldStatus, repoAv.Status, "", now); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if repoAv.Status != oldStatus {
		metrics.TransitionsAppliedTotal.WithLabelValues(EntityAvailability).Inc()
	}
	if s.cache != nil {
		s.cache.Set(repoAv)
	}

	av := fromRepoAvailability(repoAv)
	return &av, nil
}

func (s *Storage) GetAvailability(ctx context.Context, id string) (*workflow.ProductAvailability, error) {
	if s.cache != nil {
		if repoAv, found := s.cache.Get(id); found {
			av := fromRepoAvailability(repoAv)
			return &av, nil
		}
	}

	repoAv, err := s.availability.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: availability %s", workflow.ErrRecordNotFound, id)
		}
		return nil, fmt.Errorf("failed to get availability: %w", err)
	}
	if s.cache != nil {
		s.cache.Set(repoAv)
	}
	av := fromRepoAvailability(repoAv)
	return &av, nil
}

func (s *Storage) GetFarmerAvailability(ctx context.Context, farmerID string) ([]workflow.ProductAvailability, error) {
	repoAvs, err := s.availability.GetByFarmerID(ctx, farmerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list farmer availability: %w", err)
	}

	entries := make([]workflow.ProductAvailability, len(repoAvs))
	for i, repoAv := range repoAvs {
		entries[i] = fromRepoAvailability(repoAv)
	}
	return entries, nil
}

func (s *Storage) GetHistory(ctx context.Context, entityType, entityID string) ([]HistoryEntry, error) {
	repoEntries, err := s.history.GetByEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get status history: %w", err)
	}

	entries := make([]HistoryEntry, len(repoEntries))
	for i, repoEntry := range repoEntries {
		entries[i] = HistoryEntry{
			Status:    repoEntry.Status,
			ChangedAt: repoEntry.ChangedAt,
		}
	}
	return entries, nil
}

func (s *Storage) RequestStats(ctx context.Context) (map[workflow.RequestStatus]int, error) {
	repoReqs, err := s.requests.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return stats.BucketCounts(repoReqs, func(r *repository.ProductRequest) workflow.RequestStatus {
		return workflow.RequestStatus(r.Status)
	}), nil
}

func (s *Storage) OrderStats(ctx context.Context) (map[workflow.OrderStatus]int, error) {
	repoOrders, err := s.orders.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return stats.BucketCounts(repoOrders, func(o *repository.Order) workflow.OrderStatus {
		return workflow.OrderStatus(o.Status)
	}), nil
}

func (s *Storage) AvailabilityStats(ctx context.Context) (map[workflow.AvailabilityStatus]int, error) {
	repoAvs, err := s.availability.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability: %w", err)
	}
	return stats.BucketCounts(repoAvs, func(a *repository.ProductAvailability) workflow.AvailabilityStatus {
		return workflow.AvailabilityStatus(a.Status)
	}), nil
}

// GetLoyaltySummary computes the customer's tier from the frozen totals of
// delivered orders.
func (s *Storage) GetLoyaltySummary(ctx context.Context, customerID string) (*LoyaltySummary, error) {
	total, err := s.orders.GetDeliveredTotal(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum delivered orders: %w", err)
	}

	return &LoyaltySummary{
		CustomerID:    customerID,
		TotalSpent:    total,
		Tier:          stats.LoyaltyTier(total),
		Progress:      stats.TierProgress(total),
		NextThreshold: stats.NextThreshold(total),
	}, nil
}

func (s *Storage) appendAudit(ctx context.Context, tx db.Tx, entityType, entityID, action, oldStatus, newStatus, notes string, now time.Time) error {
	entry := &repository.HistoryEntry{
		EntityType: entityType,
		EntityID:   entityID,
		Status:     newStatus,
		ChangedAt:  now,
	}
	if err := s.history.CreateTx(ctx, tx, entry); err != nil {
		return fmt.Errorf("failed to add history entry: %w", err)
	}

	payload, err := json.Marshal(repository.WorkflowEventPayload{
		Timestamp:  now,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		OldStatus:  oldStatus,
		NewStatus:  newStatus,
		Notes:      notes,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal workflow event: %w", err)
	}

	task := &repository.OutboxTask{
		Payload: payload,
		Topic:   auditTopic,
	}
	if err := s.outbox.CreateTx(ctx, tx, task); err != nil {
		return fmt.Errorf("failed to enqueue outbox task: %w", err)
	}
	return nil
}

// mirrorRequest appends a freshly submitted request to the farmer's draft
// namespace.
func (s *Storage) mirrorRequest(req workflow.ProductRequest) error {
	key := draftstore.Key("farmer", "requests", req.FarmerID)

	var requests []workflow.ProductRequest
	if err := s.drafts.Load(key, &requests); err != nil {
		return fmt.Errorf("failed to load draft requests: %w", err)
	}
	requests = append(requests, req)
	if err := s.drafts.Save(key, requests); err != nil {
		return fmt.Errorf("failed to save draft requests: %w", err)
	}
	return nil
}

// mirrorResolvedRequest replays the admin decision onto the farmer's draft
// copy so both views carry identical field values. A record missing from the
// draft is appended as resolved.
func (s *Storage) mirrorResolvedRequest(req workflow.ProductRequest, t workflow.Transition, notes string) error {
	key := draftstore.Key("farmer", "requests", req.FarmerID)

	var requests []workflow.ProductRequest
	if err := s.drafts.Load(key, &requests); err != nil {
		return fmt.Errorf("failed to load draft requests: %w", err)
	}

	updated, err := workflow.ApplyRequestTransition(requests, req.ID, t, notes)
	if err != nil {
		if !errors.Is(err, workflow.ErrRecordNotFound) {
			return fmt.Errorf("failed to mirror request decision: %w", err)
		}
		updated = append(requests, req)
	}

	if err := s.drafts.Save(key, updated); err != nil {
		return fmt.Errorf("failed to save draft requests: %w", err)
	}
	return nil
}

func (s *Storage) mirrorOrder(order workflow.Order) error {
	key := draftstore.Key("customer", "orders", order.CustomerID)

	var orders []workflow.Order
	if err := s.drafts.Load(key, &orders); err != nil {
		return fmt.Errorf("failed to load draft orders: %w", err)
	}
	orders = append(orders, order)
	if err := s.drafts.Save(key, orders); err != nil {
		return fmt.Errorf("failed to save draft orders: %w", err)
	}
	return nil
}

func (s *Storage) mirrorOrderStatus(order workflow.Order, now time.Time) error {
	key := draftstore.Key("customer", "orders", order.CustomerID)

	var orders []workflow.Order
	if err := s.drafts.Load(key, &orders); err != nil {
		return fmt.Errorf("failed to load draft orders: %w", err)
	}

	updated, err := workflow.ApplyOrderTransition(orders, order.ID, order.Status, now)
	if err != nil {
		if !errors.Is(err, workflow.ErrRecordNotFound) {
			return fmt.Errorf("failed to mirror order status: %w", err)
		}
		updated = append(orders, order)
	}

	// The transition replay only touches status and the updated date, so
	// fields stamped alongside the transition are carried over explicitly.
	updated = workflow.Patch(updated, order.ID, func(o workflow.Order) workflow.Order {
		o.EstimatedDelivery = order.EstimatedDelivery
		return o
	})

	if err := s.drafts.Save(key, updated); err != nil {
		return fmt.Errorf("failed to save draft orders: %w", err)
	}
	return nil
}

func (s *Storage) mirrorNewFarmerOrder(fo workflow.FarmerOrder) error {
	key := draftstore.Key("farmer", "orders", fo.FarmerID)

	var orders []workflow.FarmerOrder
	if err := s.drafts.Load(key, &orders); err != nil {
		return fmt.Errorf("failed to load draft farmer orders: %w", err)
	}
	orders = append(orders, fo)
	if err := s.drafts.Save(key, orders); err != nil {
		return fmt.Errorf("failed to save draft farmer orders: %w", err)
	}
	return nil
}

func (s *Storage) mirrorFarmerOrder(fo workflow.FarmerOrder, t workflow.Transition, now time.Time) error {
	key := draftstore.Key("farmer", "orders", fo.FarmerID)

	var orders []workflow.FarmerOrder
	if err := s.drafts.Load(key, &orders); err != nil {
		return fmt.Errorf("failed to load draft farmer orders: %w", err)
	}

	updated, err := workflow.ApplyFarmerOrderTransition(orders, fo.ID, t, now)
	if err != nil {
		if !errors.Is(err, workflow.ErrRecordNotFound) {
			return fmt.Errorf("failed to mirror farmer order: %w", err)
		}
		updated = append(orders, fo)
	}

	if err := s.drafts.Save(key, updated); err != nil {
		return fmt.Errorf("failed to save draft farmer orders: %w", err)
	}
	return nil
}

// farmerIDs returns the distinct farmer ids of an item list, in first-seen order.
func farmerIDs(items []workflow.OrderItem) []string {
	seen := make(map[string]bool, len(items))
	var ids []string
	for _, item := range items {
		if item.FarmerID == "" || seen[item.FarmerID] {
			continue
		}
		seen[item.FarmerID] = true
		ids = append(ids, item.FarmerID)
	}
	return ids
}

func filterItemsByFarmer(items []repository.OrderItem, farmerID string) []repository.OrderItem {
	var out []repository.OrderItem
	for _, item := range items {
		if item.FarmerID == farmerID {
			out = append(out, item)
		}
	}
	return out
}
