package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"github.com/greenharvest/marketplace/internal/db"
	"github.com/greenharvest/marketplace/internal/repository"
	"github.com/greenharvest/marketplace/internal/storage"
)

type OrderRepo struct {
	db db.DB
}

func NewOrderRepo(db db.DB) storage.OrderRepository {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) CreateTx(ctx context.Context, tx db.Tx, order *repository.Order, items []repository.OrderItem) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO orders (
            id, customer_id, total_amount, status, estimated_delivery, notes, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `, order.ID, order.CustomerID, order.TotalAmount, order.Status,
		order.EstimatedDelivery, order.Notes, order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return err
	}

	for _, item := range items {
		_, err := tx.Exec(ctx, `
            INSERT INTO order_items (order_id, product_id, product_name, quantity, price, farmer_id)
            VALUES ($1, $2, $3, $4, $5, $6)
        `, order.ID, item.ProductID, item.ProductName, item.Quantity, item.Price, item.FarmerID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*repository.Order, error) {
	var order repository.Order
	err := r.db.Get(ctx, &order, "SELECT * FROM orders WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepo) GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.Order, error) {
	var order repository.Order
	err := tx.Get(ctx, &order, "SELECT * FROM orders WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepo) UpdateTx(ctx context.Context, tx db.Tx, order *repository.Order) error {
	_, err := tx.Exec(ctx, `
        UPDATE orders
        SET
            status = $1,
            estimated_delivery = $2,
            notes = $3,
            updated_at = $4
        WHERE id = $5
    `, order.Status, order.EstimatedDelivery, order.Notes, order.UpdatedAt, order.ID)
	return err
}

func (r *OrderRepo) GetItems(ctx context.Context, orderID string) ([]repository.OrderItem, error) {
	var items []repository.OrderItem
	err := r.db.Select(ctx, &items,
		"SELECT * FROM order_items WHERE order_id = $1 ORDER BY id", orderID)
	return items, err
}

func (r *OrderRepo) GetByCustomerID(ctx context.Context, customerID string) ([]*repository.Order, error) {
	var orders []*repository.Order
	err := r.db.Select(ctx, &orders,
		"SELECT * FROM orders WHERE customer_id = $1 ORDER BY created_at DESC", customerID)
	return orders, err
}

func (r *OrderRepo) GetAll(ctx context.Context) ([]*repository.Order, error) {
	var orders []*repository.Order
	err := r.db.Select(ctx, &orders, "SELECT * FROM orders ORDER BY created_at DESC")
	return orders, err
}

// GetDeliveredTotal sums the frozen total_amount over a customer's delivered
// orders. Loyalty tiers are derived from this figure.
func (r *OrderRepo) GetDeliveredTotal(ctx context.Context, customerID string) (float64, error) {
	var result struct {
		Total float64 `db:"total"`
	}
	err := r.db.Get(ctx, &result, `
        SELECT COALESCE(SUM(total_amount), 0) AS total
        FROM orders
        WHERE customer_id = $1 AND status = 'delivered'
    `, customerID)
	if err != nil {
		return 0, err
	}
	return result.Total, nil
}
