package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"github.com/greenharvest/marketplace/internal/db"
	"github.com/greenharvest/marketplace/internal/repository"
	"github.com/greenharvest/marketplace/internal/storage"
)

type FarmerOrderRepo struct {
	db db.DB
}

func NewFarmerOrderRepo(db db.DB) storage.FarmerOrderRepository {
	return &FarmerOrderRepo{db: db}
}

func (r *FarmerOrderRepo) CreateTx(ctx context.Context, tx db.Tx, fo *repository.FarmerOrder) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO farmer_orders (
            id, order_id, farmer_id, status, confirmed_at, shipped_at, delivered_at, notes, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `, fo.ID, fo.OrderID, fo.FarmerID, fo.Status,
		fo.ConfirmedAt, fo.ShippedAt, fo.DeliveredAt, fo.Notes, fo.CreatedAt, fo.UpdatedAt)
	return err
}

func (r *FarmerOrderRepo) GetByID(ctx context.Context, id string) (*repository.FarmerOrder, error) {
	var fo repository.FarmerOrder
	err := r.db.Get(ctx, &fo, "SELECT * FROM farmer_orders WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &fo, nil
}

func (r *FarmerOrderRepo) GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.FarmerOrder, error) {
	var fo repository.FarmerOrder
	err := tx.Get(ctx, &fo, "SELECT * FROM farmer_orders WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &fo, nil
}

func (r *FarmerOrderRepo) UpdateTx(ctx context.Context, tx db.Tx, fo *repository.FarmerOrder) error {
	_, err := tx.Exec(ctx, `
        UPDATE farmer_orders
        SET
            status = $1,
            confirmed_at = $2,
            shipped_at = $3,
            delivered_at = $4,
            notes = $5,
            updated_at = $6
        WHERE id = $7
    `, fo.Status, fo.ConfirmedAt, fo.ShippedAt, fo.DeliveredAt, fo.Notes, fo.UpdatedAt, fo.ID)
	return err
}

func (r *FarmerOrderRepo) GetByFarmerID(ctx context.Context, farmerID string) ([]*repository.FarmerOrder, error) {
	var orders []*repository.FarmerOrder
	err := r.db.Select(ctx, &orders,
		"SELECT * FROM farmer_orders WHERE farmer_id = $1 ORDER BY created_at DESC", farmerID)
	return orders, err
}

func (r *FarmerOrderRepo) GetByOrderID(ctx context.Context, orderID string) ([]*repository.FarmerOrder, error) {
	var orders []*repository.FarmerOrder
	err := r.db.Select(ctx, &orders,
		"SELECT * FROM farmer_orders WHERE order_id = $1 ORDER BY created_at", orderID)
	return orders, err
}
