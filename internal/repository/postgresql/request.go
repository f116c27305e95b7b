package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"github.com/greenharvest/marketplace/internal/db"
	"github.com/greenharvest/marketplace/internal/repository"
	"github.com/greenharvest/marketplace/internal/storage"
)

type RequestRepo struct {
	db db.DB
}

func NewRequestRepo(db db.DB) storage.RequestRepository {
	return &RequestRepo{db: db}
}

func (r *RequestRepo) Create(ctx context.Context, req *repository.ProductRequest) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO product_requests (
            id, farmer_id, product_name, category, quantity, price, description, status, notes, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `, req.ID, req.FarmerID, req.ProductName, req.Category, req.Quantity, req.Price,
		req.Description, req.Status, req.Notes, req.CreatedAt, req.UpdatedAt)
	return err
}

func (r *RequestRepo) GetByID(ctx context.Context, id string) (*repository.ProductRequest, error) {
	var req repository.ProductRequest
	err := r.db.Get(ctx, &req, "SELECT * FROM product_requests WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepo) GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.ProductRequest, error) {
	var req repository.ProductRequest
	err := tx.Get(ctx, &req, "SELECT * FROM product_requests WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepo) UpdateTx(ctx context.Context, tx db.Tx, req *repository.ProductRequest) error {
	_, err := tx.Exec(ctx, `
        UPDATE product_requests
        SET
            status = $1,
            notes = $2,
            updated_at = $3
        WHERE id = $4
    `, req.Status, req.Notes, req.UpdatedAt, req.ID)
	return err
}

func (r *RequestRepo) GetByFarmerID(ctx context.Context, farmerID string) ([]*repository.ProductRequest, error) {
	var requests []*repository.ProductRequest
	err := r.db.Select(ctx, &requests,
		"SELECT * FROM product_requests WHERE farmer_id = $1 ORDER BY created_at DESC", farmerID)
	return requests, err
}

func (r *RequestRepo) GetAll(ctx context.Context) ([]*repository.ProductRequest, error) {
	var requests []*repository.ProductRequest
	err := r.db.Select(ctx, &requests, "SELECT * FROM product_requests ORDER BY created_at DESC")
	return requests, err
}
