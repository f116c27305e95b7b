package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"github.com/greenharvest/marketplace/internal/db"
	"github.com/greenharvest/marketplace/internal/repository"
	"github.com/greenharvest/marketplace/internal/storage"
)

type AvailabilityRepo struct {
	db db.DB
}

func NewAvailabilityRepo(db db.DB) storage.AvailabilityRepository {
	return &AvailabilityRepo{db: db}
}

func (r *AvailabilityRepo) Create(ctx context.Context, av *repository.ProductAvailability) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO product_availability (
            id, farmer_id, product_id, product_name, quantity, price,
            harvest_date, expiry_date, status, notes, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    `, av.ID, av.FarmerID, av.ProductID, av.ProductName, av.Quantity, av.Price,
		av.HarvestDate, av.ExpiryDate, av.Status, av.Notes, av.CreatedAt, av.UpdatedAt)
	return err
}

func (r *AvailabilityRepo) GetByID(ctx context.Context, id string) (*repository.ProductAvailability, error) {
	var av repository.ProductAvailability
	err := r.db.Get(ctx, &av, "SELECT * FROM product_availability WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &av, nil
}

// GetByIDTx locks the row for the duration of the transaction so a
// read-modify-write of the quantity cannot interleave with another writer.
func (r *AvailabilityRepo) GetByIDTx(ctx context.Context, tx db.Tx, id string) (*repository.ProductAvailability, error) {
	var av repository.ProductAvailability
	err := tx.Get(ctx, &av, "SELECT * FROM product_availability WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &av, nil
}

func (r *AvailabilityRepo) UpdateTx(ctx context.Context, tx db.Tx, av *repository.ProductAvailability) error {
	_, err := tx.Exec(ctx, `
        UPDATE product_availability
        SET
            quantity = $1,
            price = $2,
            status = $3,
            notes = $4,
            updated_at = $5
        WHERE id = $6
    `, av.Quantity, av.Price, av.Status, av.Notes, av.UpdatedAt, av.ID)
	return err
}

func (r *AvailabilityRepo) GetByFarmerID(ctx context.Context, farmerID string) ([]*repository.ProductAvailability, error) {
	var entries []*repository.ProductAvailability
	err := r.db.Select(ctx, &entries,
		"SELECT * FROM product_availability WHERE farmer_id = $1 ORDER BY created_at DESC", farmerID)
	return entries, err
}

func (r *AvailabilityRepo) GetAll(ctx context.Context) ([]*repository.ProductAvailability, error) {
	var entries []*repository.ProductAvailability
	err := r.db.Select(ctx, &entries, "SELECT * FROM product_availability ORDER BY created_at DESC")
	return entries, err
}

// GetAllInStock feeds the warm-start of the availability cache. Out-of-stock
// entries are not cached.
func (r *AvailabilityRepo) GetAllInStock(ctx context.Context) ([]*repository.ProductAvailability, error) {
	var entries []*repository.ProductAvailability
	err := r.db.Select(ctx, &entries, `
        SELECT * FROM product_availability
        WHERE status IN ('available', 'low_stock')
        ORDER BY created_at ASC
    `)
	return entries, err
}
