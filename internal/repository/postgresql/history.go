package postgresql

import (
	"context"

	"github.com/greenharvest/marketplace/internal/db"
	"github.com/greenharvest/marketplace/internal/repository"
	"github.com/greenharvest/marketplace/internal/storage"
)

type HistoryRepo struct {
	db db.DB
}

func NewHistoryRepo(db db.DB) storage.HistoryRepository {
	return &HistoryRepo{db: db}
}

func (r *HistoryRepo) Create(ctx context.Context, entry *repository.HistoryEntry) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO status_history (entity_type, entity_id, status, changed_at)
        VALUES ($1, $2, $3, $4)
    `, entry.EntityType, entry.EntityID, entry.Status, entry.ChangedAt)
	return err
}

func (r *HistoryRepo) CreateTx(ctx context.Context, tx db.Tx, entry *repository.HistoryEntry) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO status_history (entity_type, entity_id, status, changed_at)
        VALUES ($1, $2, $3, $4)
    `, entry.EntityType, entry.EntityID, entry.Status, entry.ChangedAt)
	return err
}

func (r *HistoryRepo) GetByEntity(ctx context.Context, entityType, entityID string) ([]*repository.HistoryEntry, error) {
	var entries []*repository.HistoryEntry
	err := r.db.Select(ctx, &entries, `
        SELECT * FROM status_history
        WHERE entity_type = $1 AND entity_id = $2
        ORDER BY changed_at ASC
    `, entityType, entityID)
	return entries, err
}
