package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	mock_database "github.com/greenharvest/marketplace/internal/db/mocks"
	"github.com/greenharvest/marketplace/internal/repository"
	"github.com/greenharvest/marketplace/internal/repository/postgresql"
)

func TestHistoryRepo_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewHistoryRepo(mockDB)

		entry := &repository.HistoryEntry{
			EntityType: "order",
			EntityID:   "order-123",
			Status:     "confirmed",
			ChangedAt:  now,
		}

		mockDB.EXPECT().Exec(
			gomock.Any(),
			gomock.Any(),
			gomock.Eq(entry.EntityType),
			gomock.Eq(entry.EntityID),
			gomock.Eq(entry.Status),
			gomock.Eq(entry.ChangedAt),
		).Return(nil, nil)

		err := repo.Create(ctx, entry)
		assert.NoError(t, err)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewHistoryRepo(mockDB)

		expectedErr := errors.New("database error")
		mockDB.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, expectedErr)

		err := repo.Create(ctx, &repository.HistoryEntry{})
		assert.Equal(t, expectedErr, err)
	})
}

func TestHistoryRepo_CreateTx(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewHistoryRepo(mockDB)

		entry := &repository.HistoryEntry{
			EntityType: "request",
			EntityID:   "req-1",
			Status:     "approved",
		}

		mockTx.EXPECT().Exec(
			gomock.Any(),
			gomock.Any(),
			gomock.Eq(entry.EntityType),
			gomock.Eq(entry.EntityID),
			gomock.Eq(entry.Status),
			gomock.Eq(entry.ChangedAt),
		).Return(nil, nil)

		err := repo.CreateTx(ctx, mockTx, entry)
		assert.NoError(t, err)
	})
}

func TestHistoryRepo_GetByEntity(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("entries in chronological order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewHistoryRepo(mockDB)

		testEntries := []*repository.HistoryEntry{
			{ID: 1, EntityType: "order", EntityID: "order-123", Status: "pending", ChangedAt: now},
			{ID: 2, EntityType: "order", EntityID: "order-123", Status: "confirmed", ChangedAt: now.Add(time.Hour)},
		}

		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq("order"), gomock.Eq("order-123")).
			DoAndReturn(func(_ context.Context, dest *[]*repository.HistoryEntry, _ string, _ ...interface{}) error {
				*dest = testEntries
				return nil
			})

		entries, err := repo.GetByEntity(ctx, "order", "order-123")
		assert.NoError(t, err)
		assert.Equal(t, testEntries, entries)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewHistoryRepo(mockDB)

		expectedErr := errors.New("database error")
		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(expectedErr)

		_, err := repo.GetByEntity(ctx, "order", "order-123")
		assert.Equal(t, expectedErr, err)
	})
}
