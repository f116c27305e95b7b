package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	mock_database "github.com/greenharvest/marketplace/internal/db/mocks"
	"github.com/greenharvest/marketplace/internal/repository"
	"github.com/greenharvest/marketplace/internal/repository/postgresql"
)

func TestRequestRepo_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewRequestRepo(mockDB)

		testReq := &repository.ProductRequest{
			ID:          "req-123",
			FarmerID:    "farmer-456",
			ProductName: "Tomatoes",
			Category:    "vegetables",
			Quantity:    50,
			Price:       2.5,
			Status:      "pending",
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		mockDB.EXPECT().Exec(
			gomock.Any(),
			gomock.Any(),
			gomock.Eq(testReq.ID),
			gomock.Eq(testReq.FarmerID),
			gomock.Eq(testReq.ProductName),
			gomock.Eq(testReq.Category),
			gomock.Eq(testReq.Quantity),
			gomock.Eq(testReq.Price),
			gomock.Eq(testReq.Description),
			gomock.Eq(testReq.Status),
			gomock.Eq(testReq.Notes),
			gomock.Eq(testReq.CreatedAt),
			gomock.Eq(testReq.UpdatedAt),
		).Return(nil, nil)

		err := repo.Create(ctx, testReq)
		assert.NoError(t, err)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewRequestRepo(mockDB)

		expectedErr := errors.New("database error")
		mockDB.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, expectedErr)

		err := repo.Create(ctx, &repository.ProductRequest{ID: "req-123"})
		assert.Equal(t, expectedErr, err)
	})
}

func TestRequestRepo_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("request found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewRequestRepo(mockDB)

		testReq := &repository.ProductRequest{
			ID:          "req-123",
			FarmerID:    "farmer-456",
			ProductName: "Tomatoes",
			Status:      "pending",
		}

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(testReq.ID)).
			DoAndReturn(func(_ context.Context, dest *repository.ProductRequest, _ string, _ string) error {
				*dest = *testReq
				return nil
			})

		req, err := repo.GetByID(ctx, testReq.ID)
		assert.NoError(t, err)
		assert.Equal(t, testReq, req)
	})

	t.Run("request not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewRequestRepo(mockDB)

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgx.ErrNoRows)

		req, err := repo.GetByID(ctx, "non-existent-id")
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
		assert.Nil(t, req)
	})
}

func TestRequestRepo_GetByIDTx(t *testing.T) {
	ctx := context.Background()

	t.Run("locks the row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewRequestRepo(mockDB)

		mockTx.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq("req-123")).
			DoAndReturn(func(_ context.Context, dest *repository.ProductRequest, query string, _ string) error {
				assert.Contains(t, query, "FOR UPDATE")
				dest.ID = "req-123"
				dest.Status = "pending"
				return nil
			})

		req, err := repo.GetByIDTx(ctx, mockTx, "req-123")
		assert.NoError(t, err)
		assert.Equal(t, "pending", req.Status)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewRequestRepo(mockDB)

		mockTx.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgx.ErrNoRows)

		req, err := repo.GetByIDTx(ctx, mockTx, "req-404")
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
		assert.Nil(t, req)
	})
}

func TestRequestRepo_UpdateTx(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewRequestRepo(mockDB)

		notes := "Approved, start shipping"
		now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
		testReq := &repository.ProductRequest{
			ID:        "req-123",
			Status:    "approved",
			Notes:     &notes,
			UpdatedAt: now,
		}

		mockTx.EXPECT().Exec(
			gomock.Any(),
			gomock.Any(),
			gomock.Eq(testReq.Status),
			gomock.Eq(testReq.Notes),
			gomock.Eq(testReq.UpdatedAt),
			gomock.Eq(testReq.ID),
		).Return(nil, nil)

		err := repo.UpdateTx(ctx, mockTx, testReq)
		assert.NoError(t, err)
	})
}

func TestRequestRepo_GetByFarmerID(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewRequestRepo(mockDB)

		farmerID := "farmer-456"
		testReqs := []*repository.ProductRequest{
			{ID: "req-1", FarmerID: farmerID, Status: "pending"},
			{ID: "req-2", FarmerID: farmerID, Status: "approved"},
		}

		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(farmerID)).
			DoAndReturn(func(_ context.Context, dest *[]*repository.ProductRequest, _ string, _ string) error {
				*dest = testReqs
				return nil
			})

		requests, err := repo.GetByFarmerID(ctx, farmerID)
		assert.NoError(t, err)
		assert.Equal(t, testReqs, requests)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewRequestRepo(mockDB)

		expectedErr := errors.New("database error")
		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(expectedErr)

		_, err := repo.GetByFarmerID(ctx, "farmer-456")
		assert.Equal(t, expectedErr, err)
	})
}
