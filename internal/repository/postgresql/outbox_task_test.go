package postgresql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_database "github.com/greenharvest/marketplace/internal/db/mocks"
	"github.com/greenharvest/marketplace/internal/repository"
	"github.com/greenharvest/marketplace/internal/repository/postgresql"
)

func TestOutboxTaskRepo_GetProcessableTasks(t *testing.T) {
	ctx := context.Background()

	t.Run("selects with skip-locked inside the claiming tx", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewOutboxTaskRepo()

		mockTx.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Eq(repository.TaskStatusCreated), gomock.Eq(repository.TaskStatusFailed), gomock.Any(), gomock.Eq(10)).
			DoAndReturn(func(_ context.Context, dest *[]*repository.OutboxTask, query string, _ ...interface{}) error {
				assert.Contains(t, query, "FOR UPDATE SKIP LOCKED")
				*dest = []*repository.OutboxTask{
					{Topic: "workflow_audit", Attempts: 1},
				}
				return nil
			})

		tasks, err := repo.GetProcessableTasks(ctx, mockTx, 10)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "workflow_audit", tasks[0].Topic)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewOutboxTaskRepo()

		mockTx.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("database error"))

		_, err := repo.GetProcessableTasks(ctx, mockTx, 10)
		assert.Error(t, err)
	})
}
