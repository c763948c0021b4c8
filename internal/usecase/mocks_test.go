package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/ygame-backend/internal/entity"
)

type mockSnapshotRepo struct {
	mock.Mock
}

func (that *mockSnapshotRepo) Save(ctx context.Context, snapshot *entity.Snapshot) error {
	args := that.Called(ctx, snapshot)
	return args.Error(0)
}

func (that *mockSnapshotRepo) GetByID(ctx context.Context, id string) (*entity.Snapshot, error) {
	args := that.Called(ctx, id)
	snapshot, _ := args.Get(0).(*entity.Snapshot)
	return snapshot, args.Error(1)
}

type mockArchiveRepo struct {
	mock.Mock
}

func (that *mockArchiveRepo) Save(ctx context.Context, record *entity.MatchRecord) error {
	args := that.Called(ctx, record)
	return args.Error(0)
}

type mockEngine struct {
	mock.Mock
}

func (that *mockEngine) PlayTurn(ctx context.Context, m *entity.Match, now time.Time) (entity.MoveRecord, error) {
	args := that.Called(ctx, m, now)
	return args.Get(0).(entity.MoveRecord), args.Error(1)
}
