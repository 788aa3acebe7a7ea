package jobs

import (
	"context"

	syncservice "gametrack/fetcher/services/sync"

	"github.com/stretchr/testify/mock"
)

type mockSyncer struct {
	mock.Mock
}

func (m *mockSyncer) Sync(ctx context.Context, puuid string, limit int) (*syncservice.SyncResult, error) {
	args := m.Called(ctx, puuid, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*syncservice.SyncResult), args.Error(1)
}

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) UploadToS3Bucket(ctx context.Context, objectKey string) error {
	args := m.Called(ctx, objectKey)
	return args.Error(0)
}

type mockLock struct {
	mock.Mock
}

func (m *mockLock) Acquire(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockLock) Release(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// newFreeLock returns a lock that every player gets.
func newFreeLock() *mockLock {
	lock := new(mockLock)
	lock.On("Acquire", mock.Anything, mock.Anything).Return(nil)
	lock.On("Release", mock.Anything, mock.Anything).Return(nil)
	return lock
}
