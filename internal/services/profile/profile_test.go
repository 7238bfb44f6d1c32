package profile

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fitpulse/fitpulse/internal/config"
	"github.com/fitpulse/fitpulse/internal/kvstore"
	"github.com/fitpulse/fitpulse/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetProfile(ctx context.Context, userUID string) (*models.Profile, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockRepository) UpsertProfile(ctx context.Context, prof models.Profile) error {
	args := m.Called(ctx, prof)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupService(t *testing.T, repo *MockRepository) *ProfileService {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	kv, err := kvstore.InitServer(context.Background(), config.RedisConnection{
		AddressRedis: mr.Addr(),
	})
	require.NoError(t, err)

	return NewProfileService(repo, kv, newNoopLogger())
}

func TestProfileService_GetCachesResult(t *testing.T) {
	repo := new(MockRepository)
	service := setupService(t, repo)

	prof := &models.Profile{UserUID: "uid-1", Name: "Anna", FitnessLevel: "intermediate"}
	repo.On("GetProfile", mock.Anything, "uid-1").Return(prof, nil).Once()

	got, err := service.Get(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "Anna", got.Name)

	// Повторный вызов читает кеш, репозиторий не трогается.
	got, err = service.Get(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "Anna", got.Name)

	repo.AssertExpectations(t)
}

func TestProfileService_GetRepositoryError(t *testing.T) {
	repo := new(MockRepository)
	service := setupService(t, repo)

	repo.On("GetProfile", mock.Anything, "uid-1").Return(nil, errors.New("db error"))

	_, err := service.Get(context.Background(), "uid-1")
	assert.Error(t, err)
}

func TestProfileService_UpdateInvalidatesCache(t *testing.T) {
	repo := new(MockRepository)
	service := setupService(t, repo)

	prof := &models.Profile{UserUID: "uid-1", Name: "Anna"}
	repo.On("GetProfile", mock.Anything, "uid-1").Return(prof, nil).Once()

	_, err := service.Get(context.Background(), "uid-1")
	require.NoError(t, err)

	repo.On("UpsertProfile", mock.Anything, mock.MatchedBy(func(p models.Profile) bool {
		return p.UserUID == "uid-1" && p.Name == "Boris"
	})).Return(nil)
	err = service.Update(context.Background(), "uid-1", models.DummyProfile{Name: "Boris"})
	require.NoError(t, err)

	// Кеш сброшен, следующее чтение идёт в репозиторий.
	updated := &models.Profile{UserUID: "uid-1", Name: "Boris"}
	repo.On("GetProfile", mock.Anything, "uid-1").Return(updated, nil).Once()

	got, err := service.Get(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "Boris", got.Name)

	repo.AssertExpectations(t)
}

func TestProfileService_UpdateRepositoryError(t *testing.T) {
	repo := new(MockRepository)
	service := setupService(t, repo)

	repo.On("UpsertProfile", mock.Anything, mock.Anything).Return(errors.New("db error"))

	err := service.Update(context.Background(), "uid-1", models.DummyProfile{Name: "Anna"})
	assert.Error(t, err)
}
