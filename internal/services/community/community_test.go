package community

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fitpulse/fitpulse/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreatePost(ctx context.Context, post models.Post) (int, error) {
	args := m.Called(ctx, post)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) ListPosts(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCommunityService_CreatePost(t *testing.T) {
	repo := new(MockRepository)
	service := NewCommunityService(repo, newNoopLogger())

	repo.On("CreatePost", mock.Anything, mock.MatchedBy(func(p models.Post) bool {
		return p.UserUID == "uid-1" && p.Username == "anna" && p.Content == "first run done"
	})).Return(7, nil)

	id, err := service.CreatePost(context.Background(), "uid-1", "anna", models.DummyPost{Content: "first run done"})
	require.NoError(t, err)
	assert.Equal(t, 7, id)

	repo.AssertExpectations(t)
}

func TestCommunityService_CreatePostRepositoryError(t *testing.T) {
	repo := new(MockRepository)
	service := NewCommunityService(repo, newNoopLogger())

	repo.On("CreatePost", mock.Anything, mock.Anything).Return(0, errors.New("db error"))

	_, err := service.CreatePost(context.Background(), "uid-1", "anna", models.DummyPost{Content: "hello"})
	assert.Error(t, err)
}

func TestCommunityService_ListFeed(t *testing.T) {
	repo := new(MockRepository)
	service := NewCommunityService(repo, newNoopLogger())

	posts := []*models.Post{
		{ID: 2, Username: "boris", Content: "new pr on deadlift"},
		{ID: 1, Username: "anna", Content: "first run done"},
	}
	repo.On("ListPosts", mock.Anything, 20, 0).Return(posts, nil)

	got, err := service.ListFeed(context.Background(), 20, 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "boris", got[0].Username)
}
