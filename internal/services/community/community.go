// Package community содержит бизнес-логику ленты сообщества.
package community

import (
	"context"
	"log/slog"

	"github.com/fitpulse/fitpulse/internal/models"
)

// CommunityRepository определяет методы хранилища ленты сообщества.
type CommunityRepository interface {
	CreatePost(ctx context.Context, post models.Post) (int, error)
	ListPosts(ctx context.Context, limit, offset int) ([]*models.Post, error)
}

// CommunityService реализует бизнес-логику ленты сообщества.
type CommunityService struct {
	repo CommunityRepository
	log  *slog.Logger
}

// NewCommunityService создает новый экземпляр CommunityService.
func NewCommunityService(repo CommunityRepository, log *slog.Logger) *CommunityService {
	return &CommunityService{
		repo: repo,
		log:  log,
	}
}

// CreatePost публикует запись в ленте от имени пользователя.
func (s *CommunityService) CreatePost(ctx context.Context, userUID, username string, req models.DummyPost) (int, error) {
	post := models.Post{
		UserUID:  userUID,
		Username: username,
		Content:  req.Content,
	}
	id, err := s.repo.CreatePost(ctx, post)
	if err != nil {
		return 0, err
	}
	s.log.Info("created community post", slog.Int("id", id), slog.String("user_uid", userUID))
	return id, nil
}

// ListFeed возвращает ленту сообщества с пагинацией.
func (s *CommunityService) ListFeed(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.repo.ListPosts(ctx, limit, offset)
}
