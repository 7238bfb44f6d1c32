// Package profile содержит бизнес-логику анкеты пользователя с кешированием.
package profile

import (
	"context"
	"log/slog"
	"time"

	"github.com/fitpulse/fitpulse/internal/lib/sl"
	"github.com/fitpulse/fitpulse/internal/models"
	"github.com/fitpulse/fitpulse/internal/services/entitlement"
)

// ProfileRepository определяет методы хранилища анкет.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userUID string) (*models.Profile, error)
	UpsertProfile(ctx context.Context, prof models.Profile) error
}

// ProfileService реализует бизнес-логику анкеты пользователя.
type ProfileService struct {
	repo ProfileRepository
	kv   entitlement.KV
	log  *slog.Logger
}

// NewProfileService создает новый экземпляр ProfileService.
func NewProfileService(repo ProfileRepository, kv entitlement.KV, log *slog.Logger) *ProfileService {
	return &ProfileService{
		repo: repo,
		kv:   kv,
		log:  log,
	}
}

func cacheKey(userUID string) string {
	return "profile_" + userUID
}

// Get возвращает анкету пользователя, используя кеш или репозиторий.
func (s *ProfileService) Get(ctx context.Context, userUID string) (*models.Profile, error) {
	var cached *models.Profile
	found, err := s.kv.Get(cacheKey(userUID), &cached)
	if err != nil {
		s.log.Warn("failed to read profile cache", slog.String("user_uid", userUID), sl.Err(err))
	}
	if found {
		return cached, nil
	}

	prof, err := s.repo.GetProfile(ctx, userUID)
	if err != nil {
		return nil, err
	}
	if err := s.kv.Set(cacheKey(userUID), prof, time.Hour); err != nil {
		s.log.Warn("failed to cache profile", slog.String("user_uid", userUID), sl.Err(err))
	}
	return prof, nil
}

// Update создает или обновляет анкету и инвалидирует кеш.
func (s *ProfileService) Update(ctx context.Context, userUID string, req models.DummyProfile) error {
	prof := models.Profile{
		UserUID:               userUID,
		Name:                  req.Name,
		Age:                   req.Age,
		Height:                req.Height,
		Weight:                req.Weight,
		FitnessLevel:          req.FitnessLevel,
		Goals:                 req.Goals,
		Allergies:             req.Allergies,
		HealthConditions:      req.HealthConditions,
		Medications:           req.Medications,
		PreviousInjuries:      req.PreviousInjuries,
		PreferredWorkoutTypes: req.PreferredWorkoutTypes,
		AvailableEquipment:    req.AvailableEquipment,
		Bio:                   req.Bio,
	}
	if err := s.repo.UpsertProfile(ctx, prof); err != nil {
		return err
	}
	if err := s.kv.Delete(cacheKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate profile cache", slog.String("user_uid", userUID), sl.Err(err))
	}
	return nil
}
