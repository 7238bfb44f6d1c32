package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) MarkExpiredSubscriptions(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) RenewSubscriptions(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSchedulerService_runMarkExpiredSubscriptions(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(*MockRepository)
	}{
		{
			name: "success - marked expired subscriptions",
			setupMocks: func(r *MockRepository) {
				r.On("MarkExpiredSubscriptions", mock.Anything).Return(3, nil).Once()
			},
		},
		{
			name: "success - nothing expired",
			setupMocks: func(r *MockRepository) {
				r.On("MarkExpiredSubscriptions", mock.Anything).Return(0, nil).Once()
			},
		},
		{
			name: "repository error",
			setupMocks: func(r *MockRepository) {
				// метод не возвращает ошибку, только логирует
				r.On("MarkExpiredSubscriptions", mock.Anything).Return(0, errors.New("db error")).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			service := NewSchedulerService(repo, newNoopLogger())

			tt.setupMocks(repo)

			service.runMarkExpiredSubscriptions(context.Background())

			repo.AssertExpectations(t)
		})
	}
}

func TestSchedulerService_runRenewSubscriptions(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(*MockRepository)
	}{
		{
			name: "success - renewed subscriptions",
			setupMocks: func(r *MockRepository) {
				r.On("RenewSubscriptions", mock.Anything).Return(2, nil).Once()
			},
		},
		{
			name: "success - nothing to renew",
			setupMocks: func(r *MockRepository) {
				r.On("RenewSubscriptions", mock.Anything).Return(0, nil).Once()
			},
		},
		{
			name: "repository error",
			setupMocks: func(r *MockRepository) {
				r.On("RenewSubscriptions", mock.Anything).Return(0, errors.New("db error")).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			service := NewSchedulerService(repo, newNoopLogger())

			tt.setupMocks(repo)

			service.runRenewSubscriptions(context.Background())

			repo.AssertExpectations(t)
		})
	}
}

func TestSchedulerService_NewSchedulerService(t *testing.T) {
	repo := new(MockRepository)
	logger := newNoopLogger()

	service := NewSchedulerService(repo, logger)

	assert.NotNil(t, service)
	assert.Equal(t, repo, service.repo)
	assert.Equal(t, logger, service.log)
}
