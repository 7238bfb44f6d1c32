package workoutcreate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/fitpulse/fitpulse/internal/http/middlewarectx"
	"github.com/fitpulse/fitpulse/internal/models"
	services "github.com/fitpulse/fitpulse/internal/services/tracking"
)

// MockService реализует интерфейс workoutcreate.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) CreateWorkout(ctx context.Context, userUID string, req models.DummyWorkout) (int, error) {
	args := m.Called(ctx, userUID, req)
	return args.Int(0), args.Error(1)
}

func TestWorkoutCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	validBody := `{
		"name": "Morning run",
		"type": "cardio",
		"duration": 45,
		"calories_burned": 400,
		"date": "2026-09-01"
	}`

	tests := []struct {
		name           string
		body           string
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "успешное создание тренировки",
			body:    validBody,
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("CreateWorkout", mock.Anything, "uid-1", mock.Anything).Return(42, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":42`,
		},
		{
			name:    "лимит тарифа исчерпан",
			body:    validBody,
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("CreateWorkout", mock.Anything, "uid-1", mock.Anything).
					Return(0, services.ErrLimitReached)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `upgrade to premium`,
		},
		{
			name:           "некорректный JSON",
			body:           `{invalid`,
			userUID:        "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid request body`,
		},
		{
			name:           "отсутствует обязательное поле",
			body:           `{"type": "cardio", "duration": 45, "date": "2026-09-01"}`,
			userUID:        "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Name is a required field`,
		},
		{
			name:           "пользователь не авторизован",
			body:           validBody,
			userUID:        "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `unauthorized`,
		},
		{
			name:    "ошибка сервиса",
			body:    validBody,
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("CreateWorkout", mock.Anything, "uid-1", mock.Anything).
					Return(0, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `could not create workout`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/tracking/workouts", strings.NewReader(tt.body))
			if tt.userUID != "" {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, tt.userUID))
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
