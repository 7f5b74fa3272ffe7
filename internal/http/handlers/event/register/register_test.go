package register

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/altynpony/mediaschoolsandbox/internal/http/middlewarectx"
	"github.com/altynpony/mediaschoolsandbox/internal/models"
	eventservice "github.com/altynpony/mediaschoolsandbox/internal/services/event"
)

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, userID, eventID string) (*models.EventRegistration, bool, error) {
	args := m.Called(ctx, userID, eventID)
	if res := args.Get(0); res != nil {
		return res.(*models.EventRegistration), args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func TestRegisterHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		body           string
		userID         string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "успешная регистрация",
			body:   `{"eventId": "ev-1"}`,
			userID: "user-1",
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "user-1", "ev-1").
					Return(&models.EventRegistration{ID: "reg-1"}, false, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"Successfully registered"`,
		},
		{
			name:   "реактивация отменённой регистрации",
			body:   `{"eventId": "ev-1"}`,
			userID: "user-1",
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "user-1", "ev-1").
					Return(&models.EventRegistration{ID: "reg-1"}, true, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"Registration reactivated"`,
		},
		{
			name:           "нет идентификатора события",
			body:           `{}`,
			userID:         "user-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Event ID is required"}`,
		},
		{
			name:           "без авторизации",
			body:           `{"eventId": "ev-1"}`,
			userID:         "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"Unauthorized"}`,
		},
		{
			name:   "событие не найдено",
			body:   `{"eventId": "ghost"}`,
			userID: "user-1",
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "user-1", "ghost").
					Return(nil, false, eventservice.ErrEventNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Event not found"}`,
		},
		{
			name:   "мест не осталось",
			body:   `{"eventId": "ev-1"}`,
			userID: "user-1",
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "user-1", "ev-1").
					Return(nil, false, eventservice.ErrEventFull)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Event is full"}`,
		},
		{
			name:   "повторная регистрация",
			body:   `{"eventId": "ev-1"}`,
			userID: "user-1",
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "user-1", "ev-1").
					Return(nil, false, eventservice.ErrAlreadyRegistered)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Already registered for this event"}`,
		},
		{
			name:   "ошибка сервиса",
			body:   `{"eventId": "ev-1"}`,
			userID: "user-1",
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "user-1", "ev-1").
					Return(nil, false, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Failed to register"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			tt.setupMock(service)
			handler := New(logger, service)

			req := httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader(tt.body))
			if tt.userID != "" {
				ctx := context.WithValue(req.Context(), middlewarectx.UserIDKey, tt.userID)
				req = req.WithContext(ctx)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			service.AssertExpectations(t)
		})
	}
}
