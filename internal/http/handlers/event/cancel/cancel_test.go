package cancel

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/altynpony/mediaschoolsandbox/internal/http/middlewarectx"
	"github.com/altynpony/mediaschoolsandbox/internal/models"
	eventservice "github.com/altynpony/mediaschoolsandbox/internal/services/event"
)

// MockService реализует интерфейс cancel.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Cancel(ctx context.Context, userID, eventID string) (*models.EventRegistration, error) {
	args := m.Called(ctx, userID, eventID)
	if res := args.Get(0); res != nil {
		return res.(*models.EventRegistration), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCancelHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	now := time.Now().UTC()

	tests := []struct {
		name           string
		url            string
		userID         string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "успешная отмена",
			url:    "/api/events?eventId=ev-1",
			userID: "user-1",
			setupMock: func(m *MockService) {
				m.On("Cancel", mock.Anything, "user-1", "ev-1").
					Return(&models.EventRegistration{ID: "reg-1", CancelledAt: &now}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"Registration cancelled"`,
		},
		{
			name:           "нет идентификатора события",
			url:            "/api/events",
			userID:         "user-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Event ID is required"}`,
		},
		{
			name:           "без авторизации",
			url:            "/api/events?eventId=ev-1",
			userID:         "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"Unauthorized"}`,
		},
		{
			name:   "активной регистрации нет",
			url:    "/api/events?eventId=ev-1",
			userID: "user-1",
			setupMock: func(m *MockService) {
				m.On("Cancel", mock.Anything, "user-1", "ev-1").
					Return(nil, eventservice.ErrRegistrationNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Registration not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			tt.setupMock(service)
			handler := New(logger, service)

			req := httptest.NewRequest(http.MethodDelete, tt.url, nil)
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
