package create

import (
	"context"
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
	subscriptionservice "github.com/altynpony/mediaschoolsandbox/internal/services/subscription"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Upsert(ctx context.Context, userID, planType string, stripeSubscriptionID *string) (*models.Subscription, bool, error) {
	args := m.Called(ctx, userID, planType, stripeSubscriptionID)
	if res := args.Get(0); res != nil {
		return res.(*models.Subscription), args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func TestCreateHandler(t *testing.T) {
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
			name:   "новая подписка",
			body:   `{"planType":"pro"}`,
			userID: "user-1",
			setupMock: func(m *MockService) {
				m.On("Upsert", mock.Anything, "user-1", "pro", (*string)(nil)).
					Return(&models.Subscription{ID: "sub-1", PlanType: models.PlanPro}, true, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"Subscription created"`,
		},
		{
			name:   "оформление с внешним идентификатором биллинга",
			body:   `{"planType": "basic", "stripeSubscriptionId": "sub_stripe_42"}`,
			userID: "user-1",
			setupMock: func(m *MockService) {
				stripeID := "sub_stripe_42"
				m.On("Upsert", mock.Anything, "user-1", "basic", &stripeID).
					Return(&models.Subscription{ID: "sub-1", PlanType: models.PlanBasic}, true, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"Subscription created"`,
		},
		{
			name:   "продление существующей",
			body:   `{"planType": "enterprise"}`,
			userID: "user-1",
			setupMock: func(m *MockService) {
				m.On("Upsert", mock.Anything, "user-1", "enterprise", (*string)(nil)).
					Return(&models.Subscription{ID: "sub-1", PlanType: models.PlanEnterprise}, false, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"Subscription updated"`,
		},
		{
			name:   "неизвестный план",
			body:   `{"planType": "platinum"}`,
			userID: "user-1",
			setupMock: func(m *MockService) {
				m.On("Upsert", mock.Anything, "user-1", "platinum", (*string)(nil)).
					Return(nil, false, subscriptionservice.ErrInvalidPlan)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid plan type"}`,
		},
		{
			name:           "без авторизации",
			body:           `{"planType": "pro"}`,
			userID:         "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"Unauthorized"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			tt.setupMock(service)
			handler := New(logger, service)

			req := httptest.NewRequest(http.MethodPost, "/api/subscribe", strings.NewReader(tt.body))
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
