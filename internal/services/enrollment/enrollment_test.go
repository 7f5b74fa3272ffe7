package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/altynpony/mediaschoolsandbox/internal/models"
	"github.com/altynpony/mediaschoolsandbox/internal/storage"
)

type mockEnrollmentRepo struct {
	mock.Mock
}

func (m *mockEnrollmentRepo) FindEnrollment(ctx context.Context, userID string, courseID int) (*models.Enrollment, error) {
	args := m.Called(ctx, userID, courseID)
	if enr := args.Get(0); enr != nil {
		return enr.(*models.Enrollment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEnrollmentRepo) CreateEnrollment(ctx context.Context, enr models.Enrollment) (*models.Enrollment, error) {
	args := m.Called(ctx, enr)
	if res := args.Get(0); res != nil {
		return res.(*models.Enrollment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEnrollmentRepo) ListEnrollments(ctx context.Context, userID string) ([]*models.EnrollmentWithCourse, error) {
	args := m.Called(ctx, userID)
	if res := args.Get(0); res != nil {
		return res.([]*models.EnrollmentWithCourse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEnrollmentRepo) CourseExists(ctx context.Context, courseID int) (bool, error) {
	args := m.Called(ctx, courseID)
	return args.Bool(0), args.Error(1)
}

type mockSubscriptionGetter struct {
	mock.Mock
}

func (m *mockSubscriptionGetter) Get(ctx context.Context, userID string) (*models.Subscription, error) {
	args := m.Called(ctx, userID)
	if sub := args.Get(0); sub != nil {
		return sub.(*models.Subscription), args.Error(1)
	}
	return nil, args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func activeSubscription() *models.Subscription {
	endDate := time.Now().Add(30 * 24 * time.Hour)
	return &models.Subscription{
		ID:       "sub-1",
		UserID:   "user-1",
		PlanType: models.PlanBasic,
		Status:   models.SubscriptionStatusActive,
		EndDate:  &endDate,
	}
}

func TestEnroll_WithoutSubscription(t *testing.T) {
	repo := new(mockEnrollmentRepo)
	subs := new(mockSubscriptionGetter)
	svc := NewEnrollmentService(repo, subs, discardLogger())

	subs.On("Get", mock.Anything, "user-1").Return(nil, nil)

	enr, err := svc.Enroll(context.Background(), "user-1", 7)

	require.ErrorIs(t, err, ErrSubscriptionRequired)
	assert.Nil(t, enr)
	repo.AssertNotCalled(t, "CreateEnrollment")
}

func TestEnroll_ExpiredSubscription(t *testing.T) {
	repo := new(mockEnrollmentRepo)
	subs := new(mockSubscriptionGetter)
	svc := NewEnrollmentService(repo, subs, discardLogger())

	past := time.Now().Add(-time.Hour)
	subs.On("Get", mock.Anything, "user-1").Return(&models.Subscription{
		Status:  models.SubscriptionStatusActive,
		EndDate: &past,
	}, nil)

	_, err := svc.Enroll(context.Background(), "user-1", 7)

	require.ErrorIs(t, err, ErrSubscriptionRequired)
}

func TestEnroll_CourseNotFound(t *testing.T) {
	repo := new(mockEnrollmentRepo)
	subs := new(mockSubscriptionGetter)
	svc := NewEnrollmentService(repo, subs, discardLogger())

	subs.On("Get", mock.Anything, "user-1").Return(activeSubscription(), nil)
	repo.On("CourseExists", mock.Anything, 404).Return(false, nil)

	_, err := svc.Enroll(context.Background(), "user-1", 404)

	require.ErrorIs(t, err, ErrCourseNotFound)
}

func TestEnroll_Twice(t *testing.T) {
	repo := new(mockEnrollmentRepo)
	subs := new(mockSubscriptionGetter)
	svc := NewEnrollmentService(repo, subs, discardLogger())

	subs.On("Get", mock.Anything, "user-1").Return(activeSubscription(), nil)
	repo.On("CourseExists", mock.Anything, 7).Return(true, nil)
	repo.On("FindEnrollment", mock.Anything, "user-1", 7).
		Return(&models.Enrollment{ID: "enr-1", UserID: "user-1", CourseID: 7}, nil)

	_, err := svc.Enroll(context.Background(), "user-1", 7)

	require.ErrorIs(t, err, ErrAlreadyEnrolled)
	repo.AssertNotCalled(t, "CreateEnrollment")
}

func TestEnroll_DuplicateRace(t *testing.T) {
	repo := new(mockEnrollmentRepo)
	subs := new(mockSubscriptionGetter)
	svc := NewEnrollmentService(repo, subs, discardLogger())

	subs.On("Get", mock.Anything, "user-1").Return(activeSubscription(), nil)
	repo.On("CourseExists", mock.Anything, 7).Return(true, nil)
	repo.On("FindEnrollment", mock.Anything, "user-1", 7).Return(nil, nil)
	repo.On("CreateEnrollment", mock.Anything, mock.Anything).Return(nil, storage.ErrDuplicate)

	_, err := svc.Enroll(context.Background(), "user-1", 7)

	require.ErrorIs(t, err, ErrAlreadyEnrolled)
}

func TestEnroll_Success(t *testing.T) {
	repo := new(mockEnrollmentRepo)
	subs := new(mockSubscriptionGetter)
	svc := NewEnrollmentService(repo, subs, discardLogger())

	subs.On("Get", mock.Anything, "user-1").Return(activeSubscription(), nil)
	repo.On("CourseExists", mock.Anything, 7).Return(true, nil)
	repo.On("FindEnrollment", mock.Anything, "user-1", 7).Return(nil, nil)
	repo.On("CreateEnrollment", mock.Anything, mock.MatchedBy(func(enr models.Enrollment) bool {
		return enr.UserID == "user-1" && enr.CourseID == 7 && enr.Progress == 0 && enr.ID != ""
	})).Return(&models.Enrollment{ID: "enr-1", UserID: "user-1", CourseID: 7}, nil)

	enr, err := svc.Enroll(context.Background(), "user-1", 7)

	require.NoError(t, err)
	assert.Equal(t, "enr-1", enr.ID)
	repo.AssertExpectations(t)
}
