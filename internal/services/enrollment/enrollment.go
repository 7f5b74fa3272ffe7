// Package services содержит бизнес-логику записи пользователей на курсы.
package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/altynpony/mediaschoolsandbox/internal/models"
	subscriptionservice "github.com/altynpony/mediaschoolsandbox/internal/services/subscription"
	"github.com/altynpony/mediaschoolsandbox/internal/storage"
)

// Ошибки записи на курс.
var (
	// ErrSubscriptionRequired — без активной подписки записаться нельзя.
	ErrSubscriptionRequired = errors.New("active subscription required")
	// ErrCourseNotFound — курс не существует.
	ErrCourseNotFound = errors.New("course not found")
	// ErrAlreadyEnrolled — пользователь уже записан на этот курс.
	ErrAlreadyEnrolled = errors.New("already enrolled")
)

// EnrollmentRepository определяет методы хранилища для записей на курсы.
type EnrollmentRepository interface {
	// FindEnrollment возвращает запись пользователя на курс или nil.
	FindEnrollment(ctx context.Context, userID string, courseID int) (*models.Enrollment, error)
	// CreateEnrollment вставляет новую запись на курс.
	CreateEnrollment(ctx context.Context, enr models.Enrollment) (*models.Enrollment, error)
	// ListEnrollments возвращает все записи пользователя с данными курсов.
	ListEnrollments(ctx context.Context, userID string) ([]*models.EnrollmentWithCourse, error)
	// CourseExists проверяет существование курса.
	CourseExists(ctx context.Context, courseID int) (bool, error)
}

// SubscriptionGetter возвращает подписку пользователя для проверки доступа.
type SubscriptionGetter interface {
	Get(ctx context.Context, userID string) (*models.Subscription, error)
}

// EnrollmentService реализует запись на курсы с проверкой активной подписки.
type EnrollmentService struct {
	repo EnrollmentRepository
	subs SubscriptionGetter
	log  *slog.Logger
}

// NewEnrollmentService создает новый экземпляр EnrollmentService.
func NewEnrollmentService(repo EnrollmentRepository, subs SubscriptionGetter, log *slog.Logger) *EnrollmentService {
	return &EnrollmentService{
		repo: repo,
		subs: subs,
		log:  log,
	}
}

// Enroll записывает пользователя на курс.
//
// Порядок проверок фиксирован: сначала подписка, затем существование курса,
// затем повторная запись. Гонка двух одновременных запросов разрешается
// уникальным индексом в базе, дубликат также возвращает ErrAlreadyEnrolled.
func (s *EnrollmentService) Enroll(ctx context.Context, userID string, courseID int) (*models.Enrollment, error) {
	sub, err := s.subs.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !subscriptionservice.IsActive(sub) {
		return nil, ErrSubscriptionRequired
	}

	exists, err := s.repo.CourseExists(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCourseNotFound
	}

	existing, err := s.repo.FindEnrollment(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyEnrolled
	}

	created, err := s.repo.CreateEnrollment(ctx, models.Enrollment{
		ID:         uuid.New().String(),
		UserID:     userID,
		CourseID:   courseID,
		EnrolledAt: time.Now().UTC(),
		Progress:   0,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, err
	}

	s.log.Info("user enrolled",
		slog.String("user_id", userID), slog.Int("course_id", courseID))
	return created, nil
}

// List возвращает все записи пользователя на курсы.
func (s *EnrollmentService) List(ctx context.Context, userID string) ([]*models.EnrollmentWithCourse, error) {
	return s.repo.ListEnrollments(ctx, userID)
}
