package mediaschool

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	loginhandler "github.com/altynpony/mediaschoolsandbox/internal/http/handlers/auth/login"
	registerhandler "github.com/altynpony/mediaschoolsandbox/internal/http/handlers/auth/register"
	courselist "github.com/altynpony/mediaschoolsandbox/internal/http/handlers/course/list"
	courseread "github.com/altynpony/mediaschoolsandbox/internal/http/handlers/course/read"
	enrollcreate "github.com/altynpony/mediaschoolsandbox/internal/http/handlers/enrollment/create"
	enrolllist "github.com/altynpony/mediaschoolsandbox/internal/http/handlers/enrollment/list"
	eventcancel "github.com/altynpony/mediaschoolsandbox/internal/http/handlers/event/cancel"
	eventlist "github.com/altynpony/mediaschoolsandbox/internal/http/handlers/event/list"
	eventregister "github.com/altynpony/mediaschoolsandbox/internal/http/handlers/event/register"
	healthhandler "github.com/altynpony/mediaschoolsandbox/internal/http/handlers/health"
	subcreate "github.com/altynpony/mediaschoolsandbox/internal/http/handlers/subscription/create"
	subread "github.com/altynpony/mediaschoolsandbox/internal/http/handlers/subscription/read"
	substatus "github.com/altynpony/mediaschoolsandbox/internal/http/handlers/subscription/status"
	"github.com/altynpony/mediaschoolsandbox/internal/http/middlewarectx"

	"github.com/altynpony/mediaschoolsandbox/internal/config"
	authservice "github.com/altynpony/mediaschoolsandbox/internal/services/auth"
	courseservice "github.com/altynpony/mediaschoolsandbox/internal/services/course"
	enrollmentservice "github.com/altynpony/mediaschoolsandbox/internal/services/enrollment"
	eventservice "github.com/altynpony/mediaschoolsandbox/internal/services/event"
	subscriptionservice "github.com/altynpony/mediaschoolsandbox/internal/services/subscription"
	"github.com/altynpony/mediaschoolsandbox/internal/storage"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	cfg *config.Config,
	db *storage.Storage,
	authService *authservice.AuthService,
	subscriptionService *subscriptionservice.SubscriptionService,
	courseService *courseservice.CourseService,
	enrollmentService *enrollmentservice.EnrollmentService,
	eventService *eventservice.EventService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler)

	r.Get("/health", healthhandler.New(logger, db).ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", registerhandler.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", loginhandler.New(logger, authService).ServeHTTP)
		r.Get("/courses", courselist.New(logger, courseService).ServeHTTP)
		r.Get("/courses/{slug}", courseread.New(logger, courseService).ServeHTTP)

		// Список событий публичный, но учитывает сессию для isRegistered
		r.With(middlewarectx.OptionalJWTMiddleware(authService, logger)).
			Get("/events", eventlist.New(logger, eventService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/enroll", enrollcreate.New(logger, enrollmentService).ServeHTTP)
			r.Get("/enroll", enrolllist.New(logger, enrollmentService).ServeHTTP)
			r.Post("/events", eventregister.New(logger, eventService).ServeHTTP)
			r.Delete("/events", eventcancel.New(logger, eventService).ServeHTTP)
			r.Get("/subscribe", substatus.New(logger, subscriptionService).ServeHTTP)
			r.Post("/subscribe", subcreate.New(logger, subscriptionService).ServeHTTP)
			r.Get("/subscription", subread.New(logger, subscriptionService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
