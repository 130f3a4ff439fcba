package ordersprediction

import (
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/jemin1834/orders-prediction/internal/http/handlers/about"
	"github.com/jemin1834/orders-prediction/internal/http/handlers/admin/clearpredictions"
	"github.com/jemin1834/orders-prediction/internal/http/handlers/admin/clearuploads"
	"github.com/jemin1834/orders-prediction/internal/http/handlers/admin/export"
	adminusers "github.com/jemin1834/orders-prediction/internal/http/handlers/admin/users"
	"github.com/jemin1834/orders-prediction/internal/http/handlers/auth/login"
	"github.com/jemin1834/orders-prediction/internal/http/handlers/auth/logout"
	"github.com/jemin1834/orders-prediction/internal/http/handlers/auth/register"
	"github.com/jemin1834/orders-prediction/internal/http/handlers/health"
	"github.com/jemin1834/orders-prediction/internal/http/handlers/prediction/predict"
	"github.com/jemin1834/orders-prediction/internal/http/handlers/prediction/recent"
	preferenceget "github.com/jemin1834/orders-prediction/internal/http/handlers/preference/get"
	preferencesave "github.com/jemin1834/orders-prediction/internal/http/handlers/preference/save"
	uploadlist "github.com/jemin1834/orders-prediction/internal/http/handlers/upload/list"
	uploadsave "github.com/jemin1834/orders-prediction/internal/http/handlers/upload/save"
	"github.com/jemin1834/orders-prediction/internal/http/middlewarectx"
	"github.com/jemin1834/orders-prediction/internal/inference"
	authservice "github.com/jemin1834/orders-prediction/internal/services/auth"
	predictionservice "github.com/jemin1834/orders-prediction/internal/services/prediction"
	preferenceservice "github.com/jemin1834/orders-prediction/internal/services/preference"
	uploadservice "github.com/jemin1834/orders-prediction/internal/services/upload"
	"github.com/jemin1834/orders-prediction/internal/storage/repository"

	"log/slog"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *repository.Storage, model *inference.Model,
	authService *authservice.AuthService, predictionService *predictionservice.PredictionService,
	uploadService *uploadservice.UploadService, preferenceService *preferenceservice.PreferenceService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/about", about.New(logger, model).ServeHTTP)
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/logout", logout.New(logger, authService).ServeHTTP)
			r.Post("/predictions", predict.New(logger, predictionService).ServeHTTP)
			r.Get("/predictions/recent", recent.New(logger, predictionService).ServeHTTP)
			r.Post("/uploads", uploadsave.New(logger, uploadService).ServeHTTP)
			r.Get("/uploads", uploadlist.New(logger, uploadService).ServeHTTP)
			r.Post("/preferences", preferencesave.New(logger, preferenceService).ServeHTTP)
			r.Get("/preferences", preferenceget.New(logger, preferenceService).ServeHTTP)

			// Админская группа
			r.Route("/admin", func(r chi.Router) {
				r.Use(middlewarectx.AdminOnlyMiddleware(logger))
				r.Get("/users", adminusers.New(logger, authService).ServeHTTP)
				r.Get("/predictions/export", export.New(logger, predictionService).ServeHTTP)
				r.Delete("/predictions", clearpredictions.New(logger, predictionService).ServeHTTP)
				r.Delete("/uploads", clearuploads.New(logger, uploadService).ServeHTTP)
			})
		})
	})

	r.Get("/health", health.New(logger, db).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
