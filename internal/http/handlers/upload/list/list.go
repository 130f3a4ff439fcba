// Package list реализует HTTP-обработчик списка загрузок текущего пользователя.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/jemin1834/orders-prediction/internal/http/middlewarectx"
	"github.com/jemin1834/orders-prediction/internal/http/response"
	"github.com/jemin1834/orders-prediction/internal/lib/sl"
	services "github.com/jemin1834/orders-prediction/internal/services/upload"
)

// Handler обрабатывает HTTP-запросы на чтение загрузок пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики загрузок.
type Service interface {
	ListByUsername(ctx context.Context, username string) ([]*services.UploadView, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список загрузок пользователя
// @Description Возвращает загрузки текущего пользователя с восстановленными таблицами.
// @Tags Uploads
// @Produce  json
// @Success 200 {object} map[string]any "Список загрузок"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /uploads [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.upload.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	views, err := h.service.ListByUsername(r.Context(), username)
	if err != nil {
		log.Error("failed to list uploads", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list uploads"))
		return
	}

	log.Info("uploads listed", "count", len(views))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"list_count": len(views),
		"uploads":    views,
	}))
}
