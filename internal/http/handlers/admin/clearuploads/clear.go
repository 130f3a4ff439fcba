// Package clearuploads реализует HTTP-обработчик удаления всех загрузок.
package clearuploads

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/jemin1834/orders-prediction/internal/http/response"
	"github.com/jemin1834/orders-prediction/internal/lib/sl"
)

// Handler обрабатывает HTTP-запросы на очистку загрузок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики очистки загрузок.
type Service interface {
	Clear(ctx context.Context) (int64, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Очистить загрузки
// @Description Удаляет загрузки всех пользователей. Только для администратора.
// @Tags Admin
// @Produce  json
// @Success 200 {object} map[string]any "Количество удалённых записей"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/uploads [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.clearuploads"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	deleted, err := h.service.Clear(r.Context())
	if err != nil {
		log.Error("failed to clear uploads", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to clear uploads"))
		return
	}

	log.Info("uploads cleared", slog.Int64("deleted", deleted))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"deleted": deleted,
	}))
}
