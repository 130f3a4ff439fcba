// Package get реализует HTTP-обработчик чтения актуальных настроек пользователя.
package get

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/jemin1834/orders-prediction/internal/http/middlewarectx"
	"github.com/jemin1834/orders-prediction/internal/http/response"
	"github.com/jemin1834/orders-prediction/internal/lib/sl"
	"github.com/jemin1834/orders-prediction/internal/models"
)

// Handler обрабатывает HTTP-запросы на чтение настроек.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики настроек.
type Service interface {
	Latest(ctx context.Context, username string) (*models.PreferenceRecord, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Текущие настройки пользователя
// @Description Возвращает последние сохранённые настройки текущего пользователя.
// @Tags Preferences
// @Produce  json
// @Success 200 {object} map[string]any "Настройки пользователя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Настройки ещё не сохранялись"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /preferences [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.preference.get"

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

	record, err := h.service.Latest(r.Context(), username)
	if err != nil {
		log.Error("failed to read preferences", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read preferences"))
		return
	}
	if record == nil {
		log.Info("no preferences saved yet", slog.String("username", username))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("preferences not found"))
		return
	}

	log.Info("preferences read", slog.Int("id", record.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"preferences": record,
	}))
}
