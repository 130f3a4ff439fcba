// Package recent реализует HTTP-обработчик ленты последних прогнозов.
package recent

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/jemin1834/orders-prediction/internal/http/response"
	"github.com/jemin1834/orders-prediction/internal/lib/sl"
	"github.com/jemin1834/orders-prediction/internal/models"
	services "github.com/jemin1834/orders-prediction/internal/services/prediction"
)

// Handler обрабатывает HTTP-запросы на чтение последних прогнозов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики для чтения прогнозов.
type Service interface {
	Recent(ctx context.Context, limit int) ([]*models.PredictionRecord, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Последние прогнозы
// @Description Возвращает последние прогнозы всех пользователей по убыванию времени.
// @Tags Predictions
// @Produce  json
// @Param limit query int false "Количество записей (по умолчанию 5)"
// @Success 200 {object} map[string]any "Список прогнозов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /predictions/recent [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.prediction.recent"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limitStr := r.URL.Query().Get("limit")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = services.DefaultRecentLimit
	}

	res, err := h.service.Recent(r.Context(), limit)
	if err != nil {
		log.Error("failed to list recent predictions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list predictions"))
		return
	}

	log.Info("recent predictions listed", "count", len(res))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"list_count":  len(res),
		"predictions": res,
	}))
}
