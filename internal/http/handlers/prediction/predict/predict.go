// Package predict реализует HTTP-обработчик вычисления прогноза заказов.
//
// Handler принимает JSON-запрос с атрибутами магазина и датой, валидирует их,
// извлекает имя пользователя из контекста, вызывает бизнес-логику прогноза
// и возвращает сохранённую запись в JSON-формате.
package predict

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/jemin1834/orders-prediction/internal/http/middlewarectx"
	"github.com/jemin1834/orders-prediction/internal/http/response"
	"github.com/jemin1834/orders-prediction/internal/lib/sl"
	"github.com/jemin1834/orders-prediction/internal/models"
)

// Handler управляет HTTP-запросами на вычисление прогноза.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики прогнозов
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики прогноза.
type Service interface {
	Predict(ctx context.Context, username string, req models.DummyPredictionRequest) (*models.PredictionRecord, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вычислить прогноз заказов
// @Description Вычисляет прогноз недельного числа заказов по атрибутам магазина и дате.
// @Tags Predictions
// @Accept  json
// @Produce  json
// @Param request body models.DummyPredictionRequest true "Атрибуты магазина и дата"
// @Success 200 {object} map[string]any "Сохранённый прогноз"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при вычислении прогноза"
// @Router /predictions [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.prediction.predict"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyPredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	record, err := h.service.Predict(r.Context(), username, req)
	if err != nil {
		log.Error("failed to compute prediction", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not compute prediction"))
		return
	}

	log.Info("prediction computed", slog.Int("id", record.ID),
		slog.Int("predicted_orders", record.PredictedOrders))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"prediction": record,
	}))
}
