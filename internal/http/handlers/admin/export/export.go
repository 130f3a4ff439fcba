// Package export реализует HTTP-обработчик выгрузки журнала прогнозов в CSV.
//
// Выгрузка содержит полный вектор признаков каждой записи под исходными
// именами столбцов обучающего набора, результат модели и метку времени.
package export

import (
	"context"
	"encoding/csv"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/jemin1834/orders-prediction/internal/http/response"
	"github.com/jemin1834/orders-prediction/internal/lib/features"
	"github.com/jemin1834/orders-prediction/internal/lib/sl"
	"github.com/jemin1834/orders-prediction/internal/models"
)

// Handler обрабатывает HTTP-запросы на выгрузку прогнозов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики для чтения полного журнала прогнозов.
type Service interface {
	All(ctx context.Context) ([]*models.PredictionRecord, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Выгрузка прогнозов в CSV
// @Description Возвращает весь журнал прогнозов в формате CSV. Только для администратора.
// @Tags Admin
// @Produce  text/csv
// @Success 200 {string} string "CSV с прогнозами"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/predictions/export [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.export"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	records, err := h.service.All(r.Context())
	if err != nil {
		log.Error("failed to read predictions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to export predictions"))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="predictions.csv"`)

	cw := csv.NewWriter(w)
	header := append([]string{}, features.Names...)
	header = append(header, "Predicted_Orders", "Prediction_Timestamp")
	if err := cw.Write(header); err != nil {
		log.Error("failed to write csv header", sl.Err(err))
		return
	}

	for _, rec := range records {
		row := []string{
			strconv.Itoa(rec.StoreID),
			strconv.Itoa(rec.StoreType),
			strconv.Itoa(rec.LocationType),
			strconv.Itoa(rec.RegionCode),
			strconv.Itoa(rec.Holiday),
			strconv.Itoa(rec.Discount),
			strconv.Itoa(rec.Sales),
			strconv.Itoa(rec.Year),
			strconv.Itoa(rec.Month),
			strconv.Itoa(rec.Day),
			strconv.Itoa(rec.Week),
			strconv.Itoa(rec.PredictedOrders),
			rec.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		if err := cw.Write(row); err != nil {
			log.Error("failed to write csv row", sl.Err(err))
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		log.Error("failed to flush csv", sl.Err(err))
		return
	}

	log.Info("predictions exported", "count", len(records))
}
