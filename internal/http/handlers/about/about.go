// Package about реализует HTTP-обработчик статической информации о сервисе.
package about

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/jemin1834/orders-prediction/internal/http/response"
)

// Versioner возвращает версию загруженного артефакта модели.
type Versioner interface {
	Version() string
}

// Handler обрабатывает HTTP-запросы информации о сервисе.
type Handler struct {
	log   *slog.Logger
	model Versioner
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, model Versioner) *Handler {
	return &Handler{
		log:   log,
		model: model,
	}
}

// ServeHTTP godoc
// @Summary Информация о сервисе
// @Description Возвращает описание сервиса и версию модели прогноза.
// @Tags Ops
// @Produce  json
// @Success 200 {object} map[string]any "Информация о сервисе"
// @Router /about [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.OKWithData(map[string]any{
		"name":          "orders-prediction",
		"description":   "Сервис прогноза недельного числа заказов магазина по его атрибутам.",
		"model_version": h.model.Version(),
	}))
}
