// Package save реализует HTTP-обработчик загрузки CSV-файла пользователя.
//
// Файл принимается в multipart-поле "file", разбирается в таблицу и
// сохраняется за текущим пользователем. В ответ возвращается ID загрузки
// и разобранная таблица для немедленного отображения.
package save

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/jemin1834/orders-prediction/internal/http/middlewarectx"
	"github.com/jemin1834/orders-prediction/internal/http/response"
	"github.com/jemin1834/orders-prediction/internal/lib/sl"
	"github.com/jemin1834/orders-prediction/internal/lib/tabular"
)

// Максимальный размер загружаемого файла.
const maxUploadSize = 10 << 20

// Handler управляет HTTP-запросами на загрузку файлов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики загрузок.
type Service interface {
	Save(ctx context.Context, username string, r io.Reader) (int, *tabular.Table, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Загрузить CSV-файл
// @Description Принимает CSV-файл в multipart-поле "file" и сохраняет его за текущим пользователем.
// @Tags Uploads
// @Accept  mpfd
// @Produce  json
// @Param file formData file true "CSV-файл"
// @Success 200 {object} map[string]any "Сохранённая загрузка"
// @Failure 400 {object} response.ErrorResponse "Некорректный файл"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при сохранении"
// @Router /uploads [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.upload.save"
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

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Error("file field missing", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("file field is required"))
		return
	}
	defer file.Close()
	log.Info("file received", slog.String("filename", header.Filename))

	id, table, err := h.service.Save(r.Context(), username, file)
	if err != nil {
		log.Error("failed to save upload", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("could not parse csv file"))
		return
	}

	log.Info("upload saved", slog.Int("id", id), slog.Int("rows", len(table.Rows)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id":    id,
		"table": table,
	}))
}
