package handlers

import (
	"net/http"
	"strings"

	"bytevanta/internal/logger"
	"bytevanta/internal/services"
	helpers "bytevanta/internal/utils/helpers"

	"go.uber.org/zap"
)

type UploadHandler struct {
	storage *services.StorageService
}

func NewUploadHandler(storage *services.StorageService) *UploadHandler {
	return &UploadHandler{storage: storage}
}

// UploadImage godoc
// @Summary Загрузка изображения статьи (только admin)
// @Description Файл сохраняется в публичный бакет под именем с таймстампом; ответ содержит публичный URL.
// @Tags admin-articles
// @Security ApiKeyAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Файл изображения"
// @Success 201 {object} map[string]string
// @Failure 400 {string} string "Ошибка загрузки"
// @Router /api/admin/uploads [post]
func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	log.Info("Запрос на загрузку изображения")

	if err := r.ParseMultipartForm(10 << 20); err != nil { // лимит бакета — 10MB
		log.Warn("Ошибка разбора формы при загрузке", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Ошибка разбора формы")
		return
	}

	file, handler, err := r.FormFile("file")
	if err != nil {
		log.Warn("Файл не найден при загрузке", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Файл не найден")
		return
	}
	defer file.Close()

	if ct := handler.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		log.Warn("Отклонён не-image файл", zap.String("content_type", ct))
		helpers.Error(w, http.StatusBadRequest, "Допустимы только изображения")
		return
	}

	url, err := h.storage.SaveObject(services.PublicBucket, handler.Filename, file)
	if err != nil {
		log.Error("Ошибка сохранения изображения", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка сохранения файла")
		return
	}

	log.Info("Изображение загружено", zap.String("url", url))
	helpers.JSON(w, http.StatusCreated, map[string]string{"url": url})
}
