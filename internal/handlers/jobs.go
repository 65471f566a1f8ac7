package handlers

import (
	"net/http"

	"bytevanta/internal/logger"
	"bytevanta/internal/services"
	helpers "bytevanta/internal/utils/helpers"

	"go.uber.org/zap"
)

// JobsHandler — сервисные эндпоинты: ротация пароля админки и проверка
// бакета. Отвечают в формате {message|success} / {error}, без конверта.
type JobsHandler struct {
	adminAccess  *services.AdminAccessService
	storage      *services.StorageService
	rotateSecret string
}

func NewJobsHandler(adminAccess *services.AdminAccessService, storage *services.StorageService, rotateSecret string) *JobsHandler {
	return &JobsHandler{adminAccess: adminAccess, storage: storage, rotateSecret: rotateSecret}
}

// RotatePassword godoc
// @Summary Ротация пароля админки
// @Description Требует Authorization: Bearer с общим секретом ротации. Перезаписывает пароль со сроком 7 дней и ставит письмо в очередь.
// @Tags jobs
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/jobs/rotate-admin-password [post]
func (h *JobsHandler) RotatePassword(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	log := logger.WithCtx(r.Context())

	authHeader := r.Header.Get("Authorization")
	if h.rotateSecret == "" || authHeader != "Bearer "+h.rotateSecret {
		log.Warn("Ротация отклонена: неверный секрет")
		helpers.RawJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	if err := h.adminAccess.Rotate(r.Context()); err != nil {
		log.Error("Ошибка ротации пароля админки", zap.Error(err))
		helpers.RawJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	helpers.RawJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Password refreshed and notification queued",
	})
}

// EnsureBucket godoc
// @Summary Проверка/создание публичного бакета
// @Description Идемпотентно: создаёт бакет public, если его ещё нет.
// @Tags jobs
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/jobs/ensure-bucket [post]
func (h *JobsHandler) EnsureBucket(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	log := logger.WithCtx(r.Context())

	created, err := h.storage.EnsureBucket(services.PublicBucket)
	if err != nil {
		log.Error("Ошибка проверки бакета", zap.Error(err))
		helpers.RawJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	msg := "Storage bucket check completed successfully"
	if created {
		msg = "Storage bucket created successfully"
	}
	helpers.RawJSON(w, http.StatusOK, map[string]string{"message": msg})
}
