package handlers

import (
	"encoding/json"
	"net/http"

	"bytevanta/internal/logger"
	"bytevanta/internal/services"
	helpers "bytevanta/internal/utils/helpers"

	"go.uber.org/zap"
)

// AdminAccessHandler — скрытый вход в админку по ротационному паролю.
// Сравнение пароля происходит только на сервере.
type AdminAccessHandler struct {
	svc *services.AdminAccessService
}

func NewAdminAccessHandler(svc *services.AdminAccessService) *AdminAccessHandler {
	return &AdminAccessHandler{svc: svc}
}

type adminAccessRequest struct {
	Password string `json:"password"`
}

type adminAccessResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
}

// Access godoc
// @Summary Вход в админку по текущему паролю
// @Description Проверяет пароль на сервере и выдаёт обычный admin-токен. Пароль никогда не передаётся клиенту.
// @Tags auth
// @Accept json
// @Produce json
// @Param input body adminAccessRequest true "Пароль админки"
// @Success 200 {object} adminAccessResponse
// @Failure 401 {string} string "Неверный пароль"
// @Router /api/admin/access [post]
func (h *AdminAccessHandler) Access(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req adminAccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password == "" {
		log.Warn("Невалидный payload в admin access")
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	token, err := h.svc.Verify(r.Context(), req.Password)
	if err != nil {
		log.Warn("Отказ входа в админку", zap.Error(err))
		helpers.Error(w, http.StatusUnauthorized, err.Error())
		return
	}

	helpers.JSON(w, http.StatusOK, adminAccessResponse{AccessToken: token, Role: "admin"})
}
