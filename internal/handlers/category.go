package handlers

import (
	"errors"
	"net/http"

	"bytevanta/internal/logger"
	"bytevanta/internal/services"
	helpers "bytevanta/internal/utils/helpers"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	svc *services.CategoryService
}

func NewCategoryHandler(svc *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// List godoc
// @Summary Список категорий
// @Tags categories
// @Produce json
// @Success 200 {array} models.Category
// @Router /api/categories [get]
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	list, err := h.svc.List(r.Context())
	if err != nil {
		log.Error("Ошибка получения категорий", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка получения категорий")
		return
	}
	helpers.JSON(w, http.StatusOK, list)
}

// GetBySlug godoc
// @Summary Категория и её опубликованные статьи
// @Description Статьи категории по убыванию даты публикации; черновики не попадают в выдачу.
// @Tags categories
// @Produce json
// @Param slug path string true "Slug категории"
// @Success 200 {object} models.CategoryPage
// @Failure 404 {string} string "Не найдено"
// @Router /api/categories/{slug} [get]
func (h *CategoryHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	slug := mux.Vars(r)["slug"]

	page, err := h.svc.GetPage(r.Context(), slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Warn("Категория не найдена", zap.String("slug", slug))
			helpers.Error(w, http.StatusNotFound, "Категория не найдена")
			return
		}
		log.Error("Ошибка получения категории", zap.String("slug", slug), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка получения категории")
		return
	}

	helpers.JSON(w, http.StatusOK, page)
}
