package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bytevanta/internal/logger"
	"bytevanta/internal/models"
	"bytevanta/internal/services"
	helpers "bytevanta/internal/utils/helpers"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ArticleHandler struct {
	svc services.ArticleService
}

func NewArticleHandler(svc services.ArticleService) *ArticleHandler {
	return &ArticleHandler{svc: svc}
}

// GetAll godoc
// @Summary Список опубликованных статей
// @Description Свежие статьи с пагинацией. featured=true возвращает одну главную статью.
// @Tags articles
// @Produce json
// @Param page query int false "Номер страницы (начиная с 1)"
// @Param page_size query int false "Размер страницы"
// @Param featured query bool false "Только главная статья"
// @Success 200 {array} models.Article
// @Router /api/articles [get]
func (h *ArticleHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	if r.URL.Query().Get("featured") == "true" {
		a, err := h.svc.Featured(r.Context())
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				helpers.Error(w, http.StatusNotFound, "Статьи ещё не опубликованы")
				return
			}
			log.Error("Ошибка получения главной статьи", zap.Error(err))
			helpers.Error(w, http.StatusInternalServerError, "Ошибка получения статьи")
			return
		}
		helpers.JSON(w, http.StatusOK, a)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 12
	}
	offset := (page - 1) * pageSize

	list, err := h.svc.GetAll(r.Context(), pageSize, offset)
	if err != nil {
		log.Error("Ошибка получения списка статей", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка получения статей")
		return
	}

	log.Debug("Статьи получены", zap.Int("count", len(list)))
	helpers.JSON(w, http.StatusOK, map[string]interface{}{
		"data":      list,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetByID godoc
// @Summary Статья по ID
// @Description Статья с оценкой времени чтения и до 2 похожих статей той же категории.
// @Tags articles
// @Produce json
// @Param id path int true "ID статьи"
// @Success 200 {object} models.ArticleDetail
// @Failure 404 {string} string "Не найдено"
// @Router /api/articles/{id} [get]
func (h *ArticleHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный ID")
		return
	}

	detail, err := h.svc.GetDetail(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Warn("Статья не найдена", zap.Int64("id", id))
			helpers.Error(w, http.StatusNotFound, "Статья не найдена")
			return
		}
		log.Error("Ошибка получения статьи", zap.Int64("id", id), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка получения статьи")
		return
	}

	helpers.JSON(w, http.StatusOK, detail)
}

// ListAdmin godoc
// @Summary Все статьи для дашборда (только admin)
// @Description Все статьи по убыванию даты создания со статусом published/draft.
// @Tags admin-articles
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} models.AdminArticleRow
// @Failure 403 {string} string "Доступ запрещён"
// @Router /api/admin/articles [get]
func (h *ArticleHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	rows, err := h.svc.ListAdmin(r.Context())
	if err != nil {
		log.Error("Ошибка получения статей для дашборда", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка получения статей")
		return
	}
	helpers.JSON(w, http.StatusOK, rows)
}

// AdminGetByID godoc
// @Summary Статья для формы редактирования (только admin)
// @Tags admin-articles
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "ID статьи"
// @Success 200 {object} models.Article
// @Failure 404 {string} string "Не найдено"
// @Router /api/admin/articles/{id} [get]
func (h *ArticleHandler) AdminGetByID(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный ID")
		return
	}

	a, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			helpers.Error(w, http.StatusNotFound, "Статья не найдена")
			return
		}
		log.Error("Ошибка получения статьи", zap.Int64("id", id), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка получения статьи")
		return
	}

	helpers.JSON(w, http.StatusOK, a)
}

// Create godoc
// @Summary Создать статью (только admin)
// @Description Заголовок, категория, контент и автор обязательны. Публикуется сразу, если не передан publish:false.
// @Tags admin-articles
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param input body models.CreateArticleRequest true "Данные статьи"
// @Success 201 {object} models.Article
// @Failure 400 {string} string "Ошибка валидации"
// @Router /api/admin/articles [post]
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())

	var req models.CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Невалидный JSON при создании статьи", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	article, err := h.svc.Create(r.Context(), req)
	if err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			log.Warn("Ошибка валидации при создании статьи", zap.Error(err))
			helpers.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error("Ошибка создания статьи", zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка создания статьи")
		return
	}

	log.Info("Статья успешно создана",
		zap.Int64("id", article.ID),
		zap.String("title", article.Title),
	)
	helpers.JSON(w, http.StatusCreated, article)
}

// Update godoc
// @Summary Обновить статью (только admin)
// @Description Полное обновление полей формы. Повторная отправка без изменений — no-op по содержимому.
// @Tags admin-articles
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "ID статьи"
// @Param input body models.CreateArticleRequest true "Обновлённые данные"
// @Success 200 {object} models.Article
// @Failure 404 {string} string "Не найдено"
// @Router /api/admin/articles/{id} [patch]
func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный ID")
		return
	}

	var req models.CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("Невалидный JSON при обновлении статьи", zap.Error(err))
		helpers.Error(w, http.StatusBadRequest, "Невалидный JSON")
		return
	}

	article, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			helpers.Error(w, http.StatusNotFound, "Статья не найдена")
			return
		}
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			log.Warn("Ошибка валидации при обновлении статьи", zap.Int64("id", id), zap.Error(err))
			helpers.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error("Ошибка обновления статьи", zap.Int64("id", id), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка обновления статьи")
		return
	}

	log.Info("Статья обновлена", zap.Int64("id", id))
	helpers.JSON(w, http.StatusOK, article)
}

// Delete godoc
// @Summary Удалить статью (только admin)
// @Description Удаление безвозвратно, подтверждения и корзины нет.
// @Tags admin-articles
// @Security ApiKeyAuth
// @Param id path int true "ID статьи"
// @Success 200 {string} string "Удалено"
// @Failure 404 {string} string "Не найдено"
// @Router /api/admin/articles/{id} [delete]
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.WithCtx(r.Context())
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		helpers.Error(w, http.StatusBadRequest, "Невалидный ID")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrArticleNotFound) {
			log.Warn("Статья для удаления не найдена", zap.Int64("id", id))
			helpers.Error(w, http.StatusNotFound, "Статья не найдена")
			return
		}
		log.Error("Ошибка удаления статьи", zap.Int64("id", id), zap.Error(err))
		helpers.Error(w, http.StatusInternalServerError, "Ошибка удаления")
		return
	}

	log.Info("Статья удалена", zap.Int64("id", id))
	helpers.JSON(w, http.StatusOK, "Удалено")
}
