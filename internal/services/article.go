package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"bytevanta/internal/logger"
	"bytevanta/internal/models"
	"bytevanta/internal/repository"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

const relatedLimit = 2

// ErrArticleNotFound возвращается при операциях над несуществующей статьёй.
var ErrArticleNotFound = errors.New("статья не найдена")

// ValidationError — ошибка проверки входных данных; отличает ошибку клиента
// от ошибки хранилища.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

type ArticleService interface {
	Create(ctx context.Context, req models.CreateArticleRequest) (*models.Article, error)
	GetAll(ctx context.Context, limit, offset int) ([]*models.Article, error)
	Featured(ctx context.Context) (*models.Article, error)
	GetDetail(ctx context.Context, id int64) (*models.ArticleDetail, error)
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	ListAdmin(ctx context.Context) ([]*models.AdminArticleRow, error)
	Update(ctx context.Context, id int64, req models.CreateArticleRequest) (*models.Article, error)
	Delete(ctx context.Context, id int64) error
}

type articleService struct {
	repo     repository.ArticleRepo
	catRepo  repository.CategoryRepo
	notifier *Notifier
	policy   *bluemonday.Policy
}

func NewArticleService(repo repository.ArticleRepo, catRepo repository.CategoryRepo, notifier *Notifier) ArticleService {
	p := bluemonday.UGCPolicy()
	p.AllowElements("img")
	p.AllowAttrs("src", "alt").OnElements("img")
	return &articleService{repo: repo, catRepo: catRepo, notifier: notifier, policy: p}
}

// ReadingTime — оценка времени чтения: ceil(слова/200) минут, минимум 1.
func ReadingTime(content string) string {
	words := len(strings.Fields(content))
	minutes := (words + 199) / 200
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

func (s *articleService) validate(req *models.CreateArticleRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	req.AuthorName = strings.TrimSpace(req.AuthorName)

	if req.Title == "" {
		return &ValidationError{Msg: "заголовок обязателен"}
	}
	if l := utf8.RuneCountInString(req.Title); l > 255 {
		return &ValidationError{Msg: "заголовок длиннее 255 символов"}
	}
	if req.CategoryID == 0 {
		return &ValidationError{Msg: "категория обязательна"}
	}
	if strings.TrimSpace(req.Content) == "" {
		return &ValidationError{Msg: "контент обязателен"}
	}
	if req.AuthorName == "" {
		return &ValidationError{Msg: "имя автора обязательно"}
	}
	return nil
}

func (s *articleService) Create(ctx context.Context, req models.CreateArticleRequest) (*models.Article, error) {
	log := logger.WithCtx(ctx)
	log.Info("Создание статьи",
		zap.String("title", strings.TrimSpace(req.Title)),
		zap.Int("category_id", req.CategoryID),
	)

	if err := s.validate(&req); err != nil {
		log.Warn("Валидация не пройдена", zap.Error(err))
		return nil, err
	}

	if ok, err := s.catRepo.Exists(ctx, req.CategoryID); err != nil {
		log.Error("Ошибка проверки категории (repo)", zap.Error(err))
		return nil, err
	} else if !ok {
		err := &ValidationError{Msg: "категория не найдена"}
		log.Warn("Валидация не пройдена: категория", zap.Int("category_id", req.CategoryID), zap.Error(err))
		return nil, err
	}

	a := &models.Article{
		Title:      req.Title,
		Content:    s.policy.Sanitize(req.Content),
		Excerpt:    strPtr(req.Excerpt),
		ImageURL:   strPtr(req.ImageURL),
		CategoryID: req.CategoryID,
		AuthorName: req.AuthorName,
	}

	// Форма публикует сразу; черновик — только явным publish:false.
	if req.Publish == nil || *req.Publish {
		now := time.Now()
		a.PublishedAt = &now
	}

	created, err := s.repo.Create(ctx, a)
	if err != nil {
		log.Error("Ошибка создания статьи (repo)", zap.Error(err))
		return nil, err
	}

	log.Info("Статья создана",
		zap.Int64("id", created.ID),
		zap.String("status", created.Status()),
	)

	if created.PublishedAt != nil && s.notifier != nil {
		s.notifier.NotifyArticlePublished(ctx, created.ID, created.Title)
	}

	return created, nil
}

func (s *articleService) GetAll(ctx context.Context, limit, offset int) ([]*models.Article, error) {
	log := logger.WithCtx(ctx)
	log.Debug("Получение списка статей", zap.Int("limit", limit), zap.Int("offset", offset))

	list, err := s.repo.ListPublished(ctx, limit, offset)
	if err != nil {
		log.Error("Ошибка получения списка статей (repo)", zap.Error(err))
		return nil, err
	}

	log.Debug("Список статей получен", zap.Int("count", len(list)))
	return list, nil
}

func (s *articleService) Featured(ctx context.Context) (*models.Article, error) {
	log := logger.WithCtx(ctx)
	a, err := s.repo.Featured(ctx)
	if err != nil {
		log.Warn("Главная статья не найдена (repo)", zap.Error(err))
		return nil, err
	}
	return a, nil
}

func (s *articleService) GetDetail(ctx context.Context, id int64) (*models.ArticleDetail, error) {
	log := logger.WithCtx(ctx)
	log.Debug("Получение статьи по ID", zap.Int64("id", id))

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Warn("Статья не найдена (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	related, err := s.repo.ListRelated(ctx, a.CategoryID, a.ID, relatedLimit)
	if err != nil {
		// Похожие статьи не критичны для страницы — отдаём без них
		log.Warn("Ошибка получения похожих статей (repo)", zap.Int64("id", id), zap.Error(err))
		related = nil
	}

	return &models.ArticleDetail{
		Article:  a,
		ReadTime: ReadingTime(a.Content),
		Related:  related,
	}, nil
}

func (s *articleService) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	log := logger.WithCtx(ctx)
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Warn("Статья не найдена (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return a, nil
}

func (s *articleService) ListAdmin(ctx context.Context) ([]*models.AdminArticleRow, error) {
	log := logger.WithCtx(ctx)
	list, err := s.repo.ListAll(ctx)
	if err != nil {
		log.Error("Ошибка получения статей для дашборда (repo)", zap.Error(err))
		return nil, err
	}

	rows := make([]*models.AdminArticleRow, 0, len(list))
	for _, a := range list {
		rows = append(rows, &models.AdminArticleRow{
			ID:          a.ID,
			Title:       a.Title,
			Category:    a.CategoryName,
			Status:      a.Status(),
			PublishedAt: a.PublishedAt,
			CreatedAt:   a.CreatedAt,
		})
	}

	log.Debug("Статьи для дашборда получены", zap.Int("count", len(rows)))
	return rows, nil
}

func (s *articleService) Update(ctx context.Context, id int64, req models.CreateArticleRequest) (*models.Article, error) {
	log := logger.WithCtx(ctx)
	log.Info("Обновление статьи", zap.Int64("id", id), zap.String("title", strings.TrimSpace(req.Title)))

	if err := s.validate(&req); err != nil {
		log.Warn("Валидация не пройдена", zap.Error(err))
		return nil, err
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Warn("Статья для обновления не найдена (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	wasPublished := a.PublishedAt != nil

	a.Title = req.Title
	a.Content = s.policy.Sanitize(req.Content)
	a.Excerpt = strPtr(req.Excerpt)
	a.ImageURL = strPtr(req.ImageURL)
	a.CategoryID = req.CategoryID
	a.AuthorName = req.AuthorName

	// publish отсутствует в запросе — статус публикации не трогаем
	if req.Publish != nil {
		if *req.Publish {
			if a.PublishedAt == nil {
				now := time.Now()
				a.PublishedAt = &now
			}
		} else {
			a.PublishedAt = nil
		}
	}

	if err := s.repo.Update(ctx, a); err != nil {
		log.Error("Ошибка обновления статьи (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	log.Info("Статья обновлена", zap.Int64("id", id), zap.String("status", a.Status()))

	if !wasPublished && a.PublishedAt != nil && s.notifier != nil {
		s.notifier.NotifyArticlePublished(ctx, a.ID, a.Title)
	}

	return a, nil
}

func (s *articleService) Delete(ctx context.Context, id int64) error {
	log := logger.WithCtx(ctx)
	log.Info("Удаление статьи", zap.Int64("id", id))

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		log.Error("Ошибка проверки существования статьи (repo)", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("ошибка проверки существования статьи: %w", err)
	}
	if !exists {
		log.Warn("Статья для удаления не найдена", zap.Int64("id", id))
		return ErrArticleNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("Ошибка удаления статьи (repo)", zap.Int64("id", id), zap.Error(err))
		return err
	}

	log.Info("Статья удалена", zap.Int64("id", id))
	return nil
}

func strPtr(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
