package services

import (
	"context"

	"bytevanta/internal/logger"
	"bytevanta/internal/models"
	"bytevanta/internal/repository"

	"go.uber.org/zap"
)

type CategoryService struct {
	repo        repository.CategoryRepo
	articleRepo repository.ArticleRepo
}

func NewCategoryService(repo repository.CategoryRepo, articleRepo repository.ArticleRepo) *CategoryService {
	return &CategoryService{repo: repo, articleRepo: articleRepo}
}

func (s *CategoryService) List(ctx context.Context) ([]*models.Category, error) {
	log := logger.WithCtx(ctx)
	list, err := s.repo.List(ctx)
	if err != nil {
		log.Error("Ошибка получения категорий (repo)", zap.Error(err))
		return nil, err
	}
	log.Debug("Категории получены", zap.Int("count", len(list)))
	return list, nil
}

// GetPage возвращает категорию по slug вместе с её опубликованными статьями.
func (s *CategoryService) GetPage(ctx context.Context, slug string) (*models.CategoryPage, error) {
	log := logger.WithCtx(ctx)
	log.Debug("Получение категории по slug", zap.String("slug", slug))

	c, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		log.Warn("Категория не найдена (repo)", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}

	articles, err := s.articleRepo.ListByCategory(ctx, c.ID)
	if err != nil {
		log.Error("Ошибка получения статей категории (repo)", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}

	log.Debug("Категория получена", zap.String("slug", slug), zap.Int("articles", len(articles)))
	return &models.CategoryPage{Category: c, Articles: articles}, nil
}
