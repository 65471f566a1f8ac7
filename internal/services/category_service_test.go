package services

import (
	"context"
	"testing"
	"time"

	"bytevanta/internal/models"
)

func TestCategoryGetPage_OnlyPublished(t *testing.T) {
	articles := newMockArticleRepo()
	cats := &mockCategoryRepo{
		ids: map[int]bool{1: true, 2: true},
		bySlug: map[string]*models.Category{
			"smartphones": {ID: 1, Name: "Смартфоны", Slug: "smartphones"},
		},
	}
	svc := NewCategoryService(cats, articles)

	now := time.Now()
	articles.articles[1] = &models.Article{ID: 1, Title: "Опубликована", CategoryID: 1, PublishedAt: &now}
	articles.articles[2] = &models.Article{ID: 2, Title: "Черновик", CategoryID: 1} // без даты публикации
	articles.articles[3] = &models.Article{ID: 3, Title: "Чужая категория", CategoryID: 2, PublishedAt: &now}

	page, err := svc.GetPage(context.Background(), "smartphones")
	if err != nil {
		t.Fatalf("ошибка получения категории: %v", err)
	}

	if page.Category == nil || page.Category.Slug != "smartphones" {
		t.Fatal("категория не возвращена")
	}
	if len(page.Articles) != 1 {
		t.Fatalf("ожидалась 1 опубликованная статья категории, получено %d", len(page.Articles))
	}
	if page.Articles[0].ID != 1 {
		t.Fatalf("в выдачу попала не та статья: id=%d", page.Articles[0].ID)
	}
}

func TestCategoryGetPage_UnknownSlug(t *testing.T) {
	svc := NewCategoryService(&mockCategoryRepo{}, newMockArticleRepo())

	if _, err := svc.GetPage(context.Background(), "nope"); err == nil {
		t.Fatal("ожидалась ошибка для неизвестного slug")
	}
}
