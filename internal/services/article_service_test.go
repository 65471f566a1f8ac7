package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"bytevanta/internal/models"
)

type mockArticleRepo struct {
	articles   map[int64]*models.Article
	nextID     int64
	createHits int
}

func newMockArticleRepo() *mockArticleRepo {
	return &mockArticleRepo{articles: make(map[int64]*models.Article), nextID: 1}
}

func (m *mockArticleRepo) Create(_ context.Context, a *models.Article) (*models.Article, error) {
	m.createHits++
	cp := *a
	cp.ID = m.nextID
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	m.nextID++
	m.articles[cp.ID] = &cp
	return &cp, nil
}

func (m *mockArticleRepo) GetByID(_ context.Context, id int64) (*models.Article, error) {
	a, ok := m.articles[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return a, nil
}

func (m *mockArticleRepo) ListPublished(_ context.Context, limit, offset int) ([]*models.Article, error) {
	var out []*models.Article
	for _, a := range m.articles {
		if a.PublishedAt != nil {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockArticleRepo) Featured(_ context.Context) (*models.Article, error) {
	for _, a := range m.articles {
		if a.PublishedAt != nil {
			return a, nil
		}
	}
	return nil, errors.New("not found")
}

func (m *mockArticleRepo) ListByCategory(_ context.Context, categoryID int) ([]*models.Article, error) {
	var out []*models.Article
	for _, a := range m.articles {
		if a.CategoryID == categoryID && a.PublishedAt != nil {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockArticleRepo) ListRelated(_ context.Context, categoryID int, excludeID int64, limit int) ([]*models.Article, error) {
	var out []*models.Article
	for _, a := range m.articles {
		if len(out) == limit {
			break
		}
		if a.CategoryID == categoryID && a.ID != excludeID && a.PublishedAt != nil {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockArticleRepo) ListAll(_ context.Context) ([]*models.Article, error) {
	var out []*models.Article
	for _, a := range m.articles {
		out = append(out, a)
	}
	return out, nil
}

func (m *mockArticleRepo) Update(_ context.Context, a *models.Article) error {
	if _, ok := m.articles[a.ID]; !ok {
		return errors.New("not found")
	}
	m.articles[a.ID] = a
	return nil
}

func (m *mockArticleRepo) Delete(_ context.Context, id int64) error {
	delete(m.articles, id)
	return nil
}

func (m *mockArticleRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := m.articles[id]
	return ok, nil
}

type mockCategoryRepo struct {
	ids    map[int]bool
	bySlug map[string]*models.Category
}

func (m *mockCategoryRepo) List(_ context.Context) ([]*models.Category, error) {
	var out []*models.Category
	for _, c := range m.bySlug {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCategoryRepo) GetBySlug(_ context.Context, slug string) (*models.Category, error) {
	c, ok := m.bySlug[slug]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}
func (m *mockCategoryRepo) Exists(_ context.Context, id int) (bool, error) {
	return m.ids[id], nil
}

func newArticleServiceForTest(repo *mockArticleRepo) ArticleService {
	return NewArticleService(repo, &mockCategoryRepo{ids: map[int]bool{1: true, 2: true}}, nil)
}

func TestReadingTime(t *testing.T) {
	cases := []struct {
		words int
		want  string
	}{
		{0, "1 min read"},
		{1, "1 min read"},
		{200, "1 min read"},
		{201, "2 min read"},
		{400, "2 min read"},
		{1000, "5 min read"},
	}

	for _, c := range cases {
		content := strings.TrimSpace(strings.Repeat("слово ", c.words))
		if got := ReadingTime(content); got != c.want {
			t.Errorf("ReadingTime(%d слов) = %q, ожидалось %q", c.words, got, c.want)
		}
	}
}

func TestCreateArticle_Validation(t *testing.T) {
	repo := newMockArticleRepo()
	svc := newArticleServiceForTest(repo)

	cases := []models.CreateArticleRequest{
		{Title: "", CategoryID: 1, Content: "текст", AuthorName: "Автор"},
		{Title: "Заголовок", CategoryID: 0, Content: "текст", AuthorName: "Автор"},
		{Title: "Заголовок", CategoryID: 1, Content: "   ", AuthorName: "Автор"},
		{Title: "Заголовок", CategoryID: 1, Content: "текст", AuthorName: ""},
	}

	for i, req := range cases {
		_, err := svc.Create(context.Background(), req)
		if err == nil {
			t.Errorf("кейс %d: ожидалась ошибка валидации", i)
			continue
		}
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("кейс %d: ожидалась ValidationError, получено %T", i, err)
		}
	}

	if repo.createHits != 0 {
		t.Fatalf("репозиторий не должен вызываться при ошибке валидации, вызовов: %d", repo.createHits)
	}
}

func TestCreateArticle_UnknownCategory(t *testing.T) {
	repo := newMockArticleRepo()
	svc := newArticleServiceForTest(repo)

	_, err := svc.Create(context.Background(), models.CreateArticleRequest{
		Title: "Заголовок", CategoryID: 99, Content: "текст", AuthorName: "Автор",
	})
	if err == nil {
		t.Fatal("ожидалась ошибка для несуществующей категории")
	}
	if repo.createHits != 0 {
		t.Fatal("статья не должна создаваться с несуществующей категорией")
	}
}

func TestCreateArticle_PublishDefault(t *testing.T) {
	repo := newMockArticleRepo()
	svc := newArticleServiceForTest(repo)

	// без publish статья публикуется сразу
	a, err := svc.Create(context.Background(), models.CreateArticleRequest{
		Title: "Новость", CategoryID: 1, Content: "текст", AuthorName: "Автор",
	})
	if err != nil {
		t.Fatalf("ошибка создания: %v", err)
	}
	if a.PublishedAt == nil || a.Status() != "published" {
		t.Fatal("статья без publish должна публиковаться сразу")
	}

	// publish:false — черновик
	draft := false
	d, err := svc.Create(context.Background(), models.CreateArticleRequest{
		Title: "Черновик", CategoryID: 1, Content: "текст", AuthorName: "Автор", Publish: &draft,
	})
	if err != nil {
		t.Fatalf("ошибка создания черновика: %v", err)
	}
	if d.PublishedAt != nil || d.Status() != "draft" {
		t.Fatal("publish:false должен создавать черновик")
	}
}

func TestCreateArticle_SanitizesContent(t *testing.T) {
	repo := newMockArticleRepo()
	svc := newArticleServiceForTest(repo)

	a, err := svc.Create(context.Background(), models.CreateArticleRequest{
		Title:      "XSS",
		CategoryID: 1,
		Content:    `<p>ок</p><script>alert(1)</script><img src="x.png" alt="пример">`,
		AuthorName: "Автор",
	})
	if err != nil {
		t.Fatalf("ошибка создания: %v", err)
	}
	if strings.Contains(a.Content, "<script>") {
		t.Fatal("script должен вырезаться санитайзером")
	}
	if !strings.Contains(a.Content, "<img") {
		t.Fatal("img должен сохраняться санитайзером")
	}
}

func TestGetDetail_Related(t *testing.T) {
	repo := newMockArticleRepo()
	svc := newArticleServiceForTest(repo)

	// четыре опубликованные статьи одной категории
	var mainID int64
	for i := 0; i < 4; i++ {
		a, err := svc.Create(context.Background(), models.CreateArticleRequest{
			Title: "Статья", CategoryID: 1, Content: "текст", AuthorName: "Автор",
		})
		if err != nil {
			t.Fatalf("ошибка создания: %v", err)
		}
		if i == 0 {
			mainID = a.ID
		}
	}

	detail, err := svc.GetDetail(context.Background(), mainID)
	if err != nil {
		t.Fatalf("ошибка получения: %v", err)
	}

	if detail.ReadTime != "1 min read" {
		t.Errorf("неверное время чтения: %q", detail.ReadTime)
	}
	if len(detail.Related) != 2 {
		t.Fatalf("ожидалось 2 похожие статьи, получено %d", len(detail.Related))
	}
	for _, r := range detail.Related {
		if r.ID == mainID {
			t.Fatal("статья не должна попадать в собственный список похожих")
		}
	}
}

func TestUpdateArticle_PublishTransitions(t *testing.T) {
	repo := newMockArticleRepo()
	svc := newArticleServiceForTest(repo)

	a, err := svc.Create(context.Background(), models.CreateArticleRequest{
		Title: "Статья", CategoryID: 1, Content: "текст", AuthorName: "Автор",
	})
	if err != nil {
		t.Fatalf("ошибка создания: %v", err)
	}
	firstPublished := a.PublishedAt

	// publish не передан — дата публикации не меняется
	upd, err := svc.Update(context.Background(), a.ID, models.CreateArticleRequest{
		Title: "Статья 2", CategoryID: 1, Content: "текст 2", AuthorName: "Автор",
	})
	if err != nil {
		t.Fatalf("ошибка обновления: %v", err)
	}
	if upd.PublishedAt == nil || !upd.PublishedAt.Equal(*firstPublished) {
		t.Fatal("дата публикации не должна меняться без publish")
	}

	// снятие с публикации
	draft := false
	upd, err = svc.Update(context.Background(), a.ID, models.CreateArticleRequest{
		Title: "Статья 2", CategoryID: 1, Content: "текст 2", AuthorName: "Автор", Publish: &draft,
	})
	if err != nil {
		t.Fatalf("ошибка обновления: %v", err)
	}
	if upd.Status() != "draft" {
		t.Fatal("publish:false должен снимать статью с публикации")
	}

	// повторная публикация — новая дата
	pub := true
	upd, err = svc.Update(context.Background(), a.ID, models.CreateArticleRequest{
		Title: "Статья 2", CategoryID: 1, Content: "текст 2", AuthorName: "Автор", Publish: &pub,
	})
	if err != nil {
		t.Fatalf("ошибка обновления: %v", err)
	}
	if upd.PublishedAt == nil {
		t.Fatal("publish:true должен публиковать статью")
	}
}

func TestDeleteArticle_NotFound(t *testing.T) {
	repo := newMockArticleRepo()
	svc := newArticleServiceForTest(repo)

	err := svc.Delete(context.Background(), 42)
	if err == nil {
		t.Fatal("ожидалась ошибка удаления несуществующей статьи")
	}
	if !errors.Is(err, ErrArticleNotFound) {
		t.Fatalf("ожидалась ErrArticleNotFound, получено %v", err)
	}
}
