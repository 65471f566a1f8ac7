package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"bytevanta/internal/models"
)

type ArticleRepo interface {
	Create(ctx context.Context, a *models.Article) (*models.Article, error)
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	ListPublished(ctx context.Context, limit, offset int) ([]*models.Article, error)
	Featured(ctx context.Context) (*models.Article, error)
	ListByCategory(ctx context.Context, categoryID int) ([]*models.Article, error)
	ListRelated(ctx context.Context, categoryID int, excludeID int64, limit int) ([]*models.Article, error)
	ListAll(ctx context.Context) ([]*models.Article, error)
	Update(ctx context.Context, a *models.Article) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

type articleRepo struct{ db *pgxpool.Pool }

func NewArticleRepo(db *pgxpool.Pool) ArticleRepo { return &articleRepo{db: db} }

const articleColumns = `
	a.id, a.title, a.content, a.excerpt, a.image_url, a.category_id, c.name,
	a.author_name, a.published_at, a.created_at, a.updated_at
`

func scanArticle(row interface{ Scan(dest ...any) error }) (*models.Article, error) {
	var a models.Article
	if err := row.Scan(
		&a.ID, &a.Title, &a.Content, &a.Excerpt, &a.ImageURL, &a.CategoryID, &a.CategoryName,
		&a.AuthorName, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *articleRepo) Create(ctx context.Context, a *models.Article) (*models.Article, error) {
	const q = `
		WITH ins AS (
			INSERT INTO articles (title, content, excerpt, image_url, category_id, author_name, published_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
			RETURNING *
		)
		SELECT ` + articleColumns + `
		FROM ins a JOIN categories c ON c.id = a.category_id
	`
	return scanArticle(r.db.QueryRow(ctx, q,
		a.Title,
		a.Content,
		a.Excerpt,     // *string (nullable)
		a.ImageURL,    // *string (nullable)
		a.CategoryID,
		a.AuthorName,
		a.PublishedAt, // *time.Time: NULL => черновик
	))
}

func (r *articleRepo) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	const q = `
		SELECT ` + articleColumns + `
		FROM articles a JOIN categories c ON c.id = a.category_id
		WHERE a.id = $1
	`
	return scanArticle(r.db.QueryRow(ctx, q, id))
}

func (r *articleRepo) queryList(ctx context.Context, q string, args ...any) ([]*models.Article, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *articleRepo) ListPublished(ctx context.Context, limit, offset int) ([]*models.Article, error) {
	const q = `
		SELECT ` + articleColumns + `
		FROM articles a JOIN categories c ON c.id = a.category_id
		WHERE a.published_at IS NOT NULL
		ORDER BY a.published_at DESC
		LIMIT $1 OFFSET $2
	`
	return r.queryList(ctx, q, limit, offset)
}

func (r *articleRepo) Featured(ctx context.Context) (*models.Article, error) {
	const q = `
		SELECT ` + articleColumns + `
		FROM articles a JOIN categories c ON c.id = a.category_id
		WHERE a.published_at IS NOT NULL
		ORDER BY a.published_at DESC
		LIMIT 1
	`
	return scanArticle(r.db.QueryRow(ctx, q))
}

func (r *articleRepo) ListByCategory(ctx context.Context, categoryID int) ([]*models.Article, error) {
	const q = `
		SELECT ` + articleColumns + `
		FROM articles a JOIN categories c ON c.id = a.category_id
		WHERE a.category_id = $1 AND a.published_at IS NOT NULL
		ORDER BY a.published_at DESC
	`
	return r.queryList(ctx, q, categoryID)
}

func (r *articleRepo) ListRelated(ctx context.Context, categoryID int, excludeID int64, limit int) ([]*models.Article, error) {
	const q = `
		SELECT ` + articleColumns + `
		FROM articles a JOIN categories c ON c.id = a.category_id
		WHERE a.category_id = $1 AND a.id <> $2 AND a.published_at IS NOT NULL
		ORDER BY a.published_at DESC
		LIMIT $3
	`
	return r.queryList(ctx, q, categoryID, excludeID, limit)
}

func (r *articleRepo) ListAll(ctx context.Context) ([]*models.Article, error) {
	const q = `
		SELECT ` + articleColumns + `
		FROM articles a JOIN categories c ON c.id = a.category_id
		ORDER BY a.created_at DESC
	`
	return r.queryList(ctx, q)
}

func (r *articleRepo) Update(ctx context.Context, a *models.Article) error {
	const q = `
		UPDATE articles
		SET title=$1,
		    content=$2,
		    excerpt=$3,
		    image_url=$4,
		    category_id=$5,
		    author_name=$6,
		    published_at=$7,
		    updated_at=NOW()
		WHERE id=$8
	`
	_, err := r.db.Exec(ctx, q, a.Title, a.Content, a.Excerpt, a.ImageURL, a.CategoryID, a.AuthorName, a.PublishedAt, a.ID)
	return err
}

func (r *articleRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, "DELETE FROM articles WHERE id=$1", id)
	return err
}

func (r *articleRepo) Exists(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM articles WHERE id = $1)`
	var ok bool
	if err := r.db.QueryRow(ctx, q, id).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}
