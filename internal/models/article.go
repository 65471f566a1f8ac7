package models

import "time"

type Article struct {
	ID           int64      `db:"id"           json:"id"`
	Title        string     `db:"title"        json:"title"`
	Content      string     `db:"content"      json:"content"`
	Excerpt      *string    `db:"excerpt"      json:"excerpt,omitempty"`
	ImageURL     *string    `db:"image_url"    json:"image_url,omitempty"`
	CategoryID   int        `db:"category_id"  json:"category_id"`
	CategoryName string     `db:"-"            json:"category,omitempty"`
	AuthorName   string     `db:"author_name"  json:"author_name"`
	PublishedAt  *time.Time `db:"published_at" json:"published_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at"   json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"   json:"updated_at"`
}

// Status — published, если выставлена дата публикации, иначе draft.
func (a *Article) Status() string {
	if a.PublishedAt != nil {
		return "published"
	}
	return "draft"
}

// swagger:model CreateArticleRequest
type CreateArticleRequest struct {
	Title      string `json:"title"       example:"Обзор нового флагмана"`
	CategoryID int    `json:"category_id" example:"2"`
	Excerpt    string `json:"excerpt"     example:"Короткое описание для превью"`
	Content    string `json:"content"     example:"<p>Контент</p>"`
	ImageURL   string `json:"image_url"   example:"https://bytevanta.com/storage/public/1713000000_cover.jpg"`
	AuthorName string `json:"author_name" example:"Jane Smith"`
	Publish    *bool  `json:"publish,omitempty"`
}

// ArticleDetail — статья вместе с оценкой времени чтения и похожими статьями.
type ArticleDetail struct {
	Article  *Article   `json:"article"`
	ReadTime string     `json:"read_time"`
	Related  []*Article `json:"related"`
}

type AdminArticleRow struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Category    string     `json:"category"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
