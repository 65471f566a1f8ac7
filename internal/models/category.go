package models

import "time"

type Category struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryPage — категория и её опубликованные статьи.
type CategoryPage struct {
	Category *Category  `json:"category"`
	Articles []*Article `json:"articles"`
}
