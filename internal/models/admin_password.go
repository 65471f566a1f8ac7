package models

import "time"

// AdminPassword — единственная строка (id=1) с текущим паролем входа в админку.
// В базе хранится только bcrypt-хеш, открытый пароль уходит лишь в письмо.
type AdminPassword struct {
	ID           int       `json:"id"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func (p *AdminPassword) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
