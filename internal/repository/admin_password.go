package repository

import (
	"context"
	"time"

	"bytevanta/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Пароль админки живёт в единственной строке с фиксированным id.
const adminPasswordRowID = 1

type AdminPasswordRepo interface {
	Upsert(ctx context.Context, passwordHash string, createdAt, expiresAt time.Time) error
	Get(ctx context.Context) (*models.AdminPassword, error)
}

type adminPasswordRepo struct{ db *pgxpool.Pool }

func NewAdminPasswordRepo(db *pgxpool.Pool) AdminPasswordRepo { return &adminPasswordRepo{db: db} }

func (r *adminPasswordRepo) Upsert(ctx context.Context, passwordHash string, createdAt, expiresAt time.Time) error {
	const q = `
		INSERT INTO admin_passwords (id, password_hash, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET password_hash = EXCLUDED.password_hash,
		    created_at    = EXCLUDED.created_at,
		    expires_at    = EXCLUDED.expires_at
	`
	_, err := r.db.Exec(ctx, q, adminPasswordRowID, passwordHash, createdAt, expiresAt)
	return err
}

func (r *adminPasswordRepo) Get(ctx context.Context) (*models.AdminPassword, error) {
	const q = `SELECT id, password_hash, created_at, expires_at FROM admin_passwords WHERE id = $1`
	var p models.AdminPassword
	if err := r.db.QueryRow(ctx, q, adminPasswordRowID).Scan(&p.ID, &p.PasswordHash, &p.CreatedAt, &p.ExpiresAt); err != nil {
		return nil, err
	}
	return &p, nil
}
