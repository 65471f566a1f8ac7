package services

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"bytevanta/internal/logger"
	"bytevanta/internal/repository"
	"bytevanta/internal/utils"
	helpers "bytevanta/internal/utils/helpers"

	"go.uber.org/zap"
)

// Набор символов и длина пароля админки.
const (
	passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*()_+"
	passwordLength  = 12
)

// AdminAccessService отвечает за ротацию пароля входа в админку и его проверку.
// Пароль живёт в единственной строке admin_passwords, в базе — только bcrypt-хеш;
// открытый пароль уходит единственным каналом — письмом администратору.
type AdminAccessService struct {
	repo        repository.AdminPasswordRepo
	notifyEmail string
	passwordTTL time.Duration
	jwtSecret   string
	accessTTL   time.Duration
}

func NewAdminAccessService(
	repo repository.AdminPasswordRepo,
	notifyEmail string,
	passwordTTL time.Duration,
	jwtSecret string,
	accessTTL time.Duration,
) *AdminAccessService {
	return &AdminAccessService{
		repo:        repo,
		notifyEmail: notifyEmail,
		passwordTTL: passwordTTL,
		jwtSecret:   jwtSecret,
		accessTTL:   accessTTL,
	}
}

// GeneratePassword возвращает криптостойкий пароль фиксированной длины.
func GeneratePassword(length int) (string, error) {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(passwordCharset)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = passwordCharset[n.Int64()]
	}
	return string(buf), nil
}

// Rotate генерирует новый пароль, перезаписывает единственную строку с новым
// сроком действия и ставит письмо с паролем в очередь отправки.
// Конкурентные ротации не координируются — побеждает последняя запись.
func (s *AdminAccessService) Rotate(ctx context.Context) error {
	logger.Log.Info("Ротация пароля админки (service)")

	password, err := GeneratePassword(passwordLength)
	if err != nil {
		logger.Log.Error("Ошибка генерации пароля", zap.Error(err))
		return err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		logger.Log.Error("Ошибка хеширования пароля админки", zap.Error(err))
		return err
	}

	now := time.Now()
	expiresAt := now.Add(s.passwordTTL)

	if err := s.repo.Upsert(ctx, hash, now, expiresAt); err != nil {
		logger.Log.Error("Ошибка сохранения пароля админки (repo)", zap.Error(err))
		return err
	}

	if s.notifyEmail != "" {
		EmailQueue <- EmailJob{
			To:      []string{s.notifyEmail},
			Subject: "Новый пароль админки Bytevanta",
			Body:    helpers.BuildAdminPasswordHTML(password, expiresAt),
			IsHTML:  true,
		}
	}

	logger.Log.Info("Пароль админки обновлён", zap.Time("expires_at", expiresAt))
	return nil
}

// Verify сравнивает кандидата с текущим паролем строго на сервере и при
// успехе выдаёт обычный admin-токен. Никакой пароль не покидает процесс.
func (s *AdminAccessService) Verify(ctx context.Context, candidate string) (string, error) {
	logger.Log.Info("Проверка пароля админки (service)")

	p, err := s.repo.Get(ctx)
	if err != nil {
		logger.Log.Warn("Пароль админки не установлен", zap.Error(err))
		return "", errors.New("неверный пароль")
	}

	if p.Expired(time.Now()) {
		logger.Log.Warn("Пароль админки просрочен", zap.Time("expires_at", p.ExpiresAt))
		return "", errors.New("пароль просрочен")
	}

	if !utils.CheckPasswordHash(candidate, p.PasswordHash) {
		logger.Log.Warn("Неверный пароль админки")
		return "", errors.New("неверный пароль")
	}

	// Сервисный вход: user_id 0, роль admin; refresh-токен не выдаётся
	token, err := utils.GenerateToken(s.jwtSecret, 0, "admin", s.accessTTL, "access")
	if err != nil {
		logger.Log.Error("Ошибка генерации admin-токена", zap.Error(err))
		return "", err
	}

	logger.Log.Info("Вход в админку по паролю выполнен")
	return token, nil
}
