package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"bytevanta/internal/logger"
	"bytevanta/internal/models"
	"bytevanta/internal/utils"

	"go.uber.org/zap"
)

type AuthService struct {
	repo UserRepo
}

func NewAuthService(repo UserRepo) *AuthService {
	return &AuthService{repo: repo}
}

type UserRepo interface {
	IsEmailTaken(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	UpdateProfile(ctx context.Context, id int, input *models.UpdateProfileRequest) error
	GetSubscribedEmails(ctx context.Context) ([]string, error)
	SaveRefreshToken(ctx context.Context, userID int, token string) error
	IsRefreshTokenValid(ctx context.Context, userID int, token string) (bool, error)
	DeleteRefreshToken(ctx context.Context, userID int, token string) error
}

func (s *AuthService) RegisterUser(ctx context.Context, input *models.User, plainPassword string) error {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	logger.Log.Info("Регистрация пользователя (service)", zap.String("email", input.Email))

	if input.Email == "" || !strings.Contains(input.Email, "@") {
		return errors.New("некорректный email")
	}
	if plainPassword == "" {
		return errors.New("пароль обязателен")
	}

	if exists, err := s.repo.IsEmailTaken(ctx, input.Email); exists || err != nil {
		if err != nil {
			logger.Log.Error("Ошибка проверки email", zap.Error(err))
		}
		return errors.New("адрес электронной почты уже зарегистрирован")
	}

	hashed, err := utils.HashPassword(plainPassword)
	if err != nil {
		logger.Log.Error("Ошибка хеширования пароля", zap.Error(err))
		return err
	}

	input.PasswordHash = hashed
	input.Role = "user"
	// Профиль заводится вместе с аккаунтом; подписка на рассылку включена по умолчанию
	input.SubscribedToNews = true

	if err := s.repo.CreateUser(ctx, input); err != nil {
		logger.Log.Error("Ошибка создания пользователя", zap.Error(err))
		return err
	}
	logger.Log.Info("Пользователь зарегистрирован (service)", zap.String("email", input.Email))
	return nil
}

func (s *AuthService) LoginUser(
	ctx context.Context,
	email, password, jwtSecret string,
	accessTTL, refreshTTL time.Duration,
) (string, string, *models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	logger.Log.Info("Попытка входа (service)", zap.String("email", email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Warn("Пользователь не найден (service)", zap.String("email", email), zap.Error(err))
		return "", "", nil, errors.New("неверный email или пароль")
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Log.Warn("Неверный пароль (service)", zap.String("email", email))
		return "", "", nil, errors.New("неверный email или пароль")
	}

	accessToken, err := utils.GenerateToken(jwtSecret, user.ID, user.Role, accessTTL, "access")
	if err != nil {
		logger.Log.Error("Ошибка генерации access-токена", zap.Error(err))
		return "", "", nil, err
	}

	refreshToken, err := utils.GenerateToken(jwtSecret, user.ID, user.Role, refreshTTL, "refresh")
	if err != nil {
		logger.Log.Error("Ошибка генерации refresh-токена", zap.Error(err))
		return "", "", nil, err
	}

	if err := s.repo.SaveRefreshToken(ctx, user.ID, refreshToken); err != nil {
		logger.Log.Error("Ошибка сохранения refresh-токена", zap.Error(err))
		return "", "", nil, err
	}

	logger.Log.Info("Вход выполнен (service)", zap.String("email", email))
	return accessToken, refreshToken, user, nil
}

func (s *AuthService) ValidateRefreshToken(ctx context.Context, userID int, token string) (bool, error) {
	logger.Log.Debug("Проверка refresh токена (service)", zap.Int("user_id", userID))
	return s.repo.IsRefreshTokenValid(ctx, userID, token)
}

func (s *AuthService) Logout(ctx context.Context, userID int, token string) error {
	logger.Log.Info("Выход пользователя (service)", zap.Int("user_id", userID))
	return s.repo.DeleteRefreshToken(ctx, userID, token)
}

func (s *AuthService) GetProfile(ctx context.Context, userID int) (*models.UserProfileResponse, error) {
	logger.Log.Debug("Получение профиля (service)", zap.Int("user_id", userID))
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		logger.Log.Warn("Пользователь не найден по ID (service)", zap.Int("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &models.UserProfileResponse{
		ID:               user.ID,
		Email:            user.Email,
		FullName:         user.FullName,
		Role:             user.Role,
		SubscribedToNews: user.SubscribedToNews,
		CreatedAt:        user.CreatedAt,
	}, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID int, input *models.UpdateProfileRequest) error {
	logger.Log.Info("Обновление профиля (service)", zap.Int("user_id", userID))
	if err := s.repo.UpdateProfile(ctx, userID, input); err != nil {
		logger.Log.Error("Ошибка при обновлении профиля (service)", zap.Error(err), zap.Int("user_id", userID))
		return err
	}
	logger.Log.Info("Профиль обновлён (service)", zap.Int("user_id", userID))
	return nil
}
