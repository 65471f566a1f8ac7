package services

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"bytevanta/internal/logger"
	"bytevanta/internal/models"
	"bytevanta/internal/utils"

	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// Мок-репозиторий (заглушка)
type mockUserRepo struct {
	users    map[string]*models.User
	lastUser *models.User
}

func (m *mockUserRepo) IsEmailTaken(_ context.Context, email string) (bool, error) {
	_, exists := m.users[email]
	return exists, nil
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *models.User) error {
	m.users[user.Email] = user
	m.lastUser = user
	return nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id int) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func (m *mockUserRepo) UpdateProfile(_ context.Context, id int, input *models.UpdateProfileRequest) error {
	for _, u := range m.users {
		if u.ID == id {
			if input.FullName != nil {
				u.FullName = *input.FullName
			}
			if input.SubscribedToNews != nil {
				u.SubscribedToNews = *input.SubscribedToNews
			}
			return nil
		}
	}
	return errors.New("not found")
}

func (m *mockUserRepo) GetSubscribedEmails(_ context.Context) ([]string, error) {
	var out []string
	for _, u := range m.users {
		if u.SubscribedToNews {
			out = append(out, u.Email)
		}
	}
	return out, nil
}

func (m *mockUserRepo) SaveRefreshToken(_ context.Context, userID int, token string) error {
	return nil
}
func (m *mockUserRepo) IsRefreshTokenValid(_ context.Context, userID int, token string) (bool, error) {
	return true, nil
}
func (m *mockUserRepo) DeleteRefreshToken(_ context.Context, userID int, token string) error {
	return nil
}

func TestRegisterUser(t *testing.T) {
	repo := &mockUserRepo{users: make(map[string]*models.User)}
	service := NewAuthService(repo)

	user := &models.User{
		Email:    "test@example.com",
		FullName: "Тестовый Пользователь",
	}

	err := service.RegisterUser(context.Background(), user, "secret")
	if err != nil {
		t.Fatalf("ошибка регистрации: %v", err)
	}

	if repo.lastUser == nil || repo.lastUser.PasswordHash == "" {
		t.Fatal("пароль не захеширован или пользователь не сохранён")
	}
	if repo.lastUser.PasswordHash == "secret" {
		t.Fatal("пароль сохранён открытым текстом")
	}
	if !repo.lastUser.SubscribedToNews {
		t.Fatal("подписка на рассылку должна быть включена по умолчанию")
	}
	if repo.lastUser.Role != "user" {
		t.Fatalf("ожидалась роль user, получена %q", repo.lastUser.Role)
	}
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepo{users: make(map[string]*models.User)}
	service := NewAuthService(repo)

	first := &models.User{Email: "dup@example.com"}
	if err := service.RegisterUser(context.Background(), first, "secret"); err != nil {
		t.Fatalf("ошибка регистрации: %v", err)
	}

	second := &models.User{Email: "DUP@example.com"} // регистр не должен спасать
	if err := service.RegisterUser(context.Background(), second, "secret"); err == nil {
		t.Fatal("ожидалась ошибка при повторной регистрации email")
	}
}

func TestLoginUser_Success(t *testing.T) {
	repo := &mockUserRepo{users: make(map[string]*models.User)}
	service := NewAuthService(repo)

	// создаём пользователя вручную
	hashed, _ := utils.HashPassword("secret")
	repo.users["test@example.com"] = &models.User{
		ID:           1,
		Email:        "test@example.com",
		PasswordHash: hashed,
		Role:         "user",
	}

	access, refresh, user, err := service.LoginUser(context.Background(), "test@example.com", "secret", "mysecret", 15*time.Minute, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("ошибка логина: %v", err)
	}

	if access == "" || refresh == "" {
		t.Fatal("токены не сгенерированы")
	}
	if user == nil || user.ID != 1 {
		t.Fatal("пользователь не возвращён")
	}
}

func TestLoginUser_Fail(t *testing.T) {
	repo := &mockUserRepo{users: make(map[string]*models.User)}
	service := NewAuthService(repo)

	_, _, _, err := service.LoginUser(context.Background(), "unknown@example.com", "pass", "secret", time.Minute, time.Hour)
	if err == nil {
		t.Fatal("ожидалась ошибка при логине несуществующего пользователя")
	}

	// неверный пароль не должен отличаться по тексту от неверного email
	hashed, _ := utils.HashPassword("secret")
	repo.users["u@example.com"] = &models.User{ID: 2, Email: "u@example.com", PasswordHash: hashed}

	_, _, _, err2 := service.LoginUser(context.Background(), "u@example.com", "wrong", "secret", time.Minute, time.Hour)
	if err2 == nil {
		t.Fatal("ожидалась ошибка при неверном пароле")
	}
	if err.Error() != err2.Error() {
		t.Fatalf("тексты ошибок различаются: %q vs %q", err, err2)
	}
}
