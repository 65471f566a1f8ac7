package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"bytevanta/internal/logger"
	"bytevanta/internal/models"
	"bytevanta/internal/services"

	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

type mockAdminPasswordRepo struct {
	row *models.AdminPassword
}

func (m *mockAdminPasswordRepo) Upsert(_ context.Context, hash string, createdAt, expiresAt time.Time) error {
	m.row = &models.AdminPassword{ID: 1, PasswordHash: hash, CreatedAt: createdAt, ExpiresAt: expiresAt}
	return nil
}

func (m *mockAdminPasswordRepo) Get(_ context.Context) (*models.AdminPassword, error) {
	if m.row == nil {
		return nil, errors.New("not found")
	}
	return m.row, nil
}

func newJobsHandlerForTest(t *testing.T, rotateSecret string) (*JobsHandler, *mockAdminPasswordRepo) {
	t.Helper()
	repo := &mockAdminPasswordRepo{}
	adminAccess := services.NewAdminAccessService(repo, "", 7*24*time.Hour, "testsecret", 15*time.Minute)
	storage := services.NewStorageService(t.TempDir(), "https://example.com")
	return NewJobsHandler(adminAccess, storage, rotateSecret), repo
}

func TestRotatePassword_WrongSecret(t *testing.T) {
	h, repo := newJobsHandlerForTest(t, "rotate-secret")

	req := httptest.NewRequest(http.MethodPost, "/api/jobs/rotate-admin-password", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec := httptest.NewRecorder()

	h.RotatePassword(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("ожидался 401, получен %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("невалидный JSON в ответе: %v", err)
	}
	if body["error"] != "unauthorized" {
		t.Fatalf("неверное тело ответа: %v", body)
	}
	if repo.row != nil {
		t.Fatal("ротация не должна выполняться без секрета")
	}
}

func TestRotatePassword_EmptySecretAlwaysRejects(t *testing.T) {
	// пустой секрет в конфиге не должен превращаться в открытый эндпоинт
	h, _ := newJobsHandlerForTest(t, "")

	req := httptest.NewRequest(http.MethodPost, "/api/jobs/rotate-admin-password", nil)
	req.Header.Set("Authorization", "Bearer ")
	rec := httptest.NewRecorder()

	h.RotatePassword(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("ожидался 401, получен %d", rec.Code)
	}
}

func TestRotatePassword_Success(t *testing.T) {
	h, repo := newJobsHandlerForTest(t, "rotate-secret")

	req := httptest.NewRequest(http.MethodPost, "/api/jobs/rotate-admin-password", nil)
	req.Header.Set("Authorization", "Bearer rotate-secret")
	rec := httptest.NewRecorder()

	h.RotatePassword(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получен %d: %s", rec.Code, rec.Body.String())
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("невалидный JSON в ответе: %v", err)
	}
	if body["success"] != true {
		t.Fatalf("ожидался success:true, получено %v", body)
	}
	if repo.row == nil {
		t.Fatal("пароль не перезаписан")
	}
}

func TestRotatePassword_Options(t *testing.T) {
	h, _ := newJobsHandlerForTest(t, "rotate-secret")

	req := httptest.NewRequest(http.MethodOptions, "/api/jobs/rotate-admin-password", nil)
	rec := httptest.NewRecorder()

	h.RotatePassword(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("OPTIONS должен отвечать 204, получен %d", rec.Code)
	}
}

func TestEnsureBucket(t *testing.T) {
	h, _ := newJobsHandlerForTest(t, "rotate-secret")

	req := httptest.NewRequest(http.MethodPost, "/api/jobs/ensure-bucket", nil)
	rec := httptest.NewRecorder()
	h.EnsureBucket(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("ожидался 200, получен %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("невалидный JSON в ответе: %v", err)
	}
	if body["message"] != "Storage bucket created successfully" {
		t.Fatalf("неверное сообщение при создании: %q", body["message"])
	}

	// повторный вызов — бакет уже существует
	rec = httptest.NewRecorder()
	h.EnsureBucket(rec, httptest.NewRequest(http.MethodPost, "/api/jobs/ensure-bucket", nil))

	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["message"] != "Storage bucket check completed successfully" {
		t.Fatalf("неверное сообщение при повторном вызове: %q", body["message"])
	}
}
