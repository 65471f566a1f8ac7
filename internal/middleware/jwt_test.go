package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bytevanta/internal/utils"
)

func newGuardedHandler(t *testing.T) (http.Handler, *bool) {
	t.Helper()
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	return JWTAuth(next), &called
}

func TestJWTAuth_AccessToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")
	h, called := newGuardedHandler(t)

	token, err := utils.GenerateToken("testsecret", 1, "user", time.Minute, "access")
	if err != nil {
		t.Fatalf("ошибка генерации токена: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || !*called {
		t.Fatalf("валидный access-токен должен пропускаться, статус %d", rec.Code)
	}
}

func TestJWTAuth_RefreshTokenRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")
	h, called := newGuardedHandler(t)

	// refresh подписан тем же ключом, но защищённые маршруты его не принимают
	token, err := utils.GenerateToken("testsecret", 1, "user", time.Hour, "refresh")
	if err != nil {
		t.Fatalf("ошибка генерации токена: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("refresh-токен должен отклоняться, статус %d", rec.Code)
	}
	if *called {
		t.Fatal("обработчик не должен вызываться для refresh-токена")
	}
}

func TestJWTAuth_MissingOrGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")
	h, called := newGuardedHandler(t)

	for _, header := range []string{"", "Bearer notajwt"} {
		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("заголовок %q: ожидался 401, получен %d", header, rec.Code)
		}
	}
	if *called {
		t.Fatal("обработчик не должен вызываться без валидного токена")
	}
}
