package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnsureBucket_Idempotent(t *testing.T) {
	svc := NewStorageService(t.TempDir(), "https://example.com")

	created, err := svc.EnsureBucket(PublicBucket)
	if err != nil {
		t.Fatalf("ошибка создания бакета: %v", err)
	}
	if !created {
		t.Fatal("первый вызов должен создавать бакет")
	}

	created, err = svc.EnsureBucket(PublicBucket)
	if err != nil {
		t.Fatalf("повторный вызов вернул ошибку: %v", err)
	}
	if created {
		t.Fatal("повторный вызов не должен пересоздавать бакет")
	}
}

func TestSaveObject(t *testing.T) {
	root := t.TempDir()
	svc := NewStorageService(root, "https://example.com/")

	url, err := svc.SaveObject(PublicBucket, "cover image.png", strings.NewReader("данные"))
	if err != nil {
		t.Fatalf("ошибка сохранения: %v", err)
	}

	if !strings.HasPrefix(url, "https://example.com/storage/public/") {
		t.Fatalf("неверный URL: %q", url)
	}
	if !strings.HasSuffix(url, "_cover_image.png") {
		t.Fatalf("имя должно получать таймстамп-префикс и очищаться: %q", url)
	}

	name := url[strings.LastIndex(url, "/")+1:]
	data, err := os.ReadFile(filepath.Join(root, PublicBucket, name))
	if err != nil {
		t.Fatalf("файл не записан: %v", err)
	}
	if string(data) != "данные" {
		t.Fatal("содержимое файла не совпадает")
	}
}

func TestSaveObject_TooLarge(t *testing.T) {
	svc := NewStorageService(t.TempDir(), "https://example.com")

	big := strings.NewReader(strings.Repeat("x", maxObjectSize+1))
	if _, err := svc.SaveObject(PublicBucket, "big.bin", big); err == nil {
		t.Fatal("объект больше лимита должен отклоняться")
	}

	// после отказа файл не должен оставаться в бакете
	dir := filepath.Join(svc.Root(), PublicBucket)
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("в бакете остались файлы после отказа: %d", len(entries))
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"cover.png":          "cover.png",
		"../../etc/passwd":   "passwd",
		"фото отчёт.jpg":     "__________.jpg",
		"":                   "file",
		".":                  "file",
		"..":                 "file",
		"report 2024(1).pdf": "report_2024_1_.pdf",
	}
	for in, want := range cases {
		if got := sanitizeFilename(in); got != want {
			t.Errorf("sanitizeFilename(%q) = %q, ожидалось %q", in, got, want)
		}
	}
}
