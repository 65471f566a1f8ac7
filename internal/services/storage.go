package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bytevanta/internal/logger"

	"go.uber.org/zap"
)

const (
	PublicBucket  = "public"
	maxObjectSize = 10 << 20 // 10MB, как лимит бакета
)

// StorageService — файловое объектное хранилище: каталог на бакет,
// публичные URL вида <base>/storage/<bucket>/<имя>.
type StorageService struct {
	root          string
	publicBaseURL string
}

func NewStorageService(root, publicBaseURL string) *StorageService {
	return &StorageService{
		root:          root,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// Root — каталог хранилища (для отдачи файлов по HTTP).
func (s *StorageService) Root() string { return s.root }

// EnsureBucket идемпотентно создаёт бакет. Возвращает true, если бакет
// был создан этим вызовом.
func (s *StorageService) EnsureBucket(bucket string) (bool, error) {
	dir := filepath.Join(s.root, bucket)

	if info, err := os.Stat(dir); err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("путь %s занят не каталогом", dir)
		}
		logger.Log.Info("Бакет уже существует", zap.String("bucket", bucket))
		return false, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Log.Error("Ошибка создания бакета", zap.String("bucket", bucket), zap.Error(err))
		return false, err
	}

	logger.Log.Info("Бакет создан", zap.String("bucket", bucket))
	return true, nil
}

// SaveObject сохраняет объект под именем с префиксом-таймстампом и
// возвращает публичный URL. Объекты больше лимита отклоняются.
func (s *StorageService) SaveObject(bucket, filename string, src io.Reader) (string, error) {
	if _, err := s.EnsureBucket(bucket); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%d_%s", time.Now().Unix(), sanitizeFilename(filename))
	fullPath := filepath.Join(s.root, bucket, name)

	dst, err := os.Create(fullPath)
	if err != nil {
		logger.Log.Error("Ошибка создания файла", zap.String("path", fullPath), zap.Error(err))
		return "", err
	}
	defer dst.Close()

	n, err := io.Copy(dst, io.LimitReader(src, maxObjectSize+1))
	if err != nil {
		_ = os.Remove(fullPath)
		logger.Log.Error("Ошибка записи файла", zap.String("path", fullPath), zap.Error(err))
		return "", err
	}
	if n > maxObjectSize {
		_ = os.Remove(fullPath)
		logger.Log.Warn("Файл превышает лимит бакета", zap.String("filename", filename), zap.Int64("size", n))
		return "", fmt.Errorf("файл больше %d байт", int64(maxObjectSize))
	}

	url := fmt.Sprintf("%s/storage/%s/%s", s.publicBaseURL, bucket, name)
	logger.Log.Info("Файл сохранён", zap.String("bucket", bucket), zap.String("name", name), zap.Int64("size", n))
	return url, nil
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	// Base возвращает "." для пустого пути и "/" для корня
	switch name {
	case ".", "..", "/":
		return "file"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
