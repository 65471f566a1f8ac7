package app

import (
	"context"
	"time"

	"bytevanta/internal/config"
	"bytevanta/internal/db"
	"bytevanta/internal/handlers"
	"bytevanta/internal/logger"
	"bytevanta/internal/repository"
	"bytevanta/internal/routes"
	"bytevanta/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func InitApp(cfg *config.Config) (*mux.Router, error) {
	conn, err := db.NewPostgresConnection(cfg)
	if err != nil {
		return nil, err
	}

	// Репозитории
	userRepo := repository.NewUserRepository(conn)
	articleRepo := repository.NewArticleRepo(conn)
	categoryRepo := repository.NewCategoryRepo(conn)
	adminPassRepo := repository.NewAdminPasswordRepo(conn)

	accessTTL, _ := time.ParseDuration(cfg.AccessTokenTTL)
	passwordTTL, _ := time.ParseDuration(cfg.AdminPasswordTTL)

	// Сервисы
	authService := services.NewAuthService(userRepo)
	emailService := services.NewEmailService(cfg)
	notifier := services.NewNotifier(userRepo, cfg.PublicBaseURL)
	articleService := services.NewArticleService(articleRepo, categoryRepo, notifier)
	categoryService := services.NewCategoryService(categoryRepo, articleRepo)
	storageService := services.NewStorageService(cfg.StorageDir, cfg.PublicBaseURL)
	adminAccessService := services.NewAdminAccessService(
		adminPassRepo,
		cfg.AdminNotifyEmail,
		passwordTTL,
		cfg.JWTSecret,
		accessTTL,
	)

	// Хендлеры
	authHandler := handlers.NewAuthHandler(authService)
	articleHandler := handlers.NewArticleHandler(articleService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	adminAccessHandler := handlers.NewAdminAccessHandler(adminAccessService)
	uploadHandler := handlers.NewUploadHandler(storageService)
	jobsHandler := handlers.NewJobsHandler(adminAccessService, storageService, cfg.RotateSecret)

	// Бакет должен существовать до первой загрузки
	if created, err := storageService.EnsureBucket(services.PublicBucket); err != nil {
		logger.Log.Error("Не удалось подготовить бакет", zap.Error(err))
		return nil, err
	} else if created {
		logger.Log.Info("Создан бакет хранилища", zap.String("bucket", services.PublicBucket))
	}

	// Периодическая ротация пароля админки
	StartPasswordRotator(adminAccessService, cfg.RotateInterval)

	// Воркеры email
	for i := 0; i < 3; i++ {
		go services.StartEmailWorker(emailService)
	}

	// Маршруты
	router := mux.NewRouter()
	routes.InitRoutes(
		router,
		authHandler,
		articleHandler,
		categoryHandler,
		adminAccessHandler,
		uploadHandler,
		jobsHandler,
		storageService.Root(),
	)

	return router, nil
}

func StartPasswordRotator(svc *services.AdminAccessService, interval string) {
	d, err := time.ParseDuration(interval)
	if err != nil || d <= 0 {
		d = 168 * time.Hour
	}
	t := time.NewTicker(d)
	go func() {
		for range t.C {
			if err := svc.Rotate(context.Background()); err != nil {
				logger.Log.Error("Плановая ротация пароля не удалась", zap.Error(err))
			}
		}
	}()
}
