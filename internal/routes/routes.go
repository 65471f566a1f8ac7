package routes

import (
	"net/http"

	"bytevanta/internal/handlers"
	"bytevanta/internal/middleware"

	"github.com/gorilla/mux"
)

func InitRoutes(
	router *mux.Router,
	authHandler *handlers.AuthHandler,
	articleHandler *handlers.ArticleHandler,
	categoryHandler *handlers.CategoryHandler,
	adminAccessHandler *handlers.AdminAccessHandler,
	uploadHandler *handlers.UploadHandler,
	jobsHandler *handlers.JobsHandler,
	storageRoot string,
) {
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Logging)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods("GET")

	// Статика бакетов: /storage/public/<имя файла>
	router.PathPrefix("/storage/").Handler(
		http.StripPrefix("/storage/", http.FileServer(http.Dir(storageRoot))),
	)

	api := router.PathPrefix("/api").Subrouter()

	// --- Публичные маршруты ---
	api.HandleFunc("/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/refresh", authHandler.Refresh).Methods("POST")
	api.HandleFunc("/logout", authHandler.Logout).Methods("POST")

	api.HandleFunc("/articles", articleHandler.GetAll).Methods("GET")
	api.HandleFunc("/articles/{id:[0-9]+}", articleHandler.GetByID).Methods("GET")

	api.HandleFunc("/categories", categoryHandler.List).Methods("GET")
	api.HandleFunc("/categories/{slug}", categoryHandler.GetBySlug).Methods("GET")

	// Скрытый вход в админку: проверка пароля только на сервере
	api.HandleFunc("/admin/access", adminAccessHandler.Access).Methods("POST")

	// Сервисные эндпоинты (ротация защищена общим секретом)
	api.HandleFunc("/jobs/rotate-admin-password", jobsHandler.RotatePassword).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/jobs/ensure-bucket", jobsHandler.EnsureBucket).Methods(http.MethodPost, http.MethodOptions)

	// --- Защищённые JWT ---
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.JWTAuth)

	protected.HandleFunc("/profile", authHandler.Profile).Methods("GET")
	protected.HandleFunc("/profile", authHandler.UpdateProfile).Methods("PATCH")

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.OnlyRole("admin"))
	admin.HandleFunc("/articles", articleHandler.ListAdmin).Methods("GET")
	admin.HandleFunc("/articles", articleHandler.Create).Methods("POST")
	admin.HandleFunc("/articles/{id:[0-9]+}", articleHandler.AdminGetByID).Methods("GET")
	admin.HandleFunc("/articles/{id:[0-9]+}", articleHandler.Update).Methods("PATCH")
	admin.HandleFunc("/articles/{id:[0-9]+}", articleHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/uploads", uploadHandler.UploadImage).Methods("POST")
}
