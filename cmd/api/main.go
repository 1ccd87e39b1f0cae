package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/yourusername/trivia-catalog/internal/config"
	"github.com/yourusername/trivia-catalog/internal/domain/repository"
	"github.com/yourusername/trivia-catalog/internal/handler"
	"github.com/yourusername/trivia-catalog/internal/middleware"
	memRepo "github.com/yourusername/trivia-catalog/internal/repository/memory"
	pgRepo "github.com/yourusername/trivia-catalog/internal/repository/postgres"
	redisRepo "github.com/yourusername/trivia-catalog/internal/repository/redis"
	"github.com/yourusername/trivia-catalog/internal/service"
	"github.com/yourusername/trivia-catalog/internal/service/quizplay"
	"github.com/yourusername/trivia-catalog/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	isProduction := gin.Mode() == gin.ReleaseMode

	// Хранилище каталога
	var (
		questionRepo repository.QuestionRepository
		categoryRepo repository.CategoryRepository
	)
	switch cfg.Database.Driver {
	case config.DriverMemory:
		log.Println("Каталог хранится в памяти (database.driver=memory)")
		categories := memRepo.NewCategoryRepo(memRepo.DefaultCategories...)
		categoryRepo = categories
		questionRepo = memRepo.NewQuestionRepo(categories, memRepo.SampleQuestions()...)
	default:
		db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString(), !isProduction)
		if err != nil {
			log.Printf("Failed to connect to database: %v", err)
			os.Exit(1)
		}

		// Применяем миграции
		if err := database.MigrateDB(db, cfg.Database.MigrationsPath); err != nil {
			log.Printf("Failed to migrate database: %v", err)
			os.Exit(1)
		}

		categoryRepo = pgRepo.NewCategoryRepo(db)
		questionRepo = pgRepo.NewQuestionRepo(db)
	}

	// Redis: кеш категорий, сессии викторин, rate limiting
	var redisClient redis.UniversalClient
	var cacheRepo repository.CacheRepository
	if cfg.Redis.Enabled {
		redisClient, err = database.NewUniversalRedisClient(cfg.Redis)
		if err != nil {
			log.Printf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		log.Println("Successfully connected to Redis")

		cache, err := redisRepo.NewCacheRepo(redisClient)
		if err != nil {
			log.Printf("Failed to initialize CacheRepo: %v", err)
			os.Exit(1)
		}
		cacheRepo = cache
	}

	// Инициализируем сервисы
	categoryService := service.NewCategoryService(categoryRepo, cacheRepo, cfg.Cache.CategoriesTTL)
	// Категории могли измениться миграциями, сбрасываем кеш при старте
	categoryService.Invalidate()
	questionService := service.NewQuestionService(questionRepo, categoryService)
	exportService := service.NewExportService(questionService, categoryService)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Хранилище сессий викторины
	var sessionStore quizplay.Store
	switch cfg.Quiz.SessionBackend {
	case config.SessionBackendRedis:
		store, err := quizplay.NewRedisStore(redisClient, cfg.Quiz.SessionTTL)
		if err != nil {
			log.Printf("Failed to initialize Redis session store: %v", err)
			os.Exit(1)
		}
		sessionStore = store
	default:
		store := quizplay.NewMemoryStore(cfg.Quiz.SessionTTL)
		sessionStore = store

		// Периодическая очистка истекших сессий
		go func() {
			ticker := time.NewTicker(cfg.Quiz.CleanupInterval)
			defer ticker.Stop()

			log.Printf("Запуск очистки истекших сессий викторин (каждые %s)", cfg.Quiz.CleanupInterval)
			for {
				select {
				case <-ticker.C:
					if removed := store.Cleanup(); removed > 0 {
						log.Printf("Удалено истекших сессий: %d (активных: %d)", removed, store.Len())
					}
				case <-ctx.Done():
					log.Println("Завершение работы горутины очистки сессий")
					return
				}
			}
		}()
	}
	quizManager := quizplay.NewManager(questionRepo, categoryService, sessionStore)

	// Инициализируем обработчики
	categoryHandler := handler.NewCategoryHandler(categoryService, questionService)
	questionHandler := handler.NewQuestionHandler(questionService, categoryService, exportService)
	quizHandler := handler.NewQuizHandler(quizManager)

	var quizLimit gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(redisClient)
		quizLimit = limiter.LimitByIP(middleware.RateLimitConfig{
			MaxRequests: cfg.RateLimit.MaxRequests,
			Window:      cfg.RateLimit.Window,
			KeyPrefix:   middleware.DefaultQuizRateLimitConfig().KeyPrefix,
		})
	}

	// Инициализируем роутер Gin
	router := gin.Default()

	// В production не доверяем прокси-заголовкам, в development доверяем localhost
	trustedProxies := []string{"127.0.0.1", "::1"}
	if isProduction {
		trustedProxies = nil
	}
	if err := router.SetTrustedProxies(trustedProxies); err != nil {
		log.Printf("Warning: failed to set trusted proxies: %v", err)
	}

	// Настройка CORS
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.CORS.AllowedOrigins) == 1 && cfg.CORS.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
		corsConfig.AllowCredentials = true
	}
	router.Use(cors.New(corsConfig))

	// Настраиваем маршруты API
	handler.RegisterRoutes(router.Group("/api"), categoryHandler, questionHandler, quizHandler, quizLimit)

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Останавливаем фоновые горутины
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis client: %v", err)
		}
	}

	log.Println("Server exited properly")
}
