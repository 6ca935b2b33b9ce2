// Package main - точка входа для HTTP сервера Skill Tracker Hub.
//
// Система учёта навыков: студенты заявляют навыки с подтверждающими
// файлами, преподаватели проверяют заявки и оставляют отзывы.
//
// Архитектура следует принципам Clean Architecture и DDD:
// - Domain: чистая бизнес-логика без внешних зависимостей
// - Application: оркестрация use cases (Commands/Queries/Session)
// - Infrastructure: реализация хранилищ (PostgreSQL, Redis, in-memory)
// - Interface: HTTP endpoints
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/skilltrack-hub/skill-tracker-hub/config"

	// Application layer
	"github.com/skilltrack-hub/skill-tracker-hub/internal/application/command"
	"github.com/skilltrack-hub/skill-tracker-hub/internal/application/query"
	appsession "github.com/skilltrack-hub/skill-tracker-hub/internal/application/session"

	// Domain layer
	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/account"
	domainsession "github.com/skilltrack-hub/skill-tracker-hub/internal/domain/session"
	"github.com/skilltrack-hub/skill-tracker-hub/internal/domain/submission"

	// Infrastructure layer
	"github.com/skilltrack-hub/skill-tracker-hub/internal/infrastructure/persistence/memory"
	"github.com/skilltrack-hub/skill-tracker-hub/internal/infrastructure/persistence/postgres"
	"github.com/skilltrack-hub/skill-tracker-hub/internal/infrastructure/persistence/projections"
	rediscache "github.com/skilltrack-hub/skill-tracker-hub/internal/infrastructure/persistence/redis"
	"github.com/skilltrack-hub/skill-tracker-hub/internal/infrastructure/storage"

	// Interface layer
	httpserver "github.com/skilltrack-hub/skill-tracker-hub/internal/interface/http"
	"github.com/skilltrack-hub/skill-tracker-hub/internal/interface/http/handlers"

	// Packages
	"github.com/skilltrack-hub/skill-tracker-hub/pkg/logger"
	"github.com/skilltrack-hub/skill-tracker-hub/pkg/retry"
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN
// ══════════════════════════════════════════════════════════════════════════════

func main() {
	// Создаём корневой контекст с возможностью отмены
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запускаем приложение
	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. ЗАГРУЗКА КОНФИГУРАЦИИ
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. НАСТРОЙКА ЛОГИРОВАНИЯ
	// ─────────────────────────────────────────────────────────────────────────
	log := logger.New(logger.Options{
		Output:    os.Stdout,
		Level:     logger.ParseLevel(cfg.Observability.LogLevel),
		AddCaller: cfg.App.Debug,
	})
	log.Info("starting Skill Tracker Hub",
		logger.String("env", string(cfg.App.Environment)),
		logger.String("version", cfg.App.Version),
		logger.String("store_backend", cfg.Database.Backend),
		logger.String("session_backend", cfg.Session.Backend),
	)

	healthChecker := handlers.NewCompositeHealthChecker()

	// ─────────────────────────────────────────────────────────────────────────
	// 3. ИНИЦИАЛИЗАЦИЯ ХРАНИЛИЩА ЗАПИСЕЙ (PostgreSQL или in-memory)
	// ─────────────────────────────────────────────────────────────────────────
	var accountRepo account.Repository
	var submissionRepo submission.Repository

	if cfg.Database.Backend == config.BackendPostgres {
		log.Info("connecting to database...")

		var dbConn *postgres.Connection
		err := retry.StartupRetrier().Do(ctx, func(ctx context.Context) error {
			var connErr error
			dbConn, connErr = postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
			return connErr
		})
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer func() {
			log.Info("closing database connection...")
			dbConn.Close()
		}()

		if err := dbConn.Ping(ctx); err != nil {
			return fmt.Errorf("database ping failed: %w", err)
		}
		log.Info("database connection established")

		// Миграции схемы
		if cfg.Database.Migrate {
			log.Info("running database migrations...")
			migrator := postgres.NewMigrator(dbConn)
			if err := migrator.Migrate(ctx); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
			log.Info("migrations completed")
		}

		accountRepo = postgres.NewAccountRepository(dbConn)
		submissionRepo = postgres.NewSubmissionRepository(dbConn)
		healthChecker.AddCheck("postgres", handlers.NewPingCheck(dbConn))
	} else {
		log.Info("using in-memory record store")
		accountRepo = memory.NewAccountRepository()
		submissionRepo = memory.NewSubmissionRepository()
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 4. ИНИЦИАЛИЗАЦИЯ ХРАНИЛИЩА СЕССИЙ (Redis или in-memory)
	// ─────────────────────────────────────────────────────────────────────────
	var sessionStore domainsession.Store

	if cfg.Session.Backend == config.BackendRedis {
		log.Info("connecting to Redis...")

		var redisStore *rediscache.SessionStore
		err := retry.StartupRetrier().Do(ctx, func(ctx context.Context) error {
			var connErr error
			if cfg.Redis.URL != "" {
				redisStore, connErr = rediscache.NewSessionStoreFromURL(ctx, cfg.Redis.URL)
			} else {
				redisStore, connErr = rediscache.NewSessionStore(rediscache.Config{
					Host:         cfg.Redis.Host,
					Port:         cfg.Redis.Port,
					Password:     cfg.Redis.Password,
					DB:           cfg.Redis.DB,
					PoolSize:     cfg.Redis.PoolSize,
					MinIdleConns: cfg.Redis.MinIdleConns,
					DialTimeout:  cfg.Redis.DialTimeout,
					ReadTimeout:  cfg.Redis.ReadTimeout,
					WriteTimeout: cfg.Redis.WriteTimeout,
				})
			}
			return connErr
		})
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		defer func() {
			log.Info("closing Redis connection...")
			_ = redisStore.Close()
		}()

		sessionStore = redisStore
		healthChecker.AddCheck("redis", handlers.NewPingCheck(redisStore))
		log.Info("Redis connection established")
	} else {
		log.Info("using in-memory session store")
		sessionStore = memory.NewSessionStore()
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. ИНИЦИАЛИЗАЦИЯ ХРАНИЛИЩА ФАЙЛОВ-ПОДТВЕРЖДЕНИЙ
	// ─────────────────────────────────────────────────────────────────────────
	evidenceStore, err := storage.NewEvidenceStore(cfg.Uploads.Dir)
	if err != nil {
		return fmt.Errorf("failed to initialize evidence storage: %w", err)
	}
	log.Info("evidence storage ready", logger.String("dir", evidenceStore.Dir()))

	// ─────────────────────────────────────────────────────────────────────────
	// 6. ИНИЦИАЛИЗАЦИЯ APPLICATION LAYER (Session, Commands, Queries)
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing application layer...")

	sessionManager := appsession.NewManager(accountRepo, sessionStore, cfg.Session.TTL, log)

	addSkillCmd := command.NewAddSkillHandler(submissionRepo, log)
	reviewCmd := command.NewReviewSubmissionHandler(submissionRepo, log)
	feedbackCmd := command.NewLeaveFeedbackHandler(submissionRepo, log)

	mySkillsQuery := query.NewGetMySkillsHandler(submissionRepo)
	allSubmissionsQuery := query.NewGetAllSubmissionsHandler(submissionRepo, accountRepo)
	skillSummaryQuery := query.NewGetSkillSummaryHandler(submissionRepo)

	studentDashboard := projections.NewStudentDashboardView(accountRepo, submissionRepo)
	facultyDashboard := projections.NewFacultyDashboardView(accountRepo, submissionRepo)

	// ─────────────────────────────────────────────────────────────────────────
	// 7. СОЗДАНИЕ HTTP SERVER
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing HTTP server...")

	httpConfig := httpserver.DefaultConfig()
	httpConfig.Host = cfg.HTTP.Host
	httpConfig.Port = cfg.HTTP.Port
	httpConfig.ReadTimeout = cfg.HTTP.ReadTimeout
	httpConfig.WriteTimeout = cfg.HTTP.WriteTimeout
	httpConfig.IdleTimeout = cfg.HTTP.IdleTimeout
	httpConfig.EnableCORS = cfg.HTTP.EnableCORS
	httpConfig.AllowedOrigins = cfg.HTTP.AllowedOrigins
	httpConfig.RateLimitPerMinute = cfg.HTTP.RateLimitPerMinute
	httpConfig.SessionCookie = cfg.Session.CookieName
	httpConfig.SecureCookies = cfg.Session.SecureCookies
	httpConfig.MaxUploadBytes = cfg.Uploads.MaxUploadBytes

	httpDeps := httpserver.Dependencies{
		Sessions:                 sessionManager,
		AddSkillHandler:          addSkillCmd,
		ReviewSubmissionHandler:  reviewCmd,
		LeaveFeedbackHandler:     feedbackCmd,
		GetMySkillsHandler:       mySkillsQuery,
		GetAllSubmissionsHandler: allSubmissionsQuery,
		GetSkillSummaryHandler:   skillSummaryQuery,
		StudentDashboard:         studentDashboard,
		FacultyDashboard:         facultyDashboard,
		Evidence:                 evidenceStore,
		Logger:                   log,
		HealthChecker:            healthChecker,
	}

	server := httpserver.NewServer(httpConfig, httpDeps)

	// ─────────────────────────────────────────────────────────────────────────
	// 8. ЗАПУСК И GRACEFUL SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	log.Info("Skill Tracker Hub is running", logger.String("address", server.Address()))

	// Ожидаем сигнал завершения или ошибку
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", logger.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("service error", logger.Err(err))
		return err
	}

	// Начинаем graceful shutdown
	log.Info("starting graceful shutdown...",
		logger.Duration("timeout", cfg.App.ShutdownTimeout))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to stop HTTP server gracefully", logger.Err(err))
		return err
	}

	log.Info("shutdown completed successfully")
	return nil
}
