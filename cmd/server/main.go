package main

import (
	"context"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/agency-site/internal/apiclient"
	"github.com/ignatzorin/agency-site/internal/catalog"
	"github.com/ignatzorin/agency-site/internal/config"
	"github.com/ignatzorin/agency-site/internal/db"
	"github.com/ignatzorin/agency-site/internal/goroutine"
	httpHandlers "github.com/ignatzorin/agency-site/internal/http/handlers"
	httpRouter "github.com/ignatzorin/agency-site/internal/http/router"
	"github.com/ignatzorin/agency-site/internal/logger"
	"github.com/ignatzorin/agency-site/internal/notify"
	"github.com/ignatzorin/agency-site/internal/repository"
	"github.com/ignatzorin/agency-site/internal/service"
	"github.com/ignatzorin/agency-site/internal/storage"
	"github.com/ignatzorin/agency-site/internal/ws"
	"github.com/ignatzorin/agency-site/migrations"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	logger.Init(cfg.LogLevel, !cfg.IsProduction())

	siteCatalog, err := catalog.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки каталога: %v", err)
	}

	resumes, err := storage.NewResumeStorage(cfg.ResumeSpoolPath, cfg.MaxResumeSizeMB)
	if err != nil {
		log.Fatalf("main: не удалось подготовить каталог для резюме: %v", err)
	}

	api := apiclient.New(cfg.APIBaseURL, cfg.APITimeout)

	// Журнал действий включается только при заданном DATABASE_URL.
	var dbConn *sqlx.DB
	var audit *service.AuditService
	if cfg.AuditEnabled() {
		dbConn, err = db.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("main: ошибка подключения к базе: %v", err)
		}
		defer safeClose(dbConn)

		applied, err := db.RunMigrations(ctx, dbConn, migrationsFS(cfg.MigrationsPath))
		if err != nil {
			log.Fatalf("main: ошибка миграций: %v", err)
		}
		logger.L().WithField("applied", len(applied)).Info("main: миграции журнала выполнены")
		audit = service.NewAuditService(repository.NewAuditRepository(dbConn))
	} else {
		audit = service.NewAuditService(nil)
		logger.L().Warn("main: DATABASE_URL не задан, журнал действий выключен")
	}

	// Вебсокеты.
	hub := ws.NewHub(ctx)
	goroutine.SafeGo(hub.Run)

	sessions := service.NewSessionStore(service.SessionStoreConfig{
		TTL:      cfg.SessionTTL,
		PageSize: cfg.PageSize,
		ToastTTL: cfg.ToastTTL,
		Sinks: func(sessionID string) notify.Sink {
			return ws.NewToastSink(hub, sessionID)
		},
		OnEvict: hub.CloseSession,
	})
	goroutine.SafeGoWithContext(ctx, func(ctx context.Context) { sessions.Run(ctx, time.Minute) })

	// Сервисы.
	tokens := service.NewTokenManager(cfg.JWTSecret)
	authService := service.NewAuthService(service.Credentials{
		Username:     cfg.AdminUsername,
		PasswordHash: cfg.AdminPasswordHash,
	}, sessions, tokens, audit)
	dashboardService := service.NewDashboardService(api, audit)
	contactAdminService := service.NewContactAdminService(api, audit)
	dialogService := service.NewDialogService(dashboardService, contactAdminService)
	exportService := service.NewExportService(dashboardService, audit)
	careersService := service.NewCareersService(api, siteCatalog, resumes)
	contactFormService := service.NewContactFormService(api)

	// HTTP хэндлеры и роутер.
	engine := httpRouter.SetupRouter(cfg, httpRouter.Handlers{
		Health:    httpHandlers.NewHealthHandler(dbConn, api),
		Catalog:   httpHandlers.NewCatalogHandler(siteCatalog),
		Careers:   httpHandlers.NewCareersHandler(careersService, resumes.MaxBytes()),
		Contact:   httpHandlers.NewContactHandler(contactFormService),
		Auth:      httpHandlers.NewAuthHandler(authService),
		WS:        httpHandlers.NewWSHandler(hub, cfg.AllowedOrigins),
		Toasts:    httpHandlers.NewToastHandler(),
		Dashboard: httpHandlers.NewDashboardHandler(dashboardService, exportService),
		Contacts:  httpHandlers.NewContactsAdminHandler(contactAdminService),
		Dialogs:   httpHandlers.NewDialogHandler(dialogService),
		Audit:     httpHandlers.NewAuditHandler(audit),
	}, authService)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	goroutine.SafeGo(func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	})

	logger.L().WithField("port", cfg.HTTPPort).WithField("api", cfg.APIBaseURL).Info("main: HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}

	if !goroutine.Wait(5 * time.Second) {
		logger.L().Warn("main: фоновые горутины не завершились за 5s")
	}
}

// migrationsFS выбирает каталог миграций на диске, если он есть, иначе встроенные.
func migrationsFS(path string) fs.FS {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return os.DirFS(path)
	}
	return migrations.FS
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
