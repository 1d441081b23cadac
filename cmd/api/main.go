package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"

	_ "github.com/jhoicas/freshfruits-billing/docs"
	"github.com/jhoicas/freshfruits-billing/internal/application/auth"
	"github.com/jhoicas/freshfruits-billing/internal/application/catalog"
	"github.com/jhoicas/freshfruits-billing/internal/application/invoice"
	"github.com/jhoicas/freshfruits-billing/internal/domain/entity"
	"github.com/jhoicas/freshfruits-billing/internal/domain/repository"
	"github.com/jhoicas/freshfruits-billing/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/freshfruits-billing/internal/infrastructure/pdf"
	"github.com/jhoicas/freshfruits-billing/internal/infrastructure/postgres"
	"github.com/jhoicas/freshfruits-billing/internal/infrastructure/scheduler"
	"github.com/jhoicas/freshfruits-billing/internal/infrastructure/sheets"
	"github.com/jhoicas/freshfruits-billing/internal/infrastructure/storage"
	"github.com/jhoicas/freshfruits-billing/internal/infrastructure/xmlexport"
	httpRouter "github.com/jhoicas/freshfruits-billing/internal/interfaces/http"
	"github.com/jhoicas/freshfruits-billing/pkg/config"
	"github.com/jhoicas/freshfruits-billing/pkg/logger"
)

// @title        FreshFruits Billing API
// @version      1.0
// @description  API de facturación de FreshFruits: factura editable, catálogo con caché y exportación PDF/XML.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage.Driver).
		Str("catalog", cfg.Catalog.Source).
		Msg("iniciando aplicación")

	ctx := context.Background()

	durable, exportRepo, pool, err := buildStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	if pool != nil {
		defer pool.Close()
	}

	// Avisos: log + feed que consume GET /api/notifications
	feed := notify.NewFeed(notify.DefaultFeedCapacity)
	notifier := notify.Fanout{notify.NewLogNotifier(log.Component("notify")), feed}

	session, err := invoice.NewSession(ctx, durable, notifier, log.Zerolog(), invoice.SessionConfig{
		Company: companyProfile(cfg.Company),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("restaurar factura")
	}

	var cat catalog.Catalog
	switch cfg.Catalog.Source {
	case config.CatalogRemote:
		feedClient := sheets.NewFeedClient(cfg.Catalog.FeedURL, cfg.Catalog.HTTPTimeout(), log.Zerolog())
		// Nivel corto en memoria (vida del proceso), nivel largo en el almacén durable.
		cat = catalog.NewLoader(feedClient, storage.NewMemoryStore(), durable, notifier, log.Zerolog(),
			catalog.LoaderConfig{ShortTTL: cfg.Catalog.ShortTTL(), LongTTL: cfg.Catalog.LongTTL()})
	default:
		cat = catalog.NewStatic(catalog.StaticProducts(), notifier)
	}
	// Primera carga en el arranque para calentar la caché.
	products := cat.Load(ctx, false)
	log.Info().Int("products", len(products)).Msg("catálogo listo")

	if cfg.Catalog.Source == config.CatalogRemote && cfg.Catalog.WarmSchedule != "" {
		warmer, err := scheduler.NewCatalogWarmer(cfg.Catalog.WarmSchedule, cat, cfg.Catalog.HTTPTimeout(), log.Zerolog())
		if err != nil {
			log.Fatal().Err(err).Msg("programar precarga del catálogo")
		}
		warmer.Start()
		defer warmer.Stop()
	}

	exportUC := invoice.NewExportUseCase(session, infrapdf.NewMarotoPDFGenerator(), xmlexport.NewRenderer(),
		exportRepo, log.Zerolog())

	authUC := auth.NewAuthUseCase(cfg.Auth.OperatorPINHash, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if !authUC.Enabled() {
		log.Warn().Msg("login de operador deshabilitado: rutas de escritura abiertas")
	}

	app := fiber.New(httpRouter.AppConfig(cfg.App.Name))
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "FreshFruits Billing API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Session:       session,
		Catalog:       cat,
		Export:        exportUC,
		AuthUC:        authUC,
		Notifications: feed,
		Notifier:      notifier,
		ServiceName:   cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// buildStorage devuelve el almacén durable y el historial de exportaciones según STORAGE_DRIVER.
// pool solo es distinto de nil con el driver postgres.
func buildStorage(ctx context.Context, cfg *config.Config) (repository.KeyValueStore, repository.ExportRepository, *pgxpool.Pool, error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, nil, err
		}
		return postgres.NewKVStore(pool), postgres.NewExportRepository(pool), pool, nil
	case config.StorageMemory:
		return storage.NewMemoryStore(), storage.NewExportLog(0), nil, nil
	default:
		fs, err := storage.NewFileStore(cfg.Storage.Dir)
		if err != nil {
			return nil, nil, nil, err
		}
		return fs, storage.NewExportLog(0), nil, nil
	}
}

func companyProfile(c config.CompanyConfig) entity.CompanyProfile {
	p := entity.DefaultCompanyProfile()
	if c.Name != "" {
		p.Name = c.Name
	}
	if c.Email != "" {
		p.Email = c.Email
	}
	if c.Phone != "" {
		p.Phone = c.Phone
	}
	if c.Address != "" {
		p.Address = c.Address
	}
	return p
}
