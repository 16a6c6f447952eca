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

	"github.com/jhoicas/depcatalog-api/internal/application/auth"
	"github.com/jhoicas/depcatalog-api/internal/application/budget"
	"github.com/jhoicas/depcatalog-api/internal/application/catalog"
	"github.com/jhoicas/depcatalog-api/internal/application/usecase"
	"github.com/jhoicas/depcatalog-api/internal/domain/lockfile"
	"github.com/jhoicas/depcatalog-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/depcatalog-api/internal/interfaces/http"
	"github.com/jhoicas/depcatalog-api/pkg/config"
	"github.com/jhoicas/depcatalog-api/pkg/jwt"
	"github.com/jhoicas/depcatalog-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// @title                       Depcatalog API
// @version                     1.0
// @description                 Catálogo de dependencias y presupuesto por empresa.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
		log.Info().Msg("esquema aplicado")
	}

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	packageRepo := postgres.NewPackageRepository(pool)
	budgetRepo := postgres.NewBudgetRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	companyUC, err := usecase.NewCompanyUseCase(companyRepo, cfg.Catalog.CompanyCacheSize)
	if err != nil {
		log.Fatal().Err(err).Msg("caso de uso de empresas")
	}

	issuer, err := jwt.NewIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.Expiration)*time.Minute)
	if err != nil {
		log.Fatal().Err(err).Msg("emisor JWT")
	}
	authUC := auth.NewAuthUseCase(userRepo, companyUC, issuer)

	limits := catalog.Limits{
		MaxNames:         cfg.Catalog.MaxImportNames,
		MaxLockfileBytes: int64(cfg.Catalog.MaxLockfileBytes),
	}
	importUC := catalog.NewImportUseCase(packageRepo, companyUC, lockfile.DefaultRegistry(), limits, log)
	queryUC := catalog.NewQueryUseCase(packageRepo, companyUC)
	budgetUC := budget.NewUseCase(budgetRepo, txRunner, companyUC, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimit,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs (solo si se generó docs/swagger.json)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Depcatalog API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		pingCtx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:        companyUC,
		AuthUC:           authUC,
		ImportUC:         importUC,
		QueryUC:          queryUC,
		BudgetUC:         budgetUC,
		Tokens:           issuer,
		MaxLockfileBytes: int64(cfg.Catalog.MaxLockfileBytes),
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
