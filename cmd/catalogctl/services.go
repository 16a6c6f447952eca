package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/depcatalog-api/internal/application/budget"
	"github.com/jhoicas/depcatalog-api/internal/application/catalog"
	"github.com/jhoicas/depcatalog-api/internal/application/usecase"
	"github.com/jhoicas/depcatalog-api/internal/domain/lockfile"
	"github.com/jhoicas/depcatalog-api/internal/infrastructure/postgres"
	"github.com/jhoicas/depcatalog-api/pkg/config"
	"github.com/jhoicas/depcatalog-api/pkg/logger"
)

// services casos de uso que necesitan los subcomandos.
type services struct {
	importUC *catalog.ImportUseCase
	budgetUC *budget.UseCase
	migrate  func(ctx context.Context) error
}

// connectFunc abre las dependencias y devuelve una función de cierre.
type connectFunc func(ctx context.Context, log *logger.Logger) (*services, func(), error)

// openServices conecta a PostgreSQL con la misma configuración que la API.
func openServices(ctx context.Context, log *logger.Logger) (*services, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	pool, err := postgres.NewPool(connectCtx, cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}

	companyUC, err := usecase.NewCompanyUseCase(postgres.NewCompanyRepository(pool), cfg.Catalog.CompanyCacheSize)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	limits := catalog.Limits{
		MaxNames:         cfg.Catalog.MaxImportNames,
		MaxLockfileBytes: int64(cfg.Catalog.MaxLockfileBytes),
	}
	packageRepo := postgres.NewPackageRepository(pool)
	svc := &services{
		importUC: catalog.NewImportUseCase(packageRepo, companyUC, lockfile.DefaultRegistry(), limits, log),
		budgetUC: budget.NewUseCase(postgres.NewBudgetRepository(pool), postgres.NewTxRunner(pool), companyUC, log),
		migrate: func(ctx context.Context) error {
			return postgres.Migrate(ctx, pool)
		},
	}
	return svc, pool.Close, nil
}
