package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/depcatalog-api/internal/application/auth"
	"github.com/jhoicas/depcatalog-api/internal/application/budget"
	"github.com/jhoicas/depcatalog-api/internal/application/catalog"
	"github.com/jhoicas/depcatalog-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC        *usecase.CompanyUseCase
	AuthUC           *auth.AuthUseCase
	ImportUC         *catalog.ImportUseCase
	QueryUC          *catalog.QueryUseCase
	BudgetUC         *budget.UseCase
	Tokens           tokenParser
	MaxLockfileBytes int64
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público: alta de tenants)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token y empresa existente)
	protected := api.Group("/", AuthMiddleware(deps.Tokens), RequireCompany(deps.CompanyUC))

	packages := protected.Group("/packages")
	packageHandler := NewPackageHandler(deps.ImportUC, deps.QueryUC, deps.MaxLockfileBytes)
	packages.Get("/", packageHandler.List)
	packages.Post("/import", packageHandler.Import)
	packages.Post("/import/lockfile", packageHandler.ImportLockfile)

	budgets := protected.Group("/budget")
	budgetHandler := NewBudgetHandler(deps.BudgetUC)
	budgets.Get("/", budgetHandler.Get)
	budgets.Post("/", budgetHandler.Set)
	budgets.Put("/", budgetHandler.Update)
}
