package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/eventportal-api/internal/application/auth"
	"github.com/jhoicas/eventportal-api/internal/application/ledger"
	"github.com/jhoicas/eventportal-api/internal/application/report"
	"github.com/jhoicas/eventportal-api/internal/application/usecase"
	"github.com/jhoicas/eventportal-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	CompanyUC    *usecase.CompanyUseCase
	PackageUC    *usecase.PackageUseCase
	UserUC       *usecase.UserUseCase
	Ledger       *ledger.EventLedger
	StatementUC  *report.StatementUseCase
	JWTSecret    string
	JWTExpiry    time.Duration
	CookieSecure bool
	AuthLimiter  *RateLimiter // nil = sin límite en /api/auth
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC, deps.CompanyUC, CookieConfig{
		Secure: deps.CookieSecure,
		MaxAge: deps.JWTExpiry,
	})
	requireAuth := AuthMiddleware(deps.JWTSecret, deps.AuthUC)
	anyRole := RequireRole(entity.RoleSuperAdmin, entity.RoleAdmin, entity.RoleDataEntry)

	// Auth: registro y login públicos, con límite por IP
	authGroup := api.Group("/auth")
	if deps.AuthLimiter != nil {
		authGroup.Use(deps.AuthLimiter.Handler())
	}
	authGroup.Post("/register-company", authHandler.RegisterCompany)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", requireAuth, authHandler.Logout)
	authGroup.Get("/me", requireAuth, anyRole, authHandler.Me)

	// Rutas protegidas (Bearer o cookie). Las reglas finas las aplica access.Allowed en los casos de uso.
	companies := api.Group("/companies", requireAuth, anyRole)
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.StatementUC)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id/approve", companyHandler.Approve)
	companies.Put("/:id/assign-package", companyHandler.AssignPackage)
	companies.Get("/:id/statement", companyHandler.Statement)

	packages := api.Group("/packages", requireAuth, anyRole)
	packageHandler := NewPackageHandler(deps.PackageUC)
	packages.Get("/", packageHandler.List)
	packages.Post("/", packageHandler.Create)
	packages.Get("/:id", packageHandler.GetByID)
	packages.Put("/:id", packageHandler.Update)
	packages.Delete("/:id", packageHandler.Delete)

	events := api.Group("/events", requireAuth, anyRole)
	eventHandler := NewEventHandler(deps.Ledger)
	events.Post("/", eventHandler.Create)
	events.Get("/", eventHandler.ListAll)
	events.Get("/company/:companyId", eventHandler.ListByCompany)
	events.Get("/:id", eventHandler.GetByID)
	events.Put("/:id", eventHandler.Update)
	events.Delete("/:id", eventHandler.Delete)

	users := api.Group("/users", requireAuth, anyRole)
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/company/:companyId", userHandler.ListByCompany)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
}
