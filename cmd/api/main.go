package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/jhoicas/eventportal-api/internal/application/auth"
	"github.com/jhoicas/eventportal-api/internal/application/ledger"
	"github.com/jhoicas/eventportal-api/internal/application/report"
	"github.com/jhoicas/eventportal-api/internal/application/usecase"
	"github.com/jhoicas/eventportal-api/internal/domain/repository"
	"github.com/jhoicas/eventportal-api/internal/infrastructure/memory"
	"github.com/jhoicas/eventportal-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/eventportal-api/internal/infrastructure/pdf"
	"github.com/jhoicas/eventportal-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/eventportal-api/internal/interfaces/http"
	"github.com/jhoicas/eventportal-api/pkg/config"
	"github.com/jhoicas/eventportal-api/pkg/logger"

	_ "github.com/jhoicas/eventportal-api/docs"
)

const swaggerFile = "./docs/swagger.json"

// @title           Event Data Portal API
// @version         1.0
// @description     Portal multiempresa de eventos con cuota por paquete.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
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
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		// Solo llega vacío fuera de producción (config.Validate lo exige allí).
		cfg.JWT.Secret = uuid.NewString()
		log.Warn().Msg("JWT_SECRET vacío: se usa un secreto aleatorio, los tokens no sobreviven a un reinicio")
	}

	ctx := context.Background()
	st, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	if sa, err := st.users.GetSuperAdmin(ctx); err != nil {
		log.Error().Err(err).Msg("consultar superadmin")
	} else if sa == nil {
		log.Warn().Msg("no hay superadmin: ejecute portalctl seed-superadmin")
	}

	m := metrics.New()

	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	companyUC := usecase.NewCompanyUseCase(st.companies, st.packages, st.tx)
	packageUC := usecase.NewPackageUseCase(st.packages)
	userUC := usecase.NewUserUseCase(st.users, st.companies)
	eventLedger := ledger.NewEventLedger(st.tx, st.events, m)

	// PDF: estado de cuenta de la empresa (datos, paquete, cuota y eventos)
	statementUC := report.NewStatementUseCase(st.companies, st.packages, st.events, infrapdf.NewStatementGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.FiberErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Zerolog(), m))

	// Swagger UI en local: http://localhost:<port>/docs (solo si se generó docs/swagger.json)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Event Data Portal API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger deshabilitado: ejecute swag init")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.App.StoreDriver})
	})
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CompanyUC:    companyUC,
		PackageUC:    packageUC,
		UserUC:       userUC,
		Ledger:       eventLedger,
		StatementUC:  statementUC,
		JWTSecret:    cfg.JWT.Secret,
		JWTExpiry:    time.Duration(cfg.JWT.Expiration) * time.Minute,
		CookieSecure: cfg.JWT.CookieSecure,
		AuthLimiter:  httpRouter.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
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

// txRunner une los dos runners transaccionales que usan ledger y registro de empresas.
type txRunner interface {
	ledger.TxRunner
	usecase.RegistrationTxRunner
}

// store agrupa los puertos de persistencia según STORE_DRIVER.
type store struct {
	companies repository.CompanyRepository
	packages  repository.PackageRepository
	events    repository.EventRepository
	users     repository.UserRepository
	tx        txRunner
	close     func()
}

func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*store, error) {
	if cfg.App.StoreDriver == config.StoreDriverMemory {
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &store{
			companies: s.Companies(),
			packages:  s.Packages(),
			events:    s.Events(),
			users:     s.Users(),
			tx:        s,
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	for _, name := range applied {
		log.Info().Str("migration", name).Msg("migración aplicada")
	}

	return &store{
		companies: postgres.NewCompanyRepository(pool),
		packages:  postgres.NewPackageRepository(pool),
		events:    postgres.NewEventRepository(pool),
		users:     postgres.NewUserRepository(pool),
		tx:        postgres.NewTxRunner(pool),
		close:     pool.Close,
	}, nil
}
