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
	"github.com/swaggo/swag"

	_ "github.com/jhoicas/Almacen-api/docs"
	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/Almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/xmlinvoice"
	httpRouter "github.com/jhoicas/Almacen-api/internal/interfaces/http"
	"github.com/jhoicas/Almacen-api/pkg/config"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones de base de datos")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	brandRepo := postgres.NewBrandRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	instanceRepo := postgres.NewProductInstanceRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	locationRepo := postgres.NewStorageLocationRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	stockRepo := postgres.NewStoredProductRepository(pool)
	importRepo := postgres.NewImportLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	transactionUC := inventory.NewTransactionUseCase(
		txRunner, transactionRepo, instanceRepo, supplierRepo, clientRepo, locationRepo,
	)
	importUC := inventory.NewImportProcurementUseCase(
		txRunner, xmlinvoice.NewParser(), supplierRepo, instanceRepo, locationRepo, importRepo,
	)
	pdfUC := inventory.NewPurchaseOrderPDFUseCase(
		transactionRepo, supplierRepo, instanceRepo, productRepo, locationRepo,
		infrapdf.NewMarotoPurchaseOrderGenerator(),
	)
	stockUC := inventory.NewStockUseCase(stockRepo)
	catalogUC := usecase.NewCatalogUseCase(brandRepo, categoryRepo)
	productUC := usecase.NewProductUseCase(productRepo, instanceRepo, brandRepo, categoryRepo)
	partyUC := usecase.NewPartyUseCase(supplierRepo, clientRepo)
	storageUC := usecase.NewStorageUseCase(branchRepo, locationRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if spec, err := swag.ReadDoc(); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath:    "/",
			FileContent: []byte(spec),
			Path:        "docs",
			Title:       "Almacen API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		TransactionUC: transactionUC,
		ImportUC:      importUC,
		PDFUC:         pdfUC,
		StockUC:       stockUC,
		CatalogUC:     catalogUC,
		ProductUC:     productUC,
		PartyUC:       partyUC,
		StorageUC:     storageUC,
		JWTSecret:     cfg.JWT.Secret,
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
