package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	TransactionUC *inventory.TransactionUseCase
	ImportUC      *inventory.ImportProcurementUseCase
	PDFUC         *inventory.PurchaseOrderPDFUseCase
	StockUC       *inventory.StockUseCase
	CatalogUC     *usecase.CatalogUseCase
	ProductUC     *usecase.ProductUseCase
	PartyUC       *usecase.PartyUseCase
	StorageUC     *usecase.StorageUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Solo admin puede borrar catálogos y maestros.
	adminOnly := RequireRole(entity.RoleAdmin)

	// Transactions (protegido)
	txGroup := protected.Group("/transactions")
	txHandler := NewTransactionHandler(deps.TransactionUC, deps.ImportUC, deps.PDFUC)
	txGroup.Post("/procurements", txHandler.CreateProcurement)
	txGroup.Post("/procurements/import", txHandler.ImportProcurement)
	txGroup.Post("/sales", txHandler.CreateSale)
	txGroup.Post("/adjustments", txHandler.CreateAdjustment)
	txGroup.Get("/", txHandler.List)
	txGroup.Get("/:id", txHandler.GetByID)
	txGroup.Get("/:id/purchase-order.pdf", txHandler.PurchaseOrderPDF)
	txGroup.Post("/:id/items", txHandler.AddItems)
	txGroup.Put("/:id/items", txHandler.UpdateItems)
	txGroup.Delete("/:id/items", txHandler.RemoveItems)
	txGroup.Post("/:id/payments", txHandler.AddPayments)
	txGroup.Put("/:id/payments", txHandler.UpdatePayments)
	txGroup.Delete("/:id/payments", txHandler.RemovePayments)
	txGroup.Put("/:id/supplier", txHandler.UpdateSupplier)
	txGroup.Put("/:id/client", txHandler.UpdateClient)
	txGroup.Post("/:id/process", txHandler.Process)
	txGroup.Post("/:id/reopen", txHandler.Reopen)
	txGroup.Post("/:id/cancel", txHandler.Cancel)

	// Stock (protegido, solo lectura)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup.Get("/:location_id", stockHandler.ListByLocation)
	stockGroup.Get("/:location_id/:instance_id", stockHandler.Get)

	// Brands y Categories (protegido)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	brands := protected.Group("/brands")
	brands.Post("/", catalogHandler.CreateBrand)
	brands.Get("/", catalogHandler.ListBrands)
	brands.Get("/:id", catalogHandler.GetBrand)
	brands.Put("/:id", catalogHandler.UpdateBrand)
	brands.Delete("/:id", adminOnly, catalogHandler.DeleteBrand)

	categories := protected.Group("/categories")
	categories.Post("/", catalogHandler.CreateCategory)
	categories.Get("/", catalogHandler.ListCategories)
	categories.Get("/:id", catalogHandler.GetCategory)
	categories.Put("/:id", catalogHandler.UpdateCategory)
	categories.Delete("/:id", adminOnly, catalogHandler.DeleteCategory)

	// Products y ProductInstances (protegido)
	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products")
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)
	products.Get("/:id/instances", productHandler.ListInstances)

	instances := protected.Group("/product-instances")
	instances.Post("/", productHandler.CreateInstance)
	instances.Get("/sku/:sku", productHandler.GetInstanceBySKU)
	instances.Get("/:id", productHandler.GetInstance)
	instances.Put("/:id", productHandler.UpdateInstance)
	instances.Delete("/:id", adminOnly, productHandler.DeleteInstance)

	// Suppliers y Clients (protegido)
	partyHandler := NewPartyHandler(deps.PartyUC)
	suppliers := protected.Group("/suppliers")
	suppliers.Post("/", partyHandler.CreateSupplier)
	suppliers.Get("/", partyHandler.ListSuppliers)
	suppliers.Get("/:id", partyHandler.GetSupplier)
	suppliers.Put("/:id", partyHandler.UpdateSupplier)
	suppliers.Delete("/:id", adminOnly, partyHandler.DeleteSupplier)

	clients := protected.Group("/clients")
	clients.Post("/", partyHandler.CreateClient)
	clients.Get("/", partyHandler.ListClients)
	clients.Get("/:id", partyHandler.GetClient)
	clients.Put("/:id", partyHandler.UpdateClient)
	clients.Delete("/:id", adminOnly, partyHandler.DeleteClient)

	// Branches y StorageLocations (protegido)
	storageHandler := NewStorageHandler(deps.StorageUC)
	branches := protected.Group("/branches")
	branches.Post("/", storageHandler.CreateBranch)
	branches.Get("/", storageHandler.ListBranches)
	branches.Get("/:id", storageHandler.GetBranch)
	branches.Put("/:id", storageHandler.UpdateBranch)
	branches.Delete("/:id", adminOnly, storageHandler.DeleteBranch)
	branches.Get("/:id/storage-locations", storageHandler.ListLocations)

	locations := protected.Group("/storage-locations")
	locations.Post("/", storageHandler.CreateLocation)
	locations.Get("/:id", storageHandler.GetLocation)
	locations.Put("/:id", storageHandler.UpdateLocation)
	locations.Delete("/:id", adminOnly, storageHandler.DeleteLocation)
}
