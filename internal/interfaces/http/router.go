package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/excel"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	ProductUC        *usecase.ProductUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	UserUC           *usecase.UserUseCase
	WriteOffUC       *usecase.WriteOffUseCase
	ReportUC         *usecase.ReportUseCase
	ExcelSvc         *excel.Service
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Movements (protegido)
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.RegisterMovement)
	movements.Get("/", movementHandler.List)
	movements.Post("/", movementHandler.Create)

	// Write-off acts (protegido)
	acts := protected.Group("/writeoff-acts")
	writeOffHandler := NewWriteOffHandler(deps.WriteOffUC)
	acts.Get("/", writeOffHandler.List)
	acts.Post("/", writeOffHandler.Create)
	acts.Get("/:id", writeOffHandler.GetByID)
	acts.Delete("/:id", writeOffHandler.Delete)
	acts.Get("/:id/pdf", writeOffHandler.PDF)
	acts.Get("/:id/print", writeOffHandler.HTML)

	// Transfer: import/export del catálogo en XLSX (protegido)
	transfer := protected.Group("/transfer")
	transferHandler := NewTransferHandler(deps.ExcelSvc)
	transfer.Post("/import", transferHandler.Import)
	transfer.Get("/export", transferHandler.Export)

	// Reports (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/summary", reportHandler.StockSummary)

	// Users (solo admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
}
