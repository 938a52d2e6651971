package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/yacouba/Boutique-api/internal/application/auth"
	"github.com/yacouba/Boutique-api/internal/application/finance"
	"github.com/yacouba/Boutique-api/internal/application/inventory"
	"github.com/yacouba/Boutique-api/internal/application/presentation"
	"github.com/yacouba/Boutique-api/internal/application/reports"
	"github.com/yacouba/Boutique-api/internal/application/returns"
	"github.com/yacouba/Boutique-api/internal/application/stores"
	"github.com/yacouba/Boutique-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	StoreUC      *stores.UseCase
	InventoryUC  *inventory.UseCase
	ReturnUC     *returns.UseCase
	ReportUC     *reports.UseCase
	FinanceUC    *finance.UseCase
	Presentation *presentation.Table
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/auth/me", authHandler.Me)

	// Usuarios (la validación "solo admin" vive en el caso de uso)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	users.Post("/", authHandler.Register)
	users.Get("/", authHandler.ListUsers)
	users.Delete("/:id", authHandler.Deactivate)

	// Configuración de interfaz por rol
	presentationHandler := NewPresentationHandler(deps.Presentation)
	protected.Get("/ui-config", presentationHandler.UIConfig)

	// Tiendas
	storeHandler := NewStoreHandler(deps.StoreUC)
	storesGroup := protected.Group("/stores")
	storesGroup.Post("/", storeHandler.Create)
	storesGroup.Get("/", storeHandler.List)
	storesGroup.Get("/:id", storeHandler.GetByID)
	storesGroup.Put("/:id", storeHandler.Update)
	storesGroup.Delete("/:id", storeHandler.Delete)

	// Sesiones de inventario
	sessionHandler := NewSessionHandler(deps.InventoryUC)
	sessions := protected.Group("/sessions")
	sessions.Post("/", sessionHandler.Create)
	sessions.Get("/", sessionHandler.List)
	sessions.Get("/:id", sessionHandler.GetByID)
	sessions.Get("/:id/export", sessionHandler.Export)
	sessions.Put("/:id/items/:itemId/count", sessionHandler.UpdateCount)
	sessions.Post("/:id/items/:itemId/adjust", sessionHandler.AdjustStock)
	sessions.Post("/:id/complete", sessionHandler.Complete)
	sessions.Post("/:id/cancel", sessionHandler.Cancel)

	// Devoluciones
	returnHandler := NewReturnHandler(deps.ReturnUC)
	returnsGroup := protected.Group("/returns")
	returnsGroup.Post("/", returnHandler.Create)
	returnsGroup.Get("/", returnHandler.List)
	returnsGroup.Get("/:id", returnHandler.GetByID)
	returnsGroup.Post("/:id/approve", returnHandler.Approve)
	returnsGroup.Post("/:id/reject", returnHandler.Reject)

	// Reportes y ventas
	reportHandler := NewReportHandler(deps.ReportUC)
	protected.Get("/reports/sales", reportHandler.SalesSummary)
	protected.Get("/sales", reportHandler.ListSales)
	protected.Get("/sales/:id", reportHandler.GetSale)

	// Finanzas: terreno de manager y admin
	financeHandler := NewFinanceHandler(deps.FinanceUC)
	financeGroup := protected.Group("/finance", RequireRole(entity.RoleAdmin, entity.RoleManager))
	financeGroup.Get("/summary", financeHandler.Summary)
	financeGroup.Post("/expenses", financeHandler.AddExpense)
	financeGroup.Delete("/expenses/:id", financeHandler.DeleteExpense)
}
