package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/el-lector/libreria-api/internal/application/auth"
	"github.com/el-lector/libreria-api/internal/application/movement"
	"github.com/el-lector/libreria-api/internal/application/usecase"
	"github.com/el-lector/libreria-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LocationUC *usecase.LocationUseCase
	ProductUC  *usecase.ProductUseCase
	MovementUC *movement.MovementUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
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

	// Locations (protegido; crear es solo admin)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", RequireRole(entity.RoleAdmin), locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/slug/:slug", locationHandler.GetBySlug)
	locations.Get("/:id", locationHandler.GetByID)

	// Products (protegido; escritura solo admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequireRole(entity.RoleAdmin), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireRole(entity.RoleAdmin), productHandler.Update)

	// Movements (protegido): despacho, consulta y recepción de traslados
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Post("/", movementHandler.Create)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Post("/:id/confirm", movementHandler.Confirm)
	movements.Post("/:id/claim", movementHandler.Claim)
}
