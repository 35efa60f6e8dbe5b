package server

import (
	"strings"

	"slotfinder-backend/internal/auth"
	"slotfinder-backend/internal/categories"
	"slotfinder-backend/internal/config"
	"slotfinder-backend/internal/grid"
	"slotfinder-backend/internal/history"
	"slotfinder-backend/internal/locator"
	"slotfinder-backend/internal/middleware"
	"slotfinder-backend/internal/products"
	"slotfinder-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// New assembles the Fiber app with all routes. The store and mover are
// injected so tests can run the full HTTP surface against the memory store.
func New(cfg *config.Config, store storage.Store, mover *locator.Mover, logger *zap.Logger, redisClient *redis.Client) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			// Backing-store details stay in the log, not the response.
			logger.Error("unhandled request error",
				zap.String("path", c.Path()),
				zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Use(middleware.RateLimiter(redisClient, cfg.RateLimitPerMinute, logger))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(store))
	api.Post("/auth/login", auth.LoginHandler(cfg, store))

	// Read routes stay open
	api.Get("/products", products.ListProductsHandler(store))
	api.Get("/products/search", products.SearchProductsHandler(store))
	api.Get("/products/lookup", products.LookupByCodeHandler(store))
	api.Get("/move-history", history.ListMoveHistoryHandler(store))
	api.Get("/categories", categories.ListCategoriesHandler(store))
	api.Get("/categories/:id", categories.GetCategoryHandler(store))
	api.Get("/grid-config", grid.ConfigHandler(cfg))

	// Mutations require a token when AUTH_REQUIRED is on
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Post("/products", products.CreateProductHandler(store))
	protected.Put("/products/:id", products.UpdateProductHandler(store))
	protected.Delete("/products/:id", products.DeleteProductHandler(store))

	protected.Post("/products/move", products.MoveProductHandler(mover))
	protected.Post("/products/move/undo", products.UndoMoveHandler(mover))
	protected.Post("/products/move/redo", products.RedoMoveHandler(mover))

	protected.Post("/move-history", history.RecordMoveHandler(store))

	protected.Post("/categories", categories.CreateCategoryHandler(store))
	protected.Put("/categories/:id", categories.UpdateCategoryHandler(store))
	protected.Delete("/categories/:id", categories.DeleteCategoryHandler(store))

	// Demo-only: reseed the in-memory dataset
	if ms, ok := store.(*storage.MemoryStore); ok {
		protected.Post("/demo/reset", func(c *fiber.Ctx) error {
			ms.Reset()
			return c.JSON(fiber.Map{"success": true})
		})
	}

	return app
}
