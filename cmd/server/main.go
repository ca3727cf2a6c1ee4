package main

import (
	"log"
	"strings"

	"boutique-backend/internal/auth"
	"boutique-backend/internal/billing"
	"boutique-backend/internal/bomupload"
	"boutique-backend/internal/config"
	"boutique-backend/internal/dashboard"
	"boutique-backend/internal/database"
	"boutique-backend/internal/inventory"
	"boutique-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
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

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-owner", auth.RegisterOwnerHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Catalog
	protected.Get("/items", inventory.ListItemsHandler())
	protected.Get("/items/low-stock", inventory.LowStockItemsHandler())
	protected.Get("/items/:id", inventory.GetItemHandler())
	protected.Post("/items", inventory.CreateItemHandler())
	protected.Put("/items/:id", inventory.UpdateItemHandler())

	// Destructive catalog changes stay owner-only
	ownerRoutes := protected.Group("")
	ownerRoutes.Use(auth.RequireRole(models.RoleOwner))
	ownerRoutes.Delete("/items/:id", inventory.DeleteItemHandler())

	// Billing
	protected.Post("/invoices", billing.CreateInvoiceHandler())
	protected.Get("/invoices", billing.ListInvoicesHandler())
	protected.Get("/invoices/:id", billing.GetInvoiceHandler())

	// Dashboard
	protected.Get("/dashboard/summary", dashboard.SummaryHandler())

	// BOM upload workflow
	bom := bomupload.NewHandlers()
	protected.Post("/bom/upload", bom.UploadHandler())
	protected.Get("/bom/sessions/:id", bom.GetSessionHandler())
	protected.Put("/bom/sessions/:id/rows/:index", bom.UpdateRowHandler())
	protected.Post("/bom/sessions/:id/commit", bom.CommitHandler())
	protected.Delete("/bom/sessions/:id", bom.DeleteSessionHandler())

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
