package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/printly/internal/config"
	"github.com/example/printly/internal/handlers"
	"github.com/example/printly/internal/logstore"
	"github.com/example/printly/internal/middleware"
	"github.com/example/printly/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	logs := logstore.New(db)
	emailService := services.NewEmailService(cfg.EmailFunctionURL, cfg.EmailFunctionToken, cfg.AdminEmail)
	maintenanceService := services.NewMaintenanceService(db, emailService, logs)

	authHandler := handlers.NewAuthHandler(db, cfg)
	catalogHandler := handlers.NewCatalogHandler(db)
	productHandler := handlers.NewProductHandler(db)
	orderHandler := handlers.NewOrderHandler(db, cfg, emailService, logs)
	adminOrderHandler := handlers.NewAdminOrderHandler(db, emailService, logs)
	checkoutHandler := handlers.NewCheckoutHandler(db)
	reviewHandler := handlers.NewReviewHandler(db)
	profileHandler := handlers.NewProfileHandler(db)
	adminHandler := handlers.NewAdminHandler(db)
	couponHandler := handlers.NewCouponHandler(db)
	shippingHandler := handlers.NewShippingMethodHandler(db)
	maintenanceHandler := handlers.NewMaintenanceHandler(maintenanceService, cfg)

	requireAuth := middleware.AuthMiddleware(cfg)
	optionalAuth := middleware.OptionalAuthMiddleware(cfg)
	requireAdmin := middleware.AdminMiddleware(db, cfg)
	requireCron := middleware.CronAuthMiddleware(cfg.CronSecret)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", requireAuth, authHandler.Me)

	// Public catalog reads; mutations are admin-gated below.
	categories := api.Group("/categories")
	categories.Get("/", catalogHandler.ListCategories)
	categories.Get("/:id", catalogHandler.GetCategory)
	categories.Post("/", requireAuth, requireAdmin, catalogHandler.CreateCategory)
	categories.Put("/:id", requireAuth, requireAdmin, catalogHandler.UpdateCategory)
	categories.Delete("/:id", requireAuth, requireAdmin, catalogHandler.DeleteCategory)

	// Static product paths are registered before the :id routes so the
	// low-stock job is not swallowed by the parameter match.
	products := api.Group("/products")
	products.Get("/", productHandler.ListProducts)
	products.Get("/low-stock-alert", maintenanceHandler.LowStockAlertInfo)
	products.Post("/low-stock-alert", requireCron, maintenanceHandler.LowStockAlert)
	products.Get("/:id", productHandler.GetProduct)
	products.Post("/", requireAuth, requireAdmin, productHandler.CreateProduct)
	products.Put("/:id", requireAuth, requireAdmin, productHandler.UpdateProduct)
	products.Delete("/:id", requireAuth, requireAdmin, productHandler.DeleteProduct)

	// Reviews hang off the product resource.
	products.Get("/:id/reviews", reviewHandler.ListReviews)
	products.Post("/:id/reviews", requireAuth, reviewHandler.UpsertReview)
	products.Delete("/:id/reviews", requireAuth, reviewHandler.DeleteReview)

	// Checkout helpers
	checkout := api.Group("/checkout")
	checkout.Post("/coupon", checkoutHandler.ApplyCoupon)
	checkout.Get("/shipping", checkoutHandler.ListShippingMethods)

	// Orders: creation allows guests, cancel checks ownership when one
	// exists, the rest require auth.
	orders := api.Group("/orders")
	orders.Post("/", optionalAuth, orderHandler.CreateOrder)
	orders.Post("/cancel", optionalAuth, orderHandler.CancelOrder)
	orders.Post("/notify", adminOrderHandler.Notify)

	orders.Post("/update-status", requireAuth, requireAdmin, adminOrderHandler.UpdateStatus)
	orders.Delete("/delete", requireAuth, requireAdmin, adminOrderHandler.DeleteOrder)
	orders.Post("/archive", requireAuth, requireAdmin, adminOrderHandler.ArchiveOrder)

	orders.Get("/auto-cancel", maintenanceHandler.AutoCancelInfo)
	orders.Post("/auto-cancel", requireCron, maintenanceHandler.AutoCancel)
	orders.Get("/auto-transition", maintenanceHandler.AutoTransitionInfo)
	orders.Post("/auto-transition", requireCron, maintenanceHandler.AutoTransition)

	orders.Get("/", requireAuth, orderHandler.ListOrders)
	orders.Get("/:id", requireAuth, orderHandler.GetOrder)

	// Account routes
	account := api.Group("/account", requireAuth)
	account.Get("/addresses", profileHandler.ListAddresses)
	account.Post("/addresses", profileHandler.CreateAddress)
	account.Put("/addresses/:id", profileHandler.UpdateAddress)
	account.Delete("/addresses/:id", profileHandler.DeleteAddress)
	account.Get("/email-preferences", profileHandler.GetEmailPreferences)
	account.Put("/email-preferences", profileHandler.PutEmailPreferences)

	api.Get("/cart", requireAuth, profileHandler.GetCart)
	api.Put("/cart", requireAuth, profileHandler.PutCart)

	wishlist := api.Group("/wishlist", requireAuth)
	wishlist.Get("/", profileHandler.ListWishlist)
	wishlist.Post("/", profileHandler.AddToWishlist)
	wishlist.Delete("/:productId", profileHandler.RemoveFromWishlist)

	// Admin back-office
	admin := api.Group("/admin")
	admin.Get("/check", requireAuth, requireAdmin, adminHandler.Check)
	admin.Get("/analytics", requireAuth, requireAdmin, adminHandler.Analytics)
	admin.Get("/orders", requireAuth, requireAdmin, adminOrderHandler.ListAllOrders)

	// Admin product reads honor include_inactive; the public routes
	// above never do.
	admin.Get("/products", requireAuth, requireAdmin, productHandler.ListProducts)
	admin.Get("/products/:id", requireAuth, requireAdmin, productHandler.GetProduct)

	admin.Get("/coupons", requireAuth, requireAdmin, couponHandler.ListCoupons)
	admin.Post("/coupons", requireAuth, requireAdmin, couponHandler.CreateCoupon)
	admin.Delete("/coupons/:id", requireAuth, requireAdmin, couponHandler.DeleteCoupon)

	admin.Get("/shipping-methods", requireAuth, requireAdmin, shippingHandler.ListShippingMethods)
	admin.Post("/shipping-methods", requireAuth, requireAdmin, shippingHandler.CreateShippingMethod)
	admin.Delete("/shipping-methods/:id", requireAuth, requireAdmin, shippingHandler.DeleteShippingMethod)

	// Maintenance jobs. GET describes the job, POST (cron secret) runs it.
	admin.Get("/cleanup-logs", maintenanceHandler.CleanupLogsInfo)
	admin.Post("/cleanup-logs", requireCron, maintenanceHandler.CleanupLogs)
	admin.Get("/verify-backup", maintenanceHandler.VerifyBackupInfo)
	admin.Post("/verify-backup", requireCron, maintenanceHandler.VerifyBackup)
	admin.Get("/maintenance", maintenanceHandler.MaintenanceInfo)
	admin.Post("/maintenance", requireCron, maintenanceHandler.Maintenance)
}
