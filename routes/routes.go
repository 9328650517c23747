package routes

import (
	"dashboard/configs"
	"dashboard/controllers"
	"dashboard/middlewares"
	"dashboard/repository"
	"dashboard/services"
	"dashboard/ws"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Setup wires repositories, services and controllers onto a new engine.
// The returned hub must be started with Run by the caller.
func Setup(db *gorm.DB, cfg *configs.Config, log *zap.Logger) (*gin.Engine, *ws.LiveHub) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	r.Use(middlewares.SimulatedLatency(cfg.MockLatency))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	orderRepo := repository.NewOrderRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	restRepo := repository.NewRestaurantRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL, cfg.RefreshTTL)
	analyticsSvc := services.NewAnalyticsService(orderRepo, restRepo, userRepo, invoiceRepo)
	clientSvc := services.NewClientService(orderRepo, restRepo)
	invoiceSvc := services.NewInvoiceService(invoiceRepo)
	orderSvc := services.NewOrderService(db, orderRepo)
	restSvc := services.NewRestaurantService(restRepo)
	promoSvc := services.NewPromotionService(db)
	userSvc := services.NewUserService(db, userRepo)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc, log)
	adminCtrl := controllers.NewAdminController(analyticsSvc, log)
	clientCtrl := controllers.NewClientController(clientSvc, log)
	invoiceCtrl := controllers.NewInvoiceController(invoiceSvc, log)
	orderCtrl := controllers.NewOrderController(orderSvc, analyticsSvc, log)
	restCtrl := controllers.NewRestaurantController(restSvc, log)
	promoCtrl := controllers.NewPromotionController(promoSvc, log)
	userCtrl := controllers.NewUserController(userSvc, log)

	hub := ws.NewLiveHub(analyticsSvc, cfg.LiveInterval, log)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/login", authCtrl.Login)
		a.POST("/refresh", authCtrl.Refresh)
	}
	a.GET("/me", middlewares.AuthMiddleware(cfg.JWTSecret), authCtrl.Me)

	r.GET("/admin/live", middlewares.WSAuthMiddleware(cfg.JWTSecret, "admin", "manager"), hub.HandleWebSocket)

	// Admin: managers read, admins write
	admin := r.Group("/admin", middlewares.AuthMiddleware(cfg.JWTSecret, "admin", "manager"))
	write := middlewares.RequireRole("admin")
	{
		admin.GET("/dashboard", adminCtrl.Dashboard)

		admin.GET("/merchants", restCtrl.List)
		admin.GET("/merchants/:id", restCtrl.Detail)
		admin.PATCH("/merchants/:id/status", write, restCtrl.UpdateStatus)
		admin.GET("/merchants/:id/menus", restCtrl.Menus)
		admin.GET("/merchants/:id/ingredients", restCtrl.Ingredients)
		admin.PATCH("/menus/:id/availability", write, restCtrl.UpdateMenuAvailability)

		admin.GET("/orders", orderCtrl.List)
		admin.GET("/orders/stats", orderCtrl.Stats)
		admin.GET("/orders/:id", orderCtrl.Detail)
		admin.PATCH("/orders/:id/status", write, orderCtrl.UpdateStatus)

		admin.GET("/clients", clientCtrl.List)
		admin.GET("/clients/stats", clientCtrl.Stats)
		admin.GET("/clients/export", clientCtrl.Export)
		admin.GET("/clients/:merchantId/:customerId", clientCtrl.Detail)
		admin.GET("/clients/:merchantId/:customerId/orders", clientCtrl.Orders)

		admin.GET("/invoices", invoiceCtrl.List)
		admin.GET("/invoices/summary", invoiceCtrl.Summary)
		admin.GET("/invoices/export", invoiceCtrl.Export)
		admin.GET("/invoices/:id", invoiceCtrl.Detail)
		admin.PATCH("/invoices/:id/pay", write, invoiceCtrl.Pay)
		admin.PATCH("/invoices/:id/cancel", write, invoiceCtrl.Cancel)

		admin.GET("/promotions", promoCtrl.List)
		admin.POST("/promotions", write, promoCtrl.Create)
		admin.PUT("/promotions/:id", write, promoCtrl.Update)
		admin.DELETE("/promotions/:id", write, promoCtrl.Delete)

		admin.GET("/users", write, userCtrl.List)
		admin.POST("/users", write, userCtrl.Create)
		admin.PATCH("/users/:id", write, userCtrl.Update)
		admin.DELETE("/users/:id", write, userCtrl.Delete)

		admin.GET("/roles", write, userCtrl.Roles)
		admin.POST("/roles", write, userCtrl.CreateRole)
		admin.PUT("/roles/:id", write, userCtrl.UpdateRole)
		admin.DELETE("/roles/:id", write, userCtrl.DeleteRole)
	}
	return r, hub
}
