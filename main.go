package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/parthbuilds/Shubha-Kuteer/internal/cache"
	"github.com/parthbuilds/Shubha-Kuteer/internal/config"
	"github.com/parthbuilds/Shubha-Kuteer/internal/database"
	"github.com/parthbuilds/Shubha-Kuteer/internal/handlers"
	"github.com/parthbuilds/Shubha-Kuteer/internal/middleware"
	"github.com/parthbuilds/Shubha-Kuteer/internal/payment"
	"github.com/parthbuilds/Shubha-Kuteer/internal/repository"
	"github.com/parthbuilds/Shubha-Kuteer/internal/service"
)

func main() {
	config.Load()
	cfg := config.AppEnv

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	log.Println("MySQL connected to:", cfg.DBName)

	if err := database.Migrate(db); err != nil {
		log.Fatal("migration failed:", err)
	}

	rdb, err := cache.InitRedis(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Println("⚠️ redis unavailable, catalog cache disabled:", err)
		rdb = nil
	}

	gateway := payment.NewRazorpayGateway(
		cfg.RazorpayKeyID,
		cfg.RazorpayKeySecret,
		int64(cfg.GatewayTimeout.Seconds()),
	)
	orderRepo := repository.NewOrderRepository(db)

	reconciler := service.NewReconciler(orderRepo, gateway, cfg.SweepInterval, cfg.SweepCutoff)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go reconciler.Run(sweepCtx)

	r := gin.Default()
	r.Use(middleware.MetricsMiddleware())
	r.GET("/metrics", middleware.PrometheusHandler())

	api := r.Group("/api")

	api.POST("/auth/register", handlers.Register(db, cfg.JWTSecret, cfg.AccessTokenTTL))
	api.POST("/auth/login", handlers.Login(db, cfg.JWTSecret, cfg.AccessTokenTTL))
	api.POST("/admin/auth/login", handlers.AdminLogin(db, cfg.JWTSecret, cfg.AccessTokenTTL))
	api.GET("/auth/me", middleware.UserAuth(cfg.JWTSecret), handlers.Me(db))

	api.GET("/products", handlers.GetProducts(db, rdb, cfg.CacheTTL))
	api.GET("/categories", handlers.GetCategories(db))
	api.GET("/attributes", handlers.GetAttributes(db))

	api.POST("/orders/create-order", handlers.CreateOrder(
		orderRepo,
		gateway,
		cfg.RazorpayKeyID,
		cfg.Currency,
		cfg.GatewayTimeout,
	))
	api.POST("/orders/capture-order", handlers.CaptureOrder(orderRepo))
	api.GET("/orders", handlers.GetOrders(orderRepo))
	api.GET("/orders/:id", handlers.GetOrder(orderRepo))

	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuth(cfg.JWTSecret))
	{
		admin.GET("/auth/me", handlers.AdminMe())

		admin.GET("/products", handlers.GetAllProducts(db))
		admin.POST("/products", handlers.CreateProduct(db, rdb))
		admin.PUT("/products/:id", handlers.UpdateProduct(db, rdb))
		admin.DELETE("/products/:id", handlers.DeleteProduct(db, rdb))

		admin.POST("/categories", handlers.CreateCategory(db))
		admin.DELETE("/categories/:id", handlers.DeleteCategory(db))

		admin.POST("/attributes", handlers.CreateAttribute(db))
		admin.DELETE("/attributes/:id", handlers.DeleteAttribute(db))

		admin.DELETE("/orders/:id", handlers.DeleteOrder(orderRepo))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
