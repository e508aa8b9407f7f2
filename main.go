package main

import (
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/Paphonsan-l/POS-CRUD/internal/auth"
	"github.com/Paphonsan-l/POS-CRUD/internal/db"
	"github.com/Paphonsan-l/POS-CRUD/internal/handlers"
	"github.com/Paphonsan-l/POS-CRUD/internal/metrics"
)

func main() {

	db.Init()
	auth.Init()

	r := gin.Default()

	// ── session store ──
	store := cookie.NewStore([]byte(getEnv("SESSION_SECRET", "change-me")))
	r.Use(sessions.Sessions("pos_session", store))

	// ── public endpoints ──
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok", "message": "POS Backend API is running"}) })
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/auth/login", auth.Login)
	r.GET("/auth/callback", auth.Callback)

	// ── protected API ──
	api := r.Group("/api")
	api.Use(auth.RequireAuth())
	{
		api.POST("/categories", handlers.CreateCategory)
		api.GET("/categories", handlers.ListCategories)

		api.POST("/products", handlers.CreateProduct)
		api.GET("/products", handlers.ListProducts)
		api.GET("/products/:id", handlers.GetProduct)
		api.PUT("/products/:id", handlers.UpdateProduct)
		api.DELETE("/products/:id", handlers.DeleteProduct)
		api.GET("/products/:id/stock", handlers.CheckStock)

		api.POST("/checkout", handlers.Checkout)
		api.GET("/transactions", handlers.ListTransactions)
		api.GET("/transactions/:id", handlers.GetTransaction)
		api.GET("/stats", handlers.GetSalesStats)
	}

	r.Run(":8080")
}

func getEnv(key, fallback string) string {

	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return fallback
}
