package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterOps mounts the health and metrics routes.
func RegisterOps(r gin.IRouter) {
	r.GET("/health", HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Register mounts the API routes on r.
func Register(r gin.IRouter) {
	r.GET("/search", Search)

	product := r.Group("/product")
	{
		product.POST("/exists", ProductExists)
		product.POST("/in-shop", ProductInShop)
		product.POST("/lowest-price", LowestPrice)
	}

	r.GET("/stores", ListStores)
	r.GET("/store/:id/products", StoreProducts)
}

// RegisterDocs mounts the Swagger UI under /docs.
func RegisterDocs(r gin.IRouter) {
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
