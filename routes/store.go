package routes

import (
	"github.com/gin-gonic/gin"

	productControllers "github.com/batibatii/textilecom-sub000/controllers/product"
)

// SetupStoreRoutes registers the public storefront browsing endpoints.
func SetupStoreRoutes(r *gin.Engine, d Deps) {
	r.GET("/products", productControllers.GetProducts(d.DB, d.Products))
	r.GET("/products/:id", productControllers.GetProductByID(d.DB))
	r.GET("/categories", productControllers.GetAllCategoriesWithProducts(d.DB))
}
