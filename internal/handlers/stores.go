package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListStores returns every store of the catalog
// @Summary List stores
// @Tags stores
// @Produce json
// @Success 200 {array} database.Store
// @Failure 503 {object} ErrorResponse "Catalog not configured"
// @Router /stores [get]
func ListStores(c *gin.Context) {
	if catalog == nil {
		unavailable(c, "catalog")
		return
	}

	stores, err := catalog.ListStores(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stores)
}

// StoreProducts returns the products of one store
// @Summary List store products
// @Tags stores
// @Produce json
// @Param id path int true "Store ID"
// @Success 200 {array} database.Product
// @Failure 400 {object} ErrorResponse "Bad request"
// @Router /store/{id}/products [get]
func StoreProducts(c *gin.Context) {
	if catalog == nil {
		unavailable(c, "catalog")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "store id must be an integer", Field: "id"})
		return
	}

	products, err := catalog.ProductsByStore(c.Request.Context(), int32(id))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}
