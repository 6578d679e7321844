package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spesa/search-service/internal/planner"
	"github.com/spesa/search-service/internal/types"
)

// ============================================================================
// Product Search Endpoints
// ============================================================================

// SearchQuery holds the query string of GET /search
type SearchQuery struct {
	Query             string   `form:"query" binding:"required"`
	PositionLatitude  *float64 `form:"position_latitude" binding:"required"`
	PositionLongitude *float64 `form:"position_longitude" binding:"required"`
}

// ProductExistsRequest is the body of POST /product/exists
type ProductExistsRequest struct {
	Product  string          `json:"product" binding:"required"`
	Position *types.Position `json:"position" binding:"required"`
}

// ProductInShopRequest is the body of POST /product/in-shop
type ProductInShopRequest struct {
	Product  string          `json:"product" binding:"required"`
	Shop     string          `json:"shop" binding:"required"`
	Position *types.Position `json:"position" binding:"required"`
}

// LowestPriceRequest is the body of POST /product/lowest-price
type LowestPriceRequest struct {
	Products []string        `json:"products" binding:"required"`
	Position *types.Position `json:"position" binding:"required"`
	// Mode is "comodita" (one store) or "risparmio" (up to two stores)
	Mode string `json:"mode,omitempty"`
}

// Search handles free-text product search
// @Summary Search products
// @Description Returns the hits most similar to the query and the cheapest matching products near the caller
// @Tags products
// @Produce json
// @Param query query string true "Free-text query"
// @Param position_latitude query number true "Caller latitude"
// @Param position_longitude query number true "Caller longitude"
// @Success 200 {object} types.SearchResult
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 503 {object} ErrorResponse "Search backend unavailable"
// @Router /search [get]
func Search(c *gin.Context) {
	if shoppingPlanner == nil {
		unavailable(c, "search")
		return
	}

	var q SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	pos := types.Position{Latitude: *q.PositionLatitude, Longitude: *q.PositionLongitude}
	result, err := shoppingPlanner.SearchSimilarAndCheapest(c.Request.Context(), q.Query, pos)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ProductExists checks whether a product is sold near the caller
// @Summary Check product exists
// @Tags products
// @Accept json
// @Produce json
// @Param request body ProductExistsRequest true "Product and position"
// @Success 200 {object} types.ExistsResult
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 503 {object} ErrorResponse "Search backend unavailable"
// @Router /product/exists [post]
func ProductExists(c *gin.Context) {
	if shoppingPlanner == nil {
		unavailable(c, "search")
		return
	}

	var req ProductExistsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := shoppingPlanner.CheckProductExists(c.Request.Context(), req.Product, *req.Position)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ProductInShop checks whether a store sells a product
// @Summary Check product in shop
// @Tags products
// @Accept json
// @Produce json
// @Param request body ProductInShopRequest true "Product, shop and position"
// @Success 200 {object} types.InShopResult
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 503 {object} ErrorResponse "Search backend unavailable"
// @Router /product/in-shop [post]
func ProductInShop(c *gin.Context) {
	if shoppingPlanner == nil {
		unavailable(c, "search")
		return
	}

	var req ProductInShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := shoppingPlanner.FindProductInShop(c.Request.Context(), req.Product, req.Shop, *req.Position)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// LowestPrice picks the cheapest store, or store pair, for a shopping list.
// Answers an empty array when no store stocks any item.
// @Summary Optimize shopping list
// @Description Picks the store (comodita) or up to two stores (risparmio) covering the list at the lowest total price
// @Tags optimize
// @Accept json
// @Produce json
// @Param request body LowestPriceRequest true "Shopping list, position and mode"
// @Success 200 {array} types.ShoppingPlan
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 503 {object} ErrorResponse "Search backend unavailable"
// @Router /product/lowest-price [post]
func LowestPrice(c *gin.Context) {
	if shoppingPlanner == nil {
		unavailable(c, "search")
		return
	}

	var req LowestPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := shoppingPlanner.FindLowestPrice(c.Request.Context(), req.Products, *req.Position, req.Mode)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, planner.Plans(result))
}
