package types

// SearchResult is the answer of a free-text product search.
type SearchResult struct {
	MostSimilar []ProductMatch `json:"most_similar"`
	LowestPrice []ProductMatch `json:"lowest_price"`
}

// ExistsResult reports whether a product is sold near the caller.
type ExistsResult struct {
	Product string        `json:"product"`
	Exists  bool          `json:"exists"`
	Details *ProductMatch `json:"details"`
}

// InShopResult reports whether a product is sold by a given store.
type InShopResult struct {
	Product string        `json:"product"`
	Shop    string        `json:"shop"`
	Exists  bool          `json:"exists"`
	Details *ProductMatch `json:"details"`
}

// ShopProduct is one product of a shopping plan.
type ShopProduct struct {
	Shop        string   `json:"shop"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Discount    *float64 `json:"discount"`
	Distance    float64  `json:"distance"`
}

// ShoppingPlan is the store (or store pair) chosen for a shopping list.
type ShoppingPlan struct {
	Shop       string        `json:"shop"`
	TotalPrice float64       `json:"total_price"`
	Products   []ShopProduct `json:"products"`
	Missing    []string      `json:"missing"`
}
