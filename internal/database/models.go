package database

// Store is a row of the "Localization" table: one physical store.
type Store struct {
	ID             int32   `json:"id"`
	Grocery        string  `json:"grocery"`
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
	Street         *string `json:"street"`
	City           *string `json:"city"`
	ZipCode        *string `json:"zip_code"`
	WorkingHours   *string `json:"working_hours"`
	PicksUpInStore *bool   `json:"picks_up_in_store"`
}

// Product is a row of the "Product" table as listed for one store.
type Product struct {
	ID           int32    `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	CurrentPrice float64  `json:"current_price"`
	Discount     float64  `json:"discount"`
	PriceForKg   *float64 `json:"price_for_kg"`
	ImageURL     *string  `json:"image_url"`
}
