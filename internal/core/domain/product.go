package domain

// Product is a single inventory item.
type Product struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Stock    int     `json:"stock"`
	Sales    int     `json:"sales"`
	Status   string  `json:"status,omitempty"`
}

// ProductPatch carries a partial update; nil fields are left untouched.
type ProductPatch struct {
	Name     *string
	Category *string
	Price    *float64
	Quantity *int
	Stock    *int
	Sales    *int
	Status   *string
}

// Empty reports whether the patch would change nothing.
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Category == nil && p.Price == nil &&
		p.Quantity == nil && p.Stock == nil && p.Sales == nil && p.Status == nil
}

// CategoryCount is the number of products in one category.
type CategoryCount struct {
	Category string `json:"_id"`
	Count    int64  `json:"count"`
}

// CategoryAveragePrice is the mean price of the products in one category.
type CategoryAveragePrice struct {
	Category     string  `json:"_id"`
	AveragePrice float64 `json:"average_price"`
}

// ProductSales is the summed sales of every product sharing a name.
type ProductSales struct {
	Name       string `json:"_id"`
	TotalSales int64  `json:"total_sales"`
}

// CategoryGroup holds every product of one category.
type CategoryGroup struct {
	Category string    `json:"_id"`
	Products []Product `json:"products"`
}
