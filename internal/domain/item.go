package domain

// Item is a catalog entry with a finite stock. Price is in the smallest
// currency unit. Version backs the optimistic check on item updates.
type Item struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	StockQuantity int    `json:"stock_quantity"`
	Version       int64  `json:"-"`
}

// InStock reports whether quantity units can be taken from stock.
func (i *Item) InStock(quantity int) bool {
	return i.StockQuantity >= quantity
}
