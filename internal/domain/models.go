package domain

type Product struct {
	ID    int64   `db:"id"`
	Name  string  `db:"name"`
	Price float64 `db:"price"`
	Stock int     `db:"stock"`
}

// ProductView is a Product plus display-only fields computed at query time.
// LowStock is never persisted.
type ProductView struct {
	Product
	LowStock bool
}

// BillingRecord is an append-only sale line. ProductName and Total are a
// snapshot of the product at sale time, so history survives later edits
// and deletes of the product row.
type BillingRecord struct {
	ID           int64   `db:"id"`
	CustomerName string  `db:"customer_name"`
	ProductID    int64   `db:"product_id"`
	ProductName  string  `db:"product_name"`
	Quantity     int     `db:"quantity"`
	Total        float64 `db:"total"`
	CreatedAt    string  `db:"created_at"`
}

type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty"`
}
