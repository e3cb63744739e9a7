package m_product

import (
	"math/big"
	"time"
)

// Data represents the database model for the products table. Price is a
// NUMERIC column.
type Data struct {
	ProductID string    `spanner:"product_id"`
	Name      string    `spanner:"name"`
	Category  string    `spanner:"category"`
	Price     big.Rat   `spanner:"price"`
	Quantity  int64     `spanner:"quantity"`
	Version   int64     `spanner:"version"`
	CreatedAt time.Time `spanner:"created_at"`
	UpdatedAt time.Time `spanner:"updated_at"`
}
