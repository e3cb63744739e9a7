package m_product

// Field name constants for the products table.
const (
	TableName = "products"

	// NameIndex is the unique secondary index on name.
	NameIndex = "products_by_name"

	ProductID = "product_id"
	Name      = "name"
	Category  = "category"
	Price     = "price"
	Quantity  = "quantity"
	Version   = "version"
	CreatedAt = "created_at"
	UpdatedAt = "updated_at"
)

// Columns lists every column in read order.
var Columns = []string{
	ProductID,
	Name,
	Category,
	Price,
	Quantity,
	Version,
	CreatedAt,
	UpdatedAt,
}
