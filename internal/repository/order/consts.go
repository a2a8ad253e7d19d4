package order

const (
	// collection name
	ordersNode string = "orders"

	// Fields' name and path
	IdFieldPath         string = "id"
	ReferenceFieldPath  string = "reference"
	BuyerIdFieldPath    string = "buyerId"
	SupplierIdFieldPath string = "supplierId"
	StatusFieldPath     string = "status"
	CreatedAtFieldPath  string = "createdAt"
	UpdatedAtFieldPath  string = "updatedAt"
)
