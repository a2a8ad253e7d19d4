package promotion

const (
	// collection name
	promotionsNode string = "promotions"

	// Fields' name and path
	IdFieldPath         string = "id"
	SupplierIdFieldPath string = "supplierId"
	ProductIdFieldPath  string = "productId"
	ActiveFieldPath     string = "active"
	UpdatedAtFieldPath  string = "updatedAt"
)
