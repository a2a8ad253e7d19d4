package quote

const (
	// collection name
	quotesNode string = "quotes"

	// Fields' name and path
	IdFieldPath         string = "id"
	RFQIdFieldPath      string = "rfqId"
	SupplierIdFieldPath string = "supplierId"
	StatusFieldPath     string = "status"
	UpdatedAtFieldPath  string = "updatedAt"
)
