package product

const (
	// collection name
	productNode string = "products"

	// Fields' name and path
	IdFieldPath          string = "id"
	SupplierIdFieldPath  string = "supplierId"
	NameFieldPath        string = "name"
	DescriptionFieldPath string = "description"
	CategoryFieldPath    string = "category"
	UnitFieldPath        string = "unit"
	BasePriceFieldPath   string = "basePrice"
	TierPricesFieldPath  string = "tierPrices"
	MinOrderQtyFieldPath string = "minOrderQty"
	StockFieldPath       string = "stock"
	ImageUrlFieldPath    string = "imageUrl"
	ActiveFieldPath      string = "active"
	CreatedAtFieldPath   string = "createdAt"
	UpdatedAtFieldPath   string = "updatedAt"

	// Firestore limits
	maxBatchWrites int = 500
	maxInValues    int = 30
)
