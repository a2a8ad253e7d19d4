package bulkwine

const (
	// collection name
	listingsNode string = "bulkWineListings"

	// Fields' name and path
	IdFieldPath            string = "id"
	SellerIdFieldPath      string = "sellerId"
	CultivarFieldPath      string = "cultivar"
	VintageFieldPath       string = "vintage"
	RegionFieldPath        string = "region"
	VolumeLitresFieldPath  string = "volumeLitres"
	PricePerLitreFieldPath string = "pricePerLitre"
	DescriptionFieldPath   string = "description"
	StatusFieldPath        string = "status"
	UpdatedAtFieldPath     string = "updatedAt"
)
