package model

type ListingStatus string

const (
	ListingStatusAvailable ListingStatus = "available"
	ListingStatusSold      ListingStatus = "sold"
	ListingStatusWithdrawn ListingStatus = "withdrawn"
)

func (s ListingStatus) IsValid() bool {
	switch s {
	case ListingStatusAvailable, ListingStatusSold, ListingStatusWithdrawn:
		return true
	default:
		return false
	}
}

type BulkWineListing struct {
	Meta
	SellerId      string        `firestore:"sellerId" json:"sellerId"`
	Cultivar      string        `firestore:"cultivar" json:"cultivar"`
	Vintage       int           `firestore:"vintage" json:"vintage"`
	Region        string        `firestore:"region,omitempty" json:"region,omitempty"`
	VolumeLitres  float64       `firestore:"volumeLitres" json:"volumeLitres"`
	PricePerLitre float64       `firestore:"pricePerLitre" json:"pricePerLitre"`
	Description   string        `firestore:"description,omitempty" json:"description,omitempty"`
	Status        ListingStatus `firestore:"status" json:"status"`
}

type BulkWineUpdate struct {
	Cultivar      *string
	Vintage       *int
	Region        *string
	VolumeLitres  *float64
	PricePerLitre *float64
	Description   *string
	Status        *ListingStatus
}

type BulkWineFilter struct {
	SellerId  string
	Cultivar  string
	Vintage   int
	Region    string
	MinVolume float64
	Status    ListingStatus
}
