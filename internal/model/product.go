package model

type Tier string

const (
	TierPlatinum Tier = "platinum"
	TierGold     Tier = "gold"
	TierSilver   Tier = "silver"
	TierStandard Tier = "standard"
)

// Tiers is ordered from the most to the least privileged tier.
var Tiers = []Tier{TierPlatinum, TierGold, TierSilver, TierStandard}

func (t Tier) IsValid() bool {
	for _, tier := range Tiers {
		if t == tier {
			return true
		}
	}
	return false
}

type Product struct {
	Meta
	SupplierId  string           `firestore:"supplierId" json:"supplierId"`
	Name        string           `firestore:"name" json:"name"`
	Description string           `firestore:"description,omitempty" json:"description,omitempty"`
	Category    string           `firestore:"category,omitempty" json:"category,omitempty"`
	Unit        string           `firestore:"unit,omitempty" json:"unit,omitempty"`
	BasePrice   float64          `firestore:"basePrice" json:"basePrice"`
	TierPrices  map[Tier]float64 `firestore:"tierPrices,omitempty" json:"tierPrices,omitempty"`
	MinOrderQty int              `firestore:"minOrderQty,omitempty" json:"minOrderQty,omitempty"`
	Stock       int              `firestore:"stock" json:"stock"`
	ImageUrl    string           `firestore:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Active      bool             `firestore:"active" json:"active"`
}

type ProductUpdate struct {
	Name        *string
	Description *string
	Category    *string
	Unit        *string
	BasePrice   *float64
	TierPrices  map[Tier]float64
	MinOrderQty *int
	Stock       *int
	ImageUrl    *string
	Active      *bool
}

type ProductFilter struct {
	SupplierId string
	Category   string
	ActiveOnly bool
}
