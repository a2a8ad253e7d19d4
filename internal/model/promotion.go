package model

import "time"

type Promotion struct {
	Meta
	SupplierId string `firestore:"supplierId" json:"supplierId"`
	// ProductId is empty for promotions that cover every product of the supplier.
	ProductId       string    `firestore:"productId,omitempty" json:"productId,omitempty"`
	Title           string    `firestore:"title" json:"title"`
	Description     string    `firestore:"description,omitempty" json:"description,omitempty"`
	DiscountPercent float64   `firestore:"discountPercent" json:"discountPercent"`
	StartsAt        time.Time `firestore:"startsAt" json:"startsAt"`
	EndsAt          time.Time `firestore:"endsAt" json:"endsAt"`
	Active          bool      `firestore:"active" json:"active"`
}

// LiveAt reports whether the promotion is switched on and within its window.
func (p Promotion) LiveAt(now time.Time) bool {
	return p.Active && !now.Before(p.StartsAt) && !now.After(p.EndsAt)
}

// Covers reports whether the promotion applies to the product.
func (p Promotion) Covers(product Product) bool {
	if p.SupplierId != product.SupplierId {
		return false
	}
	return p.ProductId == "" || p.ProductId == product.Id
}
