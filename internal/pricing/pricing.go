// Package pricing resolves the unit price a buyer pays for a product.
//
// A supplier may set a price per tier. The buyer's tier is looked up first and
// the chain falls back through the less privileged tiers until a price is
// found, ending at the product's base price. The best live promotion for the
// product is then applied on top.
package pricing

import (
	"math"
	"time"

	"winespace/internal/model"
)

type Quote struct {
	UnitPrice       float64    `json:"unitPrice"`
	ListPrice       float64    `json:"listPrice"`
	Tier            model.Tier `json:"tier,omitempty"`
	PromotionId     string     `json:"promotionId,omitempty"`
	DiscountPercent float64    `json:"discountPercent,omitempty"`
}

// Chain returns the tiers to try for a buyer, most privileged first.
// Unknown or empty tiers start at the standard tier.
func Chain(tier model.Tier) []model.Tier {
	for i, t := range model.Tiers {
		if t == tier {
			return model.Tiers[i:]
		}
	}
	return []model.Tier{model.TierStandard}
}

// ListPrice walks the fallback chain. The returned tier is empty when the base price was used.
func ListPrice(product model.Product, tier model.Tier) (float64, model.Tier) {
	for _, t := range Chain(tier) {
		if price, ok := product.TierPrices[t]; ok && price > 0 {
			return price, t
		}
	}
	return product.BasePrice, ""
}

// BestPromotion picks the live promotion with the highest discount covering the product.
func BestPromotion(product model.Product, promotions []model.Promotion, now time.Time) (model.Promotion, bool) {
	var best model.Promotion
	found := false
	for _, p := range promotions {
		if !p.LiveAt(now) || !p.Covers(product) || p.DiscountPercent <= 0 {
			continue
		}
		if !found || p.DiscountPercent > best.DiscountPercent {
			best = p
			found = true
		}
	}
	return best, found
}

func Resolve(product model.Product, tier model.Tier, promotions []model.Promotion, now time.Time) Quote {
	list, resolvedTier := ListPrice(product, tier)
	q := Quote{
		UnitPrice: Round(list),
		ListPrice: Round(list),
		Tier:      resolvedTier,
	}

	if promo, ok := BestPromotion(product, promotions, now); ok {
		discount := math.Min(promo.DiscountPercent, 100)
		q.UnitPrice = Round(list * (1 - discount/100))
		q.PromotionId = promo.Id
		q.DiscountPercent = discount
	}

	if q.UnitPrice < 0 {
		q.UnitPrice = 0
	}
	return q
}

// Round rounds to cents.
func Round(v float64) float64 {
	return math.Round(v*100) / 100
}
