// Package checkout turns a producer's cart into one draft order per supplier.
package checkout

import (
	"fmt"
	"time"

	"winespace/internal/model"
	"winespace/internal/pricing"
)

type Line struct {
	ProductId string `json:"productId" form:"productId" binding:"required"`
	Quantity  int    `json:"quantity" form:"quantity" binding:"required"`
}

type LineError struct {
	ProductId string `json:"productId"`
	Reason    string `json:"reason"`
}

// Draft is the unsaved order for one supplier.
type Draft struct {
	SupplierId string
	Items      []model.OrderItem
	Total      float64
}

// Pricer provides the inputs the price resolution needs per supplier.
type Pricer interface {
	TierFor(supplierId string) model.Tier
	PromotionsFor(supplierId string) []model.Promotion
}

// Merge sums the quantities of repeated products, keeping the first-seen order.
func Merge(lines []Line) []Line {
	index := make(map[string]int, len(lines))
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		if i, ok := index[l.ProductId]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		index[l.ProductId] = len(out)
		out = append(out, l)
	}
	return out
}

// Validate checks a merged line against its product.
func Validate(line Line, product *model.Product) error {
	if product == nil {
		return fmt.Errorf("product not found")
	}
	if !product.Active {
		return fmt.Errorf("%s is not available", product.Name)
	}
	if line.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	if product.MinOrderQty > 0 && line.Quantity < product.MinOrderQty {
		return fmt.Errorf("minimum order quantity for %s is %d", product.Name, product.MinOrderQty)
	}
	return nil
}

// Build groups the cart by supplier and prices every line. Invalid lines are
// reported and left out; suppliers keep the order in which they first appear in the cart.
func Build(lines []Line, products map[string]model.Product, pricer Pricer, now time.Time) ([]Draft, []LineError) {
	drafts := []Draft{}
	bySupplier := map[string]int{}
	lineErrors := []LineError{}

	for _, line := range Merge(lines) {
		var product *model.Product
		if p, ok := products[line.ProductId]; ok {
			product = &p
		}

		if err := Validate(line, product); err != nil {
			lineErrors = append(lineErrors, LineError{ProductId: line.ProductId, Reason: err.Error()})
			continue
		}

		i, ok := bySupplier[product.SupplierId]
		if !ok {
			i = len(drafts)
			bySupplier[product.SupplierId] = i
			drafts = append(drafts, Draft{SupplierId: product.SupplierId})
		}

		quote := pricing.Resolve(*product, pricer.TierFor(product.SupplierId), pricer.PromotionsFor(product.SupplierId), now)
		item := model.OrderItem{
			ProductId:   product.Id,
			Name:        product.Name,
			Quantity:    line.Quantity,
			Unit:        product.Unit,
			UnitPrice:   quote.UnitPrice,
			LineTotal:   pricing.Round(quote.UnitPrice * float64(line.Quantity)),
			PromotionId: quote.PromotionId,
		}

		drafts[i].Items = append(drafts[i].Items, item)
		drafts[i].Total = pricing.Round(drafts[i].Total + item.LineTotal)
	}

	return drafts, lineErrors
}
