package checkout

import (
	"testing"
	"time"

	"winespace/internal/model"
)

type staticPricer struct {
	tiers      map[string]model.Tier
	promotions map[string][]model.Promotion
}

func (p staticPricer) TierFor(supplierId string) model.Tier { return p.tiers[supplierId] }

func (p staticPricer) PromotionsFor(supplierId string) []model.Promotion {
	return p.promotions[supplierId]
}

func catalog() map[string]model.Product {
	return map[string]model.Product{
		"bottles": {Meta: model.Meta{Id: "bottles"}, SupplierId: "glass-co", Name: "750ml Bordeaux", BasePrice: 4.20, Active: true, MinOrderQty: 100},
		"corks":   {Meta: model.Meta{Id: "corks"}, SupplierId: "cork-co", Name: "Natural cork", BasePrice: 2.50, TierPrices: map[model.Tier]float64{model.TierGold: 2.00}, Active: true},
		"labels":  {Meta: model.Meta{Id: "labels"}, SupplierId: "glass-co", Name: "Front label", BasePrice: 0.80, Active: true},
		"retired": {Meta: model.Meta{Id: "retired"}, SupplierId: "cork-co", Name: "Synthetic cork", BasePrice: 1.00, Active: false},
	}
}

func TestMergeSumsRepeatedProducts(t *testing.T) {
	merged := Merge([]Line{{"a", 1}, {"b", 2}, {"a", 3}})
	if len(merged) != 2 || merged[0].ProductId != "a" || merged[0].Quantity != 4 || merged[1].Quantity != 2 {
		t.Fatalf("unexpected merge: %+v", merged)
	}
}

func TestBuildSplitsBySupplier(t *testing.T) {
	pricer := staticPricer{tiers: map[string]model.Tier{"cork-co": model.TierGold}}
	lines := []Line{
		{"bottles", 120},
		{"corks", 100},
		{"labels", 120},
		{"missing", 1},
		{"retired", 10},
	}

	drafts, lineErrors := Build(lines, catalog(), pricer, time.Now())

	if len(drafts) != 2 {
		t.Fatalf("expected 2 suppliers, got %d", len(drafts))
	}
	if drafts[0].SupplierId != "glass-co" || drafts[1].SupplierId != "cork-co" {
		t.Fatalf("suppliers out of cart order: %s, %s", drafts[0].SupplierId, drafts[1].SupplierId)
	}
	if len(drafts[0].Items) != 2 || drafts[0].Total != 600 {
		t.Fatalf("unexpected glass-co draft: %+v", drafts[0])
	}
	if drafts[1].Items[0].UnitPrice != 2.00 || drafts[1].Total != 200 {
		t.Fatalf("expected gold tier pricing for corks, got %+v", drafts[1])
	}
	if len(lineErrors) != 2 {
		t.Fatalf("expected 2 line errors, got %+v", lineErrors)
	}
}

func TestBuildEnforcesMinimumQuantity(t *testing.T) {
	drafts, lineErrors := Build([]Line{{"bottles", 50}}, catalog(), staticPricer{}, time.Now())
	if len(drafts) != 0 {
		t.Fatalf("expected no drafts, got %+v", drafts)
	}
	if len(lineErrors) != 1 || lineErrors[0].Reason != "minimum order quantity for 750ml Bordeaux is 100" {
		t.Fatalf("unexpected errors: %+v", lineErrors)
	}
}

func TestValidateRejectsNonPositiveQuantity(t *testing.T) {
	p := catalog()["labels"]
	if err := Validate(Line{ProductId: "labels", Quantity: 0}, &p); err == nil {
		t.Fatal("expected an error for a zero quantity")
	}
}
