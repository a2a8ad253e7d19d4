package actions

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	ierr "winespace/internal/errors"
	"winespace/internal/handler/catalogimport"
	"winespace/internal/handler/orderparse"
	"winespace/internal/model"
	"winespace/internal/pagecache"
	"winespace/internal/pricing"
)

type cannedPrompter struct{ answer string }

func (p cannedPrompter) Complete(ctx context.Context, instruction, prompt string) (string, error) {
	return p.answer, nil
}

type keepAll struct{}

func (keepAll) Truncate(s string, max int) string { return s }

func TestProductOwnership(t *testing.T) {
	f := newFixture()
	supplier := f.addUser("glassco", model.RoleSupplier)
	rival := f.addUser("bottleco", model.RoleSupplier)
	producer := f.addUser("estate", model.RoleProducer)

	res, err := f.CreateProduct(context.Background(), supplier, ProductInput{Name: " Flint bottle ", BasePrice: 5.555})
	if err != nil {
		t.Fatal(err)
	}
	p := res.Data.(model.Product)
	if p.Name != "Flint bottle" || p.BasePrice != 5.56 || p.Unit != "each" || !p.Active {
		t.Errorf("unexpected product: %+v", p)
	}

	name := "Stolen"
	if _, err := f.UpdateProduct(context.Background(), rival, p.Id, ProductUpdateInput{Name: &name}); !errors.Is(err, ierr.Forbidden) {
		t.Errorf("expected forbidden, got %v", err)
	}
	if _, err := f.CreateProduct(context.Background(), producer, ProductInput{Name: "x"}); !errors.Is(err, ierr.Forbidden) {
		t.Errorf("producers do not sell, got %v", err)
	}
	if _, err := f.CreateProduct(context.Background(), supplier, ProductInput{Name: "x", TierPrices: map[model.Tier]float64{"diamond": 1}}); !errors.Is(err, ierr.Invalid) {
		t.Errorf("expected an unknown tier to be rejected, got %v", err)
	}

	inactive := false
	if _, err := f.UpdateProduct(context.Background(), supplier, p.Id, ProductUpdateInput{Active: &inactive}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.GetProduct(context.Background(), producer, p.Id); !errors.Is(err, ierr.NotFound) {
		t.Errorf("inactive products are hidden from buyers, got %v", err)
	}
	if _, err := f.GetProduct(context.Background(), supplier, p.Id); err != nil {
		t.Errorf("the supplier still sees its product: %v", err)
	}

	listed, err := f.ListProducts(context.Background(), producer, model.ProductFilter{SupplierId: "glassco"})
	if err != nil {
		t.Fatal(err)
	}
	if got := listed.Data.([]model.Product); len(got) != 0 {
		t.Errorf("expected no active products, got %+v", got)
	}
}

func TestImportCatalogReviewThenSave(t *testing.T) {
	answer := `{"products": [
		{"name": "Screw cap 30x60", "unit": "box", "price": "R 120.50", "minOrderQty": 10},
		{"name": "", "price": 3}
	]}`
	importer := catalogimport.New(cannedPrompter{answer: answer}, nil, keepAll{}, 1000)
	f := newFixture(WithCatalogImport(importer))
	supplier := f.addUser("capsco", model.RoleSupplier)

	res, err := f.ImportCatalog(context.Background(), supplier, ImportInput{HTML: "<ul><li>Screw cap 30x60 R120.50/box</li></ul>"})
	if err != nil {
		t.Fatal(err)
	}
	found := res.Data.([]catalogimport.Product)
	if len(found) != 1 || found[0].Price != 120.5 {
		t.Fatalf("unexpected extraction: %+v", found)
	}
	if len(f.products.byId) != 0 {
		t.Error("a review must not store anything")
	}

	saved, err := f.ImportCatalog(context.Background(), supplier, ImportInput{HTML: "<p>Screw cap 30x60</p>", Save: true})
	if err != nil {
		t.Fatal(err)
	}
	products := saved.Data.([]model.Product)
	if len(products) != 1 || products[0].SupplierId != "capsco" || products[0].MinOrderQty != 10 {
		t.Errorf("unexpected saved products: %+v", products)
	}

	if _, err := f.ImportCatalog(context.Background(), supplier, ImportInput{}); !errors.Is(err, ierr.Invalid) {
		t.Errorf("expected invalid without input, got %v", err)
	}
	if _, err := newFixture().ImportCatalog(context.Background(), supplier, ImportInput{HTML: "<p/>"}); err == nil {
		t.Error("expected an error when import is not configured")
	}
}

func TestParseOrderMessageMatchesCatalogue(t *testing.T) {
	answer := `{"lines": [{"product": "natural cork", "quantity": 500}, {"product": "gold foil", "quantity": "2 rolls"}]}`
	f := newFixture(WithOrderParser(cannedPrompter{answer: answer}))
	producer := f.addUser("estate", model.RoleProducer)
	f.addUser("corkco", model.RoleSupplier)
	f.addProduct(model.Product{Meta: model.Meta{Id: "cork"}, SupplierId: "corkco", Name: "Natural Cork 44mm", BasePrice: 2})

	res, err := f.ParseOrderMessage(context.Background(), producer, ParseMessageInput{SupplierId: "corkco", Message: "500 natural corks and 2 rolls of gold foil please"})
	if err != nil {
		t.Fatal(err)
	}
	parsed := res.Data.(orderparse.Result)
	if len(parsed.Matched) != 1 || parsed.Matched[0].ProductId != "cork" || parsed.Matched[0].Quantity != 500 {
		t.Errorf("unexpected matches: %+v", parsed.Matched)
	}
	if len(parsed.Unmatched) != 1 || parsed.Unmatched[0].Quantity != 2 {
		t.Errorf("unexpected unmatched lines: %+v", parsed.Unmatched)
	}

	rival := f.addUser("capsco", model.RoleSupplier)
	if _, err := f.ParseOrderMessage(context.Background(), rival, ParseMessageInput{SupplierId: "corkco", Message: "x"}); !errors.Is(err, ierr.Forbidden) {
		t.Errorf("suppliers only parse against their own catalogue, got %v", err)
	}
}

func TestPromotionsApplyAtCheckout(t *testing.T) {
	f := newFixture()
	supplier := f.addUser("glassco", model.RoleSupplier)
	producer := f.addUser("estate", model.RoleProducer)
	f.addProduct(model.Product{Meta: model.Meta{Id: "bottle"}, SupplierId: "glassco", Name: "Flint", BasePrice: 10})
	f.addProduct(model.Product{Meta: model.Meta{Id: "foreign"}, SupplierId: "bottleco", Name: "Other", BasePrice: 10})

	in := PromotionInput{
		ProductId:       "bottle",
		Title:           "Harvest special",
		DiscountPercent: 15,
		StartsAt:        fixedNow.Add(-time.Hour),
		EndsAt:          fixedNow.Add(24 * time.Hour),
	}
	res, err := f.CreatePromotion(context.Background(), supplier, in)
	if err != nil {
		t.Fatal(err)
	}
	promo := res.Data.(model.Promotion)

	quote, err := f.PriceFor(context.Background(), producer, "bottle")
	if err != nil {
		t.Fatal(err)
	}
	if q := quote.Data.(pricing.Quote); q.UnitPrice != 8.5 || q.PromotionId != promo.Id {
		t.Errorf("expected the promotion to take 15%% off, got %+v", q)
	}

	if _, err := f.TogglePromotion(context.Background(), supplier, promo.Id); err != nil {
		t.Fatal(err)
	}
	listed, err := f.ListPromotions(context.Background(), producer, "glassco")
	if err != nil {
		t.Fatal(err)
	}
	if got := listed.Data.([]model.Promotion); len(got) != 0 {
		t.Errorf("a paused promotion is hidden from buyers, got %+v", got)
	}
	own, err := f.ListPromotions(context.Background(), supplier, "")
	if err != nil {
		t.Fatal(err)
	}
	if got := own.Data.([]model.Promotion); len(got) != 1 {
		t.Errorf("suppliers see their paused promotions, got %+v", got)
	}

	bad := []PromotionInput{
		{Title: "Zero", DiscountPercent: 0, StartsAt: in.StartsAt, EndsAt: in.EndsAt},
		{Title: "Too much", DiscountPercent: 101, StartsAt: in.StartsAt, EndsAt: in.EndsAt},
		{Title: "Backwards", DiscountPercent: 10, StartsAt: in.EndsAt, EndsAt: in.StartsAt},
	}
	for _, b := range bad {
		if _, err := f.CreatePromotion(context.Background(), supplier, b); !errors.Is(err, ierr.Invalid) {
			t.Errorf("%s: expected invalid, got %v", b.Title, err)
		}
	}
	foreign := in
	foreign.ProductId = "foreign"
	if _, err := f.CreatePromotion(context.Background(), supplier, foreign); !errors.Is(err, ierr.Forbidden) {
		t.Errorf("expected forbidden on another supplier's product, got %v", err)
	}
}

func TestOffenderSearch(t *testing.T) {
	f := newFixture()
	supplier := f.addUser("glassco", model.RoleSupplier)
	producer := f.addUser("estate", model.RoleProducer)

	for _, in := range []OffenderInput{
		{Name: "Jan Smit", CompanyName: "Smit Cellars", RegistrationNumber: "2019/123456/07", Reason: "Unpaid invoices", AmountOwed: 45000},
		{Name: "Piet Botha", CompanyName: "Botha Wines", Reason: "Bounced payment"},
	} {
		if _, err := f.ReportOffender(context.Background(), supplier, in); err != nil {
			t.Fatal(err)
		}
	}

	cases := map[string]int{
		"":          2,
		"smit":      1,
		"BOTHA":     1,
		"123456":    1,
		"nobody":    0,
		" cellars ": 1,
	}
	for q, want := range cases {
		res, err := f.ListOffenders(context.Background(), supplier, q)
		if err != nil {
			t.Fatal(err)
		}
		if got := len(res.Data.([]model.Offender)); got != want {
			t.Errorf("query %q: expected %d, got %d", q, want, got)
		}
	}

	if _, err := f.ListOffenders(context.Background(), producer, ""); !errors.Is(err, ierr.Forbidden) {
		t.Errorf("producers cannot see the list, got %v", err)
	}
	if _, err := f.ReportOffender(context.Background(), supplier, OffenderInput{Name: "x", Reason: "y", AmountOwed: -1}); !errors.Is(err, ierr.Invalid) {
		t.Errorf("expected a negative amount to be rejected, got %v", err)
	}
}

func TestBulkWineListings(t *testing.T) {
	f := newFixture()
	seller := f.addUser("estate", model.RoleProducer)
	buyer := f.addUser("negociant", model.RoleProducer)

	res, err := f.CreateListing(context.Background(), seller, BulkWineInput{Cultivar: "Chenin Blanc", Vintage: 2025, VolumeLitres: 12000, PricePerLitre: 18})
	if err != nil {
		t.Fatal(err)
	}
	listing := res.Data.(model.BulkWineListing)

	for _, v := range []int{1899, 2028} {
		if _, err := f.CreateListing(context.Background(), seller, BulkWineInput{Cultivar: "Shiraz", Vintage: v, VolumeLitres: 1}); !errors.Is(err, ierr.Invalid) {
			t.Errorf("vintage %d: expected invalid, got %v", v, err)
		}
	}

	sold := model.ListingStatusSold
	if _, err := f.UpdateListing(context.Background(), buyer, listing.Id, BulkWineUpdateInput{Status: &sold}); !errors.Is(err, ierr.Forbidden) {
		t.Errorf("expected forbidden, got %v", err)
	}
	if _, err := f.UpdateListing(context.Background(), seller, listing.Id, BulkWineUpdateInput{Status: &sold}); err != nil {
		t.Fatal(err)
	}

	available, err := f.ListListings(context.Background(), model.BulkWineFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if got := available.Data.([]model.BulkWineListing); len(got) != 0 {
		t.Errorf("sold wine is not listed by default, got %+v", got)
	}

	invalidated := strings.Join(f.cache.invalidated, ",")
	if !strings.Contains(invalidated, pagecache.BulkWine) {
		t.Errorf("expected bulk wine listings to be invalidated, got %s", invalidated)
	}
}

func TestDashboardCountsPerRole(t *testing.T) {
	f := newFixture()
	admin := f.addUser("admin", model.RoleAdmin)
	supplier := f.addUser("glassco", model.RoleSupplier)
	pending := f.users.byId["glassco"]
	pending.Status = model.UserStatusPending
	f.users.byId["glassco"] = pending

	f.orders.byId["o1"] = model.Order{Meta: model.Meta{Id: "o1"}, SupplierId: "glassco", Status: model.OrderStatusPending}
	f.orders.byId["o2"] = model.Order{Meta: model.Meta{Id: "o2"}, SupplierId: "glassco", Status: model.OrderStatusShipped}
	f.orders.byId["o3"] = model.Order{Meta: model.Meta{Id: "o3"}, SupplierId: "corkco", Status: model.OrderStatusPending}
	f.rfqs.byId["r1"] = model.RFQ{Meta: model.Meta{Id: "r1"}, Status: model.RFQStatusOpen}

	res, err := f.Dashboard(context.Background(), supplier)
	if err != nil {
		t.Fatal(err)
	}
	d := res.Data.(Dashboard)
	if d.OrdersByStatus[model.OrderStatusPending] != 1 || d.OrdersByStatus[model.OrderStatusShipped] != 1 || d.OpenRFQs != 1 {
		t.Errorf("unexpected supplier dashboard: %+v", d)
	}

	res, err = f.Dashboard(context.Background(), admin)
	if err != nil {
		t.Fatal(err)
	}
	d = res.Data.(Dashboard)
	if d.OrdersByStatus[model.OrderStatusPending] != 2 || d.PendingUsers != 1 {
		t.Errorf("unexpected admin dashboard: %+v", d)
	}

	if _, err := f.Dashboard(context.Background(), Actor{}); !errors.Is(err, ierr.Unauthorized) {
		t.Errorf("expected unauthorized, got %v", err)
	}
}
