package actions

import (
	"context"
	"fmt"
	"strings"

	ierr "winespace/internal/errors"
	"winespace/internal/handler/catalogimport"
	"winespace/internal/model"
	"winespace/internal/pagecache"
	"winespace/internal/pricing"
)

type ProductInput struct {
	SupplierId  string                 `json:"supplierId" form:"supplierId"`
	Name        string                 `json:"name" form:"name" binding:"required"`
	Description string                 `json:"description" form:"description"`
	Category    string                 `json:"category" form:"category"`
	Unit        string                 `json:"unit" form:"unit"`
	BasePrice   float64                `json:"basePrice" form:"basePrice" binding:"gte=0"`
	TierPrices  map[model.Tier]float64 `json:"tierPrices" form:"tierPrices"`
	MinOrderQty int                    `json:"minOrderQty" form:"minOrderQty" binding:"gte=0"`
	Stock       int                    `json:"stock" form:"stock" binding:"gte=0"`
	ImageUrl    string                 `json:"imageUrl" form:"imageUrl"`
	Active      *bool                  `json:"active" form:"active"`
}

func validateTierPrices(prices map[model.Tier]float64) error {
	for tier, price := range prices {
		if !tier.IsValid() {
			return ierr.Invalidf("unknown tier " + string(tier))
		}
		if price < 0 {
			return ierr.Invalidf(fmt.Sprintf("%s price cannot be negative", tier))
		}
	}
	return nil
}

func (a *Actions) CreateProduct(ctx context.Context, actor Actor, in ProductInput) (Result, error) {
	if err := actor.require(model.RoleSupplier, model.RoleAdmin); err != nil {
		return Result{}, err
	}

	supplierId := actor.Id
	if actor.Is(model.RoleAdmin) {
		if in.SupplierId == "" {
			return Result{}, ierr.Invalidf("supplierId is required")
		}
		supplierId = in.SupplierId
	}

	if strings.TrimSpace(in.Name) == "" {
		return Result{}, ierr.Invalidf("name is required")
	}
	if in.BasePrice < 0 || in.MinOrderQty < 0 || in.Stock < 0 {
		return Result{}, ierr.Invalidf("price, minimum order and stock cannot be negative")
	}
	if err := validateTierPrices(in.TierPrices); err != nil {
		return Result{}, err
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}
	unit := in.Unit
	if unit == "" {
		unit = "each"
	}

	p, err := a.repos.Products.Create(ctx, model.Product{
		SupplierId:  supplierId,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Category:    in.Category,
		Unit:        unit,
		BasePrice:   pricing.Round(in.BasePrice),
		TierPrices:  in.TierPrices,
		MinOrderQty: in.MinOrderQty,
		Stock:       in.Stock,
		ImageUrl:    in.ImageUrl,
		Active:      active,
	})
	if err != nil {
		return Result{}, err
	}

	a.invalidate(ctx, pagecache.Products)
	return ok("Product created", p), nil
}

// ownedProduct loads a product the actor may change.
func (a *Actions) ownedProduct(ctx context.Context, actor Actor, id string) (*model.Product, error) {
	if err := actor.require(model.RoleSupplier, model.RoleAdmin); err != nil {
		return nil, err
	}
	p, err := a.repos.Products.GetById(ctx, id)
	if err != nil {
		return nil, notFound(err, "product")
	}
	if !actor.Is(model.RoleAdmin) && p.SupplierId != actor.Id {
		return nil, ierr.Forbiddenf("this product belongs to another supplier")
	}
	return p, nil
}

type ProductUpdateInput struct {
	Name        *string                `json:"name" form:"name"`
	Description *string                `json:"description" form:"description"`
	Category    *string                `json:"category" form:"category"`
	Unit        *string                `json:"unit" form:"unit"`
	BasePrice   *float64               `json:"basePrice" form:"basePrice"`
	TierPrices  map[model.Tier]float64 `json:"tierPrices" form:"tierPrices"`
	MinOrderQty *int                   `json:"minOrderQty" form:"minOrderQty"`
	Stock       *int                   `json:"stock" form:"stock"`
	ImageUrl    *string                `json:"imageUrl" form:"imageUrl"`
	Active      *bool                  `json:"active" form:"active"`
}

func (a *Actions) UpdateProduct(ctx context.Context, actor Actor, id string, in ProductUpdateInput) (Result, error) {
	if _, err := a.ownedProduct(ctx, actor, id); err != nil {
		return Result{}, err
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return Result{}, ierr.Invalidf("name cannot be empty")
	}
	if (in.BasePrice != nil && *in.BasePrice < 0) || (in.MinOrderQty != nil && *in.MinOrderQty < 0) || (in.Stock != nil && *in.Stock < 0) {
		return Result{}, ierr.Invalidf("price, minimum order and stock cannot be negative")
	}
	if err := validateTierPrices(in.TierPrices); err != nil {
		return Result{}, err
	}

	err := a.repos.Products.Update(ctx, id, model.ProductUpdate{
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Unit:        in.Unit,
		BasePrice:   in.BasePrice,
		TierPrices:  in.TierPrices,
		MinOrderQty: in.MinOrderQty,
		Stock:       in.Stock,
		ImageUrl:    in.ImageUrl,
		Active:      in.Active,
	})
	if err != nil {
		return Result{}, notFound(err, "product")
	}

	a.invalidate(ctx, pagecache.Products)
	p, err := a.repos.Products.GetById(ctx, id)
	if err != nil {
		return Result{}, notFound(err, "product")
	}
	return ok("Product updated", p), nil
}

// DeleteProduct removes the product. Orders keep their copy of the line.
func (a *Actions) DeleteProduct(ctx context.Context, actor Actor, id string) (Result, error) {
	if _, err := a.ownedProduct(ctx, actor, id); err != nil {
		return Result{}, err
	}
	if err := a.repos.Products.Delete(ctx, id); err != nil {
		return Result{}, err
	}

	a.invalidate(ctx, pagecache.Products, pagecache.Promotions)
	return ok("Product deleted", nil), nil
}

// ListProducts hides inactive products from everyone but their supplier and admins.
func (a *Actions) ListProducts(ctx context.Context, actor Actor, f model.ProductFilter) (Result, error) {
	if !actor.Is(model.RoleAdmin) && !(actor.Is(model.RoleSupplier) && f.SupplierId == actor.Id) {
		f.ActiveOnly = true
	}

	key := pagecache.Key(pagecache.Products, f.SupplierId, f.Category, fmt.Sprint(f.ActiveOnly))
	products, err := cached(ctx, a, key, func() ([]model.Product, error) {
		return a.repos.Products.List(ctx, f)
	})
	if err != nil {
		return Result{}, err
	}
	return ok("", products), nil
}

func (a *Actions) GetProduct(ctx context.Context, actor Actor, id string) (Result, error) {
	p, err := a.repos.Products.GetById(ctx, id)
	if err != nil {
		return Result{}, notFound(err, "product")
	}
	if !p.Active && !actor.Is(model.RoleAdmin) && p.SupplierId != actor.Id {
		return Result{}, fmt.Errorf("product %w", ierr.NotFound)
	}
	return ok("", p), nil
}

// supplierPricer resolves tiers and promotions per supplier for one buyer,
// loading each supplier once.
type supplierPricer struct {
	ctx        context.Context
	a          *Actions
	buyerId    string
	tiers      map[string]model.Tier
	promotions map[string][]model.Promotion
}

func (a *Actions) pricerFor(ctx context.Context, buyerId string) *supplierPricer {
	return &supplierPricer{
		ctx:        ctx,
		a:          a,
		buyerId:    buyerId,
		tiers:      map[string]model.Tier{},
		promotions: map[string][]model.Promotion{},
	}
}

func (p *supplierPricer) TierFor(supplierId string) model.Tier {
	if tier, ok := p.tiers[supplierId]; ok {
		return tier
	}
	tier := model.TierStandard
	if supplier, err := p.a.repos.Users.GetById(p.ctx, supplierId); err == nil {
		if t, ok := supplier.CustomerTiers[p.buyerId]; ok {
			tier = t
		}
	}
	p.tiers[supplierId] = tier
	return tier
}

func (p *supplierPricer) PromotionsFor(supplierId string) []model.Promotion {
	if promos, ok := p.promotions[supplierId]; ok {
		return promos
	}
	promos, err := p.a.repos.Promotions.List(p.ctx, supplierId, true)
	if err != nil {
		promos = nil
	}
	p.promotions[supplierId] = promos
	return promos
}

// PriceFor quotes the unit price a producer pays for a product.
func (a *Actions) PriceFor(ctx context.Context, actor Actor, productId string) (Result, error) {
	if actor.Id == "" {
		return Result{}, ierr.Unauthorized
	}
	p, err := a.repos.Products.GetById(ctx, productId)
	if err != nil {
		return Result{}, notFound(err, "product")
	}

	pricer := a.pricerFor(ctx, actor.Id)
	quote := pricing.Resolve(*p, pricer.TierFor(p.SupplierId), pricer.PromotionsFor(p.SupplierId), a.now())
	return ok("", quote), nil
}

type ImportInput struct {
	URL  string `json:"url" form:"url"`
	HTML string `json:"html" form:"html"`
	Save bool   `json:"save" form:"save"`
}

// ImportCatalog extracts products from a supplier's web page. With Save set
// they are stored straight away, otherwise they are returned for review.
func (a *Actions) ImportCatalog(ctx context.Context, actor Actor, in ImportInput) (Result, error) {
	if err := actor.require(model.RoleSupplier); err != nil {
		return Result{}, err
	}
	if a.catalogImport == nil {
		return Result{}, fmt.Errorf("catalog import is not configured")
	}
	if in.URL == "" && strings.TrimSpace(in.HTML) == "" {
		return Result{}, ierr.Invalidf("provide a url or the page html")
	}

	extracted, err := a.catalogImport.Extract(ctx, in.URL, in.HTML)
	if err != nil {
		return Result{}, err
	}
	if !in.Save {
		return ok(fmt.Sprintf("%d products found", len(extracted)), extracted), nil
	}
	return a.SaveImportedProducts(ctx, actor, extracted)
}

func (a *Actions) SaveImportedProducts(ctx context.Context, actor Actor, extracted []catalogimport.Product) (Result, error) {
	if err := actor.require(model.RoleSupplier); err != nil {
		return Result{}, err
	}
	if len(extracted) == 0 {
		return Result{}, ierr.Invalidf("no products to save")
	}

	products := catalogimport.ToProducts(actor.Id, extracted)
	saved, err := a.repos.Products.CreateMany(ctx, products)
	if err != nil {
		return Result{}, err
	}

	a.invalidate(ctx, pagecache.Products)
	return ok(fmt.Sprintf("%d products imported", len(saved)), saved), nil
}
