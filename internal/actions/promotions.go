package actions

import (
	"context"
	"fmt"
	"strings"
	"time"

	ierr "winespace/internal/errors"
	"winespace/internal/model"
	"winespace/internal/pagecache"
)

type PromotionInput struct {
	ProductId       string    `json:"productId" form:"productId"`
	Title           string    `json:"title" form:"title" binding:"required"`
	Description     string    `json:"description" form:"description"`
	DiscountPercent float64   `json:"discountPercent" form:"discountPercent" binding:"required,gt=0,lte=100"`
	StartsAt        time.Time `json:"startsAt" form:"startsAt" binding:"required"`
	EndsAt          time.Time `json:"endsAt" form:"endsAt" binding:"required"`
}

func (a *Actions) CreatePromotion(ctx context.Context, actor Actor, in PromotionInput) (Result, error) {
	if err := actor.require(model.RoleSupplier); err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return Result{}, ierr.Invalidf("title is required")
	}
	if in.DiscountPercent <= 0 || in.DiscountPercent > 100 {
		return Result{}, ierr.Invalidf("discount must be above 0 and at most 100 percent")
	}
	if !in.EndsAt.After(in.StartsAt) {
		return Result{}, ierr.Invalidf("the promotion must end after it starts")
	}

	if in.ProductId != "" {
		p, err := a.repos.Products.GetById(ctx, in.ProductId)
		if err != nil {
			return Result{}, notFound(err, "product")
		}
		if p.SupplierId != actor.Id {
			return Result{}, ierr.Forbiddenf("you can only promote your own products")
		}
	}

	promo, err := a.repos.Promotions.Create(ctx, model.Promotion{
		SupplierId:      actor.Id,
		ProductId:       in.ProductId,
		Title:           strings.TrimSpace(in.Title),
		Description:     in.Description,
		DiscountPercent: in.DiscountPercent,
		StartsAt:        in.StartsAt.UTC(),
		EndsAt:          in.EndsAt.UTC(),
		Active:          true,
	})
	if err != nil {
		return Result{}, err
	}

	a.invalidate(ctx, pagecache.Promotions, pagecache.Products)
	return ok("Promotion created", promo), nil
}

func (a *Actions) ownedPromotion(ctx context.Context, actor Actor, id string) (*model.Promotion, error) {
	if err := actor.require(model.RoleSupplier, model.RoleAdmin); err != nil {
		return nil, err
	}
	promo, err := a.repos.Promotions.GetById(ctx, id)
	if err != nil {
		return nil, notFound(err, "promotion")
	}
	if !actor.Is(model.RoleAdmin) && promo.SupplierId != actor.Id {
		return nil, ierr.Forbiddenf("this promotion belongs to another supplier")
	}
	return promo, nil
}

// TogglePromotion switches a promotion on or off.
func (a *Actions) TogglePromotion(ctx context.Context, actor Actor, id string) (Result, error) {
	promo, err := a.ownedPromotion(ctx, actor, id)
	if err != nil {
		return Result{}, err
	}
	if err := a.repos.Promotions.SetActive(ctx, id, !promo.Active); err != nil {
		return Result{}, notFound(err, "promotion")
	}

	a.invalidate(ctx, pagecache.Promotions, pagecache.Products)
	promo.Active = !promo.Active
	state := "paused"
	if promo.Active {
		state = "active"
	}
	return ok("Promotion "+state, promo), nil
}

func (a *Actions) DeletePromotion(ctx context.Context, actor Actor, id string) (Result, error) {
	if _, err := a.ownedPromotion(ctx, actor, id); err != nil {
		return Result{}, err
	}
	if err := a.repos.Promotions.Delete(ctx, id); err != nil {
		return Result{}, err
	}
	a.invalidate(ctx, pagecache.Promotions, pagecache.Products)
	return ok("Promotion deleted", nil), nil
}

// ListPromotions shows suppliers all of their own promotions; everyone else
// only sees promotions running now.
func (a *Actions) ListPromotions(ctx context.Context, actor Actor, supplierId string) (Result, error) {
	own := actor.Is(model.RoleSupplier) && (supplierId == "" || supplierId == actor.Id)
	if own {
		supplierId = actor.Id
	}

	activeOnly := !own && !actor.Is(model.RoleAdmin)
	key := pagecache.Key(pagecache.Promotions, supplierId, fmt.Sprint(activeOnly))
	promos, err := cached(ctx, a, key, func() ([]model.Promotion, error) {
		return a.repos.Promotions.List(ctx, supplierId, activeOnly)
	})
	if err != nil {
		return Result{}, err
	}

	if own || actor.Is(model.RoleAdmin) {
		return ok("", promos), nil
	}

	now := a.now()
	live := []model.Promotion{}
	for _, p := range promos {
		if p.LiveAt(now) {
			live = append(live, p)
		}
	}
	return ok("", live), nil
}
