package actions

import (
	"context"
	"fmt"
	"strings"

	ierr "winespace/internal/errors"
	"winespace/internal/model"
	"winespace/internal/pagecache"
)

type BulkWineInput struct {
	Cultivar      string  `json:"cultivar" form:"cultivar" binding:"required"`
	Vintage       int     `json:"vintage" form:"vintage" binding:"required"`
	Region        string  `json:"region" form:"region"`
	VolumeLitres  float64 `json:"volumeLitres" form:"volumeLitres" binding:"required,gt=0"`
	PricePerLitre float64 `json:"pricePerLitre" form:"pricePerLitre" binding:"gte=0"`
	Description   string  `json:"description" form:"description"`
}

func (a *Actions) validVintage(vintage int) bool {
	return vintage >= 1900 && vintage <= a.now().Year()+1
}

func (a *Actions) CreateListing(ctx context.Context, actor Actor, in BulkWineInput) (Result, error) {
	if err := actor.require(model.RoleProducer, model.RoleAdmin); err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(in.Cultivar) == "" {
		return Result{}, ierr.Invalidf("cultivar is required")
	}
	if !a.validVintage(in.Vintage) {
		return Result{}, ierr.Invalidf(fmt.Sprintf("vintage %d is not valid", in.Vintage))
	}
	if in.VolumeLitres <= 0 || in.PricePerLitre < 0 {
		return Result{}, ierr.Invalidf("volume must be positive and price cannot be negative")
	}

	l, err := a.repos.BulkWine.Create(ctx, model.BulkWineListing{
		SellerId:      actor.Id,
		Cultivar:      strings.TrimSpace(in.Cultivar),
		Vintage:       in.Vintage,
		Region:        strings.TrimSpace(in.Region),
		VolumeLitres:  in.VolumeLitres,
		PricePerLitre: in.PricePerLitre,
		Description:   in.Description,
		Status:        model.ListingStatusAvailable,
	})
	if err != nil {
		return Result{}, err
	}

	a.invalidate(ctx, pagecache.BulkWine)
	return ok("Listing created", l), nil
}

func (a *Actions) ownedListing(ctx context.Context, actor Actor, id string) (*model.BulkWineListing, error) {
	if actor.Id == "" {
		return nil, ierr.Unauthorized
	}
	l, err := a.repos.BulkWine.GetById(ctx, id)
	if err != nil {
		return nil, notFound(err, "listing")
	}
	if !actor.Is(model.RoleAdmin) && l.SellerId != actor.Id {
		return nil, ierr.Forbiddenf("this listing belongs to another seller")
	}
	return l, nil
}

type BulkWineUpdateInput struct {
	Cultivar      *string              `json:"cultivar" form:"cultivar"`
	Vintage       *int                 `json:"vintage" form:"vintage"`
	Region        *string              `json:"region" form:"region"`
	VolumeLitres  *float64             `json:"volumeLitres" form:"volumeLitres"`
	PricePerLitre *float64             `json:"pricePerLitre" form:"pricePerLitre"`
	Description   *string              `json:"description" form:"description"`
	Status        *model.ListingStatus `json:"status" form:"status"`
}

func (a *Actions) UpdateListing(ctx context.Context, actor Actor, id string, in BulkWineUpdateInput) (Result, error) {
	if _, err := a.ownedListing(ctx, actor, id); err != nil {
		return Result{}, err
	}
	if in.Vintage != nil && !a.validVintage(*in.Vintage) {
		return Result{}, ierr.Invalidf(fmt.Sprintf("vintage %d is not valid", *in.Vintage))
	}
	if (in.VolumeLitres != nil && *in.VolumeLitres <= 0) || (in.PricePerLitre != nil && *in.PricePerLitre < 0) {
		return Result{}, ierr.Invalidf("volume must be positive and price cannot be negative")
	}
	if in.Status != nil && !in.Status.IsValid() {
		return Result{}, ierr.Invalidf("unknown status " + string(*in.Status))
	}

	err := a.repos.BulkWine.Update(ctx, id, model.BulkWineUpdate{
		Cultivar:      in.Cultivar,
		Vintage:       in.Vintage,
		Region:        in.Region,
		VolumeLitres:  in.VolumeLitres,
		PricePerLitre: in.PricePerLitre,
		Description:   in.Description,
		Status:        in.Status,
	})
	if err != nil {
		return Result{}, notFound(err, "listing")
	}

	a.invalidate(ctx, pagecache.BulkWine)
	l, err := a.repos.BulkWine.GetById(ctx, id)
	if err != nil {
		return Result{}, notFound(err, "listing")
	}
	return ok("Listing updated", l), nil
}

func (a *Actions) DeleteListing(ctx context.Context, actor Actor, id string) (Result, error) {
	if _, err := a.ownedListing(ctx, actor, id); err != nil {
		return Result{}, err
	}
	if err := a.repos.BulkWine.Delete(ctx, id); err != nil {
		return Result{}, err
	}
	a.invalidate(ctx, pagecache.BulkWine)
	return ok("Listing deleted", nil), nil
}

// ListListings shows available wine unless another status is asked for.
func (a *Actions) ListListings(ctx context.Context, f model.BulkWineFilter) (Result, error) {
	if f.Status == "" {
		f.Status = model.ListingStatusAvailable
	}
	if !f.Status.IsValid() {
		return Result{}, ierr.Invalidf("unknown status " + string(f.Status))
	}

	key := pagecache.Key(pagecache.BulkWine, f.SellerId, f.Cultivar, fmt.Sprint(f.Vintage), f.Region, fmt.Sprint(f.MinVolume), string(f.Status))
	listings, err := cached(ctx, a, key, func() ([]model.BulkWineListing, error) {
		return a.repos.BulkWine.List(ctx, f)
	})
	if err != nil {
		return Result{}, err
	}
	return ok("", listings), nil
}
