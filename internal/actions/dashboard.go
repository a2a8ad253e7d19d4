package actions

import (
	"context"

	ierr "winespace/internal/errors"
	"winespace/internal/model"
	"winespace/internal/pagecache"
)

type Dashboard struct {
	Role             model.Role                `json:"role"`
	OrdersByStatus   map[model.OrderStatus]int `json:"ordersByStatus,omitempty"`
	UpcomingBookings int                       `json:"upcomingBookings"`
	PendingBookings  int                       `json:"pendingBookings"`
	OpenRFQs         int                       `json:"openRfqs"`
	ActivePromotions int                       `json:"activePromotions"`
	PendingUsers     int                       `json:"pendingUsers"`
}

// Dashboard counts what matters to the actor's role.
func (a *Actions) Dashboard(ctx context.Context, actor Actor) (Result, error) {
	if actor.Id == "" {
		return Result{}, ierr.Unauthorized
	}

	key := pagecache.Key(pagecache.Dashboard, actor.Id, string(actor.Role))
	d, err := cached(ctx, a, key, func() (Dashboard, error) {
		return a.dashboard(ctx, actor)
	})
	if err != nil {
		return Result{}, err
	}
	return ok("", d), nil
}

func (a *Actions) dashboard(ctx context.Context, actor Actor) (Dashboard, error) {
	d := Dashboard{Role: actor.Role}
	now := a.now()

	orderFilter := model.OrderFilter{}
	switch actor.Role {
	case model.RoleProducer:
		orderFilter.BuyerId = actor.Id
	case model.RoleSupplier:
		orderFilter.SupplierId = actor.Id
	}
	if actor.Role != model.RoleServiceProvider {
		orders, err := a.repos.Orders.List(ctx, orderFilter)
		if err != nil {
			return d, err
		}
		d.OrdersByStatus = map[model.OrderStatus]int{}
		for _, o := range orders {
			d.OrdersByStatus[o.Status]++
		}
	}

	if actor.Role != model.RoleSupplier {
		f, err := a.bookingFilter(actor, a.today(), "")
		if err != nil {
			return d, err
		}
		bookings, err := a.repos.Bookings.List(ctx, f)
		if err != nil {
			return d, err
		}
		for _, b := range bookings {
			switch b.Status {
			case model.BookingStatusPending:
				d.PendingBookings++
				d.UpcomingBookings++
			case model.BookingStatusConfirmed:
				d.UpcomingBookings++
			}
		}
	}

	if actor.Role != model.RoleServiceProvider {
		producerId := ""
		if actor.Is(model.RoleProducer) {
			producerId = actor.Id
		}
		rfqs, err := a.repos.RFQs.List(ctx, producerId, model.RFQStatusOpen)
		if err != nil {
			return d, err
		}
		for _, r := range rfqs {
			if r.Open(now) {
				d.OpenRFQs++
			}
		}

		supplierId := ""
		if actor.Is(model.RoleSupplier) {
			supplierId = actor.Id
		}
		promos, err := a.repos.Promotions.List(ctx, supplierId, true)
		if err != nil {
			return d, err
		}
		for _, p := range promos {
			if p.LiveAt(now) {
				d.ActivePromotions++
			}
		}
	}

	if actor.Is(model.RoleAdmin) {
		users, err := a.repos.Users.List(ctx, "")
		if err != nil {
			return d, err
		}
		for _, u := range users {
			if u.Status == model.UserStatusPending {
				d.PendingUsers++
			}
		}
	}
	return d, nil
}
