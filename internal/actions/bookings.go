package actions

import (
	"context"
	"fmt"
	"strings"

	"winespace/internal/calendar"
	ierr "winespace/internal/errors"
	"winespace/internal/model"
	"winespace/internal/pagecache"
)

type AvailabilityInput struct {
	Date        string `json:"date" form:"date" binding:"required"`
	ServiceType string `json:"serviceType" form:"serviceType" binding:"required"`
	Capacity    int    `json:"capacity" form:"capacity" binding:"required,min=1"`
}

func (a *Actions) AddAvailability(ctx context.Context, actor Actor, in AvailabilityInput) (Result, error) {
	if err := actor.require(model.RoleServiceProvider); err != nil {
		return Result{}, err
	}
	if _, err := calendar.ParseDate(in.Date); err != nil {
		return Result{}, ierr.Invalidf(err.Error())
	}
	if in.Date < a.today() {
		return Result{}, ierr.Invalidf("availability cannot be added for past dates")
	}
	if in.Capacity < 1 {
		return Result{}, ierr.Invalidf("capacity must be at least 1")
	}

	serviceType := serviceKey(in.ServiceType)
	if provider, err := a.repos.Users.GetById(ctx, actor.Id); err == nil && len(provider.Services) > 0 {
		offered := false
		for _, s := range provider.Services {
			if serviceKey(s) == serviceType {
				offered = true
				break
			}
		}
		if !offered {
			return Result{}, ierr.Invalidf("add " + strings.TrimSpace(in.ServiceType) + " to your services first")
		}
	}

	slot, err := a.repos.Availability.Create(ctx, model.Availability{
		ProviderId:  actor.Id,
		Date:        in.Date,
		ServiceType: serviceType,
		Capacity:    in.Capacity,
	})
	if err != nil {
		return Result{}, err
	}

	a.invalidate(ctx, pagecache.Providers)
	return ok("Availability saved", slot), nil
}

func (a *Actions) ListAvailability(ctx context.Context, actor Actor, providerId, from, to string) (Result, error) {
	if actor.Id == "" {
		return Result{}, ierr.Unauthorized
	}
	if providerId == "" {
		providerId = actor.Id
	}
	slots, err := a.repos.Availability.List(ctx, providerId, from, to)
	if err != nil {
		return Result{}, err
	}
	return ok("", slots), nil
}

func (a *Actions) RemoveAvailability(ctx context.Context, actor Actor, id string) (Result, error) {
	if err := actor.require(model.RoleServiceProvider, model.RoleAdmin); err != nil {
		return Result{}, err
	}
	slot, err := a.repos.Availability.GetById(ctx, id)
	if err != nil {
		return Result{}, notFound(err, "availability")
	}
	if !actor.Is(model.RoleAdmin) && slot.ProviderId != actor.Id {
		return Result{}, ierr.Forbiddenf("this availability belongs to another provider")
	}
	if err := a.repos.Availability.Delete(ctx, id); err != nil {
		return Result{}, err
	}

	a.invalidate(ctx, pagecache.Providers)
	return ok("Availability removed", nil), nil
}

// FindProviders lists the providers that can still take a booking for the service on the date.
func (a *Actions) FindProviders(ctx context.Context, date, serviceType string) (Result, error) {
	matches, err := a.matchProviders(ctx, date, serviceType)
	if err != nil {
		return Result{}, err
	}
	return ok(fmt.Sprintf("%d provider(s) available", len(matches)), matches), nil
}

// serviceKey is the stored form of a service type: slots, bookings and
// searches all compare on it.
func serviceKey(serviceType string) string {
	return strings.ToLower(strings.TrimSpace(serviceType))
}

func (a *Actions) matchProviders(ctx context.Context, date, serviceType string) ([]calendar.Match, error) {
	serviceType = serviceKey(serviceType)
	if _, err := calendar.ParseDate(date); err != nil {
		return nil, ierr.Invalidf(err.Error())
	}
	if serviceType == "" {
		return nil, ierr.Invalidf("serviceType is required")
	}

	slots, err := a.repos.Availability.ListByDate(ctx, date, serviceType)
	if err != nil {
		return nil, err
	}
	bookings, err := a.repos.Bookings.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return calendar.MatchProviders(date, serviceType, slots, bookings), nil
}

type BookingInput struct {
	ProviderId  string            `json:"providerId" binding:"required"`
	Date        string            `json:"date" binding:"required"`
	ServiceType string            `json:"serviceType" binding:"required"`
	Notes       string            `json:"notes"`
	WorkOrders  []model.WorkOrder `json:"workOrders"`
}

// CreateBooking requests a provider for a day it has room on.
func (a *Actions) CreateBooking(ctx context.Context, actor Actor, in BookingInput) (Result, error) {
	if err := actor.require(model.RoleProducer); err != nil {
		return Result{}, err
	}
	if in.Date < a.today() {
		return Result{}, ierr.Invalidf("bookings cannot be made for past dates")
	}
	for _, w := range in.WorkOrders {
		if strings.TrimSpace(w.WineName) == "" || w.VolumeLitres < 0 || w.Cases < 0 {
			return Result{}, ierr.Invalidf("every work order needs a wine name and non-negative quantities")
		}
	}

	matches, err := a.matchProviders(ctx, in.Date, in.ServiceType)
	if err != nil {
		return Result{}, err
	}
	available := false
	for _, m := range matches {
		if m.ProviderId == in.ProviderId {
			available = true
			break
		}
	}
	if !available {
		return Result{}, ierr.Invalidf("the provider is not available for " + in.ServiceType + " on " + in.Date)
	}

	workOrders := in.WorkOrders
	if workOrders == nil {
		workOrders = []model.WorkOrder{}
	}
	booking, err := a.repos.Bookings.Create(ctx, model.Booking{
		Reference:   newReference("BKG"),
		ProviderId:  in.ProviderId,
		ProducerId:  actor.Id,
		Date:        in.Date,
		ServiceType: serviceKey(in.ServiceType),
		Status:      model.BookingStatusPending,
		Notes:       in.Notes,
		WorkOrders:  workOrders,
	})
	if err != nil {
		return Result{}, err
	}

	a.invalidate(ctx, pagecache.Bookings, pagecache.Providers)
	a.notify(ctx, model.NotifyBookingRequested, booking.ProviderId, "New booking request for "+booking.Date, map[string]interface{}{
		"reference":    booking.Reference,
		"producerName": a.displayName(ctx, actor.Id),
		"date":         booking.Date,
		"serviceType":  booking.ServiceType,
		"workOrders":   len(booking.WorkOrders),
		"path":         "/bookings/" + booking.Id,
	})
	return ok("Booking requested", booking), nil
}

type BookingStatusInput struct {
	Status model.BookingStatus `json:"status" form:"status" binding:"required"`
}

// SetBookingStatus: the provider confirms, declines or completes; the producer
// cancels; admins may set anything. Confirming checks the provider still has room.
func (a *Actions) SetBookingStatus(ctx context.Context, actor Actor, id string, status model.BookingStatus) (Result, error) {
	if !status.IsValid() {
		return Result{}, ierr.Invalidf("unknown status " + string(status))
	}

	b, err := a.repos.Bookings.GetById(ctx, id)
	if err != nil {
		return Result{}, notFound(err, "booking")
	}

	switch {
	case actor.Is(model.RoleAdmin):
	case actor.Id == b.ProviderId:
		if status != model.BookingStatusConfirmed && status != model.BookingStatusDeclined && status != model.BookingStatusCompleted {
			return Result{}, ierr.Forbiddenf("providers can confirm, decline or complete a booking")
		}
	case actor.Id == b.ProducerId:
		if status != model.BookingStatusCancelled {
			return Result{}, ierr.Forbiddenf("producers can only cancel a booking")
		}
	default:
		return Result{}, ierr.Forbiddenf("you are not a party to this booking")
	}

	if status == model.BookingStatusConfirmed && !b.Status.Holds() {
		if err := a.checkCapacity(ctx, *b); err != nil {
			return Result{}, err
		}
	}

	if err := a.repos.Bookings.UpdateStatus(ctx, id, status); err != nil {
		return Result{}, notFound(err, "booking")
	}
	a.invalidate(ctx, pagecache.Bookings, pagecache.Providers)

	recipient := b.ProducerId
	if actor.Id == b.ProducerId {
		recipient = b.ProviderId
	}
	a.notify(ctx, model.NotifyBookingStatus, recipient, fmt.Sprintf("Booking %s is %s", b.Reference, status), map[string]interface{}{
		"reference":   b.Reference,
		"date":        b.Date,
		"serviceType": b.ServiceType,
		"status":      string(status),
		"path":        "/bookings/" + b.Id,
	})

	b.Status = status
	return ok("Booking updated", b), nil
}

func (a *Actions) checkCapacity(ctx context.Context, b model.Booking) error {
	slots, err := a.repos.Availability.ListByDate(ctx, b.Date, b.ServiceType)
	if err != nil {
		return err
	}
	capacity := 0
	for _, s := range slots {
		if s.ProviderId == b.ProviderId {
			capacity = s.Capacity
		}
	}

	bookings, err := a.repos.Bookings.ListByDate(ctx, b.Date)
	if err != nil {
		return err
	}
	if calendar.Booked(b.Date, b.ServiceType, bookings)[b.ProviderId] >= capacity {
		return ierr.Invalidf("no capacity left on " + b.Date)
	}
	return nil
}

func (a *Actions) bookingFilter(actor Actor, from, to string) (model.BookingFilter, error) {
	f := model.BookingFilter{From: from, To: to}
	switch actor.Role {
	case model.RoleProducer:
		f.ProducerId = actor.Id
	case model.RoleServiceProvider:
		f.ProviderId = actor.Id
	case model.RoleAdmin:
	default:
		return f, ierr.Forbiddenf("your role has no bookings")
	}
	return f, nil
}

func (a *Actions) ListBookings(ctx context.Context, actor Actor, from, to string) (Result, error) {
	f, err := a.bookingFilter(actor, from, to)
	if err != nil {
		return Result{}, err
	}
	bookings, err := a.repos.Bookings.List(ctx, f)
	if err != nil {
		return Result{}, err
	}
	return ok("", bookings), nil
}

// Calendar lays the actor's bookings for a YYYY-MM month out per day.
func (a *Actions) Calendar(ctx context.Context, actor Actor, month string) (Result, error) {
	if month == "" {
		month = a.now().UTC().Format(model.PeriodLayout)
	}
	from, to, err := calendar.MonthRange(month)
	if err != nil {
		return Result{}, ierr.Invalidf(err.Error())
	}

	f, err := a.bookingFilter(actor, from, to)
	if err != nil {
		return Result{}, err
	}
	bookings, err := a.repos.Bookings.List(ctx, f)
	if err != nil {
		return Result{}, err
	}

	view, err := calendar.MonthView(month, bookings)
	if err != nil {
		return Result{}, ierr.Invalidf(err.Error())
	}
	return ok("", view), nil
}

// WorkOrders sums the booked work per day for a provider's run sheet.
func (a *Actions) WorkOrders(ctx context.Context, actor Actor, from, to string) (Result, error) {
	if err := actor.require(model.RoleServiceProvider, model.RoleAdmin); err != nil {
		return Result{}, err
	}
	f, err := a.bookingFilter(actor, from, to)
	if err != nil {
		return Result{}, err
	}
	bookings, err := a.repos.Bookings.List(ctx, f)
	if err != nil {
		return Result{}, err
	}
	return ok("", calendar.AggregateWorkOrders(bookings)), nil
}
