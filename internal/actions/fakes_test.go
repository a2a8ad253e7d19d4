package actions

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	ierr "winespace/internal/errors"
	"winespace/internal/model"
	notificationRepository "winespace/internal/repository/notification"
)

var fixedNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

type fakeIds struct{ n int }

func (f *fakeIds) next(prefix string) string {
	f.n++
	return fmt.Sprintf("%s-%d", prefix, f.n)
}

var ids = &fakeIds{}

func stamp(m *model.Meta, prefix string) {
	m.SetIdIfEmpty(ids.next(prefix))
	m.Touch(fixedNow)
}

type fakeUsers struct{ byId map[string]model.User }

func (f *fakeUsers) Create(_ context.Context, u model.User) (model.User, error) {
	for _, existing := range f.byId {
		if strings.EqualFold(existing.Email, u.Email) {
			return model.User{}, fmt.Errorf("create user: %w", ierr.AlreadyExists)
		}
	}
	stamp(&u.Meta, "user")
	f.byId[u.Id] = u
	return u, nil
}

func (f *fakeUsers) GetById(_ context.Context, id string) (*model.User, error) {
	u, ok := f.byId[id]
	if !ok {
		return nil, ierr.NotFound
	}
	return &u, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.byId {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, ierr.NotFound
}

func (f *fakeUsers) List(_ context.Context, role model.Role) ([]model.User, error) {
	out := []model.User{}
	for _, u := range f.byId {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUsers) Update(_ context.Context, id string, data model.UserUpdate) error {
	u, ok := f.byId[id]
	if !ok {
		return ierr.NotFound
	}
	if data.Name != nil {
		u.Name = *data.Name
	}
	if data.CompanyName != nil {
		u.CompanyName = *data.CompanyName
	}
	if data.Services != nil {
		u.Services = data.Services
	}
	f.byId[id] = u
	return nil
}

func (f *fakeUsers) SetStatus(_ context.Context, id string, status model.UserStatus) error {
	u, ok := f.byId[id]
	if !ok {
		return ierr.NotFound
	}
	u.Status = status
	f.byId[id] = u
	return nil
}

func (f *fakeUsers) SetCustomerTier(_ context.Context, supplierId, producerId string, tier model.Tier) error {
	u, ok := f.byId[supplierId]
	if !ok {
		return ierr.NotFound
	}
	if u.CustomerTiers == nil {
		u.CustomerTiers = map[string]model.Tier{}
	}
	u.CustomerTiers[producerId] = tier
	f.byId[supplierId] = u
	return nil
}

type fakeProducts struct{ byId map[string]model.Product }

func (f *fakeProducts) Create(_ context.Context, p model.Product) (model.Product, error) {
	stamp(&p.Meta, "product")
	f.byId[p.Id] = p
	return p, nil
}

func (f *fakeProducts) CreateMany(ctx context.Context, data []model.Product) ([]model.Product, error) {
	out := make([]model.Product, 0, len(data))
	for _, p := range data {
		saved, _ := f.Create(ctx, p)
		out = append(out, saved)
	}
	return out, nil
}

func (f *fakeProducts) GetById(_ context.Context, id string) (*model.Product, error) {
	p, ok := f.byId[id]
	if !ok {
		return nil, ierr.NotFound
	}
	return &p, nil
}

func (f *fakeProducts) GetByIds(_ context.Context, ids []string) (map[string]model.Product, error) {
	out := map[string]model.Product{}
	for _, id := range ids {
		if p, ok := f.byId[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (f *fakeProducts) List(_ context.Context, filter model.ProductFilter) ([]model.Product, error) {
	out := []model.Product{}
	for _, p := range f.byId {
		if (filter.SupplierId != "" && p.SupplierId != filter.SupplierId) || (filter.ActiveOnly && !p.Active) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeProducts) Update(_ context.Context, id string, data model.ProductUpdate) error {
	p, ok := f.byId[id]
	if !ok {
		return ierr.NotFound
	}
	if data.Name != nil {
		p.Name = *data.Name
	}
	if data.BasePrice != nil {
		p.BasePrice = *data.BasePrice
	}
	if data.Active != nil {
		p.Active = *data.Active
	}
	f.byId[id] = p
	return nil
}

func (f *fakeProducts) Delete(_ context.Context, id string) error {
	delete(f.byId, id)
	return nil
}

type fakeOrders struct {
	byId map[string]model.Order
	// failFor makes Create fail for these supplier ids.
	failFor map[string]bool
}

func (f *fakeOrders) Create(_ context.Context, o model.Order) (model.Order, error) {
	if f.failFor[o.SupplierId] {
		return model.Order{}, errors.New("deadline exceeded")
	}
	stamp(&o.Meta, "order")
	f.byId[o.Id] = o
	return o, nil
}

func (f *fakeOrders) GetById(_ context.Context, id string) (*model.Order, error) {
	o, ok := f.byId[id]
	if !ok {
		return nil, ierr.NotFound
	}
	return &o, nil
}

func (f *fakeOrders) List(_ context.Context, filter model.OrderFilter) ([]model.Order, error) {
	out := []model.Order{}
	for _, o := range f.byId {
		if (filter.BuyerId != "" && o.BuyerId != filter.BuyerId) ||
			(filter.SupplierId != "" && o.SupplierId != filter.SupplierId) ||
			(filter.Status != "" && o.Status != filter.Status) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, id string, status model.OrderStatus) error {
	o, ok := f.byId[id]
	if !ok {
		return ierr.NotFound
	}
	o.Status = status
	f.byId[id] = o
	return nil
}

func (f *fakeOrders) Delete(_ context.Context, id string) error {
	delete(f.byId, id)
	return nil
}

type fakeAvailability struct{ byId map[string]model.Availability }

func (f *fakeAvailability) Create(_ context.Context, s model.Availability) (model.Availability, error) {
	stamp(&s.Meta, "slot")
	f.byId[s.Id] = s
	return s, nil
}

func (f *fakeAvailability) GetById(_ context.Context, id string) (*model.Availability, error) {
	s, ok := f.byId[id]
	if !ok {
		return nil, ierr.NotFound
	}
	return &s, nil
}

func (f *fakeAvailability) List(_ context.Context, providerId, from, to string) ([]model.Availability, error) {
	out := []model.Availability{}
	for _, s := range f.byId {
		if s.ProviderId != providerId || (from != "" && s.Date < from) || (to != "" && s.Date > to) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeAvailability) ListByDate(_ context.Context, date, serviceType string) ([]model.Availability, error) {
	out := []model.Availability{}
	for _, s := range f.byId {
		if s.Date == date && (serviceType == "" || s.ServiceType == serviceType) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeAvailability) Delete(_ context.Context, id string) error {
	delete(f.byId, id)
	return nil
}

type fakeBookings struct{ byId map[string]model.Booking }

func (f *fakeBookings) Create(_ context.Context, b model.Booking) (model.Booking, error) {
	stamp(&b.Meta, "booking")
	f.byId[b.Id] = b
	return b, nil
}

func (f *fakeBookings) GetById(_ context.Context, id string) (*model.Booking, error) {
	b, ok := f.byId[id]
	if !ok {
		return nil, ierr.NotFound
	}
	return &b, nil
}

func (f *fakeBookings) List(_ context.Context, filter model.BookingFilter) ([]model.Booking, error) {
	out := []model.Booking{}
	for _, b := range f.byId {
		if (filter.ProducerId != "" && b.ProducerId != filter.ProducerId) ||
			(filter.ProviderId != "" && b.ProviderId != filter.ProviderId) ||
			(filter.From != "" && b.Date < filter.From) ||
			(filter.To != "" && b.Date > filter.To) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookings) ListByDate(_ context.Context, date string) ([]model.Booking, error) {
	return f.List(context.Background(), model.BookingFilter{From: date, To: date})
}

func (f *fakeBookings) UpdateStatus(_ context.Context, id string, status model.BookingStatus) error {
	b, ok := f.byId[id]
	if !ok {
		return ierr.NotFound
	}
	b.Status = status
	f.byId[id] = b
	return nil
}

type fakePromotions struct{ byId map[string]model.Promotion }

func (f *fakePromotions) Create(_ context.Context, p model.Promotion) (model.Promotion, error) {
	stamp(&p.Meta, "promo")
	f.byId[p.Id] = p
	return p, nil
}

func (f *fakePromotions) GetById(_ context.Context, id string) (*model.Promotion, error) {
	p, ok := f.byId[id]
	if !ok {
		return nil, ierr.NotFound
	}
	return &p, nil
}

func (f *fakePromotions) List(_ context.Context, supplierId string, activeOnly bool) ([]model.Promotion, error) {
	out := []model.Promotion{}
	for _, p := range f.byId {
		if (supplierId != "" && p.SupplierId != supplierId) || (activeOnly && !p.Active) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePromotions) SetActive(_ context.Context, id string, active bool) error {
	p, ok := f.byId[id]
	if !ok {
		return ierr.NotFound
	}
	p.Active = active
	f.byId[id] = p
	return nil
}

func (f *fakePromotions) Delete(_ context.Context, id string) error {
	delete(f.byId, id)
	return nil
}

type fakeSawis struct{ byId map[string]model.SawisReturn }

func sawisId(producerId, period string) string { return producerId + "_" + period }

func (f *fakeSawis) Upsert(_ context.Context, r model.SawisReturn) (model.SawisReturn, error) {
	r.Id = sawisId(r.ProducerId, r.Period)
	r.Touch(fixedNow)
	f.byId[r.Id] = r
	return r, nil
}

func (f *fakeSawis) GetById(_ context.Context, id string) (*model.SawisReturn, error) {
	r, ok := f.byId[id]
	if !ok {
		return nil, ierr.NotFound
	}
	return &r, nil
}

func (f *fakeSawis) GetByPeriod(ctx context.Context, producerId, period string) (*model.SawisReturn, error) {
	return f.GetById(ctx, sawisId(producerId, period))
}

func (f *fakeSawis) List(_ context.Context, producerId, year string) ([]model.SawisReturn, error) {
	out := []model.SawisReturn{}
	for _, r := range f.byId {
		if r.ProducerId == producerId && (year == "" || strings.HasPrefix(r.Period, year+"-")) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out, nil
}

func (f *fakeSawis) ListByPeriod(_ context.Context, period string) ([]model.SawisReturn, error) {
	out := []model.SawisReturn{}
	for _, r := range f.byId {
		if r.Period == period {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeSawis) SetStatus(_ context.Context, id string, status model.SawisStatus, by string) error {
	r, ok := f.byId[id]
	if !ok {
		return ierr.NotFound
	}
	r.Status = status
	r.SubmittedBy = by
	f.byId[id] = r
	return nil
}

type fakeOffenders struct{ byId map[string]model.Offender }

func (f *fakeOffenders) Create(_ context.Context, o model.Offender) (model.Offender, error) {
	stamp(&o.Meta, "offender")
	f.byId[o.Id] = o
	return o, nil
}

func (f *fakeOffenders) GetById(_ context.Context, id string) (*model.Offender, error) {
	o, ok := f.byId[id]
	if !ok {
		return nil, ierr.NotFound
	}
	return &o, nil
}

func (f *fakeOffenders) List(_ context.Context) ([]model.Offender, error) {
	out := []model.Offender{}
	for _, o := range f.byId {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeOffenders) Delete(_ context.Context, id string) error {
	delete(f.byId, id)
	return nil
}

type fakeBulkWine struct{ byId map[string]model.BulkWineListing }

func (f *fakeBulkWine) Create(_ context.Context, l model.BulkWineListing) (model.BulkWineListing, error) {
	stamp(&l.Meta, "listing")
	f.byId[l.Id] = l
	return l, nil
}

func (f *fakeBulkWine) GetById(_ context.Context, id string) (*model.BulkWineListing, error) {
	l, ok := f.byId[id]
	if !ok {
		return nil, ierr.NotFound
	}
	return &l, nil
}

func (f *fakeBulkWine) List(_ context.Context, filter model.BulkWineFilter) ([]model.BulkWineListing, error) {
	out := []model.BulkWineListing{}
	for _, l := range f.byId {
		if (filter.Status != "" && l.Status != filter.Status) ||
			(filter.Cultivar != "" && !strings.EqualFold(l.Cultivar, filter.Cultivar)) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeBulkWine) Update(_ context.Context, id string, data model.BulkWineUpdate) error {
	l, ok := f.byId[id]
	if !ok {
		return ierr.NotFound
	}
	if data.Status != nil {
		l.Status = *data.Status
	}
	if data.VolumeLitres != nil {
		l.VolumeLitres = *data.VolumeLitres
	}
	f.byId[id] = l
	return nil
}

func (f *fakeBulkWine) Delete(_ context.Context, id string) error {
	delete(f.byId, id)
	return nil
}

type fakeRFQs struct{ byId map[string]model.RFQ }

func (f *fakeRFQs) Create(_ context.Context, r model.RFQ) (model.RFQ, error) {
	stamp(&r.Meta, "rfq")
	f.byId[r.Id] = r
	return r, nil
}

func (f *fakeRFQs) GetById(_ context.Context, id string) (*model.RFQ, error) {
	r, ok := f.byId[id]
	if !ok {
		return nil, ierr.NotFound
	}
	return &r, nil
}

func (f *fakeRFQs) List(_ context.Context, producerId string, status model.RFQStatus) ([]model.RFQ, error) {
	out := []model.RFQ{}
	for _, r := range f.byId {
		if (producerId != "" && r.ProducerId != producerId) || (status != "" && r.Status != status) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRFQs) SetStatus(_ context.Context, id string, status model.RFQStatus) error {
	r, ok := f.byId[id]
	if !ok {
		return ierr.NotFound
	}
	r.Status = status
	f.byId[id] = r
	return nil
}

func (f *fakeRFQs) Award(_ context.Context, id, quoteId string) error {
	r, ok := f.byId[id]
	if !ok {
		return ierr.NotFound
	}
	r.Status = model.RFQStatusAwarded
	r.AwardedQuoteId = quoteId
	f.byId[id] = r
	return nil
}

type fakeQuotes struct{ byId map[string]model.Quote }

func (f *fakeQuotes) Create(_ context.Context, q model.Quote) (model.Quote, error) {
	stamp(&q.Meta, "quote")
	f.byId[q.Id] = q
	return q, nil
}

func (f *fakeQuotes) GetById(_ context.Context, id string) (*model.Quote, error) {
	q, ok := f.byId[id]
	if !ok {
		return nil, ierr.NotFound
	}
	return &q, nil
}

func (f *fakeQuotes) ListByRFQ(_ context.Context, rfqId string) ([]model.Quote, error) {
	out := []model.Quote{}
	for _, q := range f.byId {
		if q.RFQId == rfqId {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeQuotes) ListBySupplier(_ context.Context, supplierId string) ([]model.Quote, error) {
	out := []model.Quote{}
	for _, q := range f.byId {
		if q.SupplierId == supplierId {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeQuotes) SetStatus(_ context.Context, id string, status model.QuoteStatus) error {
	q, ok := f.byId[id]
	if !ok {
		return ierr.NotFound
	}
	q.Status = status
	f.byId[id] = q
	return nil
}

type fakeNotifications struct{ queued []model.Notification }

func (f *fakeNotifications) Create(_ context.Context, n model.Notification) (model.Notification, error) {
	stamp(&n.Meta, "notification")
	f.queued = append(f.queued, n)
	return n, nil
}

func (f *fakeNotifications) NotifyOnAdded(ctx context.Context) <-chan notificationRepository.NotificationEvent {
	ch := make(chan notificationRepository.NotificationEvent)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch
}

func (f *fakeNotifications) MarkSent(context.Context, string) error { return nil }

func (f *fakeNotifications) MarkFailed(context.Context, string, error) error { return nil }

func (f *fakeNotifications) kinds() []model.NotificationKind {
	out := []model.NotificationKind{}
	for _, n := range f.queued {
		out = append(out, n.Kind)
	}
	return out
}

// memoryCache records invalidations so tests can assert on them.
type memoryCache struct {
	values      map[string]interface{}
	invalidated []string
}

func (c *memoryCache) Get(_ context.Context, key string, dst interface{}) bool {
	return false
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}) {
	c.values[key] = value
}

func (c *memoryCache) Invalidate(_ context.Context, prefixes ...string) {
	c.invalidated = append(c.invalidated, prefixes...)
}

type fixture struct {
	*Actions
	users         *fakeUsers
	products      *fakeProducts
	orders        *fakeOrders
	availability  *fakeAvailability
	bookings      *fakeBookings
	promotions    *fakePromotions
	sawis         *fakeSawis
	offenders     *fakeOffenders
	bulkWine      *fakeBulkWine
	rfqs          *fakeRFQs
	quotes        *fakeQuotes
	notifications *fakeNotifications
	cache         *memoryCache
}

func newFixture(opts ...Option) *fixture {
	f := &fixture{
		users:         &fakeUsers{byId: map[string]model.User{}},
		products:      &fakeProducts{byId: map[string]model.Product{}},
		orders:        &fakeOrders{byId: map[string]model.Order{}, failFor: map[string]bool{}},
		availability:  &fakeAvailability{byId: map[string]model.Availability{}},
		bookings:      &fakeBookings{byId: map[string]model.Booking{}},
		promotions:    &fakePromotions{byId: map[string]model.Promotion{}},
		sawis:         &fakeSawis{byId: map[string]model.SawisReturn{}},
		offenders:     &fakeOffenders{byId: map[string]model.Offender{}},
		bulkWine:      &fakeBulkWine{byId: map[string]model.BulkWineListing{}},
		rfqs:          &fakeRFQs{byId: map[string]model.RFQ{}},
		quotes:        &fakeQuotes{byId: map[string]model.Quote{}},
		notifications: &fakeNotifications{},
		cache:         &memoryCache{values: map[string]interface{}{}},
	}

	repos := Repositories{
		Users:         f.users,
		Products:      f.products,
		Orders:        f.orders,
		Availability:  f.availability,
		Bookings:      f.bookings,
		Promotions:    f.promotions,
		Sawis:         f.sawis,
		Offenders:     f.offenders,
		BulkWine:      f.bulkWine,
		RFQs:          f.rfqs,
		Quotes:        f.quotes,
		Notifications: f.notifications,
	}
	f.Actions = New(repos, f.cache, append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)...)
	return f
}

// addUser stores an active user and returns the actor for it.
func (f *fixture) addUser(id string, role model.Role) Actor {
	u := model.User{
		Email:       id + "@example.co.za",
		Name:        strings.ToUpper(id[:1]) + id[1:],
		CompanyName: id + " (Pty) Ltd",
		Role:        role,
		Status:      model.UserStatusActive,
	}
	u.Id = id
	f.users.byId[id] = u
	return Actor{Id: id, Email: u.Email, Role: role}
}

func (f *fixture) addProduct(p model.Product) model.Product {
	p.Active = true
	f.products.byId[p.Id] = p
	return p
}
