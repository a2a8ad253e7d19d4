// Package actions holds the marketplace workflows behind the HTTP API. Each
// action checks the caller's role, validates the input, writes the affected
// documents and drops the cached listings that changed.
package actions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ierr "winespace/internal/errors"
	"winespace/internal/gpt"
	"winespace/internal/handler/catalogimport"
	"winespace/internal/handler/orderparse"
	"winespace/internal/model"
	"winespace/internal/pagecache"
	availabilityRepository "winespace/internal/repository/availability"
	bookingRepository "winespace/internal/repository/booking"
	bulkWineRepository "winespace/internal/repository/bulkwine"
	notificationRepository "winespace/internal/repository/notification"
	offenderRepository "winespace/internal/repository/offender"
	orderRepository "winespace/internal/repository/order"
	productRepository "winespace/internal/repository/product"
	promotionRepository "winespace/internal/repository/promotion"
	quoteRepository "winespace/internal/repository/quote"
	rfqRepository "winespace/internal/repository/rfq"
	sawisRepository "winespace/internal/repository/sawis"
	userRepository "winespace/internal/repository/user"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Result is what every action hands back to the caller.
type Result struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func ok(message string, data interface{}) Result {
	return Result{Success: true, Message: message, Data: data}
}

// Actor is the signed-in user an action runs for.
type Actor struct {
	Id    string
	Email string
	Role  model.Role
}

func (a Actor) Is(roles ...model.Role) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}

func (a Actor) require(roles ...model.Role) error {
	if a.Id == "" {
		return ierr.Unauthorized
	}
	if !a.Is(roles...) {
		return ierr.Forbiddenf("your role cannot perform this action")
	}
	return nil
}

// Repositories groups the data access the actions need.
type Repositories struct {
	Users         userRepository.IRepository
	Products      productRepository.IRepository
	Orders        orderRepository.IRepository
	Availability  availabilityRepository.IRepository
	Bookings      bookingRepository.IRepository
	Promotions    promotionRepository.IRepository
	Sawis         sawisRepository.IRepository
	Offenders     offenderRepository.IRepository
	BulkWine      bulkWineRepository.IRepository
	RFQs          rfqRepository.IRepository
	Quotes        quoteRepository.IRepository
	Notifications notificationRepository.IRepository
}

type Option func(*Actions)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *Actions) { a.now = now }
}

func WithCatalogImport(h *catalogimport.Handler) Option {
	return func(a *Actions) { a.catalogImport = h }
}

func WithOrderParser(prompter gpt.Prompter) Option {
	return func(a *Actions) { a.orderParser = orderparse.New(prompter) }
}

type Actions struct {
	repos         Repositories
	cache         pagecache.Cache
	catalogImport *catalogimport.Handler
	orderParser   *orderparse.Handler
	now           func() time.Time
}

func New(repos Repositories, cache pagecache.Cache, opts ...Option) *Actions {
	a := &Actions{
		repos: repos,
		cache: cache,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.cache == nil {
		a.cache = pagecache.Noop{}
	}
	return a
}

func (a *Actions) today() string {
	return a.now().UTC().Format(model.DateLayout)
}

func (a *Actions) invalidate(ctx context.Context, prefixes ...string) {
	a.cache.Invalidate(ctx, append(prefixes, pagecache.Dashboard)...)
}

// cached serves a listing from the page cache, loading and storing it on a miss.
func cached[T any](ctx context.Context, a *Actions, key string, load func() (T, error)) (T, error) {
	var v T
	if a.cache.Get(ctx, key, &v) {
		return v, nil
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	a.cache.Set(ctx, key, v)
	return v, nil
}

// notify queues an email. A failure is logged and never fails the action.
func (a *Actions) notify(ctx context.Context, kind model.NotificationKind, userId, subject string, data map[string]interface{}) {
	user, err := a.repos.Users.GetById(ctx, userId)
	if err != nil {
		log.Error().Err(err).Msgf("notify %s: recipient lookup failed, userId: %s", kind, userId)
		return
	}
	a.notifyEmail(ctx, kind, user.Email, subject, data)
}

func (a *Actions) notifyEmail(ctx context.Context, kind model.NotificationKind, to, subject string, data map[string]interface{}) {
	if to == "" {
		return
	}
	_, err := a.repos.Notifications.Create(ctx, model.Notification{
		Kind:    kind,
		To:      to,
		Subject: subject,
		Data:    data,
	})
	if err != nil {
		log.Error().Err(err).Msgf("notify %s: failed to queue, to: %s", kind, to)
	}
}

// displayName is the company name, falling back to the person's name.
func (a *Actions) displayName(ctx context.Context, userId string) string {
	u, err := a.repos.Users.GetById(ctx, userId)
	if err != nil {
		return ""
	}
	if u.CompanyName != "" {
		return u.CompanyName
	}
	return u.Name
}

func newReference(prefix string) string {
	return prefix + "-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// notFound turns a repository NotFound into a message naming the entity.
func notFound(err error, entity string) error {
	if errors.Is(err, ierr.NotFound) {
		return fmt.Errorf("%s %w", entity, ierr.NotFound)
	}
	return err
}
