package actions

import (
	"context"
	"fmt"
	"strings"
	"time"

	ierr "winespace/internal/errors"
	"winespace/internal/model"
	"winespace/internal/pagecache"
	"winespace/internal/pricing"

	"github.com/rs/zerolog/log"
)

type RFQInput struct {
	Title    string          `json:"title" binding:"required"`
	Category string          `json:"category"`
	Items    []model.RFQItem `json:"items" binding:"required,min=1"`
	Deadline time.Time       `json:"deadline"`
}

func (a *Actions) CreateRFQ(ctx context.Context, actor Actor, in RFQInput) (Result, error) {
	if err := actor.require(model.RoleProducer); err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return Result{}, ierr.Invalidf("title is required")
	}
	if len(in.Items) == 0 {
		return Result{}, ierr.Invalidf("add at least one item")
	}
	for _, it := range in.Items {
		if strings.TrimSpace(it.Description) == "" || it.Quantity <= 0 {
			return Result{}, ierr.Invalidf("every item needs a description and a positive quantity")
		}
	}
	if !in.Deadline.IsZero() && !in.Deadline.After(a.now()) {
		return Result{}, ierr.Invalidf("the deadline must be in the future")
	}

	rfq, err := a.repos.RFQs.Create(ctx, model.RFQ{
		ProducerId: actor.Id,
		Title:      strings.TrimSpace(in.Title),
		Category:   in.Category,
		Items:      in.Items,
		Deadline:   in.Deadline.UTC(),
		Status:     model.RFQStatusOpen,
	})
	if err != nil {
		return Result{}, err
	}

	a.invalidate(ctx, pagecache.RFQs)
	return ok("Request for quotation published", rfq), nil
}

// ListRFQs: producers see their own requests, suppliers the open ones, admins all.
func (a *Actions) ListRFQs(ctx context.Context, actor Actor) (Result, error) {
	var (
		rfqs []model.RFQ
		err  error
	)
	switch actor.Role {
	case model.RoleProducer:
		rfqs, err = a.repos.RFQs.List(ctx, actor.Id, "")
	case model.RoleSupplier:
		rfqs, err = a.repos.RFQs.List(ctx, "", model.RFQStatusOpen)
		if err == nil {
			now := a.now()
			open := []model.RFQ{}
			for _, r := range rfqs {
				if r.Open(now) {
					open = append(open, r)
				}
			}
			rfqs = open
		}
	case model.RoleAdmin:
		rfqs, err = a.repos.RFQs.List(ctx, "", "")
	default:
		return Result{}, ierr.Forbiddenf("your role cannot see requests for quotation")
	}
	if err != nil {
		return Result{}, err
	}
	return ok("", rfqs), nil
}

func (a *Actions) ownedRFQ(ctx context.Context, actor Actor, id string) (*model.RFQ, error) {
	if err := actor.require(model.RoleProducer, model.RoleAdmin); err != nil {
		return nil, err
	}
	rfq, err := a.repos.RFQs.GetById(ctx, id)
	if err != nil {
		return nil, notFound(err, "request for quotation")
	}
	if !actor.Is(model.RoleAdmin) && rfq.ProducerId != actor.Id {
		return nil, ierr.Forbiddenf("this request belongs to another producer")
	}
	return rfq, nil
}

func (a *Actions) CloseRFQ(ctx context.Context, actor Actor, id string) (Result, error) {
	rfq, err := a.ownedRFQ(ctx, actor, id)
	if err != nil {
		return Result{}, err
	}
	if rfq.Status != model.RFQStatusOpen {
		return Result{}, ierr.Invalidf("the request is already " + string(rfq.Status))
	}
	if err := a.repos.RFQs.SetStatus(ctx, id, model.RFQStatusClosed); err != nil {
		return Result{}, notFound(err, "request for quotation")
	}

	a.invalidate(ctx, pagecache.RFQs)
	rfq.Status = model.RFQStatusClosed
	return ok("Request closed", rfq), nil
}

type QuoteInput struct {
	Items []model.QuoteItem `json:"items" binding:"required,min=1"`
	Notes string            `json:"notes"`
}

// SubmitQuote prices an open request. Line totals and the total are computed here.
func (a *Actions) SubmitQuote(ctx context.Context, actor Actor, rfqId string, in QuoteInput) (Result, error) {
	if err := actor.require(model.RoleSupplier); err != nil {
		return Result{}, err
	}
	rfq, err := a.repos.RFQs.GetById(ctx, rfqId)
	if err != nil {
		return Result{}, notFound(err, "request for quotation")
	}
	if !rfq.Open(a.now()) {
		return Result{}, ierr.Invalidf("this request no longer accepts quotes")
	}
	if len(in.Items) == 0 {
		return Result{}, ierr.Invalidf("quote at least one item")
	}

	items := make([]model.QuoteItem, 0, len(in.Items))
	total := 0.0
	for _, it := range in.Items {
		if strings.TrimSpace(it.Description) == "" || it.Quantity <= 0 || it.UnitPrice < 0 {
			return Result{}, ierr.Invalidf("every line needs a description, a positive quantity and a price")
		}
		it.LineTotal = pricing.Round(it.UnitPrice * float64(it.Quantity))
		total += it.LineTotal
		items = append(items, it)
	}

	quote, err := a.repos.Quotes.Create(ctx, model.Quote{
		RFQId:      rfqId,
		SupplierId: actor.Id,
		Items:      items,
		Total:      pricing.Round(total),
		Notes:      in.Notes,
		Status:     model.QuoteStatusSubmitted,
	})
	if err != nil {
		return Result{}, err
	}

	a.invalidate(ctx, pagecache.RFQs)
	a.notify(ctx, model.NotifyQuoteSubmitted, rfq.ProducerId, "New quote for "+rfq.Title, map[string]interface{}{
		"rfqTitle":     rfq.Title,
		"supplierName": a.displayName(ctx, actor.Id),
		"total":        quote.Total,
		"path":         "/rfqs/" + rfq.Id,
	})
	return ok("Quote submitted", quote), nil
}

// ListQuotes: the owner of the request sees every quote, a supplier only its own.
func (a *Actions) ListQuotes(ctx context.Context, actor Actor, rfqId string) (Result, error) {
	if actor.Id == "" {
		return Result{}, ierr.Unauthorized
	}
	rfq, err := a.repos.RFQs.GetById(ctx, rfqId)
	if err != nil {
		return Result{}, notFound(err, "request for quotation")
	}

	quotes, err := a.repos.Quotes.ListByRFQ(ctx, rfqId)
	if err != nil {
		return Result{}, err
	}

	if actor.Is(model.RoleAdmin) || rfq.ProducerId == actor.Id {
		return ok("", quotes), nil
	}
	if !actor.Is(model.RoleSupplier) {
		return Result{}, ierr.Forbiddenf("this request belongs to another producer")
	}

	own := []model.Quote{}
	for _, q := range quotes {
		if q.SupplierId == actor.Id {
			own = append(own, q)
		}
	}
	return ok("", own), nil
}

// AcceptQuote awards the request to one quote: the quote is accepted, the
// others rejected, the request marked awarded and an order placed with the
// supplier. Each step is its own write; a failure stops the sequence.
func (a *Actions) AcceptQuote(ctx context.Context, actor Actor, quoteId string) (Result, error) {
	if err := actor.require(model.RoleProducer, model.RoleAdmin); err != nil {
		return Result{}, err
	}

	quote, err := a.repos.Quotes.GetById(ctx, quoteId)
	if err != nil {
		return Result{}, notFound(err, "quote")
	}
	rfq, err := a.ownedRFQ(ctx, actor, quote.RFQId)
	if err != nil {
		return Result{}, err
	}
	if rfq.Status == model.RFQStatusAwarded {
		return Result{}, ierr.Invalidf("this request was already awarded")
	}
	if quote.Status != model.QuoteStatusSubmitted {
		return Result{}, ierr.Invalidf("the quote is " + string(quote.Status))
	}

	if err := a.repos.Quotes.SetStatus(ctx, quote.Id, model.QuoteStatusAccepted); err != nil {
		return Result{}, notFound(err, "quote")
	}

	siblings, err := a.repos.Quotes.ListByRFQ(ctx, rfq.Id)
	if err != nil {
		return Result{}, err
	}
	for _, q := range siblings {
		if q.Id == quote.Id || q.Status != model.QuoteStatusSubmitted {
			continue
		}
		if err := a.repos.Quotes.SetStatus(ctx, q.Id, model.QuoteStatusRejected); err != nil {
			log.Error().Err(err).Msgf("accept quote: failed to reject sibling %s", q.Id)
		}
	}

	if err := a.repos.RFQs.Award(ctx, rfq.Id, quote.Id); err != nil {
		return Result{}, notFound(err, "request for quotation")
	}

	items := make([]model.OrderItem, 0, len(quote.Items))
	for _, it := range quote.Items {
		items = append(items, model.OrderItem{
			Name:      it.Description,
			Quantity:  it.Quantity,
			Unit:      it.Unit,
			UnitPrice: it.UnitPrice,
			LineTotal: it.LineTotal,
		})
	}
	order, err := a.repos.Orders.Create(ctx, model.Order{
		Reference:  newReference("ORD"),
		BuyerId:    rfq.ProducerId,
		SupplierId: quote.SupplierId,
		Items:      items,
		Total:      quote.Total,
		Status:     model.OrderStatusOrderReceived,
		Notes:      fmt.Sprintf("Awarded from request %q", rfq.Title),
		Source:     model.OrderSourceQuote,
		QuoteId:    quote.Id,
	})
	if err != nil {
		return Result{}, err
	}

	a.invalidate(ctx, pagecache.RFQs, pagecache.Orders)
	a.notify(ctx, model.NotifyQuoteAccepted, quote.SupplierId, "Your quote for "+rfq.Title+" was accepted", map[string]interface{}{
		"rfqTitle":       rfq.Title,
		"orderReference": order.Reference,
		"total":          order.Total,
		"path":           "/orders/" + order.Id,
	})
	return ok("Quote accepted and order "+order.Reference+" created", order), nil
}
