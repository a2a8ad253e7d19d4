package actions

import (
	"context"
	"fmt"

	"winespace/internal/checkout"
	ierr "winespace/internal/errors"
	"winespace/internal/model"
	"winespace/internal/pagecache"

	"github.com/rs/zerolog/log"
)

type CheckoutInput struct {
	Lines  []checkout.Line   `json:"lines" binding:"required,min=1,dive"`
	Notes  string            `json:"notes"`
	Source model.OrderSource `json:"source"`
}

type SupplierFailure struct {
	SupplierId string `json:"supplierId"`
	Reason     string `json:"reason"`
}

type CheckoutSummary struct {
	Orders     []model.Order        `json:"orders"`
	Failed     []SupplierFailure    `json:"failed"`
	LineErrors []checkout.LineError `json:"lineErrors"`
}

// Checkout places one order per supplier in the cart. Orders are written one
// by one; when a write fails the orders already placed stay in place and the
// failure is reported alongside them.
func (a *Actions) Checkout(ctx context.Context, actor Actor, in CheckoutInput) (Result, error) {
	if err := actor.require(model.RoleProducer); err != nil {
		return Result{}, err
	}
	if len(in.Lines) == 0 {
		return Result{}, ierr.Invalidf("your cart is empty")
	}

	source := in.Source
	if source != model.OrderSourceMessage {
		source = model.OrderSourceCart
	}

	ids := make([]string, 0, len(in.Lines))
	for _, l := range in.Lines {
		ids = append(ids, l.ProductId)
	}
	products, err := a.repos.Products.GetByIds(ctx, ids)
	if err != nil {
		return Result{}, err
	}

	drafts, lineErrors := checkout.Build(in.Lines, products, a.pricerFor(ctx, actor.Id), a.now())
	if len(drafts) == 0 {
		msg := "nothing in your cart can be ordered"
		if len(lineErrors) > 0 {
			msg = lineErrors[0].Reason
		}
		return Result{}, ierr.Invalidf(msg)
	}

	buyerName := a.displayName(ctx, actor.Id)
	summary := CheckoutSummary{Orders: []model.Order{}, Failed: []SupplierFailure{}, LineErrors: lineErrors}
	for _, d := range drafts {
		order, err := a.repos.Orders.Create(ctx, model.Order{
			Reference:  newReference("ORD"),
			BuyerId:    actor.Id,
			SupplierId: d.SupplierId,
			Items:      d.Items,
			Total:      d.Total,
			Status:     model.OrderStatusPending,
			Notes:      in.Notes,
			Source:     source,
		})
		if err != nil {
			log.Error().Err(err).Msgf("checkout: order for supplier %s failed, buyer: %s", d.SupplierId, actor.Id)
			summary.Failed = append(summary.Failed, SupplierFailure{SupplierId: d.SupplierId, Reason: "the order could not be saved"})
			continue
		}
		summary.Orders = append(summary.Orders, order)

		a.notify(ctx, model.NotifyOrderCreated, order.SupplierId, "New order "+order.Reference, map[string]interface{}{
			"reference": order.Reference,
			"buyerName": buyerName,
			"total":     order.Total,
			"items":     orderItemsData(order.Items),
			"path":      "/orders/" + order.Id,
		})
	}

	if len(summary.Orders) > 0 {
		a.invalidate(ctx, pagecache.Orders)
	}

	res := ok(fmt.Sprintf("%d order(s) placed", len(summary.Orders)), summary)
	if len(summary.Failed) > 0 || len(lineErrors) > 0 {
		res.Success = len(summary.Orders) > 0 && len(summary.Failed) == 0
		res.Message = fmt.Sprintf("%d order(s) placed, %d supplier(s) failed, %d line(s) skipped",
			len(summary.Orders), len(summary.Failed), len(lineErrors))
	}
	if len(summary.Orders) == 0 {
		return res, fmt.Errorf("checkout failed for every supplier")
	}
	return res, nil
}

func orderItemsData(items []model.OrderItem) []interface{} {
	out := make([]interface{}, 0, len(items))
	for _, it := range items {
		out = append(out, map[string]interface{}{
			"name":      it.Name,
			"quantity":  it.Quantity,
			"unitPrice": it.UnitPrice,
			"lineTotal": it.LineTotal,
		})
	}
	return out
}

type ParseMessageInput struct {
	SupplierId string `json:"supplierId" form:"supplierId" binding:"required"`
	Message    string `json:"message" form:"message" binding:"required"`
}

// ParseOrderMessage reads a free text order against one supplier's catalogue.
func (a *Actions) ParseOrderMessage(ctx context.Context, actor Actor, in ParseMessageInput) (Result, error) {
	if err := actor.require(model.RoleProducer, model.RoleSupplier); err != nil {
		return Result{}, err
	}
	if a.orderParser == nil {
		return Result{}, fmt.Errorf("order parsing is not configured")
	}
	if actor.Is(model.RoleSupplier) && in.SupplierId != actor.Id {
		return Result{}, ierr.Forbiddenf("you can only parse orders for your own catalogue")
	}

	catalog, err := a.repos.Products.List(ctx, model.ProductFilter{SupplierId: in.SupplierId, ActiveOnly: true})
	if err != nil {
		return Result{}, err
	}
	if len(catalog) == 0 {
		return Result{}, ierr.Invalidf("this supplier has no products")
	}

	parsed, err := a.orderParser.Parse(ctx, in.Message, catalog)
	if err != nil {
		return Result{}, err
	}
	return ok(fmt.Sprintf("%d line(s) matched, %d unmatched", len(parsed.Matched), len(parsed.Unmatched)), parsed), nil
}

// ListOrders returns the orders the actor is a party to; admins see all.
func (a *Actions) ListOrders(ctx context.Context, actor Actor, status model.OrderStatus) (Result, error) {
	f := model.OrderFilter{Status: status}
	switch actor.Role {
	case model.RoleProducer:
		f.BuyerId = actor.Id
	case model.RoleSupplier:
		f.SupplierId = actor.Id
	case model.RoleAdmin:
	default:
		return Result{}, ierr.Forbiddenf("your role has no orders")
	}
	if status != "" && !status.IsValid() {
		return Result{}, ierr.Invalidf("unknown status " + string(status))
	}

	orders, err := a.repos.Orders.List(ctx, f)
	if err != nil {
		return Result{}, err
	}
	return ok("", orders), nil
}

func (a *Actions) orderFor(ctx context.Context, actor Actor, id string) (*model.Order, error) {
	o, err := a.repos.Orders.GetById(ctx, id)
	if err != nil {
		return nil, notFound(err, "order")
	}
	if !actor.Is(model.RoleAdmin) && o.BuyerId != actor.Id && o.SupplierId != actor.Id {
		return nil, ierr.Forbiddenf("you are not a party to this order")
	}
	return o, nil
}

func (a *Actions) GetOrder(ctx context.Context, actor Actor, id string) (Result, error) {
	o, err := a.orderFor(ctx, actor, id)
	if err != nil {
		return Result{}, err
	}
	return ok("", o), nil
}

type OrderStatusInput struct {
	Status model.OrderStatus `json:"status" form:"status" binding:"required"`
}

// SetOrderStatus lets the supplier or an admin move an order to any status.
func (a *Actions) SetOrderStatus(ctx context.Context, actor Actor, id string, status model.OrderStatus) (Result, error) {
	if err := actor.require(model.RoleSupplier, model.RoleAdmin); err != nil {
		return Result{}, err
	}
	if !status.IsValid() {
		return Result{}, ierr.Invalidf("unknown status " + string(status))
	}

	o, err := a.orderFor(ctx, actor, id)
	if err != nil {
		return Result{}, err
	}
	if actor.Is(model.RoleSupplier) && o.SupplierId != actor.Id {
		return Result{}, ierr.Forbiddenf("only the supplier can update this order")
	}

	if err := a.repos.Orders.UpdateStatus(ctx, id, status); err != nil {
		return Result{}, notFound(err, "order")
	}
	a.invalidate(ctx, pagecache.Orders)

	if o.Status != status {
		a.notify(ctx, model.NotifyOrderStatus, o.BuyerId, fmt.Sprintf("Order %s is %s", o.Reference, status), map[string]interface{}{
			"reference":    o.Reference,
			"status":       string(status),
			"supplierName": a.displayName(ctx, o.SupplierId),
			"total":        o.Total,
			"path":         "/orders/" + o.Id,
		})
	}

	o.Status = status
	return ok("Order status updated", o), nil
}

func (a *Actions) DeleteOrder(ctx context.Context, actor Actor, id string) (Result, error) {
	if err := actor.require(model.RoleAdmin); err != nil {
		return Result{}, err
	}
	if _, err := a.repos.Orders.GetById(ctx, id); err != nil {
		return Result{}, notFound(err, "order")
	}
	if err := a.repos.Orders.Delete(ctx, id); err != nil {
		return Result{}, err
	}
	a.invalidate(ctx, pagecache.Orders)
	return ok("Order deleted", nil), nil
}
