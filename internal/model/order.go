package model

type OrderStatus string

const (
	OrderStatusPending       OrderStatus = "Pending"
	OrderStatusQuoteRequest  OrderStatus = "Quote Request"
	OrderStatusOrderReceived OrderStatus = "Order Received"
	OrderStatusProcessing    OrderStatus = "Processing"
	OrderStatusShipped       OrderStatus = "Shipped"
	OrderStatusDelivered     OrderStatus = "Delivered"
	OrderStatusCancelled     OrderStatus = "Cancelled"
)

var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusQuoteRequest,
	OrderStatusOrderReceived,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// IsValid only checks membership; any status may follow any other.
func (s OrderStatus) IsValid() bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type OrderSource string

const (
	OrderSourceCart    OrderSource = "cart"
	OrderSourceQuote   OrderSource = "quote"
	OrderSourceMessage OrderSource = "message"
)

type OrderItem struct {
	ProductId string  `firestore:"productId,omitempty" json:"productId,omitempty"`
	Name      string  `firestore:"name" json:"name"`
	Quantity  int     `firestore:"quantity" json:"quantity"`
	Unit      string  `firestore:"unit,omitempty" json:"unit,omitempty"`
	UnitPrice float64 `firestore:"unitPrice" json:"unitPrice"`
	LineTotal float64 `firestore:"lineTotal" json:"lineTotal"`
	// PromotionId is set when a promotion discounted the unit price.
	PromotionId string `firestore:"promotionId,omitempty" json:"promotionId,omitempty"`
}

type Order struct {
	Meta
	Reference  string      `firestore:"reference" json:"reference"`
	BuyerId    string      `firestore:"buyerId" json:"buyerId"`
	SupplierId string      `firestore:"supplierId" json:"supplierId"`
	Items      []OrderItem `firestore:"items" json:"items"`
	Total      float64     `firestore:"total" json:"total"`
	Status     OrderStatus `firestore:"status" json:"status"`
	Notes      string      `firestore:"notes,omitempty" json:"notes,omitempty"`
	Source     OrderSource `firestore:"source" json:"source"`
	QuoteId    string      `firestore:"quoteId,omitempty" json:"quoteId,omitempty"`
}

type OrderFilter struct {
	BuyerId    string
	SupplierId string
	Status     OrderStatus
}
