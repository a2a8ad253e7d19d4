package model

import "time"

type RFQStatus string

const (
	RFQStatusOpen    RFQStatus = "open"
	RFQStatusClosed  RFQStatus = "closed"
	RFQStatusAwarded RFQStatus = "awarded"
)

type RFQItem struct {
	Description string `firestore:"description" json:"description"`
	Quantity    int    `firestore:"quantity" json:"quantity"`
	Unit        string `firestore:"unit,omitempty" json:"unit,omitempty"`
}

type RFQ struct {
	Meta
	ProducerId     string    `firestore:"producerId" json:"producerId"`
	Title          string    `firestore:"title" json:"title"`
	Category       string    `firestore:"category,omitempty" json:"category,omitempty"`
	Items          []RFQItem `firestore:"items" json:"items"`
	Deadline       time.Time `firestore:"deadline" json:"deadline"`
	Status         RFQStatus `firestore:"status" json:"status"`
	AwardedQuoteId string    `firestore:"awardedQuoteId,omitempty" json:"awardedQuoteId,omitempty"`
}

// Open reports whether suppliers may still quote.
func (r RFQ) Open(now time.Time) bool {
	return r.Status == RFQStatusOpen && (r.Deadline.IsZero() || !now.After(r.Deadline))
}

type QuoteStatus string

const (
	QuoteStatusSubmitted QuoteStatus = "submitted"
	QuoteStatusAccepted  QuoteStatus = "accepted"
	QuoteStatusRejected  QuoteStatus = "rejected"
)

type QuoteItem struct {
	Description string  `firestore:"description" json:"description"`
	Quantity    int     `firestore:"quantity" json:"quantity"`
	Unit        string  `firestore:"unit,omitempty" json:"unit,omitempty"`
	UnitPrice   float64 `firestore:"unitPrice" json:"unitPrice"`
	LineTotal   float64 `firestore:"lineTotal" json:"lineTotal"`
}

type Quote struct {
	Meta
	RFQId      string      `firestore:"rfqId" json:"rfqId"`
	SupplierId string      `firestore:"supplierId" json:"supplierId"`
	Items      []QuoteItem `firestore:"items" json:"items"`
	Total      float64     `firestore:"total" json:"total"`
	Notes      string      `firestore:"notes,omitempty" json:"notes,omitempty"`
	Status     QuoteStatus `firestore:"status" json:"status"`
}
