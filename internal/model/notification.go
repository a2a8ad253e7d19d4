package model

import "time"

type NotificationKind string

const (
	NotifyOrderCreated     NotificationKind = "order_created"
	NotifyOrderStatus      NotificationKind = "order_status"
	NotifyBookingRequested NotificationKind = "booking_requested"
	NotifyBookingStatus    NotificationKind = "booking_status"
	NotifyQuoteSubmitted   NotificationKind = "quote_submitted"
	NotifyQuoteAccepted    NotificationKind = "quote_accepted"
	NotifyUserStatus       NotificationKind = "user_status"
)

// Notification is an outbox document; the mail worker picks up unsent ones.
type Notification struct {
	Meta
	Kind    NotificationKind       `firestore:"kind" json:"kind"`
	To      string                 `firestore:"to" json:"to"`
	Subject string                 `firestore:"subject" json:"subject"`
	Data    map[string]interface{} `firestore:"data" json:"data"`
	Sent    bool                   `firestore:"sent" json:"sent"`
	Error   string                 `firestore:"error,omitempty" json:"error,omitempty"`
	SentAt  *time.Time             `firestore:"sentAt,omitempty" json:"sentAt,omitempty"`
}
