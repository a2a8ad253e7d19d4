package model

import "time"

// DateLayout is the layout of calendar dates stored on availability and bookings.
const DateLayout = "2006-01-02"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusDeclined  BookingStatus = "Declined"
	BookingStatusCompleted BookingStatus = "Completed"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusDeclined, BookingStatusCompleted, BookingStatusCancelled:
		return true
	default:
		return false
	}
}

// Holds reports whether the booking occupies a provider slot.
func (s BookingStatus) Holds() bool {
	return s == BookingStatusConfirmed || s == BookingStatusCompleted
}

// Availability is a day a service provider can be booked for a service.
type Availability struct {
	Meta
	ProviderId  string `firestore:"providerId" json:"providerId"`
	Date        string `firestore:"date" json:"date"`
	ServiceType string `firestore:"serviceType" json:"serviceType"`
	Capacity    int    `firestore:"capacity" json:"capacity"`
}

type WorkOrder struct {
	WineName     string  `firestore:"wineName" json:"wineName"`
	Description  string  `firestore:"description,omitempty" json:"description,omitempty"`
	VolumeLitres float64 `firestore:"volumeLitres" json:"volumeLitres"`
	Cases        int     `firestore:"cases" json:"cases"`
}

type Booking struct {
	Meta
	Reference   string        `firestore:"reference" json:"reference"`
	ProviderId  string        `firestore:"providerId" json:"providerId"`
	ProducerId  string        `firestore:"producerId" json:"producerId"`
	Date        string        `firestore:"date" json:"date"`
	ServiceType string        `firestore:"serviceType" json:"serviceType"`
	Status      BookingStatus `firestore:"status" json:"status"`
	Notes       string        `firestore:"notes,omitempty" json:"notes,omitempty"`
	WorkOrders  []WorkOrder   `firestore:"workOrders" json:"workOrders"`
}

// Day parses the booking date.
func (b Booking) Day() (time.Time, error) {
	return time.Parse(DateLayout, b.Date)
}

type BookingFilter struct {
	ProducerId string
	ProviderId string
	From       string
	To         string
}
