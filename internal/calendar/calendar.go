// Package calendar matches producers with service providers and summarises
// the booked work per day.
package calendar

import (
	"fmt"
	"sort"
	"time"

	"winespace/internal/model"
)

// Match is a provider with room left on a given day.
type Match struct {
	ProviderId  string `json:"providerId"`
	Date        string `json:"date"`
	ServiceType string `json:"serviceType"`
	Capacity    int    `json:"capacity"`
	Booked      int    `json:"booked"`
	Remaining   int    `json:"remaining"`
}

// DaySummary is the work booked for one provider on one day.
type DaySummary struct {
	Date         string            `json:"date"`
	ProviderId   string            `json:"providerId"`
	Bookings     int               `json:"bookings"`
	WorkOrders   int               `json:"workOrders"`
	VolumeLitres float64           `json:"volumeLitres"`
	Cases        int               `json:"cases"`
	Items        []model.WorkOrder `json:"items"`
}

// ParseDate accepts only YYYY-MM-DD.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	return t, nil
}

// Booked counts the bookings that hold a slot, per provider.
func Booked(date, serviceType string, bookings []model.Booking) map[string]int {
	counts := map[string]int{}
	for _, b := range bookings {
		if b.Date != date || b.ServiceType != serviceType || !b.Status.Holds() {
			continue
		}
		counts[b.ProviderId]++
	}
	return counts
}

// MatchProviders returns the providers with an availability slot for the
// service on the date whose held bookings are below capacity. The most free
// providers come first.
func MatchProviders(date, serviceType string, availability []model.Availability, bookings []model.Booking) []Match {
	booked := Booked(date, serviceType, bookings)

	seen := map[string]bool{}
	matches := []Match{}
	for _, a := range availability {
		if a.Date != date || a.ServiceType != serviceType || seen[a.ProviderId] {
			continue
		}
		seen[a.ProviderId] = true

		n := booked[a.ProviderId]
		if n >= a.Capacity {
			continue
		}
		matches = append(matches, Match{
			ProviderId:  a.ProviderId,
			Date:        a.Date,
			ServiceType: a.ServiceType,
			Capacity:    a.Capacity,
			Booked:      n,
			Remaining:   a.Capacity - n,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Remaining != matches[j].Remaining {
			return matches[i].Remaining > matches[j].Remaining
		}
		return matches[i].ProviderId < matches[j].ProviderId
	})
	return matches
}

// AggregateWorkOrders sums the work orders of live bookings by date and provider.
func AggregateWorkOrders(bookings []model.Booking) []DaySummary {
	type key struct{ date, provider string }

	index := map[key]int{}
	out := []DaySummary{}
	for _, b := range bookings {
		if b.Status == model.BookingStatusCancelled || b.Status == model.BookingStatusDeclined {
			continue
		}
		k := key{b.Date, b.ProviderId}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, DaySummary{Date: b.Date, ProviderId: b.ProviderId})
		}

		s := &out[i]
		s.Bookings++
		for _, w := range b.WorkOrders {
			s.WorkOrders++
			s.VolumeLitres += w.VolumeLitres
			s.Cases += w.Cases
			s.Items = append(s.Items, w)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].ProviderId < out[j].ProviderId
	})
	return out
}

// MonthView lays the bookings of a YYYY-MM month out per day. Every day of the
// month has an entry, empty days included.
func MonthView(month string, bookings []model.Booking) (map[string][]model.Booking, error) {
	start, err := time.Parse(model.PeriodLayout, month)
	if err != nil {
		return nil, fmt.Errorf("invalid month %q, expected YYYY-MM", month)
	}

	view := map[string][]model.Booking{}
	for d := start; d.Month() == start.Month(); d = d.AddDate(0, 0, 1) {
		view[d.Format(model.DateLayout)] = []model.Booking{}
	}
	for _, b := range bookings {
		if day, ok := view[b.Date]; ok {
			view[b.Date] = append(day, b)
		}
	}
	return view, nil
}

// MonthRange returns the first and last day of a YYYY-MM month.
func MonthRange(month string) (string, string, error) {
	start, err := time.Parse(model.PeriodLayout, month)
	if err != nil {
		return "", "", fmt.Errorf("invalid month %q, expected YYYY-MM", month)
	}
	end := start.AddDate(0, 1, -1)
	return start.Format(model.DateLayout), end.Format(model.DateLayout), nil
}
