// Package sawis balances and aggregates the monthly stock returns producers file with SAWIS.
package sawis

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	ierr "winespace/internal/errors"
	"winespace/internal/model"
)

func round(v float64) float64 {
	return math.Round(v*100) / 100
}

// Closing is the balance left after the period's movements.
func Closing(e model.SawisEntry) float64 {
	return round(e.Opening + e.Production + e.Purchases - e.SalesLocal - e.SalesExport - e.Losses)
}

// Normalize trims the category and recomputes the closing balance.
func Normalize(e model.SawisEntry) model.SawisEntry {
	e.Category = strings.TrimSpace(e.Category)
	e.Closing = Closing(e)
	return e
}

// ParsePeriod accepts only YYYY-MM.
func ParsePeriod(period string) (time.Time, error) {
	t, err := time.Parse(model.PeriodLayout, period)
	if err != nil {
		return time.Time{}, ierr.Invalidf(fmt.Sprintf("invalid period %q, expected YYYY-MM", period))
	}
	return t, nil
}

// PreviousPeriod returns the month before period.
func PreviousPeriod(period string) (string, error) {
	t, err := ParsePeriod(period)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, -1, 0).Format(model.PeriodLayout), nil
}

// Validate checks a return after normalisation.
func Validate(r model.SawisReturn) error {
	if _, err := ParsePeriod(r.Period); err != nil {
		return err
	}

	seen := map[string]bool{}
	for _, e := range r.Entries {
		if e.Category == "" {
			return ierr.Invalidf("every entry needs a category")
		}
		key := strings.ToLower(e.Category)
		if seen[key] {
			return ierr.Invalidf(fmt.Sprintf("category %s appears more than once", e.Category))
		}
		seen[key] = true

		for name, v := range map[string]float64{
			"opening":     e.Opening,
			"production":  e.Production,
			"purchases":   e.Purchases,
			"salesLocal":  e.SalesLocal,
			"salesExport": e.SalesExport,
			"losses":      e.Losses,
		} {
			if v < 0 {
				return ierr.Invalidf(fmt.Sprintf("%s for %s cannot be negative", name, e.Category))
			}
		}
		if e.Closing < 0 {
			return ierr.Invalidf(fmt.Sprintf("closing balance for %s cannot be negative", e.Category))
		}
	}
	return nil
}

// Chain carries the previous period's closing balances into the openings of current.
// Categories the previous return does not have keep the opening they were given.
func Chain(previous *model.SawisReturn, current model.SawisReturn) model.SawisReturn {
	closings := map[string]float64{}
	if previous != nil {
		for _, e := range previous.Entries {
			closings[strings.ToLower(strings.TrimSpace(e.Category))] = e.Closing
		}
	}

	entries := make([]model.SawisEntry, 0, len(current.Entries))
	for _, e := range current.Entries {
		e = Normalize(e)
		if c, ok := closings[strings.ToLower(e.Category)]; ok {
			e.Opening = c
			e.Closing = Closing(e)
		}
		entries = append(entries, e)
	}
	current.Entries = entries
	return current
}

func add(into *model.SawisEntry, e model.SawisEntry) {
	into.Production = round(into.Production + e.Production)
	into.Purchases = round(into.Purchases + e.Purchases)
	into.SalesLocal = round(into.SalesLocal + e.SalesLocal)
	into.SalesExport = round(into.SalesExport + e.SalesExport)
	into.Losses = round(into.Losses + e.Losses)
}

func sorted(byCategory map[string]*model.SawisEntry) []model.SawisEntry {
	out := make([]model.SawisEntry, 0, len(byCategory))
	for _, e := range byCategory {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// Rollup totals every category across the returns of one period.
func Rollup(returns []model.SawisReturn) []model.SawisEntry {
	totals := map[string]*model.SawisEntry{}
	for _, r := range returns {
		for _, e := range r.Entries {
			key := strings.ToLower(e.Category)
			t, ok := totals[key]
			if !ok {
				t = &model.SawisEntry{Category: e.Category}
				totals[key] = t
			}
			t.Opening = round(t.Opening + e.Opening)
			t.Closing = round(t.Closing + e.Closing)
			add(t, e)
		}
	}
	return sorted(totals)
}

// YearToDate sums one producer's monthly movements per category, keeping the
// opening of the earliest month and the closing of the latest.
func YearToDate(returns []model.SawisReturn) []model.SawisEntry {
	ordered := append([]model.SawisReturn(nil), returns...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Period < ordered[j].Period })

	totals := map[string]*model.SawisEntry{}
	for _, r := range ordered {
		for _, e := range r.Entries {
			key := strings.ToLower(e.Category)
			t, ok := totals[key]
			if !ok {
				t = &model.SawisEntry{Category: e.Category, Opening: e.Opening}
				totals[key] = t
			}
			t.Closing = e.Closing
			add(t, e)
		}
	}
	return sorted(totals)
}
