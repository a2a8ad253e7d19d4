package sawis

import (
	"errors"
	"testing"

	ierr "winespace/internal/errors"
	"winespace/internal/model"
)

func TestNormalize(t *testing.T) {
	e := Normalize(model.SawisEntry{
		Category:    " Red ",
		Opening:     1000,
		Production:  500.5,
		Purchases:   200,
		SalesLocal:  300,
		SalesExport: 150.25,
		Losses:      10,
		Closing:     -1,
	})
	if e.Category != "Red" {
		t.Errorf("category not trimmed: %q", e.Category)
	}
	if e.Closing != 1240.25 {
		t.Errorf("expected closing 1240.25, got %v", e.Closing)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		ret     model.SawisReturn
		wantErr bool
	}{
		{"valid", model.SawisReturn{Period: "2024-01", Entries: []model.SawisEntry{{Category: "White", Opening: 10, Closing: 10}}}, false},
		{"bad period", model.SawisReturn{Period: "2024-1"}, true},
		{"negative losses", model.SawisReturn{Period: "2024-01", Entries: []model.SawisEntry{{Category: "White", Losses: -1}}}, true},
		{"negative closing", model.SawisReturn{Period: "2024-01", Entries: []model.SawisEntry{{Category: "White", Closing: -5}}}, true},
		{"duplicate category", model.SawisReturn{Period: "2024-01", Entries: []model.SawisEntry{{Category: "White"}, {Category: "white"}}}, true},
		{"blank category", model.SawisReturn{Period: "2024-01", Entries: []model.SawisEntry{{}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.ret)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ierr.Invalid) {
				t.Errorf("expected an Invalid error, got %v", err)
			}
		})
	}
}

func TestChainCarriesClosingForward(t *testing.T) {
	previous := &model.SawisReturn{Period: "2024-01", Entries: []model.SawisEntry{{Category: "Red", Closing: 800}}}
	current := model.SawisReturn{Period: "2024-02", Entries: []model.SawisEntry{
		{Category: "red", Opening: 1, Production: 100, SalesLocal: 50},
		{Category: "Brandy", Opening: 40, Losses: 5},
	}}

	chained := Chain(previous, current)

	if chained.Entries[0].Opening != 800 || chained.Entries[0].Closing != 850 {
		t.Errorf("unexpected red entry: %+v", chained.Entries[0])
	}
	if chained.Entries[1].Opening != 40 || chained.Entries[1].Closing != 35 {
		t.Errorf("unexpected brandy entry: %+v", chained.Entries[1])
	}

	first := Chain(nil, current)
	if first.Entries[0].Opening != 1 {
		t.Errorf("opening changed without a previous return: %+v", first.Entries[0])
	}
}

func TestRollup(t *testing.T) {
	totals := Rollup([]model.SawisReturn{
		{ProducerId: "a", Entries: []model.SawisEntry{{Category: "White", Opening: 100, Production: 50, Closing: 150}}},
		{ProducerId: "b", Entries: []model.SawisEntry{{Category: "White", Opening: 20, SalesExport: 10, Closing: 10}, {Category: "Red", Opening: 5, Closing: 5}}},
	})
	if len(totals) != 2 || totals[0].Category != "Red" {
		t.Fatalf("unexpected totals: %+v", totals)
	}
	white := totals[1]
	if white.Opening != 120 || white.Production != 50 || white.SalesExport != 10 || white.Closing != 160 {
		t.Errorf("unexpected white totals: %+v", white)
	}
}

func TestYearToDate(t *testing.T) {
	ytd := YearToDate([]model.SawisReturn{
		{Period: "2024-02", Entries: []model.SawisEntry{{Category: "Red", Opening: 120, Production: 30, Closing: 150}}},
		{Period: "2024-01", Entries: []model.SawisEntry{{Category: "Red", Opening: 100, Production: 40, SalesLocal: 20, Closing: 120}}},
	})
	if len(ytd) != 1 {
		t.Fatalf("expected one category, got %+v", ytd)
	}
	red := ytd[0]
	if red.Opening != 100 || red.Closing != 150 || red.Production != 70 || red.SalesLocal != 20 {
		t.Errorf("unexpected year to date: %+v", red)
	}
}

func TestPreviousPeriod(t *testing.T) {
	p, err := PreviousPeriod("2024-01")
	if err != nil || p != "2023-12" {
		t.Fatalf("expected 2023-12, got %s (%v)", p, err)
	}
}
