package actions

import (
	"context"
	"errors"
	"fmt"

	ierr "winespace/internal/errors"
	"winespace/internal/model"
	"winespace/internal/pagecache"
	"winespace/internal/sawis"
)

type SawisInput struct {
	Period  string             `json:"period" binding:"required"`
	Entries []model.SawisEntry `json:"entries" binding:"required,min=1"`
}

// SaveReturn stores the producer's draft return for a month. Openings are
// carried over from the previous month's closings when that return exists.
func (a *Actions) SaveReturn(ctx context.Context, actor Actor, in SawisInput) (Result, error) {
	if err := actor.require(model.RoleProducer); err != nil {
		return Result{}, err
	}

	prevPeriod, err := sawis.PreviousPeriod(in.Period)
	if err != nil {
		return Result{}, err
	}

	existing, err := a.repos.Sawis.GetByPeriod(ctx, actor.Id, in.Period)
	if err != nil && !errors.Is(err, ierr.NotFound) {
		return Result{}, err
	}
	if existing != nil && existing.Status == model.SawisStatusSubmitted {
		return Result{}, ierr.Forbiddenf("the return for " + in.Period + " was already submitted")
	}

	previous, err := a.repos.Sawis.GetByPeriod(ctx, actor.Id, prevPeriod)
	if err != nil && !errors.Is(err, ierr.NotFound) {
		return Result{}, err
	}

	ret := sawis.Chain(previous, model.SawisReturn{
		ProducerId: actor.Id,
		Period:     in.Period,
		Status:     model.SawisStatusDraft,
		Entries:    in.Entries,
	})
	if err := sawis.Validate(ret); err != nil {
		return Result{}, err
	}

	saved, err := a.repos.Sawis.Upsert(ctx, ret)
	if err != nil {
		return Result{}, err
	}

	a.invalidate(ctx, pagecache.Sawis)
	return ok("Return saved as draft", saved), nil
}

func (a *Actions) SubmitReturn(ctx context.Context, actor Actor, id string) (Result, error) {
	if err := actor.require(model.RoleProducer); err != nil {
		return Result{}, err
	}

	ret, err := a.repos.Sawis.GetById(ctx, id)
	if err != nil {
		return Result{}, notFound(err, "return")
	}
	if ret.ProducerId != actor.Id {
		return Result{}, ierr.Forbiddenf("this return belongs to another producer")
	}
	if ret.Status == model.SawisStatusSubmitted {
		return Result{}, ierr.Invalidf("the return was already submitted")
	}
	if len(ret.Entries) == 0 {
		return Result{}, ierr.Invalidf("add at least one category before submitting")
	}
	if err := sawis.Validate(*ret); err != nil {
		return Result{}, err
	}

	if err := a.repos.Sawis.SetStatus(ctx, id, model.SawisStatusSubmitted, actor.Id); err != nil {
		return Result{}, notFound(err, "return")
	}

	a.invalidate(ctx, pagecache.Sawis)
	ret.Status = model.SawisStatusSubmitted
	ret.SubmittedBy = actor.Id
	return ok("Return submitted", ret), nil
}

type ReturnsOverview struct {
	Returns    []model.SawisReturn `json:"returns"`
	YearToDate []model.SawisEntry  `json:"yearToDate"`
}

// ListReturns lists a producer's returns for a year with the year-to-date totals.
// Admins pass the producer they want to see.
func (a *Actions) ListReturns(ctx context.Context, actor Actor, producerId, year string) (Result, error) {
	if err := actor.require(model.RoleProducer, model.RoleAdmin); err != nil {
		return Result{}, err
	}
	if actor.Is(model.RoleProducer) {
		producerId = actor.Id
	}
	if producerId == "" {
		return Result{}, ierr.Invalidf("producerId is required")
	}
	if year == "" {
		year = fmt.Sprint(a.now().UTC().Year())
	}

	returns, err := a.repos.Sawis.List(ctx, producerId, year)
	if err != nil {
		return Result{}, err
	}
	return ok("", ReturnsOverview{Returns: returns, YearToDate: sawis.YearToDate(returns)}), nil
}

type PeriodSummary struct {
	Period    string             `json:"period"`
	Submitted int                `json:"submitted"`
	Drafts    int                `json:"drafts"`
	Totals    []model.SawisEntry `json:"totals"`
}

// PeriodSummary totals the submitted returns of every producer for a month.
func (a *Actions) PeriodSummary(ctx context.Context, actor Actor, period string) (Result, error) {
	if err := actor.require(model.RoleAdmin); err != nil {
		return Result{}, err
	}
	if _, err := sawis.ParsePeriod(period); err != nil {
		return Result{}, err
	}

	returns, err := a.repos.Sawis.ListByPeriod(ctx, period)
	if err != nil {
		return Result{}, err
	}

	summary := PeriodSummary{Period: period}
	submitted := []model.SawisReturn{}
	for _, r := range returns {
		if r.Status == model.SawisStatusSubmitted {
			submitted = append(submitted, r)
			summary.Submitted++
		} else {
			summary.Drafts++
		}
	}
	summary.Totals = sawis.Rollup(submitted)
	return ok("", summary), nil
}
