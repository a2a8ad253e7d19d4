package actions

import (
	"context"
	"strings"

	ierr "winespace/internal/errors"
	"winespace/internal/model"
	"winespace/internal/pagecache"
)

type OffenderInput struct {
	Name               string  `json:"name" form:"name" binding:"required"`
	CompanyName        string  `json:"companyName" form:"companyName"`
	RegistrationNumber string  `json:"registrationNumber" form:"registrationNumber"`
	Reason             string  `json:"reason" form:"reason" binding:"required"`
	AmountOwed         float64 `json:"amountOwed" form:"amountOwed" binding:"gte=0"`
}

// ReportOffender adds a business to the shared bad-payer list.
func (a *Actions) ReportOffender(ctx context.Context, actor Actor, in OffenderInput) (Result, error) {
	if err := actor.require(model.RoleSupplier, model.RoleAdmin); err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Reason) == "" {
		return Result{}, ierr.Invalidf("name and reason are required")
	}
	if in.AmountOwed < 0 {
		return Result{}, ierr.Invalidf("amount owed cannot be negative")
	}

	o, err := a.repos.Offenders.Create(ctx, model.Offender{
		Name:               strings.TrimSpace(in.Name),
		CompanyName:        strings.TrimSpace(in.CompanyName),
		RegistrationNumber: strings.TrimSpace(in.RegistrationNumber),
		Reason:             strings.TrimSpace(in.Reason),
		AmountOwed:         in.AmountOwed,
		ReportedBy:         actor.Id,
	})
	if err != nil {
		return Result{}, err
	}

	a.invalidate(ctx, pagecache.Offenders)
	return ok("Offender reported", o), nil
}

// ListOffenders matches query against name, company and registration number, ignoring case.
func (a *Actions) ListOffenders(ctx context.Context, actor Actor, query string) (Result, error) {
	if err := actor.require(model.RoleSupplier, model.RoleAdmin); err != nil {
		return Result{}, err
	}

	all, err := cached(ctx, a, pagecache.Key(pagecache.Offenders), func() ([]model.Offender, error) {
		return a.repos.Offenders.List(ctx)
	})
	if err != nil {
		return Result{}, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return ok("", all), nil
	}

	matches := []model.Offender{}
	for _, o := range all {
		if strings.Contains(strings.ToLower(o.Name), q) ||
			strings.Contains(strings.ToLower(o.CompanyName), q) ||
			strings.Contains(strings.ToLower(o.RegistrationNumber), q) {
			matches = append(matches, o)
		}
	}
	return ok("", matches), nil
}

func (a *Actions) DeleteOffender(ctx context.Context, actor Actor, id string) (Result, error) {
	if err := actor.require(model.RoleAdmin); err != nil {
		return Result{}, err
	}
	if _, err := a.repos.Offenders.GetById(ctx, id); err != nil {
		return Result{}, notFound(err, "offender")
	}
	if err := a.repos.Offenders.Delete(ctx, id); err != nil {
		return Result{}, err
	}
	a.invalidate(ctx, pagecache.Offenders)
	return ok("Offender removed", nil), nil
}
