package client

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/hospital/dashboard/pkg/period"
)

// Scope selects the series a comparison runs over. DoctorCode takes
// precedence over DepartmentCode; with neither the hospital-wide summary is
// used.
type Scope struct {
	DepartmentCode string
	DoctorCode     string
}

func (s Scope) String() string {
	switch {
	case s.DoctorCode != "":
		return "doctor " + s.DoctorCode
	case s.DepartmentCode != "":
		return "department " + s.DepartmentCode
	default:
		return "all departments"
	}
}

// Comparison pairs a month of the current window with the same month one
// year earlier.
type Comparison struct {
	YearMonth      string
	PriorYearMonth string
	Current        Summary
	Prior          Summary
}

func (c *Client) fetch(ctx context.Context, scope Scope, window period.MonthRange) ([]Summary, error) {
	switch {
	case scope.DoctorCode != "":
		rows, err := c.SalesByDoctor(ctx, scope.DoctorCode, window)
		if err != nil {
			return nil, err
		}
		out := make([]Summary, 0, len(rows))
		for _, r := range rows {
			out = append(out, r.summary())
		}
		return out, nil
	case scope.DepartmentCode != "":
		return c.SalesByDepartment(ctx, scope.DepartmentCode, window)
	default:
		return c.SalesSummary(ctx, window)
	}
}

// CompareYearOverYear fetches window and the window one year earlier as two
// independent queries, then aligns them month by month.
func (c *Client) CompareYearOverYear(ctx context.Context, scope Scope, window period.MonthRange) ([]Comparison, error) {
	prevWindow, err := window.PreviousYear()
	if err != nil {
		return nil, fmt.Errorf("previous year window: %w", err)
	}

	var current, prior []Summary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = c.fetch(gctx, scope, window)
		return err
	})
	g.Go(func() error {
		var err error
		prior, err = c.fetch(gctx, scope, prevWindow)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("scope", scope.String()).
		Int("current_months", len(current)).
		Int("prior_months", len(prior)).
		Msg("year over year fetched")

	return AlignYearOverYear(current, prior)
}

// AlignYearOverYear matches every current month with the prior-year month
// whose label is one year earlier. Prior months without data are zero; prior
// months with no current counterpart are dropped.
func AlignYearOverYear(current, prior []Summary) ([]Comparison, error) {
	byMonth := make(map[string]Summary, len(prior))
	for _, p := range prior {
		byMonth[p.YearMonth] = p
	}

	out := make([]Comparison, 0, len(current))
	for _, cur := range current {
		label, err := period.ShiftYearMonth(cur.YearMonth, -1)
		if err != nil {
			return nil, fmt.Errorf("align %s: %w", cur.YearMonth, err)
		}
		p, ok := byMonth[label]
		if !ok {
			p = Summary{YearMonth: label}
		}
		out = append(out, Comparison{
			YearMonth:      cur.YearMonth,
			PriorYearMonth: label,
			Current:        cur,
			Prior:          p,
		})
	}
	return out, nil
}

// StackedMonth holds each doctor's total for one month, indexed like the
// series passed to StackDoctorSeries.
type StackedMonth struct {
	YearMonth string
	Totals    []decimal.Decimal
}

// StackDoctorSeries aligns per-doctor series onto months, filling months a
// doctor has no row for with zero. Rows outside months are ignored.
func StackDoctorSeries(months []string, series []DoctorSales) []StackedMonth {
	index := make(map[string]int, len(months))
	out := make([]StackedMonth, len(months))
	for i, m := range months {
		index[m] = i
		out[i] = StackedMonth{YearMonth: m, Totals: make([]decimal.Decimal, len(series))}
	}

	for j, ds := range series {
		for _, s := range ds.Sales {
			if i, ok := index[s.YearMonth]; ok {
				out[i].Totals[j] = out[i].Totals[j].Add(s.TotalSales)
			}
		}
	}
	return out
}

// Months lists the yearMonth labels of rows in order.
func Months(rows []Summary) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.YearMonth
	}
	return out
}
