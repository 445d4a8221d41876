package db

import (
	"strconv"
	"strings"

	"github.com/hospital/dashboard/pkg/period"
)

// Params collects positional arguments for one statement. Values only ever
// reach the database as bound parameters; Bind hands back the placeholder.
type Params struct {
	args []interface{}
}

// Bind appends v and returns its placeholder ($1, $2, ...).
func (p *Params) Bind(v interface{}) string {
	p.args = append(p.args, v)
	return "$" + strconv.Itoa(len(p.args))
}

// Args returns the bound values in placeholder order.
func (p *Params) Args() []interface{} {
	return p.args
}

// Equals returns "column = $n".
func (p *Params) Equals(column string, v interface{}) string {
	return column + " = " + p.Bind(v)
}

// DateRange returns inclusive bounds on column for each bound that is set.
func (p *Params) DateRange(column string, r period.DateRange) Predicates {
	var preds Predicates
	if r.Start != nil {
		preds = append(preds, column+" >= "+p.Bind(*r.Start))
	}
	if r.End != nil {
		preds = append(preds, column+" <= "+p.Bind(*r.End))
	}
	return preds
}

// MonthRange returns inclusive bounds on a YYYY-MM column for each bound that is set.
func (p *Params) MonthRange(column string, r period.MonthRange) Predicates {
	var preds Predicates
	if r.Start != "" {
		preds = append(preds, column+" >= "+p.Bind(r.Start))
	}
	if r.End != "" {
		preds = append(preds, column+" <= "+p.Bind(r.End))
	}
	return preds
}

// Predicates are SQL boolean expressions joined with AND. Column names in
// them come from code, never from callers.
type Predicates []string

// Where renders " WHERE a AND b", or "" when empty.
func (ps Predicates) Where() string {
	if len(ps) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(ps, " AND ")
}

// And renders " AND a AND b", or "" when empty. Used to extend a JOIN
// condition or an existing WHERE clause.
func (ps Predicates) And() string {
	if len(ps) == 0 {
		return ""
	}
	return " AND " + strings.Join(ps, " AND ")
}
