// Package dbtest provides an in-memory db.Querier that records statements and
// replays canned rows, plus a helper that opens a migrated Postgres schema for
// integration tests.
package dbtest

import (
	"context"
	"fmt"
	"math/big"
	"reflect"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// Call is one recorded statement.
type Call struct {
	SQL  string
	Args []interface{}
}

// Result is what the next statement returns.
type Result struct {
	Rows [][]interface{}
	Err  error
}

// Querier replays queued results in order. When the queue is empty a
// statement returns no rows.
type Querier struct {
	mu      sync.Mutex
	results []Result
	calls   []Call
}

func New(results ...Result) *Querier {
	return &Querier{results: results}
}

// Push queues another result.
func (q *Querier) Push(r Result) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.results = append(q.results, r)
}

// Calls returns every statement seen so far.
func (q *Querier) Calls() []Call {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Call(nil), q.calls...)
}

// Last returns the most recent statement.
func (q *Querier) Last() Call {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.calls) == 0 {
		return Call{}
	}
	return q.calls[len(q.calls)-1]
}

func (q *Querier) next(sql string, args []interface{}) Result {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.calls = append(q.calls, Call{SQL: sql, Args: args})
	if len(q.results) == 0 {
		return Result{}
	}
	r := q.results[0]
	q.results = q.results[1:]
	return r
}

func (q *Querier) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r := q.next(sql, args)
	if r.Err != nil {
		return nil, r.Err
	}
	return &rows{data: r.Rows, pos: -1}, nil
}

func (q *Querier) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	if err := ctx.Err(); err != nil {
		return row{err: err}
	}
	r := q.next(sql, args)
	if r.Err != nil {
		return row{err: r.Err}
	}
	if len(r.Rows) == 0 {
		return row{err: pgx.ErrNoRows}
	}
	return row{values: r.Rows[0]}
}

// Num builds a NUMERIC aggregate value.
func Num(v int64) pgtype.Numeric {
	return pgtype.Numeric{Int: big.NewInt(v), Valid: true}
}

// Money builds a NUMERIC value from a decimal string such as "1234.50".
func Money(s string) pgtype.Numeric {
	d := decimal.RequireFromString(s)
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

// Null is a SQL NULL NUMERIC, as produced by SUM over an empty join group.
var Null = pgtype.Numeric{}

type row struct {
	values []interface{}
	err    error
}

func (r row) Scan(dest ...interface{}) error {
	if r.err != nil {
		return r.err
	}
	return scanInto(r.values, dest)
}

type rows struct {
	data [][]interface{}
	pos  int
}

func (r *rows) Close()                                       {}
func (r *rows) Err() error                                   { return nil }
func (r *rows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *rows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *rows) RawValues() [][]byte                          { return nil }
func (r *rows) Conn() *pgx.Conn                              { return nil }

func (r *rows) Next() bool {
	r.pos++
	return r.pos < len(r.data)
}

func (r *rows) Scan(dest ...interface{}) error {
	if r.pos < 0 || r.pos >= len(r.data) {
		return fmt.Errorf("dbtest: scan called without a current row")
	}
	return scanInto(r.data[r.pos], dest)
}

func (r *rows) Values() ([]interface{}, error) {
	if r.pos < 0 || r.pos >= len(r.data) {
		return nil, fmt.Errorf("dbtest: no current row")
	}
	return r.data[r.pos], nil
}

func scanInto(values []interface{}, dest []interface{}) error {
	if len(values) != len(dest) {
		return fmt.Errorf("dbtest: row has %d values, scan wants %d", len(values), len(dest))
	}
	for i, d := range dest {
		if err := assign(values[i], d); err != nil {
			return fmt.Errorf("dbtest: column %d: %w", i, err)
		}
	}
	return nil
}

func assign(src, dest interface{}) error {
	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Ptr || dv.IsNil() {
		return fmt.Errorf("destination %T is not a non-nil pointer", dest)
	}
	target := dv.Elem()

	if src == nil {
		target.Set(reflect.Zero(target.Type()))
		return nil
	}

	sv := reflect.ValueOf(src)
	switch {
	case sv.Type().AssignableTo(target.Type()):
		target.Set(sv)
	case target.Kind() == reflect.Ptr && sv.Type().AssignableTo(target.Type().Elem()):
		p := reflect.New(target.Type().Elem())
		p.Elem().Set(sv)
		target.Set(p)
	case sv.Type().ConvertibleTo(target.Type()) && sv.Kind() != reflect.String && target.Kind() != reflect.String:
		target.Set(sv.Convert(target.Type()))
	default:
		return fmt.Errorf("cannot scan %T into %T", src, dest)
	}
	return nil
}
