package dbtest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuerier_ReplaysRowsAndRecordsCalls(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	q := New(Result{Rows: [][]interface{}{
		{int32(1), "内科", day, Num(50)},
		{int32(2), "外科", day, Null},
	}})

	rows, err := q.Query(context.Background(), "SELECT x FROM t WHERE a = $1", "A")
	require.NoError(t, err)
	defer rows.Close()

	var got []string
	for rows.Next() {
		var (
			id   int
			name string
			when time.Time
			n    pgtype.Numeric
		)
		require.NoError(t, rows.Scan(&id, &name, &when, &n))
		got = append(got, name)
	}
	assert.Equal(t, []string{"内科", "外科"}, got)

	call := q.Last()
	assert.Equal(t, "SELECT x FROM t WHERE a = $1", call.SQL)
	assert.Equal(t, []interface{}{"A"}, call.Args)
}

func TestQuerier_QueryRow(t *testing.T) {
	q := New(Result{}, Result{Err: errors.New("boom")})

	var s string
	err := q.QueryRow(context.Background(), "SELECT 1").Scan(&s)
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	err = q.QueryRow(context.Background(), "SELECT 2").Scan(&s)
	assert.EqualError(t, err, "boom")
	assert.Len(t, q.Calls(), 2)
}

func TestQuerier_PointerDestinations(t *testing.T) {
	q := New(Result{Rows: [][]interface{}{{"D001", nil}}})

	var code *string
	var dept *string
	require.NoError(t, q.QueryRow(context.Background(), "SELECT").Scan(&code, &dept))
	require.NotNil(t, code)
	assert.Equal(t, "D001", *code)
	assert.Nil(t, dept)
}

func TestQuerier_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Query(ctx, "SELECT 1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMoney(t *testing.T) {
	m := Money("1234.50")
	assert.True(t, m.Valid)
	assert.Equal(t, int32(-2), m.Exp)
	assert.Equal(t, "123450", m.Int.String())
}
