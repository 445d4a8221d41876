package masterdata

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospital/dashboard/internal/platform/db/dbtest"
)

func TestRepo_ListDepartments(t *testing.T) {
	created := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	q := dbtest.New(dbtest.Result{Rows: [][]interface{}{
		{int32(1), "INT", "内科", int32(1), created},
		{int32(2), "SUR", "外科", int32(2), created},
	}})

	depts, err := NewRepo(q).ListDepartments(context.Background())
	require.NoError(t, err)
	require.Len(t, depts, 2)
	assert.Equal(t, Department{ID: 1, Code: "INT", Name: "内科", DisplayOrder: 1, CreatedAt: created}, depts[0])
	assert.Equal(t, "SUR", depts[1].Code)

	call := q.Last()
	assert.Contains(t, call.SQL, "ORDER BY d.display_order, d.code")
	assert.Empty(t, call.Args)
}

func TestRepo_ListWards_EmptyIsNotNil(t *testing.T) {
	q := dbtest.New()

	wards, err := NewRepo(q).ListWards(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, wards)
	assert.Empty(t, wards)
	assert.Contains(t, q.Last().SQL, "ORDER BY w.display_order, w.code")
}

func TestRepo_ListWards_Scan(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	q := dbtest.New(dbtest.Result{Rows: [][]interface{}{
		{int32(3), "W3E", "3階東病棟", int32(40), int32(1), created},
	}})

	wards, err := NewRepo(q).ListWards(context.Background())
	require.NoError(t, err)
	require.Len(t, wards, 1)
	assert.Equal(t, 40, wards[0].Capacity)
}

func TestRepo_DatabaseFailurePropagates(t *testing.T) {
	boom := errors.New("connection refused")
	q := dbtest.New(dbtest.Result{Err: boom}, dbtest.Result{Err: boom})

	_, err := NewRepo(q).ListDepartments(context.Background())
	assert.ErrorIs(t, err, boom)

	_, err = NewRepo(q).ListWards(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestColumns(t *testing.T) {
	assert.Equal(t, "d.id, d.code, d.name, d.display_order, d.created_at", DepartmentColumns("d"))
	assert.Equal(t, "w.id, w.code, w.name, w.capacity, w.display_order, w.created_at", WardColumns("w"))

	var d Department
	assert.Len(t, d.Fields(), 5)
	var w Ward
	assert.Len(t, w.Fields(), 6)
}
