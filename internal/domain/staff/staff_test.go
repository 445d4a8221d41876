package staff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospital/dashboard/internal/platform/apperr"
	"github.com/hospital/dashboard/internal/platform/db/dbtest"
)

func staffRow(id, jobType, jobName string, level int32) []interface{} {
	return []interface{}{id, "管理 太郎", jobType, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), jobType, jobName, level}
}

func TestVerifyStaff_Found(t *testing.T) {
	q := dbtest.New(dbtest.Result{Rows: [][]interface{}{staffRow("admin001", "ADMIN", "管理者", 99)}})
	svc := NewService(NewRepo(q))

	s, err := svc.VerifyStaff(context.Background(), "admin001")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "admin001", s.ID)
	assert.Equal(t, "ADMIN", s.JobTypeCode)
	assert.Equal(t, Permission{JobTypeCode: "ADMIN", JobTypeName: "管理者", Level: 99}, s.Permission)
}

func TestVerifyStaff_UnknownIsNil(t *testing.T) {
	q := dbtest.New()
	svc := NewService(NewRepo(q))

	s, err := svc.VerifyStaff(context.Background(), "invalid_staff_id_12345")
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestVerifyStaff_BindsIdentifier(t *testing.T) {
	hostile := "admin' OR '1'='1"
	q := dbtest.New()
	svc := NewService(NewRepo(q))

	s, err := svc.VerifyStaff(context.Background(), hostile)
	require.NoError(t, err)
	assert.Nil(t, s)

	call := q.Last()
	assert.NotContains(t, call.SQL, hostile)
	assert.Contains(t, call.SQL, "WHERE s.id = $1")
	assert.Equal(t, []interface{}{hostile}, call.Args)
}

func TestVerifyStaff_EmptyRejectedBeforeQuery(t *testing.T) {
	q := dbtest.New()
	svc := NewService(NewRepo(q))

	_, err := svc.VerifyStaff(context.Background(), "")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
	assert.Empty(t, q.Calls())
}

func TestVerifyStaff_DatabaseError(t *testing.T) {
	boom := errors.New("too many clients already")
	q := dbtest.New(dbtest.Result{Err: boom})
	svc := NewService(NewRepo(q))

	_, err := svc.VerifyStaff(context.Background(), "admin001")
	assert.ErrorIs(t, err, boom)
}

func TestResolve_MapsPermissionLevel(t *testing.T) {
	q := dbtest.New(
		dbtest.Result{Rows: [][]interface{}{staffRow("doctor001", "DOCTOR", "医師", 10)}},
		dbtest.Result{},
	)
	svc := NewService(NewRepo(q))

	id, err := svc.Resolve(context.Background(), "doctor001")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, "doctor001", id.StaffID)
	assert.Equal(t, "DOCTOR", id.JobTypeCode)
	assert.Equal(t, 10, id.Level)

	id, err = svc.Resolve(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, id)
}
