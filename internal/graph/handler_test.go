package graph

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospital/dashboard/internal/platform/auth"
)

func newServer(t *testing.T, f *fakeServices, logs *bytes.Buffer) *echo.Echo {
	t.Helper()
	schema, err := NewSchema(Services{MasterData: f, PatientFlow: f, Staff: f, Sales: f}, Options{SalesMinLevel: 90})
	require.NoError(t, err)

	e := echo.New()
	e.Use(auth.StaffIdentity(levels, false))
	Register(e, NewHandler(schema, zerolog.New(logs)))
	return e
}

type envelope struct {
	Data   map[string]interface{} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func post(t *testing.T, e *echo.Echo, staffID, operation, query string) envelope {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"query": query, "operationName": operation})
	req := httptest.NewRequest(http.MethodPost, Path, bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if staffID != "" {
		req.Header.Set(auth.StaffIDHeader, staffID)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHandler_Query(t *testing.T) {
	var logs bytes.Buffer
	e := newServer(t, &fakeServices{}, &logs)

	out := post(t, e, "", "", `{ wards { code capacity } }`)
	assert.Empty(t, out.Errors)
	wards := out.Data["wards"].([]interface{})
	assert.Equal(t, "W3E", wards[0].(map[string]interface{})["code"])
	assert.Empty(t, logs.String())
}

func TestHandler_PrincipalFromHeader(t *testing.T) {
	var logs bytes.Buffer
	e := newServer(t, &fakeServices{}, &logs)

	out := post(t, e, "admin001", "", `{ salesSummary { yearMonth } }`)
	assert.Empty(t, out.Errors)

	out = post(t, e, "doctor001", "Revenue", `query Revenue { salesSummary { yearMonth } }`)
	require.Len(t, out.Errors, 1)
	assert.Contains(t, out.Errors[0].Message, "insufficient permission level")
	assert.Contains(t, logs.String(), `"operation":"Revenue"`)
}

func TestHandler_StaffIDQueryParam(t *testing.T) {
	e := newServer(t, &fakeServices{}, &bytes.Buffer{})

	req := httptest.NewRequest(http.MethodGet, Path+"?staffId=admin001&query=%7B%20salesSummary%20%7B%20yearMonth%20%7D%20%7D", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `"errors"`)
	assert.Contains(t, rec.Body.String(), `"2024-02"`)
}

func TestHandler_ExplorerOnBrowserGET(t *testing.T) {
	e := newServer(t, &fakeServices{}, &bytes.Buffer{})

	req := httptest.NewRequest(http.MethodGet, Path, nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(strings.ToLower(rec.Body.String()), "graphiql"))
}
