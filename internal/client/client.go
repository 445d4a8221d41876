// Package client is a GraphQL client for the dashboard API, used by the CLI
// reports.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/hospital/dashboard/pkg/period"
)

const (
	graphqlPath   = "/graphql"
	staffIDHeader = "X-Staff-ID"
)

// Config configures a Client.
type Config struct {
	BaseURL string
	StaffID string
	Timeout time.Duration
}

// Client issues queries against the dashboard API. Requests are never retried.
type Client struct {
	http   *resty.Client
	logger zerolog.Logger
}

// New creates a client for cfg.BaseURL.
func New(cfg Config, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	rc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if cfg.StaffID != "" {
		rc.SetHeader(staffIDHeader, cfg.StaffID)
	}
	return &Client{http: rc, logger: logger}
}

type request struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Error carries the messages of a GraphQL error envelope.
type Error struct {
	Messages []string
}

func (e *Error) Error() string {
	return "graphql: " + strings.Join(e.Messages, "; ")
}

// do posts query and decodes data into out.
func (c *Client) do(ctx context.Context, query string, vars map[string]interface{}, out interface{}) error {
	var body response
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(request{Query: query, Variables: vars}).
		SetResult(&body).
		SetError(&body).
		Post(graphqlPath)
	if err != nil {
		return fmt.Errorf("post %s: %w", graphqlPath, err)
	}

	if len(body.Errors) > 0 {
		gqlErr := &Error{}
		for _, e := range body.Errors {
			gqlErr.Messages = append(gqlErr.Messages, e.Message)
		}
		c.logger.Debug().Int("status", resp.StatusCode()).Strs("errors", gqlErr.Messages).Msg("graphql errors")
		return gqlErr
	}
	if resp.IsError() {
		return fmt.Errorf("post %s: unexpected status %d", graphqlPath, resp.StatusCode())
	}
	if err := json.Unmarshal(body.Data, out); err != nil {
		return fmt.Errorf("decode graphql data: %w", err)
	}
	return nil
}

// Summary is one month of revenue. Doctor series are returned in this shape
// too so every scope compares the same way.
type Summary struct {
	YearMonth            string          `json:"yearMonth"`
	TotalOutpatientSales decimal.Decimal `json:"totalOutpatientSales"`
	TotalInpatientSales  decimal.Decimal `json:"totalInpatientSales"`
	TotalSales           decimal.Decimal `json:"totalSales"`
}

type Sales struct {
	DoctorCode      string          `json:"doctorCode"`
	YearMonth       string          `json:"yearMonth"`
	OutpatientSales decimal.Decimal `json:"outpatientSales"`
	InpatientSales  decimal.Decimal `json:"inpatientSales"`
	TotalSales      decimal.Decimal `json:"totalSales"`
}

type Doctor struct {
	Code           string `json:"code"`
	Name           string `json:"name"`
	DepartmentCode string `json:"departmentCode"`
}

type DoctorSales struct {
	Doctor Doctor  `json:"doctor"`
	Sales  []Sales `json:"sales"`
}

func (s Sales) summary() Summary {
	return Summary{
		YearMonth:            s.YearMonth,
		TotalOutpatientSales: s.OutpatientSales,
		TotalInpatientSales:  s.InpatientSales,
		TotalSales:           s.TotalSales,
	}
}

func windowVars(window period.MonthRange) map[string]interface{} {
	vars := map[string]interface{}{}
	if window.Start != "" {
		vars["startMonth"] = window.Start
	}
	if window.End != "" {
		vars["endMonth"] = window.End
	}
	return vars
}

const (
	summaryFields = `yearMonth totalOutpatientSales totalInpatientSales totalSales`
	salesFields   = `doctorCode yearMonth outpatientSales inpatientSales totalSales`

	salesSummaryQuery = `query SalesSummary($startMonth: String, $endMonth: String) {
  salesSummary(startMonth: $startMonth, endMonth: $endMonth) { ` + summaryFields + ` }
}`
	salesByDepartmentQuery = `query SalesByDepartment($departmentCode: String!, $startMonth: String, $endMonth: String) {
  salesByDepartment(departmentCode: $departmentCode, startMonth: $startMonth, endMonth: $endMonth) { ` + summaryFields + ` }
}`
	salesByDoctorQuery = `query SalesByDoctor($doctorCode: String!, $startMonth: String, $endMonth: String) {
  salesByDoctor(doctorCode: $doctorCode, startMonth: $startMonth, endMonth: $endMonth) { ` + salesFields + ` }
}`
	salesByDoctorsInDepartmentQuery = `query SalesByDoctorsInDepartment($departmentCode: String!, $startMonth: String, $endMonth: String) {
  salesByDoctorsInDepartment(departmentCode: $departmentCode, startMonth: $startMonth, endMonth: $endMonth) {
    doctor { code name departmentCode }
    sales { ` + salesFields + ` }
  }
}`
)

// SalesSummary fetches hospital-wide monthly revenue.
func (c *Client) SalesSummary(ctx context.Context, window period.MonthRange) ([]Summary, error) {
	var out struct {
		SalesSummary []Summary `json:"salesSummary"`
	}
	if err := c.do(ctx, salesSummaryQuery, windowVars(window), &out); err != nil {
		return nil, err
	}
	return out.SalesSummary, nil
}

// SalesByDepartment fetches one department's monthly revenue.
func (c *Client) SalesByDepartment(ctx context.Context, departmentCode string, window period.MonthRange) ([]Summary, error) {
	vars := windowVars(window)
	vars["departmentCode"] = departmentCode
	var out struct {
		SalesByDepartment []Summary `json:"salesByDepartment"`
	}
	if err := c.do(ctx, salesByDepartmentQuery, vars, &out); err != nil {
		return nil, err
	}
	return out.SalesByDepartment, nil
}

// SalesByDoctor fetches one doctor's monthly revenue.
func (c *Client) SalesByDoctor(ctx context.Context, doctorCode string, window period.MonthRange) ([]Sales, error) {
	vars := windowVars(window)
	vars["doctorCode"] = doctorCode
	var out struct {
		SalesByDoctor []Sales `json:"salesByDoctor"`
	}
	if err := c.do(ctx, salesByDoctorQuery, vars, &out); err != nil {
		return nil, err
	}
	return out.SalesByDoctor, nil
}

// SalesByDoctorsInDepartment fetches one series per doctor of a department.
func (c *Client) SalesByDoctorsInDepartment(ctx context.Context, departmentCode string, window period.MonthRange) ([]DoctorSales, error) {
	vars := windowVars(window)
	vars["departmentCode"] = departmentCode
	var out struct {
		SalesByDoctorsInDepartment []DoctorSales `json:"salesByDoctorsInDepartment"`
	}
	if err := c.do(ctx, salesByDoctorsInDepartmentQuery, vars, &out); err != nil {
		return nil, err
	}
	return out.SalesByDoctorsInDepartment, nil
}
