package reporting

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hospital/dashboard/internal/domain/sales"
	"github.com/hospital/dashboard/internal/platform/auth"
)

// ExportPath serves the sales workbook.
const ExportPath = "/export/sales.xlsx"

// SalesSource is the subset of the sales service the export reads.
type SalesSource interface {
	Summary(ctx context.Context, startMonth, endMonth *string) ([]sales.Summary, error)
	ByDoctor(ctx context.Context, doctorCode string, startMonth, endMonth *string) ([]sales.Sales, error)
	ByDepartment(ctx context.Context, departmentCode string, startMonth, endMonth *string) ([]sales.Summary, error)
	ByDoctorsInDepartment(ctx context.Context, departmentCode string, startMonth, endMonth *string) ([]sales.DoctorSales, error)
}

// Handler provides the sales export endpoint.
type Handler struct {
	sales    SalesSource
	minLevel int
	logger   zerolog.Logger
}

// NewHandler creates a new export handler gated at minLevel.
func NewHandler(src SalesSource, minLevel int, logger zerolog.Logger) *Handler {
	return &Handler{sales: src, minLevel: minLevel, logger: logger}
}

// RegisterRoutes registers the export routes.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET(ExportPath, h.ExportSales, auth.RequireLevelMiddleware(h.minLevel))
}

func queryParam(c echo.Context, name string) *string {
	if v := c.QueryParam(name); v != "" {
		return &v
	}
	return nil
}

// ExportSales renders the selected series. doctorCode selects one doctor;
// otherwise departmentCode selects the department total followed by one
// series per doctor; with neither the hospital-wide summary is exported.
func (h *Handler) ExportSales(c echo.Context) error {
	ctx := c.Request().Context()
	start, end := queryParam(c, "startMonth"), queryParam(c, "endMonth")

	series, err := h.selectSeries(ctx, c.QueryParam("doctorCode"), c.QueryParam("departmentCode"), start, end)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := WriteSalesWorkbook(&buf, series); err != nil {
		return fmt.Errorf("render sales workbook: %w", err)
	}

	h.logger.Info().
		Int("series", len(series)).
		Int("bytes", buf.Len()).
		Msg("sales workbook exported")

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename(start, end)))
	return c.Blob(http.StatusOK, ContentType, buf.Bytes())
}

func (h *Handler) selectSeries(ctx context.Context, doctorCode, departmentCode string, start, end *string) ([]Series, error) {
	switch {
	case doctorCode != "":
		rows, err := h.sales.ByDoctor(ctx, doctorCode, start, end)
		if err != nil {
			return nil, err
		}
		return []Series{SalesSeries(doctorCode, rows)}, nil

	case departmentCode != "":
		total, err := h.sales.ByDepartment(ctx, departmentCode, start, end)
		if err != nil {
			return nil, err
		}
		doctors, err := h.sales.ByDoctorsInDepartment(ctx, departmentCode, start, end)
		if err != nil {
			return nil, err
		}
		series := make([]Series, 0, len(doctors)+1)
		series = append(series, SummarySeries(departmentCode, total))
		for _, ds := range doctors {
			series = append(series, SalesSeries(ds.Doctor.Name, ds.Sales))
		}
		return series, nil

	default:
		rows, err := h.sales.Summary(ctx, start, end)
		if err != nil {
			return nil, err
		}
		return []Series{SummarySeries("All departments", rows)}, nil
	}
}

func filename(start, end *string) string {
	name := "sales"
	if start != nil {
		name += "-" + *start
	}
	if end != nil {
		name += "-" + *end
	}
	return name + ".xlsx"
}

// SummarySeries converts aggregated months to a workbook series.
func SummarySeries(name string, rows []sales.Summary) Series {
	s := Series{Name: name, Rows: make([]MonthRow, 0, len(rows))}
	for _, r := range rows {
		s.Rows = append(s.Rows, MonthRow{
			YearMonth:  r.YearMonth,
			Outpatient: r.TotalOutpatientSales,
			Inpatient:  r.TotalInpatientSales,
			Total:      r.TotalSales,
		})
	}
	return s
}

// SalesSeries converts one doctor's months to a workbook series.
func SalesSeries(name string, rows []sales.Sales) Series {
	s := Series{Name: name, Rows: make([]MonthRow, 0, len(rows))}
	for _, r := range rows {
		s.Rows = append(s.Rows, MonthRow{
			YearMonth:  r.YearMonth,
			Outpatient: r.OutpatientSales,
			Inpatient:  r.InpatientSales,
			Total:      r.TotalSales,
		})
	}
	return s
}
