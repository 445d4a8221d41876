package sales

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/hospital/dashboard/internal/platform/db"
)

type salesRow struct {
	DoctorCode string
	YearMonth  string
	Outpatient pgtype.Numeric
	Inpatient  pgtype.Numeric
	UpdatedAt  time.Time
}

type summaryRow struct {
	YearMonth  string
	Outpatient pgtype.Numeric
	Inpatient  pgtype.Numeric
}

func shapeSales(rows []salesRow) ([]Sales, error) {
	out := make([]Sales, 0, len(rows))
	for _, r := range rows {
		outpatient, err := db.NumericDecimal(r.Outpatient)
		if err != nil {
			return nil, fmt.Errorf("outpatient sales %s %s: %w", r.DoctorCode, r.YearMonth, err)
		}
		inpatient, err := db.NumericDecimal(r.Inpatient)
		if err != nil {
			return nil, fmt.Errorf("inpatient sales %s %s: %w", r.DoctorCode, r.YearMonth, err)
		}
		out = append(out, Sales{
			DoctorCode:      r.DoctorCode,
			YearMonth:       r.YearMonth,
			OutpatientSales: outpatient,
			InpatientSales:  inpatient,
			TotalSales:      outpatient.Add(inpatient),
			UpdatedAt:       r.UpdatedAt,
		})
	}
	return out, nil
}

func shapeSummary(rows []summaryRow) ([]Summary, error) {
	out := make([]Summary, 0, len(rows))
	for _, r := range rows {
		outpatient, err := db.NumericDecimal(r.Outpatient)
		if err != nil {
			return nil, fmt.Errorf("outpatient total %s: %w", r.YearMonth, err)
		}
		inpatient, err := db.NumericDecimal(r.Inpatient)
		if err != nil {
			return nil, fmt.Errorf("inpatient total %s: %w", r.YearMonth, err)
		}
		out = append(out, Summary{
			YearMonth:            r.YearMonth,
			TotalOutpatientSales: outpatient,
			TotalInpatientSales:  inpatient,
			TotalSales:           outpatient.Add(inpatient),
		})
	}
	return out, nil
}

// groupByDoctor splits rows into one series per doctor, in doctor order.
// Doctors without rows get an empty series.
func groupByDoctor(doctors []Doctor, rows []Sales) []DoctorSales {
	byCode := make(map[string][]Sales, len(doctors))
	for _, s := range rows {
		byCode[s.DoctorCode] = append(byCode[s.DoctorCode], s)
	}

	out := make([]DoctorSales, 0, len(doctors))
	for _, d := range doctors {
		series := byCode[d.Code]
		if series == nil {
			series = []Sales{}
		}
		out = append(out, DoctorSales{Doctor: d, Sales: series})
	}
	return out
}
