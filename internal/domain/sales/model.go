package sales

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hospital/dashboard/internal/domain/masterdata"
)

// Doctor belongs to one department, referenced by its code.
type Doctor struct {
	Code           string                `json:"code"`
	Name           string                `json:"name"`
	DepartmentCode string                `json:"departmentCode"`
	DisplayOrder   int                   `json:"displayOrder"`
	Department     masterdata.Department `json:"department"`
	CreatedAt      time.Time             `json:"createdAt"`
}

// Sales is one doctor-month of revenue. TotalSales is always
// OutpatientSales + InpatientSales.
type Sales struct {
	DoctorCode      string          `json:"doctorCode"`
	YearMonth       string          `json:"yearMonth"`
	OutpatientSales decimal.Decimal `json:"outpatientSales"`
	InpatientSales  decimal.Decimal `json:"inpatientSales"`
	TotalSales      decimal.Decimal `json:"totalSales"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Summary is one month of revenue summed over a set of doctors.
type Summary struct {
	YearMonth            string          `json:"yearMonth"`
	TotalOutpatientSales decimal.Decimal `json:"totalOutpatientSales"`
	TotalInpatientSales  decimal.Decimal `json:"totalInpatientSales"`
	TotalSales           decimal.Decimal `json:"totalSales"`
}

// DoctorSales is one doctor's monthly series. Series of different doctors
// are not aligned to a common set of months.
type DoctorSales struct {
	Doctor Doctor  `json:"doctor"`
	Sales  []Sales `json:"sales"`
}
