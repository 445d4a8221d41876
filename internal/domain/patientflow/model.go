package patientflow

import (
	"time"

	"github.com/hospital/dashboard/internal/domain/masterdata"
	"github.com/hospital/dashboard/pkg/period"
)

// OutpatientSummary is one day of outpatient visits across all departments.
type OutpatientSummary struct {
	Date           time.Time `json:"date"`
	TotalNew       int       `json:"totalNew"`
	TotalReturning int       `json:"totalReturning"`
	TotalPatients  int       `json:"totalPatients"`
}

// OutpatientByDepartment totals a period's outpatient visits for one department.
type OutpatientByDepartment struct {
	Department     masterdata.Department `json:"department"`
	TotalNew       int                   `json:"totalNew"`
	TotalReturning int                   `json:"totalReturning"`
	TotalPatients  int                   `json:"totalPatients"`
}

// InpatientSummary is one day of ward census and patient flow across all wards.
type InpatientSummary struct {
	Date              time.Time `json:"date"`
	TotalCurrent      int       `json:"totalCurrent"`
	TotalNewAdmission int       `json:"totalNewAdmission"`
	TotalDischarge    int       `json:"totalDischarge"`
	TotalTransferOut  int       `json:"totalTransferOut"`
	TotalTransferIn   int       `json:"totalTransferIn"`
}

// InpatientByWard totals a period's inpatient flow for one ward.
type InpatientByWard struct {
	Ward              masterdata.Ward `json:"ward"`
	TotalCurrent      int             `json:"totalCurrent"`
	TotalNewAdmission int             `json:"totalNewAdmission"`
	TotalDischarge    int             `json:"totalDischarge"`
	TotalTransferOut  int             `json:"totalTransferOut"`
	TotalTransferIn   int             `json:"totalTransferIn"`
}

// OutpatientRecord is one department-day of outpatient visits.
type OutpatientRecord struct {
	ID                     int                   `json:"id"`
	Date                   time.Time             `json:"date"`
	Department             masterdata.Department `json:"department"`
	NewPatientsCount       int                   `json:"newPatientsCount"`
	ReturningPatientsCount int                   `json:"returningPatientsCount"`
	TotalCount             int                   `json:"totalCount"`
	CreatedAt              time.Time             `json:"createdAt"`
}

// InpatientRecord is one ward-department-day of census and patient flow.
type InpatientRecord struct {
	ID                  int                   `json:"id"`
	Date                time.Time             `json:"date"`
	Ward                masterdata.Ward       `json:"ward"`
	Department          masterdata.Department `json:"department"`
	CurrentPatientCount int                   `json:"currentPatientCount"`
	NewAdmissionCount   int                   `json:"newAdmissionCount"`
	DischargeCount      int                   `json:"dischargeCount"`
	TransferOutCount    int                   `json:"transferOutCount"`
	TransferInCount     int                   `json:"transferInCount"`
	CreatedAt           time.Time             `json:"createdAt"`
}

// OutpatientFilter narrows outpatient record listings.
type OutpatientFilter struct {
	Period       period.DateRange
	DepartmentID *int
}

// InpatientFilter narrows inpatient record listings.
type InpatientFilter struct {
	Period       period.DateRange
	WardID       *int
	DepartmentID *int
}
