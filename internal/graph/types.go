package graph

import (
	"time"

	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"

	"github.com/hospital/dashboard/internal/domain/masterdata"
	"github.com/hospital/dashboard/internal/domain/patientflow"
	"github.com/hospital/dashboard/internal/domain/sales"
	"github.com/hospital/dashboard/internal/domain/staff"
	"github.com/hospital/dashboard/pkg/period"
)

func nonNull(t graphql.Output) graphql.Output { return graphql.NewNonNull(t) }

// listOf renders [T!]!.
func listOf(t graphql.Output) graphql.Output {
	return graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t)))
}

// sourceAs unwraps a resolver source that may arrive as T or *T.
func sourceAs[T any](src interface{}) (T, bool) {
	switch v := src.(type) {
	case T:
		return v, true
	case *T:
		if v != nil {
			return *v, true
		}
	}
	var zero T
	return zero, false
}

// dateField renders a calendar date as YYYY-MM-DD.
func dateField[T any](get func(T) time.Time) *graphql.Field {
	return &graphql.Field{
		Type: nonNull(graphql.String),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			v, ok := sourceAs[T](p.Source)
			if !ok {
				return nil, nil
			}
			return period.FormatDate(get(v)), nil
		},
	}
}

// timestampField renders an instant as an ISO-8601 UTC timestamp.
func timestampField[T any](get func(T) time.Time) *graphql.Field {
	return &graphql.Field{
		Type: nonNull(graphql.String),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			v, ok := sourceAs[T](p.Source)
			if !ok {
				return nil, nil
			}
			return period.FormatTimestamp(get(v)), nil
		},
	}
}

// moneyField exposes an exact decimal as a GraphQL Float.
func moneyField[T any](get func(T) decimal.Decimal) *graphql.Field {
	return &graphql.Field{
		Type: nonNull(graphql.Float),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			v, ok := sourceAs[T](p.Source)
			if !ok {
				return nil, nil
			}
			return get(v).InexactFloat64(), nil
		},
	}
}

func intField() *graphql.Field    { return &graphql.Field{Type: nonNull(graphql.Int)} }
func stringField() *graphql.Field { return &graphql.Field{Type: nonNull(graphql.String)} }

var departmentType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Department",
	Fields: graphql.Fields{
		"id":           intField(),
		"code":         stringField(),
		"name":         stringField(),
		"displayOrder": intField(),
		"createdAt":    timestampField(func(d masterdata.Department) time.Time { return d.CreatedAt }),
	},
})

var wardType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Ward",
	Fields: graphql.Fields{
		"id":           intField(),
		"code":         stringField(),
		"name":         stringField(),
		"capacity":     intField(),
		"displayOrder": intField(),
		"createdAt":    timestampField(func(w masterdata.Ward) time.Time { return w.CreatedAt }),
	},
})

var outpatientRecordType = graphql.NewObject(graphql.ObjectConfig{
	Name: "OutpatientRecord",
	Fields: graphql.Fields{
		"id":                     intField(),
		"date":                   dateField(func(r patientflow.OutpatientRecord) time.Time { return r.Date }),
		"department":             &graphql.Field{Type: nonNull(departmentType)},
		"newPatientsCount":       intField(),
		"returningPatientsCount": intField(),
		"totalCount":             intField(),
		"createdAt":              timestampField(func(r patientflow.OutpatientRecord) time.Time { return r.CreatedAt }),
	},
})

var inpatientRecordType = graphql.NewObject(graphql.ObjectConfig{
	Name: "InpatientRecord",
	Fields: graphql.Fields{
		"id":                  intField(),
		"date":                dateField(func(r patientflow.InpatientRecord) time.Time { return r.Date }),
		"ward":                &graphql.Field{Type: nonNull(wardType)},
		"department":          &graphql.Field{Type: nonNull(departmentType)},
		"currentPatientCount": intField(),
		"newAdmissionCount":   intField(),
		"dischargeCount":      intField(),
		"transferOutCount":    intField(),
		"transferInCount":     intField(),
		"createdAt":           timestampField(func(r patientflow.InpatientRecord) time.Time { return r.CreatedAt }),
	},
})

var outpatientSummaryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "OutpatientSummary",
	Fields: graphql.Fields{
		"date":           dateField(func(s patientflow.OutpatientSummary) time.Time { return s.Date }),
		"totalNew":       intField(),
		"totalReturning": intField(),
		"totalPatients":  intField(),
	},
})

var inpatientSummaryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "InpatientSummary",
	Fields: graphql.Fields{
		"date":              dateField(func(s patientflow.InpatientSummary) time.Time { return s.Date }),
		"totalCurrent":      intField(),
		"totalNewAdmission": intField(),
		"totalDischarge":    intField(),
		"totalTransferOut":  intField(),
		"totalTransferIn":   intField(),
	},
})

var outpatientByDepartmentType = graphql.NewObject(graphql.ObjectConfig{
	Name: "OutpatientByDepartment",
	Fields: graphql.Fields{
		"department":     &graphql.Field{Type: nonNull(departmentType)},
		"totalNew":       intField(),
		"totalReturning": intField(),
		"totalPatients":  intField(),
	},
})

var inpatientByWardType = graphql.NewObject(graphql.ObjectConfig{
	Name: "InpatientByWard",
	Fields: graphql.Fields{
		"ward":              &graphql.Field{Type: nonNull(wardType)},
		"totalCurrent":      intField(),
		"totalNewAdmission": intField(),
		"totalDischarge":    intField(),
		"totalTransferOut":  intField(),
		"totalTransferIn":   intField(),
	},
})

var permissionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Permission",
	Fields: graphql.Fields{
		"jobTypeCode": stringField(),
		"jobTypeName": stringField(),
		"level":       intField(),
	},
})

var staffType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Staff",
	Fields: graphql.Fields{
		"id":          stringField(),
		"name":        stringField(),
		"jobTypeCode": stringField(),
		"permission":  &graphql.Field{Type: nonNull(permissionType)},
		"createdAt":   timestampField(func(s staff.Staff) time.Time { return s.CreatedAt }),
	},
})

var doctorType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Doctor",
	Fields: graphql.Fields{
		"code":           stringField(),
		"name":           stringField(),
		"departmentCode": stringField(),
		"displayOrder":   intField(),
		"department":     &graphql.Field{Type: nonNull(departmentType)},
		"createdAt":      timestampField(func(d sales.Doctor) time.Time { return d.CreatedAt }),
	},
})

var salesType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Sales",
	Fields: graphql.Fields{
		"doctorCode":      stringField(),
		"yearMonth":       stringField(),
		"outpatientSales": moneyField(func(s sales.Sales) decimal.Decimal { return s.OutpatientSales }),
		"inpatientSales":  moneyField(func(s sales.Sales) decimal.Decimal { return s.InpatientSales }),
		"totalSales":      moneyField(func(s sales.Sales) decimal.Decimal { return s.TotalSales }),
		"updatedAt":       timestampField(func(s sales.Sales) time.Time { return s.UpdatedAt }),
	},
})

var salesSummaryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "SalesSummary",
	Fields: graphql.Fields{
		"yearMonth":            stringField(),
		"totalOutpatientSales": moneyField(func(s sales.Summary) decimal.Decimal { return s.TotalOutpatientSales }),
		"totalInpatientSales":  moneyField(func(s sales.Summary) decimal.Decimal { return s.TotalInpatientSales }),
		"totalSales":           moneyField(func(s sales.Summary) decimal.Decimal { return s.TotalSales }),
	},
})

var doctorSalesType = graphql.NewObject(graphql.ObjectConfig{
	Name: "DoctorSales",
	Fields: graphql.Fields{
		"doctor": &graphql.Field{Type: nonNull(doctorType)},
		"sales":  &graphql.Field{Type: listOf(salesType)},
	},
})
