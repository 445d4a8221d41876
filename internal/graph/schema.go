// Package graph exposes the reporting services as a GraphQL schema.
package graph

import (
	"context"

	"github.com/graphql-go/graphql"

	"github.com/hospital/dashboard/internal/domain/masterdata"
	"github.com/hospital/dashboard/internal/domain/patientflow"
	"github.com/hospital/dashboard/internal/domain/sales"
	"github.com/hospital/dashboard/internal/domain/staff"
	"github.com/hospital/dashboard/internal/platform/auth"
)

type MasterDataService interface {
	ListDepartments(ctx context.Context) ([]masterdata.Department, error)
	ListWards(ctx context.Context) ([]masterdata.Ward, error)
}

type PatientFlowService interface {
	OutpatientSummary(ctx context.Context, startDate, endDate *string) ([]patientflow.OutpatientSummary, error)
	OutpatientByDepartment(ctx context.Context, startDate, endDate *string) ([]patientflow.OutpatientByDepartment, error)
	InpatientSummary(ctx context.Context, startDate, endDate *string) ([]patientflow.InpatientSummary, error)
	InpatientByWard(ctx context.Context, startDate, endDate *string) ([]patientflow.InpatientByWard, error)
	OutpatientRecords(ctx context.Context, startDate, endDate *string, departmentID *int) ([]patientflow.OutpatientRecord, error)
	InpatientRecords(ctx context.Context, startDate, endDate *string, wardID, departmentID *int) ([]patientflow.InpatientRecord, error)
}

type StaffService interface {
	VerifyStaff(ctx context.Context, staffID string) (*staff.Staff, error)
}

type SalesService interface {
	ListDoctors(ctx context.Context) ([]sales.Doctor, error)
	ListDoctorsByDepartment(ctx context.Context, departmentCode string) ([]sales.Doctor, error)
	Summary(ctx context.Context, startMonth, endMonth *string) ([]sales.Summary, error)
	ByDoctor(ctx context.Context, doctorCode string, startMonth, endMonth *string) ([]sales.Sales, error)
	ByDepartment(ctx context.Context, departmentCode string, startMonth, endMonth *string) ([]sales.Summary, error)
	ByDoctorsInDepartment(ctx context.Context, departmentCode string, startMonth, endMonth *string) ([]sales.DoctorSales, error)
}

// Services bundles the backends the schema resolves against.
type Services struct {
	MasterData  MasterDataService
	PatientFlow PatientFlowService
	Staff       StaffService
	Sales       SalesService
}

// Options tunes schema behaviour.
type Options struct {
	// SalesMinLevel is the permission level required by the revenue fields.
	SalesMinLevel int
}

type resolver struct {
	svc  Services
	opts Options
}

// NewSchema builds the query schema. Every field resolves through exactly
// one service call.
func NewSchema(svc Services, opts Options) (graphql.Schema, error) {
	r := &resolver{svc: svc, opts: opts}
	return graphql.NewSchema(graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Query",
			Fields: r.queryFields(),
		}),
	})
}

var (
	dateRangeArgs = graphql.FieldConfigArgument{
		"startDate": &graphql.ArgumentConfig{Type: graphql.String},
		"endDate":   &graphql.ArgumentConfig{Type: graphql.String},
	}
	monthRangeArgs = graphql.FieldConfigArgument{
		"startMonth": &graphql.ArgumentConfig{Type: graphql.String},
		"endMonth":   &graphql.ArgumentConfig{Type: graphql.String},
	}
)

func withArgs(base graphql.FieldConfigArgument, extra graphql.FieldConfigArgument) graphql.FieldConfigArgument {
	out := make(graphql.FieldConfigArgument, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func requiredString(name string) graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		name: &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
	}
}

func optString(args map[string]interface{}, name string) *string {
	if v, ok := args[name].(string); ok {
		return &v
	}
	return nil
}

func optInt(args map[string]interface{}, name string) *int {
	if v, ok := args[name].(int); ok {
		return &v
	}
	return nil
}

func str(args map[string]interface{}, name string) string {
	v, _ := args[name].(string)
	return v
}

func (r *resolver) queryFields() graphql.Fields {
	return graphql.Fields{
		// Master data
		"departments": &graphql.Field{
			Type: listOf(departmentType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return r.svc.MasterData.ListDepartments(p.Context)
			},
		},
		"wards": &graphql.Field{
			Type: listOf(wardType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return r.svc.MasterData.ListWards(p.Context)
			},
		},

		// Outpatients
		"outpatientRecords": &graphql.Field{
			Type: listOf(outpatientRecordType),
			Args: withArgs(dateRangeArgs, graphql.FieldConfigArgument{
				"departmentId": &graphql.ArgumentConfig{Type: graphql.Int},
			}),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return r.svc.PatientFlow.OutpatientRecords(p.Context,
					optString(p.Args, "startDate"), optString(p.Args, "endDate"),
					optInt(p.Args, "departmentId"))
			},
		},
		"outpatientSummary": &graphql.Field{
			Type: listOf(outpatientSummaryType),
			Args: dateRangeArgs,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return r.svc.PatientFlow.OutpatientSummary(p.Context,
					optString(p.Args, "startDate"), optString(p.Args, "endDate"))
			},
		},
		"outpatientByDepartment": &graphql.Field{
			Type: listOf(outpatientByDepartmentType),
			Args: dateRangeArgs,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return r.svc.PatientFlow.OutpatientByDepartment(p.Context,
					optString(p.Args, "startDate"), optString(p.Args, "endDate"))
			},
		},

		// Inpatients
		"inpatientRecords": &graphql.Field{
			Type: listOf(inpatientRecordType),
			Args: withArgs(dateRangeArgs, graphql.FieldConfigArgument{
				"wardId":       &graphql.ArgumentConfig{Type: graphql.Int},
				"departmentId": &graphql.ArgumentConfig{Type: graphql.Int},
			}),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return r.svc.PatientFlow.InpatientRecords(p.Context,
					optString(p.Args, "startDate"), optString(p.Args, "endDate"),
					optInt(p.Args, "wardId"), optInt(p.Args, "departmentId"))
			},
		},
		"inpatientSummary": &graphql.Field{
			Type: listOf(inpatientSummaryType),
			Args: dateRangeArgs,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return r.svc.PatientFlow.InpatientSummary(p.Context,
					optString(p.Args, "startDate"), optString(p.Args, "endDate"))
			},
		},
		"inpatientByWard": &graphql.Field{
			Type: listOf(inpatientByWardType),
			Args: dateRangeArgs,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return r.svc.PatientFlow.InpatientByWard(p.Context,
					optString(p.Args, "startDate"), optString(p.Args, "endDate"))
			},
		},

		// Staff handshake. A null result means unauthenticated.
		"verifyStaff": &graphql.Field{
			Type: staffType,
			Args: requiredString("staffId"),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				s, err := r.svc.Staff.VerifyStaff(p.Context, str(p.Args, "staffId"))
				if err != nil || s == nil {
					return nil, err
				}
				return s, nil
			},
		},

		// Doctors and sales
		"doctors": &graphql.Field{
			Type: listOf(doctorType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return r.svc.Sales.ListDoctors(p.Context)
			},
		},
		"doctorsByDepartment": &graphql.Field{
			Type: listOf(doctorType),
			Args: requiredString("departmentCode"),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return r.svc.Sales.ListDoctorsByDepartment(p.Context, str(p.Args, "departmentCode"))
			},
		},
		"salesSummary": &graphql.Field{
			Type: listOf(salesSummaryType),
			Args: monthRangeArgs,
			Resolve: r.restricted(func(p graphql.ResolveParams) (interface{}, error) {
				return r.svc.Sales.Summary(p.Context,
					optString(p.Args, "startMonth"), optString(p.Args, "endMonth"))
			}),
		},
		"salesByDoctor": &graphql.Field{
			Type: listOf(salesType),
			Args: withArgs(monthRangeArgs, requiredString("doctorCode")),
			Resolve: r.restricted(func(p graphql.ResolveParams) (interface{}, error) {
				return r.svc.Sales.ByDoctor(p.Context, str(p.Args, "doctorCode"),
					optString(p.Args, "startMonth"), optString(p.Args, "endMonth"))
			}),
		},
		"salesByDepartment": &graphql.Field{
			Type: listOf(salesSummaryType),
			Args: withArgs(monthRangeArgs, requiredString("departmentCode")),
			Resolve: r.restricted(func(p graphql.ResolveParams) (interface{}, error) {
				return r.svc.Sales.ByDepartment(p.Context, str(p.Args, "departmentCode"),
					optString(p.Args, "startMonth"), optString(p.Args, "endMonth"))
			}),
		},
		"salesByDoctorsInDepartment": &graphql.Field{
			Type: listOf(doctorSalesType),
			Args: withArgs(monthRangeArgs, requiredString("departmentCode")),
			Resolve: r.restricted(func(p graphql.ResolveParams) (interface{}, error) {
				return r.svc.Sales.ByDoctorsInDepartment(p.Context, str(p.Args, "departmentCode"),
					optString(p.Args, "startMonth"), optString(p.Args, "endMonth"))
			}),
		},
	}
}

// restricted gates a resolver behind the sales permission level.
func (r *resolver) restricted(next graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		if err := auth.RequireLevel(p.Context, r.opts.SalesMinLevel); err != nil {
			return nil, err
		}
		return next(p)
	}
}
