package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/hospital/dashboard/internal/client"
	"github.com/hospital/dashboard/internal/platform/reporting"
	"github.com/hospital/dashboard/pkg/period"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Reports computed from a running API",
	}

	yoyCmd := &cobra.Command{
		Use:   "yoy",
		Short: "Compare monthly sales with the same months one year earlier",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _ := cmd.Flags().GetString("api")
			staffID, _ := cmd.Flags().GetString("staff-id")
			department, _ := cmd.Flags().GetString("department")
			doctor, _ := cmd.Flags().GetString("doctor")
			start, _ := cmd.Flags().GetString("start")
			end, _ := cmd.Flags().GetString("end")
			xlsx, _ := cmd.Flags().GetString("xlsx")

			window, err := reportWindow(start, end, time.Now())
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if api == "" {
				api = "http://localhost:" + cfg.Port
			}

			c := client.New(client.Config{BaseURL: api, StaffID: staffID}, newLogger(cfg))
			scope := client.Scope{DepartmentCode: department, DoctorCode: doctor}

			comparisons, err := c.CompareYearOverYear(context.Background(), scope, window)
			if err != nil {
				return fmt.Errorf("compare year over year: %w", err)
			}
			rows := comparisonRows(comparisons)

			if xlsx == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Sales %s to %s, %s\n", window.Start, window.End, scope)
				return printComparison(cmd.OutOrStdout(), rows)
			}

			f, err := os.Create(xlsx)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := reporting.WriteComparisonWorkbook(f, rows); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d month(s) to %s\n", len(rows), xlsx)
			return nil
		},
	}
	yoyCmd.Flags().String("api", "", "API base URL (default http://localhost:$PORT)")
	yoyCmd.Flags().String("staff-id", "", "Staff identifier sent as X-Staff-ID")
	yoyCmd.Flags().String("department", "", "Department code")
	yoyCmd.Flags().String("doctor", "", "Doctor code (takes precedence over --department)")
	yoyCmd.Flags().String("start", "", "First month, YYYY-MM (default twelve months before --end)")
	yoyCmd.Flags().String("end", "", "Last month, YYYY-MM (default current month)")
	yoyCmd.Flags().String("xlsx", "", "Write an XLSX workbook to this path instead of printing")

	cmd.AddCommand(yoyCmd)
	return cmd
}

// reportWindow resolves the comparison window. Without flags it is the
// trailing year ending in the month of now.
func reportWindow(start, end string, now time.Time) (period.MonthRange, error) {
	window, err := period.ParseMonthRange(&start, &end)
	if err != nil {
		return period.MonthRange{}, err
	}
	if window.End == "" {
		window.End = period.MonthOf(now).String()
	}
	if window.Start == "" {
		m, _ := period.ParseMonth(window.End)
		window.Start = period.TrailingYear(m).Start
	}
	return window, nil
}

func comparisonRows(in []client.Comparison) []reporting.ComparisonRow {
	out := make([]reporting.ComparisonRow, len(in))
	for i, c := range in {
		out[i] = reporting.ComparisonRow{
			YearMonth:      c.YearMonth,
			PriorYearMonth: c.PriorYearMonth,
			Current:        c.Current.TotalSales,
			Prior:          c.Prior.TotalSales,
		}
	}
	return out
}

func printComparison(w io.Writer, rows []reporting.ComparisonRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "MONTH\tPRIOR\tCURRENT\tPRIOR TOTAL\tCHANGE\tCHANGE %\t")
	for _, r := range rows {
		pct := "-"
		if ratio, ok := r.ChangeRatio(); ok {
			pct = ratio.Shift(2).StringFixed(1) + "%"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.YearMonth, r.PriorYearMonth,
			r.Current.StringFixed(2), r.Prior.StringFixed(2), r.Change().StringFixed(2), pct)
	}
	return tw.Flush()
}
