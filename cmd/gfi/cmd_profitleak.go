package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gfi/internal/domain/friction"
	"gfi/internal/domain/snapshot"
)

func newProfitLeakCmd() *cobra.Command {
	var in friction.ProfitLeakIntake
	var band string

	cmd := &cobra.Command{
		Use:   "profit-leak",
		Short: "Estimate annual profit leak from organizational drag",
		RunE: func(cmd *cobra.Command, args []string) error {
			in.EmployeeBand = friction.EmployeeBand(band)
			res, err := friction.ComputeProfitLeak(in)
			if err != nil {
				return err
			}

			rows := make([]kv, 0, len(res.Breakdown)+4)
			for _, c := range res.Breakdown {
				rows = append(rows, kv{c.Key, snapshot.Money(c.Amount)})
			}
			rows = append(rows,
				kv{"Total leak", snapshot.Money(res.TotalLeak)},
				kv{"Leak per employee", snapshot.Money(res.LeakPerEmployee)},
				kv{"Risk score", snapshot.Number(res.RiskScore, 2)},
				kv{"Risk band", string(res.RiskBand)},
			)
			fmt.Fprintln(cmd.OutOrStdout(), panel("Profit leak", rows))
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&in.CompanyName, "company", "", "company name")
	fl.StringVar(&band, "employees", "11-50", "employee band (1-10, 11-50, 51-200, 201-500, 501-1000, 1000+)")
	fl.StringVar(&in.Industry, "industry", "", "industry label")
	fl.Float64Var(&in.AvgSalary, "avg-salary", 75000, "average annual salary")
	fl.Float64Var(&in.RevenuePerEmployee, "revenue-per-employee", 150000, "annual revenue per employee")
	fl.Float64Var(&in.MeetingHoursPerWeek, "meeting-hours", 15, "meeting hours per week")
	fl.IntVar(&in.ApprovalLayers, "approval-layers", 3, "approval layers")
	fl.Float64Var(&in.ProjectDelayPct, "project-delay", 30, "projects delayed (%)")
	fl.Float64Var(&in.ReworkPct, "rework", 15, "rework share (%)")
	fl.Float64Var(&in.DecisionTimeDays, "decision-days", 14, "days to reach a decision")
	fl.Float64Var(&in.TurnoverRate, "turnover", 15, "annual turnover (%)")
	fl.Float64Var(&in.CustomerComplaintRate, "complaints", 5, "customer complaint rate (%)")
	return cmd
}
