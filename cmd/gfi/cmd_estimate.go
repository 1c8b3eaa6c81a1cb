package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"gfi/internal/domain/friction"
	"gfi/internal/domain/snapshot"
)

func newEstimateCmd(loadPresets func() (friction.Presets, error)) *cobra.Command {
	var (
		flags  intakeFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate annual friction cost",
		Example: `  gfi estimate --hours 120 --people 40 --rate 65 --role manager
  gfi estimate --hours 80 --people 12 --rate 90 --role custom --multiplier 6.5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := loadPresets()
			if err != nil {
				return err
			}

			in := flags.intake(cmd)
			est, err := friction.NewModel(presets).Estimate(in)
			if err != nil {
				return err
			}
			risk, err := friction.ClassifyRisk(est.TotalFrictionCost)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					Estimate friction.Estimate `json:"estimate"`
					Risk     friction.RiskTier `json:"risk"`
				}{est, risk})
			}

			fmt.Fprintln(out, panel("Friction estimate", []kv{
				{"Total delay hours", snapshot.Number(est.TotalDelayHours, 2)},
				{"Weeks lost", snapshot.Number(est.WeeksLost, 2)},
				{"Capacity lost", snapshot.Percent(est.CapacityLossPct)},
				{"Multiplier", strconv.FormatFloat(est.Multiplier, 'f', 2, 64) + "x"},
				{"Direct cost", snapshot.Money(est.DirectCost)},
				{"Opportunity cost", snapshot.Money(est.OpportunityCost)},
				{"Total friction cost", snapshot.Money(est.TotalFrictionCost)},
			}))
			fmt.Fprintf(out, "%s %s\n", tierBadge(risk.Tier), risk.Engagement)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a summary")
	return cmd
}
