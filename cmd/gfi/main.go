// Command gfi runs the friction calculator offline and issues admin tokens.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gfi/internal/config"
	"gfi/internal/domain/friction"
)

func main() {
	config.LoadDotEnv()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var presetsFile string

	root := &cobra.Command{
		Use:           "gfi",
		Short:         "GFI friction calculator",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&presetsFile, "presets", os.Getenv("GFI_PRESETS_FILE"), "role presets YAML (embedded defaults when empty)")

	loadPresets := func() (friction.Presets, error) {
		p, err := config.LoadPresets(presetsFile)
		if err != nil {
			return friction.Presets{}, fmt.Errorf("load presets: %w", err)
		}
		return p, nil
	}

	root.AddCommand(
		newEstimateCmd(loadPresets),
		newSnapshotCmd(loadPresets),
		newProfitLeakCmd(),
		newAdminTokenCmd(),
	)
	return root
}

// intakeFlags binds the calculator inputs shared by estimate and snapshot
type intakeFlags struct {
	size       string
	industry   string
	hours      float64
	people     int
	rate       float64
	role       string
	multiplier float64
}

func (f *intakeFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.size, "size", string(friction.SizeMedium), "organization size (small, medium, large, enterprise)")
	fl.StringVar(&f.industry, "industry", string(friction.IndustryOther), "industry")
	fl.Float64Var(&f.hours, "hours", 0, "process delay hours per person per year")
	fl.IntVar(&f.people, "people", 1, "number of affected people")
	fl.Float64Var(&f.rate, "rate", 0, "loaded hourly rate")
	fl.StringVar(&f.role, "role", "specialist", "role preset key or \"custom\"")
	fl.Float64Var(&f.multiplier, "multiplier", 0, "opportunity multiplier for --role custom")
}

func (f *intakeFlags) intake(cmd *cobra.Command) friction.Intake {
	in := friction.Intake{
		OrganizationSize:  friction.OrganizationSize(f.size),
		Industry:          friction.Industry(f.industry),
		ProcessDelayHours: f.hours,
		AffectedPeople:    f.people,
		HourlyRate:        f.rate,
		RoleType:          f.role,
	}
	if cmd.Flags().Changed("multiplier") {
		m := f.multiplier
		in.Multiplier = &m
	}
	return in
}
