package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"gfi/internal/domain/friction"
	"gfi/internal/domain/lead"
	"gfi/internal/domain/snapshot"
)

func newSnapshotCmd(loadPresets func() (friction.Presets, error)) *cobra.Command {
	var (
		flags      intakeFlags
		name       string
		email      string
		org        string
		role       string
		output     string
		diagnostic string
		audit      string
		asText     bool
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render a Friction Snapshot PDF without storing a lead",
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

			l := &lead.Lead{
				PublicID:     uuid.NewString(),
				Name:         name,
				Email:        email,
				Organization: org,
				Role:         role,
				Intake:       in,
				Estimate:     est,
				Risk:         risk,
				Source:       "cli",
				CreatedAt:    time.Now().UTC(),
			}

			composer := snapshot.NewComposer(snapshot.Links{Diagnostic: diagnostic, Audit: audit}, presets)
			snap, err := composer.Compose(l)
			if err != nil {
				return err
			}

			if output == "" {
				output = snap.Filename
			}
			if err := os.WriteFile(output, snap.PDF, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			out := cmd.OutOrStdout()
			if asText {
				fmt.Fprint(out, snapshot.RenderText(snap.Document))
			}
			fmt.Fprintf(out, "%s %s written to %s\n", tierBadge(risk.Tier), snapshot.Money(est.TotalFrictionCost), output)
			return nil
		},
	}

	flags.register(cmd)
	fl := cmd.Flags()
	fl.StringVar(&name, "name", "", "contact name")
	fl.StringVar(&email, "email", "", "contact e-mail")
	fl.StringVar(&org, "org", "", "organization")
	fl.StringVar(&role, "contact-role", "", "contact job title")
	fl.StringVarP(&output, "output", "o", "", "PDF path (defaults to the snapshot file name)")
	fl.StringVar(&diagnostic, "pay-diagnostic", os.Getenv("PAY_LINK_DIAGNOSTIC"), "diagnostic payment link")
	fl.StringVar(&audit, "pay-audit", os.Getenv("PAY_LINK_AUDIT"), "deep audit payment link")
	fl.BoolVar(&asText, "text", false, "also print the report as text")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("org")
	return cmd
}
