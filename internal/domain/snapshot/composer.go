package snapshot

import (
	"fmt"
	"strconv"
	"time"

	"gfi/internal/domain/friction"
	"gfi/internal/domain/lead"
)

const (
	reportTitle      = "GFI Friction Snapshot"
	linkUnconfigured = "(link not configured)"
	notAvailable     = "n/a"
)

// Links are the payment links printed on the next-steps page
type Links struct {
	Diagnostic string
	Audit      string
}

// Composer assembles Snapshots from stored or freshly computed leads
type Composer struct {
	links   Links
	presets friction.Presets
	now     func() time.Time
}

func NewComposer(links Links, presets friction.Presets) *Composer {
	return &Composer{
		links:   links,
		presets: presets,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Compose builds the document and renders it to PDF. The lead is trusted to
// have passed the cost model already.
func (c *Composer) Compose(l *lead.Lead) (*Snapshot, error) {
	doc := c.Document(l)

	pdf, err := RenderPDF(doc)
	if err != nil {
		return nil, fmt.Errorf("render snapshot %s: %w", l.PublicID, err)
	}

	return &Snapshot{
		Document:    doc,
		PDF:         pdf,
		Filename:    Filename(l.PublicID),
		GeneratedAt: c.now(),
	}, nil
}

// Filename is the download name of a lead's Snapshot
func Filename(publicID string) string {
	return "gfi-friction-snapshot-" + publicID + ".pdf"
}

// Document lays out the three pages for a lead
func (c *Composer) Document(l *lead.Lead) Document {
	return Document{
		Title:      reportTitle,
		PreparedAt: l.CreatedAt.UTC(),
		Pages: []Page{
			c.summaryPage(l),
			c.breakdownPage(l),
			c.nextStepsPage(l),
		},
		Footer: "Reference " + l.PublicID,
	}
}

func (c *Composer) summaryPage(l *lead.Lead) Page {
	role := l.Role
	if role == "" {
		role = notAvailable
	}

	return Page{
		Title: "Summary",
		Sections: []Section{
			{
				Heading: "Prepared for",
				Rows: []Row{
					{"Name", l.Name},
					{"Organization", l.Organization},
					{"Role", role},
					{"Email", l.Email},
					{"Prepared on", l.CreatedAt.UTC().Format("2 January 2006")},
				},
			},
			{
				Heading: "Headline",
				Rows: []Row{
					{"Annual friction cost", Money(l.Estimate.TotalFrictionCost)},
					{"Risk tier", label(string(l.Risk.Tier))},
					{"Capacity lost", Percent(l.Estimate.CapacityLossPct)},
					{"Recommended engagement", l.Risk.Engagement},
				},
			},
			{
				Heading: "What this means",
				Lines: []string{
					"Friction is paid time your people spend waiting on approvals and hand-offs instead of producing value.",
					"Opportunity cost weighs every lost hour by what that role would otherwise create, so it usually exceeds the wage cost.",
					"These figures are directional estimates built from your own inputs. A diagnostic replaces them with measured baselines.",
				},
			},
		},
	}
}

func (c *Composer) breakdownPage(l *lead.Lead) Page {
	in, est := l.Intake, l.Estimate

	benchmark := notAvailable
	if v, ok := c.presets.Benchmark(in.Industry); ok {
		benchmark = Percent(v)
	}

	return Page{
		Title: "Inputs & Breakdown",
		Sections: []Section{
			{
				Heading: "Your inputs",
				Rows: []Row{
					{"Organization size", label(string(in.OrganizationSize))},
					{"Industry", label(string(in.Industry))},
					{"Process delay (hours per person per year)", Number(in.ProcessDelayHours, 2)},
					{"Affected people", Number(float64(in.AffectedPeople), 0)},
					{"Hourly rate", Money(in.HourlyRate)},
					{"Role type", label(in.RoleType)},
					{"Opportunity multiplier", strconv.FormatFloat(est.Multiplier, 'f', 2, 64) + "x"},
				},
			},
			{
				Heading: "Industry benchmark",
				Rows: []Row{
					{"Your capacity lost", Percent(est.CapacityLossPct)},
					{label(string(in.Industry)) + " benchmark", benchmark},
				},
			},
			{
				Heading: "Cost breakdown",
				Table:   true,
				Rows: []Row{
					{"Total delay hours", Number(est.TotalDelayHours, 2)},
					{"Weeks lost (40-hour weeks)", Number(est.WeeksLost, 2)},
					{"Direct cost", Money(est.DirectCost)},
					{"Opportunity cost", Money(est.OpportunityCost)},
					{"Total friction cost", Money(est.TotalFrictionCost)},
				},
			},
		},
	}
}

func (c *Composer) nextStepsPage(l *lead.Lead) Page {
	return Page{
		Title: "Next Steps",
		Sections: []Section{
			{
				Heading: "Recommended for you",
				Lines:   []string{l.Risk.Engagement},
			},
			{
				Heading: "AI Impact Quick Diagnostic - $999",
				Lines: []string{
					"A 48-hour performance review using your operational baseline and post-AI metrics.",
					"Deliverables: net impact score, risk classification and a 6 to 8 page PDF report.",
					"Best for teams needing an immediate leadership answer.",
				},
				Rows: []Row{{"Payment link", linkOrPlaceholder(c.links.Diagnostic)}},
			},
			{
				Heading: "AI Friction Deep Audit - $4,999",
				Lines: []string{
					"Workflow mapping to locate where AI created or shifted friction.",
					"Deliverables: process map with bottleneck analysis, latency breakdown and a 15 to 25 page governance impact report.",
					"Best for organizations seeing mixed results after AI deployment.",
				},
				Rows: []Row{{"Payment link", linkOrPlaceholder(c.links.Audit)}},
			},
		},
	}
}

func linkOrPlaceholder(link string) string {
	if link == "" {
		return linkUnconfigured
	}
	return link
}
