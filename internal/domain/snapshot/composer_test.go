package snapshot

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gfi/internal/domain/friction"
	"gfi/internal/domain/lead"
)

func testPresets() friction.Presets {
	return friction.Presets{
		Roles: []friction.RolePreset{
			{Key: "manager", Label: "Manager", Multiplier: 5},
		},
		Benchmarks: map[friction.Industry]float64{
			friction.IndustryFinance: 22,
		},
	}
}

func testLead(t *testing.T) *lead.Lead {
	t.Helper()

	in := friction.Intake{
		OrganizationSize:  friction.SizeLarge,
		Industry:          friction.IndustryFinance,
		ProcessDelayHours: 120,
		AffectedPeople:    250,
		HourlyRate:        85,
		RoleType:          "manager",
	}
	est, err := friction.NewModel(testPresets()).Estimate(in)
	require.NoError(t, err)
	risk, err := friction.ClassifyRisk(est.TotalFrictionCost)
	require.NoError(t, err)

	return &lead.Lead{
		PublicID:     "5b0d6a4e-7c1f-4f53-9a43-2f3f9f1c0b11",
		Name:         "Ana Ruiz",
		Email:        "ana@acme.example",
		Organization: "Acme Financial",
		Role:         "COO",
		Intake:       in,
		Estimate:     est,
		Risk:         risk,
		CreatedAt:    time.Date(2026, 4, 9, 15, 30, 0, 0, time.UTC),
	}
}

func newTestComposer() *Composer {
	return NewComposer(Links{
		Diagnostic: "https://pay.example/diagnostic",
		Audit:      "https://pay.example/audit",
	}, testPresets())
}

func findRow(t *testing.T, d Document, page int, labelText string) string {
	t.Helper()
	for _, s := range d.Pages[page].Sections {
		for _, r := range s.Rows {
			if r.Label == labelText {
				return r.Value
			}
		}
	}
	t.Fatalf("row %q not found on page %d", labelText, page+1)
	return ""
}

func TestComposer_DocumentLayout(t *testing.T) {
	l := testLead(t)
	doc := newTestComposer().Document(l)

	require.Len(t, doc.Pages, 3)
	assert.Equal(t, "Summary", doc.Pages[0].Title)
	assert.Equal(t, "Inputs & Breakdown", doc.Pages[1].Title)
	assert.Equal(t, "Next Steps", doc.Pages[2].Title)
	assert.Equal(t, l.CreatedAt, doc.PreparedAt)

	// 120h * 250 people * 85 = 2,550,000 direct, x5 opportunity
	assert.Equal(t, "$15,300,000.00", findRow(t, doc, 0, "Annual friction cost"))
	assert.Equal(t, "Critical", findRow(t, doc, 0, "Risk tier"))
	assert.Equal(t, "1,442.31%", findRow(t, doc, 0, "Capacity lost"))
	assert.Equal(t, "Tier-2 paid structural audit", findRow(t, doc, 0, "Recommended engagement"))
	assert.Equal(t, "9 April 2026", findRow(t, doc, 0, "Prepared on"))
	assert.Len(t, doc.Pages[0].Sections[2].Lines, 3)

	assert.Equal(t, "$2,550,000.00", findRow(t, doc, 1, "Direct cost"))
	assert.Equal(t, "$12,750,000.00", findRow(t, doc, 1, "Opportunity cost"))
	assert.Equal(t, "30,000.00", findRow(t, doc, 1, "Total delay hours"))
	assert.Equal(t, "750.00", findRow(t, doc, 1, "Weeks lost (40-hour weeks)"))
	assert.Equal(t, "5.00x", findRow(t, doc, 1, "Opportunity multiplier"))
	assert.Equal(t, "22.00%", findRow(t, doc, 1, "Finance benchmark"))
	assert.Equal(t, "Large", findRow(t, doc, 1, "Organization size"))

	assert.Equal(t, []string{"https://pay.example/diagnostic", "https://pay.example/audit"}, []string{
		doc.Pages[2].Sections[1].Rows[0].Value,
		doc.Pages[2].Sections[2].Rows[0].Value,
	})
}

func TestComposer_MissingBenchmarkAndLinks(t *testing.T) {
	l := testLead(t)
	l.Intake.Industry = friction.IndustryRetail
	l.Role = ""

	doc := NewComposer(Links{}, testPresets()).Document(l)

	assert.Equal(t, "n/a", findRow(t, doc, 1, "Retail benchmark"))
	assert.Equal(t, "n/a", findRow(t, doc, 0, "Role"))
	for _, s := range doc.Pages[2].Sections[1:] {
		assert.Equal(t, "(link not configured)", s.Rows[0].Value)
	}
}

func TestComposer_Deterministic(t *testing.T) {
	c := newTestComposer()

	first, err := c.Compose(testLead(t))
	require.NoError(t, err)

	c.now = func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }
	second, err := c.Compose(testLead(t))
	require.NoError(t, err)

	if diff := cmp.Diff(first.Document, second.Document); diff != "" {
		t.Fatalf("documents differ (-first +second):\n%s", diff)
	}
	assert.True(t, bytes.Equal(first.PDF, second.PDF), "pdf output must be byte-identical")
	assert.Equal(t, RenderText(first.Document), RenderText(second.Document))
	assert.NotEqual(t, first.GeneratedAt, second.GeneratedAt)
}

func TestComposer_DifferentLeadsDiffer(t *testing.T) {
	c := newTestComposer()

	a, err := c.Compose(testLead(t))
	require.NoError(t, err)

	other := testLead(t)
	other.Name = "Luis Gomez"
	b, err := c.Compose(other)
	require.NoError(t, err)

	assert.NotEmpty(t, cmp.Diff(a.Document, b.Document))
	assert.False(t, bytes.Equal(a.PDF, b.PDF))
}

func TestComposer_PDF(t *testing.T) {
	l := testLead(t)
	snap, err := newTestComposer().Compose(l)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(snap.PDF, []byte("%PDF-")))
	assert.Equal(t, "gfi-friction-snapshot-"+l.PublicID+".pdf", snap.Filename)
	assert.Contains(t, string(snap.PDF), "/Count 3")
}

func TestComposer_PDFKeepsNonLatinNames(t *testing.T) {
	l := testLead(t)
	l.Name = "王小明"
	d := newTestComposer().Document(l)
	require.True(t, needsWide(d))

	raw, err := renderPDF(d, false)
	require.NoError(t, err)

	// UTF-16BE of the name as written into the content stream; 0x5C is escaped
	assert.Contains(t, string(raw), "(\x73\x8b\x5c\x5c\x0f\x66\x0e)Tj")
	assert.Contains(t, string(raw), "/FontFile2")
}

func TestComposer_LatinDocumentSkipsFallbackFont(t *testing.T) {
	l := testLead(t)
	l.Name = "José Núñez"
	d := newTestComposer().Document(l)

	assert.False(t, needsWide(d))
	assert.True(t, sansCovers("Ελένη Дмитрий"))
	assert.False(t, sansCovers("王小明"))
}

func TestRenderText(t *testing.T) {
	text := RenderText(newTestComposer().Document(testLead(t)))

	assert.Contains(t, text, "GFI Friction Snapshot - Summary (page 1 of 3)")
	assert.Contains(t, text, "Next Steps (page 3 of 3)")
	assert.Contains(t, text, "$15,300,000.00")
	assert.Contains(t, text, "AI Friction Deep Audit - $4,999")
	assert.True(t, strings.HasSuffix(text, "Reference 5b0d6a4e-7c1f-4f53-9a43-2f3f9f1c0b11\n"))
}

func TestFormatting(t *testing.T) {
	cases := []struct {
		got  string
		want string
	}{
		{Money(1234567.891), "$1,234,567.89"},
		{Money(0), "$0.00"},
		{Money(999.995), "$1,000.00"},
		{Money(-5), "-$5.00"},
		{Money(1e19), "$10,000,000,000,000,000,000.00"},
		{Number(1e22, 0), "10,000,000,000,000,000,000,000"},
		{Percent(1442.307692), "1,442.31%"},
		{Percent(0.481), "0.48%"},
		{Number(20, 0), "20"},
		{Number(30000, 2), "30,000.00"},
		{label("professional_services"), "Professional Services"},
		{label("senior_leader"), "Senior Leader"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.got)
	}
}
