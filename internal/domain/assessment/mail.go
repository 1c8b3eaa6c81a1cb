package assessment

import (
	"bytes"
	"fmt"
	"html/template"

	"gfi/internal/domain/lead"
	"gfi/internal/domain/snapshot"
	"gfi/internal/notify"
)

var immediateTmpl = template.Must(template.New("immediate").Parse(`<p>Hi {{.Name}},</p>
<p>Thank you for running the GFI friction calculator for {{.Organization}}.</p>
<p>Estimated annual friction cost: <strong>{{.Total}}</strong><br>
Risk tier: <strong>{{.Tier}}</strong><br>
Recommended engagement: {{.Engagement}}</p>
<p>Your three-page Friction Snapshot is attached.</p>
<p>GFI</p>
`))

var followUpTmpl = template.Must(template.New("follow_up").Parse(`<p>Hi {{.Name}},</p>
<p>You recently estimated {{.Total}} of annual friction at {{.Organization}}.
Here is how we can help you recover that capacity.</p>
<p><strong>AI Impact Quick Diagnostic ($999)</strong>: a 48-hour performance review with a 6 to 8 page report.<br>
{{if .Diagnostic}}<a href="{{.Diagnostic}}">Start the diagnostic</a>{{else}}(link not configured){{end}}</p>
<p><strong>AI Friction Deep Audit ($4,999)</strong>: workflow mapping and a 15 to 25 page governance impact report.<br>
{{if .Audit}}<a href="{{.Audit}}">Request the deep audit</a>{{else}}(link not configured){{end}}</p>
<p>Your Snapshot is attached again for reference.</p>
<p>GFI</p>
`))

type mailData struct {
	Name         string
	Organization string
	Total        string
	Tier         string
	Engagement   string
	Diagnostic   string
	Audit        string
}

func newMailData(l *lead.Lead, links snapshot.Links) mailData {
	return mailData{
		Name:         l.Name,
		Organization: l.Organization,
		Total:        snapshot.Money(l.Estimate.TotalFrictionCost),
		Tier:         string(l.Risk.Tier),
		Engagement:   l.Risk.Engagement,
		Diagnostic:   links.Diagnostic,
		Audit:        links.Audit,
	}
}

func immediateMessage(l *lead.Lead, snap *snapshot.Snapshot, links snapshot.Links) (notify.Message, error) {
	data := newMailData(l, links)
	html, err := render(immediateTmpl, data)
	if err != nil {
		return notify.Message{}, err
	}
	return notify.Message{
		Reference:   l.PublicID,
		To:          l.Email,
		Subject:     fmt.Sprintf("Your GFI Friction Snapshot: %s estimated annual friction", data.Total),
		HTML:        html,
		Text:        snapshot.RenderText(snap.Document),
		Attachments: []notify.Attachment{{Filename: snap.Filename, Content: snap.PDF}},
	}, nil
}

func followUpMessage(l *lead.Lead, snap *snapshot.Snapshot, links snapshot.Links) (notify.Message, error) {
	data := newMailData(l, links)
	html, err := render(followUpTmpl, data)
	if err != nil {
		return notify.Message{}, err
	}
	return notify.Message{
		Reference:   l.PublicID,
		To:          l.Email,
		Subject:     fmt.Sprintf("Next steps for %s: recovering %s of friction", l.Organization, data.Total),
		HTML:        html,
		Text:        snapshot.RenderText(snap.Document),
		Attachments: []notify.Attachment{{Filename: snap.Filename, Content: snap.PDF}},
	}, nil
}

func render(t *template.Template, data mailData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s mail: %w", t.Name(), err)
	}
	return buf.String(), nil
}
