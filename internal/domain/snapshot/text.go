package snapshot

import (
	"fmt"
	"strings"
)

// RenderText renders a Document as plain text for e-mail bodies and the CLI
func RenderText(d Document) string {
	var b strings.Builder

	for i, page := range d.Pages {
		if i > 0 {
			b.WriteString("\n")
		}
		heading := fmt.Sprintf("%s - %s (page %d of %d)", d.Title, page.Title, i+1, len(d.Pages))
		b.WriteString(heading + "\n")
		b.WriteString(strings.Repeat("=", len(heading)) + "\n")

		for _, s := range page.Sections {
			b.WriteString("\n" + s.Heading + "\n")
			for _, line := range s.Lines {
				b.WriteString("  " + line + "\n")
			}
			for _, r := range s.Rows {
				fmt.Fprintf(&b, "  %-44s %s\n", r.Label+":", r.Value)
			}
		}
	}

	if d.Footer != "" {
		b.WriteString("\n" + d.Footer + "\n")
	}
	return b.String()
}
