package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gfi/internal/domain/friction"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(26)
	valueStyle = lipgloss.NewStyle().Bold(true)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

var tierColors = map[friction.Tier]lipgloss.Color{
	friction.TierLow:      lipgloss.Color("42"),
	friction.TierModerate: lipgloss.Color("220"),
	friction.TierSevere:   lipgloss.Color("208"),
	friction.TierCritical: lipgloss.Color("196"),
}

func tierBadge(t friction.Tier) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(tierColors[t]).
		Padding(0, 1).
		Render(strings.ToUpper(string(t)))
}

type kv struct {
	label string
	value string
}

func panel(title string, rows []kv) string {
	lines := []string{titleStyle.Render(title), ""}
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%s %s", labelStyle.Render(r.label), valueStyle.Render(r.value)))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}
