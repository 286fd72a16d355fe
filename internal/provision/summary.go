package provision

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// summaryStyles holds the lipgloss styles for the confirmation summary.
type summaryStyles struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Value lipgloss.Style
}

func defaultSummaryStyles() summaryStyles {
	return summaryStyles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Label: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Value: lipgloss.NewStyle().Bold(true),
	}
}

// renderSummary formats every resolved parameter for the confirmation
// gate. Styling is skipped when stdout is not a terminal.
func (p *Provisioner) renderSummary(plan *Plan) string {
	cc := plan.createConfig(p.Config)

	rows := [][2]string{
		{"VMID", strconv.Itoa(plan.VMID)},
		{"Hostname", plan.Hostname},
		{"Template", plan.Template},
		{"Template storage", plan.TemplateStorage},
		{"Rootfs", fmt.Sprintf("%s (%d GB)", plan.Storage, p.Config.DiskGB)},
		{"Memory", fmt.Sprintf("%d MB", p.Config.MemoryMB)},
		{"Swap", fmt.Sprintf("%d MB", p.Config.SwapMB)},
		{"Cores", strconv.Itoa(p.Config.Cores)},
		{"Network", cc.NetSpec()},
	}

	styles := defaultSummaryStyles()
	var b strings.Builder

	title := "Container summary"
	if p.Styled {
		title = styles.Title.Render(title)
	}
	b.WriteString(title + "\n")

	for _, row := range rows {
		// Pad before styling so ANSI codes don't skew the columns.
		label := fmt.Sprintf("%-18s", row[0])
		value := row[1]
		if p.Styled {
			label = styles.Label.Render(label)
			value = styles.Value.Render(value)
		}
		fmt.Fprintf(&b, "  %s %s\n", label, value)
	}
	return b.String()
}
