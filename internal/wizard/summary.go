package wizard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/portkey-ai/gateway-setup/internal/config"
	"github.com/portkey-ai/gateway-setup/internal/routing"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
)

// maskSecret shortens secret values for display, keeping enough of the head
// to recognize the key.
func maskSecret(value string) string {
	if len(value) <= 8 {
		return strings.Repeat("*", len(value))
	}
	return value[:8] + "…"
}

func displayValue(name config.VariableName, value string) string {
	if name.Secret() {
		return maskSecret(value)
	}
	if name == config.VarCustomHeaders {
		// Header lines are multi-token; show them on one line.
		return strings.ReplaceAll(value, "\n", " ⏎ ")
	}
	return value
}

// renderStatus renders the resolution table: one row per variable that any
// layer defines, with its winning layer and a marker for multi-layer
// definitions.
func renderStatus(resolved []config.ResolvedVariable, intent routing.Intent) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Gateway configuration") + "\n\n")

	present := 0
	for _, v := range resolved {
		if !v.Present() {
			continue
		}
		present++
		line := fmt.Sprintf("  %-28s %s  %s", v.Name, displayValue(v.Name, v.Value), dimStyle.Render("("+string(v.WinningLayer)+")"))
		b.WriteString(line)
		if v.Conflicting {
			losers := make([]string, 0, len(v.PresentIn)-1)
			for _, layer := range v.PresentIn[1:] {
				losers = append(losers, string(layer))
			}
			b.WriteString("  " + warnStyle.Render("⚠ also set in "+strings.Join(losers, ", ")))
		}
		b.WriteString("\n")
	}
	if present == 0 {
		b.WriteString(dimStyle.Render("  no gateway variables set in any layer") + "\n")
		return b.String()
	}

	b.WriteString("\n" + titleStyle.Render("Routing") + "\n")
	switch intent.Mode {
	case routing.ModeProvider:
		b.WriteString("  provider " + okStyle.Render(intent.DisplayProvider()) + "\n")
	case routing.ModeConfig:
		b.WriteString("  gateway config " + okStyle.Render(intent.ConfigID) + "\n")
	case routing.ModeOauth:
		b.WriteString("  subscription pass-through, forwarding " + okStyle.Render(strings.Join(intent.ForwardHeaders, ", ")) + "\n")
	default:
		b.WriteString(dimStyle.Render("  not configured") + "\n")
	}
	return b.String()
}

// renderApplied summarizes what a setup run wrote and where.
func renderApplied(destination string, values map[string]string) string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(okStyle.Render("✓") + " gateway routing written to " + titleStyle.Render(destination) + "\n")
	for _, name := range names {
		b.WriteString(fmt.Sprintf("  %-28s %s\n", name, displayValue(config.VariableName(name), values[name])))
	}
	return b.String()
}
