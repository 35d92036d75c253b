package reporting

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"stackctl/internal/backend"
	"stackctl/internal/color"
	"stackctl/internal/scheduler"
)

// Status icons. Styling is applied after padding so ANSI escapes never skew
// column widths.
const (
	iconReady    = "✓"
	iconDegraded = "!"
	iconFailed   = "✗"
	iconSkipped  = "-"
)

// safeIcon pads an icon according to its display width so a wide glyph does
// not swallow the character after it.
func safeIcon(icon string) string {
	spaces := 1
	if runewidth.StringWidth(icon) >= 2 {
		spaces = 2
	}
	return icon + strings.Repeat(" ", spaces)
}

// Render writes the installation report as an aligned, colored summary.
// Categories appear in the report's (canonical) order.
func Render(w io.Writer, report *scheduler.Report) {
	if report.DryRun {
		fmt.Fprintln(w, color.HeaderStyle.Render("Installation plan (dry run)"))
	} else {
		fmt.Fprintln(w, color.HeaderStyle.Render("Installation report"))
	}
	fmt.Fprintln(w)

	nameWidth := 0
	for _, cat := range report.Categories {
		if w := runewidth.StringWidth(cat.Category.Name); w > nameWidth {
			nameWidth = w
		}
	}

	for _, cat := range report.Categories {
		icon, style := categoryDecor(cat.Status)
		name := runewidth.FillRight(cat.Category.Name, nameWidth)
		fmt.Fprintf(w, "  %s%s  %s\n", safeIcon(style.Render(icon)), name, style.Render(string(cat.Status)))

		for _, svc := range cat.Services {
			line := fmt.Sprintf("      %s: %s", svc.ServiceID, svc.Outcome)
			switch svc.Outcome {
			case scheduler.OutcomeFailed:
				fmt.Fprintln(w, color.ErrorStyle.Render(line))
				if svc.Err != nil {
					fmt.Fprintln(w, color.SubtleStyle.Render("        "+svc.Err.Error()))
				}
			case scheduler.OutcomeSkipped, scheduler.OutcomeDryRun:
				fmt.Fprintln(w, color.SubtleStyle.Render(line))
			default:
				fmt.Fprintln(w, line)
			}
		}

		if cat.Err != nil {
			fmt.Fprintln(w, color.ErrorStyle.Render("      "+cat.Err.Error()))
		}
	}

	fmt.Fprintln(w)
	renderSummary(w, report)
}

func renderSummary(w io.Writer, report *scheduler.Report) {
	var failed, degraded []string
	ready := 0
	for _, cat := range report.Categories {
		switch cat.Status {
		case scheduler.StatusReady:
			ready++
		case scheduler.StatusDegraded:
			degraded = append(degraded, cat.Category.Name)
		case scheduler.StatusFailed:
			failed = append(failed, cat.Category.Name)
		}
	}

	switch {
	case len(failed) > 0:
		fmt.Fprintln(w, color.ErrorStyle.Render(fmt.Sprintf("%d categor%s failed: %s",
			len(failed), plural(len(failed), "y", "ies"), strings.Join(failed, ", "))))
		fmt.Fprintln(w, color.SubtleStyle.Render(
			fmt.Sprintf("Inspect with 'stackctl logs <service>' and retry with 'stackctl up --categories %s'.", strings.Join(failed, ","))))
	case len(degraded) > 0:
		fmt.Fprintln(w, color.WarningStyle.Render(fmt.Sprintf("%d categor%s degraded: %s",
			len(degraded), plural(len(degraded), "y", "ies"), strings.Join(degraded, ", "))))
		fmt.Fprintln(w, color.SubtleStyle.Render(
			fmt.Sprintf("Retry the affected tiers with 'stackctl up --categories %s'.", strings.Join(degraded, ","))))
	case report.DryRun:
		fmt.Fprintf(w, "%d categories planned, nothing started.\n", len(report.Categories))
	default:
		fmt.Fprintln(w, color.SuccessStyle.Render(fmt.Sprintf("All %d categories ready.", ready)))
	}
}

func categoryDecor(status scheduler.CategoryStatus) (string, lipgloss.Style) {
	switch status {
	case scheduler.StatusReady:
		return iconReady, color.SuccessStyle
	case scheduler.StatusDegraded:
		return iconDegraded, color.WarningStyle
	case scheduler.StatusFailed:
		return iconFailed, color.ErrorStyle
	default:
		return iconSkipped, color.SubtleStyle
	}
}

// ServiceState is one row of the status table.
type ServiceState struct {
	Category  string
	ServiceID string
	State     backend.Status
}

// RenderStatus writes the observed container state of every known service as
// an aligned table.
func RenderStatus(w io.Writer, states []ServiceState) {
	fmt.Fprintln(w, color.HeaderStyle.Render("Service status"))
	fmt.Fprintln(w)

	catWidth, svcWidth := 0, 0
	for _, row := range states {
		if w := runewidth.StringWidth(row.Category); w > catWidth {
			catWidth = w
		}
		if w := runewidth.StringWidth(row.ServiceID); w > svcWidth {
			svcWidth = w
		}
	}

	for _, row := range states {
		var style lipgloss.Style
		switch row.State {
		case backend.StatusRunning:
			style = color.SuccessStyle
		case backend.StatusStopped:
			style = color.SubtleStyle
		default:
			style = color.WarningStyle
		}
		fmt.Fprintf(w, "  %s  %s  %s\n",
			runewidth.FillRight(row.Category, catWidth),
			runewidth.FillRight(row.ServiceID, svcWidth),
			style.Render(string(row.State)))
	}
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}
