// Package color provides terminal color theming for stackctl.
//
// Colors are organized into semantic categories rather than raw values, so
// every command renders state the same way:
//   - Primary: headings and emphasis
//   - Success: positive states (ready, running)
//   - Warning: caution states (degraded, already running)
//   - Error: failure states (failed, unreachable)
//   - Info: informational elements
//   - Subtle: de-emphasized text such as hints
//
// Every color is a lipgloss.AdaptiveColor carrying a light and a dark
// variant; Initialize selects which variant is used. lipgloss's own profile
// detection handles NO_COLOR and terminals without color support, degrading
// styled output to plain text.
//
// # Usage Example
//
//	color.Initialize(true) // dark terminal
//	fmt.Println(color.SuccessStyle.Render("Ready"))
//	fmt.Println(color.ErrorStyle.Render("Failed"))
package color
