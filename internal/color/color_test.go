package color

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		isDarkMode bool
	}{
		{"dark mode", true},
		{"light mode", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Initialize(tt.isDarkMode)
			if got := lipgloss.HasDarkBackground(); got != tt.isDarkMode {
				t.Errorf("lipgloss.HasDarkBackground() = %v, want %v after Initialize(%v)", got, tt.isDarkMode, tt.isDarkMode)
			}
		})
	}
}

func TestStylesRenderInput(t *testing.T) {
	// Regardless of the color profile, rendering must preserve the text.
	for name, style := range map[string]lipgloss.Style{
		"success": SuccessStyle,
		"error":   ErrorStyle,
		"warning": WarningStyle,
		"subtle":  SubtleStyle,
	} {
		if out := style.Render("status"); out == "" {
			t.Errorf("%s style rendered empty output", name)
		}
	}
}
