package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"visaline/internal/notify"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

// renderToast is the terminal's toast surface: every channel message prints
// once, styled by kind, as it arrives.
func renderToast(msg notify.Message) {
	style := infoStyle
	prefix := "i"
	switch msg.Kind {
	case notify.Success:
		style, prefix = successStyle, "✓"
	case notify.Error:
		style, prefix = errorStyle, "✗"
	case notify.Warning:
		style, prefix = warningStyle, "!"
	}
	fmt.Fprintln(os.Stdout, style.Render(prefix+" "+msg.Text))
}
