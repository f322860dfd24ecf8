package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// RunLookupTUI starts the interactive lookup
func RunLookupTUI(opts LookupOptions) error {
	model := NewLookupModel(opts)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := finalModel.(LookupModel); ok {
		switch {
		case m.saved:
			fmt.Printf("✅ Saved %d course(s) for %s\n", len(m.decisions), m.inputs[inputSurname].Value())
		case m.err != nil:
			fmt.Printf("❌ Error: %v\n", m.err)
		}
	}

	return nil
}
