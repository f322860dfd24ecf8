package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/examtt/internal/models"
	"github.com/balkashynov/examtt/internal/parser"
	"github.com/balkashynov/examtt/internal/timetable"
)

// Focus is the panel receiving key presses
type Focus int

const (
	FocusSurname Focus = iota
	FocusCourses
	FocusResults
)

const (
	inputSurname = iota
	inputCourses
)

// SaveFunc persists the surname and courses entered in the lookup screen
type SaveFunc func(surname string, decisions []models.Decision) error

// LookupOptions configures the lookup screen
type LookupOptions struct {
	Session string
	Timings []models.ExamTiming
	Surname string
	Courses []models.Decision
	Save    SaveFunc
	Now     func() time.Time
}

// LookupModel is the interactive lookup: type a surname and courses,
// see the matching exams update live
type LookupModel struct {
	width  int
	height int

	inputs  []textinput.Model
	focus   Focus
	session string
	timings []models.ExamTiming
	matcher *timetable.Matcher
	save    SaveFunc
	now     func() time.Time

	decisions   []models.Decision
	inputErrors []string
	results     []timetable.Match
	selected    int

	initialSurname string
	initialCourses string

	// Save confirmation modal
	showSaveModal   bool
	saveModalChoice bool // true for Yes, false for No

	saved     bool
	cancelled bool
	err       error
}

// NewLookupModel creates the lookup model with any saved values prefilled
func NewLookupModel(opts LookupOptions) LookupModel {
	inputs := make([]textinput.Model, 2)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 40
		inputs[i].TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		inputs[i].PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
		inputs[i].Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	}

	inputs[inputSurname].Placeholder = "Last name as registered"
	inputs[inputSurname].CharLimit = 80

	inputs[inputCourses].Placeholder = "CSC108H1F, MAT137Y1Y:L5101"
	inputs[inputCourses].CharLimit = 500

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	courses := formatDecisions(opts.Courses)
	inputs[inputSurname].SetValue(opts.Surname)
	inputs[inputCourses].SetValue(courses)

	m := LookupModel{
		inputs:         inputs,
		session:        opts.Session,
		timings:        opts.Timings,
		matcher:        timetable.NewMatcher(),
		save:           opts.Save,
		now:            now,
		initialSurname: opts.Surname,
		initialCourses: courses,
	}

	// Start on whichever field still needs input
	if opts.Surname != "" && courses == "" {
		m.focus = FocusCourses
	}
	m.inputs[m.focus].Focus()

	m.refresh()
	return m
}

// Init initializes the model
func (m LookupModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m LookupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		inputWidth := m.width/3 - 6
		if inputWidth < 20 {
			inputWidth = 20
		}
		for i := range m.inputs {
			m.inputs[i].Width = inputWidth
		}
		return m, nil

	case tea.KeyMsg:
		if m.showSaveModal {
			return m.handleSaveModalKeys(msg)
		}

		switch msg.String() {
		case "ctrl+c":
			m.cancelled = true
			return m, tea.Quit

		case "esc":
			if m.save == nil || !m.hasChanges() {
				m.cancelled = true
				return m, tea.Quit
			}
			m.showSaveModal = true
			m.saveModalChoice = true
			return m, nil

		case "tab":
			return m.setFocus((m.focus + 1) % 3), nil

		case "shift+tab":
			return m.setFocus((m.focus + 2) % 3), nil
		}

		if m.focus == FocusResults {
			switch msg.String() {
			case "up", "k":
				if m.selected > 0 {
					m.selected--
				}
			case "down", "j":
				if m.selected < len(m.results)-1 {
					m.selected++
				}
			case "q":
				m.cancelled = true
				return m, tea.Quit
			}
			return m, nil
		}

		if msg.String() == "enter" {
			return m.setFocus(m.focus + 1), nil
		}
	}

	if m.focus == FocusResults {
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.refresh()
	return m, cmd
}

// setFocus moves focus and blinks the cursor only on the focused input
func (m LookupModel) setFocus(focus Focus) LookupModel {
	m.focus = focus
	for i := range m.inputs {
		if Focus(i) == focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}

// refresh re-runs the lookup against the current input
func (m *LookupModel) refresh() {
	parsed := parser.ParseDecisions(m.inputs[inputCourses].Value())
	m.decisions = parsed.Decisions
	m.inputErrors = parsed.Errors

	surname := m.inputs[inputSurname].Value()
	if strings.TrimSpace(surname) == "" {
		m.results = nil
	} else {
		now := m.now()
		m.results = timetable.Present(m.matcher.Lookup(m.timings, m.decisions, surname, now), now)
	}

	if m.selected >= len(m.results) {
		m.selected = max(len(m.results)-1, 0)
	}
}

func (m LookupModel) hasChanges() bool {
	return m.inputs[inputSurname].Value() != m.initialSurname ||
		m.inputs[inputCourses].Value() != m.initialCourses
}

func (m LookupModel) handleSaveModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "right":
		m.saveModalChoice = !m.saveModalChoice
		return m, nil
	case "y", "Y":
		m.saveModalChoice = true
		return m.handleSaveChoice()
	case "n", "N":
		m.saveModalChoice = false
		return m.handleSaveChoice()
	case "enter":
		return m.handleSaveChoice()
	case "esc":
		m.showSaveModal = false
		return m, nil
	case "ctrl+c":
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

// handleSaveChoice handles the save confirmation modal response
func (m LookupModel) handleSaveChoice() (tea.Model, tea.Cmd) {
	m.showSaveModal = false

	if !m.saveModalChoice {
		m.cancelled = true
		return m, tea.Quit
	}

	if len(m.inputErrors) > 0 {
		m.err = fmt.Errorf("fix the course list before saving")
		return m, nil
	}

	if err := m.save(m.inputs[inputSurname].Value(), m.decisions); err != nil {
		m.err = err
		return m, nil
	}

	m.saved = true
	return m, tea.Quit
}

// View renders the TUI
func (m LookupModel) View() string {
	if m.cancelled || m.saved {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	leftWidth := m.width / 3
	rightWidth := m.width - leftWidth - 5

	leftStyle := lipgloss.NewStyle().
		Width(leftWidth).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(0, 1)

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftStyle.Render(m.renderForm()),
		" ",
		m.renderResults(rightWidth),
	)

	view := lipgloss.JoinVertical(lipgloss.Left, "", content, "", m.renderHelpBar())

	if m.showSaveModal {
		return m.renderSaveModal()
	}
	return view
}

func (m LookupModel) renderForm() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentMain))
	title := "examtt"
	if m.session != "" {
		title += " · " + m.session
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	labels := []string{"Last name", "Courses"}
	for i, input := range m.inputs {
		labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
		if Focus(i) == m.focus {
			labelStyle = labelStyle.Bold(true).Foreground(lipgloss.Color(ColorAccentBright))
		}
		b.WriteString(labelStyle.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(input.View())
		b.WriteString("\n\n")
	}

	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
	for _, msg := range m.inputErrors {
		b.WriteString(errorStyle.Render(msg))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	return b.String()
}

func (m LookupModel) renderResults(width int) string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentBright))
	b.WriteString(headerStyle.Render(fmt.Sprintf("Exams (%d/%d)", len(m.results), len(m.decisions))))
	b.WriteString("\n\n")

	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Italic(true)
	switch {
	case len(m.timings) == 0:
		b.WriteString(mutedStyle.Render("No timetable loaded. Run `examtt sessions import` first."))
	case strings.TrimSpace(m.inputs[inputSurname].Value()) == "":
		b.WriteString(mutedStyle.Render("Enter your last name to see your exams"))
	case len(m.results) == 0:
		b.WriteString(mutedStyle.Render("No exams match"))
	default:
		b.WriteString(m.renderTable())
	}

	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(0, 1).
		Render(b.String())
}

func (m LookupModel) renderTable() string {
	var b strings.Builder

	columnStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorPrimaryText))
	b.WriteString(columnStyle.Render(fmt.Sprintf("%-11s %-16s %-11s %-10s %s", "COURSE", "DATE", "TIME", "SPLIT", "LOCATION")))
	b.WriteString("\n")

	for i, match := range m.results {
		dateText := fmt.Sprintf("%-16s", match.Date)
		if _, ok := parser.ParseExamDate(match.Timing.Date, m.now()); !ok {
			dateText = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning)).Render(dateText)
		}

		row := fmt.Sprintf("%-11s %s %-11s %-10s %s",
			match.Timing.Course,
			dateText,
			match.Start+"-"+match.End,
			match.Timing.Split,
			match.Timing.Location)

		if i == m.selected && m.focus == FocusResults {
			row = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentBright)).Render("> " + row)
		} else {
			row = "  " + row
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	if m.focus == FocusResults && m.selected < len(m.results) {
		b.WriteString("\n")
		b.WriteString(m.renderDetails(m.results[m.selected]))
	}

	return b.String()
}

func (m LookupModel) renderDetails(match timetable.Match) string {
	var lines []string
	detail := func(label, value string) {
		if value != "" {
			lines = append(lines, label+": "+value)
		}
	}
	detail("Section", match.Timing.Section)
	detail("Format", match.Timing.Format)
	detail("Notes", match.Timing.Notes)

	return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render(strings.Join(lines, "\n"))
}

// renderHelpBar renders the help bar with hotkey hints
func (m LookupModel) renderHelpBar() string {
	helpText := "tab switch field · ↑/↓ browse results · esc quit"
	if m.save != nil {
		helpText = "tab switch field · ↑/↓ browse results · esc save & quit · ctrl+c discard"
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width).
		Render(helpText)
}

// renderSaveModal renders the save confirmation modal
func (m LookupModel) renderSaveModal() string {
	var content strings.Builder
	content.WriteString("Save surname and courses?\n\n")

	yesStyle := lipgloss.NewStyle().Padding(0, 2)
	noStyle := lipgloss.NewStyle().Padding(0, 2)
	if m.saveModalChoice {
		yesStyle = yesStyle.
			Background(lipgloss.Color(ColorAccentBright)).
			Foreground(lipgloss.Color("#000000")).
			Bold(true)
	} else {
		noStyle = noStyle.
			Background(lipgloss.Color(ColorError)).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)
	}

	content.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, yesStyle.Render("Yes"), "   ", noStyle.Render("No")))
	content.WriteString("\n\n")
	content.WriteString("← → or Y/N to choose, Enter to confirm\nEsc to go back")

	modal := lipgloss.NewStyle().
		Width(50).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentBright)).
		Background(lipgloss.Color(ColorCardBackground)).
		Padding(1).
		Align(lipgloss.Center).
		Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

// formatDecisions renders decisions back into the course input syntax
func formatDecisions(decisions []models.Decision) string {
	parts := make([]string, 0, len(decisions))
	for _, d := range decisions {
		if d.Section != "" {
			parts = append(parts, d.Course+":"+d.Section)
		} else {
			parts = append(parts, d.Course)
		}
	}
	return strings.Join(parts, ", ")
}
