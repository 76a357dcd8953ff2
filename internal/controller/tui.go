package controller

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/gspu/critic/internal/model"
)

var (
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	lowStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
)

// TUI implements UI with an interactive Bubble Tea browser over the
// per-file results.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI writing to output.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// DisplayRunReports starts the interactive browser. With nothing to
// browse it prints a short notice instead of entering the alt screen.
func (t *TUI) DisplayRunReports(ctx context.Context, reports []m.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rows := flattenReports(reports)
	if len(rows) == 0 {
		_, err := fmt.Fprintln(t.output, "no coverage reports to display")
		return err
	}

	model := newCoverageModel(rows)

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// coverageRow is one selectable entry: a file result under its spec.
type coverageRow struct {
	spec   m.Path
	result m.CoverageResult
}

func flattenReports(reports []m.RunReport) []coverageRow {
	var rows []coverageRow

	for _, report := range reports {
		for _, result := range report.Results {
			rows = append(rows, coverageRow{spec: report.Spec, result: result})
		}
	}

	return rows
}

type coverageModel struct {
	rows     []coverageRow
	selected int
	details  viewport.Model
	width    int
	height   int
	ready    bool
}

func newCoverageModel(rows []coverageRow) coverageModel {
	return coverageModel{rows: rows}
}

func (cm coverageModel) Init() tea.Cmd {
	return nil
}

func (cm coverageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cm.width = msg.Width
		cm.height = msg.Height

		detailHeight := msg.Height - len(cm.rows) - 5
		if detailHeight < 3 {
			detailHeight = 3
		}

		if !cm.ready {
			cm.details = viewport.New(msg.Width, detailHeight)
			cm.ready = true
		} else {
			cm.details.Width = msg.Width
			cm.details.Height = detailHeight
		}

		cm.details.SetContent(cm.detailContent())

		return cm, nil

	case tea.KeyMsg:
		return cm.handleKeyPress(msg)
	}

	return cm, nil
}

func (cm coverageModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return cm, tea.Quit

	case "down", "j":
		if cm.selected < len(cm.rows)-1 {
			cm.selected++
			cm.details.SetContent(cm.detailContent())
			cm.details.GotoTop()
		}

		return cm, nil

	case "up", "k":
		if cm.selected > 0 {
			cm.selected--
			cm.details.SetContent(cm.detailContent())
			cm.details.GotoTop()
		}

		return cm, nil
	}

	var cmd tea.Cmd
	cm.details, cmd = cm.details.Update(msg)

	return cm, cmd
}

func (cm coverageModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("critic coverage"))
	b.WriteString("\n\n")

	for i, row := range cm.rows {
		line := fmt.Sprintf("%s  %3d%%  %s", statusGlyph(row.result), row.result.Percent, row.result.File)
		if i == cm.selected {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")

	if cm.ready {
		b.WriteString(cm.details.View())
		b.WriteString("\n")
	}

	b.WriteString(dimStyle.Render("j/k move · pgup/pgdn scroll · q quit"))

	return b.String()
}

func (cm coverageModel) detailContent() string {
	row := cm.rows[cm.selected]
	result := row.result

	var b strings.Builder

	fmt.Fprintf(&b, "spec: %s\n", row.spec)

	if result.Errored() {
		fmt.Fprintf(&b, "error: %s\n", result.Err)
		return b.String()
	}

	fmt.Fprintf(&b, "lines: %d  measurable: %d  covered: %d  ignored: %d\n",
		result.TotalLines, result.Measurable, result.Covered, result.Ignored)

	if len(result.Uncovered) == 0 {
		b.WriteString(okStyle.Render("all measurable lines covered"))
		return b.String()
	}

	b.WriteString("uncovered lines:\n")

	for _, line := range result.Uncovered {
		fmt.Fprintf(&b, "  %d\n", line)
	}

	return b.String()
}

func statusGlyph(result m.CoverageResult) string {
	switch {
	case result.Errored():
		return lowStyle.Render("!")
	case result.BelowMinimum:
		return lowStyle.Render("✗")
	default:
		return okStyle.Render("✓")
	}
}
