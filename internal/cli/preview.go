package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/mosaic"
	"github.com/matzehuels/mosaic/pkg/pipeline"
)

// previewPalette cycles through terminal colors for cells without an
// explicit color. Hex colors from the dataset pass straight through to
// lipgloss.
var previewPalette = []lipgloss.Color{
	lipgloss.Color("36"), lipgloss.Color("35"), lipgloss.Color("220"),
	lipgloss.Color("167"), lipgloss.Color("75"), lipgloss.Color("140"),
	lipgloss.Color("173"), lipgloss.Color("108"),
}

// previewCommand creates the preview command for terminal rendering.
func (c *CLI) previewCommand() *cobra.Command {
	var noCache bool
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()

	cmd := &cobra.Command{
		Use:   "preview [dataset]",
		Short: "Preview a treemap layout in the terminal",
		Long: `Preview a treemap layout in the terminal.

The preview command computes the layout and draws it as colored blocks in
an interactive terminal view. Use the arrow keys (or tab) to step through
cells; the footer shows the selected cell's label and value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args[0], opts, noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.Format, "input-format", "", "input format: json, csv, toml (default: by extension)")
	cmd.Flags().IntVar(&opts.Inset, "inset", opts.Inset, "padding inside each cell (and nesting level)")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, input string, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Path = input
	opts.Logger = loggerFromContext(ctx)

	d, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	layout, err := runner.ComputeLayout(ctx, d, opts)
	if err != nil {
		return err
	}
	if !layout.IsTreemap() {
		return fmt.Errorf("preview supports treemap layouts only")
	}

	model := NewPreviewModel(layout)
	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// PreviewModel is the bubbletea model for the terminal treemap view.
type PreviewModel struct {
	Layout mosaic.Layout
	Cursor int
	Width  int
	Height int
}

// NewPreviewModel creates a preview model with a conservative default size;
// the first WindowSizeMsg replaces it.
func NewPreviewModel(l mosaic.Layout) PreviewModel {
	return PreviewModel{Layout: l, Width: 80, Height: 24}
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "tab", "l", "down", "j":
			if len(m.Layout.Cells) > 0 {
				m.Cursor = (m.Cursor + 1) % len(m.Layout.Cells)
			}
		case "left", "shift+tab", "h", "up", "k":
			if len(m.Layout.Cells) > 0 {
				m.Cursor = (m.Cursor + len(m.Layout.Cells) - 1) % len(m.Layout.Cells)
			}
		}
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
	}
	return m, nil
}

func (m PreviewModel) View() string {
	var b strings.Builder

	title := m.Layout.Name
	if title == "" {
		title = "treemap"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ select  q quit"))
	b.WriteString("\n\n")

	gw, gh := m.gridSize()
	for row := 0; row < gh; row++ {
		for col := 0; col < gw; col++ {
			idx := m.cellAt(col, row, gw, gh)
			if idx < 0 {
				b.WriteString(" ")
				continue
			}
			style := lipgloss.NewStyle().Background(m.cellColor(idx))
			if idx == m.Cursor {
				style = style.Foreground(lipgloss.Color("255")).Bold(true)
				b.WriteString(style.Render("▒"))
			} else {
				b.WriteString(style.Render(" "))
			}
		}
		b.WriteString("\n")
	}

	if m.Cursor < len(m.Layout.Cells) {
		cell := m.Layout.Cells[m.Cursor]
		b.WriteString("\n")
		b.WriteString(StyleHighlight.Render(cell.Label))
		b.WriteString(StyleDim.Render(fmt.Sprintf("  value %v  %dx%d at (%d, %d)",
			cell.Value, cell.Width, cell.Height, cell.X, cell.Y)))
	}
	return b.String()
}

func (m PreviewModel) gridSize() (int, int) {
	gw := m.Width - 2
	if gw < 20 {
		gw = 20
	}
	gh := m.Height - 7
	if gh < 8 {
		gh = 8
	}
	return gw, gh
}

// cellAt maps a terminal grid position to the index of the deepest layout
// cell covering it, or -1 for uncovered positions. Cells are stored in
// pre-order, so the last match is the deepest.
func (m PreviewModel) cellAt(col, row, gw, gh int) int {
	if m.Layout.Width <= 0 || m.Layout.Height <= 0 {
		return -1
	}
	// Sample the center of the character cell.
	x := (float64(col) + 0.5) * float64(m.Layout.Width) / float64(gw)
	y := (float64(row) + 0.5) * float64(m.Layout.Height) / float64(gh)

	found := -1
	for i, cell := range m.Layout.Cells {
		if cell.Width <= 0 || cell.Height <= 0 {
			continue
		}
		if x >= float64(cell.X) && x < float64(cell.X+cell.Width) &&
			y >= float64(cell.Y) && y < float64(cell.Y+cell.Height) {
			found = i
		}
	}
	return found
}

func (m PreviewModel) cellColor(idx int) lipgloss.Color {
	cell := m.Layout.Cells[idx]
	if cell.Color != "" {
		return lipgloss.Color(cell.Color)
	}
	return previewPalette[idx%len(previewPalette)]
}
