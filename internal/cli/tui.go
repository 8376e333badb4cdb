package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// listDimStyle renders secondary text in interactive views.
var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// BuildProgressModel - live per-rank build progress
// =============================================================================

// RankStatus is one worker's latest reported state, rendered as a row of
// BuildProgressModel's table.
type RankStatus struct {
	Rank      int
	TreeLo    int
	TreeHi    int
	Phase     string // "generating", "sent" or "error"
	EdgeCount int
	Done      bool
}

// RankUpdateMsg carries a single rank's status update into the bubbletea
// event loop. The runner sends one of these per phase transition via
// Program.Send.
type RankUpdateMsg RankStatus

// BuildDoneMsg signals that every rank has finished and the program should
// exit.
type BuildDoneMsg struct{ Err error }

// BuildProgressModel is the bubbletea model for `ist build --tui`: a live
// table of every rank's tree assignment and progress.
type BuildProgressModel struct {
	N     int
	World int
	Ranks map[int]RankStatus
	Err   error
	Quit  bool
}

// NewBuildProgressModel creates a progress model for a cohort of the given
// size.
func NewBuildProgressModel(n, world int) BuildProgressModel {
	return BuildProgressModel{
		N:     n,
		World: world,
		Ranks: make(map[int]RankStatus, world),
	}
}

func (m BuildProgressModel) Init() tea.Cmd {
	return nil
}

func (m BuildProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.Quit = true
			return m, tea.Quit
		}
	case RankUpdateMsg:
		m.Ranks[msg.Rank] = RankStatus(msg)
	case BuildDoneMsg:
		m.Err = msg.Err
		m.Quit = true
		return m, tea.Quit
	}
	return m, nil
}

func (m BuildProgressModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Building B_%d independent spanning trees", m.N)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%d workers  ·  q to quit", m.World)))
	b.WriteString("\n\n")

	rows := make([][]string, 0, m.World)
	for r := 0; r < m.World; r++ {
		st, ok := m.Ranks[r]
		if !ok {
			rows = append(rows, []string{fmt.Sprintf("%d", r), "—", "waiting", "—"})
			continue
		}
		treeRange := fmt.Sprintf("%d-%d", st.TreeLo, st.TreeHi)
		if st.TreeHi < st.TreeLo {
			treeRange = "(none)"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", r),
			treeRange,
			st.Phase,
			fmt.Sprintf("%d", st.EdgeCount),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Rank", "Trees", "Phase", "Edges").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < len(rows) && rows[row][2] == "done" {
				return lipgloss.NewStyle().Foreground(colorGreen)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())

	if m.Err != nil {
		b.WriteString("\n\n")
		b.WriteString(StyleWarning.Render("error: " + m.Err.Error()))
	}

	return b.String()
}
