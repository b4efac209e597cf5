// Package tui provides the interactive topic picker used by the topics
// command.
package tui

import (
	"fmt"

	"blogsmith/internal/core"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
)

type pickerModel struct {
	topics      []core.ScoredTopic
	selectedIdx int
	picked      bool
	quitting    bool
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.selectedIdx > 0 {
				m.selectedIdx--
			}
		case "down", "j":
			if m.selectedIdx < len(m.topics)-1 {
				m.selectedIdx++
			}
		case "enter":
			m.picked = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	if m.quitting || m.picked {
		return ""
	}

	s := titleStyle.Render("Pick a topic to synthesize") + "\n\n"
	for i, topic := range m.topics {
		line := fmt.Sprintf("%6.1f  %-12s %s", topic.FinalScore, topic.Candidate.SourceID, topic.Candidate.Title)
		if i == m.selectedIdx {
			s += cursorStyle.Render("> ") + selectedStyle.Render(line) + "\n"
		} else {
			s += "  " + dimStyle.Render(line) + "\n"
		}
	}
	s += helpStyle.Render("up/down: move • enter: pick • q: cancel")
	return s
}

// Pick presents the ranked topics and returns the index the user chose.
// A negative index means the user cancelled.
func Pick(topics []core.ScoredTopic) (int, error) {
	if len(topics) == 0 {
		return -1, fmt.Errorf("no topics to pick from")
	}

	program := tea.NewProgram(pickerModel{topics: topics})
	final, err := program.Run()
	if err != nil {
		return -1, fmt.Errorf("running topic picker: %w", err)
	}

	m, ok := final.(pickerModel)
	if !ok || !m.picked {
		return -1, nil
	}
	return m.selectedIdx, nil
}
