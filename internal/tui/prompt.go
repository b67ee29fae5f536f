// Package tui holds the interactive guess-the-roll prompt.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/whatif/internal/dice"
	"github.com/san-kum/whatif/internal/viz"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

const historySize = 8

type Model struct {
	game    *dice.Game
	input   string
	trials  []dice.Trial
	wins    int
	invalid int
	notice  string
}

func NewModel(game *dice.Game) Model {
	return Model{game: game}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "enter":
		return m.submit(), nil
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	default:
		s := key.String()
		if len(s) == 1 && ((s[0] >= '0' && s[0] <= '9') || (s[0] == '-' && m.input == "")) {
			if len(m.input) < 6 {
				m.input += s
			}
			m.notice = ""
		}
	}
	return m, nil
}

func (m Model) submit() Model {
	if m.input == "" {
		return m
	}

	guess, err := strconv.Atoi(m.input)
	m.input = ""
	if err != nil {
		m.notice = fmt.Sprintf("not a number: %v", err)
		return m
	}

	t := m.game.Check(guess)
	switch t.Outcome {
	case dice.Win:
		m.wins++
	case dice.InvalidGuess:
		m.invalid++
	}
	m.trials = append(m.trials, t)
	m.notice = ""
	return m
}

// Trials returns every trial played so far, oldest first.
func (m Model) Trials() []dice.Trial { return m.trials }

func (m Model) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("           " + cyan.Render("g u e s s") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n\n")

	start := max(len(m.trials)-historySize, 0)
	for _, t := range m.trials[start:] {
		b.WriteString("      " + viz.TrialLine(t) + "\n")
	}
	if len(m.trials) > 0 {
		b.WriteString("\n")
	}

	played := len(m.trials) - m.invalid
	b.WriteString("      " + viz.MetricLabel.Render("played ") + viz.MetricValue.Render(strconv.Itoa(played)) +
		viz.MetricLabel.Render("   wins ") + viz.MetricValue.Render(strconv.Itoa(m.wins)) +
		viz.MetricLabel.Render("   expected ") + viz.MetricValue.Render(viz.Number(dice.ExpectedWins(played))) + "\n\n")

	b.WriteString(fmt.Sprintf("      guess a number between 1 and %d: %s\n", dice.Sides, cyan.Render(m.input+"▋")))
	if m.notice != "" {
		b.WriteString("      " + viz.InvalidStyle.Render(m.notice) + "\n")
	}

	b.WriteString("\n")
	b.WriteString("      " + viz.KeyHint.Render("0-9 type   enter roll   q quit") + "\n")

	return b.String()
}

// RunPrompt plays until the user quits and returns the trials played.
func RunPrompt(game *dice.Game) ([]dice.Trial, error) {
	p := tea.NewProgram(NewModel(game))
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	return final.(Model).Trials(), nil
}
