package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mamadbah2/farmsim/internal/domain/farm"
	"github.com/mamadbah2/farmsim/internal/domain/models"
	"github.com/mamadbah2/farmsim/internal/service/commands"
)

const sender = "console"

type model struct {
	dispatcher commands.Dispatcher
	status     farm.Status
	textInput  textinput.Model
	viewport   viewport.Model
	gameLog    string
	width      int
	height     int
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#4E6B3A")).
			Bold(true).
			PaddingLeft(1)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF8C69"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)
)

// NewModel builds the console UI around a dispatcher.
func NewModel(d commands.Dispatcher) model {
	ti := textinput.New()
	ti.Placeholder = "What do you do? (empty line ends the day)"
	ti.Focus()
	ti.CharLimit = 120
	ti.Width = 50

	return model{
		dispatcher: d,
		status:     d.Status(),
		textInput:  ti,
		gameLog:    gameStyle.Bold(true).Render("Welcome to the farm.") + "\n\nType help for the list of commands.\n",
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

type turnProcessedMsg struct {
	reply  string
	err    error
	status farm.Status
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			action := strings.TrimSpace(m.textInput.Value())
			m.textInput.Reset()

			if action == "/quit" || action == "quit" {
				return m, tea.Quit
			}
			if action == "" {
				action = string(models.CommandSleep)
			}

			m.appendLog(userStyle.Width(m.logWidth()).Render("> " + action))
			return m, m.processTurn(action)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.viewport.Width == 0 {
			m.viewport = viewport.New(m.logWidth(), msg.Height-6)
		} else {
			m.viewport.Width = m.logWidth()
			m.viewport.Height = msg.Height - 6
		}
		m.viewport.SetContent(m.gameLog)
		m.viewport.GotoBottom()

	case turnProcessedMsg:
		m.status = msg.status
		if msg.err != nil {
			m.appendLog(failStyle.Width(m.logWidth()).Render(commands.FailureText(msg.err).Message))
		} else {
			m.appendLog(gameStyle.Width(m.logWidth()).Render(msg.reply))
		}
		return m, nil
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *model) appendLog(entry string) {
	m.gameLog += "\n" + entry + "\n"
	m.viewport.SetContent(m.gameLog)
	m.viewport.GotoBottom()
}

func (m model) logWidth() int {
	if m.width == 0 {
		return 80
	}
	return int(float64(m.width) * 0.65)
}

func (m model) View() string {
	mainView := lipgloss.JoinHorizontal(lipgloss.Top,
		m.viewport.View(),
		m.renderState(),
	)

	help := helpStyle.Render("Enter on an empty line sleeps. Esc or /quit leaves without saving.")

	return "\n" + lipgloss.JoinVertical(lipgloss.Left,
		mainView,
		"\n"+m.textInput.View(),
		"\n"+help,
	) + "\n"
}

func (m model) renderState() string {
	st := m.status

	var b strings.Builder
	b.WriteString(titleStyle.Render("FARM") + "\n")
	b.WriteString(fmt.Sprintf("Day %d\nBalance %.2f\nActions %d/%d\nFree lots %d\n\n",
		st.Day, st.Balance, st.ActionsLeft, st.ActionsPer, st.FreeLots))

	b.WriteString(titleStyle.Render("STORAGE") + "\n")
	if len(st.Storage) == 0 {
		b.WriteString("(empty)\n")
	}
	for _, stack := range st.Storage {
		b.WriteString("- " + stack.String() + "\n")
	}
	b.WriteString("\n")

	b.WriteString(titleStyle.Render("BUILDINGS") + "\n")
	for i, bs := range st.Buildings {
		b.WriteString(fmt.Sprintf("#%d %s L%d (%d/%d)\n", i+1, bs.Name, bs.Level, bs.Slots-bs.Free, bs.Slots))
		for _, c := range bs.Occupants {
			b.WriteString("  " + c.Line + "\n")
		}
	}

	width := m.width - m.logWidth() - 4
	if width < 20 {
		width = 20
	}
	return stateStyle.Width(width).Height(m.viewport.Height).Render(b.String())
}

func (m model) processTurn(action string) tea.Cmd {
	return func() tea.Msg {
		reply, err := m.dispatcher.HandleCommand(context.Background(), models.ParseCommand(action), sender)
		return turnProcessedMsg{reply: reply, err: err, status: m.dispatcher.Status()}
	}
}

// Run starts the console UI and blocks until the player quits.
func Run(d commands.Dispatcher) error {
	p := tea.NewProgram(NewModel(d), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
