package replui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nilsdev/wisp/internal/config"
)

const (
	// Prompt is the default prompt for the REPL.
	Prompt = ">> "

	// ContPrompt is the continuation prompt used in multiline input mode.
	ContPrompt = ".. "
)

// Options controls display behavior of the interactive front ends.
type Options struct {
	NoColor  bool
	Username string
}

// StartTUI runs the bubbletea REPL until the user quits.
func StartTUI(cfg config.Config, opts Options) error {
	p := tea.NewProgram(initialModel(cfg, opts))
	_, err := p.Run()
	return err
}

type evalResultMsg struct {
	output  string
	isError bool
	stage   string
	elapsed time.Duration
}

type historyEntry struct {
	input          string
	output         string
	isError        bool
	stage          string
	evaluationTime time.Duration
}

type model struct {
	session *Session

	textInput       textinput.Model
	history         []historyEntry
	username        string
	evaluating      bool
	currentInput    string
	multilineBuffer string
	isMultiline     bool
	spinner         spinner.Model
	noColor         bool
}

func (m model) applyStyle(style interface{ Render(...string) string }, text string) string {
	if m.noColor {
		return text
	}
	return style.Render(text)
}

func initialModel(cfg config.Config, opts Options) model {
	ti := textinput.New()
	ti.Placeholder = "Enter wisp code"
	ti.Focus()
	ti.Width = 80
	ti.Prompt = Prompt

	s := spinner.New()
	s.Spinner = spinner.Dot

	return model{
		session:   NewSession(cfg),
		textInput: ti,
		username:  opts.Username,
		spinner:   s,
		noColor:   opts.NoColor,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func evalCmd(session *Session, input string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		output, evalErr := session.Eval(input)
		elapsed := time.Since(start)

		if evalErr != nil {
			return evalResultMsg{output: evalErr.Error(), isError: true, stage: evalErr.Stage, elapsed: elapsed}
		}
		return evalResultMsg{output: output, elapsed: elapsed}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.evaluating {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case evalResultMsg:
		m.evaluating = false
		m.history = append(m.history, historyEntry{
			input:          m.currentInput,
			output:         msg.output,
			isError:        msg.isError,
			stage:          msg.stage,
			evaluationTime: msg.elapsed,
		})
		m.currentInput = ""
		return m, nil

	case tea.KeyMsg:
		if m.evaluating && msg.Type != tea.KeyCtrlC {
			return m, m.spinner.Tick
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyCtrlD:
			return m, tea.Quit
		case tea.KeyEnter:
			input := m.textInput.Value()
			if input == "" {
				if m.isMultiline {
					if m.multilineBuffer == "" {
						m.isMultiline = false
						return m, nil
					}
					return m.submit(m.multilineBuffer)
				}
				return m, nil
			}

			if m.isMultiline {
				m.multilineBuffer += "\n" + input
				m.textInput.SetValue("")
				if isBalanced(m.multilineBuffer) {
					return m.submit(m.multilineBuffer)
				}
				return m, nil
			}

			if !isBalanced(input) {
				m.isMultiline = true
				m.multilineBuffer = input
				m.textInput.SetValue("")
				return m, nil
			}

			return m.submit(input)
		}
	}

	if !m.evaluating {
		m.textInput, cmd = m.textInput.Update(msg)
	}
	if m.evaluating {
		return m, m.spinner.Tick
	}
	return m, cmd
}

func (m model) submit(input string) (tea.Model, tea.Cmd) {
	m.evaluating = true
	m.currentInput = input
	m.textInput.SetValue("")
	m.isMultiline = false
	m.multilineBuffer = ""
	return m, evalCmd(m.session, input)
}

func (m model) View() string {
	var s strings.Builder

	s.WriteString(m.applyStyle(titleStyle, " wisp REPL "))
	s.WriteString("\n")
	if m.username != "" {
		fmt.Fprintf(&s, "\nHello %s! Feel free to type in commands\n", m.username)
	}
	s.WriteString("\n")

	for _, entry := range m.history {
		lines := strings.Split(entry.input, "\n")
		for i, line := range lines {
			if i == 0 {
				s.WriteString(m.applyStyle(promptStyle, Prompt))
			} else {
				s.WriteString(m.applyStyle(promptStyle, ContPrompt))
			}
			s.WriteString(highlightCode(line, m.noColor))
			s.WriteString("\n")
		}

		if entry.isError {
			s.WriteString(fmt.Sprintf("%s error: ", entry.stage))
			s.WriteString(m.applyStyle(errorStyle, entry.output))
		} else {
			s.WriteString(m.applyStyle(resultStyle, entry.output))
		}

		if entry.evaluationTime > 10*time.Millisecond {
			s.WriteString(m.applyStyle(historyStyle, fmt.Sprintf(" (%.2fs)", entry.evaluationTime.Seconds())))
		}
		s.WriteString("\n\n")
	}

	if m.evaluating {
		s.WriteString(m.applyStyle(promptStyle, Prompt))
		s.WriteString(highlightCode(m.currentInput, m.noColor))
		s.WriteString("\n")
		s.WriteString(m.spinner.View())
		s.WriteString(" Evaluating...\n\n")
	}

	if m.isMultiline && !m.evaluating {
		s.WriteString(m.applyStyle(historyStyle, "Current multiline input:\n"))
		s.WriteString(highlightCode(m.multilineBuffer, m.noColor))
		s.WriteString("\n")
	}

	if !m.evaluating {
		if m.isMultiline {
			m.textInput.Prompt = m.applyStyle(promptStyle, ContPrompt)
		} else {
			m.textInput.Prompt = m.applyStyle(promptStyle, Prompt)
		}
		s.WriteString(m.textInput.View())
		s.WriteString("\n")
	}

	helpText := "\nPress Esc or Ctrl+C/D to exit"
	if m.isMultiline {
		helpText += " | Multiline mode: Enter empty line to evaluate or continue typing"
	} else {
		helpText += " | Multiline input supported for unbalanced brackets"
	}
	s.WriteString(m.applyStyle(historyStyle, helpText))

	return s.String()
}
