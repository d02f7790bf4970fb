package prompt

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/worktree/internal/ui/styles"
)

// ConfirmResult holds the answer to a confirmation prompt. Cancelled is
// set for ctrl+c, esc and q.
type ConfirmResult struct {
	Confirmed bool
	Cancelled bool
}

type confirmModel struct {
	question string
	// items are listed under the question, e.g. the worktrees clear removes
	items []string

	answered  bool
	confirmed bool
	cancelled bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "y", "Y":
		m.confirmed = true
	case "n", "N", "enter":
	case "ctrl+c", "q", "esc":
		m.cancelled = true
	default:
		return m, nil
	}
	m.answered = true
	return m, tea.Quit
}

func (m confirmModel) View() tea.View {
	if m.answered {
		return tea.NewView("")
	}

	var b strings.Builder
	for _, item := range m.items {
		b.WriteString(styles.MutedStyle.Render("  "+item) + "\n")
	}
	b.WriteString(styles.AccentStyle.Render(m.question) + " [y/N] ")
	return tea.NewView(b.String())
}

// Confirm asks a yes/no question, listing items above it. Enter answers no.
func Confirm(question string, items ...string) (ConfirmResult, error) {
	final, err := newProgram(confirmModel{question: question, items: items}).Run()
	if err != nil {
		return ConfirmResult{}, err
	}
	m := final.(confirmModel)
	return ConfirmResult{Confirmed: m.confirmed, Cancelled: m.cancelled}, nil
}
