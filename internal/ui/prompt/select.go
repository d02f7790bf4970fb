package prompt

import (
	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/worktree/internal/ui/styles"
)

// Option is one selectable entry. Detail is shown below the label when set.
type Option struct {
	Label  string
	Detail string
}

// SelectResult holds the result of a selection prompt.
type SelectResult struct {
	Value     string
	Index     int
	Cancelled bool
}

type listItem struct {
	title  string
	detail string
	index  int
}

func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.detail }
func (i listItem) FilterValue() string { return i.title }

type selectModel struct {
	list      list.Model
	done      bool
	cancelled bool
	selected  int
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			// While typing a filter, enter applies it instead of choosing.
			if m.list.FilterState() == list.Filtering {
				break
			}
			if item, ok := m.list.SelectedItem().(listItem); ok {
				m.selected = item.index
			}
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			if msg.String() == "esc" && m.list.FilterState() != list.Unfiltered {
				break
			}
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}
	return tea.NewView(m.list.View())
}

func newSelectModel(title string, options []Option) selectModel {
	items := make([]list.Item, len(options))
	hasDetail := false
	for i, opt := range options {
		items[i] = listItem{title: opt.Label, detail: opt.Detail, index: i}
		hasDetail = hasDetail || opt.Detail != ""
	}

	// Custom delegate with minimal styling
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = hasDetail
	delegate.SetSpacing(0)
	delegate.Styles.SelectedTitle = styles.AccentStyle
	delegate.Styles.SelectedDesc = styles.MutedStyle

	rows := len(options)
	if hasDetail {
		rows *= 2
	}
	l := list.New(items, delegate, 60, min(rows+6, 20))
	l.Title = title
	l.Styles.Title = styles.TitleStyle
	l.SetShowStatusBar(false)
	l.SetShowHelp(true)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()

	return selectModel{
		list:     l,
		selected: -1,
	}
}

// Select shows a fuzzy-filterable list and returns the user's selection.
// An empty option list is reported as cancelled.
func Select(title string, options []Option) (SelectResult, error) {
	if len(options) == 0 {
		return SelectResult{Cancelled: true}, nil
	}

	finalModel, err := newProgram(newSelectModel(title, options)).Run()
	if err != nil {
		return SelectResult{}, err
	}
	m := finalModel.(selectModel)

	if m.cancelled || m.selected < 0 || m.selected >= len(options) {
		return SelectResult{Cancelled: true}, nil
	}

	return SelectResult{
		Value: options[m.selected].Label,
		Index: m.selected,
	}, nil
}
