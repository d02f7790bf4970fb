package prompt

import (
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
)

// newProgram runs model on stderr with the color profile of stderr
// (handles piped output, NO_COLOR, etc.).
func newProgram(model tea.Model) *tea.Program {
	profile := colorprofile.Detect(os.Stderr, os.Environ())
	return tea.NewProgram(model,
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(profile),
	)
}
