package ports

import "os/exec"

// EditorOpener runs the user's editor over entry content
type EditorOpener interface {
	// Compose edits initial in a temporary file and returns the saved text.
	// It blocks until the editor exits.
	Compose(initial string) (string, error)

	// Command prepares the editor on path without starting it, for callers
	// that hand the terminal over themselves such as tea.ExecProcess
	Command(path string) (*exec.Cmd, error)
}
