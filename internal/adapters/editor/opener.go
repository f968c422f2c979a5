package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"daybook/internal/ports"
)

var _ ports.EditorOpener = (*Opener)(nil)

// Opener implements ports.EditorOpener
type Opener struct {
	lookupEnv func(string) string
}

// NewOpener creates a new editor opener
func NewOpener() *Opener {
	return &Opener{lookupEnv: os.Getenv}
}

// OpenFile opens a file in the user's preferred editor
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for opening a file in the editor.
// $EDITOR may carry arguments, e.g. "code --wait".
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	fields := strings.Fields(o.findEditor())
	if len(fields) == 0 {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	args := append(fields[1:], path)
	cmd := exec.Command(fields[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// Compose opens initial text in the editor and returns what was saved
func (o *Opener) Compose(initial string) (string, error) {
	path, err := WriteDraft(initial)
	if err != nil {
		return "", err
	}
	defer os.Remove(path)

	if err := o.OpenFile(path); err != nil {
		return "", fmt.Errorf("editor exited: %w", err)
	}
	return ReadDraft(path)
}

// WriteDraft stores initial text in a temp file for the editor to open
func WriteDraft(initial string) (string, error) {
	f, err := os.CreateTemp("", "daybook-note-*.md")
	if err != nil {
		return "", fmt.Errorf("failed to create draft file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(initial); err != nil {
		return "", fmt.Errorf("failed to write draft file: %w", err)
	}
	return f.Name(), nil
}

// ReadDraft returns the saved draft with trailing whitespace removed
func ReadDraft(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read draft file: %w", err)
	}
	return strings.TrimRight(string(data), " \t\r\n"), nil
}

// findEditor returns the editor to use
func (o *Opener) findEditor() string {
	// Check $EDITOR first
	if editor := o.lookupEnv("EDITOR"); editor != "" {
		return editor
	}

	// Check $VISUAL
	if visual := o.lookupEnv("VISUAL"); visual != "" {
		return visual
	}

	// Try common editors
	editors := []string{"nvim", "vim", "vi", "nano"}
	for _, editor := range editors {
		if path, err := exec.LookPath(editor); err == nil {
			return path
		}
	}

	return ""
}
