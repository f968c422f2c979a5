package editor

import (
	"os"
	"slices"
	"testing"
)

func TestOpener_CommandSplitsEditorArgs(t *testing.T) {
	o := &Opener{lookupEnv: func(k string) string {
		if k == "EDITOR" {
			return "code --wait"
		}
		return ""
	}}

	cmd, err := o.Command("/tmp/note.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"code", "--wait", "/tmp/note.md"}
	if !slices.Equal(cmd.Args, want) {
		t.Errorf("expected args %v, got %v", want, cmd.Args)
	}
}

func TestOpener_PrefersEditorOverVisual(t *testing.T) {
	env := map[string]string{"EDITOR": "nano", "VISUAL": "vim"}
	o := &Opener{lookupEnv: func(k string) string { return env[k] }}

	cmd, err := o.Command("x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Args[0] != "nano" {
		t.Errorf("expected nano, got %s", cmd.Args[0])
	}
}

func TestDraftRoundTrip(t *testing.T) {
	path, err := WriteDraft("shopping ideas\n\n")
	if err != nil {
		t.Fatalf("WriteDraft failed: %v", err)
	}
	defer os.Remove(path)

	got, err := ReadDraft(path)
	if err != nil {
		t.Fatalf("ReadDraft failed: %v", err)
	}
	if got != "shopping ideas" {
		t.Errorf("expected trimmed draft, got %q", got)
	}
}
