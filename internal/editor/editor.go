// Package editor hands the open document to the user's own editor.
package editor

import (
	"errors"
	"os"
	"os/exec"
	"strings"
)

// ErrNoFile is returned for documents that were never saved.
var ErrNoFile = errors.New("document has no file yet; save it first")

// PreferredEditor finds a suitable editor from env or common defaults.
func PreferredEditor() (string, error) {
	if v := os.Getenv("VISUAL"); v != "" {
		return v, nil
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e, nil
	}
	for _, cand := range []string{"nvim", "vim", "vi", "nano"} {
		if p, err := exec.LookPath(cand); err == nil {
			return p, nil
		}
	}
	return "", errors.New("no editor found; set $EDITOR or $VISUAL")
}

// Command builds the process that edits path. $VISUAL/$EDITOR may carry
// flags, so they are run through a shell wrapper. Stdio is left for the
// caller to attach.
func Command(path string) (*exec.Cmd, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrNoFile
	}
	ed := os.Getenv("VISUAL")
	if ed == "" {
		ed = os.Getenv("EDITOR")
	}
	if strings.TrimSpace(ed) != "" {
		cmd := exec.Command("sh", "-c", "$EDITORCMD \"$FILEPATH\"")
		cmd.Env = append(os.Environ(), "EDITORCMD="+ed, "FILEPATH="+path)
		return cmd, nil
	}
	prog, err := PreferredEditor()
	if err != nil {
		return nil, err
	}
	return exec.Command(prog, path), nil
}

// Run edits path in the foreground, attached to the current terminal.
func Run(path string) error {
	cmd, err := Command(path)
	if err != nil {
		return err
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
