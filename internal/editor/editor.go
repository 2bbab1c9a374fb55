package editor

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/mattn/go-shellwords"
)

// Command picks the editor: the configured value wins, then $EDITOR, then
// $VISUAL, then vi.
func Command(configured string) string {
	if configured != "" {
		return configured
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	if e := os.Getenv("VISUAL"); e != "" {
		return e
	}
	return "vi"
}

// Open runs editor on path attached to the terminal. editor may carry
// arguments, e.g. "code --wait".
func Open(editor, path string) error {
	argv, err := shellwords.Parse(editor)
	if err != nil || len(argv) == 0 {
		return fmt.Errorf("editor %q: cannot parse command", editor)
	}
	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %q: %w", editor, err)
	}
	return nil
}

// Edit writes initial to a temporary markdown file, opens it and returns the
// saved contents.
func Edit(editor string, initial []byte) ([]byte, error) {
	f, err := os.CreateTemp("", "reel-draft-*.md")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(initial); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("writing temp file: %w", err)
	}

	if err := Open(editor, path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading edited file: %w", err)
	}
	return data, nil
}
