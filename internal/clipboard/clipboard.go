// Package clipboard copies text to the system clipboard through
// an external command: the platform default, or an override the
// user configures as a single shell-style string.
package clipboard

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/google/shlex"
)

// commandFor resolves the clipboard command for a platform. The
// override, when non-empty, is split shell-style so quoted
// arguments survive.
func commandFor(goos, override string) ([]string, error) {
	if override != "" {
		args, err := shlex.Split(override)
		if err != nil {
			return nil, fmt.Errorf("parsing clipboard command %q: %w", override, err)
		}
		if len(args) == 0 {
			return nil, fmt.Errorf("empty clipboard command")
		}
		return args, nil
	}

	switch goos {
	case "darwin":
		return []string{"pbcopy"}, nil
	case "windows":
		return []string{"clip"}, nil
	case "linux":
		if _, err := exec.LookPath("wl-copy"); err == nil {
			return []string{"wl-copy"}, nil
		}
		return []string{"xclip", "-selection", "clipboard"}, nil
	default:
		return nil, fmt.Errorf("no clipboard command known for %s", goos)
	}
}

// CopyWith pipes text into the resolved clipboard command.
func CopyWith(goos, override, text string) error {
	args, err := commandFor(goos, override)
	if err != nil {
		return err
	}
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w (%s)", args[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}
