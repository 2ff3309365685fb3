package theme

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/muesli/termenv"
)

// ErrUnsupported means the platform offers no way to ask.
var ErrUnsupported = errors.New("os theme detection unsupported")

const detectTimeout = 2 * time.Second

// runCommand is swapped in tests.
var runCommand = func(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	return string(out), err
}

// SystemDetector returns a Detector that asks the desktop environment and
// falls back to the terminal background. The terminal is queried once,
// here, because doing so later would race the TUI for stdin.
func SystemDetector() Detector {
	termDark := termenv.HasDarkBackground()
	return func() (bool, error) {
		dark, err := QueryOS()
		if err != nil {
			return termDark, nil
		}
		return dark, nil
	}
}

// QueryOS asks the operating system for its dark-mode setting.
func QueryOS() (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), detectTimeout)
	defer cancel()

	switch runtime.GOOS {
	case "darwin":
		// The key only exists in dark mode; a missing key exits non-zero.
		out, err := runCommand(ctx, "defaults", "read", "-g", "AppleInterfaceStyle")
		if err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				return false, nil
			}
			return false, err
		}
		return parseApple(out), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		out, err := runCommand(ctx, "gsettings", "get", "org.gnome.desktop.interface", "color-scheme")
		if err != nil {
			return false, err
		}
		return parseGnome(out), nil
	case "windows":
		out, err := runCommand(ctx, "reg", "query",
			`HKCU\Software\Microsoft\Windows\CurrentVersion\Themes\Personalize`,
			"/v", "AppsUseLightTheme")
		if err != nil {
			return false, err
		}
		return parseWindows(out)
	}
	return false, ErrUnsupported
}

func parseApple(out string) bool {
	return strings.EqualFold(strings.TrimSpace(out), "dark")
}

func parseGnome(out string) bool {
	return strings.Contains(out, "prefer-dark")
}

func parseWindows(out string) (bool, error) {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 3 && fields[0] == "AppsUseLightTheme" {
			return fields[2] == "0x0", nil
		}
	}
	return false, errors.New("AppsUseLightTheme not found")
}
