package ui

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// OpenURL hands an http(s) URL to the platform opener without waiting
// for it to exit.
func OpenURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("not a web url: %q", raw)
	}

	name, args := openerCommand(runtime.GOOS, u.String())
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	go cmd.Wait()
	return nil
}

func openerCommand(goos, target string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}
