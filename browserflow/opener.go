package browserflow

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Opener puts an authorization URL in front of the user. Injectable so tests
// and webview hosts can intercept the URL instead of spawning a browser.
type Opener func(url string) error

// OpenSystemBrowser launches the platform's default browser.
func OpenSystemBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("[browserflow.OpenSystemBrowser] %w", err)
	}
	return nil
}
