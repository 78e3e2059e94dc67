package share

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/camila/personachat/internal/logger"
)

// OpenInBrowser opens a URL in the default browser. The call is fire and
// forget: the browser process is detached and no result is awaited.
func OpenInBrowser(url string) error {
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
		return fmt.Errorf("failed to open browser: %w", err)
	}

	logger.Info("opened share link", "url", url)

	// Detach; we don't care about the browser's exit status
	go func() { _ = cmd.Wait() }()

	return nil
}
