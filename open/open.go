// Package open hands files and URLs to the desktop's default application.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/bedtime-cli/bedtime/constant"
)

// Start opens input without waiting for the handler to exit. A non-empty app
// replaces the default handler.
func Start(input, app string) error {
	cmd, err := command(runtime.GOOS, input, app)
	if err != nil {
		return err
	}
	return cmd.Start()
}

func command(goos, input, app string) (*exec.Cmd, error) {
	if input == "" {
		return nil, fmt.Errorf("nothing to open")
	}

	switch goos {
	case constant.Windows:
		if app == "" {
			rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
			return exec.Command(rundll, "url.dll,FileProtocolHandler", input), nil
		}
		// start treats & as a command separator
		return exec.Command("cmd", "/C", "start", "", app, strings.ReplaceAll(input, "&", "^&")), nil
	case constant.Darwin:
		if app == "" {
			return exec.Command("open", input), nil
		}
		return exec.Command("open", "-a", app, input), nil
	case constant.Linux:
		if app == "" {
			return exec.Command("xdg-open", input), nil
		}
		return exec.Command(app, input), nil
	case constant.Android:
		return exec.Command("termux-open", input), nil
	default:
		return nil, fmt.Errorf("unsupported OS: %s", goos)
	}
}
