package app

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Opener hands a link to the system.
type Opener interface {
	Open(url string) error
}

// SystemOpener opens links with the platform's default handler.
type SystemOpener struct{}

// Open launches the handler for url without waiting for it.
func (SystemOpener) Open(url string) error {
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
		return fmt.Errorf("opening %s: %w", url, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
