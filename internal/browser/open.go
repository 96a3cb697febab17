// Package browser points the user's default browser at a URL, for the
// jump from the terminal client to the hosted game.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// openCmd returns the platform's URL opener, or nil when the platform
// has none we know of.
func openCmd(goos, url string) *exec.Cmd {
	switch goos {
	case "darwin":
		return exec.Command("open", url)
	case "linux":
		return exec.Command("xdg-open", url)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return nil
	}
}

// Open launches the default browser on url. When no opener exists or it
// fails to start, the URL is printed so the user can follow it by hand.
func Open(url string) {
	cmd := openCmd(runtime.GOOS, url)
	if cmd == nil || cmd.Start() != nil {
		fmt.Println(url)
	}
}
