package palette

import (
	"fmt"
	"os/exec"
	"strings"
)

// backendPriority is the order auto-detection tries pickers in.
var backendPriority = []string{"rofi", "fuzzel", "wofi", "dmenu"}

// DetectBackend names the first picker found in PATH.
func DetectBackend() (string, error) {
	return detectWith(exec.LookPath)
}

func detectWith(lookPath func(string) (string, error)) (string, error) {
	for _, name := range backendPriority {
		if _, err := lookPath(flavors[name].command); err == nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("no palette backend found in PATH (looked for: %s)", strings.Join(backendPriority, ", "))
}
