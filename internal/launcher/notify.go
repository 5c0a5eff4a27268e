package launcher

import "os/exec"

// Notifier shows a transient message to the user.
type Notifier interface {
	Notify(summary, body string)
}

// DesktopNotifier sends notifications with notify-send. Failures are
// ignored since notifications are best effort.
type DesktopNotifier struct{}

func (DesktopNotifier) Notify(summary, body string) {
	cmd := exec.Command("notify-send", "-a", "hypract", "-i", "grid-filled-symbolic", summary, body)
	if err := cmd.Start(); err != nil {
		return
	}
	go func() { _ = cmd.Wait() }()
}
