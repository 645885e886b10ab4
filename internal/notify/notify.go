package notify

import (
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

// Urgency levels for notifications. The zero value is normal.
type Urgency int

const (
	UrgencyNormal Urgency = iota
	UrgencyLow
	UrgencyCritical
)

// Notification represents a desktop notification
type Notification struct {
	Title   string
	Body    string
	Urgency Urgency
	Timeout time.Duration
	Icon    string // Optional icon name
}

// Runner executes the notification command
type Runner func(name string, args ...string) error

func execRunner(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// Notifier sends desktop notifications through notify-send
type Notifier struct {
	enabled bool
	run     Runner
}

// NewNotifier creates a notifier. A disabled notifier drops everything.
func NewNotifier(enabled bool) *Notifier {
	return &Notifier{
		enabled: enabled,
		run:     execRunner,
	}
}

// SetRunner replaces the command runner
func (n *Notifier) SetRunner(r Runner) {
	if r != nil {
		n.run = r
	}
}

// IsEnabled returns whether notifications are enabled
func (n *Notifier) IsEnabled() bool {
	return n != nil && n.enabled
}

// Args builds the notify-send argument list for a notification
func Args(notification Notification) []string {
	args := []string{}

	switch notification.Urgency {
	case UrgencyLow:
		args = append(args, "-u", "low")
	case UrgencyCritical:
		args = append(args, "-u", "critical")
	default:
		args = append(args, "-u", "normal")
	}

	// milliseconds
	if notification.Timeout > 0 {
		args = append(args, "-t", strconv.Itoa(int(notification.Timeout.Milliseconds())))
	}

	if notification.Icon != "" {
		args = append(args, "-i", notification.Icon)
	}

	args = append(args, "-a", "taskboard")

	args = append(args, notification.Title)
	if notification.Body != "" {
		args = append(args, notification.Body)
	}
	return args
}

// Send sends a desktop notification
func (n *Notifier) Send(notification Notification) error {
	if !n.IsEnabled() {
		return nil
	}
	return n.run("notify-send", Args(notification)...)
}

// SendAlert mirrors a blocking board alert to the desktop
func (n *Notifier) SendAlert(message string) error {
	return n.Send(Notification{
		Title:   "Task board",
		Body:    message,
		Urgency: UrgencyCritical,
		Timeout: 10 * time.Second,
		Icon:    "dialog-error-symbolic",
	})
}

// SendDueSummary reports how many tasks are overdue or due soon. Nothing is
// sent when both counts are zero.
func (n *Notifier) SendDueSummary(overdue, dueSoon int) error {
	if overdue == 0 && dueSoon == 0 {
		return nil
	}
	urgency := UrgencyNormal
	title := "Tasks due soon"
	if overdue > 0 {
		urgency = UrgencyCritical
		title = "Tasks overdue"
	}
	return n.Send(Notification{
		Title:   title,
		Body:    fmt.Sprintf("%d overdue, %d due soon", overdue, dueSoon),
		Urgency: urgency,
		Timeout: 15 * time.Second,
		Icon:    "emblem-important-symbolic",
	})
}
