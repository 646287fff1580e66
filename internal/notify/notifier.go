// Package notify delivers engine completion notifications to the desktop or
// the terminal.
package notify

import (
	"sync"

	"fyne.io/fyne/v2"
	"go.uber.org/zap"

	"focusflow/internal/core/engine"
)

// Sender is implemented by fyne.App.
type Sender interface {
	SendNotification(notification *fyne.Notification)
}

// Desktop shows notifications through fyne when permission is granted.
type Desktop struct {
	sender  Sender
	granted func() bool
	logger  *zap.Logger
}

// NewDesktop creates a desktop notifier. granted is consulted for every
// notification so a preference change applies immediately.
func NewDesktop(sender Sender, granted func() bool, logger *zap.Logger) *Desktop {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Desktop{sender: sender, granted: granted, logger: logger.Named("notify")}
}

// Notify implements engine.Notifier.
func (desktop *Desktop) Notify(notification engine.Notification) {
	if desktop.sender == nil || desktop.granted == nil || !desktop.granted() {
		desktop.logger.Debug("notification skipped: permission not granted")
		return
	}
	defer func() {
		if r := recover(); r != nil {
			desktop.logger.Warn("notification failed", zap.Any("panic", r))
		}
	}()
	desktop.sender.SendNotification(fyne.NewNotification(notification.Title, notification.Body))
}

// Bell keeps the latest notification for the terminal face to render.
type Bell struct {
	mu     sync.Mutex
	latest engine.Notification
	count  int
}

// Notify implements engine.Notifier.
func (bell *Bell) Notify(notification engine.Notification) {
	bell.mu.Lock()
	defer bell.mu.Unlock()
	bell.latest = notification
	bell.count++
}

// Latest returns the most recent notification and how many were received.
func (bell *Bell) Latest() (engine.Notification, int) {
	bell.mu.Lock()
	defer bell.mu.Unlock()
	return bell.latest, bell.count
}

// Fanout forwards notifications to every notifier.
type Fanout []engine.Notifier

// Notify implements engine.Notifier.
func (fanout Fanout) Notify(notification engine.Notification) {
	for _, notifier := range fanout {
		if notifier != nil {
			notifier.Notify(notification)
		}
	}
}
