package native

import (
	"context"
	"log/slog"

	"github.com/mblarsen/toast-bridge/internal/toast"
)

// Log is a development stand-in for the notification service. It records
// every toast it would have shown in the log and always succeeds.
type Log struct {
	appID string
}

type logNotifier struct{ appID string }

func (n *logNotifier) AppID() string { return n.appID }

type logNotification struct{ tag string }

func (n *logNotification) Tag() string { return n.tag }

// NewLog creates a Log service.
func NewLog(appID string) *Log {
	return &Log{appID: appID}
}

func (l *Log) Acquire(_ context.Context) (toast.Notifier, error) {
	slog.Info("[toast] notifier acquired", "app_id", l.appID)
	return &logNotifier{appID: l.appID}, nil
}

func (l *Log) Submit(_ context.Context, _ toast.Notifier, p toast.Payload, tag string) (toast.Notification, error) {
	markup, err := p.Markup()
	if err != nil {
		return nil, err
	}
	slog.Info("[toast] shown", "tag", tag, "lines", p.Lines, "xml", markup)
	return &logNotification{tag: tag}, nil
}

func (l *Log) Retract(_ context.Context, _ toast.Notifier, n toast.Notification) error {
	slog.Info("[toast] hidden", "tag", n.Tag())
	return nil
}
