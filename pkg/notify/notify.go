// Package notify delivers the user-facing success/failure messages
// configuration saves produce. The subsystem converts domain errors into
// failure notifications instead of surfacing raw errors to end users;
// hosts decide how a notification reaches the screen.
package notify

import (
	"context"
	"log/slog"
	"sync"
)

// Kind classifies a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindFailure Kind = "failure"
)

// Notification is one user-visible message.
type Notification struct {
	Kind    Kind
	Message string
}

// Success builds a success notification.
func Success(message string) Notification {
	return Notification{Kind: KindSuccess, Message: message}
}

// Failure builds a failure notification.
func Failure(message string) Notification {
	return Notification{Kind: KindFailure, Message: message}
}

// Notifier delivers notifications to the user.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Func adapts a function to the Notifier interface.
type Func func(ctx context.Context, n Notification)

func (f Func) Notify(ctx context.Context, n Notification) { f(ctx, n) }

// Slog logs notifications; the default for headless hosts.
func Slog(log *slog.Logger) Notifier {
	return Func(func(ctx context.Context, n Notification) {
		if n.Kind == KindFailure {
			log.WarnContext(ctx, n.Message, slog.String("kind", string(n.Kind)))
			return
		}
		log.InfoContext(ctx, n.Message, slog.String("kind", string(n.Kind)))
	})
}

// Recorder collects notifications for inspection in tests and flash-style
// UIs. Safe for concurrent use.
type Recorder struct {
	mu   sync.Mutex
	sent []Notification
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

// Sent returns a copy of everything delivered so far.
func (r *Recorder) Sent() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.sent))
	copy(out, r.sent)
	return out
}

// Reset clears the recorder.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = nil
}
