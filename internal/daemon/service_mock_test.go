package daemon

import (
	"context"
	"sync"
	"time"

	"github.com/mblarsen/toast-bridge/internal/toast"
)

type mockNotifier struct{}

func (mockNotifier) AppID() string { return "test" }

type mockNotification string

func (n mockNotification) Tag() string { return string(n) }

type mockService struct {
	mu    sync.Mutex
	calls []string
}

func (m *mockService) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *mockService) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *mockService) Acquire(_ context.Context) (toast.Notifier, error) {
	m.record("acquire")
	return mockNotifier{}, nil
}

func (m *mockService) Submit(_ context.Context, _ toast.Notifier, p toast.Payload, tag string) (toast.Notification, error) {
	if p.Progress != nil {
		m.record("submit(progress@" + p.Progress.ValueStringOverride + ")")
	} else {
		m.record("submit(completion)")
	}
	return mockNotification(tag), nil
}

func (m *mockService) Retract(_ context.Context, _ toast.Notifier, _ toast.Notification) error {
	m.record("retract")
	return nil
}

type mockClock struct {
	now time.Time
}

func (m *mockClock) Now() time.Time {
	return m.now
}
