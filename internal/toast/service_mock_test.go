package toast

import (
	"context"
	"fmt"
	"time"
)

type mockNotifier struct{ appID string }

func (n *mockNotifier) AppID() string { return n.appID }

type mockNotification struct{ tag string }

func (n *mockNotification) Tag() string { return n.tag }

type mockService struct {
	Calls     []string
	Payloads  []Payload
	Tags      []string
	Retracted []string

	AcquireErr error
	SubmitErr  error
	RetractErr error
}

func (m *mockService) Acquire(_ context.Context) (Notifier, error) {
	m.Calls = append(m.Calls, "acquire")
	if m.AcquireErr != nil {
		return nil, m.AcquireErr
	}
	return &mockNotifier{appID: "test"}, nil
}

func (m *mockService) Submit(_ context.Context, _ Notifier, p Payload, tag string) (Notification, error) {
	if p.Progress != nil {
		m.Calls = append(m.Calls, fmt.Sprintf("submit(progress@%s)", p.Progress.ValueStringOverride))
	} else {
		m.Calls = append(m.Calls, "submit(completion)")
	}
	m.Payloads = append(m.Payloads, p)
	m.Tags = append(m.Tags, tag)
	if m.SubmitErr != nil {
		return nil, m.SubmitErr
	}
	return &mockNotification{tag: tag}, nil
}

func (m *mockService) Retract(_ context.Context, _ Notifier, n Notification) error {
	m.Calls = append(m.Calls, "retract")
	m.Retracted = append(m.Retracted, n.Tag())
	return m.RetractErr
}

type mockClock struct {
	now time.Time
}

func (m *mockClock) Now() time.Time {
	return m.now
}

func (m *mockClock) Advance(d time.Duration) {
	m.now = m.now.Add(d)
}
