package dispatch

import (
	"context"

	"github.com/mblarsen/toast-bridge/internal/toast"
)

type mockController struct {
	InitializeErr error
	ShowErr       error
	Panic         any

	Calls          []string
	LastProgress   toast.ProgressContent
	LastCompletion toast.CompletionContent
	LastUpdate     struct {
		Progress int
		Status   string
	}
}

func (m *mockController) Initialize(_ context.Context) error {
	m.Calls = append(m.Calls, "initialize")
	if m.Panic != nil {
		panic(m.Panic)
	}
	return m.InitializeErr
}

func (m *mockController) ShowProgress(_ context.Context, c toast.ProgressContent) error {
	m.Calls = append(m.Calls, "show")
	m.LastProgress = c
	return m.ShowErr
}

func (m *mockController) UpdateProgress(_ context.Context, progress int, status string) {
	m.Calls = append(m.Calls, "update")
	m.LastUpdate.Progress = progress
	m.LastUpdate.Status = status
}

func (m *mockController) Hide(_ context.Context) {
	m.Calls = append(m.Calls, "hide")
}

func (m *mockController) ShowCompletion(_ context.Context, c toast.CompletionContent) {
	m.Calls = append(m.Calls, "complete")
	m.LastCompletion = c
}

type fakeNotifier struct{}

func (fakeNotifier) AppID() string { return "test" }

type fakeNotification string

func (n fakeNotification) Tag() string { return string(n) }

// fakeService counts native calls for tests that run a real toast.Session.
type fakeService struct {
	Acquires int
	Submits  int
	Retracts int
}

func (f *fakeService) Acquire(_ context.Context) (toast.Notifier, error) {
	f.Acquires++
	return fakeNotifier{}, nil
}

func (f *fakeService) Submit(_ context.Context, _ toast.Notifier, _ toast.Payload, tag string) (toast.Notification, error) {
	f.Submits++
	return fakeNotification(tag), nil
}

func (f *fakeService) Retract(_ context.Context, _ toast.Notifier, _ toast.Notification) error {
	f.Retracts++
	return nil
}

func (f *fakeService) total() int {
	return f.Acquires + f.Submits + f.Retracts
}
