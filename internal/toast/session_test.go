package toast

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) (*Session, *mockService, *mockClock) {
	t.Helper()
	service := &mockService{}
	clock := &mockClock{now: time.UnixMilli(1_700_000_000_000)}
	return NewSession(service, clock), service, clock
}

func download(progress int) ProgressContent {
	return ProgressContent{
		Title:    "Download",
		Subtitle: "file.zip",
		Status:   "Downloading",
		Progress: progress,
		Label:    "Progress",
	}
}

func TestSession_Scenario(t *testing.T) {
	ctx := context.Background()
	session, service, _ := newTestSession(t)

	require.NoError(t, session.Initialize(ctx))
	require.NoError(t, session.ShowProgress(ctx, download(10)))
	session.UpdateProgress(ctx, 55, "Halfway")
	session.ShowCompletion(ctx, CompletionContent{Title: "Done", Subtitle: "file.zip", Message: "Saved"})
	session.Hide(ctx)

	assert.Equal(t, []string{
		"acquire",
		"submit(progress@10%)",
		"retract",
		"submit(progress@55%)",
		"retract",
		"submit(completion)",
	}, service.Calls)
	assert.Equal(t, Ready, session.State())

	updated := service.Payloads[1]
	assert.Equal(t, []string{"Download", "file.zip", "Halfway"}, updated.Lines, "update keeps the last title and subtitle")
	assert.Equal(t, "Halfway", updated.Progress.Status)

	completion := service.Payloads[2]
	assert.Nil(t, completion.Progress)
	assert.Equal(t, []string{"Done", "file.zip", "Saved"}, completion.Lines)
}

func TestSession_SingleActiveToast(t *testing.T) {
	ctx := context.Background()
	session, service, _ := newTestSession(t)
	require.NoError(t, session.Initialize(ctx))

	for i := 0; i < 5; i++ {
		require.NoError(t, session.ShowProgress(ctx, download(i*10)))
		assert.Equal(t, ShowingProgress, session.State())
	}

	// Every submit after the first must be preceded by a retract of the
	// previous toast.
	active := 0
	for _, call := range service.Calls[1:] {
		switch call {
		case "retract":
			active--
		default:
			active++
		}
		assert.LessOrEqual(t, active, 1)
		assert.GreaterOrEqual(t, active, 0)
	}
	assert.Equal(t, service.Tags[:4], service.Retracted)
}

func TestSession_ShowBeforeInitialize(t *testing.T) {
	session, service, _ := newTestSession(t)

	err := session.ShowProgress(context.Background(), download(10))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotInitialized))
	assert.Empty(t, service.Calls)
	assert.Equal(t, Uninitialized, session.State())
}

func TestSession_SilentBeforeInitialize(t *testing.T) {
	ctx := context.Background()
	session, service, _ := newTestSession(t)

	session.UpdateProgress(ctx, 50, "status")
	session.Hide(ctx)
	session.ShowCompletion(ctx, CompletionContent{Title: "Done"})

	assert.Empty(t, service.Calls)
	assert.Equal(t, Uninitialized, session.State())
}

func TestSession_UpdateWithoutActiveToast(t *testing.T) {
	ctx := context.Background()
	session, service, _ := newTestSession(t)
	require.NoError(t, session.Initialize(ctx))

	session.UpdateProgress(ctx, 50, "status")

	assert.Equal(t, []string{"acquire"}, service.Calls)
	assert.Equal(t, Ready, session.State())
}

func TestSession_HideClearsOnRetractFailure(t *testing.T) {
	ctx := context.Background()
	session, service, _ := newTestSession(t)
	require.NoError(t, session.Initialize(ctx))
	require.NoError(t, session.ShowProgress(ctx, download(10)))

	service.RetractErr = errors.New("retract failed")
	session.Hide(ctx)

	assert.Equal(t, Ready, session.State())
	snap := session.Snapshot()
	assert.Empty(t, snap.Tag)
	assert.True(t, snap.ShownAt.IsZero())

	// A second hide has nothing left to retract.
	session.Hide(ctx)
	assert.Equal(t, []string{"acquire", "submit(progress@10%)", "retract"}, service.Calls)
}

func TestSession_ShowFailureLeavesNoStaleToast(t *testing.T) {
	ctx := context.Background()
	session, service, _ := newTestSession(t)
	require.NoError(t, session.Initialize(ctx))
	require.NoError(t, session.ShowProgress(ctx, download(10)))

	service.SubmitErr = errors.New("submit failed")
	err := session.ShowProgress(ctx, download(20))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "submit failed")
	assert.Equal(t, Ready, session.State())

	// With nothing active, update is a no-op again.
	calls := len(service.Calls)
	session.UpdateProgress(ctx, 30, "")
	assert.Len(t, service.Calls, calls)
}

func TestSession_UpdateFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	session, service, _ := newTestSession(t)
	require.NoError(t, session.Initialize(ctx))
	require.NoError(t, session.ShowProgress(ctx, download(10)))

	service.SubmitErr = errors.New("submit failed")
	assert.NotPanics(t, func() { session.UpdateProgress(ctx, 20, "") })
	assert.Equal(t, Ready, session.State())
}

func TestSession_CompletionFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	session, service, _ := newTestSession(t)
	require.NoError(t, session.Initialize(ctx))
	require.NoError(t, session.ShowProgress(ctx, download(10)))

	service.SubmitErr = errors.New("submit failed")
	session.ShowCompletion(ctx, CompletionContent{Title: "Done"})

	assert.Equal(t, []string{"acquire", "submit(progress@10%)", "retract", "submit(completion)"}, service.Calls)
	assert.Equal(t, Ready, session.State())
}

func TestSession_InitializeFailure(t *testing.T) {
	ctx := context.Background()
	session, service, _ := newTestSession(t)

	service.AcquireErr = errors.New("no notifier")
	err := session.Initialize(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no notifier")
	assert.Equal(t, Uninitialized, session.State())

	service.AcquireErr = nil
	require.NoError(t, session.Initialize(ctx), "initialize can be retried")
	assert.Equal(t, Ready, session.State())
}

func TestSession_ReinitializeRetractsActiveToast(t *testing.T) {
	ctx := context.Background()
	session, service, _ := newTestSession(t)
	require.NoError(t, session.Initialize(ctx))
	require.NoError(t, session.ShowProgress(ctx, download(10)))

	require.NoError(t, session.Initialize(ctx))

	assert.Equal(t, []string{"acquire", "submit(progress@10%)", "retract", "acquire"}, service.Calls)
	assert.Equal(t, Ready, session.State())
}

func TestSession_TagsAreUnique(t *testing.T) {
	ctx := context.Background()
	session, service, clock := newTestSession(t)
	require.NoError(t, session.Initialize(ctx))

	// The clock does not move between the first three shows.
	for i := 0; i < 3; i++ {
		require.NoError(t, session.ShowProgress(ctx, download(i)))
	}
	clock.Advance(time.Second)
	require.NoError(t, session.ShowProgress(ctx, download(50)))

	assert.Equal(t, []string{
		"progress_1700000000000",
		"progress_1700000000001",
		"progress_1700000000002",
		"progress_1700000001000",
	}, service.Tags)
	assert.Equal(t, "progress_1700000001000", session.Snapshot().Tag)
}

func TestSession_Snapshot(t *testing.T) {
	ctx := context.Background()
	session, _, clock := newTestSession(t)

	assert.Equal(t, Snapshot{State: "uninitialized"}, session.Snapshot())

	require.NoError(t, session.Initialize(ctx))
	require.NoError(t, session.ShowProgress(ctx, download(42)))

	snap := session.Snapshot()
	assert.Equal(t, "showing-progress", snap.State)
	assert.Equal(t, "test", snap.AppID)
	assert.Equal(t, "Download", snap.Title)
	assert.Equal(t, "file.zip", snap.Subtitle)
	assert.Equal(t, 42, snap.Progress)
	assert.Equal(t, clock.Now(), snap.ShownAt)
}

// countingService tracks how many progress toasts are on screen at once.
type countingService struct {
	mu        sync.Mutex
	active    int
	maxActive int
}

func (c *countingService) Acquire(_ context.Context) (Notifier, error) {
	return &mockNotifier{appID: "test"}, nil
}

func (c *countingService) Submit(_ context.Context, _ Notifier, p Payload, tag string) (Notification, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p.Progress != nil {
		c.active++
		c.maxActive = max(c.maxActive, c.active)
	}
	return &mockNotification{tag: tag}, nil
}

func (c *countingService) Retract(_ context.Context, _ Notifier, _ Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active--
	return nil
}

func TestSession_ConcurrentCalls(t *testing.T) {
	ctx := context.Background()
	service := &countingService{}
	session := NewSession(service, &RealClock{})
	require.NoError(t, session.Initialize(ctx))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(4)
		go func() {
			defer wg.Done()
			assert.NoError(t, session.ShowProgress(ctx, download(i)))
		}()
		go func() {
			defer wg.Done()
			session.UpdateProgress(ctx, i, "working")
		}()
		go func() {
			defer wg.Done()
			session.Hide(ctx)
		}()
		go func() {
			defer wg.Done()
			_ = session.Snapshot()
		}()
	}
	wg.Wait()

	session.Hide(ctx)
	assert.Equal(t, Ready, session.State())
	assert.Equal(t, 1, service.maxActive)
	assert.Equal(t, 0, service.active)
}
