package toast

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// State is the lifecycle state of a Session.
type State int

const (
	Uninitialized State = iota
	Ready
	ShowingProgress
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case ShowingProgress:
		return "showing-progress"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Session owns the single progress toast of the process. All methods are safe
// for concurrent use; each one holds the session lock for its whole
// read-modify-write so replacing a toast is atomic to other callers.
type Session struct {
	service Service
	clock   Clock
	tags    tagSource

	mu          sync.Mutex
	initialized bool
	notifier    Notifier
	active      Notification
	tag         string
	last        ProgressContent
	shownAt     time.Time
}

// NewSession creates a session backed by the given notification service.
func NewSession(service Service, clock Clock) *Session {
	if clock == nil {
		clock = &RealClock{}
	}
	return &Session{
		service: service,
		clock:   clock,
		tags:    tagSource{clock: clock},
	}
}

// Initialize acquires the native notifier. Calling it again re-acquires the
// notifier. On failure the session is left uninitialized and may be retried.
func (s *Session) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		s.hideLocked(ctx)
	}

	notifier, err := s.service.Acquire(ctx)
	if err != nil {
		s.initialized = false
		s.notifier = nil
		return fmt.Errorf("failed to initialize notifications: %w", err)
	}
	s.notifier = notifier
	s.initialized = true
	slog.Info("Notifications initialized", "app_id", notifier.AppID())
	return nil
}

// ShowProgress replaces any active progress toast with a new one. Unlike the
// other operations it fails with ErrNotInitialized before Initialize has
// succeeded.
func (s *Session) ShowProgress(ctx context.Context, c ProgressContent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return ErrNotInitialized
	}
	return s.showLocked(ctx, c)
}

// UpdateProgress re-shows the active progress toast with a new value and
// status. It does nothing if there is no active toast, and never returns an
// error to the caller; failures are logged.
func (s *Session) UpdateProgress(ctx context.Context, progress int, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized || s.active == nil {
		slog.Debug("No active progress toast, ignoring update", "progress", progress)
		return
	}

	c := s.last
	c.Progress = progress
	c.Status = status
	if err := s.showLocked(ctx, c); err != nil {
		slog.Warn("Failed to update progress toast", "progress", progress, "err", err)
	}
}

// Hide retracts the active progress toast. Local tracking is cleared even if
// the native retraction fails.
func (s *Session) Hide(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hideLocked(ctx)
}

// ShowCompletion hides the active progress toast and shows an untracked
// completion toast. It is best effort: before Initialize it does nothing and
// native failures are only logged.
func (s *Session) ShowCompletion(ctx context.Context, c CompletionContent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		slog.Debug("Notifications not initialized, dropping completion toast", "title", c.Title)
		return
	}

	s.hideLocked(ctx)

	tag := s.tags.next("complete")
	if _, err := s.service.Submit(ctx, s.notifier, CompletionPayload(c), tag); err != nil {
		slog.Warn("Failed to show completion toast", "tag", tag, "err", err)
		return
	}
	slog.Debug("Showed completion toast", "tag", tag, "title", c.Title)
}

// State reports the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() State {
	switch {
	case !s.initialized:
		return Uninitialized
	case s.active != nil:
		return ShowingProgress
	default:
		return Ready
	}
}

// Snapshot is a read-only view of a session.
type Snapshot struct {
	State    string    `json:"state"`
	AppID    string    `json:"app_id,omitempty"`
	Tag      string    `json:"tag,omitempty"`
	Title    string    `json:"title,omitempty"`
	Subtitle string    `json:"subtitle,omitempty"`
	Status   string    `json:"status,omitempty"`
	Progress int       `json:"progress"`
	ShownAt  time.Time `json:"shown_at,omitzero"`
}

// Snapshot returns the current state of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{State: s.stateLocked().String()}
	if s.notifier != nil {
		snap.AppID = s.notifier.AppID()
	}
	if s.active != nil {
		snap.Tag = s.tag
		snap.Title = s.last.Title
		snap.Subtitle = s.last.Subtitle
		snap.Status = s.last.Status
		snap.Progress = s.last.Progress
		snap.ShownAt = s.shownAt
	}
	return snap
}

func (s *Session) showLocked(ctx context.Context, c ProgressContent) error {
	s.hideLocked(ctx)

	if c.Label == "" {
		c.Label = DefaultProgressLabel
	}
	c.Progress = clampProgress(c.Progress)

	tag := s.tags.next("progress")
	n, err := s.service.Submit(ctx, s.notifier, ProgressPayload(c), tag)
	if err != nil {
		return fmt.Errorf("failed to show progress toast: %w", err)
	}

	s.active = n
	s.tag = tag
	s.last = c
	s.shownAt = s.clock.Now()
	slog.Debug("Showed progress toast", "tag", tag, "progress", c.Progress)
	return nil
}

func (s *Session) hideLocked(ctx context.Context) {
	if s.active == nil {
		return
	}
	if s.notifier != nil {
		if err := s.service.Retract(ctx, s.notifier, s.active); err != nil {
			slog.Warn("Failed to retract progress toast", "tag", s.tag, "err", err)
		}
	}
	s.active = nil
	s.tag = ""
	s.shownAt = time.Time{}
}
