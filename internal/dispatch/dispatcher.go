// Package dispatch maps named method calls with a loosely typed argument bag
// onto the toast session.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mblarsen/toast-bridge/internal/toast"
)

// Method names understood by the dispatcher.
const (
	MethodInitialize          = "initialize"
	MethodShowProgressToast   = "showProgressToast"
	MethodUpdateProgress      = "updateProgress"
	MethodHideToast           = "hideToast"
	MethodShowCompletionToast = "showCompletionToast"
)

// Controller is the set of toast operations the dispatcher forwards to.
// *toast.Session implements it.
type Controller interface {
	Initialize(ctx context.Context) error
	ShowProgress(ctx context.Context, c toast.ProgressContent) error
	UpdateProgress(ctx context.Context, progress int, status string)
	Hide(ctx context.Context)
	ShowCompletion(ctx context.Context, c toast.CompletionContent)
}

var _ Controller = (*toast.Session)(nil)

// Dispatcher validates method calls and forwards them to a Controller.
type Dispatcher struct {
	controller Controller
}

// New creates a dispatcher for the given controller.
func New(controller Controller) *Dispatcher {
	return &Dispatcher{controller: controller}
}

// Dispatch runs method with the given arguments. On success it returns true.
// Every failure, including a panic further down, is returned as an
// *OperationError.
func (d *Dispatcher) Dispatch(ctx context.Context, method string, arguments any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Recovered from panic while dispatching", "method", method, "panic", r)
			result = nil
			err = &OperationError{
				Code:    NativeError,
				Message: "Unknown native error occurred",
				Err:     fmt.Errorf("panic: %v", r),
			}
		}
	}()

	slog.Debug("Dispatching method call", "method", method)

	switch method {
	case MethodInitialize:
		err = d.initialize(ctx)
	case MethodShowProgressToast:
		err = d.showProgressToast(ctx, arguments)
	case MethodUpdateProgress:
		err = d.updateProgress(ctx, arguments)
	case MethodHideToast:
		d.controller.Hide(ctx)
	case MethodShowCompletionToast:
		err = d.showCompletionToast(ctx, arguments)
	default:
		err = &OperationError{Code: NotImplemented, Message: fmt.Sprintf("method '%s' is not implemented", method)}
	}
	if err != nil {
		return nil, err
	}
	return true, nil
}

func (d *Dispatcher) initialize(ctx context.Context) error {
	if err := d.controller.Initialize(ctx); err != nil {
		return nativeError(err)
	}
	return nil
}

func (d *Dispatcher) showProgressToast(ctx context.Context, arguments any) error {
	a, ok := asArgs(arguments)
	if !ok {
		return invalidArguments("Arguments must be a map")
	}
	if !a.has("title") || !a.has("subtitle") || !a.has("progress") {
		return invalidArguments("Missing required arguments")
	}

	var c toast.ProgressContent
	var err error
	if c.Title, err = a.str("title", ""); err != nil {
		return err
	}
	if c.Subtitle, err = a.str("subtitle", ""); err != nil {
		return err
	}
	if c.Progress, err = a.integer("progress"); err != nil {
		return err
	}
	if c.Status, err = a.str("status", ""); err != nil {
		return err
	}
	if c.Label, err = a.str("progressLabel", toast.DefaultProgressLabel); err != nil {
		return err
	}

	if err := d.controller.ShowProgress(ctx, c); err != nil {
		return nativeError(err)
	}
	return nil
}

func (d *Dispatcher) updateProgress(ctx context.Context, arguments any) error {
	a, ok := asArgs(arguments)
	if !ok {
		return invalidArguments("Arguments must be a map")
	}
	if !a.has("progress") {
		return invalidArguments("Missing progress argument")
	}
	progress, err := a.integer("progress")
	if err != nil {
		return err
	}
	status, err := a.str("status", "")
	if err != nil {
		return err
	}

	d.controller.UpdateProgress(ctx, progress, status)
	return nil
}

func (d *Dispatcher) showCompletionToast(ctx context.Context, arguments any) error {
	a, ok := asArgs(arguments)
	if !ok {
		return invalidArguments("Arguments must be a map")
	}
	if !a.has("title") || !a.has("subtitle") {
		return invalidArguments("Missing required arguments")
	}

	var c toast.CompletionContent
	var err error
	if c.Title, err = a.str("title", ""); err != nil {
		return err
	}
	if c.Subtitle, err = a.str("subtitle", ""); err != nil {
		return err
	}
	if c.Message, err = a.str("message", ""); err != nil {
		return err
	}

	d.controller.ShowCompletion(ctx, c)
	return nil
}
