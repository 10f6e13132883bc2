package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mblarsen/toast-bridge/internal/dispatch"
	"github.com/mblarsen/toast-bridge/internal/ipc"
)

func (d *Daemon) handleIPC(payload []byte) ([]byte, error) {
	var req struct {
		Command string
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("failed to unmarshal command: %w", err)
	}

	switch req.Command {
	case "call":
		return d.handleCall(payload)
	case "status":
		return d.handleStatus(payload)
	default:
		return nil, fmt.Errorf("unknown command: %s", req.Command)
	}
}

func (d *Daemon) handleCall(payload []byte) ([]byte, error) {
	var req ipc.CallRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("failed to unmarshal call request: %w", err)
	}

	var resp ipc.CallResponse
	result, err := d.call(req)
	if err != nil {
		resp.Error = toCallError(err)
		slog.Debug("Method call failed", "method", req.Method, "code", resp.Error.Code, "message", resp.Error.Message)
	} else {
		resp.Result = result
	}
	return json.Marshal(resp)
}

func (d *Daemon) call(req ipc.CallRequest) (any, error) {
	arguments, err := dispatch.DecodeArguments(req.Arguments)
	if err != nil {
		return nil, err
	}
	return d.dispatcher.Dispatch(context.Background(), req.Method, arguments)
}

func toCallError(err error) *ipc.CallError {
	var opErr *dispatch.OperationError
	if errors.As(err, &opErr) {
		return &ipc.CallError{Code: string(opErr.Code), Message: opErr.Message}
	}
	return &ipc.CallError{Code: string(dispatch.NativeError), Message: err.Error()}
}

func (d *Daemon) handleStatus(_ []byte) ([]byte, error) {
	snap := d.session.Snapshot()
	return json.Marshal(ipc.StatusResponse{
		State:     snap.State,
		Backend:   d.backend,
		AppID:     snap.AppID,
		Tag:       snap.Tag,
		Title:     snap.Title,
		Subtitle:  snap.Subtitle,
		Status:    snap.Status,
		Progress:  snap.Progress,
		ShownAt:   snap.ShownAt,
		StartedAt: d.startedAt,
	})
}
