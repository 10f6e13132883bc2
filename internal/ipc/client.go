package ipc

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"time"
)

// Client is the IPC client.
type Client struct {
	socketPath string
	secret     []byte
	timeout    time.Duration
}

// NewClient creates a new IPC client.
func NewClient(socketPath string, secret []byte) *Client {
	return &Client{
		socketPath: socketPath,
		secret:     secret,
		timeout:    30 * time.Second,
	}
}

// Send sends a request to the server and decodes the response.
func (c *Client) Send(payload any, responsePayload any) error {
	req, err := NewRequest(payload, c.secret)
	if err != nil {
		return err
	}

	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return &ConnectionError{SocketPath: c.socketPath, Err: err}
	}
	defer conn.Close()
	if err := conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		return err
	}

	if err := json.NewEncoder(conn).Encode(req); err != nil {
		return err
	}

	var resp Response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		// The server closes the connection without a reply when it rejects
		// a request.
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("request rejected by server")
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.Error != "" {
		return fmt.Errorf("server error: %s", resp.Error)
	}

	// Only unmarshal a payload if the caller is expecting one
	if responsePayload != nil && len(resp.Payload) > 0 {
		if err := json.Unmarshal(resp.Payload, responsePayload); err != nil {
			return fmt.Errorf("failed to unmarshal response payload: %w", err)
		}
	}

	return nil
}

// Call invokes a method on the daemon's toast session. A failed call is
// returned as a *CallError.
func (c *Client) Call(method string, arguments json.RawMessage) (any, error) {
	var resp CallResponse
	req := CallRequest{Command: "call", Method: method, Arguments: arguments}
	if err := c.Send(req, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	return resp.Result, nil
}
