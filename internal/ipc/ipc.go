package ipc

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Request represents a request sent from a client to the daemon.
type Request struct {
	ID        string
	Signature string
	Payload   []byte
}

// CallRequest is the payload for a method call on the toast session.
type CallRequest struct {
	Command   string
	Method    string
	Arguments json.RawMessage `json:",omitempty"`
}

// CallError is the structured error of a failed method call.
type CallError struct {
	Code    string
	Message string
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CallResponse is the payload for a method call response. Exactly one of
// Result and Error is set.
type CallResponse struct {
	Result any        `json:",omitempty"`
	Error  *CallError `json:",omitempty"`
}

// StatusRequest is the payload for a status request.
type StatusRequest struct {
	Command string
}

// StatusResponse is the payload for a status response.
type StatusResponse struct {
	State     string
	Backend   string
	AppID     string
	Tag       string
	Title     string
	Subtitle  string
	Status    string
	Progress  int
	ShownAt   time.Time
	StartedAt time.Time
}

// Sign creates a signature for the payload.
func Sign(payload []byte, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks the signature of the payload.
func Verify(payload []byte, signature string, secret []byte) error {
	expectedSignature := Sign(payload, secret)
	if !hmac.Equal([]byte(signature), []byte(expectedSignature)) {
		return fmt.Errorf("invalid signature")
	}
	return nil
}

// Response represents a response sent from the daemon to a client.
type Response struct {
	Error   string          `json:"error,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ConnectionError is a custom error for IPC connection errors.
type ConnectionError struct {
	SocketPath string
	Err        error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("could not connect to the toast-bridge daemon at %s. Is the daemon running?", e.SocketPath)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// NewRequest creates a new signed request.
func NewRequest(payload any, secret []byte) (*Request, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	signature := Sign(payloadBytes, secret)
	return &Request{
		ID:        uuid.NewString(),
		Signature: signature,
		Payload:   payloadBytes,
	}, nil
}
