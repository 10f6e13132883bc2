package ipc

import (
	"encoding/json"
	"log/slog"
	"net"
	"os"
)

// Handler processes a verified request payload and returns the response
// payload.
type Handler func(payload []byte) ([]byte, error)

// Server is the IPC server.
type Server struct {
	listener   net.Listener
	secret     []byte
	socketPath string
}

// NewServer creates a new IPC server.
func NewServer(socketPath string, secret []byte) (*Server, error) {
	if err := os.RemoveAll(socketPath); err != nil {
		return nil, err
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, err
	}

	return &Server{
		listener:   listener,
		secret:     secret,
		socketPath: socketPath,
	}, nil
}

// SocketPath returns the path of the listening socket.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Listen starts the server's listening loop. It returns when the listener is
// closed.
func (s *Server) Listen(handler Handler) error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return err
		}
		go s.handleConnection(conn, handler)
	}
}

func (s *Server) handleConnection(conn net.Conn, handler Handler) {
	defer conn.Close()

	var req Request
	if err := json.NewDecoder(conn).Decode(&req); err != nil {
		slog.Warn("Failed to decode request", "err", err)
		return
	}

	if err := Verify(req.Payload, req.Signature, s.secret); err != nil {
		slog.Warn("Rejected request", "id", req.ID, "err", err)
		return
	}

	slog.Debug("Handling request", "id", req.ID)
	var resp Response
	payload, err := handler(req.Payload)
	if err != nil {
		slog.Error("Handler error", "id", req.ID, "err", err)
		resp.Error = err.Error()
	} else {
		resp.Payload = payload
	}

	if err := json.NewEncoder(conn).Encode(resp); err != nil {
		slog.Warn("Failed to write response", "id", req.ID, "err", err)
	}
}

// Close closes the server's listener.
func (s *Server) Close() error {
	return s.listener.Close()
}
