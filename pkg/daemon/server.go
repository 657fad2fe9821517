package daemon

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler answers one request. It is called from the connection goroutine,
// so hosts that own a switcher must hop to their own goroutine.
type Handler func(req Message) Message

// Server is the control socket through which other processes drive a
// running switcher and follow its switches.
type Server struct {
	socketPath string
	pidPath    string
	listener   net.Listener
	clients    map[string]net.Conn // subscribers only
	clientsMu  sync.RWMutex
	done       chan struct{}
	stopOnce   sync.Once
	logger     *zap.Logger

	Handler Handler
}

// NewServer creates a control server. A nil logger discards.
func NewServer(socketPath, pidPath string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		socketPath: socketPath,
		pidPath:    pidPath,
		clients:    make(map[string]net.Conn),
		done:       make(chan struct{}),
		logger:     logger.Named("daemon"),
	}
}

// Start begins listening for client connections
func (s *Server) Start() error {
	if s.Handler == nil {
		return errors.New("daemon: no handler set")
	}
	if err := s.checkAndClaimPid(); err != nil {
		return err
	}

	// Remove stale socket if exists (safe now that we own the pidfile)
	os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		os.Remove(s.pidPath)
		return fmt.Errorf("failed to listen on socket: %w", err)
	}
	s.listener = listener
	s.logger.Info("control socket listening", zap.String("path", s.socketPath))

	go s.acceptLoop()
	return nil
}

// checkAndClaimPid fails when another live process owns the pidfile.
func (s *Server) checkAndClaimPid() error {
	if data, err := os.ReadFile(s.pidPath); err == nil {
		pidStr := strings.TrimSpace(string(data))
		if pid, err := strconv.Atoi(pidStr); err == nil && pid > 0 && pid != os.Getpid() {
			if process, err := os.FindProcess(pid); err == nil {
				// On Unix, FindProcess always succeeds, so we need to send signal 0
				if err := process.Signal(syscall.Signal(0)); err == nil {
					return fmt.Errorf("control socket already owned by pid %d", pid)
				}
			}
		}
		os.Remove(s.pidPath)
	}

	pid := os.Getpid()
	if err := os.WriteFile(s.pidPath, []byte(strconv.Itoa(pid)), 0644); err != nil {
		return fmt.Errorf("failed to write pidfile: %w", err)
	}
	return nil
}

// Stop shuts down the server. It is safe to call more than once.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		if s.listener != nil {
			s.listener.Close()
		}
		s.clientsMu.Lock()
		for id, conn := range s.clients {
			conn.Close()
			delete(s.clients, id)
		}
		s.clientsMu.Unlock()
		os.Remove(s.socketPath)
		os.Remove(s.pidPath)
	})
}

// ClientCount returns the number of subscribed clients
func (s *Server) ClientCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

func (s *Server) SocketPath() string {
	return s.socketPath
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
				s.logger.Warn("accept failed", zap.Error(err))
				continue
			}
		}
		go s.handleClient(conn)
	}
}

func (s *Server) handleClient(conn net.Conn) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	var clientID string

	for scanner.Scan() {
		var msg Message
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			s.sendMessage(conn, ErrorMessage(fmt.Errorf("bad request: %w", err)))
			continue
		}

		switch msg.Type {
		case MsgSubscribe:
			clientID = msg.ClientID
			if clientID == "" {
				clientID = uuid.NewString()
			}
			s.clientsMu.Lock()
			s.clients[clientID] = conn
			s.clientsMu.Unlock()
			s.logger.Debug("client subscribed", zap.String("client", clientID))
			// Initial state so the subscriber does not wait for a switch
			s.sendMessage(conn, s.Handler(Message{Type: MsgList}))

		case MsgUnsubscribe:
			s.drop(clientID)
			return

		case MsgPing:
			s.sendMessage(conn, Message{Type: MsgPong})

		default:
			s.sendMessage(conn, s.Handler(msg))
		}
	}

	if clientID != "" {
		s.drop(clientID)
	}
}

func (s *Server) drop(clientID string) {
	if clientID == "" {
		return
	}
	s.clientsMu.Lock()
	delete(s.clients, clientID)
	s.clientsMu.Unlock()
}

// Broadcast sends msg to every subscriber. Subscribers that cannot be
// written to are dropped.
func (s *Server) Broadcast(msg Message) {
	s.clientsMu.RLock()
	targets := make(map[string]net.Conn, len(s.clients))
	for id, conn := range s.clients {
		targets[id] = conn
	}
	s.clientsMu.RUnlock()

	for id, conn := range targets {
		if err := s.sendMessage(conn, msg); err != nil {
			s.logger.Debug("dropping subscriber", zap.String("client", id), zap.Error(err))
			s.drop(id)
		}
	}
}

func (s *Server) sendMessage(conn net.Conn, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(time.Second))
	_, err = conn.Write(append(data, '\n'))
	return err
}
