package testutil

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/binary"
	"fmt"
	"net"
	"strings"
	"sync"
	"testing"

	"golang.org/x/crypto/ssh"
)

// MockSSHServer provides a mock SSH server for testing.
type MockSSHServer struct {
	t           *testing.T
	listener    net.Listener
	config      *ssh.ServerConfig
	hostKey     ssh.Signer
	handlers    map[string]ChannelHandler
	mu          sync.Mutex
	running     bool
	stopCh      chan struct{}
	connections []ssh.Conn
}

// ChannelHandler handles a specific channel type.
type ChannelHandler func(channel ssh.Channel, requests <-chan *ssh.Request)

// NewMockSSHServer creates a new mock SSH server accepting any client.
func NewMockSSHServer(t *testing.T) *MockSSHServer {
	hostKey := generateTestSigner(t)

	config := &ssh.ServerConfig{
		NoClientAuth: true,
	}
	config.AddHostKey(hostKey)

	return &MockSSHServer{
		t:        t,
		config:   config,
		hostKey:  hostKey,
		handlers: make(map[string]ChannelHandler),
		stopCh:   make(chan struct{}),
	}
}

// HostKey returns the public host key of the server.
func (s *MockSSHServer) HostKey() ssh.PublicKey {
	return s.hostKey.PublicKey()
}

// AddHandler adds a channel handler for a specific channel type.
func (s *MockSSHServer) AddHandler(channelType string, handler ChannelHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[channelType] = handler
}

// Start starts the mock SSH server and returns its address.
// The server is stopped when the test ends.
func (s *MockSSHServer) Start() (string, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.listener = listener
	s.running = true
	s.mu.Unlock()

	go s.acceptConnections()
	s.t.Cleanup(s.Stop)

	return listener.Addr().String(), nil
}

// Stop stops the mock SSH server.
func (s *MockSSHServer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.running = false
	close(s.stopCh)

	if s.listener != nil {
		s.listener.Close()
	}

	for _, conn := range s.connections {
		conn.Close()
	}
}

func (s *MockSSHServer) isRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *MockSSHServer) acceptConnections() {
	for {
		select {
		case <-s.stopCh:
			return
		default:
		}

		conn, err := s.listener.Accept()
		if err != nil {
			if !s.isRunning() {
				return
			}
			s.t.Logf("error accepting connection: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

func (s *MockSSHServer) handleConnection(netConn net.Conn) {
	sshConn, chans, reqs, err := ssh.NewServerConn(netConn, s.config)
	if err != nil {
		netConn.Close()
		return
	}

	s.mu.Lock()
	s.connections = append(s.connections, sshConn)
	s.mu.Unlock()

	go ssh.DiscardRequests(reqs)

	for newChannel := range chans {
		s.mu.Lock()
		handler, ok := s.handlers[newChannel.ChannelType()]
		s.mu.Unlock()

		if !ok {
			newChannel.Reject(ssh.UnknownChannelType, "unknown channel type")
			continue
		}

		channel, requests, err := newChannel.Accept()
		if err != nil {
			continue
		}

		go handler(channel, requests)
	}
}

// generateTestSigner generates a throw-away RSA host key.
func generateTestSigner(t *testing.T) ssh.Signer {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate test host key: %v", err)
	}
	signer, err := ssh.NewSignerFromKey(key)
	if err != nil {
		t.Fatalf("failed to create test host key signer: %v", err)
	}
	return signer
}

// CatSessionHandler returns a session handler that answers "cat -- '<path>'"
// exec requests with the content of files[path]. Unknown paths exit with
// status 1 and an error on stderr.
func CatSessionHandler(files map[string]string) ChannelHandler {
	return func(channel ssh.Channel, requests <-chan *ssh.Request) {
		defer channel.Close()

		for req := range requests {
			if req.Type != "exec" {
				if req.WantReply {
					req.Reply(false, nil)
				}
				continue
			}
			if req.WantReply {
				req.Reply(true, nil)
			}

			status := uint32(0)
			path := catPath(execCommand(req.Payload))
			if content, ok := files[path]; ok {
				channel.Write([]byte(content))
			} else {
				fmt.Fprintf(channel.Stderr(), "cat: %s: No such file or directory\n", path)
				status = 1
			}

			exitStatus := make([]byte, 4)
			binary.BigEndian.PutUint32(exitStatus, status)
			channel.SendRequest("exit-status", false, exitStatus)
			return
		}
	}
}

// execCommand decodes the SSH string payload of an exec request.
func execCommand(payload []byte) string {
	if len(payload) < 4 {
		return ""
	}
	n := binary.BigEndian.Uint32(payload[:4])
	if int(n) > len(payload)-4 {
		return ""
	}
	return string(payload[4 : 4+n])
}

// catPath extracts the single quoted path of a "cat -- '<path>'" command.
func catPath(command string) string {
	path := strings.TrimPrefix(command, "cat -- ")
	if len(path) >= 2 && strings.HasPrefix(path, "'") && strings.HasSuffix(path, "'") {
		path = path[1 : len(path)-1]
	}
	return strings.ReplaceAll(path, `'\''`, `'`)
}
