// Package ssh wraps the SSH client plumbing used by ssh:// sources:
// authentication methods, host key verification and dialing.
package ssh

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/mimecast/webgrep/internal/constants"
	"github.com/mimecast/webgrep/internal/io/dlog"

	gossh "golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
	"golang.org/x/term"
)

// GeneratePrivateRSAKey generates and validates a RSA key.
func GeneratePrivateRSAKey(size int) (*rsa.PrivateKey, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA key: %w", err)
	}
	if err = privateKey.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate generated RSA key: %w", err)
	}
	return privateKey, nil
}

// EncodePrivateKeyToPEM is a helper function for converting a key to PEM format.
func EncodePrivateKeyToPEM(privateKey *rsa.PrivateKey) []byte {
	derFormat := x509.MarshalPKCS1PrivateKey(privateKey)

	block := pem.Block{
		Type:    "RSA PRIVATE KEY",
		Headers: nil,
		Bytes:   derFormat,
	}
	return pem.EncodeToMemory(&block)
}

// Agent used for SSH auth.
func Agent() (gossh.AuthMethod, error) {
	socket := os.Getenv("SSH_AUTH_SOCK")
	if socket == "" {
		return nil, errors.New("SSH_AUTH_SOCK not set")
	}
	sshAgent, err := net.Dial("unix", socket)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SSH agent: %w", err)
	}
	agentClient := agent.NewClient(sshAgent)
	keys, err := agentClient.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list SSH agent keys: %w", err)
	}
	for i, key := range keys {
		dlog.Common.Debug("Public key", i, key)
	}
	return gossh.PublicKeysCallback(agentClient.Signers), nil
}

// EnterKeyPhrase is required to read phrase protected private keys. The
// phrase is read from the terminal without echo.
func EnterKeyPhrase(keyFile string) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("key %s is phrase protected and stdin is no terminal", keyFile)
	}
	fmt.Fprintf(os.Stderr, "Enter phrase for key %s: ", keyFile)
	phrase, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	return phrase, err
}

// KeyFile returns the key as a SSH auth method.
func KeyFile(keyFile string) (gossh.AuthMethod, error) {
	buffer, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, err
	}
	key, err := gossh.ParsePrivateKey(buffer)
	if err == nil {
		return gossh.PublicKeys(key), nil
	}

	var missing *gossh.PassphraseMissingError
	if !errors.As(err, &missing) {
		return nil, err
	}
	keyPhrase, err := EnterKeyPhrase(keyFile)
	if err != nil {
		return nil, err
	}
	key, err = gossh.ParsePrivateKeyWithPassphrase(buffer, keyPhrase)
	if err != nil {
		return nil, err
	}
	return gossh.PublicKeys(key), nil
}

// AuthMethods collects all usable auth methods: the SSH agent, the given
// private key file or, if none given, the default keys in ~/.ssh.
func AuthMethods(keyFile string) (methods []gossh.AuthMethod) {
	if method, err := Agent(); err == nil {
		methods = append(methods, method)
	} else {
		dlog.Common.Debug("No SSH agent auth", err)
	}

	keyFiles := []string{keyFile}
	if keyFile == "" {
		keyFiles = defaultKeyFiles()
	}
	for _, file := range keyFiles {
		method, err := KeyFile(file)
		if err != nil {
			dlog.Common.Debug(file, err)
			continue
		}
		dlog.Common.Debug("Using private key", file)
		methods = append(methods, method)
	}
	return
}

func defaultKeyFiles() (files []string) {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	for _, name := range []string{"id_ed25519", "id_ecdsa", "id_rsa"} {
		path := filepath.Join(home, ".ssh", name)
		if _, err := os.Stat(path); err == nil {
			files = append(files, path)
		}
	}
	return
}

// HostKeyCallback verifies host keys against a known hosts file, which
// defaults to ~/.ssh/known_hosts. With trustAllHosts every host key is
// accepted.
func HostKeyCallback(knownHostsFile string, trustAllHosts bool) (gossh.HostKeyCallback, error) {
	if trustAllHosts {
		dlog.Common.Debug("Trusting all SSH host keys")
		return gossh.InsecureIgnoreHostKey(), nil
	}
	if knownHostsFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		knownHostsFile = filepath.Join(home, ".ssh", "known_hosts")
	}
	callback, err := knownhosts.New(knownHostsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read known hosts file %s: %w", knownHostsFile, err)
	}
	return callback, nil
}

// Dial connects to addr, honouring ctx and constants.SSHDialTimeout for the
// TCP connect and the handshake.
func Dial(ctx context.Context, addr string, cfg *gossh.ClientConfig) (*gossh.Client, error) {
	dialer := net.Dialer{Timeout: constants.SSHDialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}

	handshakeDone := make(chan struct{})
	defer close(handshakeDone)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-handshakeDone:
		}
	}()

	if cfg.Timeout == 0 {
		cfg.Timeout = constants.SSHDialTimeout
	}
	sshConn, chans, reqs, err := gossh.NewClientConn(conn, addr, cfg)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return gossh.NewClient(sshConn, chans, reqs), nil
}
