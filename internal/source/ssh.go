package source

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/mimecast/webgrep/internal/constants"
	"github.com/mimecast/webgrep/internal/errors"
	"github.com/mimecast/webgrep/internal/io/dlog"
	"github.com/mimecast/webgrep/internal/ssh"

	gossh "golang.org/x/crypto/ssh"
)

// SSHOpener reads remote files by running cat over SSH. Addresses look like
// ssh://user@host:port/path/to/file, user and port being optional.
type SSHOpener struct {
	user           string
	keyFile        string
	knownHostsFile string
	trustAllHosts  bool

	once            sync.Once
	authMethods     []gossh.AuthMethod
	hostKeyCallback gossh.HostKeyCallback
	initErr         error
}

// NewSSHOpener returns an opener which sets up its auth methods and host key
// verification on first use.
func NewSSHOpener(user, keyFile, knownHostsFile string, trustAllHosts bool) *SSHOpener {
	return &SSHOpener{
		user:           user,
		keyFile:        keyFile,
		knownHostsFile: knownHostsFile,
		trustAllHosts:  trustAllHosts,
	}
}

// NewSSHOpenerWith returns an opener with fixed auth methods and host key
// callback.
func NewSSHOpenerWith(user string, authMethods []gossh.AuthMethod,
	hostKeyCallback gossh.HostKeyCallback) *SSHOpener {

	o := &SSHOpener{user: user, authMethods: authMethods, hostKeyCallback: hostKeyCallback}
	o.once.Do(func() {})
	return o
}

func (o *SSHOpener) init() error {
	o.once.Do(func() {
		o.authMethods = ssh.AuthMethods(o.keyFile)
		o.hostKeyCallback, o.initErr = ssh.HostKeyCallback(o.knownHostsFile, o.trustAllHosts)
	})
	return o.initErr
}

// Open connects to the host and starts streaming the remote file.
func (o *SSHOpener) Open(ctx context.Context, address string) (io.ReadCloser, error) {
	if err := o.init(); err != nil {
		return nil, err
	}
	u, err := url.Parse(address)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidArgument, "%s: %v", address, err)
	}
	if u.Path == "" {
		return nil, errors.Wrapf(errors.ErrInvalidArgument, "%s: no remote path", address)
	}

	user := o.user
	if u.User != nil && u.User.Username() != "" {
		user = u.User.Username()
	}
	port := u.Port()
	if port == "" {
		port = strconv.Itoa(constants.DefaultSSHPort)
	}
	addr := net.JoinHostPort(u.Hostname(), port)

	client, err := ssh.Dial(ctx, addr, &gossh.ClientConfig{
		User:            user,
		Auth:            o.authMethods,
		HostKeyCallback: o.hostKeyCallback,
	})
	if err != nil {
		return nil, err
	}
	session, err := client.NewSession()
	if err != nil {
		client.Close()
		return nil, err
	}
	stdout, err := session.StdoutPipe()
	if err != nil {
		session.Close()
		client.Close()
		return nil, err
	}
	var stderr strings.Builder
	session.Stderr = &stderr

	command := fmt.Sprintf("cat -- %s", shellQuote(u.Path))
	dlog.Common.Debug(address, "Running remote command", command)
	if err := session.Start(command); err != nil {
		session.Close()
		client.Close()
		return nil, err
	}

	r := &sshReader{
		address: address,
		stdout:  stdout,
		session: session,
		client:  client,
		stderr:  &stderr,
		done:    make(chan struct{}),
	}
	go func() {
		select {
		case <-ctx.Done():
			client.Close()
		case <-r.done:
		}
	}()
	return r, nil
}

type sshReader struct {
	address string
	stdout  io.Reader
	session *gossh.Session
	client  *gossh.Client
	stderr  *strings.Builder

	closeOnce sync.Once
	done      chan struct{}
}

// Read reads the remote output. At the end of the output the exit status of
// the remote command is checked, so a failing cat is a read error.
func (r *sshReader) Read(p []byte) (int, error) {
	n, err := r.stdout.Read(p)
	if err != io.EOF {
		return n, err
	}
	if waitErr := r.session.Wait(); waitErr != nil {
		return n, errors.Wrapf(errors.ErrReadFailed, "%s: %v: %s", r.address, waitErr,
			strings.TrimSpace(r.stderr.String()))
	}
	return n, io.EOF
}

func (r *sshReader) Close() error {
	r.closeOnce.Do(func() {
		close(r.done)
		r.session.Close()
	})
	return r.client.Close()
}

// shellQuote quotes s for a POSIX shell.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
