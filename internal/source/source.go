// Package source opens the byte streams WebGrep reads lines from. A source
// address is a URL (http, https, file, ssh), a bare local path or "-" for
// stdin. Compressed sources ending in .gz or .zst are decompressed on the fly.
package source

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/mimecast/webgrep/internal/errors"
	"github.com/mimecast/webgrep/internal/io/dlog"
)

// Opener opens one source address for reading. The returned stream must be
// closed by the caller. Cancelling ctx aborts pending reads.
type Opener interface {
	Open(ctx context.Context, address string) (io.ReadCloser, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(ctx context.Context, address string) (io.ReadCloser, error)

// Open calls f.
func (f OpenerFunc) Open(ctx context.Context, address string) (io.ReadCloser, error) {
	return f(ctx, address)
}

// Options configure the default openers.
type Options struct {
	HTTPClient        *http.Client
	SSHUser           string
	SSHKeyFile        string
	SSHKnownHostsFile string
	TrustAllHosts     bool
}

// Registry dispatches addresses to openers by URL scheme.
type Registry struct {
	openers map[string]Opener
}

// NewRegistry returns a registry with the http, https, file, ssh and stdin
// openers installed.
func NewRegistry(opts Options) *Registry {
	r := &Registry{openers: make(map[string]Opener)}

	httpOpener := NewHTTPOpener(opts.HTTPClient)
	r.Register("http", httpOpener)
	r.Register("https", httpOpener)
	r.Register("file", FileOpener{})
	r.Register("-", StdinOpener{})
	r.Register("ssh", NewSSHOpener(opts.SSHUser, opts.SSHKeyFile,
		opts.SSHKnownHostsFile, opts.TrustAllHosts))
	return r
}

// Register installs or replaces the opener of a scheme.
func (r *Registry) Register(scheme string, opener Opener) {
	r.openers[strings.ToLower(scheme)] = opener
}

// Open opens address with the opener registered for its scheme and wraps
// the stream with a decompressor when the address calls for one.
func (r *Registry) Open(ctx context.Context, address string) (io.ReadCloser, error) {
	scheme := Scheme(address)
	opener, ok := r.openers[scheme]
	if !ok {
		return nil, errors.Wrapf(errors.ErrUnsupportedScheme, "%s", address)
	}

	dlog.Common.Debug(address, "Opening source", scheme)
	rc, err := opener.Open(ctx, address)
	if err != nil {
		return nil, err
	}
	return Decompress(address, rc)
}

// Scheme returns the lower case URL scheme of an address. Addresses without
// scheme are local files, "-" is stdin.
func Scheme(address string) string {
	if address == "-" {
		return "-"
	}
	idx := strings.Index(address, "://")
	if idx <= 0 {
		return "file"
	}
	return strings.ToLower(address[:idx])
}
