package source

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/mimecast/webgrep/internal/constants"
	"github.com/mimecast/webgrep/internal/errors"
	"github.com/mimecast/webgrep/internal/version"
)

// HTTPOpener fetches http and https sources with a GET request.
type HTTPOpener struct {
	client *http.Client
}

// NewHTTPOpener returns an opener using client, or a default client when nil.
// The request lifetime is bound to the context passed to Open, so the client
// has no overall timeout.
func NewHTTPOpener(client *http.Client) *HTTPOpener {
	if client == nil {
		client = &http.Client{
			Transport: &http.Transport{
				Proxy:           http.ProxyFromEnvironment,
				IdleConnTimeout: constants.HTTPIdleConnTimeout,
			},
		}
	}
	return &HTTPOpener{client: client}
}

// Open sends the request and returns the (decoded) response body. Any status
// other than 200 is an error.
func (o *HTTPOpener) Open(ctx context.Context, address string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, address, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", fmt.Sprintf("%s/%s", version.Name, version.Version))
	req.Header.Set("Accept-Encoding", "zstd, gzip")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.Wrapf(errors.ErrSourceUnavailable, "%s: %s", address, resp.Status)
	}
	c := compressionOfEncoding(resp.Header.Get("Content-Encoding"))
	if c == compressionNone {
		return resp.Body, nil
	}
	rc, err := decompress(c, resp.Body)
	if err != nil {
		return nil, err
	}
	return contentDecoded{rc}, nil
}
