package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/dialogs/dialog-push-fcm/pkg/provider/fcm"
	"github.com/pkg/errors"
)

const (
	DefaultTimeout = 10 * time.Second

	// gateway answers are small, anything bigger is cut
	DefaultMaxResponseSize = 1 << 20
)

var _ fcm.Transport = (*HTTP)(nil)

// HTTP is fcm.Transport over net/http
type HTTP struct {
	client          *http.Client
	maxResponseSize int64
}

type Option func(*HTTP)

// WithClient replaces the default client. The client timeout stays as set
// by the caller.
func WithClient(client *http.Client) Option {
	return func(t *HTTP) {
		if client != nil {
			t.client = client
		}
	}
}

func WithMaxResponseSize(size int64) Option {
	return func(t *HTTP) {
		if size > 0 {
			t.maxResponseSize = size
		}
	}
}

func NewHTTP(timeout time.Duration, opts ...Option) *HTTP {

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	t := &HTTP{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		maxResponseSize: DefaultMaxResponseSize,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

func (t *HTTP) Do(ctx context.Context, src *fcm.HTTPRequest) (*fcm.HTTPResponse, error) {

	req, err := http.NewRequest(src.Method, src.URL, bytes.NewReader(src.Body))
	if err != nil {
		return nil, errors.Wrap(err, "new request")
	}

	for key, values := range src.Header {
		for _, val := range values {
			req.Header.Add(key, val)
		}
	}

	req = req.WithContext(ctx)

	res, err := t.client.Do(req)
	if err != nil {
		// the context error is more useful than the url wrapper
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errors.Wrap(ctxErr, "send request")
		}
		return nil, errors.Wrap(err, "send request")
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, t.maxResponseSize))
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}

	// drain the rest so the connection can be reused
	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, t.maxResponseSize))

	return &fcm.HTTPResponse{
		StatusCode: res.StatusCode,
		Header:     res.Header,
		Body:       body,
	}, nil
}
