package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dialogs/dialog-push-fcm/pkg/provider/fcm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestHTTPDo(t *testing.T) {

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/projects/p/messages:send", r.URL.Path)
		require.Equal(t, "Bearer x", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.Equal(t, `{"message":{}}`, string(body))

		w.Header().Set("Retry-After", "5")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{}}`))
	}))
	defer server.Close()

	header := http.Header{}
	header.Set("Authorization", "Bearer x")

	res, err := NewHTTP(time.Second).Do(context.Background(), &fcm.HTTPRequest{
		Method: http.MethodPost,
		URL:    server.URL + "/v1/projects/p/messages:send",
		Header: header,
		Body:   []byte(`{"message":{}}`),
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusTooManyRequests, res.StatusCode)
	require.Equal(t, "5", res.Header.Get("Retry-After"))
	require.Equal(t, `{"error":{}}`, string(res.Body))
}

func TestHTTPResponseLimit(t *testing.T) {

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 100)))
	}))
	defer server.Close()

	res, err := NewHTTP(time.Second, WithMaxResponseSize(10)).Do(context.Background(), &fcm.HTTPRequest{
		Method: http.MethodGet,
		URL:    server.URL,
	})
	require.NoError(t, err)
	require.Equal(t, strings.Repeat("x", 10), string(res.Body))
}

func TestHTTPCanceled(t *testing.T) {

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := NewHTTP(5*time.Second).Do(ctx, &fcm.HTTPRequest{
		Method: http.MethodPost,
		URL:    server.URL,
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, context.Canceled), err.Error())
}

func TestHTTPTimeout(t *testing.T) {

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	_, err := NewHTTP(50*time.Millisecond).Do(context.Background(), &fcm.HTTPRequest{
		Method: http.MethodPost,
		URL:    server.URL,
	})
	require.Error(t, err)
}

func TestHTTPInvalidURL(t *testing.T) {

	_, err := NewHTTP(0).Do(context.Background(), &fcm.HTTPRequest{
		Method: http.MethodPost,
		URL:    "://bad",
	})
	require.Error(t, err)
}
