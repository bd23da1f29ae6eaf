package credential

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dialogs/dialog-push-fcm/pkg/test"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestStatic(t *testing.T) {

	header, err := Static("abc").Authorization(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer abc", header)

	_, err = Static("").Authorization(context.Background())
	require.Equal(t, ErrEmptyToken, err)
}

func TestServiceAccount(t *testing.T) {

	server := test.NewTokenServer("access-1")
	defer server.Close()

	data, err := test.ServiceAccount(server.URL, "project-1")
	require.NoError(t, err)

	account, err := NewServiceAccount(data)
	require.NoError(t, err)
	require.Equal(t, "project-1", account.ProjectID())

	wg := sync.WaitGroup{}
	headers := make([]string, 10)
	errs := make([]error, 10)

	for i := range headers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			headers[i], errs[i] = account.Authorization(context.Background())
		}(i)
	}
	wg.Wait()

	for i := range headers {
		require.NoError(t, errs[i])
		require.Equal(t, "Bearer access-1", headers[i])
	}

	// the token is reused until it expires
	require.Equal(t, int64(1), server.Calls())
}

func TestServiceAccountTokenError(t *testing.T) {

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer server.Close()

	data, err := test.ServiceAccount(server.URL, "project-1")
	require.NoError(t, err)

	account, err := NewServiceAccount(data)
	require.NoError(t, err)

	_, err = account.Authorization(context.Background())
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = account.Authorization(ctx)
	require.True(t, errors.Is(err, context.Canceled), err.Error())
}

func TestServiceAccountInvalidJSON(t *testing.T) {

	_, err := NewServiceAccount([]byte(`{}`))
	require.Error(t, err)

	_, err = NewServiceAccount([]byte(`not json`))
	require.Error(t, err)
}
