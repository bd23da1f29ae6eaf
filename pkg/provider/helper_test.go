package provider

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeJSONResponse(t *testing.T) {

	{
		out := &struct {
			Name string `json:"name"`
		}{}

		require.NoError(t,
			DecodeJSONResponse(strings.NewReader(`{"name":"projects/p/messages/1","extra":true}`), out))
		require.Equal(t, "projects/p/messages/1", out.Name)
	}

	{
		out := map[string]interface{}{}
		require.EqualError(t,
			DecodeJSONResponse(strings.NewReader(`<html>Bad Gateway</html>`), &out),
			`<html>Bad Gateway</html>`)
	}

	{
		out := map[string]interface{}{}
		require.EqualError(t,
			DecodeJSONResponse(strings.NewReader(``), &out),
			`empty response body`)
	}

	{
		out := map[string]interface{}{}
		require.EqualError(t,
			DecodeJSONResponse(strings.NewReader(`{"name":`), &out),
			`{"name":`)
	}

	{
		out := map[string]interface{}{}
		err := DecodeJSONResponse(strings.NewReader(strings.Repeat("x", MaxErrorInfoSize*2)), &out)
		require.Error(t, err)
		require.Len(t, err.Error(), MaxErrorInfoSize)
	}

	{
		// type mismatch is not a syntax error
		out := &struct {
			Name string `json:"name"`
		}{}
		err := DecodeJSONResponse(strings.NewReader(`{"name":1}`), out)
		require.Error(t, err)
		require.Contains(t, err.Error(), "cannot unmarshal number")
	}
}

func TestTruncate(t *testing.T) {

	require.Equal(t, "abc", Truncate("abc", 10))
	require.Equal(t, "ab", Truncate("abc", 2))
	// "ж" is two bytes
	require.Equal(t, "a", Truncate("aж", 2))
}

func TestRemoveSecretsFromJSON(t *testing.T) {

	for _, testInfo := range []struct {
		In  string
		Out string
	}{
		{In: ``, Out: ``},
		{In: `{}`, Out: `{}`},
		{In: `{"a":""}`, Out: `{"a":""}`},
		{In: `{"a":"b"}`, Out: `{"a":"*"}`},
		{In: `{"a":"b\"c"}`, Out: `{"a":"*"}`},
		{In: `{"a":1,"b":"c"}`, Out: `{"a":1,"b":"*"}`},
		{In: `{"message":{"token":"secret","data":{"k":"v"}}}`, Out: `{"message":{"token":"*","data":{"k":"*"}}}`},
	} {
		require.Equal(t, testInfo.Out, string(RemoveSecretsFromJSON([]byte(testInfo.In))), testInfo.In)
	}
}

func TestJSONWithoutSecrets(t *testing.T) {

	out, err := JSONWithoutSecrets(map[string]interface{}{
		"token": "abc",
		"ttl":   10,
	})
	require.NoError(t, err)
	require.Equal(t, `{"token":"*","ttl":10}`, string(out))

	_, err = JSONWithoutSecrets(make(chan int))
	require.Error(t, err)
}
