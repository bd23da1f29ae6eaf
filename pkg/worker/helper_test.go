package worker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dialogs/dialog-push-fcm/pkg/provider/fcm"
	"github.com/stretchr/testify/require"
)

func TestReadFile(t *testing.T) {

	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0600))

	data, err := ReadFile(path, 10)
	require.NoError(t, err)
	require.Equal(t, "0123456789", string(data))

	_, err = ReadFile(path, 9)
	require.EqualError(t, err, "invalid file size: 10")

	_, err = ReadFile(filepath.Join(t.TempDir(), "none"), 10)
	require.True(t, os.IsNotExist(err))
}

func TestTargetName(t *testing.T) {

	hash := TokenHash("device-token")
	require.Len(t, hash, 16)
	require.Equal(t, hash, TokenHash("device-token"))
	require.NotEqual(t, hash, TokenHash("device-token2"))

	for _, testInfo := range []struct {
		target fcm.Target
		name   string
	}{
		{fcm.Token("device-token"), "token:" + hash},
		{fcm.Topic("/topics/news"), "topic:news"},
		{fcm.Condition("'a' in topics"), "condition:'a' in topics"},
		{nil, ""},
	} {
		require.Equal(t, testInfo.name, TargetName(testInfo.target))
	}
}
