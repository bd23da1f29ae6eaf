package worker

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/dialogs/dialog-push-fcm/pkg/provider/fcm"
)

func ReadFile(path string, maxSize int64) ([]byte, error) {

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// SAST: exception 'utils.ReadFile prone to resource exhaustion'
	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	} else if size > maxSize {
		return nil, fmt.Errorf("invalid file size: %d", size)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	buf := bytes.NewBuffer(make([]byte, 0, size))
	if _, err := io.Copy(buf, f); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// TokenHash hides a device token in logs
func TokenHash(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:8])
}

// TargetName is a loggable form of the target: topics and conditions as is,
// tokens as their hash
func TargetName(target fcm.Target) string {

	if target == nil {
		return ""
	}

	if token, ok := target.(fcm.Token); ok {
		return "token:" + TokenHash(string(token))
	}

	return target.Kind() + ":" + target.Value()
}
