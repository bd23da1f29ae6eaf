package provider

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"unicode/utf8"
)

// MaxErrorInfoSize limits raw response text kept in errors
const MaxErrorInfoSize = 2000

// DecodeJSONResponse unmarshal response in json format to the object.
// If server returns invalid json data, the method represents a response body
// as an error
func DecodeJSONResponse(r io.Reader, retval interface{}) error {

	buf := bytes.NewBuffer(nil)
	decoder := json.NewDecoder(io.TeeReader(r, buf))

	err := decoder.Decode(retval)
	if err == nil {
		return nil
	}

	if _, ok := err.(*json.SyntaxError); ok || err == io.EOF || err == io.ErrUnexpectedEOF {
		if _, errCopy := io.Copy(buf, r); errCopy != nil {
			return err
		}

		if buf.Len() == 0 {
			return errors.New("empty response body")
		}

		return errors.New(Truncate(buf.String(), MaxErrorInfoSize))
	}

	return err
}

// Truncate cuts s to at most size bytes without splitting a rune
func Truncate(s string, size int) string {

	if len(s) <= size {
		return s
	}

	s = s[:size]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}

	return s
}

func JSONWithoutSecrets(obj interface{}) ([]byte, error) {

	out, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}

	return RemoveSecretsFromJSON(out), nil
}

var _SecretBegin = []byte(`:"`)

// RemoveSecretsFromJSON masks every string value, keys stay readable
func RemoveSecretsFromJSON(in []byte) []byte {

	if len(in) == 0 {
		return in
	}

	buf := bytes.NewBuffer(nil)
	for {
		pos := bytes.Index(in, _SecretBegin)
		if pos == -1 {
			break
		}

		secretStart := pos + len(_SecretBegin)
		buf.Write(in[:secretStart])
		in = in[secretStart:]

		secretEnd := -1
		for i := 0; i < len(in); i++ {
			if in[i] == '"' && (i == 0 || (i > 0 && in[i-1] != '\\')) {
				secretEnd = i
				break
			}
		}

		if secretEnd > -1 {
			if secretEnd > 0 { // don't add a sectet mask for empty string
				buf.WriteByte('*')
			}
			in = in[secretEnd:]
		}
	}

	buf.Write(in)

	return buf.Bytes()
}
