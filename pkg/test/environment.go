// Package test keeps fixtures shared by package tests: a service-account
// file with a generated key and an oauth server that accepts it.
package test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
)

// ServiceAccount returns service-account.json content with a new RSA key
func ServiceAccount(tokenURL, projectID string) ([]byte, error) {

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}

	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, err
	}

	return json.Marshal(map[string]string{
		"type":           "service_account",
		"project_id":     projectID,
		"private_key_id": "key-id",
		"private_key":    string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})),
		"client_email":   "push@" + projectID + ".iam.gserviceaccount.com",
		"client_id":      "1",
		"token_uri":      tokenURL,
	})
}

// WriteServiceAccount saves ServiceAccount output to dir and returns the
// file path
func WriteServiceAccount(dir, tokenURL, projectID string) (string, error) {

	data, err := ServiceAccount(tokenURL, projectID)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, projectID+"-service-account.json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", err
	}

	return path, nil
}

// TokenServer answers the jwt-bearer grant with a fixed access token
type TokenServer struct {
	*httptest.Server
	calls int64
}

func NewTokenServer(accessToken string) *TokenServer {

	s := &TokenServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&s.calls, 1)

		if err := r.ParseForm(); err != nil ||
			r.Form.Get("grant_type") != "urn:ietf:params:oauth:grant-type:jwt-bearer" ||
			r.Form.Get("assertion") == "" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"` + accessToken + `","token_type":"Bearer","expires_in":3600}`))
	}))

	return s
}

// Calls is the number of token requests served
func (s *TokenServer) Calls() int64 {
	return atomic.LoadInt64(&s.calls)
}
