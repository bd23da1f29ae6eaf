// Package credential provides the Authorization header for the FCM HTTP v1
// API.
//
// Token format:
// https://firebase.google.com/docs/cloud-messaging/auth-server
package credential

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/dialogs/dialog-push-fcm/pkg/provider/fcm"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"golang.org/x/sync/singleflight"
)

// Scope to authorize access to FCM:
// https://firebase.google.com/docs/reference/fcm/rest/v1/projects.messages/send#authorization-scopes
const Scope = "https://www.googleapis.com/auth/firebase.messaging"

var (
	ErrEmptyToken     = errors.New("empty token")
	ErrEmptyProjectID = errors.New("service account: empty project_id")
)

var (
	_ fcm.Credentials = Static("")
	_ fcm.Credentials = (*ServiceAccount)(nil)
)

// Static is a fixed access token, e.g. from "gcloud auth print-access-token"
type Static string

func (s Static) Authorization(context.Context) (string, error) {
	if s == "" {
		return "", ErrEmptyToken
	}
	return "Bearer " + string(s), nil
}

// ServiceAccount signs a JWT with the service-account key and exchanges it
// for an oauth token. The token is cached until it expires.
//
// Service-account file:
// https://console.firebase.google.com/project/_/settings/serviceaccounts/adminsdk
type ServiceAccount struct {
	projectID string
	jwtConfig *jwt.Config

	// oauth token
	token atomic.Value

	// concurrent callers share one refresh
	refresh singleflight.Group
}

func NewServiceAccount(serviceAccount []byte) (*ServiceAccount, error) {

	jwtConfig, err := google.JWTConfigFromJSON(serviceAccount, Scope)
	if err != nil {
		return nil, errors.Wrap(err, "jwt config")
	}

	account := &struct {
		ProjectID string `json:"project_id"`
	}{}

	if err := json.Unmarshal(serviceAccount, account); err != nil {
		return nil, errors.Wrap(err, "account")
	}

	return &ServiceAccount{
		projectID: account.ProjectID,
		jwtConfig: jwtConfig,
	}, nil
}

// ProjectID from the service-account file, may be empty
func (s *ServiceAccount) ProjectID() string {
	return s.projectID
}

func (s *ServiceAccount) Authorization(ctx context.Context) (string, error) {

	token, err := s.getToken(ctx)
	if err != nil {
		return "", err
	}

	return token.Type() + " " + token.AccessToken, nil
}

func (s *ServiceAccount) getToken(ctx context.Context) (*oauth2.Token, error) {

	if token, ok := s.cached(); ok {
		return token, nil
	}

	src, err, _ := s.refresh.Do("token", func() (interface{}, error) {
		if token, ok := s.cached(); ok {
			return token, nil
		}

		// source:
		// https://github.com/googleapis/google-api-go-client/blob/0c3fc9a1ae141ce9db158d15b06bca77ddcb923b/google-api-go-generator/gen.go#L613
		token, err := s.jwtConfig.TokenSource(ctx).Token()
		if err != nil {
			return nil, err
		}

		if token.AccessToken == "" {
			return nil, ErrEmptyToken
		}

		s.token.Store(token)
		return token, nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errors.Wrap(ctxErr, "jwt token")
		}
		return nil, errors.Wrap(err, "jwt token")
	}

	return src.(*oauth2.Token), nil
}

func (s *ServiceAccount) cached() (*oauth2.Token, bool) {

	src := s.token.Load()
	if src == nil {
		return nil, false
	}

	token := src.(*oauth2.Token)
	return token, token.Valid()
}
