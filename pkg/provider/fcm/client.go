package fcm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// New FCM API:
// 1. download service-account.json from https://console.firebase.google.com/project/_/settings/serviceaccounts/adminsdk
// 2. add to request header: Authorization: Bearer <oauth token>

const DefaultEndpoint = "https://fcm.googleapis.com"

var (
	ErrEmptyProjectID  = errors.New("fcm: empty project id")
	ErrNilTransport    = errors.New("fcm: nil transport")
	ErrNilCredentials  = errors.New("fcm: nil credentials")
	ErrEmptyAuthHeader = errors.New("fcm: credentials returned an empty authorization header")
)

type HTTPRequest struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

type HTTPResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport executes a single HTTP exchange
type Transport interface {
	Do(ctx context.Context, req *HTTPRequest) (*HTTPResponse, error)
}

// Credentials returns the Authorization header value, e.g. "Bearer <token>"
type Credentials interface {
	Authorization(ctx context.Context) (string, error)
}

// Client sends one message per call and makes exactly one attempt. It has
// no mutable state and is safe for concurrent use.
type Client struct {
	transport   Transport
	credentials Credentials

	// send message endpoint:
	// https://firebase.google.com/docs/reference/fcm/rest/v1/projects.messages/send
	endpoint string

	// validate_only: the gateway checks the message without delivering it
	validateOnly bool
}

type Option func(*Client)

// WithEndpoint replaces the gateway base URL
func WithEndpoint(baseURL string) Option {
	return func(c *Client) {
		c.endpoint = strings.TrimSuffix(baseURL, "/")
	}
}

func WithValidateOnly(validateOnly bool) Option {
	return func(c *Client) {
		c.validateOnly = validateOnly
	}
}

func New(projectID string, transport Transport, credentials Credentials, opts ...Option) (*Client, error) {

	if projectID == "" {
		return nil, ErrEmptyProjectID
	}

	if transport == nil {
		return nil, ErrNilTransport
	}

	if credentials == nil {
		return nil, ErrNilCredentials
	}

	c := &Client{
		transport:   transport,
		credentials: credentials,
		endpoint:    DefaultEndpoint,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.endpoint = getEndpoint(c.endpoint, projectID)

	return c, nil
}

func (c *Client) ValidateOnly() bool {
	return c.validateOnly
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// Encode returns the request body for the message
func (c *Client) Encode(message *Message) ([]byte, error) {

	if err := message.Validate(); err != nil {
		return nil, err
	}

	return json.Marshal(&Request{
		ValidateOnly: c.validateOnly,
		Message:      message,
	})
}

// Send validates and posts the message. Errors are *ValidationError before
// the request, *Error after it.
func (c *Client) Send(ctx context.Context, message *Message) (*Response, error) {

	payload, err := c.Encode(message)
	if err != nil {
		return nil, err
	}

	authorization, err := c.credentials.Authorization(ctx)
	if err != nil {
		return nil, credentialsError(err)
	} else if authorization == "" {
		return nil, &Error{Kind: ErrorKindUnauthorized, cause: ErrEmptyAuthHeader}
	}

	header := make(http.Header)
	header.Set("Authorization", authorization)
	header.Set("Content-Type", "application/json; charset=utf-8")

	res, err := c.transport.Do(ctx, &HTTPRequest{
		Method: http.MethodPost,
		URL:    c.endpoint,
		Header: header,
		Body:   payload,
	})
	if err != nil {
		return nil, &Error{
			Kind:  ErrorKindTransportError,
			cause: err,
		}
	}

	retval, classified := Classify(res.StatusCode, res.Header, res.Body)
	if classified != nil {
		return nil, classified
	}

	return retval, nil
}

// credentialsError keeps context errors as transport failures, anything
// else means the credentials are unusable
func credentialsError(err error) error {

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &Error{
			Kind:  ErrorKindTransportError,
			cause: errors.Wrap(err, "credentials"),
		}
	}

	return &Error{
		Kind:  ErrorKindUnauthorized,
		cause: errors.Wrap(err, "credentials"),
	}
}

func getEndpoint(baseURL, projectID string) string {

	projectID = url.PathEscape(projectID)
	return baseURL + "/v1/projects/" + projectID + "/messages:send"
}
