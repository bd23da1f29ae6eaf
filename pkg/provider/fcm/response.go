package fcm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dialogs/dialog-push-fcm/pkg/enum"
	"github.com/dialogs/dialog-push-fcm/pkg/provider"
	"github.com/pkg/errors"
)

const (
	ErrorCodeUnspecified         ErrorCode = "UNSPECIFIED_ERROR"
	ErrorCodeInvalidArgument     ErrorCode = "INVALID_ARGUMENT"
	ErrorCodeUnregistered        ErrorCode = "UNREGISTERED"
	ErrorCodeSenderIDMismatch    ErrorCode = "SENDER_ID_MISMATCH"
	ErrorCodeQuotaExceeded       ErrorCode = "QUOTA_EXCEEDED"
	ErrorCodeUnavailable         ErrorCode = "UNAVAILABLE"
	ErrorCodeInternal            ErrorCode = "INTERNAL"
	ErrorCodeThirdPartyAuthError ErrorCode = "THIRD_PARTY_AUTH_ERROR"
)

// ErrorCode values
// https://firebase.google.com/docs/reference/fcm/rest/v1/ErrorCode
type ErrorCode string

const (
	ErrorKindUnknown ErrorKind = iota
	ErrorKindValidation
	ErrorKindInvalidMessage
	ErrorKindUnauthorized
	ErrorKindPermissionDenied
	ErrorKindInvalidTarget
	ErrorKindQuotaExceeded
	ErrorKindServerError
	ErrorKindServerUnavailable
	ErrorKindParseError
	ErrorKindTransportError
)

// ErrorKind classifies a failed send
type ErrorKind int

var _ErrorKindEnum = enum.New("error kind").
	Add(ErrorKindUnknown, "unknown").
	Add(ErrorKindValidation, "validation").
	Add(ErrorKindInvalidMessage, "invalid-message").
	Add(ErrorKindUnauthorized, "unauthorized").
	Add(ErrorKindPermissionDenied, "permission-denied").
	Add(ErrorKindInvalidTarget, "invalid-target").
	Add(ErrorKindQuotaExceeded, "quota-exceeded").
	Add(ErrorKindServerError, "server-error").
	Add(ErrorKindServerUnavailable, "server-unavailable").
	Add(ErrorKindParseError, "parse-error").
	Add(ErrorKindTransportError, "transport-error")

func ErrorKindStringKeys() []string {
	return _ErrorKindEnum.StringKeys()
}

func (k ErrorKind) String() string {
	val, ok := _ErrorKindEnum.GetByIndex(k)
	if !ok {
		return fmt.Sprintf("invalid error kind: %d", k)
	}
	return val
}

// Retryable reports whether the same request may succeed later
func (k ErrorKind) Retryable() bool {
	switch k {
	case ErrorKindQuotaExceeded, ErrorKindServerError, ErrorKindServerUnavailable, ErrorKindTransportError:
		return true
	default:
		return false
	}
}

var statusKinds = map[int]ErrorKind{
	http.StatusBadRequest:          ErrorKindInvalidMessage,
	http.StatusUnauthorized:        ErrorKindUnauthorized,
	http.StatusForbidden:           ErrorKindPermissionDenied,
	http.StatusNotFound:            ErrorKindInvalidTarget,
	http.StatusTooManyRequests:     ErrorKindQuotaExceeded,
	http.StatusInternalServerError: ErrorKindServerError,
	http.StatusServiceUnavailable:  ErrorKindServerUnavailable,
}

// Response format:
// success example:
// {
//   "name": "projects/<project-id>/messages/0:1564476468894369%30820c6b30820c6b"
// }
type Response struct {
	Name       string `json:"name"`
	StatusCode int    `json:"-"`
}

// Ok returns true if notification success send
func (r *Response) Ok() bool {
	return r != nil && len(r.Name) > 0
}

// MessageID returns the id part of Name
func (r *Response) MessageID() string {
	if pos := strings.LastIndex(r.Name, "/messages/"); pos >= 0 {
		return r.Name[pos+len("/messages/"):]
	}
	return r.Name
}

// error response example:
// {
//   "error": {
//     "code": 400,
//     "message": "The registration token is not a valid FCM registration token",
//     "status": "INVALID_ARGUMENT",
//     "details": [
//       {
//         "@type": "type.googleapis.com/google.firebase.fcm.v1.FcmError",
//         "errorCode": "INVALID_ARGUMENT"
//       },
//       {
//         "@type": "type.googleapis.com/google.rpc.BadRequest",
//         "fieldViolations": [
//           {
//             "field": "message.token",
//             "description": "The registration token is not a valid FCM registration token"
//           }
//         ]
//       }
//     ]
//   }
// }
type errorResponse struct {
	Error *sendError `json:"error"`
}

type sendError struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Details []json.RawMessage `json:"details"`
}

type errorDetail struct {
	Type            string           `json:"@type"`
	ErrorCode       ErrorCode        `json:"errorCode"`
	FieldViolations []FieldViolation `json:"fieldViolations"`
}

type FieldViolation struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

const (
	detailTypeFcmError   = "type.googleapis.com/google.firebase.fcm.v1.FcmError"
	detailTypeBadRequest = "type.googleapis.com/google.rpc.BadRequest"
)

// Error is a classified send failure. Transport details other than the
// status code and the retry delay are not kept.
type Error struct {
	Kind       ErrorKind
	StatusCode int

	// canonical status from the error body, e.g. "NOT_FOUND"
	Status string

	// FCM specific code from the error details, e.g. UNREGISTERED
	ErrorCode       ErrorCode
	Message         string
	FieldViolations []FieldViolation

	// from the Retry-After header, zero when absent
	RetryAfter time.Duration

	cause error
}

func (e *Error) Error() string {

	b := strings.Builder{}
	b.WriteString("fcm: ")
	b.WriteString(e.Kind.String())

	if e.StatusCode > 0 {
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(e.StatusCode))
	}

	if e.ErrorCode != "" {
		b.WriteString(" (")
		b.WriteString(string(e.ErrorCode))
		b.WriteByte(')')
	} else if e.Status != "" {
		b.WriteString(" (")
		b.WriteString(e.Status)
		b.WriteByte(')')
	}

	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}

	if e.cause != nil {
		b.WriteString(": ")
		b.WriteString(e.cause.Error())
	}

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Cause is used by github.com/pkg/errors
func (e *Error) Cause() error {
	return e.cause
}

func (e *Error) Retryable() bool {
	if e.Kind == ErrorKindTransportError && errors.Is(e.cause, context.Canceled) {
		return false
	}
	return e.Kind.Retryable()
}

// InvalidToken reports whether the device token should be dropped by the
// caller
func (e *Error) InvalidToken() bool {

	if e.Kind == ErrorKindInvalidTarget || e.ErrorCode == ErrorCodeUnregistered {
		return true
	}

	if e.Kind == ErrorKindInvalidMessage {
		for i := range e.FieldViolations {
			if e.FieldViolations[i].Field == "message.token" {
				return true
			}
		}
	}

	return false
}

// KindOf returns the kind of a Send error
func KindOf(err error) ErrorKind {

	if err == nil {
		return ErrorKindUnknown
	}

	var sendErr *Error
	if errors.As(err, &sendErr) {
		return sendErr.Kind
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return ErrorKindValidation
	}

	// a message left unsent by a finished context
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ErrorKindTransportError
	}

	return ErrorKindUnknown
}

func IsRetryable(err error) bool {
	var sendErr *Error
	if errors.As(err, &sendErr) {
		return sendErr.Retryable()
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// Classify maps a gateway answer to a Response or an *Error
func Classify(statusCode int, header http.Header, body []byte) (*Response, error) {

	if statusCode == http.StatusOK {
		retval := &Response{StatusCode: statusCode}
		if err := provider.DecodeJSONResponse(bytes.NewReader(body), retval); err != nil {
			return nil, &Error{
				Kind:       ErrorKindParseError,
				StatusCode: statusCode,
				Message:    "invalid success response",
				cause:      err,
			}
		}

		if !retval.Ok() {
			return nil, &Error{
				Kind:       ErrorKindParseError,
				StatusCode: statusCode,
				Message:    "success response without message name",
			}
		}

		return retval, nil
	}

	kind, ok := statusKinds[statusCode]
	if !ok {
		kind = ErrorKindParseError
	}

	retval := &Error{
		Kind:       kind,
		StatusCode: statusCode,
	}

	decodeErrorBody(retval, body)

	if retval.Retryable() {
		retval.RetryAfter = parseRetryAfter(header.Get("Retry-After"), time.Now())
	}

	return nil, retval
}

// decodeErrorBody fills err from the body if it has the expected shape.
// Anything else becomes a truncated message.
func decodeErrorBody(err *Error, body []byte) {

	if len(bytes.TrimSpace(body)) == 0 {
		return
	}

	answer := &errorResponse{}
	if decodeErr := provider.DecodeJSONResponse(bytes.NewReader(body), answer); decodeErr != nil || answer.Error == nil {
		err.Message = provider.Truncate(string(body), provider.MaxErrorInfoSize)
		return
	}

	err.Status = answer.Error.Status
	err.Message = answer.Error.Message

	for _, raw := range answer.Error.Details {
		detail := &errorDetail{}
		if json.Unmarshal(raw, detail) != nil {
			continue
		}

		switch detail.Type {
		case detailTypeFcmError:
			err.ErrorCode = detail.ErrorCode
		case detailTypeBadRequest:
			err.FieldViolations = append(err.FieldViolations, detail.FieldViolations...)
		}
	}
}

// parseRetryAfter accepts delay-seconds or an HTTP date
func parseRetryAfter(val string, now time.Time) time.Duration {

	if val == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(val); err == nil {
		if seconds < 0 {
			return 0
		}
		return time.Duration(seconds) * time.Second
	}

	if at, err := http.ParseTime(val); err == nil {
		if delay := at.Sub(now); delay > 0 {
			return delay
		}
	}

	return 0
}
